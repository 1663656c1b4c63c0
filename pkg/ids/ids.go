// Package ids generates the opaque record identifiers used by every collection.
package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces fresh identifiers.
type Generator func() string

// New returns a time-ordered UUIDv7 string. The leading bits encode the
// creation timestamp, so ids sort by creation time and stay collision free
// under bursty writes.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Sequence returns a deterministic generator yielding prefix-1, prefix-2, ...
func Sequence(prefix string) Generator {
	var n atomic.Int64
	return func() string {
		return prefix + "-" + strconv.FormatInt(n.Add(1), 10)
	}
}
