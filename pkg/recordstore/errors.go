package recordstore

import (
	"errors"
	"fmt"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
)

// ErrUnavailable marks every failure of the underlying medium: I/O errors,
// timeouts, lock failures and malformed stored data.
var ErrUnavailable = errors.New("record store unavailable")

// ErrNoChange can be returned from a mutation to skip the write.
var ErrNoChange = errors.New("record store: no change")

// OpError records the failed operation and collection. It matches
// ErrUnavailable under errors.Is.
type OpError struct {
	Op         string
	Collection string
	Err        error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("record store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func (e *OpError) Is(target error) bool {
	return target == ErrUnavailable
}

// StoreOperation names the failed operation for error dumps.
func (e *OpError) StoreOperation() (string, string) {
	return e.Op, e.Collection
}

func unavailable(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return err
	}
	return &OpError{Op: op, Collection: collection, Err: err}
}

// AppError maps a store failure onto the API error taxonomy. Errors that
// already carry a code pass through untouched.
func AppError(err error, message string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	if errors.Is(err, ErrUnavailable) {
		return pkgerrors.Wrap(pkgerrors.CodeStoreUnavailable, err, message)
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
}
