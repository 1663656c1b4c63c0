package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/northbeam-studio/studio-admin/pkg/errors"
)

// RequireQuery returns the trimmed values of keys, failing with a single
// validation error that lists every missing key.
func RequireQuery(r *http.Request, keys ...string) (map[string]string, error) {
	values := make(map[string]string, len(keys))
	missing := map[string]string{}
	query := r.URL.Query()
	for _, key := range keys {
		v := strings.TrimSpace(query.Get(key))
		if v == "" {
			missing[key] = "is required"
			continue
		}
		values[key] = v
	}
	if len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing query parameters").WithDetails(missing)
	}
	return values, nil
}

// OptionalQuery returns the trimmed value of key or "".
func OptionalQuery(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
