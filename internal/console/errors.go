package console

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for any non-2xx response from the console API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	RequestID  string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsAPIError reports whether err is or wraps an APIError, returning it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 or 403 from the console API.
func IsUnauthorized(err error) bool {
	apiErr, ok := IsAPIError(err)
	return ok && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}
