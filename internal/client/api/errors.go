package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable wraps transport-level failures (refused connection,
	// DNS, timeout) where no HTTP response was received.
	ErrUnavailable = errors.New("server unavailable")
)

// Error is a decoded non-2xx API response. Callers recover it with
// errors.As to branch on status or server detail.
type Error struct {
	Status int

	// Detail is the server-provided human-readable message, if any.
	Detail string

	// VerificationRequired is set when the failure payload itself flags an
	// unverified account; login treats it like the success-path flag.
	VerificationRequired bool

	// UserID accompanies verification_required payloads.
	UserID int64

	// Raw holds the unparsed response body for diagnostics.
	Raw string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// Message returns the server detail, or fallback when the server sent none.
func (e *Error) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}

// AsError unwraps err into *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsUnauthorized reports whether err is a 401 rejection, i.e. the bearer
// token is missing, invalid, or expired.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 rejection. For Google OAuth this
// signals "email not verified" rather than bad credentials.
func IsForbidden(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusForbidden
}

// IsRateLimited reports whether err is a 429 rejection from the resend
// endpoints.
func IsRateLimited(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusTooManyRequests
}

// IsVerificationRequired reports whether the failure payload carries the
// verification_required flag.
func IsVerificationRequired(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.VerificationRequired
}
