// Package common defines shared constants and sentinel errors used across
// the client, the development server and the CLI. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Auth flow errors.
	ErrMissingIdentity    = errors.New("identity assertion has no user id")
	ErrVerificationFailed = errors.New("identity verification failed")

	// Session errors. All of them send the user back to the auth view.
	ErrSessionMissing   = errors.New("no stored session")
	ErrSessionExpired   = errors.New("session expired")
	ErrMalformedSession = errors.New("stored session is malformed")

	// Remote call errors.
	ErrFetchFailed  = errors.New("failed to fetch dialogs")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")

	// Validation errors.
	ErrEmptyMessage = errors.New("message text is empty")

	// Token errors (development server).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// NeedsAuth reports whether err means the user has to authenticate again.
func NeedsAuth(err error) bool {
	return errors.Is(err, ErrSessionMissing) ||
		errors.Is(err, ErrSessionExpired) ||
		errors.Is(err, ErrMalformedSession) ||
		errors.Is(err, ErrUnauthorized)
}
