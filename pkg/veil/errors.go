package veil

import (
	"errors"
	"fmt"
	"strings"
)

// sessionExpiredMessage is the literal substring the server emits when a
// session token has expired. Expiry detection is substring matching on
// error messages; if the server wording ever changes, expired sessions
// surface as plain API errors instead of triggering re-authentication.
// Pinned by TestAPIErrorSessionExpiredMatch.
const sessionExpiredMessage = "jwt expired"

var (
	// ErrNoCredentials is returned when an authenticated operation is
	// attempted on a client constructed without a signer. Never retried.
	ErrNoCredentials = errors.New("no signing credentials configured")

	// ErrSessionRetryExhausted is returned when a call still fails with an
	// expired session after one re-authentication.
	ErrSessionRetryExhausted = errors.New("session retry exhausted")
)

// ErrorDetail is one entry of the errors list in the response envelope.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError is a structured error response from the platform. It carries the
// raw error list verbatim plus the request URL for diagnosis. Transport
// failures (connection errors, non-JSON bodies) are not APIErrors.
type APIError struct {
	URL    string
	Errors []ErrorDetail
}

func (e *APIError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		msgs[i] = d.Message
	}
	return fmt.Sprintf("api error (%s): %s", e.URL, strings.Join(msgs, "; "))
}

// SessionExpired reports whether any error message indicates an expired
// session token.
func (e *APIError) SessionExpired() bool {
	for _, d := range e.Errors {
		if strings.Contains(d.Message, sessionExpiredMessage) {
			return true
		}
	}
	return false
}
