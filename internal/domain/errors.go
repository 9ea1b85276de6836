package domain

import (
	"errors"
	"fmt"
)

// GenericErrorMessage is shown when the backend provides no detail.
const GenericErrorMessage = "Something went wrong. Please try again."

// AccessDeniedMessage is shown when a login succeeds but the role is not
// admin-capable. Kept distinct from the invalid-credentials message so the
// portal does not leak which accounts exist.
const AccessDeniedMessage = "Access Denied: Admin credentials required."

// ErrSendInFlight is returned when a chat send is attempted while a previous
// send is still awaiting its reply. The attempt issues no request.
var ErrSendInFlight = errors.New("assistant: a send is already in flight")

// AuthReason classifies authentication failures.
type AuthReason string

const (
	ReasonInvalidCredentials AuthReason = "invalid_credentials"
	ReasonAccessDenied       AuthReason = "access_denied"
	ReasonInvalidResetToken  AuthReason = "invalid_reset_token"
)

// AuthError is an authentication or authorization failure.
type AuthError struct {
	Reason  AuthReason
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Reason)
}

// NewAccessDenied returns the canonical access-denied error.
func NewAccessDenied() *AuthError {
	return &AuthError{Reason: ReasonAccessDenied, Message: AccessDeniedMessage}
}

// FetchError is a network failure or a non-2xx backend response.
type FetchError struct {
	StatusCode int    // 0 for transport errors
	Message    string // server-provided detail when available
	Err        error  // underlying transport error, if any
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		if e.Message != "" {
			return fmt.Sprintf("api error [%d]: %s", e.StatusCode, e.Message)
		}
		return fmt.Sprintf("api error [%d]", e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("api request failed: %v", e.Err)
	}
	return "api request failed"
}

func (e *FetchError) Unwrap() error { return e.Err }

// UserMessage returns the message suitable for display: the server detail
// when present, else the generic fallback.
func (e *FetchError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return GenericErrorMessage
}

// ValidationError is a client-side form constraint violation. It is surfaced
// inline next to the offending field before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AssistantError is a chat backend failure.
type AssistantError struct {
	Message string
	Err     error
}

func (e *AssistantError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "assistant request failed"
}

func (e *AssistantError) Unwrap() error { return e.Err }
