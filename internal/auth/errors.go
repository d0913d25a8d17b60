package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation wraps malformed login input.
	ErrValidation = errors.New("invalid input")

	// ErrInvalidCredentials deliberately does not say which of
	// identifier or secret was wrong.
	ErrInvalidCredentials = errors.New("invalid username, email, or password")
)

// EmailNotVerifiedError blocks the session and carries what the caller
// needs to offer a resend action.
type EmailNotVerifiedError struct {
	AccountID uint
}

func (e *EmailNotVerifiedError) Error() string {
	return fmt.Sprintf("email not verified for account %d", e.AccountID)
}
