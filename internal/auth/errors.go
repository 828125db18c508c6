package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when the email/password pair does not
	// match an active account. It deliberately does not reveal which of the
	// two was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountInactive is returned when the account exists but is disabled.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrUnknownRole is returned when the requested role is not in the catalog.
	ErrUnknownRole = errors.New("unknown role")
	// ErrMissingCredential is returned when a protected request carries no
	// bearer credential.
	ErrMissingCredential = errors.New("missing credential")
	// ErrRoleNotGranted is returned when a legacy credential names a role the
	// principal no longer holds.
	ErrRoleNotGranted = errors.New("role not granted")
	// ErrForbidden is returned when the session role is not allowed to
	// perform the operation.
	ErrForbidden = errors.New("role not allowed for this operation")
)
