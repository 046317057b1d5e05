package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes and the canonical client-facing messages.
var (
	// ErrUserExists is returned when a registration collides with an
	// existing username or email. The two cases are deliberately not
	// distinguished, to resist user enumeration.
	ErrUserExists = errors.New("username or email already exists")

	// ErrInvalidCredentials is returned for both an unknown username and
	// a wrong password, for the same enumeration-resistance reason.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrTaskNotFound covers both a nonexistent task id and a task owned
	// by someone else; an ownership mismatch must be indistinguishable
	// from nonexistence.
	ErrTaskNotFound = errors.New("task not found")
)
