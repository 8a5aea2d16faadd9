package domain

import (
	"errors"
	"fmt"
)

var (
	// Identity namespace conflicts. Email and phone are unique across the
	// student and tutor collections combined.
	ErrEmailTaken = errors.New("email already registered")
	ErrPhoneTaken = errors.New("phone already registered")

	// Lookup failures.
	ErrStudentNotFound = errors.New("student account not found")
	ErrTutorNotFound   = errors.New("tutor not found")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrAdminExists     = errors.New("admin already exists")

	// Authentication failures.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTutorNotApproved   = errors.New("tutor application not approved yet")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")

	// Cross-role login attempts fail with a message pointing the caller to
	// the correct flow instead of silently succeeding under the wrong role.
	ErrUseTutorLogin   = errors.New("this email belongs to a tutor account, use the tutor login")
	ErrUseStudentLogin = errors.New("this email belongs to a student account, use the student login")

	// Review gate. Approve/reject are one-shot transitions; re-processing an
	// already decided application must fail rather than reissue a credential.
	ErrAlreadyProcessed = errors.New("application already processed")

	// Artifact storage collaborator failure (upload error or timeout).
	ErrUpload = errors.New("artifact upload failed")
)

// ValidationError reports a missing or malformed input field by name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// MissingField returns a ValidationError for a required field that was absent.
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

// InvalidField returns a ValidationError for a field that was present but malformed.
func InvalidField(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
