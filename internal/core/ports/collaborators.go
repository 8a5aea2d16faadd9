package ports

import (
	"context"
	"io"
)

// FileUpload is an in-flight file received from a client, decoupled from any
// HTTP framework type so services stay transport-agnostic.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// MediaStore uploads user-submitted artifacts to external storage and
// returns a publicly resolvable URL.
type MediaStore interface {
	UploadImage(ctx context.Context, file FileUpload) (string, error)
	UploadDocument(ctx context.Context, file FileUpload) (string, error)
}

// Mailer delivers issued tutor credentials. Delivery is best effort: a
// failure here never rolls back the approval that produced the credential.
type Mailer interface {
	SendTutorCredentials(ctx context.Context, name, email, applicationID, password string) error
}

// LoginThrottle rate-limits authentication attempts per key. Allow reports
// whether the attempt may proceed; an error means the throttle backend is
// unavailable, not that the attempt is denied.
type LoginThrottle interface {
	Allow(ctx context.Context, key string) (bool, error)
}
