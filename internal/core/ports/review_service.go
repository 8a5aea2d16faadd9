package ports

import (
	"context"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
)

// ApprovalResult reports the outcome of approving a tutor application.
// TempPassword is the plaintext generated for the tutor; it is shown to the
// admin exactly once and is never persisted.
type ApprovalResult struct {
	TutorID       string
	ApplicationID string
	Email         string
	TempPassword  string
	// CredentialDelivered is false when the mail side channel failed; the
	// admin must then pass the password on manually.
	CredentialDelivered bool
}

// ReviewService is the admin review gate over pending tutor applications.
type ReviewService interface {
	ListPending(ctx context.Context) ([]*domain.Tutor, error)
	Approve(ctx context.Context, id string) (*ApprovalResult, error)
	Reject(ctx context.Context, id string) (*domain.Tutor, error)
}
