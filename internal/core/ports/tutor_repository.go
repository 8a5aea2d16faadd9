package ports

import (
	"context"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
)

// TutorRepository persists tutor applications and accounts.
type TutorRepository interface {
	Create(ctx context.Context, tutor *domain.Tutor) (*domain.Tutor, error)
	FindByID(ctx context.Context, id string) (*domain.Tutor, error)
	FindByEmail(ctx context.Context, email string) (*domain.Tutor, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (emailTaken, phoneTaken bool, err error)
	// ListByStatus returns tutors in the given status, newest first.
	ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]*domain.Tutor, error)

	// ApproveWithCredential atomically moves a pending application to
	// approved and stores the issued password hash in the same write.
	// Returns domain.ErrTutorNotFound when no tutor has the id and
	// domain.ErrAlreadyProcessed when the application is no longer pending.
	ApproveWithCredential(ctx context.Context, id, passwordHash string) (*domain.Tutor, error)
	// Reject moves a pending application to rejected with the same
	// not-found / already-processed semantics as ApproveWithCredential.
	Reject(ctx context.Context, id string) (*domain.Tutor, error)

	UpdateName(ctx context.Context, id, name string) (*domain.Tutor, error)
	// UpdateNameByEmail renames the tutor record sharing an email with a
	// student account. Returns domain.ErrTutorNotFound when no such tutor
	// exists.
	UpdateNameByEmail(ctx context.Context, email, name string) error
}
