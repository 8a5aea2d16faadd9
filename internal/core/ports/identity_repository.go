package ports

import (
	"context"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
)

// StudentRepository persists student accounts.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) (*domain.Student, error)
	FindByID(ctx context.Context, id string) (*domain.Student, error)
	FindByEmail(ctx context.Context, email string) (*domain.Student, error)
	// ExistsByEmailOrPhone reports whether the email or the phone is already
	// taken in this collection. A blank phone is never considered taken.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (emailTaken, phoneTaken bool, err error)
	UpdateName(ctx context.Context, id, name string) (*domain.Student, error)
}

// AdminRepository persists administrator accounts. Admins are provisioned
// out of band; there is no self-service registration path for them.
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
}
