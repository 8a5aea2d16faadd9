package ports

import (
	"context"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
)

// Profile is the role-agnostic own-profile view. Exactly one of Student or
// Tutor is set, matching the role in the session token.
type Profile struct {
	Role    string
	Student *domain.Student
	Tutor   *domain.Tutor
}

// ProfileService exposes the authenticated user's own profile.
type ProfileService interface {
	Me(ctx context.Context, accountID, role string) (*Profile, error)
	UpdateName(ctx context.Context, accountID, role, name string) (*Profile, error)
}
