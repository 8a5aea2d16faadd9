package ports

import "context"

// IdentityRegistry checks email and phone availability across every account
// collection before a new identity is created. This is a pre-flight check
// for friendly error messages; the store's unique indexes remain the actual
// uniqueness guarantee under concurrent registration.
type IdentityRegistry interface {
	// CheckAvailable returns domain.ErrEmailTaken or domain.ErrPhoneTaken
	// when the identity is already claimed anywhere in the namespace, with
	// the email conflict reported first when both collide.
	CheckAvailable(ctx context.Context, email, phone string) error
}
