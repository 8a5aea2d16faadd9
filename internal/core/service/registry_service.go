package service

import (
	"context"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// RegistryService enforces the shared (email, phone) uniqueness namespace
// spanning the student and tutor collections.
//
// This check is a pre-flight: the Mongo unique indexes created by
// EnsureIndexes are the actual guarantee, and repositories map duplicate-key
// failures to the same sentinels. Two racing registrations therefore still
// resolve to exactly one winner; the loser just gets a less specific message.
type RegistryService struct {
	students ports.StudentRepository
	tutors   ports.TutorRepository
}

func NewRegistryService(students ports.StudentRepository, tutors ports.TutorRepository) *RegistryService {
	return &RegistryService{students: students, tutors: tutors}
}

// CheckAvailable returns nil when neither the email nor the phone exist in
// either collection. Email conflicts are reported before phone conflicts
// when both collide.
func (s *RegistryService) CheckAvailable(ctx context.Context, email, phone string) error {
	email = domain.NormalizeEmail(email)
	phone = domain.NormalizePhone(phone)

	emailTaken, phoneTaken, err := s.students.ExistsByEmailOrPhone(ctx, email, phone)
	if err != nil {
		return err
	}
	if !emailTaken || !phoneTaken {
		et, pt, err := s.tutors.ExistsByEmailOrPhone(ctx, email, phone)
		if err != nil {
			return err
		}
		emailTaken = emailTaken || et
		phoneTaken = phoneTaken || pt
	}

	if emailTaken {
		return domain.ErrEmailTaken
	}
	if phoneTaken {
		return domain.ErrPhoneTaken
	}
	return nil
}
