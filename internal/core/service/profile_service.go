package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// ProfileService serves the authenticated user's own profile for both roles.
type ProfileService struct {
	students ports.StudentRepository
	tutors   ports.TutorRepository
	logger   zerolog.Logger
}

func NewProfileService(students ports.StudentRepository, tutors ports.TutorRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{students: students, tutors: tutors, logger: logger}
}

func (s *ProfileService) Me(ctx context.Context, accountID, role string) (*ports.Profile, error) {
	switch role {
	case domain.RoleStudent:
		student, err := s.students.FindByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		return &ports.Profile{Role: role, Student: student}, nil
	case domain.RoleTutor:
		tutor, err := s.tutors.FindByID(ctx, accountID)
		if err != nil {
			return nil, err
		}
		return &ports.Profile{Role: role, Tutor: tutor}, nil
	default:
		return nil, domain.InvalidField("role", "is not a profile role")
	}
}

// UpdateName renames the caller's own account. When a student shares an
// email with a tutor record, the tutor record is renamed too so the public
// directory stays consistent.
func (s *ProfileService) UpdateName(ctx context.Context, accountID, role, name string) (*ports.Profile, error) {
	if name == "" {
		return nil, domain.MissingField("name")
	}

	switch role {
	case domain.RoleStudent:
		student, err := s.students.UpdateName(ctx, accountID, name)
		if err != nil {
			return nil, err
		}
		if err := s.tutors.UpdateNameByEmail(ctx, student.Email, name); err != nil && !errors.Is(err, domain.ErrTutorNotFound) {
			s.logger.Warn().Err(err).Str("email", student.Email).Msg("tutor name sync failed")
		}
		return &ports.Profile{Role: role, Student: student}, nil
	case domain.RoleTutor:
		tutor, err := s.tutors.UpdateName(ctx, accountID, name)
		if err != nil {
			return nil, err
		}
		return &ports.Profile{Role: role, Tutor: tutor}, nil
	default:
		return nil, domain.InvalidField("role", "is not a profile role")
	}
}
