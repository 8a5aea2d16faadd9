package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// IntakeService validates and persists new tutor applications.
//
// Upload policy: all-or-nothing. Both artifacts are uploaded before the
// record is inserted, and a failure on either aborts the submission, so a
// partial failure never leaves a persisted application and never leaves a
// record referencing a missing artifact.
type IntakeService struct {
	tutors   ports.TutorRepository
	registry ports.IdentityRegistry
	media    ports.MediaStore
	logger   zerolog.Logger
}

func NewIntakeService(tutors ports.TutorRepository, registry ports.IdentityRegistry, media ports.MediaStore, logger zerolog.Logger) *IntakeService {
	return &IntakeService{tutors: tutors, registry: registry, media: media, logger: logger}
}

// Submit validates the application, stores both artifacts and persists the
// pending record. No credential is issued and no token is returned.
func (s *IntakeService) Submit(ctx context.Context, input ports.SubmitApplicationInput) (*ports.ApplicationResult, error) {
	if input.Name == "" {
		return nil, domain.MissingField("name")
	}
	if input.Email == "" {
		return nil, domain.MissingField("email")
	}
	subjects := dedupeSubjects(input.Subjects)
	if len(subjects) == 0 {
		return nil, domain.MissingField("subjects")
	}
	if input.ProfileImage == nil {
		return nil, domain.MissingField("profileImage")
	}
	if input.EducationProof == nil {
		return nil, domain.MissingField("educationProof")
	}
	if input.ExperienceYears < 0 || input.ExperienceMonths < 0 {
		return nil, domain.InvalidField("experience", "must not be negative")
	}

	email := domain.NormalizeEmail(input.Email)
	phone := domain.NormalizePhone(input.Phone)

	if err := s.registry.CheckAvailable(ctx, email, phone); err != nil {
		return nil, err
	}

	imageURL, err := s.media.UploadImage(ctx, *input.ProfileImage)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("profile image upload failed")
		return nil, err
	}
	proofURL, err := s.media.UploadDocument(ctx, *input.EducationProof)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("education proof upload failed")
		return nil, err
	}

	now := time.Now().UTC()
	tutor := &domain.Tutor{
		ApplicationID:     generateApplicationID(),
		Name:              input.Name,
		Email:             email,
		Phone:             phone,
		Subjects:          subjects,
		Bio:               input.Bio,
		City:              input.City,
		HighestEducation:  input.HighestEducation,
		ExperienceYears:   float64(input.ExperienceYears) + float64(input.ExperienceMonths)/12,
		ProfileImageURL:   imageURL,
		EducationProofURL: proofURL,
		Status:            domain.StatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.tutors.Create(ctx, tutor)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("application_id", created.ApplicationID).
		Str("email", created.Email).
		Msg("tutor application submitted")

	return &ports.ApplicationResult{ApplicationID: created.ApplicationID, Tutor: created}, nil
}

// ListApproved returns the public tutor directory, newest first.
func (s *IntakeService) ListApproved(ctx context.Context) ([]*domain.Tutor, error) {
	return s.tutors.ListByStatus(ctx, domain.StatusApproved)
}

// generateApplicationID returns a human-readable application identifier in
// the format TUTOR-XXXXXXXX.
func generateApplicationID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("TUTOR-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("TUTOR-%08X", b)
}

// dedupeSubjects drops empty and repeated subject names, preserving order.
func dedupeSubjects(subjects []string) []string {
	seen := make(map[string]struct{}, len(subjects))
	out := make([]string, 0, len(subjects))
	for _, subj := range subjects {
		subj = strings.TrimSpace(subj)
		if subj == "" {
			continue
		}
		if _, ok := seen[subj]; ok {
			continue
		}
		seen[subj] = struct{}{}
		out = append(out, subj)
	}
	return out
}
