package service

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

const tempPasswordLength = 16

// ReviewService is the admin review gate: it lists pending applications and
// drives the one-shot pending→approved / pending→rejected transitions.
//
// Credential issuance is atomic with approval from the caller's perspective:
// the password is generated and hashed first, then hash and status are
// written in a single conditional update filtered on status=pending. A
// concurrent second approval finds no pending record and fails with
// ErrAlreadyProcessed instead of reissuing the credential.
type ReviewService struct {
	tutors ports.TutorRepository
	mailer ports.Mailer
	logger zerolog.Logger
}

func NewReviewService(tutors ports.TutorRepository, mailer ports.Mailer, logger zerolog.Logger) *ReviewService {
	return &ReviewService{tutors: tutors, mailer: mailer, logger: logger}
}

// ListPending returns all pending applications, newest first.
func (s *ReviewService) ListPending(ctx context.Context) ([]*domain.Tutor, error) {
	return s.tutors.ListByStatus(ctx, domain.StatusPending)
}

// Approve transitions a pending application to approved and issues its login
// credential. The plaintext password appears only in the returned result and
// in the mail side channel; it is never persisted.
func (s *ReviewService) Approve(ctx context.Context, id string) (*ports.ApprovalResult, error) {
	password, err := generatePassword(tempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tutor, err := s.tutors.ApproveWithCredential(ctx, id, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("tutor_id", tutor.ID).
		Str("application_id", tutor.ApplicationID).
		Msg("tutor approved")

	delivered := true
	if err := s.mailer.SendTutorCredentials(ctx, tutor.Name, tutor.Email, tutor.ApplicationID, password); err != nil {
		// Best effort: the approval stands, the admin passes the password on.
		delivered = false
		s.logger.Warn().Err(err).Str("tutor_id", tutor.ID).Msg("credential mail failed")
	}

	return &ports.ApprovalResult{
		TutorID:             tutor.ID,
		ApplicationID:       tutor.ApplicationID,
		Email:               tutor.Email,
		TempPassword:        password,
		CredentialDelivered: delivered,
	}, nil
}

// Reject transitions a pending application to rejected. The record is kept;
// rejection is a terminal status, not a removal.
func (s *ReviewService) Reject(ctx context.Context, id string) (*domain.Tutor, error) {
	tutor, err := s.tutors.Reject(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("tutor_id", tutor.ID).
		Str("application_id", tutor.ApplicationID).
		Msg("tutor rejected")

	return tutor, nil
}

// passwordAlphabet excludes easily confused characters (0/O, 1/l/I).
const passwordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generatePassword(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = passwordAlphabet[int(b)%len(passwordAlphabet)]
	}
	return string(buf), nil
}
