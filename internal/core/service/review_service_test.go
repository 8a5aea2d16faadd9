package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
)

func newReviewFixture() (*stubTutorRepo, *stubMailer, *ReviewService) {
	tutors := newStubTutorRepo()
	mailer := &stubMailer{}
	svc := NewReviewService(tutors, mailer, zerolog.Nop())
	return tutors, mailer, svc
}

func seedPending(t *testing.T, tutors *stubTutorRepo) *domain.Tutor {
	t.Helper()
	tutor, err := tutors.Create(context.Background(), &domain.Tutor{
		ApplicationID: "TUTOR-0000TEST",
		Name:          "Ravi",
		Email:         "ravi@example.com",
		Status:        domain.StatusPending,
	})
	if err != nil {
		t.Fatalf("seed tutor: %v", err)
	}
	return tutor
}

func TestReviewService_Approve_IssuesCredential(t *testing.T) {
	tutors, mailer, svc := newReviewFixture()
	pending := seedPending(t, tutors)

	result, err := svc.Approve(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}
	if result.TempPassword == "" {
		t.Fatalf("expected a generated password")
	}
	if !result.CredentialDelivered {
		t.Fatalf("expected credential marked delivered")
	}

	stored, _ := tutors.FindByID(context.Background(), pending.ID)
	if stored.Status != domain.StatusApproved {
		t.Fatalf("expected approved status, got %s", stored.Status)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(result.TempPassword)); err != nil {
		t.Fatalf("stored hash does not match issued password: %v", err)
	}
	if mailer.calls != 1 || mailer.lastPassword != result.TempPassword {
		t.Fatalf("mailer not called with issued password")
	}
}

func TestReviewService_Approve_Twice(t *testing.T) {
	tutors, _, svc := newReviewFixture()
	pending := seedPending(t, tutors)

	first, err := svc.Approve(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("first approve failed: %v", err)
	}

	if _, err := svc.Approve(context.Background(), pending.ID); err != domain.ErrAlreadyProcessed {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}

	// The original credential must survive the failed re-approval.
	stored, _ := tutors.FindByID(context.Background(), pending.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(first.TempPassword)); err != nil {
		t.Fatalf("credential was reissued: %v", err)
	}
}

func TestReviewService_Approve_NotFound(t *testing.T) {
	_, _, svc := newReviewFixture()

	if _, err := svc.Approve(context.Background(), "missing"); err != domain.ErrTutorNotFound {
		t.Fatalf("expected ErrTutorNotFound, got %v", err)
	}
}

func TestReviewService_Approve_MailFailureKeepsApproval(t *testing.T) {
	tutors, mailer, svc := newReviewFixture()
	mailer.err = errors.New("smtp unreachable")
	pending := seedPending(t, tutors)

	result, err := svc.Approve(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("approval must stand on mail failure, got %v", err)
	}
	if result.CredentialDelivered {
		t.Fatalf("expected CredentialDelivered=false")
	}
	if result.TempPassword == "" {
		t.Fatalf("admin still needs the password to pass on manually")
	}

	stored, _ := tutors.FindByID(context.Background(), pending.ID)
	if stored.Status != domain.StatusApproved {
		t.Fatalf("expected approved status, got %s", stored.Status)
	}
}

func TestReviewService_Reject(t *testing.T) {
	tutors, mailer, svc := newReviewFixture()
	pending := seedPending(t, tutors)

	rejected, err := svc.Reject(context.Background(), pending.ID)
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}
	if rejected.Status != domain.StatusRejected {
		t.Fatalf("expected rejected status, got %s", rejected.Status)
	}
	if rejected.PasswordHash != "" {
		t.Fatalf("rejection must not issue a credential")
	}
	if mailer.calls != 0 {
		t.Fatalf("no mail on rejection")
	}
}

func TestReviewService_Reject_AfterApprove(t *testing.T) {
	tutors, _, svc := newReviewFixture()
	pending := seedPending(t, tutors)

	if _, err := svc.Approve(context.Background(), pending.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := svc.Reject(context.Background(), pending.ID); err != domain.ErrAlreadyProcessed {
		t.Fatalf("expected ErrAlreadyProcessed, got %v", err)
	}
}

func TestReviewService_ListPending(t *testing.T) {
	tutors, _, svc := newReviewFixture()
	seedPending(t, tutors)
	_, _ = tutors.Create(context.Background(), &domain.Tutor{Email: "done@example.com", Status: domain.StatusApproved})

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending returned error: %v", err)
	}
	if len(pending) != 1 || pending[0].Email != "ravi@example.com" {
		t.Fatalf("unexpected pending list: %+v", pending)
	}
}

func TestGeneratePassword(t *testing.T) {
	a, err := generatePassword(tempPasswordLength)
	if err != nil {
		t.Fatalf("generatePassword: %v", err)
	}
	if len(a) != tempPasswordLength {
		t.Fatalf("unexpected length %d", len(a))
	}
	b, _ := generatePassword(tempPasswordLength)
	if a == b {
		t.Fatalf("two generated passwords should not collide")
	}
}
