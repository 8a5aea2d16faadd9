package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

type intakeFixture struct {
	students *stubStudentRepo
	tutors   *stubTutorRepo
	media    *stubMediaStore
	svc      *IntakeService
}

func newIntakeFixture() *intakeFixture {
	f := &intakeFixture{
		students: newStubStudentRepo(),
		tutors:   newStubTutorRepo(),
		media:    &stubMediaStore{},
	}
	registry := NewRegistryService(f.students, f.tutors)
	f.svc = NewIntakeService(f.tutors, registry, f.media, zerolog.Nop())
	return f
}

func validApplication() ports.SubmitApplicationInput {
	return ports.SubmitApplicationInput{
		Name:             "Ravi",
		Email:            "Ravi@Example.com",
		Phone:            "+5555555",
		Subjects:         []string{"Math", "Physics"},
		ExperienceYears:  2,
		ExperienceMonths: 6,
		ProfileImage:     &ports.FileUpload{Reader: strings.NewReader("img"), Filename: "ravi.png"},
		EducationProof:   &ports.FileUpload{Reader: strings.NewReader("pdf"), Filename: "degree.pdf"},
	}
}

func TestIntakeService_Submit_Success(t *testing.T) {
	f := newIntakeFixture()

	result, err := f.svc.Submit(context.Background(), validApplication())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	tutor := result.Tutor
	if tutor.Status != domain.StatusPending {
		t.Fatalf("expected pending status, got %s", tutor.Status)
	}
	if tutor.PasswordHash != "" {
		t.Fatalf("no credential may exist before approval")
	}
	if !strings.HasPrefix(result.ApplicationID, "TUTOR-") {
		t.Fatalf("unexpected application id: %s", result.ApplicationID)
	}
	if tutor.Email != "ravi@example.com" {
		t.Fatalf("email not normalized: %s", tutor.Email)
	}
	if tutor.ExperienceYears != 2.5 {
		t.Fatalf("expected 2.5 years of experience, got %v", tutor.ExperienceYears)
	}
	if tutor.ProfileImageURL != f.media.lastImage || tutor.EducationProofURL != f.media.lastProof {
		t.Fatalf("artifact URLs not recorded: %+v", tutor)
	}
}

func TestIntakeService_Submit_DedupesSubjects(t *testing.T) {
	f := newIntakeFixture()

	input := validApplication()
	input.Subjects = []string{" Math ", "Math", "", "Physics"}
	result, err := f.svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got := fmt.Sprint(result.Tutor.Subjects); got != "[Math Physics]" {
		t.Fatalf("unexpected subjects: %s", got)
	}
}

func TestIntakeService_Submit_MissingArtifacts(t *testing.T) {
	f := newIntakeFixture()

	noImage := validApplication()
	noImage.ProfileImage = nil
	_, err := f.svc.Submit(context.Background(), noImage)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "profileImage" {
		t.Fatalf("expected profileImage validation error, got %v", err)
	}

	noProof := validApplication()
	noProof.EducationProof = nil
	_, err = f.svc.Submit(context.Background(), noProof)
	if !errors.As(err, &vErr) || vErr.Field != "educationProof" {
		t.Fatalf("expected educationProof validation error, got %v", err)
	}
}

func TestIntakeService_Submit_NoSubjects(t *testing.T) {
	f := newIntakeFixture()

	input := validApplication()
	input.Subjects = []string{"  ", ""}
	_, err := f.svc.Submit(context.Background(), input)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "subjects" {
		t.Fatalf("expected subjects validation error, got %v", err)
	}
}

func TestIntakeService_Submit_NegativeExperience(t *testing.T) {
	f := newIntakeFixture()

	input := validApplication()
	input.ExperienceYears = -1
	_, err := f.svc.Submit(context.Background(), input)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "experience" {
		t.Fatalf("expected experience validation error, got %v", err)
	}
}

func TestIntakeService_Submit_EmailTakenByStudent(t *testing.T) {
	f := newIntakeFixture()
	_, _ = f.students.Create(context.Background(), &domain.Student{Email: "ravi@example.com"})

	if _, err := f.svc.Submit(context.Background(), validApplication()); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken across collections, got %v", err)
	}
	if f.media.uploads != 0 {
		t.Fatalf("no artifact may be uploaded for a rejected submission")
	}
}

func TestIntakeService_Submit_UploadFailureLeavesNoRecord(t *testing.T) {
	f := newIntakeFixture()
	f.media.proofErr = fmt.Errorf("%w: storage timeout", domain.ErrUpload)

	_, err := f.svc.Submit(context.Background(), validApplication())
	if !errors.Is(err, domain.ErrUpload) {
		t.Fatalf("expected ErrUpload, got %v", err)
	}

	pending, _ := f.tutors.ListByStatus(context.Background(), domain.StatusPending)
	if len(pending) != 0 {
		t.Fatalf("failed submission must not persist a record, found %d", len(pending))
	}
}

func TestIntakeService_ListApproved(t *testing.T) {
	f := newIntakeFixture()
	_, _ = f.tutors.Create(context.Background(), &domain.Tutor{Email: "a@example.com", Status: domain.StatusApproved})
	_, _ = f.tutors.Create(context.Background(), &domain.Tutor{Email: "b@example.com", Status: domain.StatusPending})
	_, _ = f.tutors.Create(context.Background(), &domain.Tutor{Email: "c@example.com", Status: domain.StatusRejected})

	approved, err := f.svc.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("ListApproved returned error: %v", err)
	}
	if len(approved) != 1 || approved[0].Email != "a@example.com" {
		t.Fatalf("unexpected directory contents: %+v", approved)
	}
}
