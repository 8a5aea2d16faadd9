package ports

import (
	"context"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
)

// SubmitApplicationInput carries a prospective tutor's application.
// Experience is composed from whole years plus months, allowing fractional
// years (e.g. 2 years 6 months = 2.5).
type SubmitApplicationInput struct {
	Name             string
	Email            string
	Phone            string
	Subjects         []string
	Bio              string
	City             string
	HighestEducation string
	ExperienceYears  int
	ExperienceMonths int
	ProfileImage     *FileUpload
	EducationProof   *FileUpload
}

// ApplicationResult is the pending-application view returned on submission.
// No token is issued: the applicant cannot authenticate until approved.
type ApplicationResult struct {
	ApplicationID string
	Tutor         *domain.Tutor
}

// IntakeService validates and persists new tutor applications.
type IntakeService interface {
	Submit(ctx context.Context, input SubmitApplicationInput) (*ApplicationResult, error)
	// ListApproved returns the public directory of approved tutors, newest first.
	ListApproved(ctx context.Context) ([]*domain.Tutor, error)
}
