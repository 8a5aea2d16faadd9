package domain

import "time"

// ApplicationStatus represents the lifecycle state of a tutor application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusApproved ApplicationStatus = "approved"
	StatusRejected ApplicationStatus = "rejected"
)

// validTransitions defines the allowed review state machine. Both terminal
// states are reachable from pending only; nothing leaves a terminal state.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Tutor models a tutor application and, once approved, the tutor account
// itself. The credential lives on this record: it is empty at submission and
// set exactly once when an admin approves the application.
type Tutor struct {
	ID                string            `json:"id"`
	ApplicationID     string            `json:"application_id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone,omitempty"`
	Subjects          []string          `json:"subjects"`
	Bio               string            `json:"bio,omitempty"`
	City              string            `json:"city,omitempty"`
	HighestEducation  string            `json:"highest_education,omitempty"`
	ExperienceYears   float64           `json:"experience_years"`
	ProfileImageURL   string            `json:"profile_image_url"`
	EducationProofURL string            `json:"education_proof_url"`
	Status            ApplicationStatus `json:"status"`
	PasswordHash      string            `json:"-"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// LoginCapable reports whether the tutor may authenticate: the application
// must be approved and a credential must have been issued.
func (t *Tutor) LoginCapable() bool {
	return t.Status == StatusApproved && t.PasswordHash != ""
}
