package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type studentResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Role            string    `json:"role"`
	DateOfBirth     string    `json:"date_of_birth,omitempty"`
	ClassCourse     string    `json:"class_course,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type studentAuthResponse struct {
	Token   string          `json:"token"`
	Student studentResponse `json:"user"`
}

type tutorAuthResponse struct {
	Token string        `json:"token"`
	Tutor tutorResponse `json:"user"`
}

type adminResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type adminAuthResponse struct {
	Token string        `json:"token"`
	Admin adminResponse `json:"admin"`
}

// --- Tutors ---

// tutorResponse is the tutor application / account view. The credential is
// excluded by construction: this type simply has no field for it.
type tutorResponse struct {
	ID                string    `json:"id"`
	ApplicationID     string    `json:"application_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone,omitempty"`
	Subjects          []string  `json:"subjects"`
	Bio               string    `json:"bio,omitempty"`
	City              string    `json:"city,omitempty"`
	HighestEducation  string    `json:"highest_education,omitempty"`
	ExperienceYears   float64   `json:"experience_years"`
	ProfileImageURL   string    `json:"profile_image_url"`
	EducationProofURL string    `json:"education_proof_url"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

type submitApplicationResponse struct {
	Message       string        `json:"message"`
	ApplicationID string        `json:"application_id"`
	Tutor         tutorResponse `json:"tutor"`
}

type listTutorsResponse struct {
	Tutors []tutorResponse `json:"tutors"`
}

// --- Admin review ---

type approvalResponse struct {
	Message       string `json:"message"`
	TutorID       string `json:"tutor_id"`
	ApplicationID string `json:"application_id"`
	Email         string `json:"email"`
	// TempPassword is shown exactly once so the admin can relay it when the
	// mail side channel is down.
	TempPassword        string `json:"temp_password"`
	CredentialDelivered bool   `json:"credential_delivered"`
}

// --- Profile ---

type updateNameRequest struct {
	Name string `json:"name" validate:"required"`
}

type profileResponse struct {
	Role    string           `json:"role"`
	Student *studentResponse `json:"student,omitempty"`
	Tutor   *tutorResponse   `json:"tutor,omitempty"`
}
