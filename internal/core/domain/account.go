package domain

import (
	"strings"
	"time"
)

const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

// Student models a learner account. Students are login-capable immediately
// after registration; there is no review workflow for them.
type Student struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	PasswordHash    string    `json:"-"`
	Role            string    `json:"role"`
	DateOfBirth     string    `json:"date_of_birth,omitempty"`
	ClassCourse     string    `json:"class_course,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Admin models a reviewer account. Admins have no status workflow and are
// provisioned out-of-band by the seedadmin command, never via the API.
type Admin struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail lowercases and trims an email so both application-level
// uniqueness checks and store indexes see one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone trims surrounding whitespace. An empty phone stays empty;
// the store index on phone is sparse so absent phones never collide.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
