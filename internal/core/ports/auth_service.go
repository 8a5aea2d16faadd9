package ports

import (
	"context"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
)

// RegisterStudentInput carries all data needed to create a student account.
type RegisterStudentInput struct {
	Name        string
	Email       string
	Password    string
	Phone       string
	DateOfBirth string
	ClassCourse string
	// ProfileImage is optional; when present it is stored before the account
	// is persisted.
	ProfileImage *FileUpload
}

// LoginInput carries one authentication attempt. RemoteIP scopes the login
// throttle so one address cannot lock an account out for everyone.
type LoginInput struct {
	Email    string
	Password string
	RemoteIP string
}

// StudentAuthResult is returned on successful registration or student login.
type StudentAuthResult struct {
	Token   string
	Student *domain.Student
}

// TutorAuthResult is returned on successful tutor login.
type TutorAuthResult struct {
	Token string
	Tutor *domain.Tutor
}

// AdminAuthResult is returned on successful admin login.
type AdminAuthResult struct {
	Token string
	Admin *domain.Admin
}

// AuthService defines student registration and the three collection-scoped
// login flows. Each login searches exactly one collection.
type AuthService interface {
	RegisterStudent(ctx context.Context, input RegisterStudentInput) (*StudentAuthResult, error)
	LoginStudent(ctx context.Context, input LoginInput) (*StudentAuthResult, error)
	LoginTutor(ctx context.Context, input LoginInput) (*TutorAuthResult, error)
	LoginAdmin(ctx context.Context, input LoginInput) (*AdminAuthResult, error)
}
