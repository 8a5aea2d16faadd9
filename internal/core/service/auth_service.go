package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// AuthService implements student registration and the three login flows.
type AuthService struct {
	students  ports.StudentRepository
	tutors    ports.TutorRepository
	admins    ports.AdminRepository
	registry  ports.IdentityRegistry
	media     ports.MediaStore
	throttle  ports.LoginThrottle
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(
	students ports.StudentRepository,
	tutors ports.TutorRepository,
	admins ports.AdminRepository,
	registry ports.IdentityRegistry,
	media ports.MediaStore,
	throttle ports.LoginThrottle,
	jwtSecret string,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		students:  students,
		tutors:    tutors,
		admins:    admins,
		registry:  registry,
		media:     media,
		throttle:  throttle,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// RegisterStudent creates a login-capable student account. Students bring
// their own password; there is no review gate for them.
func (s *AuthService) RegisterStudent(ctx context.Context, input ports.RegisterStudentInput) (*ports.StudentAuthResult, error) {
	if input.Name == "" {
		return nil, domain.MissingField("name")
	}
	if input.Email == "" {
		return nil, domain.MissingField("email")
	}
	if input.Password == "" {
		return nil, domain.MissingField("password")
	}

	email := domain.NormalizeEmail(input.Email)
	phone := domain.NormalizePhone(input.Phone)

	if err := s.registry.CheckAvailable(ctx, email, phone); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var imageURL string
	if input.ProfileImage != nil {
		imageURL, err = s.media.UploadImage(ctx, *input.ProfileImage)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	student := &domain.Student{
		Name:            input.Name,
		Email:           email,
		Phone:           phone,
		PasswordHash:    string(hash),
		Role:            domain.RoleStudent,
		DateOfBirth:     input.DateOfBirth,
		ClassCourse:     input.ClassCourse,
		ProfileImageURL: imageURL,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.students.Create(ctx, student)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(created.ID, created.Email, domain.RoleStudent)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("student_id", created.ID).Str("email", created.Email).Msg("student registered")

	return &ports.StudentAuthResult{Token: token, Student: created}, nil
}

// LoginStudent authenticates against the student collection only. An email
// with no student account fails like a wrong password so the login surface
// never discloses whether an account exists.
func (s *AuthService) LoginStudent(ctx context.Context, input ports.LoginInput) (*ports.StudentAuthResult, error) {
	email, err := s.checkAttempt(ctx, domain.RoleStudent, input)
	if err != nil {
		return nil, err
	}

	student, err := s.students.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			// Point tutors at the right flow instead of a bare failure.
			if _, terr := s.tutors.FindByEmail(ctx, email); terr == nil {
				return nil, domain.ErrUseTutorLogin
			}
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(student.ID, student.Email, domain.RoleStudent)
	if err != nil {
		return nil, err
	}

	return &ports.StudentAuthResult{Token: token, Student: student}, nil
}

// LoginTutor authenticates against the tutor collection only. Approval is
// checked before the password so a pending tutor always sees "not approved",
// never a credential hint.
func (s *AuthService) LoginTutor(ctx context.Context, input ports.LoginInput) (*ports.TutorAuthResult, error) {
	email, err := s.checkAttempt(ctx, domain.RoleTutor, input)
	if err != nil {
		return nil, err
	}

	tutor, err := s.tutors.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrTutorNotFound) {
			if _, serr := s.students.FindByEmail(ctx, email); serr == nil {
				return nil, domain.ErrUseStudentLogin
			}
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if tutor.Status != domain.StatusApproved {
		return nil, domain.ErrTutorNotApproved
	}
	if !tutor.LoginCapable() || bcrypt.CompareHashAndPassword([]byte(tutor.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(tutor.ID, tutor.Email, domain.RoleTutor)
	if err != nil {
		return nil, err
	}

	return &ports.TutorAuthResult{Token: token, Tutor: tutor}, nil
}

// LoginAdmin authenticates against the admin collection. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) LoginAdmin(ctx context.Context, input ports.LoginInput) (*ports.AdminAuthResult, error) {
	email, err := s.checkAttempt(ctx, domain.RoleAdmin, input)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(admin.ID, admin.Email, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &ports.AdminAuthResult{Token: token, Admin: admin}, nil
}

// checkAttempt validates the attempt shape and consults the throttle.
// The throttle key combines role, email and remote IP.
func (s *AuthService) checkAttempt(ctx context.Context, role string, input ports.LoginInput) (string, error) {
	if input.Email == "" || input.Password == "" {
		return "", domain.ErrInvalidCredentials
	}
	email := domain.NormalizeEmail(input.Email)

	if s.throttle != nil {
		key := fmt.Sprintf("%s:%s:%s", role, email, input.RemoteIP)
		ok, err := s.throttle.Allow(ctx, key)
		if err != nil {
			// A broken throttle backend must not take logins down with it.
			s.logger.Warn().Err(err).Str("role", role).Msg("login throttle unavailable")
		} else if !ok {
			return "", domain.ErrTooManyAttempts
		}
	}
	return email, nil
}

func (s *AuthService) generateToken(accountID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   accountID,
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
