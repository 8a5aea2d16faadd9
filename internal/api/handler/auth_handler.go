package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hacker123-star/k-learnstudio2/internal/api/metrics"
	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new student account.
//
// @Summary      Register a new student
// @Tags         auth
// @Accept       mpfd
// @Produce      json
// @Param        name          formData  string  true   "Full name"
// @Param        email         formData  string  true   "Email"
// @Param        password      formData  string  true   "Password"
// @Param        phone         formData  string  false  "Phone"
// @Param        profileImage  formData  file    false  "Profile image"
// @Success      201  {object}  studentAuthResponse
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	input := ports.RegisterStudentInput{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Password:    c.FormValue("password"),
		Phone:       c.FormValue("phone"),
		DateOfBirth: c.FormValue("dateOfBirth"),
		ClassCourse: c.FormValue("classCourse"),
	}

	image, closeImage, err := formFile(c, "profileImage")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid profile image")
	}
	defer closeImage()
	input.ProfileImage = image

	result, err := h.authService.RegisterStudent(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(domain.RoleStudent).Inc()

	return c.JSON(http.StatusCreated, studentAuthResponse{
		Token:   result.Token,
		Student: toStudentResponse(result.Student),
	})
}

// Login authenticates a student and returns a session token.
//
// @Summary      Student login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  studentAuthResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	req, err := bindLogin(c)
	if err != nil {
		return err
	}

	result, err := h.authService.LoginStudent(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		RemoteIP: c.RealIP(),
	})
	recordLogin(domain.RoleStudent, err)
	if err != nil {
		return loginError(err)
	}

	return c.JSON(http.StatusOK, studentAuthResponse{
		Token:   result.Token,
		Student: toStudentResponse(result.Student),
	})
}

// TutorLogin authenticates an approved tutor and returns a session token.
//
// @Summary      Tutor login (approved tutors only)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tutorAuthResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/tutor/login [post]
func (h *AuthHandler) TutorLogin(c echo.Context) error {
	req, err := bindLogin(c)
	if err != nil {
		return err
	}

	result, err := h.authService.LoginTutor(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		RemoteIP: c.RealIP(),
	})
	recordLogin(domain.RoleTutor, err)
	if err != nil {
		return loginError(err)
	}

	return c.JSON(http.StatusOK, tutorAuthResponse{
		Token: result.Token,
		Tutor: toTutorResponse(result.Tutor),
	})
}

// AdminLogin authenticates an admin and returns a session token.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  adminAuthResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	req, err := bindLogin(c)
	if err != nil {
		return err
	}

	result, err := h.authService.LoginAdmin(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		RemoteIP: c.RealIP(),
	})
	recordLogin(domain.RoleAdmin, err)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, adminAuthResponse{
		Token: result.Token,
		Admin: adminResponse{ID: result.Admin.ID, Name: result.Admin.Name, Email: result.Admin.Email},
	})
}

// loginError keeps the login surface free of account-existence signals:
// a not-found from the backing collection is reported as a credential
// failure (401), never as a 404.
func loginError(err error) error {
	if errors.Is(err, domain.ErrStudentNotFound) || errors.Is(err, domain.ErrTutorNotFound) {
		return domain.ErrInvalidCredentials
	}
	return err
}

func bindLogin(c echo.Context) (*loginRequest, error) {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &req, nil
}

func recordLogin(role string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.LoginAttemptsTotal.WithLabelValues(role, result).Inc()
}
