package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hacker123-star/k-learnstudio2/internal/api/metrics"
	"github.com/hacker123-star/k-learnstudio2/internal/core/domain"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// TutorHandler handles tutor application intake and the public directory.
type TutorHandler struct {
	intakeService ports.IntakeService
}

func NewTutorHandler(intakeService ports.IntakeService) *TutorHandler {
	return &TutorHandler{intakeService: intakeService}
}

// Submit accepts a new tutor application.
//
// @Summary      Submit a tutor application
// @Tags         tutors
// @Accept       mpfd
// @Produce      json
// @Param        name            formData  string  true   "Full name"
// @Param        email           formData  string  true   "Email"
// @Param        phone           formData  string  false  "Phone"
// @Param        subjects        formData  string  true   "Subjects (repeatable field)"
// @Param        profileImage    formData  file    true   "Profile image"
// @Param        educationProof  formData  file    true   "Education proof document"
// @Success      201  {object}  submitApplicationResponse
// @Failure      400  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /auth/tutor/register [post]
func (h *TutorHandler) Submit(c echo.Context) error {
	years, err := formInt(c, "experienceYears")
	if err != nil {
		return err
	}
	months, err := formInt(c, "experienceMonths")
	if err != nil {
		return err
	}

	input := ports.SubmitApplicationInput{
		Name:             c.FormValue("name"),
		Email:            c.FormValue("email"),
		Phone:            c.FormValue("phone"),
		Subjects:         formSubjects(c),
		Bio:              c.FormValue("bio"),
		City:             c.FormValue("city"),
		HighestEducation: c.FormValue("highestEducation"),
		ExperienceYears:  years,
		ExperienceMonths: months,
	}

	image, closeImage, err := formFile(c, "profileImage")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid profile image")
	}
	defer closeImage()
	input.ProfileImage = image

	proof, closeProof, err := formFile(c, "educationProof")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid education proof")
	}
	defer closeProof()
	input.EducationProof = proof

	result, err := h.intakeService.Submit(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.ApplicationsSubmittedTotal.Inc()

	return c.JSON(http.StatusCreated, submitApplicationResponse{
		Message:       "application submitted, pending admin review",
		ApplicationID: result.ApplicationID,
		Tutor:         toTutorResponse(result.Tutor),
	})
}

// List returns the public directory of approved tutors.
//
// @Summary      List approved tutors
// @Tags         tutors
// @Produce      json
// @Success      200  {object}  listTutorsResponse
// @Router       /tutors [get]
func (h *TutorHandler) List(c echo.Context) error {
	tutors, err := h.intakeService.ListApproved(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTutorListResponse(tutors))
}

// formSubjects collects the repeatable subjects field, accepting both
// "subjects" and the bracketed "subjects[]" form key.
func formSubjects(c echo.Context) []string {
	form, err := c.FormParams()
	if err != nil {
		return nil
	}
	subjects := append(form["subjects"], form["subjects[]"]...)

	// A single comma-separated value is also accepted.
	if len(subjects) == 1 && strings.Contains(subjects[0], ",") {
		subjects = strings.Split(subjects[0], ",")
	}
	return subjects
}

// formInt parses an optional numeric form field. An absent field is zero;
// a present but non-numeric value is a validation failure.
func formInt(c echo.Context, name string) (int, error) {
	raw := c.FormValue(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.InvalidField(name, "must be a whole number")
	}
	return n, nil
}
