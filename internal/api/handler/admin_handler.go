package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hacker123-star/k-learnstudio2/internal/api/metrics"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// AdminHandler exposes the admin review gate. All routes sit behind the Auth
// middleware with the admin role required.
type AdminHandler struct {
	reviewService ports.ReviewService
}

func NewAdminHandler(reviewService ports.ReviewService) *AdminHandler {
	return &AdminHandler{reviewService: reviewService}
}

// ListPending lists tutor applications awaiting review, newest first.
//
// @Summary      List pending tutor applications
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listTutorsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/tutors/pending [get]
func (h *AdminHandler) ListPending(c echo.Context) error {
	tutors, err := h.reviewService.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTutorListResponse(tutors))
}

// Approve approves a pending application and issues its login credential.
//
// @Summary      Approve a tutor application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tutor record id"
// @Success      200  {object}  approvalResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/approve-tutor/{id} [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	result, err := h.reviewService.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ApplicationsReviewedTotal.WithLabelValues("approved").Inc()

	return c.JSON(http.StatusOK, approvalResponse{
		Message:             "tutor approved",
		TutorID:             result.TutorID,
		ApplicationID:       result.ApplicationID,
		Email:               result.Email,
		TempPassword:        result.TempPassword,
		CredentialDelivered: result.CredentialDelivered,
	})
}

// Reject rejects a pending application. The record is kept with a terminal
// rejected status.
//
// @Summary      Reject a tutor application
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tutor record id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/reject-tutor/{id} [post]
func (h *AdminHandler) Reject(c echo.Context) error {
	tutor, err := h.reviewService.Reject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ApplicationsReviewedTotal.WithLabelValues("rejected").Inc()

	return c.JSON(http.StatusOK, map[string]string{
		"message":        "tutor rejected",
		"tutor_id":       tutor.ID,
		"application_id": tutor.ApplicationID,
	})
}
