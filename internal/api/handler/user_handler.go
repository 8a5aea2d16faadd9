package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hacker123-star/k-learnstudio2/internal/api/middleware"
	"github.com/hacker123-star/k-learnstudio2/internal/core/ports"
)

// UserHandler exposes the authenticated user's own profile.
type UserHandler struct {
	profileService ports.ProfileService
}

func NewUserHandler(profileService ports.ProfileService) *UserHandler {
	return &UserHandler{profileService: profileService}
}

// Me returns the caller's own profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	accountID, role, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.Me(c.Request().Context(), accountID, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UpdateName renames the caller's own account.
//
// @Summary      Update own name
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateNameRequest  true  "New name"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateName(c echo.Context) error {
	accountID, role, err := sessionIdentity(c)
	if err != nil {
		return err
	}

	var req updateNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.UpdateName(c.Request().Context(), accountID, role, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// sessionIdentity extracts the identity injected by the Auth middleware and
// fails fast when the claims are incomplete.
func sessionIdentity(c echo.Context) (accountID, role string, err error) {
	accountID, _ = c.Get(middleware.CtxAccountID).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if accountID == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return accountID, role, nil
}
