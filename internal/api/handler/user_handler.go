package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

// UserHandler handles HTTP requests for accounts and profiles.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// updateProfileRequest uses pointers so absent fields are left unchanged.
type updateProfileRequest struct {
	FullName *string `json:"full_name"`
	Country  *string `json:"country"`
	PhotoURL *string `json:"photo_url"`
}

type userListResponse struct {
	Data []*domain.User `json:"data"`
}

// List handles GET /v1/users (admin only).
//
// @Summary      List user accounts
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, userListResponse{Data: users})
}

// Me handles GET /v1/users/me.
//
// @Summary      Get the caller's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	user, err := h.service.GetProfile(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe handles PUT /v1/users/me.
//
// @Summary      Update the caller's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  updateProfileRequest  true  "Fields to change"
// @Success      204   "updated"
// @Router       /v1/users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.UpdateProfile(c.Request().Context(), uid, ports.ProfileUpdate{
		FullName: req.FullName,
		Country:  req.Country,
		PhotoURL: req.PhotoURL,
	}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
