package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
	"github.com/qent/car-rental-system/internal/core/session"
)

type AuthHandler struct {
	authService ports.AuthService
	notifier    *session.Notifier
}

func NewAuthHandler(authService ports.AuthService, notifier *session.Notifier) *AuthHandler {
	return &AuthHandler{authService: authService, notifier: notifier}
}

type registerRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Country  string `json:"country"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new user account with the user role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Country:  req.Country,
	})
	if err != nil {
		return err
	}

	h.notifier.Publish(session.AuthEvent{UserID: user.ID})
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	h.notifier.Publish(session.AuthEvent{UserID: user.ID})
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Logout publishes a signed-out auth event. Tokens are stateless, so this only
// updates the process-wide session state; clients drop the token themselves.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.notifier.Publish(session.AuthEvent{})
	return c.JSON(http.StatusOK, map[string]string{"status": "signed out"})
}
