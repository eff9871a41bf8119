package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qent/car-rental-system/internal/core/session"
)

// SessionHandler exposes the resolved session and its routing decision to
// clients deciding which navigation tree to mount.
type SessionHandler struct {
	manager    *session.Manager
	onboarding session.OnboardingStore
	logger     zerolog.Logger
}

func NewSessionHandler(manager *session.Manager, onboarding session.OnboardingStore, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{manager: manager, onboarding: onboarding, logger: logger}
}

type sessionRouteResponse struct {
	Route           string `json:"route"`
	IsAuthenticated bool   `json:"is_authenticated"`
	UserID          string `json:"user_id,omitempty"`
	Role            string `json:"role,omitempty"`
	Onboarded       bool   `json:"onboarded"`
}

type onboardingRequest struct {
	DeviceID string `json:"device_id" validate:"required"`
}

// Route handles GET /v1/session/route. Works for anonymous callers; a valid
// bearer token upgrades the resolution to the caller's role.
//
// @Summary      Resolve the initial navigation route
// @Tags         session
// @Produce      json
// @Param        device_id  query     string  true  "Client device id"
// @Success      200        {object}  sessionRouteResponse
// @Failure      400        {object}  errorResponse
// @Router       /v1/session/route [get]
func (h *SessionHandler) Route(c echo.Context) error {
	deviceID := c.QueryParam("device_id")
	if deviceID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "device_id is required")
	}

	uid, _ := c.Get("uid").(string)
	sess := h.manager.Resolve(c.Request().Context(), uid)

	// Onboarding state fails open: an unreadable flag must not trap the
	// client on the onboarding screens.
	onboarded, err := h.onboarding.Completed(c.Request().Context(), deviceID)
	if err != nil {
		h.logger.Warn().Err(err).Str("device_id", deviceID).Msg("onboarding lookup failed")
		onboarded = true
	}

	return c.JSON(http.StatusOK, sessionRouteResponse{
		Route:           string(session.RouteFor(sess, onboarded)),
		IsAuthenticated: sess.IsAuthenticated,
		UserID:          sess.UserID,
		Role:            string(sess.Role),
		Onboarded:       onboarded,
	})
}

// CompleteOnboarding handles POST /v1/session/onboarding.
//
// @Summary      Mark a device's onboarding as completed
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body  onboardingRequest  true  "Device"
// @Success      204   "recorded"
// @Failure      400   {object}  errorResponse
// @Router       /v1/session/onboarding [post]
func (h *SessionHandler) CompleteOnboarding(c echo.Context) error {
	var req onboardingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.onboarding.MarkCompleted(c.Request().Context(), req.DeviceID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
