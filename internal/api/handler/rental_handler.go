package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

// RentalHandler handles HTTP requests for bookings and rental history.
type RentalHandler struct {
	service ports.RentalService
}

func NewRentalHandler(service ports.RentalService) *RentalHandler {
	return &RentalHandler{service: service}
}

type bookRentalRequest struct {
	CarID     string `json:"car_id"     validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Duration  int    `json:"duration"   validate:"required,min=1"`
}

type bookRentalResponse struct {
	RentalID   string  `json:"rental_id"`
	CarName    string  `json:"car_name"`
	RentDate   string  `json:"rent_date"`
	Duration   int     `json:"duration"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
}

type rentalListResponse struct {
	Data []*domain.Rental `json:"data"`
}

// Book handles POST /v1/rentals.
//
// @Summary      Book a car for a date range
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRentalRequest  true  "Booking details"
// @Success      201   {object}  bookRentalResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/rentals [post]
func (h *RentalHandler) Book(c echo.Context) error {
	var req bookRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must be a date in the form 2006-01-02")
	}
	// The past-date guard belongs to the booking surface, not the
	// availability check itself.
	if start.Before(today()) {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date must not be in the past")
	}

	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.Book(c.Request().Context(), ports.BookRentalInput{
		UserID:    uid,
		CarID:     req.CarID,
		StartDate: start,
		Duration:  req.Duration,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, bookRentalResponse{
		RentalID:   result.RentalID,
		CarName:    result.CarName,
		RentDate:   result.RentDate,
		Duration:   result.Duration,
		TotalPrice: result.TotalPrice,
		Status:     result.Status,
	})
}

// History handles GET /v1/rentals. Admins may inspect another user's history
// via the user_id query parameter.
//
// @Summary      List the caller's rentals
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Target user id (admin only)"
// @Success      200      {object}  rentalListResponse
// @Failure      403      {object}  errorResponse
// @Router       /v1/rentals [get]
func (h *RentalHandler) History(c echo.Context) error {
	uid, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	target := uid
	if requested := c.QueryParam("user_id"); requested != "" && requested != uid {
		if role != domain.RoleAdmin {
			return domain.ErrForbidden
		}
		target = requested
	}

	rentals, err := h.service.History(c.Request().Context(), target)
	if err != nil {
		return err
	}
	if rentals == nil {
		rentals = []*domain.Rental{}
	}
	return c.JSON(http.StatusOK, rentalListResponse{Data: rentals})
}

// Cancel handles POST /v1/rentals/:id/cancel.
//
// @Summary      Cancel an active rental
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Rental id"
// @Success      204  "cancelled"
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/rentals/{id}/cancel [post]
func (h *RentalHandler) Cancel(c echo.Context) error {
	uid, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.Cancel(c.Request().Context(), c.Param("id"), uid, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Complete handles POST /v1/rentals/:id/complete.
//
// @Summary      Complete an active rental
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Rental id"
// @Success      204  "completed"
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/rentals/{id}/complete [post]
func (h *RentalHandler) Complete(c echo.Context) error {
	uid, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.service.Complete(c.Request().Context(), c.Param("id"), uid, role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
