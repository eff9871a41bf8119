package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/qent/car-rental-system/internal/core/ports"
)

// CarHandler handles HTTP requests for the car catalogue.
type CarHandler struct {
	cars    ports.CarService
	rentals ports.RentalService
}

func NewCarHandler(cars ports.CarService, rentals ports.RentalService) *CarHandler {
	return &CarHandler{cars: cars, rentals: rentals}
}

// List handles GET /v1/cars.
//
// @Summary      Browse the car catalogue
// @Tags         cars
// @Produce      json
// @Param        brand     query     string  false  "Brand id"
// @Param        category  query     string  false  "Category name"
// @Param        search    query     string  false  "Partial match on car name"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  listCarsResponse
// @Router       /v1/cars [get]
func (h *CarHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.cars.ListCars(c.Request().Context(), ports.ListCarsFilter{
		Brand:    c.QueryParam("brand"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListCarsResponse(result))
}

// Get handles GET /v1/cars/:id.
//
// @Summary      Get a car with its aggregated rating
// @Tags         cars
// @Produce      json
// @Param        id   path      string  true  "Car id"
// @Success      200  {object}  carDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/cars/{id} [get]
func (h *CarHandler) Get(c echo.Context) error {
	detail, err := h.cars.GetCar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCarDetailResponse(detail))
}

// Availability handles GET /v1/cars/:id/availability.
//
// @Summary      Check availability for a date range
// @Tags         cars
// @Produce      json
// @Param        id        path      string  true   "Car id"
// @Param        start     query     string  true   "Start date (YYYY-MM-DD)"
// @Param        duration  query     int     false  "Duration in days (default 1)"
// @Success      200       {object}  availabilityResponse
// @Failure      400       {object}  errorResponse
// @Router       /v1/cars/{id}/availability [get]
func (h *CarHandler) Availability(c echo.Context) error {
	start, err := time.Parse(time.DateOnly, c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be a date in the form 2006-01-02")
	}
	duration := 1
	if raw := c.QueryParam("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "duration must be a positive integer")
		}
	}

	available, err := h.rentals.CheckAvailability(c.Request().Context(), c.Param("id"), start, duration)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, availabilityResponse{
		CarID:     c.Param("id"),
		Start:     start.Format(time.DateOnly),
		Duration:  duration,
		Available: available,
	})
}

// Create handles POST /v1/cars (admin only).
//
// @Summary      Add a car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCarRequest  true  "Car details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/cars [post]
func (h *CarHandler) Create(c echo.Context) error {
	var req createCarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.cars.CreateCar(c.Request().Context(), toCreateCarInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Update handles PUT /v1/cars/:id (admin only).
//
// @Summary      Edit a car
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Car id"
// @Param        body  body      updateCarRequest  true  "Fields to change"
// @Success      204   "updated"
// @Failure      404   {object}  errorResponse
// @Router       /v1/cars/{id} [put]
func (h *CarHandler) Update(c echo.Context) error {
	var req updateCarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.cars.UpdateCar(c.Request().Context(), c.Param("id"), toCarUpdate(req)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/cars/:id (admin only).
//
// @Summary      Remove a car
// @Tags         cars
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Car id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/cars/{id} [delete]
func (h *CarHandler) Delete(c echo.Context) error {
	if err := h.cars.DeleteCar(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
