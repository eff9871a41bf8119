package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qent/car-rental-system/internal/core/ports"
)

// ReviewHandler handles HTTP requests for car reviews and ratings.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

type addReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ratingResponse struct {
	CarID   string  `json:"car_id"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Add handles POST /v1/cars/:id/reviews.
//
// @Summary      Review a car
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Car id"
// @Param        body  body      addReviewRequest  true  "Review"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/cars/{id}/reviews [post]
func (h *ReviewHandler) Add(c echo.Context) error {
	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	uid, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	id, err := h.service.AddReview(c.Request().Context(), ports.AddReviewInput{
		UserID:  uid,
		CarID:   c.Param("id"),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Rating handles GET /v1/cars/:id/rating.
//
// @Summary      Get a car's average rating
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Car id"
// @Success      200  {object}  ratingResponse
// @Router       /v1/cars/{id}/rating [get]
func (h *ReviewHandler) Rating(c echo.Context) error {
	carID := c.Param("id")
	rating, err := h.service.Rating(c.Request().Context(), carID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ratingResponse{
		CarID:   carID,
		Average: rating.Average,
		Count:   rating.Count,
	})
}
