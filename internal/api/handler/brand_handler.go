package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

// BrandHandler handles HTTP requests for brands.
type BrandHandler struct {
	service ports.BrandService
}

func NewBrandHandler(service ports.BrandService) *BrandHandler {
	return &BrandHandler{service: service}
}

type createBrandRequest struct {
	Name       string   `json:"name" validate:"required"`
	Categories []string `json:"categories"`
}

type brandListResponse struct {
	Data []*domain.Brand `json:"data"`
}

// List handles GET /v1/brands.
//
// @Summary      List brands and their category options
// @Tags         brands
// @Produce      json
// @Success      200  {object}  brandListResponse
// @Router       /v1/brands [get]
func (h *BrandHandler) List(c echo.Context) error {
	brands, err := h.service.ListBrands(c.Request().Context())
	if err != nil {
		return err
	}
	if brands == nil {
		brands = []*domain.Brand{}
	}
	return c.JSON(http.StatusOK, brandListResponse{Data: brands})
}

// Create handles POST /v1/brands (admin only).
//
// @Summary      Add a brand
// @Tags         brands
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBrandRequest  true  "Brand details"
// @Success      201   {object}  createdResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/brands [post]
func (h *BrandHandler) Create(c echo.Context) error {
	var req createBrandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.CreateBrand(c.Request().Context(), req.Name, req.Categories)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}
