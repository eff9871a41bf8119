package ports

import (
	"context"

	"github.com/qent/car-rental-system/internal/core/domain"
)

// CreateCarInput carries all data needed to add a car to the catalogue.
type CreateCarInput struct {
	Name          string
	Price         float64
	Brand         string
	Category      string
	Location      *domain.GeoPoint
	RentalAddress string
	Image         string
}

// CarDetail is the full car view including the aggregated review rating.
type CarDetail struct {
	Car           *domain.Car
	AverageRating float64
	ReviewCount   int
}

// ListCarsResult is returned by ListCars.
type ListCarsResult struct {
	Items      []*domain.Car
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CarService defines catalogue use cases. Create, Update and Delete are
// admin-only; enforcement lives in the transport layer (RBAC middleware).
type CarService interface {
	CreateCar(ctx context.Context, input CreateCarInput) (string, error)
	GetCar(ctx context.Context, id string) (*CarDetail, error)
	ListCars(ctx context.Context, filter ListCarsFilter) (*ListCarsResult, error)
	UpdateCar(ctx context.Context, id string, update CarUpdate) error
	DeleteCar(ctx context.Context, id string) error
}

// BrandService defines brand use cases.
type BrandService interface {
	CreateBrand(ctx context.Context, name string, categories []string) (string, error)
	ListBrands(ctx context.Context) ([]*domain.Brand, error)
}
