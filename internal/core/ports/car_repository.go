package ports

import (
	"context"

	"github.com/qent/car-rental-system/internal/core/domain"
)

// ListCarsFilter carries all query parameters for browsing the car catalogue.
type ListCarsFilter struct {
	Brand    string // optional: brand id
	Category string // optional: category name
	Search   string // optional: partial match on car name
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// CarUpdate carries the mutable car fields. Nil means "leave unchanged".
type CarUpdate struct {
	Name          *string
	Price         *float64
	Brand         *string
	Category      *string
	Location      *domain.GeoPoint
	RentalAddress *string
	Image         *string
}

// CarRepository defines persistence operations for cars.
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Car, error)
	// List returns a page of cars matching filter and the total count.
	List(ctx context.Context, filter ListCarsFilter) ([]*domain.Car, int64, error)
	Update(ctx context.Context, id string, update CarUpdate) error
	Delete(ctx context.Context, id string) error
}

// BrandRepository defines persistence operations for brands.
type BrandRepository interface {
	Create(ctx context.Context, brand *domain.Brand) (string, error)
	List(ctx context.Context) ([]*domain.Brand, error)
}
