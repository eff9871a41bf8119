package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

const maxPageLimit = 100

// CarService implements catalogue use cases.
type CarService struct {
	cars    ports.CarRepository
	reviews ports.ReviewService
	logger  zerolog.Logger
}

func NewCarService(cars ports.CarRepository, reviews ports.ReviewService, logger zerolog.Logger) *CarService {
	return &CarService{cars: cars, reviews: reviews, logger: logger}
}

func (s *CarService) CreateCar(ctx context.Context, input ports.CreateCarInput) (string, error) {
	if input.Name == "" || input.Brand == "" {
		return "", fmt.Errorf("create car: name and brand are required")
	}
	if input.Price < 0 {
		return "", fmt.Errorf("create car: price must be non-negative")
	}

	id, err := s.cars.Create(ctx, &domain.Car{
		Name:          input.Name,
		Price:         input.Price,
		Brand:         input.Brand,
		Category:      input.Category,
		Location:      input.Location,
		RentalAddress: input.RentalAddress,
		Image:         input.Image,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create car")
		return "", err
	}

	s.logger.Info().Str("car_id", id).Str("name", input.Name).Msg("car created")
	return id, nil
}

// GetCar returns the car plus its aggregated review rating. A rating lookup
// failure degrades to a zero rating instead of failing the whole detail view.
func (s *CarService) GetCar(ctx context.Context, id string) (*ports.CarDetail, error) {
	car, err := s.cars.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.CarDetail{Car: car}
	if rating, err := s.reviews.Rating(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("car_id", id).Msg("rating lookup failed")
	} else {
		detail.AverageRating = rating.Average
		detail.ReviewCount = rating.Count
	}
	return detail, nil
}

func (s *CarService) ListCars(ctx context.Context, filter ports.ListCarsFilter) (*ports.ListCarsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.cars.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListCarsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *CarService) UpdateCar(ctx context.Context, id string, update ports.CarUpdate) error {
	if update.Price != nil && *update.Price < 0 {
		return fmt.Errorf("update car: price must be non-negative")
	}
	if err := s.cars.Update(ctx, id, update); err != nil {
		return err
	}
	s.logger.Info().Str("car_id", id).Msg("car updated")
	return nil
}

func (s *CarService) DeleteCar(ctx context.Context, id string) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("car_id", id).Msg("car deleted")
	return nil
}

// BrandService implements brand use cases.
type BrandService struct {
	brands ports.BrandRepository
	logger zerolog.Logger
}

func NewBrandService(brands ports.BrandRepository, logger zerolog.Logger) *BrandService {
	return &BrandService{brands: brands, logger: logger}
}

func (s *BrandService) CreateBrand(ctx context.Context, name string, categories []string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("create brand: name is required")
	}
	id, err := s.brands.Create(ctx, &domain.Brand{Name: name, Categories: categories})
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("brand_id", id).Str("name", name).Msg("brand created")
	return id, nil
}

func (s *BrandService) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	return s.brands.List(ctx)
}
