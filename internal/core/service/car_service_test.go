package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

func newCarService(cars *stubCarRepo) *CarService {
	reviews := newReviewService(newStubReviewRepo(), cars, newStubRatingCache())
	return NewCarService(cars, reviews, zerolog.Nop())
}

func TestCreateCar_Validation(t *testing.T) {
	svc := newCarService(newStubCarRepo())

	if _, err := svc.CreateCar(context.Background(), ports.CreateCarInput{Brand: "tesla"}); err == nil {
		t.Fatalf("missing name must be rejected")
	}
	if _, err := svc.CreateCar(context.Background(), ports.CreateCarInput{Name: "Model 3"}); err == nil {
		t.Fatalf("missing brand must be rejected")
	}
	if _, err := svc.CreateCar(context.Background(), ports.CreateCarInput{Name: "Model 3", Brand: "tesla", Price: -1}); err == nil {
		t.Fatalf("negative price must be rejected")
	}
}

func TestCreateCar_Success(t *testing.T) {
	cars := newStubCarRepo()
	svc := newCarService(cars)

	id, err := svc.CreateCar(context.Background(), ports.CreateCarInput{Name: "Model 3", Brand: "tesla", Price: 90})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cars.FindByID(context.Background(), id); err != nil {
		t.Fatalf("created car not stored: %v", err)
	}
}

func TestGetCar_IncludesRating(t *testing.T) {
	cars := newStubCarRepo()
	cars.addCar("car-1", 100)
	reviews := newStubReviewRepo()
	reviewSvc := newReviewService(reviews, cars, newStubRatingCache())
	svc := NewCarService(cars, reviewSvc, zerolog.Nop())

	for _, r := range []int{5, 3} {
		if _, err := reviewSvc.AddReview(context.Background(), ports.AddReviewInput{UserID: "user-1", CarID: "car-1", Rating: r}); err != nil {
			t.Fatalf("add review: %v", err)
		}
	}

	detail, err := svc.GetCar(context.Background(), "car-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.AverageRating != 4 || detail.ReviewCount != 2 {
		t.Fatalf("rating = %v/%d, want 4/2", detail.AverageRating, detail.ReviewCount)
	}
}

func TestGetCar_RatingFailureDegrades(t *testing.T) {
	cars := newStubCarRepo()
	cars.addCar("car-1", 100)
	reviews := newStubReviewRepo()
	reviews.listErr = errors.New("mongo down")
	cache := newStubRatingCache()
	cache.getErr = errors.New("redis down")
	svc := NewCarService(cars, newReviewService(reviews, cars, cache), zerolog.Nop())

	detail, err := svc.GetCar(context.Background(), "car-1")
	if err != nil {
		t.Fatalf("rating failure must not fail the detail view: %v", err)
	}
	if detail.AverageRating != 0 || detail.ReviewCount != 0 {
		t.Fatalf("expected zero rating on failure, got %v/%d", detail.AverageRating, detail.ReviewCount)
	}
}

func TestGetCar_NotFound(t *testing.T) {
	svc := newCarService(newStubCarRepo())
	if _, err := svc.GetCar(context.Background(), "missing"); !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
}

func TestListCars_NormalisesPagination(t *testing.T) {
	cars := newStubCarRepo()
	cars.addCar("car-1", 100)
	svc := newCarService(cars)

	res, err := svc.ListCars(context.Background(), ports.ListCarsFilter{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 {
		t.Fatalf("page = %d, want 1", res.Page)
	}
	if res.Limit != maxPageLimit {
		t.Fatalf("limit = %d, want %d", res.Limit, maxPageLimit)
	}
	if cars.lastList.Page != 1 || cars.lastList.Limit != maxPageLimit {
		t.Fatalf("normalised filter not passed to repository: %+v", cars.lastList)
	}
}

func TestListCars_TotalPages(t *testing.T) {
	cars := newStubCarRepo()
	cars.addCar("car-1", 100)
	cars.listTotal = 25
	svc := newCarService(cars)

	res, err := svc.ListCars(context.Background(), ports.ListCarsFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", res.TotalPages)
	}
}

func TestUpdateCar_NegativePrice(t *testing.T) {
	cars := newStubCarRepo()
	cars.addCar("car-1", 100)
	svc := newCarService(cars)

	bad := -5.0
	if err := svc.UpdateCar(context.Background(), "car-1", ports.CarUpdate{Price: &bad}); err == nil {
		t.Fatalf("negative price must be rejected")
	}
}

func TestDeleteCar(t *testing.T) {
	cars := newStubCarRepo()
	cars.addCar("car-1", 100)
	svc := newCarService(cars)

	if err := svc.DeleteCar(context.Background(), "car-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteCar(context.Background(), "car-1"); !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("second delete should report not found, got %v", err)
	}
}

func TestCreateBrand_RequiresName(t *testing.T) {
	svc := NewBrandService(stubBrandRepo{}, zerolog.Nop())
	if _, err := svc.CreateBrand(context.Background(), "", nil); err == nil {
		t.Fatalf("missing name must be rejected")
	}
}

type stubBrandRepo struct{}

func (stubBrandRepo) Create(_ context.Context, _ *domain.Brand) (string, error) {
	return "brand-1", nil
}

func (stubBrandRepo) List(_ context.Context) ([]*domain.Brand, error) {
	return nil, nil
}
