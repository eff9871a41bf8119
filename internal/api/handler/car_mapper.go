package handler

import (
	"github.com/qent/car-rental-system/internal/core/domain"
	"github.com/qent/car-rental-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateCarInput(req createCarRequest) ports.CreateCarInput {
	input := ports.CreateCarInput{
		Name:          req.Name,
		Price:         req.Price,
		Brand:         req.Brand,
		Category:      req.Category,
		RentalAddress: req.RentalAddress,
		Image:         req.Image,
	}
	if req.Location != nil {
		input.Location = &domain.GeoPoint{Latitude: req.Location.Latitude, Longitude: req.Location.Longitude}
	}
	return input
}

func toCarUpdate(req updateCarRequest) ports.CarUpdate {
	update := ports.CarUpdate{
		Name:          req.Name,
		Price:         req.Price,
		Brand:         req.Brand,
		Category:      req.Category,
		RentalAddress: req.RentalAddress,
		Image:         req.Image,
	}
	if req.Location != nil {
		update.Location = &domain.GeoPoint{Latitude: req.Location.Latitude, Longitude: req.Location.Longitude}
	}
	return update
}

// --- Domain → HTTP response ---

func toCarResponse(car *domain.Car) carResponse {
	resp := carResponse{
		ID:            car.ID,
		Name:          car.Name,
		Price:         car.Price,
		Brand:         car.Brand,
		Category:      car.Category,
		RentalAddress: car.RentalAddress,
		Image:         car.Image,
		CreatedAt:     car.CreatedAt.UTC(),
	}
	if car.Location != nil {
		resp.Location = &locationResponse{Latitude: car.Location.Latitude, Longitude: car.Location.Longitude}
	}
	return resp
}

func toCarDetailResponse(d *ports.CarDetail) carDetailResponse {
	return carDetailResponse{
		carResponse:   toCarResponse(d.Car),
		AverageRating: d.AverageRating,
		ReviewCount:   d.ReviewCount,
	}
}

func toListCarsResponse(r *ports.ListCarsResult) listCarsResponse {
	items := make([]carResponse, len(r.Items))
	for i, car := range r.Items {
		items[i] = toCarResponse(car)
	}
	return listCarsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}
