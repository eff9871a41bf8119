package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type createCarRequest struct {
	Name          string           `json:"name"           validate:"required"`
	Price         float64          `json:"price"          validate:"gte=0"`
	Brand         string           `json:"brand"          validate:"required"`
	Category      string           `json:"category"`
	Location      *locationRequest `json:"location"`
	RentalAddress string           `json:"rental_address"`
	Image         string           `json:"image"`
}

// updateCarRequest uses pointers so absent fields are left unchanged.
type updateCarRequest struct {
	Name          *string          `json:"name"`
	Price         *float64         `json:"price"`
	Brand         *string          `json:"brand"`
	Category      *string          `json:"category"`
	Location      *locationRequest `json:"location"`
	RentalAddress *string          `json:"rental_address"`
	Image         *string          `json:"image"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type locationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type carResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Price         float64           `json:"price"`
	Brand         string            `json:"brand"`
	Category      string            `json:"category,omitempty"`
	Location      *locationResponse `json:"location,omitempty"`
	RentalAddress string            `json:"rental_address,omitempty"`
	Image         string            `json:"image,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

type carDetailResponse struct {
	carResponse
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listCarsResponse struct {
	Data       []carResponse      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type availabilityResponse struct {
	CarID     string `json:"car_id"`
	Start     string `json:"start"`
	Duration  int    `json:"duration"`
	Available bool   `json:"available"`
}

type createdResponse struct {
	ID string `json:"id"`
}
