package domain

import (
	"errors"
	"time"
)

var ErrCarNotFound = errors.New("car not found")

// GeoPoint is a geographic coordinate pair for the pickup location.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Car is a rentable vehicle managed by administrators and read-only to the
// booking flow. Category and image are optional; Brand references a Brand id.
type Car struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Brand         string    `json:"brand"`
	Category      string    `json:"category,omitempty"`
	Location      *GeoPoint `json:"location,omitempty"`
	RentalAddress string    `json:"rental_address,omitempty"`
	Image         string    `json:"image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
