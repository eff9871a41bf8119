package domain

import (
	"errors"
	"time"
)

var ErrReviewInvalid = errors.New("invalid review")

// Review is a user's star rating of a car, with an optional comment.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CarID     string    `json:"car_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
