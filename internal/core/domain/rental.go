package domain

import (
	"errors"
	"time"
)

// RentalStatus represents the lifecycle state of a rental.
type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalCancelled RentalStatus = "cancelled"
	RentalCompleted RentalStatus = "completed"
)

// validTransitions defines the allowed state machine transitions.
// Only active rentals can move; cancelled and completed are terminal.
var validTransitions = map[RentalStatus][]RentalStatus{
	RentalActive: {RentalCancelled, RentalCompleted},
}

var ErrRentalNotFound = errors.New("rental not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrCarUnavailable = errors.New("car unavailable for these dates")
var ErrUnauthenticated = errors.New("unauthenticated")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Rental is a booking of a single car by a single user. Car name and image are
// denormalised into the record so history screens render without a car lookup.
// RentDate is persisted as an ISO-8601 string; see ParseRentDate.
type Rental struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	CarID      string       `json:"car_id"`
	CarName    string       `json:"car_name"`
	Image      string       `json:"image,omitempty"`
	RentDate   string       `json:"rent_date"`
	Duration   int          `json:"duration"`
	Status     RentalStatus `json:"status"`
	TotalPrice float64      `json:"total_price"`
	CreatedAt  time.Time    `json:"created_at"`
}

// DayInterval is a closed range of calendar days, inclusive on both ends.
type DayInterval struct {
	Start time.Time
	End   time.Time
}

// NewDayInterval builds the interval [start, start+durationDays-1].
// A duration below one day is treated as a single day.
func NewDayInterval(start time.Time, durationDays int) DayInterval {
	if durationDays < 1 {
		durationDays = 1
	}
	s := truncateToDay(start)
	return DayInterval{Start: s, End: s.AddDate(0, 0, durationDays-1)}
}

// Overlaps reports whether two closed day intervals share at least one day:
// [s1,e1] and [s2,e2] overlap iff s1 <= e2 && s2 <= e1.
func (i DayInterval) Overlaps(other DayInterval) bool {
	return !i.Start.After(other.End) && !other.Start.After(i.End)
}

// Interval returns the day range this rental occupies. The second return value
// is false when the stored rent date cannot be parsed; such records must not
// block availability.
func (r Rental) Interval() (DayInterval, bool) {
	start, err := ParseRentDate(r.RentDate)
	if err != nil {
		return DayInterval{}, false
	}
	return NewDayInterval(start, r.Duration), true
}

// ParseRentDate accepts either a plain calendar date (2006-01-02) or a full
// RFC3339 timestamp, normalised to midnight UTC. Time-of-day carries no meaning
// for rentals.
func ParseRentDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return truncateToDay(t), nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
