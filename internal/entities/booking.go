package entities

import "time"

// Booking temporal states, derived at read time from the clock. Never
// persisted.
const (
	BookingStatePast    = "past"
	BookingStateCurrent = "current"
	BookingStateFuture  = "future"
)

// BookingState projects a booking's interval onto past/current/future
// relative to now. Boundaries are inclusive: a booking starting or ending
// exactly now is current.
func BookingState(start, end, now time.Time) string {
	switch {
	case end.Before(now):
		return BookingStatePast
	case start.After(now):
		return BookingStateFuture
	default:
		return BookingStateCurrent
	}
}

type BookingResponse struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	VehicleID int       `json:"vehicle_id"`
	UserID    int       `json:"user_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	State     string    `json:"state"`
}
