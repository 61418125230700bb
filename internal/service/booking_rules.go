package service

import (
	"fmt"
	"time"

	"carrental/internal/apperr"
	"carrental/internal/db"
)

// BookingRules holds the temporal constraints applied to every proposed
// booking. Injected rather than package-level so tests and deployments can
// override the limits.
type BookingRules struct {
	LeadTime      time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	MaxConcurrent int
}

// DefaultBookingRules returns the production rule set: bookings start at
// least one hour out, run between one hour and thirty days, and a user may
// hold at most three overlapping bookings.
func DefaultBookingRules() BookingRules {
	return BookingRules{
		LeadTime:      time.Hour,
		MinDuration:   time.Hour,
		MaxDuration:   30 * 24 * time.Hour,
		MaxConcurrent: 3,
	}
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Half-open semantics: a booking ending exactly when another starts does not
// overlap, so back-to-back bookings are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aEnd.After(bStart) && aStart.Before(bEnd)
}

// Check validates a proposed [start, end) window for a vehicle against the
// vehicle's existing bookings. It accumulates every applicable field error
// instead of stopping at the first, with one exception: duration bounds are
// only evaluated once the date order is valid, so a negative duration never
// overshadows the order message.
//
// excludeID names a booking to ignore during the overlap scan (for update
// flows); pass 0 to scan everything. A nil result means the window is
// admissible.
func (r BookingRules) Check(start, end, now time.Time, existing []db.BookingWindow, excludeID int) *apperr.ValidationError {
	verr := apperr.NewValidationError()

	orderOK := end.After(start)
	if !orderOK {
		verr.Add("end_date", "End date must be after start date.")
	}

	if start.Before(now.Add(r.LeadTime)) {
		verr.Add("start_date", fmt.Sprintf("Booking start date must be at least %d hour(s) in the future.", int(r.LeadTime.Hours())))
	}

	if orderOK {
		duration := end.Sub(start)
		if duration < r.MinDuration {
			verr.Add("end_date", "Booking duration must be at least 1 hour.")
		}
		if duration > r.MaxDuration {
			verr.Add("end_date", "Booking duration cannot exceed 30 days.")
		}
	}

	for _, b := range existing {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if Overlaps(b.StartDate, b.EndDate, start, end) {
			verr.Add("vehicle", "This vehicle is already booked for the selected time period.")
			break
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// CheckConcurrent enforces the per-user concurrent booking cap against the
// user's bookings across all vehicles. Defined separately from Check because
// the default create flow does not apply it.
func (r BookingRules) CheckConcurrent(start, end time.Time, userBookings []db.BookingWindow, excludeID int) *apperr.ValidationError {
	count := 0
	for _, b := range userBookings {
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if Overlaps(b.StartDate, b.EndDate, start, end) {
			count++
		}
	}
	if count >= r.MaxConcurrent {
		verr := apperr.NewValidationError()
		verr.Add("user", fmt.Sprintf("You cannot have more than %d concurrent bookings.", r.MaxConcurrent))
		return verr
	}
	return nil
}
