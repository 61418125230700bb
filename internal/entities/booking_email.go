package entities

import "time"

// BookingConfirmation carries everything the confirmation email and SMS
// templates need.
type BookingConfirmation struct {
	Code         string
	UserName     string
	UserEmail    string
	UserPhone    string
	VehicleMake  string
	VehicleModel string
	VehiclePlate string
	StartDate    time.Time
	EndDate      time.Time
}
