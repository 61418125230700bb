package db

import "time"

type User struct {
	ID           int
	Username     string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

type Vehicle struct {
	ID        int
	UserID    int
	Make      string
	Model     string
	Year      int
	Plate     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Booking struct {
	ID        int
	Code      string
	VehicleID int
	UserID    int
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// BookingWindow is the slice of a booking the overlap check needs.
type BookingWindow struct {
	ID        int
	StartDate time.Time
	EndDate   time.Time
}
