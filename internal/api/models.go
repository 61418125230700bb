package api

// Booking
type CreateBookingRequest struct {
	VehicleID int    `json:"vehicle"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Auth
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Access string      `json:"access"`
	User   interface{} `json:"user"`
}
