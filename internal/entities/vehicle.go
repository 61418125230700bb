package entities

import "time"

// VehicleInput is the caller-supplied portion of a vehicle record. On update,
// zero-valued fields keep their stored values.
type VehicleInput struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Plate string `json:"plate"`
}

type VehicleResponse struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Plate     string    `json:"plate"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
