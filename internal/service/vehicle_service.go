package service

import (
	"context"
	"time"

	"carrental/internal/apperr"
	"carrental/internal/db"
	"carrental/internal/entities"
)

type VehicleStore interface {
	Create(ctx context.Context, v *db.Vehicle) error
	GetByID(ctx context.Context, id int) (*db.Vehicle, error)
	Update(ctx context.Context, v *db.Vehicle) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, ownerID int, year *int, makeSubstring string) ([]db.Vehicle, error)
}

type VehicleService struct {
	repo  VehicleStore
	rules VehicleRules
	now   func() time.Time
}

func NewVehicleService(repo VehicleStore, rules VehicleRules) *VehicleService {
	return &VehicleService{
		repo:  repo,
		rules: rules,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create normalizes and validates the record, reporting all violated fields
// at once, then persists it. A duplicate plate comes back from the store as a
// conflict, distinct from validation failures.
func (s *VehicleService) Create(ctx context.Context, userID int, input entities.VehicleInput) (*db.Vehicle, error) {
	vehicle := &db.Vehicle{
		UserID: userID,
		Make:   input.Make,
		Model:  input.Model,
		Year:   input.Year,
		Plate:  input.Plate,
	}
	NormalizeVehicle(vehicle)
	if verr := s.rules.Check(vehicle, s.now()); verr != nil {
		return nil, verr
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Update merges the input over the stored record, re-runs full validation,
// and persists. Only the owner may update.
func (s *VehicleService) Update(ctx context.Context, vehicleID, requesterID int, input entities.VehicleInput) (*db.Vehicle, error) {
	vehicle, err := s.repo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.UserID != requesterID {
		return nil, apperr.NewPermissionError("You do not have permission to update this vehicle.")
	}

	if input.Make != "" {
		vehicle.Make = input.Make
	}
	if input.Model != "" {
		vehicle.Model = input.Model
	}
	if input.Year != 0 {
		vehicle.Year = input.Year
	}
	if input.Plate != "" {
		vehicle.Plate = input.Plate
	}

	NormalizeVehicle(vehicle)
	if verr := s.rules.Check(vehicle, s.now()); verr != nil {
		return nil, verr
	}
	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Delete removes the vehicle and, through the schema cascade, its bookings.
// Only the owner may delete.
func (s *VehicleService) Delete(ctx context.Context, vehicleID, requesterID int) error {
	vehicle, err := s.repo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.UserID != requesterID {
		return apperr.NewPermissionError("You do not have permission to delete this vehicle.")
	}
	return s.repo.Delete(ctx, vehicleID)
}

func (s *VehicleService) Get(ctx context.Context, vehicleID int) (*db.Vehicle, error) {
	return s.repo.GetByID(ctx, vehicleID)
}

// List returns the owner's vehicles with optional year and case-insensitive
// make-substring filters.
func (s *VehicleService) List(ctx context.Context, ownerID int, year *int, makeSubstring string) ([]db.Vehicle, error) {
	return s.repo.List(ctx, ownerID, year, makeSubstring)
}
