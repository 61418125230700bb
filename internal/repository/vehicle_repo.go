package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental/internal/apperr"
	"carrental/internal/db"
	"github.com/lib/pq"
)

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

// Create inserts a vehicle. A duplicate plate surfaces as a ConflictError via
// the unique index, not as a validation failure.
func (r *VehicleRepository) Create(ctx context.Context, v *db.Vehicle) error {
	now := time.Now().UTC()
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO vehicles (user_id, make, model, year, plate, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $6)
		 RETURNING id, created_at, updated_at`,
		v.UserID, v.Make, v.Model, v.Year, v.Plate, now,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	return mapPlateConflict(err)
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int) (*db.Vehicle, error) {
	var v db.Vehicle
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, make, model, year, plate, created_at, updated_at
		 FROM vehicles WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Year, &v.Plate, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NewNotFoundError("Vehicle with this id does not exist.")
		}
		return nil, fmt.Errorf("query vehicle %d: %w", id, err)
	}
	return &v, nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *db.Vehicle) error {
	err := r.DB.QueryRowContext(ctx,
		`UPDATE vehicles SET make = $1, model = $2, year = $3, plate = $4, updated_at = $5
		 WHERE id = $6
		 RETURNING updated_at`,
		v.Make, v.Model, v.Year, v.Plate, time.Now().UTC(), v.ID,
	).Scan(&v.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NewNotFoundError("Vehicle with this id does not exist.")
	}
	return mapPlateConflict(err)
}

// Delete removes a vehicle; the schema cascades the delete to its bookings.
func (r *VehicleRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete vehicle %d: %w", id, err)
	}
	if affected == 0 {
		return apperr.NewNotFoundError("Vehicle with this id does not exist.")
	}
	return nil
}

// List returns the owner's vehicles, optionally filtered by exact year and
// case-insensitive make substring.
func (r *VehicleRepository) List(ctx context.Context, ownerID int, year *int, makeSubstring string) ([]db.Vehicle, error) {
	query := `SELECT id, user_id, make, model, year, plate, created_at, updated_at
	          FROM vehicles WHERE user_id = $1`
	args := []interface{}{ownerID}
	if year != nil {
		args = append(args, *year)
		query += fmt.Sprintf(" AND year = $%d", len(args))
	}
	if makeSubstring != "" {
		args = append(args, "%"+makeSubstring+"%")
		query += fmt.Sprintf(" AND make ILIKE $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vehicles for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.Make, &v.Model, &v.Year, &v.Plate, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func mapPlateConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
		return apperr.NewConflictError("A vehicle with this license plate already exists.")
	}
	return err
}
