package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental/internal/apperr"
	"carrental/internal/db"
)

// ValidateFunc checks a proposed booking against the vehicle's existing
// windows. It runs inside the create transaction, after the vehicle row is
// locked, so the windows it sees cannot change before the insert commits.
type ValidateFunc func(existing []db.BookingWindow) error

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

// Create persists a booking if validate accepts it. The overlap check and the
// insert are one atomic unit: the transaction takes a row lock on the vehicle
// first, so two concurrent creates for the same vehicle serialize and the
// loser sees the winner's booking in its windows.
func (r *BookingRepository) Create(ctx context.Context, booking *db.Booking, validate ValidateFunc) error {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var vehicleID int
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`,
		booking.VehicleID,
	).Scan(&vehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = apperr.NewNotFoundError("Vehicle with this id does not exist.")
			return err
		}
		err = fmt.Errorf("lock vehicle row: %w", mapConflict(err))
		return err
	}

	windows, err := bookingWindows(ctx, tx, booking.VehicleID)
	if err != nil {
		return err
	}

	if err = validate(windows); err != nil {
		return err
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO bookings (code, vehicle_id, user_id, start_date, end_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		booking.Code, booking.VehicleID, booking.UserID,
		booking.StartDate, booking.EndDate, time.Now().UTC(),
	).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		err = mapConflict(err)
		return err
	}

	if err = tx.Commit(); err != nil {
		err = mapConflict(err)
		return err
	}
	return nil
}

func bookingWindows(ctx context.Context, tx *sql.Tx, vehicleID int) ([]db.BookingWindow, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, start_date, end_date FROM bookings WHERE vehicle_id = $1`,
		vehicleID,
	)
	if err != nil {
		return nil, fmt.Errorf("query bookings for vehicle %d: %w", vehicleID, err)
	}
	defer rows.Close()

	var windows []db.BookingWindow
	for rows.Next() {
		var w db.BookingWindow
		if err := rows.Scan(&w.ID, &w.StartDate, &w.EndDate); err != nil {
			return nil, fmt.Errorf("scan booking window: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

// ListForUser returns the user's bookings, newest start first, optionally
// restricted to start_date >= from and/or end_date <= to.
func (r *BookingRepository) ListForUser(ctx context.Context, userID int, from, to *time.Time) ([]db.Booking, error) {
	query := `SELECT id, code, vehicle_id, user_id, start_date, end_date, created_at
	          FROM bookings WHERE user_id = $1`
	args := []interface{}{userID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND start_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND end_date <= $%d", len(args))
	}
	query += " ORDER BY start_date DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings for user %d: %w", userID, err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := rows.Scan(&b.ID, &b.Code, &b.VehicleID, &b.UserID, &b.StartDate, &b.EndDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// WindowsForUser returns the user's booking windows across all vehicles, the
// input for the per-user concurrency cap.
func (r *BookingRepository) WindowsForUser(ctx context.Context, userID int) ([]db.BookingWindow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, start_date, end_date FROM bookings WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query bookings for user %d: %w", userID, err)
	}
	defer rows.Close()

	var windows []db.BookingWindow
	for rows.Next() {
		var w db.BookingWindow
		if err := rows.Scan(&w.ID, &w.StartDate, &w.EndDate); err != nil {
			return nil, fmt.Errorf("scan booking window: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
