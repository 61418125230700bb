package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"carrental/internal/apperr"
	"carrental/internal/db"
	"carrental/internal/entities"
	"carrental/internal/repository"
	"github.com/google/uuid"
)

const listDateLayout = "2006-01-02"

// BookingStore is the persistence the booking service needs. The create
// primitive runs the supplied validation atomically with the insert.
type BookingStore interface {
	Create(ctx context.Context, booking *db.Booking, validate repository.ValidateFunc) error
	ListForUser(ctx context.Context, userID int, from, to *time.Time) ([]db.Booking, error)
	WindowsForUser(ctx context.Context, userID int) ([]db.BookingWindow, error)
}

type VehicleGetter interface {
	GetByID(ctx context.Context, id int) (*db.Vehicle, error)
}

type UserGetter interface {
	GetByID(ctx context.Context, id int) (*db.User, error)
}

// Notifier sends booking confirmations.
type Notifier interface {
	SendBookingEmail(c entities.BookingConfirmation)
	SendBookingSMS(c entities.BookingConfirmation)
}

type BookingService struct {
	repo     BookingStore
	vehicles VehicleGetter
	users    UserGetter
	sender   Notifier
	rules    BookingRules
	now      func() time.Time
}

func NewBookingService(repo BookingStore, vehicles VehicleGetter, users UserGetter, sender Notifier, rules BookingRules) *BookingService {
	return &BookingService{
		repo:     repo,
		vehicles: vehicles,
		users:    users,
		sender:   sender,
		rules:    rules,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create books a vehicle for [start, end). Validation runs inside the store's
// create transaction against the vehicle's current bookings, so concurrent
// creates for the same vehicle cannot both pass the overlap check.
func (s *BookingService) Create(ctx context.Context, userID, vehicleID int, start, end time.Time) (*entities.BookingResponse, error) {
	now := s.now()
	booking := &db.Booking{
		Code:      newBookingCode(),
		VehicleID: vehicleID,
		UserID:    userID,
		StartDate: start.UTC(),
		EndDate:   end.UTC(),
	}

	err := s.repo.Create(ctx, booking, func(existing []db.BookingWindow) error {
		if verr := s.rules.Check(booking.StartDate, booking.EndDate, now, existing, 0); verr != nil {
			return verr
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyConfirmation(ctx, booking)

	return &entities.BookingResponse{
		ID:        booking.ID,
		Code:      booking.Code,
		VehicleID: booking.VehicleID,
		UserID:    booking.UserID,
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
		CreatedAt: booking.CreatedAt,
		State:     entities.BookingState(booking.StartDate, booking.EndDate, s.now()),
	}, nil
}

// ListForUser returns the user's bookings with derived temporal states.
// from/to are optional YYYY-MM-DD filters: from keeps bookings starting at or
// after that day, to keeps bookings ending by the end of that day.
func (s *BookingService) ListForUser(ctx context.Context, userID int, fromStr, toStr string) ([]entities.BookingResponse, error) {
	verr := apperr.NewValidationError()

	var from, to *time.Time
	if fromStr != "" {
		day, err := time.ParseInLocation(listDateLayout, fromStr, time.UTC)
		if err != nil {
			verr.Add("from", "Invalid date format for from_date. Use YYYY-MM-DD.")
		} else {
			from = &day
		}
	}
	if toStr != "" {
		day, err := time.ParseInLocation(listDateLayout, toStr, time.UTC)
		if err != nil {
			verr.Add("to", "Invalid date format for to_date. Use YYYY-MM-DD.")
		} else {
			endOfDay := day.Add(24*time.Hour - time.Nanosecond)
			to = &endOfDay
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	bookings, err := s.repo.ListForUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	now := s.now()
	responses := make([]entities.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, entities.BookingResponse{
			ID:        b.ID,
			Code:      b.Code,
			VehicleID: b.VehicleID,
			UserID:    b.UserID,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			CreatedAt: b.CreatedAt,
			State:     entities.BookingState(b.StartDate, b.EndDate, now),
		})
	}
	return responses, nil
}

// CheckConcurrentLimit applies the per-user cap on overlapping bookings
// across all vehicles. Not part of the default create flow.
func (s *BookingService) CheckConcurrentLimit(ctx context.Context, userID int, start, end time.Time) error {
	windows, err := s.repo.WindowsForUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user bookings: %w", err)
	}
	if verr := s.rules.CheckConcurrent(start.UTC(), end.UTC(), windows, 0); verr != nil {
		return verr
	}
	return nil
}

func (s *BookingService) notifyConfirmation(ctx context.Context, booking *db.Booking) {
	vehicle, err := s.vehicles.GetByID(ctx, booking.VehicleID)
	if err != nil {
		log.Printf("booking %s created but vehicle lookup for confirmation failed: %v", booking.Code, err)
		return
	}
	user, err := s.users.GetByID(ctx, booking.UserID)
	if err != nil || user == nil {
		log.Printf("booking %s created but user lookup for confirmation failed: %v", booking.Code, err)
		return
	}

	confirmation := entities.BookingConfirmation{
		Code:         booking.Code,
		UserName:     user.Username,
		UserEmail:    user.Email,
		UserPhone:    user.Phone,
		VehicleMake:  vehicle.Make,
		VehicleModel: vehicle.Model,
		VehiclePlate: vehicle.Plate,
		StartDate:    booking.StartDate,
		EndDate:      booking.EndDate,
	}
	s.sender.SendBookingEmail(confirmation)
	s.sender.SendBookingSMS(confirmation)
}

func newBookingCode() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
