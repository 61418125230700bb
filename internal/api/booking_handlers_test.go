package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carrental/internal/auth"
	"carrental/internal/db"
	"carrental/internal/entities"
	"carrental/internal/repository"
	"carrental/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingStore struct {
	windows []db.BookingWindow
}

func (s *stubBookingStore) Create(ctx context.Context, booking *db.Booking, validate repository.ValidateFunc) error {
	if err := validate(s.windows); err != nil {
		return err
	}
	booking.ID = 1
	booking.CreatedAt = time.Now().UTC()
	return nil
}

func (s *stubBookingStore) ListForUser(ctx context.Context, userID int, from, to *time.Time) ([]db.Booking, error) {
	return nil, nil
}

func (s *stubBookingStore) WindowsForUser(ctx context.Context, userID int) ([]db.BookingWindow, error) {
	return nil, nil
}

type stubVehicles struct{}

func (stubVehicles) GetByID(ctx context.Context, id int) (*db.Vehicle, error) {
	return &db.Vehicle{ID: id, Make: "Toyota", Model: "Corolla", Plate: "ABC-1234"}, nil
}

type stubUsers struct{}

func (stubUsers) GetByID(ctx context.Context, id int) (*db.User, error) {
	return &db.User{ID: id, Username: "ali", Email: "ali@example.com"}, nil
}

type stubNotifier struct{}

func (stubNotifier) SendBookingEmail(entities.BookingConfirmation) {}
func (stubNotifier) SendBookingSMS(entities.BookingConfirmation)   {}

func newBookingHandler(store *stubBookingStore) *BookingHandler {
	svc := service.NewBookingService(store, stubVehicles{}, stubUsers{}, stubNotifier{}, service.DefaultBookingRules())
	return NewBookingHandler(svc)
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(auth.WithUserID(req.Context(), 1))
}

func TestBookingCreateHandler_Created(t *testing.T) {
	h := newBookingHandler(&stubBookingStore{})

	start := time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339)
	end := time.Now().UTC().Add(4 * time.Hour).Format(time.RFC3339)
	body := `{"vehicle": 5, "start_date": "` + start + `", "end_date": "` + end + `"}`

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/bookings", body))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp entities.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.VehicleID)
	assert.Equal(t, 1, resp.UserID)
	assert.NotEmpty(t, resp.Code)
	assert.Equal(t, entities.BookingStateFuture, resp.State)
}

func TestBookingCreateHandler_Overlap(t *testing.T) {
	now := time.Now().UTC()
	h := newBookingHandler(&stubBookingStore{
		windows: []db.BookingWindow{
			{ID: 9, StartDate: now.Add(2 * time.Hour), EndDate: now.Add(4 * time.Hour)},
		},
	})

	start := now.Add(3 * time.Hour).Format(time.RFC3339)
	end := now.Add(5 * time.Hour).Format(time.RFC3339)
	body := `{"vehicle": 5, "start_date": "` + start + `", "end_date": "` + end + `"}`

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/bookings", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Contains(t, fields["vehicle"], "This vehicle is already booked for the selected time period.")
}

func TestBookingCreateHandler_BadDates(t *testing.T) {
	h := newBookingHandler(&stubBookingStore{})

	body := `{"vehicle": 5, "start_date": "tomorrow", "end_date": "2026-13-99T00:00:00Z"}`
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/bookings", body))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fields))
	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "end_date")
}

func TestBookingCreateHandler_Unauthenticated(t *testing.T) {
	h := newBookingHandler(&stubBookingStore{})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
