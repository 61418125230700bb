package api

import (
	"encoding/json"
	"net/http"
	"time"

	"carrental/internal/auth"
	"carrental/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fields := map[string][]string{}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		fields["start_date"] = []string{"Invalid datetime format. Use RFC 3339, e.g. 2026-01-02T15:04:05Z."}
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		fields["end_date"] = []string{"Invalid datetime format. Use RFC 3339, e.g. 2026-01-02T15:04:05Z."}
	}
	if len(fields) > 0 {
		writeJSON(w, http.StatusBadRequest, fields)
		return
	}

	booking, err := h.Service.Create(r.Context(), userID, req.VehicleID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	bookings, err := h.Service.ListForUser(r.Context(), userID,
		r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
