package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"carrental/internal/auth"
	"carrental/internal/db"
	"carrental/internal/entities"
	"carrental/internal/service"
	"github.com/gorilla/mux"
)

type VehicleHandler struct {
	Service *service.VehicleService
}

func NewVehicleHandler(svc *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{Service: svc}
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input entities.VehicleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	vehicle, err := h.Service.Create(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicleResponse(vehicle))
}

// List returns a user's vehicles. user_id defaults to the authenticated
// user; year and make narrow the result.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ownerID := userID
	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"user_id": {"Must be an integer."}})
			return
		}
		ownerID = id
	}

	var year *int
	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"year": {"Must be an integer."}})
			return
		}
		year = &y
	}

	vehicles, err := h.Service.List(r.Context(), ownerID, year, r.URL.Query().Get("make"))
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]entities.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		responses = append(responses, vehicleResponse(&vehicles[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := vehicleID(r)
	if err != nil {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}
	vehicle, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleResponse(vehicle))
}

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := vehicleID(r)
	if err != nil {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}

	var input entities.VehicleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	vehicle, err := h.Service.Update(r.Context(), id, userID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicleResponse(vehicle))
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := vehicleID(r)
	if err != nil {
		http.Error(w, "Invalid vehicle id", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), id, userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"detail": "Vehicle deleted successfully."})
}

func vehicleID(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func vehicleResponse(v *db.Vehicle) entities.VehicleResponse {
	return entities.VehicleResponse{
		ID:        v.ID,
		UserID:    v.UserID,
		Make:      v.Make,
		Model:     v.Model,
		Year:      v.Year,
		Plate:     v.Plate,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
