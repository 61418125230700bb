package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carrental/internal/apperr"
	"carrental/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_Validation(t *testing.T) {
	verr := apperr.NewValidationError()
	verr.Add("end_date", "End date must be after start date.")
	verr.Add("vehicle", "This vehicle is already booked for the selected time period.")

	rec := httptest.NewRecorder()
	writeError(rec, verr)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"End date must be after start date."}, body["end_date"])
	assert.Contains(t, body, "vehicle")
}

func TestWriteError_Kinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"conflict", apperr.NewConflictError("A vehicle with this license plate already exists."), http.StatusConflict},
		{"permission", apperr.NewPermissionError("You do not have permission to delete this vehicle."), http.StatusForbidden},
		{"not found", apperr.NewNotFoundError("Vehicle with this id does not exist."), http.StatusNotFound},
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"opaque", assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["detail"])
		})
	}
}
