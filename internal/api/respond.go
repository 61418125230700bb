package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"carrental/internal/apperr"
	"carrental/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeError maps the service error taxonomy onto HTTP. Validation errors
// render as a {field: [messages]} body so clients can attribute every
// violation to a field; anything unrecognized is an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	var verr *apperr.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, verr.Fields)
		return
	}

	var conflict *apperr.ConflictError
	if errors.As(err, &conflict) {
		writeJSON(w, http.StatusConflict, map[string]string{"detail": conflict.Message})
		return
	}

	var permission *apperr.PermissionError
	if errors.As(err, &permission) {
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": permission.Message})
		return
	}

	var notFound *apperr.NotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": notFound.Message})
		return
	}

	if errors.Is(err, service.ErrInvalidCredentials) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
		return
	}

	log.Printf("internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "Internal server error"})
}
