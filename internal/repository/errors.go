package repository

import (
	"errors"

	"carrental/internal/apperr"
	"github.com/lib/pq"
)

// Postgres error codes this layer turns into conflicts the client can retry.
const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// mapConflict converts unique-index violations and lost serialization races
// into apperr.ConflictError; everything else passes through untouched.
func mapConflict(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pqUniqueViolation:
		return apperr.NewConflictError("A record with this value already exists.")
	case pqSerializationFailure, pqDeadlockDetected:
		return apperr.NewConflictError("The booking could not be completed due to a concurrent update. Please retry.")
	}
	return err
}
