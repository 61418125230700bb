package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.False(t, verr.HasErrors())

	verr.Add("end_date", "End date must be after start date.")
	verr.Add("end_date", "Booking duration must be at least 1 hour.")
	verr.Add("start_date", "Booking start date must be at least 1 hour(s) in the future.")

	assert.True(t, verr.HasErrors())
	assert.Len(t, verr.Fields["end_date"], 2)
	assert.Equal(t, "end_date: End date must be after start date. Booking duration must be at least 1 hour.; start_date: Booking start date must be at least 1 hour(s) in the future.", verr.Error())
}

func TestErrorKinds(t *testing.T) {
	var err error = NewConflictError("A vehicle with this license plate already exists.")
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "A vehicle with this license plate already exists.", conflict.Error())

	err = NewPermissionError("You do not have permission to update this vehicle.")
	var permission *PermissionError
	require.ErrorAs(t, err, &permission)

	err = NewNotFoundError("Vehicle with this id does not exist.")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)

	// The kinds stay distinct.
	var conflictAgain *ConflictError
	assert.False(t, errors.As(err, &conflictAgain))
}
