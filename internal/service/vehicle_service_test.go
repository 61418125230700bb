package service

import (
	"context"
	"testing"

	"carrental/internal/apperr"
	"carrental/internal/db"
	"carrental/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehicleStoreMock struct {
	vehicles  map[int]*db.Vehicle
	nextID    int
	createErr error
	deleted   []int
}

func newVehicleStoreMock() *vehicleStoreMock {
	return &vehicleStoreMock{vehicles: make(map[int]*db.Vehicle)}
}

func (m *vehicleStoreMock) Create(ctx context.Context, v *db.Vehicle) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	v.ID = m.nextID
	stored := *v
	m.vehicles[v.ID] = &stored
	return nil
}

func (m *vehicleStoreMock) GetByID(ctx context.Context, id int) (*db.Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return nil, apperr.NewNotFoundError("Vehicle with this id does not exist.")
	}
	clone := *v
	return &clone, nil
}

func (m *vehicleStoreMock) Update(ctx context.Context, v *db.Vehicle) error {
	stored := *v
	m.vehicles[v.ID] = &stored
	return nil
}

func (m *vehicleStoreMock) Delete(ctx context.Context, id int) error {
	delete(m.vehicles, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *vehicleStoreMock) List(ctx context.Context, ownerID int, year *int, makeSubstring string) ([]db.Vehicle, error) {
	var out []db.Vehicle
	for _, v := range m.vehicles {
		if v.UserID == ownerID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func TestVehicleCreate_NormalizesAndStores(t *testing.T) {
	store := newVehicleStoreMock()
	svc := NewVehicleService(store, DefaultVehicleRules())

	vehicle, err := svc.Create(context.Background(), 1, entities.VehicleInput{
		Make:  "  toyota ",
		Model: "corolla",
		Year:  2020,
		Plate: "abc-1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "Toyota", vehicle.Make)
	assert.Equal(t, "Corolla", vehicle.Model)
	assert.Equal(t, "ABC-1234", vehicle.Plate)
	assert.Equal(t, 1, vehicle.UserID)
	assert.NotZero(t, vehicle.ID)
}

func TestVehicleCreate_InvalidNotStored(t *testing.T) {
	store := newVehicleStoreMock()
	svc := NewVehicleService(store, DefaultVehicleRules())

	_, err := svc.Create(context.Background(), 1, entities.VehicleInput{
		Make:  "toyota",
		Model: "civic",
		Year:  2020,
		Plate: "ABC-1234",
	})
	require.Error(t, err)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, store.vehicles)
}

func TestVehicleCreate_DuplicatePlateConflict(t *testing.T) {
	store := newVehicleStoreMock()
	store.createErr = apperr.NewConflictError("A vehicle with this license plate already exists.")
	svc := NewVehicleService(store, DefaultVehicleRules())

	_, err := svc.Create(context.Background(), 1, entities.VehicleInput{
		Make:  "toyota",
		Model: "corolla",
		Year:  2020,
		Plate: "ABC-1234",
	})
	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestVehicleUpdate_OwnerOnly(t *testing.T) {
	store := newVehicleStoreMock()
	svc := NewVehicleService(store, DefaultVehicleRules())

	created, err := svc.Create(context.Background(), 1, entities.VehicleInput{
		Make: "toyota", Model: "corolla", Year: 2020, Plate: "ABC-1234",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, 2, entities.VehicleInput{Year: 2021})
	var permission *apperr.PermissionError
	require.ErrorAs(t, err, &permission)

	updated, err := svc.Update(context.Background(), created.ID, 1, entities.VehicleInput{Year: 2021})
	require.NoError(t, err)
	assert.Equal(t, 2021, updated.Year)
	assert.Equal(t, "Toyota", updated.Make, "unspecified fields keep their stored values")
	assert.Equal(t, "ABC-1234", updated.Plate)
}

func TestVehicleUpdate_RevalidatesMergedRecord(t *testing.T) {
	store := newVehicleStoreMock()
	svc := NewVehicleService(store, DefaultVehicleRules())

	created, err := svc.Create(context.Background(), 1, entities.VehicleInput{
		Make: "toyota", Model: "corolla", Year: 2020, Plate: "ABC-1234",
	})
	require.NoError(t, err)

	// The merged record is Toyota/Civic, a known cross-make mismatch.
	_, err = svc.Update(context.Background(), created.ID, 1, entities.VehicleInput{Model: "civic"})
	require.Error(t, err)
	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "model")
}

func TestVehicleDelete(t *testing.T) {
	store := newVehicleStoreMock()
	svc := NewVehicleService(store, DefaultVehicleRules())

	created, err := svc.Create(context.Background(), 1, entities.VehicleInput{
		Make: "toyota", Model: "corolla", Year: 2020, Plate: "ABC-1234",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID, 2)
	var permission *apperr.PermissionError
	require.ErrorAs(t, err, &permission)

	require.NoError(t, svc.Delete(context.Background(), created.ID, 1))
	assert.Equal(t, []int{created.ID}, store.deleted)

	err = svc.Delete(context.Background(), created.ID, 1)
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
}
