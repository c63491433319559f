package maintenance

import (
	"testing"

	maintenanceModel "fleetflow/models/maintenance"
	vehicleModel "fleetflow/models/vehicle"

	gsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(gsqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite memory DB: %v", err)
	}

	if err := db.AutoMigrate(
		&vehicleModel.Vehicle{},
		&maintenanceModel.MaintenanceLog{},
	); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}

	return db
}

func seedVehicle(t *testing.T, db *gorm.DB, status vehicleModel.VehicleStatus) *vehicleModel.Vehicle {
	veh := vehicleModel.Vehicle{
		LicensePlate: "DH-5678",
		Make:         "Scania",
		Model:        "R450",
		Year:         2020,
		Status:       status,
		OdometerKm:   80000,
	}
	if err := db.Create(&veh).Error; err != nil {
		t.Fatalf("failed to seed vehicle: %v", err)
	}
	return &veh
}

func TestOpenMovesVehicleIntoShop(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh := seedVehicle(t, db, vehicleModel.VehicleStatusAvailable)

	log, err := svc.Open(&maintenanceModel.MaintenanceLog{
		VehicleID:         veh.ID,
		ServiceType:       "brake overhaul",
		Cost:              4200,
		OdometerAtService: 80000,
		CreatedBy:         "manager1",
	})
	assert.NoError(t, err)
	assert.True(t, log.Open)
	assert.Nil(t, log.ClosedAt)

	var fresh vehicleModel.Vehicle
	db.First(&fresh, veh.ID)
	assert.Equal(t, vehicleModel.VehicleStatusInShop, fresh.Status)
	assert.Equal(t, uint(1), fresh.Version)
}

func TestOpenRejectsVehicleOnTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh := seedVehicle(t, db, vehicleModel.VehicleStatusOnTrip)

	_, err := svc.Open(&maintenanceModel.MaintenanceLog{
		VehicleID:   veh.ID,
		ServiceType: "oil change",
		CreatedBy:   "manager1",
	})
	assert.ErrorIs(t, err, ErrVehicleBusy)
}

func TestOpenRejectsSecondOpenLog(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh := seedVehicle(t, db, vehicleModel.VehicleStatusAvailable)

	_, err := svc.Open(&maintenanceModel.MaintenanceLog{
		VehicleID:   veh.ID,
		ServiceType: "engine diagnostics",
		CreatedBy:   "manager1",
	})
	assert.NoError(t, err)

	_, err = svc.Open(&maintenanceModel.MaintenanceLog{
		VehicleID:   veh.ID,
		ServiceType: "tire rotation",
		CreatedBy:   "manager1",
	})
	assert.ErrorIs(t, err, ErrAlreadyInShop)
}

func TestOpenUnknownVehicle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Open(&maintenanceModel.MaintenanceLog{
		VehicleID:   9999,
		ServiceType: "oil change",
		CreatedBy:   "manager1",
	})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestCloseReleasesVehicle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh := seedVehicle(t, db, vehicleModel.VehicleStatusAvailable)

	log, err := svc.Open(&maintenanceModel.MaintenanceLog{
		VehicleID:   veh.ID,
		ServiceType: "suspension repair",
		Cost:        9100,
		CreatedBy:   "manager1",
	})
	assert.NoError(t, err)

	closed, err := svc.Close(veh.ID, log.ID)
	assert.NoError(t, err)
	assert.False(t, closed.Open)
	assert.NotNil(t, closed.ClosedAt)

	var fresh vehicleModel.Vehicle
	db.First(&fresh, veh.ID)
	assert.Equal(t, vehicleModel.VehicleStatusAvailable, fresh.Status)
	assert.Equal(t, uint(2), fresh.Version)
}

func TestCloseTwiceRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh := seedVehicle(t, db, vehicleModel.VehicleStatusAvailable)

	log, err := svc.Open(&maintenanceModel.MaintenanceLog{
		VehicleID:   veh.ID,
		ServiceType: "ac repair",
		CreatedBy:   "manager1",
	})
	assert.NoError(t, err)

	_, err = svc.Close(veh.ID, log.ID)
	assert.NoError(t, err)

	_, err = svc.Close(veh.ID, log.ID)
	assert.ErrorIs(t, err, ErrLogClosed)
}

func TestCloseUnknownLog(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh := seedVehicle(t, db, vehicleModel.VehicleStatusAvailable)

	_, err := svc.Close(veh.ID, 9999)
	assert.ErrorIs(t, err, ErrLogNotFound)
}
