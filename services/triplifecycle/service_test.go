package triplifecycle

import (
	"testing"
	"time"

	driverModel "fleetflow/models/driver"
	tripModel "fleetflow/models/trip"
	vehicleModel "fleetflow/models/vehicle"

	gsqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite DB and auto-migrates the models the
// lifecycle touches
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(gsqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite memory DB: %v", err)
	}

	if err := db.AutoMigrate(
		&vehicleModel.Vehicle{},
		&driverModel.Driver{},
		&tripModel.Trip{},
		&tripModel.TripStatusEvent{},
	); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}

	return db
}

func seedFleet(t *testing.T, db *gorm.DB, vehStatus vehicleModel.VehicleStatus, drvStatus driverModel.DriverStatus) (*vehicleModel.Vehicle, *driverModel.Driver) {
	veh := vehicleModel.Vehicle{
		LicensePlate: "DH-1234",
		Make:         "Volvo",
		Model:        "FH16",
		Year:         2021,
		Status:       vehStatus,
		OdometerKm:   50000,
	}
	if err := db.Create(&veh).Error; err != nil {
		t.Fatalf("failed to seed vehicle: %v", err)
	}

	drv := driverModel.Driver{
		FullName:      "Rahim Uddin",
		LicenseNumber: "LIC-9001",
		LicenseExpiry: time.Now().AddDate(2, 0, 0),
		SafetyScore:   100,
		Status:        drvStatus,
	}
	if err := db.Create(&drv).Error; err != nil {
		t.Fatalf("failed to seed driver: %v", err)
	}

	return &veh, &drv
}

func seedTrip(t *testing.T, db *gorm.DB, veh *vehicleModel.Vehicle, drv *driverModel.Driver, status tripModel.TripStatus) *tripModel.Trip {
	trip := tripModel.Trip{
		Origin:      "Dhaka",
		Destination: "Chattogram",
		DistanceEst: 250,
		ClientName:  "Acme Logistics",
		Revenue:     18000,
		VehicleID:   veh.ID,
		DriverID:    drv.ID,
		Status:      status,
		CreatedBy:   "dispatcher1",
	}
	if status == tripModel.TripStatusDispatched {
		now := time.Now()
		trip.DispatchedAt = &now
	}
	if err := db.Create(&trip).Error; err != nil {
		t.Fatalf("failed to seed trip: %v", err)
	}
	return &trip
}

func TestDispatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	got, err := svc.Dispatch(trip.ID, "dispatcher1")
	assert.NoError(t, err)
	assert.Equal(t, tripModel.TripStatusDispatched, got.Status)
	assert.NotNil(t, got.DispatchedAt)

	var freshVeh vehicleModel.Vehicle
	db.First(&freshVeh, veh.ID)
	assert.Equal(t, vehicleModel.VehicleStatusOnTrip, freshVeh.Status)
	assert.Equal(t, uint(1), freshVeh.Version)

	var freshDrv driverModel.Driver
	db.First(&freshDrv, drv.ID)
	assert.Equal(t, driverModel.DriverStatusOnTrip, freshDrv.Status)

	var events []tripModel.TripStatusEvent
	db.Where("trip_id = ?", trip.ID).Find(&events)
	assert.Len(t, events, 1)
	assert.Equal(t, tripModel.TripStatusDispatched, events[0].Status)
	assert.Equal(t, "dispatcher1", events[0].CreatedBy)
}

func TestDispatchVehicleUnavailable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	for _, status := range []vehicleModel.VehicleStatus{
		vehicleModel.VehicleStatusOnTrip,
		vehicleModel.VehicleStatusInShop,
		vehicleModel.VehicleStatusRetired,
	} {
		veh, drv := seedFleet(t, db, status, driverModel.DriverStatusOnDuty)
		trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

		_, err := svc.Dispatch(trip.ID, "dispatcher1")
		assert.ErrorIs(t, err, ErrVehicleUnavailable, "status %s", status)

		// reuse the db but avoid plate collisions on the next round
		db.Model(veh).Update("license_plate", "DH-"+string(status))
		db.Model(drv).Update("license_number", "LIC-"+string(status))
	}
}

func TestDispatchDriverUnavailable(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOffDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Dispatch(trip.ID, "dispatcher1")
	assert.ErrorIs(t, err, ErrDriverUnavailable)
}

func TestDispatchExpiredLicense(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	db.Model(drv).Update("license_expiry", time.Now().AddDate(0, -1, 0))
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Dispatch(trip.ID, "dispatcher1")
	assert.ErrorIs(t, err, ErrLicenseExpired)

	// Nothing was committed
	var freshVeh vehicleModel.Vehicle
	db.First(&freshVeh, veh.ID)
	assert.Equal(t, vehicleModel.VehicleStatusAvailable, freshVeh.Status)
}

func TestDispatchTripNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Dispatch(9999, "dispatcher1")
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestComplete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Dispatch(trip.ID, "dispatcher1")
	assert.NoError(t, err)

	odometerEnd := 50120.0
	got, err := svc.Complete(trip.ID, 120, &odometerEnd, "dispatcher1")
	assert.NoError(t, err)
	assert.Equal(t, tripModel.TripStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
	if assert.NotNil(t, got.DistanceActual) {
		assert.Equal(t, 120.0, *got.DistanceActual)
	}

	var freshVeh vehicleModel.Vehicle
	db.First(&freshVeh, veh.ID)
	assert.Equal(t, vehicleModel.VehicleStatusAvailable, freshVeh.Status)
	assert.Equal(t, 50120.0, freshVeh.OdometerKm)

	var freshDrv driverModel.Driver
	db.First(&freshDrv, drv.ID)
	assert.Equal(t, driverModel.DriverStatusOnDuty, freshDrv.Status)

	var events []tripModel.TripStatusEvent
	db.Where("trip_id = ?", trip.ID).Order("id").Find(&events)
	assert.Len(t, events, 2)
	assert.Equal(t, tripModel.TripStatusCompleted, events[1].Status)
}

func TestCompleteOdometerNeverMovesBackward(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Dispatch(trip.ID, "dispatcher1")
	assert.NoError(t, err)

	odometerEnd := 40000.0 // below the seeded 50000
	_, err = svc.Complete(trip.ID, 120, &odometerEnd, "dispatcher1")
	assert.NoError(t, err)

	var freshVeh vehicleModel.Vehicle
	db.First(&freshVeh, veh.ID)
	assert.Equal(t, 50000.0, freshVeh.OdometerKm)
}

func TestCompleteRejectsNonPositiveDistance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)
	_, err := svc.Dispatch(trip.ID, "dispatcher1")
	assert.NoError(t, err)

	_, err = svc.Complete(trip.ID, 0, nil, "dispatcher1")
	assert.ErrorIs(t, err, ErrInvalidDistance)

	_, err = svc.Complete(trip.ID, -12.5, nil, "dispatcher1")
	assert.ErrorIs(t, err, ErrInvalidDistance)

	// The trip is still dispatched
	var fresh tripModel.Trip
	db.First(&fresh, trip.ID)
	assert.Equal(t, tripModel.TripStatusDispatched, fresh.Status)
}

func TestCompleteFromDraftRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Complete(trip.ID, 120, nil, "dispatcher1")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var fresh tripModel.Trip
	db.First(&fresh, trip.ID)
	assert.Equal(t, tripModel.TripStatusDraft, fresh.Status)
	assert.Nil(t, fresh.DistanceActual)

	var freshVeh vehicleModel.Vehicle
	db.First(&freshVeh, veh.ID)
	assert.Equal(t, vehicleModel.VehicleStatusAvailable, freshVeh.Status)
	assert.Equal(t, uint(0), freshVeh.Version)
}

func TestCompleteFromCancelledRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Cancel(trip.ID, "client pulled out", "dispatcher1")
	assert.NoError(t, err)

	_, err = svc.Complete(trip.ID, 120, nil, "dispatcher1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelDispatchedReleasesFleet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Dispatch(trip.ID, "dispatcher1")
	assert.NoError(t, err)

	got, err := svc.Cancel(trip.ID, "customer request", "dispatcher1")
	assert.NoError(t, err)
	assert.Equal(t, tripModel.TripStatusCancelled, got.Status)
	if assert.NotNil(t, got.CancelReason) {
		assert.Equal(t, "customer request", *got.CancelReason)
	}

	var freshVeh vehicleModel.Vehicle
	db.First(&freshVeh, veh.ID)
	assert.Equal(t, vehicleModel.VehicleStatusAvailable, freshVeh.Status)

	var freshDrv driverModel.Driver
	db.First(&freshDrv, drv.ID)
	assert.Equal(t, driverModel.DriverStatusOnDuty, freshDrv.Status)
}

func TestCancelDraftLeavesFleetUntouched(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Cancel(trip.ID, "rebooked", "dispatcher1")
	assert.NoError(t, err)

	// A draft never marked the pair ON_TRIP, so their versions are untouched
	var freshVeh vehicleModel.Vehicle
	db.First(&freshVeh, veh.ID)
	assert.Equal(t, vehicleModel.VehicleStatusAvailable, freshVeh.Status)
	assert.Equal(t, uint(0), freshVeh.Version)

	var freshDrv driverModel.Driver
	db.First(&freshDrv, drv.ID)
	assert.Equal(t, driverModel.DriverStatusOnDuty, freshDrv.Status)
	assert.Equal(t, uint(0), freshDrv.Version)
}

func TestCancelRejectsBlankReason(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Cancel(trip.ID, "   ", "dispatcher1")
	assert.ErrorIs(t, err, ErrBlankReason)
}

func TestCancelCompletedRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)
	trip := seedTrip(t, db, veh, drv, tripModel.TripStatusDraft)

	_, err := svc.Dispatch(trip.ID, "dispatcher1")
	assert.NoError(t, err)
	_, err = svc.Complete(trip.ID, 240, nil, "dispatcher1")
	assert.NoError(t, err)

	_, err = svc.Cancel(trip.ID, "too late", "dispatcher1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCasUpdateStaleVersion(t *testing.T) {
	db := setupTestDB(t)

	veh, _ := seedFleet(t, db, vehicleModel.VehicleStatusAvailable, driverModel.DriverStatusOnDuty)

	// First swap with the current version succeeds
	err := casUpdate(db, &vehicleModel.Vehicle{}, veh.ID, veh.Version, map[string]interface{}{
		"status": vehicleModel.VehicleStatusOnTrip,
	})
	assert.NoError(t, err)

	// Replaying the same version loses the race
	err = casUpdate(db, &vehicleModel.Vehicle{}, veh.ID, veh.Version, map[string]interface{}{
		"status": vehicleModel.VehicleStatusInShop,
	})
	assert.ErrorIs(t, err, ErrVersionConflict)

	var fresh vehicleModel.Vehicle
	db.First(&fresh, veh.ID)
	assert.Equal(t, vehicleModel.VehicleStatusOnTrip, fresh.Status)
	assert.Equal(t, uint(1), fresh.Version)
}
