package tracking

import (
	"testing"
	"time"

	trackingModel "fleetflow/models/tracking"
	vehicleModel "fleetflow/models/vehicle"
	trackingTypes "fleetflow/types/tracking"

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
		&trackingModel.LocationPing{},
	); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}

	return db
}

func seedVehicle(t *testing.T, db *gorm.DB) *vehicleModel.Vehicle {
	veh := vehicleModel.Vehicle{
		LicensePlate: "DH-7777",
		Make:         "Hino",
		Model:        "500",
		Year:         2019,
		Status:       vehicleModel.VehicleStatusOnTrip,
	}
	if err := db.Create(&veh).Error; err != nil {
		t.Fatalf("failed to seed vehicle: %v", err)
	}
	return &veh
}

func floatPtr(f float64) *float64 { return &f }

func TestRecordValidPing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	veh := seedVehicle(t, db)

	ping, err := svc.Record(&trackingTypes.LocationPingRequest{
		VehicleID: veh.ID,
		Latitude:  18.5,
		Longitude: 73.8,
		SpeedKmh:  floatPtr(40),
		Heading:   floatPtr(270),
	})
	assert.NoError(t, err)
	assert.Equal(t, 18.5, ping.Latitude)
	assert.Equal(t, 73.8, ping.Longitude)

	// The vehicle's last-known position advanced
	var fresh vehicleModel.Vehicle
	db.First(&fresh, veh.ID)
	if assert.NotNil(t, fresh.LastLatitude) {
		assert.Equal(t, 18.5, *fresh.LastLatitude)
	}
	if assert.NotNil(t, fresh.LastLongitude) {
		assert.Equal(t, 73.8, *fresh.LastLongitude)
	}
	assert.NotNil(t, fresh.LastPingAt)
}

func TestRecordRejectsOutOfRangeLatitude(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	veh := seedVehicle(t, db)

	_, err := svc.Record(&trackingTypes.LocationPingRequest{
		VehicleID: veh.ID,
		Latitude:  91,
		Longitude: 0,
	})
	assert.Error(t, err)

	// Nothing was stored
	var count int64
	db.Model(&trackingModel.LocationPing{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRecordRejectsBadFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	veh := seedVehicle(t, db)

	cases := []struct {
		name string
		req  trackingTypes.LocationPingRequest
	}{
		{"longitude too far west", trackingTypes.LocationPingRequest{VehicleID: veh.ID, Latitude: 10, Longitude: -181}},
		{"negative speed", trackingTypes.LocationPingRequest{VehicleID: veh.ID, Latitude: 10, Longitude: 10, SpeedKmh: floatPtr(-5)}},
		{"heading past full circle", trackingTypes.LocationPingRequest{VehicleID: veh.ID, Latitude: 10, Longitude: 10, Heading: floatPtr(361)}},
		{"negative accuracy", trackingTypes.LocationPingRequest{VehicleID: veh.ID, Latitude: 10, Longitude: 10, AccuracyM: floatPtr(-1)}},
		{"missing vehicle id", trackingTypes.LocationPingRequest{Latitude: 10, Longitude: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(&tc.req)
			assert.Error(t, err)
		})
	}
}

func TestRecordUnknownVehicle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Record(&trackingTypes.LocationPingRequest{
		VehicleID: 9999,
		Latitude:  10,
		Longitude: 10,
	})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestRecordHonorsRecordedAt(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	veh := seedVehicle(t, db)

	stamp := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	ping, err := svc.Record(&trackingTypes.LocationPingRequest{
		VehicleID:  veh.ID,
		Latitude:   23.8,
		Longitude:  90.4,
		RecordedAt: stamp.Format(time.RFC3339),
	})
	assert.NoError(t, err)
	assert.True(t, ping.RecordedAt.Equal(stamp))
}

func TestRecentForVehicleOrderAndLimit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	veh := seedVehicle(t, db)

	base := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := svc.Record(&trackingTypes.LocationPingRequest{
			VehicleID:  veh.ID,
			Latitude:   23.8,
			Longitude:  90.4,
			RecordedAt: base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
		})
		assert.NoError(t, err)
	}

	pings, err := svc.RecentForVehicle(veh.ID, 3)
	assert.NoError(t, err)
	assert.Len(t, pings, 3)
	// Newest first
	assert.True(t, pings[0].RecordedAt.After(pings[1].RecordedAt))
	assert.True(t, pings[1].RecordedAt.After(pings[2].RecordedAt))
}
