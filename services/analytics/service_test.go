package analytics

import (
	"testing"
	"time"

	driverModel "fleetflow/models/driver"
	financeModel "fleetflow/models/finance"
	incidentModel "fleetflow/models/incident"
	maintenanceModel "fleetflow/models/maintenance"
	tripModel "fleetflow/models/trip"
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
		&driverModel.Driver{},
		&tripModel.Trip{},
		&financeModel.FuelLog{},
		&financeModel.Expense{},
		&maintenanceModel.MaintenanceLog{},
		&incidentModel.Incident{},
	); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}

	return db
}

func seedCompletedTrip(t *testing.T, db *gorm.DB, veh *vehicleModel.Vehicle, drv *driverModel.Driver, revenue, distance float64, completedAt time.Time) *tripModel.Trip {
	trip := tripModel.Trip{
		Origin:         "Dhaka",
		Destination:    "Khulna",
		DistanceEst:    distance,
		DistanceActual: &distance,
		ClientName:     "Orion Traders",
		Revenue:        revenue,
		VehicleID:      veh.ID,
		DriverID:       drv.ID,
		Status:         tripModel.TripStatusCompleted,
		CompletedAt:    &completedAt,
		CreatedBy:      "dispatcher1",
	}
	if err := db.Create(&trip).Error; err != nil {
		t.Fatalf("failed to seed trip: %v", err)
	}
	return &trip
}

func seedFleet(t *testing.T, db *gorm.DB, plate string) (*vehicleModel.Vehicle, *driverModel.Driver) {
	veh := vehicleModel.Vehicle{LicensePlate: plate, Make: "Isuzu", Model: "FVR", Year: 2021}
	if err := db.Create(&veh).Error; err != nil {
		t.Fatalf("failed to seed vehicle: %v", err)
	}
	drv := driverModel.Driver{
		FullName:      "Salam Khan",
		LicenseNumber: "LIC-" + plate,
		LicenseExpiry: time.Now().AddDate(1, 0, 0),
		Status:        driverModel.DriverStatusOnDuty,
	}
	if err := db.Create(&drv).Error; err != nil {
		t.Fatalf("failed to seed driver: %v", err)
	}
	return &veh, &drv
}

func TestMonthlyAggregatesOneWindow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, "DH-9001")

	march := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

	seedCompletedTrip(t, db, veh, drv, 15000, 300, march)
	seedCompletedTrip(t, db, veh, drv, 9000, 150, march)
	// Outside the requested month
	seedCompletedTrip(t, db, veh, drv, 50000, 700, april)

	db.Create(&financeModel.FuelLog{
		VehicleID: veh.ID, Liters: 100, TotalCost: 10000, FilledAt: march, CreatedBy: "manager1",
	})
	db.Create(&financeModel.Expense{
		VehicleID: veh.ID, Category: financeModel.ExpenseCategoryTolls,
		Amount: 2000, IncurredAt: march, CreatedBy: "manager1",
	})

	report, err := svc.Monthly("2026-03")
	assert.NoError(t, err)
	assert.Equal(t, "2026-03", report.Month)
	assert.Equal(t, int64(2), report.TripsCompleted)
	assert.Equal(t, 24000.0, report.Revenue)
	assert.Equal(t, 450.0, report.DistanceKm)
	assert.Equal(t, 10000.0, report.FuelCost)
	assert.Equal(t, 2000.0, report.ExpenseCost)
	assert.Equal(t, 12000.0, report.Profit)
}

func TestMonthlyRejectsMalformedMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.Monthly("March 2026")
	assert.Error(t, err)
}

func TestKPICountsByStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh1, drv1 := seedFleet(t, db, "DH-9002")
	seedFleet(t, db, "DH-9003")
	db.Model(veh1).Update("status", vehicleModel.VehicleStatusOnTrip)
	db.Model(drv1).Update("status", driverModel.DriverStatusOnTrip)

	trip := tripModel.Trip{
		Origin: "Dhaka", Destination: "Bogura", DistanceEst: 200,
		ClientName: "Orion Traders", VehicleID: veh1.ID, DriverID: drv1.ID,
		Status: tripModel.TripStatusDispatched, CreatedBy: "dispatcher1",
	}
	db.Create(&trip)

	db.Create(&incidentModel.Incident{
		VehicleID: veh1.ID, DriverID: &drv1.ID,
		Severity: incidentModel.SeverityLow, Status: incidentModel.IncidentStatusOpen,
		Description: "side mirror clipped", OccurredAt: time.Now(), CreatedBy: "dispatcher1",
	})

	kpi, err := svc.KPI()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), kpi.VehiclesByStatus["ON_TRIP"])
	assert.Equal(t, int64(1), kpi.VehiclesByStatus["AVAILABLE"])
	assert.Equal(t, int64(1), kpi.DriversByStatus["ON_TRIP"])
	assert.Equal(t, int64(1), kpi.ActiveTrips)
	assert.Equal(t, int64(1), kpi.OpenIncidents)
}

func TestVehicleROI(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, "DH-9004")
	seedCompletedTrip(t, db, veh, drv, 30000, 400, time.Now())

	db.Create(&financeModel.FuelLog{
		VehicleID: veh.ID, Liters: 120, TotalCost: 12000, FilledAt: time.Now(), CreatedBy: "manager1",
	})
	db.Create(&maintenanceModel.MaintenanceLog{
		VehicleID: veh.ID, ServiceType: "oil change", Cost: 3000, Open: false, CreatedBy: "manager1",
	})

	roi, err := svc.VehicleROI(veh.ID)
	assert.NoError(t, err)
	assert.Equal(t, 30000.0, roi.Revenue)
	assert.Equal(t, 12000.0, roi.FuelCost)
	assert.Equal(t, 3000.0, roi.MaintenanceCost)
	assert.Equal(t, 15000.0, roi.Profit)
	assert.InDelta(t, 1.0, roi.ROI, 1e-9)
}

func TestVehicleROIUnknownVehicle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	_, err := svc.VehicleROI(4242)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestFuelEfficiencySkipsVehiclesWithoutFuel(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	veh, drv := seedFleet(t, db, "DH-9005")
	seedFleet(t, db, "DH-9006") // no fuel history

	seedCompletedTrip(t, db, veh, drv, 20000, 500, time.Now())
	db.Create(&financeModel.FuelLog{
		VehicleID: veh.ID, Liters: 100, TotalCost: 10000, FilledAt: time.Now(), CreatedBy: "manager1",
	})

	results, err := svc.FuelEfficiency()
	assert.NoError(t, err)
	if assert.Len(t, results, 1) {
		assert.Equal(t, veh.ID, results[0].VehicleID)
		assert.InDelta(t, 5.0, results[0].KmPerLiter, 1e-9)
	}
}
