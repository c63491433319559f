package triplifecycle

import (
	"errors"
	"strings"
	"time"

	driverModel "fleetflow/models/driver"
	tripModel "fleetflow/models/trip"
	vehicleModel "fleetflow/models/vehicle"

	"gorm.io/gorm"
)

var (
	ErrTripNotFound       = errors.New("trip not found")
	ErrInvalidTransition  = errors.New("illegal trip status transition")
	ErrVehicleUnavailable = errors.New("vehicle is not available for dispatch")
	ErrDriverUnavailable  = errors.New("driver is not on duty")
	ErrLicenseExpired     = errors.New("driver license has expired")
	ErrInvalidDistance    = errors.New("actual distance must be a positive number")
	ErrBlankReason        = errors.New("cancellation reason must not be blank")
	ErrVersionConflict    = errors.New("concurrent update detected, retry the transition")
)

// Service enforces the legal trip status transitions and applies the coupled
// vehicle/driver status changes. Every transition runs in one transaction and
// bumps the version column of each touched row; a stale version aborts with
// ErrVersionConflict so concurrent double-dispatch cannot slip through.
type Service struct {
	db *gorm.DB
}

// NewService creates a new trip lifecycle service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Dispatch activates a DRAFT trip, committing its vehicle and driver.
// Preconditions: trip DRAFT, vehicle AVAILABLE, driver ON_DUTY with a valid
// license.
func (s *Service) Dispatch(tripID uint, actor string) (*tripModel.Trip, error) {
	var result *tripModel.Trip

	err := s.db.Transaction(func(tx *gorm.DB) error {
		trip, err := loadTrip(tx, tripID)
		if err != nil {
			return err
		}
		if !trip.Status.CanBeDispatched() {
			return ErrInvalidTransition
		}

		var veh vehicleModel.Vehicle
		if err := tx.First(&veh, trip.VehicleID).Error; err != nil {
			return err
		}
		if !veh.Status.IsDispatchable() {
			return ErrVehicleUnavailable
		}

		var drv driverModel.Driver
		if err := tx.First(&drv, trip.DriverID).Error; err != nil {
			return err
		}
		if !drv.Status.IsDispatchable() {
			return ErrDriverUnavailable
		}
		if drv.LicenseExpired(time.Now()) {
			return ErrLicenseExpired
		}

		now := time.Now()
		if err := casUpdate(tx, &tripModel.Trip{}, trip.ID, trip.Version, map[string]interface{}{
			"status":        tripModel.TripStatusDispatched,
			"dispatched_at": now,
		}); err != nil {
			return err
		}
		if err := casUpdate(tx, &vehicleModel.Vehicle{}, veh.ID, veh.Version, map[string]interface{}{
			"status": vehicleModel.VehicleStatusOnTrip,
		}); err != nil {
			return err
		}
		if err := casUpdate(tx, &driverModel.Driver{}, drv.ID, drv.Version, map[string]interface{}{
			"status": driverModel.DriverStatusOnTrip,
		}); err != nil {
			return err
		}

		if err := journal(tx, trip.ID, tripModel.TripStatusDispatched, actor); err != nil {
			return err
		}

		result, err = loadTrip(tx, trip.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Complete finishes a DISPATCHED trip, persisting the actual distance,
// optionally advancing the vehicle odometer, and releasing vehicle and driver.
func (s *Service) Complete(tripID uint, actualDistance float64, odometerEnd *float64, actor string) (*tripModel.Trip, error) {
	if actualDistance <= 0 {
		return nil, ErrInvalidDistance
	}

	var result *tripModel.Trip

	err := s.db.Transaction(func(tx *gorm.DB) error {
		trip, err := loadTrip(tx, tripID)
		if err != nil {
			return err
		}
		if !trip.Status.CanBeCompleted() {
			return ErrInvalidTransition
		}

		var veh vehicleModel.Vehicle
		if err := tx.First(&veh, trip.VehicleID).Error; err != nil {
			return err
		}
		var drv driverModel.Driver
		if err := tx.First(&drv, trip.DriverID).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := casUpdate(tx, &tripModel.Trip{}, trip.ID, trip.Version, map[string]interface{}{
			"status":          tripModel.TripStatusCompleted,
			"completed_at":    now,
			"distance_actual": actualDistance,
		}); err != nil {
			return err
		}

		vehicleUpdates := map[string]interface{}{
			"status": vehicleModel.VehicleStatusAvailable,
		}
		// The odometer only moves forward
		if odometerEnd != nil && *odometerEnd > veh.OdometerKm {
			vehicleUpdates["odometer_km"] = *odometerEnd
		}
		if err := casUpdate(tx, &vehicleModel.Vehicle{}, veh.ID, veh.Version, vehicleUpdates); err != nil {
			return err
		}

		if err := casUpdate(tx, &driverModel.Driver{}, drv.ID, drv.Version, map[string]interface{}{
			"status": driverModel.DriverStatusOnDuty,
		}); err != nil {
			return err
		}

		if err := journal(tx, trip.ID, tripModel.TripStatusCompleted, actor); err != nil {
			return err
		}

		result, err = loadTrip(tx, trip.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel aborts a DRAFT or DISPATCHED trip. Cancelling a dispatched trip
// releases its vehicle and driver; a draft never marked them ON_TRIP, so only
// the trip row changes.
func (s *Service) Cancel(tripID uint, reason, actor string) (*tripModel.Trip, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrBlankReason
	}

	var result *tripModel.Trip

	err := s.db.Transaction(func(tx *gorm.DB) error {
		trip, err := loadTrip(tx, tripID)
		if err != nil {
			return err
		}
		if !trip.Status.CanBeCancelled() {
			return ErrInvalidTransition
		}

		wasDispatched := trip.Status == tripModel.TripStatusDispatched

		if err := casUpdate(tx, &tripModel.Trip{}, trip.ID, trip.Version, map[string]interface{}{
			"status":        tripModel.TripStatusCancelled,
			"cancel_reason": reason,
		}); err != nil {
			return err
		}

		if wasDispatched {
			var veh vehicleModel.Vehicle
			if err := tx.First(&veh, trip.VehicleID).Error; err != nil {
				return err
			}
			if err := casUpdate(tx, &vehicleModel.Vehicle{}, veh.ID, veh.Version, map[string]interface{}{
				"status": vehicleModel.VehicleStatusAvailable,
			}); err != nil {
				return err
			}

			var drv driverModel.Driver
			if err := tx.First(&drv, trip.DriverID).Error; err != nil {
				return err
			}
			if err := casUpdate(tx, &driverModel.Driver{}, drv.ID, drv.Version, map[string]interface{}{
				"status": driverModel.DriverStatusOnDuty,
			}); err != nil {
				return err
			}
		}

		if err := journal(tx, trip.ID, tripModel.TripStatusCancelled, actor); err != nil {
			return err
		}

		result, err = loadTrip(tx, trip.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func loadTrip(tx *gorm.DB, tripID uint) (*tripModel.Trip, error) {
	var trip tripModel.Trip
	if err := tx.Preload("Vehicle").Preload("Driver").First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// casUpdate performs a compare-and-swap update guarded by the version column
func casUpdate(tx *gorm.DB, model interface{}, id, version uint, updates map[string]interface{}) error {
	updates["version"] = version + 1
	res := tx.Model(model).
		Where("id = ? AND version = ?", id, version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func journal(tx *gorm.DB, tripID uint, status tripModel.TripStatus, actor string) error {
	ev := tripModel.TripStatusEvent{
		TripID:    tripID,
		Status:    status,
		CreatedBy: actor,
	}
	return tx.Create(&ev).Error
}
