package maintenance

import (
	"errors"
	"time"

	maintenanceModel "fleetflow/models/maintenance"
	vehicleModel "fleetflow/models/vehicle"

	"gorm.io/gorm"
)

var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrLogNotFound     = errors.New("maintenance log not found")
	ErrVehicleBusy     = errors.New("vehicle cannot enter the shop in its current status")
	ErrAlreadyInShop   = errors.New("vehicle already has an open maintenance log")
	ErrLogClosed       = errors.New("maintenance log is already closed")
)

// Service couples maintenance logs to vehicle shop status: opening a log puts
// the vehicle IN_SHOP, closing the open log releases it.
type Service struct {
	db *gorm.DB
}

// NewService creates a new maintenance service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Open creates a maintenance log and moves the vehicle into the shop.
// A vehicle with an open log, or one currently ON_TRIP, is rejected.
func (s *Service) Open(log *maintenanceModel.MaintenanceLog) (*maintenanceModel.MaintenanceLog, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var veh vehicleModel.Vehicle
		if err := tx.First(&veh, log.VehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}

		if veh.Status == vehicleModel.VehicleStatusOnTrip {
			return ErrVehicleBusy
		}

		var openCount int64
		if err := tx.Model(&maintenanceModel.MaintenanceLog{}).
			Where("vehicle_id = ? AND open = ?", veh.ID, true).
			Count(&openCount).Error; err != nil {
			return err
		}
		if openCount > 0 {
			return ErrAlreadyInShop
		}

		log.Open = true
		if err := tx.Create(log).Error; err != nil {
			return err
		}

		res := tx.Model(&vehicleModel.Vehicle{}).
			Where("id = ? AND version = ?", veh.ID, veh.Version).
			Updates(map[string]interface{}{
				"status":  vehicleModel.VehicleStatusInShop,
				"version": veh.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVehicleBusy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

// Close stamps the log closed and releases the vehicle back to AVAILABLE
func (s *Service) Close(vehicleID, logID uint) (*maintenanceModel.MaintenanceLog, error) {
	var log maintenanceModel.MaintenanceLog

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND vehicle_id = ?", logID, vehicleID).First(&log).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLogNotFound
			}
			return err
		}
		if !log.Open {
			return ErrLogClosed
		}

		now := time.Now()
		log.Open = false
		log.ClosedAt = &now
		if err := tx.Save(&log).Error; err != nil {
			return err
		}

		var veh vehicleModel.Vehicle
		if err := tx.First(&veh, vehicleID).Error; err != nil {
			return err
		}

		res := tx.Model(&vehicleModel.Vehicle{}).
			Where("id = ? AND version = ?", veh.ID, veh.Version).
			Updates(map[string]interface{}{
				"status":  vehicleModel.VehicleStatusAvailable,
				"version": veh.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVehicleBusy
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &log, nil
}
