package tracking

import (
	"errors"
	"time"

	trackingModel "fleetflow/models/tracking"
	vehicleModel "fleetflow/models/vehicle"
	trackingTypes "fleetflow/types/tracking"

	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// Service persists validated location pings and advances each vehicle's
// last-known position. Both the HTTP endpoint and the MQTT ingestor go
// through Record, so the same schema gates every path.
type Service struct {
	db *gorm.DB
}

// NewService creates a new tracking service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Record validates and stores one ping
func (s *Service) Record(req *trackingTypes.LocationPingRequest) (*trackingModel.LocationPing, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var veh vehicleModel.Vehicle
	if err := s.db.First(&veh, req.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	recordedAt := time.Now()
	if req.RecordedAt != "" {
		if parsed, err := time.Parse(time.RFC3339, req.RecordedAt); err == nil {
			recordedAt = parsed
		}
	}

	ping := trackingModel.LocationPing{
		VehicleID:  req.VehicleID,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		SpeedKmh:   req.SpeedKmh,
		Heading:    req.Heading,
		AccuracyM:  req.AccuracyM,
		RecordedAt: recordedAt,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ping).Error; err != nil {
			return err
		}
		return tx.Model(&vehicleModel.Vehicle{}).
			Where("id = ?", veh.ID).
			Updates(map[string]interface{}{
				"last_latitude":  req.Latitude,
				"last_longitude": req.Longitude,
				"last_ping_at":   recordedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &ping, nil
}

// RecentForVehicle returns the newest pings for one vehicle
func (s *Service) RecentForVehicle(vehicleID uint, limit int) ([]trackingModel.LocationPing, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var pings []trackingModel.LocationPing
	err := s.db.Where("vehicle_id = ?", vehicleID).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&pings).Error
	return pings, err
}
