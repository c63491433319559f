package tracking

import (
	"time"

	vehicleModel "fleetflow/models/vehicle"
)

// LocationPing represents one reported position of a vehicle
type LocationPing struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for vehicle relationship
	VehicleID uint                 `gorm:"not null;index" json:"vehicle_id"`
	Vehicle   vehicleModel.Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle"`

	Latitude  float64  `gorm:"type:decimal(9,6);not null" json:"latitude"`
	Longitude float64  `gorm:"type:decimal(9,6);not null" json:"longitude"`
	SpeedKmh  *float64 `gorm:"type:decimal(6,2)" json:"speed_kmh,omitempty"`
	Heading   *float64 `gorm:"type:decimal(5,1)" json:"heading,omitempty"`
	AccuracyM *float64 `gorm:"type:decimal(7,2)" json:"accuracy_m,omitempty"`

	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the LocationPing model
func (LocationPing) TableName() string {
	return "location_pings"
}
