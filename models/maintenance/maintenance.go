package maintenance

import (
	"time"

	vehicleModel "fleetflow/models/vehicle"
)

// MaintenanceLog represents one service visit for a vehicle. While a log is
// open the vehicle is held IN_SHOP; closing the log releases it.
type MaintenanceLog struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for vehicle relationship
	VehicleID uint                 `gorm:"not null;index" json:"vehicle_id"`
	Vehicle   vehicleModel.Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle"`

	// Optional trip this service was triggered by
	TripID *uint `gorm:"index" json:"trip_id,omitempty"`

	ServiceType       string  `gorm:"type:varchar(100);not null" json:"service_type"`
	Description       string  `gorm:"type:text" json:"description"`
	Cost              float64 `gorm:"type:decimal(12,2);not null;default:0" json:"cost"`
	OdometerAtService float64 `gorm:"type:decimal(12,2)" json:"odometer_at_service"`

	Open     bool       `gorm:"not null;default:true;index" json:"open"`
	ClosedAt *time.Time `json:"closed_at,omitempty"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the MaintenanceLog model
func (MaintenanceLog) TableName() string {
	return "maintenance_logs"
}
