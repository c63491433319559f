package trip

import (
	"time"

	driverModel "fleetflow/models/driver"
	vehicleModel "fleetflow/models/vehicle"
)

// Trip represents a single cargo movement assignment
type Trip struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Origin      string  `gorm:"type:varchar(255);not null" json:"origin"`
	Destination string  `gorm:"type:varchar(255);not null" json:"destination"`
	DistanceEst float64 `gorm:"type:decimal(10,2);not null" json:"distance_est_km"`

	// Actual distance is set only on completion
	DistanceActual *float64 `gorm:"type:decimal(10,2)" json:"distance_actual_km,omitempty"`

	CargoDescription string  `gorm:"type:text" json:"cargo_description"`
	CargoWeightKg    float64 `gorm:"type:decimal(10,2)" json:"cargo_weight_kg"`
	ClientName       string  `gorm:"type:varchar(255);not null" json:"client_name"`
	Revenue          float64 `gorm:"type:decimal(12,2);not null;default:0" json:"revenue"`

	// Foreign keys for vehicle and driver relationships
	VehicleID uint                 `gorm:"not null;index" json:"vehicle_id"`
	Vehicle   vehicleModel.Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle"`
	DriverID  uint                 `gorm:"not null;index" json:"driver_id"`
	Driver    driverModel.Driver   `gorm:"foreignKey:DriverID" json:"driver"`

	Status       TripStatus `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	DispatchedAt *time.Time `json:"dispatched_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CancelReason *string    `gorm:"type:text" json:"cancel_reason,omitempty"`

	// Version column for compare-and-swap on status transitions
	Version uint `gorm:"not null;default:0" json:"version"`

	CreatedBy string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
