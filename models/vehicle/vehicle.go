package vehicle

import (
	"time"
)

// VehicleStatus represents the availability state of a vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "AVAILABLE"
	VehicleStatusOnTrip    VehicleStatus = "ON_TRIP"
	VehicleStatusInShop    VehicleStatus = "IN_SHOP"
	VehicleStatusRetired   VehicleStatus = "RETIRED"
)

// Vehicle represents a physical fleet asset
type Vehicle struct {
	ID           uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	LicensePlate string        `gorm:"type:varchar(20);not null;unique" json:"license_plate"`
	Make         string        `gorm:"type:varchar(100);not null" json:"make"`
	Model        string        `gorm:"type:varchar(100);not null" json:"model"`
	Year         int           `gorm:"type:int" json:"year"`
	Status       VehicleStatus `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
	OdometerKm   float64       `gorm:"type:decimal(12,2);not null;default:0" json:"odometer_km"`

	// Last-known position, advanced by the tracking ingestor
	LastLatitude  *float64   `gorm:"type:decimal(9,6)" json:"last_latitude,omitempty"`
	LastLongitude *float64   `gorm:"type:decimal(9,6)" json:"last_longitude,omitempty"`
	LastPingAt    *time.Time `json:"last_ping_at,omitempty"`

	// Version column for compare-and-swap on status transitions
	Version uint `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
