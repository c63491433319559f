package driver

import (
	"time"
)

// DriverStatus represents the duty state of a driver
type DriverStatus string

const (
	DriverStatusOnDuty    DriverStatus = "ON_DUTY"
	DriverStatusOnTrip    DriverStatus = "ON_TRIP"
	DriverStatusOffDuty   DriverStatus = "OFF_DUTY"
	DriverStatusSuspended DriverStatus = "SUSPENDED"
)

// Driver represents a driver HR record
type Driver struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName      string       `gorm:"type:varchar(255);not null" json:"full_name"`
	LicenseNumber string       `gorm:"type:varchar(50);not null;unique" json:"license_number"`
	LicenseExpiry time.Time    `gorm:"not null" json:"license_expiry"`
	Phone         string       `gorm:"type:varchar(20)" json:"phone"`
	SafetyScore   float64      `gorm:"type:decimal(5,2);not null;default:100" json:"safety_score"`
	Status        DriverStatus `gorm:"type:varchar(20);not null;default:'OFF_DUTY'" json:"status"`

	// Version column for compare-and-swap on status transitions
	Version uint `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// LicenseExpired reports whether the driver's license has lapsed at the given time
func (d *Driver) LicenseExpired(at time.Time) bool {
	return d.LicenseExpiry.Before(at)
}
