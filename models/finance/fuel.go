package finance

import (
	"time"

	vehicleModel "fleetflow/models/vehicle"
)

// FuelLog represents one refuelling of a vehicle
type FuelLog struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for vehicle relationship
	VehicleID uint                 `gorm:"not null;index" json:"vehicle_id"`
	Vehicle   vehicleModel.Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle"`

	// Optional trip this fill-up belongs to
	TripID *uint `gorm:"index" json:"trip_id,omitempty"`

	Liters     float64   `gorm:"type:decimal(10,2);not null" json:"liters"`
	TotalCost  float64   `gorm:"type:decimal(12,2);not null" json:"total_cost"`
	OdometerKm float64   `gorm:"type:decimal(12,2)" json:"odometer_km"`
	Station    string    `gorm:"type:varchar(255)" json:"station"`
	FilledAt   time.Time `gorm:"not null;index" json:"filled_at"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the FuelLog model
func (FuelLog) TableName() string {
	return "fuel_logs"
}
