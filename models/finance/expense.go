package finance

import (
	"time"

	vehicleModel "fleetflow/models/vehicle"
)

// ExpenseCategory represents the kind of a non-fuel expense
type ExpenseCategory string

const (
	ExpenseCategoryTolls        ExpenseCategory = "TOLLS"
	ExpenseCategoryParking      ExpenseCategory = "PARKING"
	ExpenseCategoryInsurance    ExpenseCategory = "INSURANCE"
	ExpenseCategoryRegistration ExpenseCategory = "REGISTRATION"
	ExpenseCategoryOther        ExpenseCategory = "OTHER"
)

func (ec ExpenseCategory) IsValid() bool {
	switch ec {
	case ExpenseCategoryTolls, ExpenseCategoryParking, ExpenseCategoryInsurance,
		ExpenseCategoryRegistration, ExpenseCategoryOther:
		return true
	default:
		return false
	}
}

// Expense represents a non-fuel cost attributed to a vehicle
type Expense struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for vehicle relationship
	VehicleID uint                 `gorm:"not null;index" json:"vehicle_id"`
	Vehicle   vehicleModel.Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle"`

	// Optional trip this expense belongs to
	TripID *uint `gorm:"index" json:"trip_id,omitempty"`

	Category    ExpenseCategory `gorm:"type:varchar(30);not null" json:"category"`
	Description string          `gorm:"type:text" json:"description"`
	Amount      float64         `gorm:"type:decimal(12,2);not null" json:"amount"`
	IncurredAt  time.Time       `gorm:"not null;index" json:"incurred_at"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
