package driver

import (
	"time"
)

// SafetyEvent records one safety-score adjustment for a driver
type SafetyEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for driver relationship
	DriverID uint   `gorm:"not null;index" json:"driver_id"`
	Driver   Driver `gorm:"foreignKey:DriverID" json:"driver"`

	Delta          float64   `gorm:"type:decimal(5,2);not null" json:"delta"`
	ResultingScore float64   `gorm:"type:decimal(5,2);not null" json:"resulting_score"`
	Reason         string    `gorm:"type:text;not null" json:"reason"`
	CreatedBy      string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the SafetyEvent model
func (SafetyEvent) TableName() string {
	return "driver_safety_events"
}
