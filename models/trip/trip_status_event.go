package trip

import (
	"time"
)

// TripStatusEvent represents a status change event for a trip
type TripStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for trip relationship
	TripID uint `gorm:"not null;index" json:"trip_id"`
	Trip   Trip `gorm:"foreignKey:TripID" json:"trip"`

	Status    TripStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedBy string     `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the TripStatusEvent model
func (TripStatusEvent) TableName() string {
	return "trip_status_events"
}
