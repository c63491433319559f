package incident

import (
	"time"

	vehicleModel "fleetflow/models/vehicle"
)

// IncidentSeverity represents how serious an incident is
type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "LOW"
	SeverityMedium   IncidentSeverity = "MEDIUM"
	SeverityHigh     IncidentSeverity = "HIGH"
	SeverityCritical IncidentSeverity = "CRITICAL"
)

func (s IncidentSeverity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// IncidentStatus represents the handling state of an incident
type IncidentStatus string

const (
	IncidentStatusOpen          IncidentStatus = "OPEN"
	IncidentStatusInvestigating IncidentStatus = "INVESTIGATING"
	IncidentStatusResolved      IncidentStatus = "RESOLVED"
	IncidentStatusClosed        IncidentStatus = "CLOSED"
)

func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusOpen, IncidentStatusInvestigating, IncidentStatusResolved, IncidentStatusClosed:
		return true
	default:
		return false
	}
}

// rank orders incident statuses; transitions are forward-only
func (s IncidentStatus) rank() int {
	switch s {
	case IncidentStatusOpen:
		return 0
	case IncidentStatusInvestigating:
		return 1
	case IncidentStatusResolved:
		return 2
	case IncidentStatusClosed:
		return 3
	default:
		return -1
	}
}

// CanTransitionTo returns true if moving to next is a legal forward step
func (s IncidentStatus) CanTransitionTo(next IncidentStatus) bool {
	return next.IsValid() && next.rank() == s.rank()+1
}

// Incident represents a reported accident or safety event
type Incident struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Foreign key for vehicle relationship
	VehicleID uint                 `gorm:"not null;index" json:"vehicle_id"`
	Vehicle   vehicleModel.Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle"`

	// Optional driver and trip involved
	DriverID *uint `gorm:"index" json:"driver_id,omitempty"`
	TripID   *uint `gorm:"index" json:"trip_id,omitempty"`

	Severity       IncidentSeverity `gorm:"type:varchar(20);not null" json:"severity"`
	Status         IncidentStatus   `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	Description    string           `gorm:"type:text;not null" json:"description"`
	ResolutionNote *string          `gorm:"type:text" json:"resolution_note,omitempty"`
	OccurredAt     time.Time        `gorm:"not null;index" json:"occurred_at"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
