package incident

import "github.com/go-playground/validator/v10"

type IncidentCreateRequest struct {
	VehicleID   uint   `json:"vehicle_id" validate:"required,gt=0"`
	DriverID    *uint  `json:"driver_id" validate:"omitempty,gt=0"`
	TripID      *uint  `json:"trip_id" validate:"omitempty,gt=0"`
	Severity    string `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	Description string `json:"description" validate:"required,min=3"`
	OccurredAt  string `json:"occurred_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (req *IncidentCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type IncidentStatusRequest struct {
	Status         string `json:"status" validate:"required,oneof=INVESTIGATING RESOLVED CLOSED"`
	ResolutionNote string `json:"resolution_note" validate:"omitempty"`
}

func (req *IncidentStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
