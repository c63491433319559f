package finance

import "github.com/go-playground/validator/v10"

type FuelLogCreateRequest struct {
	VehicleID  uint    `json:"vehicle_id" validate:"required,gt=0"`
	TripID     *uint   `json:"trip_id" validate:"omitempty,gt=0"`
	Liters     float64 `json:"liters" validate:"required,gt=0"`
	TotalCost  float64 `json:"total_cost" validate:"required,gt=0"`
	OdometerKm float64 `json:"odometer_km" validate:"omitempty,gte=0"`
	Station    string  `json:"station" validate:"omitempty,max=255"`
	FilledAt   string  `json:"filled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (req *FuelLogCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type ExpenseCreateRequest struct {
	VehicleID   uint    `json:"vehicle_id" validate:"required,gt=0"`
	TripID      *uint   `json:"trip_id" validate:"omitempty,gt=0"`
	Category    string  `json:"category" validate:"required,oneof=TOLLS PARKING INSURANCE REGISTRATION OTHER"`
	Description string  `json:"description" validate:"omitempty"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	IncurredAt  string  `json:"incurred_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

func (req *ExpenseCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
