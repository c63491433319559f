package trip

import "github.com/go-playground/validator/v10"

type TripCreateRequest struct {
	Origin           string  `json:"origin" validate:"required,min=1,max=255"`
	Destination      string  `json:"destination" validate:"required,min=1,max=255"`
	DistanceEst      float64 `json:"distance_est_km" validate:"required,gt=0"`
	CargoDescription string  `json:"cargo_description" validate:"omitempty"`
	CargoWeightKg    float64 `json:"cargo_weight_kg" validate:"gte=0"`
	ClientName       string  `json:"client_name" validate:"required,min=1,max=255"`
	Revenue          float64 `json:"revenue" validate:"gte=0"`
	VehicleID        uint    `json:"vehicle_id" validate:"required,gt=0"`
	DriverID         uint    `json:"driver_id" validate:"required,gt=0"`
}

func (req *TripCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

// TripStatusRequest carries the single status-transition payload. Which of
// the optional fields are required depends on the target status and is
// checked by the lifecycle service.
type TripStatusRequest struct {
	Status         string   `json:"status" validate:"required,oneof=DISPATCHED COMPLETED CANCELLED"`
	DistanceActual *float64 `json:"distance_actual" validate:"omitempty,gt=0"`
	OdometerEnd    *float64 `json:"odometer_end" validate:"omitempty,gt=0"`
	Reason         string   `json:"reason" validate:"omitempty"`
}

func (req *TripStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

// LedgerResponse is the computed financial summary of one trip
type LedgerResponse struct {
	TripID          uint    `json:"trip_id"`
	Revenue         float64 `json:"revenue"`
	FuelCost        float64 `json:"fuel_cost"`
	ExpenseCost     float64 `json:"expense_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	Profit          float64 `json:"profit"`
	ROI             float64 `json:"roi"`
}
