package vehicle

import "github.com/go-playground/validator/v10"

type VehicleCreateRequest struct {
	LicensePlate string  `json:"license_plate" validate:"required,min=2,max=20"`
	Make         string  `json:"make" validate:"required,min=1,max=100"`
	Model        string  `json:"model" validate:"required,min=1,max=100"`
	Year         int     `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	OdometerKm   float64 `json:"odometer_km" validate:"gte=0"`
}

func (req *VehicleCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type VehicleUpdateRequest struct {
	Make       string  `json:"make" validate:"omitempty,min=1,max=100"`
	Model      string  `json:"model" validate:"omitempty,min=1,max=100"`
	Year       int     `json:"year" validate:"omitempty,gte=1950,lte=2100"`
	OdometerKm float64 `json:"odometer_km" validate:"omitempty,gte=0"`
}

func (req *VehicleUpdateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type VehicleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=AVAILABLE ON_TRIP IN_SHOP RETIRED"`
}

func (req *VehicleStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type MaintenanceCreateRequest struct {
	ServiceType       string  `json:"service_type" validate:"required,min=1,max=100"`
	Description       string  `json:"description" validate:"omitempty"`
	Cost              float64 `json:"cost" validate:"gte=0"`
	OdometerAtService float64 `json:"odometer_at_service" validate:"omitempty,gte=0"`
	TripID            *uint   `json:"trip_id" validate:"omitempty,gt=0"`
}

func (req *MaintenanceCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
