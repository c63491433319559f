package driver

import "github.com/go-playground/validator/v10"

type DriverCreateRequest struct {
	FullName      string `json:"full_name" validate:"required,min=1,max=255"`
	LicenseNumber string `json:"license_number" validate:"required,min=3,max=50"`
	LicenseExpiry string `json:"license_expiry" validate:"required,datetime=2006-01-02"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
}

func (req *DriverCreateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type DriverUpdateRequest struct {
	FullName      string `json:"full_name" validate:"omitempty,min=1,max=255"`
	LicenseExpiry string `json:"license_expiry" validate:"omitempty,datetime=2006-01-02"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
}

func (req *DriverUpdateRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type DriverStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ON_DUTY ON_TRIP OFF_DUTY SUSPENDED"`
}

func (req *DriverStatusRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type SafetyScoreRequest struct {
	Delta  float64 `json:"delta" validate:"required,ne=0,gte=-100,lte=100"`
	Reason string  `json:"reason" validate:"required,min=3"`
}

func (req *SafetyScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
