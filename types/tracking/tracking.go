package tracking

import "github.com/go-playground/validator/v10"

// LocationPingRequest constrains a reported vehicle position. The same schema
// gates both the HTTP endpoint and the MQTT telemetry ingestor.
type LocationPingRequest struct {
	VehicleID  uint     `json:"vehicle_id" validate:"required,gt=0"`
	Latitude   float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude  float64  `json:"longitude" validate:"gte=-180,lte=180"`
	SpeedKmh   *float64 `json:"speed" validate:"omitempty,gte=0"`
	Heading    *float64 `json:"heading" validate:"omitempty,gte=0,lte=360"`
	AccuracyM  *float64 `json:"accuracy" validate:"omitempty,gte=0"`
	RecordedAt string   `json:"recorded_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (req *LocationPingRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
