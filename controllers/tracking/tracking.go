package tracking

import (
	"errors"

	"fleetflow/logger"
	trackingService "fleetflow/services/tracking"
	"fleetflow/types"
	trackingTypes "fleetflow/types/tracking"

	"github.com/gofiber/fiber/v2"
)

// TrackingController handles location-ping HTTP requests
type TrackingController struct {
	Service *trackingService.Service
	Logger  *logger.AsyncLogger
}

// NewTrackingController creates a new tracking controller
func NewTrackingController(svc *trackingService.Service, asyncLogger *logger.AsyncLogger) *TrackingController {
	return &TrackingController{Service: svc, Logger: asyncLogger}
}

// StorePing validates and records one location ping
func (tc *TrackingController) StorePing(c *fiber.Ctx) error {
	var req trackingTypes.LocationPingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ping, err := tc.Service.Record(&req)
	if err != nil {
		if errors.Is(err, trackingService.ErrVehicleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
			})
		}
		// Validator errors surface here with per-field detail
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Ping recorded",
		Data:    ping,
	})
}

// VehiclePings returns the newest pings for one vehicle
func (tc *TrackingController) VehiclePings(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
		})
	}

	pings, err := tc.Service.RecentForVehicle(uint(id), c.QueryInt("limit", 100))
	if err != nil {
		logger.Error("Failed to list pings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    pings,
	})
}
