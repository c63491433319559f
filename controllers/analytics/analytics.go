package analytics

import (
	"errors"
	"time"

	"fleetflow/logger"
	analyticsService "fleetflow/services/analytics"
	"fleetflow/types"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsController handles read-side analytics HTTP requests
type AnalyticsController struct {
	Service *analyticsService.Service
	Logger  *logger.AsyncLogger
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(svc *analyticsService.Service, asyncLogger *logger.AsyncLogger) *AnalyticsController {
	return &AnalyticsController{Service: svc, Logger: asyncLogger}
}

// KPI returns the dashboard headline snapshot
func (ac *AnalyticsController) KPI(c *fiber.Ctx) error {
	kpi, err := ac.Service.KPI()
	if err != nil {
		logger.Error("Failed to compute KPI", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute KPI",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    kpi,
	})
}

// Monthly aggregates one calendar month, defaulting to the current one
func (ac *AnalyticsController) Monthly(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	report, err := ac.Service.Monthly(month)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    report,
	})
}

// VehicleROI returns the lifetime return of one vehicle
func (ac *AnalyticsController) VehicleROI(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
		})
	}

	roi, err := ac.Service.VehicleROI(uint(id))
	if err != nil {
		if errors.Is(err, analyticsService.ErrVehicleNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
			})
		}
		logger.Error("Failed to compute vehicle ROI", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute vehicle ROI",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    roi,
	})
}

// FuelEfficiency returns km per liter for every vehicle with fuel history
func (ac *AnalyticsController) FuelEfficiency(c *fiber.Ctx) error {
	results, err := ac.Service.FuelEfficiency()
	if err != nil {
		logger.Error("Failed to compute fuel efficiency", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute fuel efficiency",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    results,
	})
}
