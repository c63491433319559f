package incident

import (
	"errors"
	"fmt"
	"time"

	"fleetflow/logger"
	"fleetflow/middleware"
	incidentModel "fleetflow/models/incident"
	vehicleModel "fleetflow/models/vehicle"
	"fleetflow/types"
	incidentTypes "fleetflow/types/incident"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// IncidentController handles incident report HTTP requests
type IncidentController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewIncidentController creates a new incident controller
func NewIncidentController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *IncidentController {
	return &IncidentController{DB: db, Logger: asyncLogger}
}

// Store files a new incident report in OPEN
func (ic *IncidentController) Store(c *fiber.Ctx) error {
	var req incidentTypes.IncidentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	var veh vehicleModel.Vehicle
	if err := ic.DB.First(&veh, req.VehicleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Vehicle not found",
		})
	}

	occurredAt, _ := time.Parse(time.RFC3339, req.OccurredAt)

	claims := middleware.SessionFromCtx(c)
	actor := "system"
	if claims != nil {
		actor = claims.Username
	}

	inc := incidentModel.Incident{
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		TripID:      req.TripID,
		Severity:    incidentModel.IncidentSeverity(req.Severity),
		Status:      incidentModel.IncidentStatusOpen,
		Description: req.Description,
		OccurredAt:  occurredAt,
		CreatedBy:   actor,
	}

	if err := ic.DB.Create(&inc).Error; err != nil {
		logger.Error("Failed to create incident", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create incident",
		})
	}

	logger.Success(fmt.Sprintf("Incident created successfully with ID: %d", inc.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Incident created successfully",
		Data:    inc,
	})
}

// Index lists incidents with optional status filter
func (ic *IncidentController) Index(c *fiber.Ctx) error {
	query := ic.DB.Model(&incidentModel.Incident{})

	if status := c.Query("status"); status != "" {
		if !incidentModel.IncidentStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Unknown incident status: " + status,
			})
		}
		query = query.Where("status = ?", status)
	}

	var incidents []incidentModel.Incident
	if err := query.Order("occurred_at DESC").Limit(200).Find(&incidents).Error; err != nil {
		logger.Error("Failed to list incidents", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    incidents,
	})
}

// Show returns one incident
func (ic *IncidentController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid incident id",
		})
	}

	var inc incidentModel.Incident
	if err := ic.DB.First(&inc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Incident not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    inc,
	})
}

// UpdateStatus moves an incident one step forward: OPEN → INVESTIGATING →
// RESOLVED → CLOSED. A resolution note is required when resolving.
func (ic *IncidentController) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid incident id",
		})
	}

	var req incidentTypes.IncidentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	next := incidentModel.IncidentStatus(req.Status)
	if next == incidentModel.IncidentStatusResolved && req.ResolutionNote == "" {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "resolution_note is required to resolve an incident",
		})
	}

	var inc incidentModel.Incident
	if err := ic.DB.First(&inc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Incident not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if !inc.Status.CanTransitionTo(next) {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: fmt.Sprintf("Cannot move incident from %s to %s", inc.Status, next),
		})
	}

	inc.Status = next
	if req.ResolutionNote != "" {
		inc.ResolutionNote = &req.ResolutionNote
	}

	if err := ic.DB.Save(&inc).Error; err != nil {
		logger.Error("Failed to update incident status", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update incident status",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Incident status updated",
		Data:    inc,
	})
}
