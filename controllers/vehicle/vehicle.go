package vehicle

import (
	"errors"
	"fmt"
	"strconv"

	"fleetflow/logger"
	"fleetflow/middleware"
	maintenanceModel "fleetflow/models/maintenance"
	vehicleModel "fleetflow/models/vehicle"
	maintenanceService "fleetflow/services/maintenance"
	"fleetflow/types"
	vehicleTypes "fleetflow/types/vehicle"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VehicleController handles vehicle registry and maintenance HTTP requests
type VehicleController struct {
	DB          *gorm.DB
	Maintenance *maintenanceService.Service
	Logger      *logger.AsyncLogger
}

// NewVehicleController creates a new vehicle controller
func NewVehicleController(db *gorm.DB, maint *maintenanceService.Service, asyncLogger *logger.AsyncLogger) *VehicleController {
	return &VehicleController{DB: db, Maintenance: maint, Logger: asyncLogger}
}

// Index lists vehicles with optional status filter and limit/offset paging
func (vc *VehicleController) Index(c *fiber.Ctx) error {
	query := vc.DB.Model(&vehicleModel.Vehicle{})

	if status := c.Query("status"); status != "" {
		if !vehicleModel.VehicleStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Unknown vehicle status: " + status,
			})
		}
		query = query.Where("status = ?", status)
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	var vehicles []vehicleModel.Vehicle
	if err := query.Order("id").Limit(limit).Offset(offset).Find(&vehicles).Error; err != nil {
		logger.Error("Failed to list vehicles", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    vehicles,
	})
}

// Show returns one vehicle
func (vc *VehicleController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
		})
	}

	var veh vehicleModel.Vehicle
	if err := vc.DB.First(&veh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
			})
		}
		logger.Error("Failed to load vehicle", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    veh,
	})
}

// Store registers a new vehicle
func (vc *VehicleController) Store(c *fiber.Ctx) error {
	var req vehicleTypes.VehicleCreateRequest
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

	veh := vehicleModel.Vehicle{
		LicensePlate: req.LicensePlate,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Status:       vehicleModel.VehicleStatusAvailable,
		OdometerKm:   req.OdometerKm,
	}

	if err := vc.DB.Create(&veh).Error; err != nil {
		logger.Error("Failed to create vehicle", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "License plate already registered",
		})
	}

	logger.Success(fmt.Sprintf("Vehicle created successfully with ID: %d", veh.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Vehicle created successfully",
		Data:    veh,
	})
}

// Update edits the mutable descriptive fields of a vehicle
func (vc *VehicleController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
		})
	}

	var req vehicleTypes.VehicleUpdateRequest
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

	var veh vehicleModel.Vehicle
	if err := vc.DB.First(&veh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if req.Make != "" {
		veh.Make = req.Make
	}
	if req.Model != "" {
		veh.Model = req.Model
	}
	if req.Year != 0 {
		veh.Year = req.Year
	}
	// The odometer only moves forward
	if req.OdometerKm > veh.OdometerKm {
		veh.OdometerKm = req.OdometerKm
	}

	if err := vc.DB.Save(&veh).Error; err != nil {
		logger.Error("Failed to update vehicle", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update vehicle",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Vehicle updated successfully",
		Data:    veh,
	})
}

// UpdateStatus handles manual status changes. ON_TRIP and IN_SHOP are owned by
// the trip lifecycle and maintenance flow and cannot be set here.
func (vc *VehicleController) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
		})
	}

	var req vehicleTypes.VehicleStatusRequest
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

	target := vehicleModel.VehicleStatus(req.Status)
	if !target.IsManuallySettable() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Status " + req.Status + " is owned by the trip or maintenance flow and cannot be set manually",
		})
	}

	var veh vehicleModel.Vehicle
	if err := vc.DB.First(&veh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	// A vehicle on a trip or in the shop must be released by its owner flow
	if !veh.Status.IsManuallySettable() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Vehicle status is owned by an active trip or open maintenance log",
		})
	}

	res := vc.DB.Model(&vehicleModel.Vehicle{}).
		Where("id = ? AND version = ?", veh.ID, veh.Version).
		Updates(map[string]interface{}{
			"status":  target,
			"version": veh.Version + 1,
		})
	if res.Error != nil {
		logger.Error("Failed to update vehicle status", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update vehicle status",
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Vehicle was modified concurrently, retry",
		})
	}

	veh.Status = target
	veh.Version++
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Vehicle status updated",
		Data:    veh,
	})
}

// StoreMaintenance opens a maintenance log and moves the vehicle IN_SHOP
func (vc *VehicleController) StoreMaintenance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
		})
	}

	var req vehicleTypes.MaintenanceCreateRequest
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

	claims := middleware.SessionFromCtx(c)
	actor := "system"
	if claims != nil {
		actor = claims.Username
	}

	log := &maintenanceModel.MaintenanceLog{
		VehicleID:         uint(id),
		TripID:            req.TripID,
		ServiceType:       req.ServiceType,
		Description:       req.Description,
		Cost:              req.Cost,
		OdometerAtService: req.OdometerAtService,
		CreatedBy:         actor,
	}

	created, err := vc.Maintenance.Open(log)
	if err != nil {
		switch {
		case errors.Is(err, maintenanceService.ErrVehicleNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Vehicle not found",
			})
		case errors.Is(err, maintenanceService.ErrAlreadyInShop), errors.Is(err, maintenanceService.ErrVehicleBusy):
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: err.Error(),
			})
		default:
			logger.Error("Failed to open maintenance log", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to open maintenance log",
			})
		}
	}

	logger.Success(fmt.Sprintf("Maintenance log %d opened for vehicle %d", created.ID, id))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Maintenance log opened",
		Data:    created,
	})
}

// CloseMaintenance closes the open log and releases the vehicle
func (vc *VehicleController) CloseMaintenance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
		})
	}
	logID, err := strconv.Atoi(c.Params("logId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid maintenance log id",
		})
	}

	log, err := vc.Maintenance.Close(uint(id), uint(logID))
	if err != nil {
		switch {
		case errors.Is(err, maintenanceService.ErrLogNotFound):
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Maintenance log not found",
			})
		case errors.Is(err, maintenanceService.ErrLogClosed):
			return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
				Status:  fiber.StatusConflict,
				Message: "Maintenance log is already closed",
			})
		default:
			logger.Error("Failed to close maintenance log", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Failed to close maintenance log",
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Maintenance log closed",
		Data:    log,
	})
}

// ListMaintenance returns the maintenance history of one vehicle
func (vc *VehicleController) ListMaintenance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid vehicle id",
		})
	}

	var logs []maintenanceModel.MaintenanceLog
	if err := vc.DB.Where("vehicle_id = ?", id).Order("created_at DESC").Find(&logs).Error; err != nil {
		logger.Error("Failed to list maintenance logs", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    logs,
	})
}
