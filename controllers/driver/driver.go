package driver

import (
	"errors"
	"fmt"
	"time"

	"fleetflow/logger"
	"fleetflow/middleware"
	driverModel "fleetflow/models/driver"
	"fleetflow/types"
	driverTypes "fleetflow/types/driver"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DriverController handles driver HR record HTTP requests
type DriverController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewDriverController creates a new driver controller
func NewDriverController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *DriverController {
	return &DriverController{DB: db, Logger: asyncLogger}
}

// Index lists drivers with optional status filter
func (dc *DriverController) Index(c *fiber.Ctx) error {
	query := dc.DB.Model(&driverModel.Driver{})

	if status := c.Query("status"); status != "" {
		if !driverModel.DriverStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Unknown driver status: " + status,
			})
		}
		query = query.Where("status = ?", status)
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	var drivers []driverModel.Driver
	if err := query.Order("id").Limit(limit).Offset(offset).Find(&drivers).Error; err != nil {
		logger.Error("Failed to list drivers", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    drivers,
	})
}

// Show returns one driver
func (dc *DriverController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid driver id",
		})
	}

	var drv driverModel.Driver
	if err := dc.DB.First(&drv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Driver not found",
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
		Data:    drv,
	})
}

// Store creates a new driver record
func (dc *DriverController) Store(c *fiber.Ctx) error {
	var req driverTypes.DriverCreateRequest
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

	expiry, err := time.Parse("2006-01-02", req.LicenseExpiry)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid license expiry date",
		})
	}

	drv := driverModel.Driver{
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		LicenseExpiry: expiry,
		Phone:         req.Phone,
		SafetyScore:   100,
		Status:        driverModel.DriverStatusOffDuty,
	}

	if err := dc.DB.Create(&drv).Error; err != nil {
		logger.Error("Failed to create driver", err)
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "License number already registered",
		})
	}

	logger.Success(fmt.Sprintf("Driver created successfully with ID: %d", drv.ID))

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Driver created successfully",
		Data:    drv,
	})
}

// Update edits mutable driver fields
func (dc *DriverController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid driver id",
		})
	}

	var req driverTypes.DriverUpdateRequest
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

	var drv driverModel.Driver
	if err := dc.DB.First(&drv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Driver not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if req.FullName != "" {
		drv.FullName = req.FullName
	}
	if req.Phone != "" {
		drv.Phone = req.Phone
	}
	if req.LicenseExpiry != "" {
		if expiry, err := time.Parse("2006-01-02", req.LicenseExpiry); err == nil {
			drv.LicenseExpiry = expiry
		}
	}

	if err := dc.DB.Save(&drv).Error; err != nil {
		logger.Error("Failed to update driver", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update driver",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Driver updated successfully",
		Data:    drv,
	})
}

// UpdateStatus handles manual duty toggles. ON_TRIP is owned by the trip
// lifecycle and cannot be set here.
func (dc *DriverController) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid driver id",
		})
	}

	var req driverTypes.DriverStatusRequest
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

	target := driverModel.DriverStatus(req.Status)
	if !target.IsManuallySettable() {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Status " + req.Status + " is owned by the trip lifecycle and cannot be set manually",
		})
	}

	var drv driverModel.Driver
	if err := dc.DB.First(&drv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Driver not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	if !drv.Status.IsManuallySettable() {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Driver is on an active trip",
		})
	}

	res := dc.DB.Model(&driverModel.Driver{}).
		Where("id = ? AND version = ?", drv.ID, drv.Version).
		Updates(map[string]interface{}{
			"status":  target,
			"version": drv.Version + 1,
		})
	if res.Error != nil {
		logger.Error("Failed to update driver status", res.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to update driver status",
		})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: "Driver was modified concurrently, retry",
		})
	}

	drv.Status = target
	drv.Version++
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Driver status updated",
		Data:    drv,
	})
}

// AdjustSafetyScore applies an additive adjustment, clamps to [0,100] and
// records an audit event with the required reason
func (dc *DriverController) AdjustSafetyScore(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid driver id",
		})
	}

	var req driverTypes.SafetyScoreRequest
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

	var drv driverModel.Driver
	err = dc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&drv, id).Error; err != nil {
			return err
		}

		score := drv.SafetyScore + req.Delta
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		drv.SafetyScore = score

		if err := tx.Save(&drv).Error; err != nil {
			return err
		}

		event := driverModel.SafetyEvent{
			DriverID:       drv.ID,
			Delta:          req.Delta,
			ResultingScore: score,
			Reason:         req.Reason,
			CreatedBy:      actor,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Driver not found",
			})
		}
		logger.Error("Failed to adjust safety score", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to adjust safety score",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Safety score adjusted",
		Data:    drv,
	})
}

// ListSafetyEvents returns the safety-score audit trail of one driver
func (dc *DriverController) ListSafetyEvents(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid driver id",
		})
	}

	var events []driverModel.SafetyEvent
	if err := dc.DB.Where("driver_id = ?", id).Order("created_at DESC").Find(&events).Error; err != nil {
		logger.Error("Failed to list safety events", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    events,
	})
}
