package finance

import (
	"errors"
	"time"

	"fleetflow/logger"
	"fleetflow/middleware"
	financeModel "fleetflow/models/finance"
	vehicleModel "fleetflow/models/vehicle"
	"fleetflow/types"
	financeTypes "fleetflow/types/finance"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FinanceController handles fuel log and expense HTTP requests
type FinanceController struct {
	DB     *gorm.DB
	Logger *logger.AsyncLogger
}

// NewFinanceController creates a new finance controller
func NewFinanceController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *FinanceController {
	return &FinanceController{DB: db, Logger: asyncLogger}
}

// StoreFuel records one refuelling
func (fc *FinanceController) StoreFuel(c *fiber.Ctx) error {
	var req financeTypes.FuelLogCreateRequest
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

	if err := fc.vehicleExists(req.VehicleID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Vehicle not found",
		})
	}

	filledAt, _ := time.Parse(time.RFC3339, req.FilledAt)

	claims := middleware.SessionFromCtx(c)
	actor := "system"
	if claims != nil {
		actor = claims.Username
	}

	log := financeModel.FuelLog{
		VehicleID:  req.VehicleID,
		TripID:     req.TripID,
		Liters:     req.Liters,
		TotalCost:  req.TotalCost,
		OdometerKm: req.OdometerKm,
		Station:    req.Station,
		FilledAt:   filledAt,
		CreatedBy:  actor,
	}

	if err := fc.DB.Create(&log).Error; err != nil {
		logger.Error("Failed to create fuel log", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create fuel log",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Fuel log created successfully",
		Data:    log,
	})
}

// IndexFuel lists fuel logs, optionally scoped to one vehicle
func (fc *FinanceController) IndexFuel(c *fiber.Ctx) error {
	query := fc.DB.Model(&financeModel.FuelLog{})
	if vehicleID := c.QueryInt("vehicle_id", 0); vehicleID > 0 {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var logs []financeModel.FuelLog
	if err := query.Order("filled_at DESC").Limit(200).Find(&logs).Error; err != nil {
		logger.Error("Failed to list fuel logs", err)
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

// StoreExpense records a non-fuel expense
func (fc *FinanceController) StoreExpense(c *fiber.Ctx) error {
	var req financeTypes.ExpenseCreateRequest
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

	if err := fc.vehicleExists(req.VehicleID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Vehicle not found",
		})
	}

	incurredAt, _ := time.Parse(time.RFC3339, req.IncurredAt)

	claims := middleware.SessionFromCtx(c)
	actor := "system"
	if claims != nil {
		actor = claims.Username
	}

	expense := financeModel.Expense{
		VehicleID:   req.VehicleID,
		TripID:      req.TripID,
		Category:    financeModel.ExpenseCategory(req.Category),
		Description: req.Description,
		Amount:      req.Amount,
		IncurredAt:  incurredAt,
		CreatedBy:   actor,
	}

	if err := fc.DB.Create(&expense).Error; err != nil {
		logger.Error("Failed to create expense", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create expense",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Expense created successfully",
		Data:    expense,
	})
}

// IndexExpenses lists expenses, optionally scoped to one vehicle
func (fc *FinanceController) IndexExpenses(c *fiber.Ctx) error {
	query := fc.DB.Model(&financeModel.Expense{})
	if vehicleID := c.QueryInt("vehicle_id", 0); vehicleID > 0 {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var expenses []financeModel.Expense
	if err := query.Order("incurred_at DESC").Limit(200).Find(&expenses).Error; err != nil {
		logger.Error("Failed to list expenses", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    expenses,
	})
}

func (fc *FinanceController) vehicleExists(id uint) error {
	var veh vehicleModel.Vehicle
	if err := fc.DB.Select("id").First(&veh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return err
	}
	return nil
}
