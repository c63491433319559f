package trip

import (
	"errors"
	"fmt"

	"fleetflow/logger"
	"fleetflow/middleware"
	driverModel "fleetflow/models/driver"
	tripModel "fleetflow/models/trip"
	vehicleModel "fleetflow/models/vehicle"
	ledgerService "fleetflow/services/ledger"
	"fleetflow/services/triplifecycle"
	"fleetflow/types"
	tripTypes "fleetflow/types/trip"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// TripController handles trip CRUD and lifecycle transitions
type TripController struct {
	DB        *gorm.DB
	Lifecycle *triplifecycle.Service
	LedgerSvc *ledgerService.Service
	Logger    *logger.AsyncLogger
}

// NewTripController creates a new trip controller
func NewTripController(db *gorm.DB, lifecycle *triplifecycle.Service, ledger *ledgerService.Service, asyncLogger *logger.AsyncLogger) *TripController {
	return &TripController{DB: db, Lifecycle: lifecycle, LedgerSvc: ledger, Logger: asyncLogger}
}

// Index lists trips with optional status filter
func (tc *TripController) Index(c *fiber.Ctx) error {
	query := tc.DB.Model(&tripModel.Trip{}).Preload("Vehicle").Preload("Driver")

	if status := c.Query("status"); status != "" {
		if !tripModel.TripStatus(status).IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Unknown trip status: " + status,
			})
		}
		query = query.Where("status = ?", status)
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)

	var trips []tripModel.Trip
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&trips).Error; err != nil {
		logger.Error("Failed to list trips", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    trips,
	})
}

// Show returns one trip with its status history
func (tc *TripController) Show(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid trip id",
		})
	}

	var trip tripModel.Trip
	if err := tc.DB.Preload("Vehicle").Preload("Driver").First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Trip not found",
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
		Data:    trip,
	})
}

// Store creates a trip in DRAFT. The vehicle and driver are referenced but not
// committed until dispatch.
func (tc *TripController) Store(c *fiber.Ctx) error {
	var req tripTypes.TripCreateRequest
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

	// Referenced vehicle and driver must exist even for a draft
	var veh vehicleModel.Vehicle
	if err := tc.DB.First(&veh, req.VehicleID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Vehicle not found",
		})
	}
	var drv driverModel.Driver
	if err := tc.DB.First(&drv, req.DriverID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Driver not found",
		})
	}

	claims := middleware.SessionFromCtx(c)
	actor := "system"
	if claims != nil {
		actor = claims.Username
	}

	trip := tripModel.Trip{
		Origin:           req.Origin,
		Destination:      req.Destination,
		DistanceEst:      req.DistanceEst,
		CargoDescription: req.CargoDescription,
		CargoWeightKg:    req.CargoWeightKg,
		ClientName:       req.ClientName,
		Revenue:          req.Revenue,
		VehicleID:        req.VehicleID,
		DriverID:         req.DriverID,
		Status:           tripModel.TripStatusDraft,
		CreatedBy:        actor,
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&trip).Error; err != nil {
			return err
		}
		event := tripModel.TripStatusEvent{
			TripID:    trip.ID,
			Status:    tripModel.TripStatusDraft,
			CreatedBy: actor,
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		logger.Error("Failed to create trip", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to create trip",
		})
	}

	tc.Logger.Log(logger.RequestLogEntry(c))
	logger.Success(fmt.Sprintf("Trip created successfully with ID: %d", trip.ID))

	var created tripModel.Trip
	if err := tc.DB.Preload("Vehicle").Preload("Driver").First(&created, trip.ID).Error; err != nil {
		logger.Error("Failed to load created trip data", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Trip created but failed to retrieve complete data",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:  fiber.StatusCreated,
		Message: "Trip created successfully",
		Data:    created,
	})
}

// UpdateStatus routes {status, distance_actual?, odometer_end?, reason?} to the
// matching lifecycle transition
func (tc *TripController) UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid trip id",
		})
	}

	var req tripTypes.TripStatusRequest
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

	var trip *tripModel.Trip
	switch tripModel.TripStatus(req.Status) {
	case tripModel.TripStatusDispatched:
		trip, err = tc.Lifecycle.Dispatch(uint(id), actor)
	case tripModel.TripStatusCompleted:
		if req.DistanceActual == nil {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "distance_actual is required to complete a trip",
			})
		}
		trip, err = tc.Lifecycle.Complete(uint(id), *req.DistanceActual, req.OdometerEnd, actor)
	case tripModel.TripStatusCancelled:
		trip, err = tc.Lifecycle.Cancel(uint(id), req.Reason, actor)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Unsupported target status: " + req.Status,
		})
	}

	if err != nil {
		return tc.transitionError(c, err)
	}

	tc.Logger.Log(logger.RequestLogEntry(c))
	logger.Success(fmt.Sprintf("Trip %d moved to %s by %s", trip.ID, trip.Status, actor))

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Trip status updated",
		Data:    trip,
	})
}

// Ledger returns the computed financial summary of one trip
func (tc *TripController) Ledger(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid trip id",
		})
	}

	ledger, err := tc.LedgerSvc.ForTrip(uint(id))
	if err != nil {
		if errors.Is(err, ledgerService.ErrTripNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
				Status:  fiber.StatusNotFound,
				Message: "Trip not found",
			})
		}
		logger.Error("Failed to compute trip ledger", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to compute trip ledger",
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "OK",
		Data:    ledger,
	})
}

// History returns the status journal of one trip
func (tc *TripController) History(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid trip id",
		})
	}

	var events []tripModel.TripStatusEvent
	if err := tc.DB.Where("trip_id = ?", id).Order("created_at").Find(&events).Error; err != nil {
		logger.Error("Failed to list trip status events", err)
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

func (tc *TripController) transitionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, triplifecycle.ErrTripNotFound):
		return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
			Status:  fiber.StatusNotFound,
			Message: "Trip not found",
		})
	case errors.Is(err, triplifecycle.ErrInvalidDistance),
		errors.Is(err, triplifecycle.ErrBlankReason):
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, triplifecycle.ErrInvalidTransition),
		errors.Is(err, triplifecycle.ErrVehicleUnavailable),
		errors.Is(err, triplifecycle.ErrDriverUnavailable),
		errors.Is(err, triplifecycle.ErrLicenseExpired),
		errors.Is(err, triplifecycle.ErrVersionConflict):
		return c.Status(fiber.StatusConflict).JSON(types.ApiResponse{
			Status:  fiber.StatusConflict,
			Message: err.Error(),
		})
	default:
		logger.Error("Trip transition failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Trip transition failed",
		})
	}
}
