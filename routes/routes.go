package routes

import (
	"fleetflow/constants"
	analyticsController "fleetflow/controllers/analytics"
	"fleetflow/controllers/auth"
	driverController "fleetflow/controllers/driver"
	exportController "fleetflow/controllers/export"
	financeController "fleetflow/controllers/finance"
	incidentController "fleetflow/controllers/incident"
	trackingController "fleetflow/controllers/tracking"
	tripController "fleetflow/controllers/trip"
	vehicleController "fleetflow/controllers/vehicle"
	"fleetflow/logger"
	"fleetflow/middleware"
	analyticsService "fleetflow/services/analytics"
	"fleetflow/services/authtoken"
	ledgerService "fleetflow/services/ledger"
	maintenanceService "fleetflow/services/maintenance"
	trackingService "fleetflow/services/tracking"
	"fleetflow/services/triplifecycle"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, tokens *authtoken.Service) {
	asyncLogger := logger.NewAsyncLogger(db)

	lifecycle := triplifecycle.NewService(db)
	maint := maintenanceService.NewService(db)
	ledger := ledgerService.NewService(db)
	tracking := trackingService.NewService(db)
	analytics := analyticsService.NewService(db)

	authCtl := auth.NewAuthController(db, tokens, asyncLogger)
	vehicleCtl := vehicleController.NewVehicleController(db, maint, asyncLogger)
	driverCtl := driverController.NewDriverController(db, asyncLogger)
	tripCtl := tripController.NewTripController(db, lifecycle, ledger, asyncLogger)
	financeCtl := financeController.NewFinanceController(db, asyncLogger)
	incidentCtl := incidentController.NewIncidentController(db, asyncLogger)
	trackingCtl := trackingController.NewTrackingController(tracking, asyncLogger)
	analyticsCtl := analyticsController.NewAnalyticsController(analytics, asyncLogger)
	exportCtl := exportController.NewExportController(db, analytics, asyncLogger)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "fleetflow",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/auth/login", authCtl.Login)
	api.Post("/auth/refresh", authCtl.Refresh)

	/*=============================================================================
	| Auth Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.RequireAuthentication())
	authGroup.Get("/me", authCtl.Me)
	authGroup.Post("/logout", authCtl.Logout)
	authGroup.Post("/register", middleware.RequirePermissions(
		constants.PermAdminFull,
	), authCtl.Register)

	/*=============================================================================
	| Vehicle Routes
	===============================================================================*/
	vehicles := api.Group("/fleet/vehicles")

	vehicles.Get("/", middleware.RequirePermissions(constants.ReadPermissions...), vehicleCtl.Index)
	vehicles.Get("/:id", middleware.RequirePermissions(constants.ReadPermissions...), vehicleCtl.Show)
	vehicles.Post("/", middleware.RequirePermissions(constants.FleetWritePermissions...), vehicleCtl.Store)
	vehicles.Put("/:id", middleware.RequirePermissions(constants.FleetWritePermissions...), vehicleCtl.Update)
	vehicles.Patch("/:id/status", middleware.RequirePermissions(constants.FleetWritePermissions...), vehicleCtl.UpdateStatus)

	// Maintenance is nested under the vehicle it services
	vehicles.Get("/:id/maintenance", middleware.RequirePermissions(constants.ReadPermissions...), vehicleCtl.ListMaintenance)
	vehicles.Post("/:id/maintenance", middleware.RequirePermissions(constants.FleetWritePermissions...), vehicleCtl.StoreMaintenance)
	vehicles.Patch("/:id/maintenance/:logId/close", middleware.RequirePermissions(constants.FleetWritePermissions...), vehicleCtl.CloseMaintenance)

	/*=============================================================================
	| Driver Routes
	===============================================================================*/
	drivers := api.Group("/drivers")

	drivers.Get("/", middleware.RequirePermissions(constants.ReadPermissions...), driverCtl.Index)
	drivers.Get("/:id", middleware.RequirePermissions(constants.ReadPermissions...), driverCtl.Show)
	drivers.Post("/", middleware.RequirePermissions(constants.FleetWritePermissions...), driverCtl.Store)
	drivers.Put("/:id", middleware.RequirePermissions(constants.FleetWritePermissions...), driverCtl.Update)
	drivers.Patch("/:id/status", middleware.RequirePermissions(constants.FleetWritePermissions...), driverCtl.UpdateStatus)
	drivers.Patch("/:id/safety-score", middleware.RequirePermissions(constants.FleetWritePermissions...), driverCtl.AdjustSafetyScore)
	drivers.Get("/:id/safety-events", middleware.RequirePermissions(constants.ReadPermissions...), driverCtl.ListSafetyEvents)

	/*=============================================================================
	| Trip Routes
	===============================================================================*/
	trips := api.Group("/trips")

	trips.Get("/", middleware.RequirePermissions(constants.ReadPermissions...), tripCtl.Index)
	trips.Get("/:id", middleware.RequirePermissions(constants.ReadPermissions...), tripCtl.Show)
	trips.Post("/", middleware.RequirePermissions(constants.DispatchPermissions...), tripCtl.Store)
	trips.Patch("/:id/status", middleware.RequirePermissions(constants.DispatchPermissions...), tripCtl.UpdateStatus)
	trips.Get("/:id/ledger", middleware.RequirePermissions(constants.ReadPermissions...), tripCtl.Ledger)
	trips.Get("/:id/history", middleware.RequirePermissions(constants.ReadPermissions...), tripCtl.History)

	/*=============================================================================
	| Finance Routes
	===============================================================================*/
	finance := api.Group("/finance")

	finance.Post("/fuel", middleware.RequirePermissions(constants.FleetWritePermissions...), financeCtl.StoreFuel)
	finance.Get("/fuel", middleware.RequirePermissions(constants.ReadPermissions...), financeCtl.IndexFuel)
	finance.Post("/expenses", middleware.RequirePermissions(constants.FleetWritePermissions...), financeCtl.StoreExpense)
	finance.Get("/expenses", middleware.RequirePermissions(constants.ReadPermissions...), financeCtl.IndexExpenses)

	/*=============================================================================
	| Incident Routes
	===============================================================================*/
	incidents := api.Group("/incidents")

	incidents.Post("/", middleware.RequirePermissions(constants.DispatchPermissions...), incidentCtl.Store)
	incidents.Get("/", middleware.RequirePermissions(constants.ReadPermissions...), incidentCtl.Index)
	incidents.Get("/:id", middleware.RequirePermissions(constants.ReadPermissions...), incidentCtl.Show)
	incidents.Patch("/:id/status", middleware.RequirePermissions(constants.FleetWritePermissions...), incidentCtl.UpdateStatus)

	/*=============================================================================
	| Tracking Routes
	===============================================================================*/
	api.Post("/tracking/pings", middleware.RequirePermissions(
		constants.DispatchPermissions...,
	), trackingCtl.StorePing)

	api.Get("/tracking/vehicles/:id/pings", middleware.RequirePermissions(
		constants.ReadPermissions...,
	), trackingCtl.VehiclePings)

	/*=============================================================================
	| Analytics Routes
	===============================================================================*/
	analyticsGroup := api.Group("/analytics").Use(middleware.RequirePermissions(constants.ReadPermissions...))

	analyticsGroup.Get("/kpi", analyticsCtl.KPI)
	analyticsGroup.Get("/monthly", analyticsCtl.Monthly)
	analyticsGroup.Get("/vehicles/:id/roi", analyticsCtl.VehicleROI)
	analyticsGroup.Get("/fuel-efficiency", analyticsCtl.FuelEfficiency)

	/*=============================================================================
	| Export Routes
	===============================================================================*/
	exports := api.Group("/export").Use(middleware.RequirePermissions(constants.ReadPermissions...))

	exports.Get("/trips.csv", exportCtl.TripsCSV)
	exports.Get("/fuel.csv", exportCtl.FuelCSV)
	exports.Get("/monthly.pdf", exportCtl.MonthlyPDF)
}
