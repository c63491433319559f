package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"fleetflow/logger"
	financeModel "fleetflow/models/finance"
	tripModel "fleetflow/models/trip"
	analyticsService "fleetflow/services/analytics"
	"fleetflow/types"

	"github.com/gofiber/fiber/v2"
	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// ExportController serves CSV and PDF downloads
type ExportController struct {
	DB        *gorm.DB
	Analytics *analyticsService.Service
	Logger    *logger.AsyncLogger
}

// NewExportController creates a new export controller
func NewExportController(db *gorm.DB, analytics *analyticsService.Service, asyncLogger *logger.AsyncLogger) *ExportController {
	return &ExportController{DB: db, Analytics: analytics, Logger: asyncLogger}
}

// TripsCSV streams the trip register as CSV
func (ec *ExportController) TripsCSV(c *fiber.Ctx) error {
	var trips []tripModel.Trip
	if err := ec.DB.Preload("Vehicle").Preload("Driver").Order("created_at").Find(&trips).Error; err != nil {
		logger.Error("Failed to load trips for export", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"id", "origin", "destination", "status", "vehicle_plate", "driver_name",
		"client", "distance_est_km", "distance_actual_km", "revenue",
		"dispatched_at", "completed_at", "cancel_reason",
	})

	for _, t := range trips {
		actual := ""
		if t.DistanceActual != nil {
			actual = strconv.FormatFloat(*t.DistanceActual, 'f', 2, 64)
		}
		reason := ""
		if t.CancelReason != nil {
			reason = *t.CancelReason
		}
		_ = w.Write([]string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Origin,
			t.Destination,
			t.Status.String(),
			t.Vehicle.LicensePlate,
			t.Driver.FullName,
			t.ClientName,
			strconv.FormatFloat(t.DistanceEst, 'f', 2, 64),
			actual,
			strconv.FormatFloat(t.Revenue, 'f', 2, 64),
			formatTime(t.DispatchedAt),
			formatTime(t.CompletedAt),
			reason,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("Failed to write trips CSV", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to build CSV",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="trips.csv"`)
	return c.Send(buf.Bytes())
}

// FuelCSV streams the fuel register as CSV
func (ec *ExportController) FuelCSV(c *fiber.Ctx) error {
	var logs []financeModel.FuelLog
	if err := ec.DB.Preload("Vehicle").Order("filled_at").Find(&logs).Error; err != nil {
		logger.Error("Failed to load fuel logs for export", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Database error",
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"id", "vehicle_plate", "liters", "total_cost", "odometer_km", "station", "filled_at"})

	for _, l := range logs {
		_ = w.Write([]string{
			strconv.FormatUint(uint64(l.ID), 10),
			l.Vehicle.LicensePlate,
			strconv.FormatFloat(l.Liters, 'f', 2, 64),
			strconv.FormatFloat(l.TotalCost, 'f', 2, 64),
			strconv.FormatFloat(l.OdometerKm, 'f', 2, 64),
			l.Station,
			l.FilledAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("Failed to write fuel CSV", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to build CSV",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="fuel.csv"`)
	return c.Send(buf.Bytes())
}

// MonthlyPDF renders one month's financial report as PDF
func (ec *ExportController) MonthlyPDF(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	report, err := ec.Analytics.Monthly(month)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "FleetFlow Monthly Report")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Period: "+report.Month)
	pdf.Ln(12)

	rows := []struct {
		label string
		value string
	}{
		{"Revenue", fmt.Sprintf("%.2f", report.Revenue)},
		{"Fuel cost", fmt.Sprintf("%.2f", report.FuelCost)},
		{"Expense cost", fmt.Sprintf("%.2f", report.ExpenseCost)},
		{"Maintenance cost", fmt.Sprintf("%.2f", report.MaintenanceCost)},
		{"Profit", fmt.Sprintf("%.2f", report.Profit)},
		{"Trips completed", strconv.FormatInt(report.TripsCompleted, 10)},
		{"Distance (km)", fmt.Sprintf("%.2f", report.DistanceKm)},
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.CellFormat(60, 8, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, row.value, "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		logger.Error("Failed to render monthly PDF", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to build PDF",
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="monthly-%s.pdf"`, month))
	return c.Send(buf.Bytes())
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
