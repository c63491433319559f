package analytics

import (
	"errors"
	"fmt"
	"time"

	driverModel "fleetflow/models/driver"
	financeModel "fleetflow/models/finance"
	incidentModel "fleetflow/models/incident"
	maintenanceModel "fleetflow/models/maintenance"
	tripModel "fleetflow/models/trip"
	vehicleModel "fleetflow/models/vehicle"
	analyticsTypes "fleetflow/types/analytics"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// Service computes the read-side aggregates behind the analytics endpoints
type Service struct {
	db *gorm.DB
}

// NewService creates a new analytics service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// KPI returns the dashboard headline snapshot: fleet/driver counts grouped by
// status, active trips, open incidents and month-to-date money figures.
func (s *Service) KPI() (*analyticsTypes.KPIResponse, error) {
	resp := &analyticsTypes.KPIResponse{
		VehiclesByStatus: make(map[string]int64),
		DriversByStatus:  make(map[string]int64),
	}

	type statusCount struct {
		Status string
		Count  int64
	}

	var vehicleCounts []statusCount
	if err := s.db.Model(&vehicleModel.Vehicle{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&vehicleCounts).Error; err != nil {
		return nil, err
	}
	for _, vc := range vehicleCounts {
		resp.VehiclesByStatus[vc.Status] = vc.Count
	}

	var driverCounts []statusCount
	if err := s.db.Model(&driverModel.Driver{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&driverCounts).Error; err != nil {
		return nil, err
	}
	for _, dc := range driverCounts {
		resp.DriversByStatus[dc.Status] = dc.Count
	}

	if err := s.db.Model(&tripModel.Trip{}).
		Where("status = ?", tripModel.TripStatusDispatched).
		Count(&resp.ActiveTrips).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&incidentModel.Incident{}).
		Where("status IN ?", []incidentModel.IncidentStatus{
			incidentModel.IncidentStatusOpen,
			incidentModel.IncidentStatusInvestigating,
		}).
		Count(&resp.OpenIncidents).Error; err != nil {
		return nil, err
	}

	monthStart := now.BeginningOfMonth()
	monthEnd := now.EndOfMonth()

	report, err := s.monthlyBetween(monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	resp.MTDRevenue = report.Revenue
	resp.MTDCost = report.FuelCost + report.ExpenseCost + report.MaintenanceCost

	return resp, nil
}

// Monthly aggregates one calendar month given as "2006-01"
func (s *Service) Monthly(month string) (*analyticsTypes.MonthlyReport, error) {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}

	start := now.With(parsed).BeginningOfMonth()
	end := now.With(parsed).EndOfMonth()

	report, err := s.monthlyBetween(start, end)
	if err != nil {
		return nil, err
	}
	report.Month = month
	return report, nil
}

func (s *Service) monthlyBetween(start, end time.Time) (*analyticsTypes.MonthlyReport, error) {
	report := &analyticsTypes.MonthlyReport{}

	// Revenue, completed count and distance come from trips completed in the window
	row := struct {
		Revenue  float64
		Count    int64
		Distance float64
	}{}
	if err := s.db.Model(&tripModel.Trip{}).
		Select("COALESCE(SUM(revenue), 0) as revenue, COUNT(*) as count, COALESCE(SUM(distance_actual), 0) as distance").
		Where("status = ? AND completed_at BETWEEN ? AND ?", tripModel.TripStatusCompleted, start, end).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	report.Revenue = row.Revenue
	report.TripsCompleted = row.Count
	report.DistanceKm = row.Distance

	if err := s.db.Model(&financeModel.FuelLog{}).
		Select("COALESCE(SUM(total_cost), 0)").
		Where("filled_at BETWEEN ? AND ?", start, end).
		Scan(&report.FuelCost).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&financeModel.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("incurred_at BETWEEN ? AND ?", start, end).
		Scan(&report.ExpenseCost).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&maintenanceModel.MaintenanceLog{}).
		Select("COALESCE(SUM(cost), 0)").
		Where("created_at BETWEEN ? AND ?", start, end).
		Scan(&report.MaintenanceCost).Error; err != nil {
		return nil, err
	}

	report.Profit = report.Revenue - report.FuelCost - report.ExpenseCost - report.MaintenanceCost
	return report, nil
}

// VehicleROI computes the lifetime return of one vehicle
func (s *Service) VehicleROI(vehicleID uint) (*analyticsTypes.VehicleROI, error) {
	var veh vehicleModel.Vehicle
	if err := s.db.First(&veh, vehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	roi := &analyticsTypes.VehicleROI{
		VehicleID:    veh.ID,
		LicensePlate: veh.LicensePlate,
	}

	if err := s.db.Model(&tripModel.Trip{}).
		Select("COALESCE(SUM(revenue), 0)").
		Where("vehicle_id = ? AND status = ?", veh.ID, tripModel.TripStatusCompleted).
		Scan(&roi.Revenue).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&financeModel.FuelLog{}).
		Select("COALESCE(SUM(total_cost), 0)").
		Where("vehicle_id = ?", veh.ID).
		Scan(&roi.FuelCost).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&financeModel.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("vehicle_id = ?", veh.ID).
		Scan(&roi.ExpenseCost).Error; err != nil {
		return nil, err
	}

	if err := s.db.Model(&maintenanceModel.MaintenanceLog{}).
		Select("COALESCE(SUM(cost), 0)").
		Where("vehicle_id = ?", veh.ID).
		Scan(&roi.MaintenanceCost).Error; err != nil {
		return nil, err
	}

	totalCost := roi.FuelCost + roi.ExpenseCost + roi.MaintenanceCost
	roi.Profit = roi.Revenue - totalCost
	if totalCost > 0 {
		roi.ROI = roi.Profit / totalCost
	}

	return roi, nil
}

// FuelEfficiency returns km per liter for every vehicle with fuel history
func (s *Service) FuelEfficiency() ([]analyticsTypes.FuelEfficiency, error) {
	var vehicles []vehicleModel.Vehicle
	if err := s.db.Find(&vehicles).Error; err != nil {
		return nil, err
	}

	results := make([]analyticsTypes.FuelEfficiency, 0, len(vehicles))
	for _, veh := range vehicles {
		var distance float64
		if err := s.db.Model(&tripModel.Trip{}).
			Select("COALESCE(SUM(distance_actual), 0)").
			Where("vehicle_id = ? AND status = ?", veh.ID, tripModel.TripStatusCompleted).
			Scan(&distance).Error; err != nil {
			return nil, err
		}

		var liters float64
		if err := s.db.Model(&financeModel.FuelLog{}).
			Select("COALESCE(SUM(liters), 0)").
			Where("vehicle_id = ?", veh.ID).
			Scan(&liters).Error; err != nil {
			return nil, err
		}

		if liters == 0 {
			continue
		}

		results = append(results, analyticsTypes.FuelEfficiency{
			VehicleID:    veh.ID,
			LicensePlate: veh.LicensePlate,
			DistanceKm:   distance,
			Liters:       liters,
			KmPerLiter:   distance / liters,
		})
	}

	return results, nil
}
