package ledger

import (
	"errors"

	financeModel "fleetflow/models/finance"
	maintenanceModel "fleetflow/models/maintenance"
	tripModel "fleetflow/models/trip"
	tripTypes "fleetflow/types/trip"

	"gorm.io/gorm"
)

var ErrTripNotFound = errors.New("trip not found")

// Service computes the financial summary of a trip: revenue against the fuel,
// expense and maintenance rows linked to it.
type Service struct {
	db *gorm.DB
}

// NewService creates a new ledger service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ForTrip computes the ledger of one trip. Figures are final once the trip is
// COMPLETED; before that they reflect costs booked so far.
func (s *Service) ForTrip(tripID uint) (*tripTypes.LedgerResponse, error) {
	var trip tripModel.Trip
	if err := s.db.First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	fuelCost, err := s.sumColumn(&financeModel.FuelLog{}, "total_cost", tripID)
	if err != nil {
		return nil, err
	}
	expenseCost, err := s.sumColumn(&financeModel.Expense{}, "amount", tripID)
	if err != nil {
		return nil, err
	}
	maintenanceCost, err := s.sumColumn(&maintenanceModel.MaintenanceLog{}, "cost", tripID)
	if err != nil {
		return nil, err
	}

	totalCost := fuelCost + expenseCost + maintenanceCost
	profit := trip.Revenue - totalCost

	roi := 0.0
	if totalCost > 0 {
		roi = profit / totalCost
	}

	return &tripTypes.LedgerResponse{
		TripID:          trip.ID,
		Revenue:         trip.Revenue,
		FuelCost:        fuelCost,
		ExpenseCost:     expenseCost,
		MaintenanceCost: maintenanceCost,
		Profit:          profit,
		ROI:             roi,
	}, nil
}

func (s *Service) sumColumn(model interface{}, column string, tripID uint) (float64, error) {
	var total float64
	err := s.db.Model(model).
		Where("trip_id = ?", tripID).
		Select("COALESCE(SUM(" + column + "), 0)").
		Scan(&total).Error
	return total, err
}
