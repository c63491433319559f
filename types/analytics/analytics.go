package analytics

// KPIResponse is the dashboard headline snapshot
type KPIResponse struct {
	VehiclesByStatus map[string]int64 `json:"vehicles_by_status"`
	DriversByStatus  map[string]int64 `json:"drivers_by_status"`
	ActiveTrips      int64            `json:"active_trips"`
	OpenIncidents    int64            `json:"open_incidents"`
	MTDRevenue       float64          `json:"mtd_revenue"`
	MTDCost          float64          `json:"mtd_cost"`
}

// MonthlyReport aggregates one calendar month of fleet finances
type MonthlyReport struct {
	Month           string  `json:"month"`
	Revenue         float64 `json:"revenue"`
	FuelCost        float64 `json:"fuel_cost"`
	ExpenseCost     float64 `json:"expense_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	Profit          float64 `json:"profit"`
	TripsCompleted  int64   `json:"trips_completed"`
	DistanceKm      float64 `json:"distance_km"`
}

// VehicleROI is the lifetime return on one vehicle
type VehicleROI struct {
	VehicleID       uint    `json:"vehicle_id"`
	LicensePlate    string  `json:"license_plate"`
	Revenue         float64 `json:"revenue"`
	FuelCost        float64 `json:"fuel_cost"`
	ExpenseCost     float64 `json:"expense_cost"`
	MaintenanceCost float64 `json:"maintenance_cost"`
	Profit          float64 `json:"profit"`
	ROI             float64 `json:"roi"`
}

// FuelEfficiency is km per liter for one vehicle over completed trips
type FuelEfficiency struct {
	VehicleID    uint    `json:"vehicle_id"`
	LicensePlate string  `json:"license_plate"`
	DistanceKm   float64 `json:"distance_km"`
	Liters       float64 `json:"liters"`
	KmPerLiter   float64 `json:"km_per_liter"`
}
