package database

import (
	"fmt"
	"os"

	"fleetflow/logger"
	driverModel "fleetflow/models/driver"
	financeModel "fleetflow/models/finance"
	incidentModel "fleetflow/models/incident"
	logModel "fleetflow/models/log"
	maintenanceModel "fleetflow/models/maintenance"
	sessionModel "fleetflow/models/session"
	trackingModel "fleetflow/models/tracking"
	tripModel "fleetflow/models/trip"
	userModel "fleetflow/models/user"
	vehicleModel "fleetflow/models/vehicle"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&userModel.User{},
		&vehicleModel.Vehicle{},
		&driverModel.Driver{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models with dependencies on Stage 1
	stage2Models := []interface{}{
		&sessionModel.Session{},
		&tripModel.Trip{},
		&driverModel.SafetyEvent{},
		&maintenanceModel.MaintenanceLog{},
		&financeModel.FuelLog{},
		&financeModel.Expense{},
		&incidentModel.Incident{},
		&trackingModel.LocationPing{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		&tripModel.TripStatusEvent{},
		&logModel.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"idx_vehicles_status", "CREATE INDEX IF NOT EXISTS idx_vehicles_status ON vehicles(status)"},
		{"idx_vehicles_license_plate", "CREATE INDEX IF NOT EXISTS idx_vehicles_license_plate ON vehicles(license_plate)"},
		{"idx_drivers_status", "CREATE INDEX IF NOT EXISTS idx_drivers_status ON drivers(status)"},
		{"idx_drivers_license_number", "CREATE INDEX IF NOT EXISTS idx_drivers_license_number ON drivers(license_number)"},
		{"idx_trips_status", "CREATE INDEX IF NOT EXISTS idx_trips_status ON trips(status)"},
		{"idx_trips_vehicle_status", "CREATE INDEX IF NOT EXISTS idx_trips_vehicle_status ON trips(vehicle_id, status)"},
		{"idx_trips_completed_at", "CREATE INDEX IF NOT EXISTS idx_trips_completed_at ON trips(completed_at)"},
		{"idx_fuel_logs_filled_at", "CREATE INDEX IF NOT EXISTS idx_fuel_logs_filled_at ON fuel_logs(filled_at)"},
		{"idx_expenses_incurred_at", "CREATE INDEX IF NOT EXISTS idx_expenses_incurred_at ON expenses(incurred_at)"},
		{"idx_maintenance_logs_open", "CREATE INDEX IF NOT EXISTS idx_maintenance_logs_open ON maintenance_logs(vehicle_id, open)"},
		{"idx_location_pings_vehicle_time", "CREATE INDEX IF NOT EXISTS idx_location_pings_vehicle_time ON location_pings(vehicle_id, recorded_at)"},
		{"idx_sessions_token_id", "CREATE INDEX IF NOT EXISTS idx_sessions_token_id ON sessions(token_id)"},
		{"idx_logs_created_at", "CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)"},
	}

	for _, idx := range indexes {
		if err := DB.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_trips_vehicle",
			sql: `ALTER TABLE trips ADD CONSTRAINT fk_trips_vehicle
				  FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_trips_driver",
			sql: `ALTER TABLE trips ADD CONSTRAINT fk_trips_driver
				  FOREIGN KEY (driver_id) REFERENCES drivers(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_maintenance_logs_vehicle",
			sql: `ALTER TABLE maintenance_logs ADD CONSTRAINT fk_maintenance_logs_vehicle
				  FOREIGN KEY (vehicle_id) REFERENCES vehicles(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_sessions_user",
			sql: `ALTER TABLE sessions ADD CONSTRAINT fk_sessions_user
				  FOREIGN KEY (user_id) REFERENCES users(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
