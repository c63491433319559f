package routes

import (
	"testing"

	logModel "fleetflow/models/log"
	sessionModel "fleetflow/models/session"
	userModel "fleetflow/models/user"
	"fleetflow/services/authtoken"

	gsqlite "github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	db, err := gorm.Open(gsqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite memory DB: %v", err)
	}
	if err := db.AutoMigrate(&userModel.User{}, &sessionModel.Session{}, &logModel.Log{}); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}

	app := fiber.New()
	SetupRoutes(app, db, authtoken.NewService(db))
	return app
}

func hasRoute(app *fiber.App, method, path string) bool {
	for _, route := range app.GetRoutes() {
		if route.Method == method && route.Path == path {
			return true
		}
	}
	return false
}

func TestVehicleRoutesMountedUnderFleet(t *testing.T) {
	app := setupApp(t)

	assert.True(t, hasRoute(app, "POST", "/api/fleet/vehicles/"))
	assert.True(t, hasRoute(app, "GET", "/api/fleet/vehicles/:id"))
	assert.True(t, hasRoute(app, "PATCH", "/api/fleet/vehicles/:id/status"))
	assert.True(t, hasRoute(app, "POST", "/api/fleet/vehicles/:id/maintenance"))
	assert.True(t, hasRoute(app, "PATCH", "/api/fleet/vehicles/:id/maintenance/:logId/close"))

	// The old mount point is gone
	assert.False(t, hasRoute(app, "POST", "/api/vehicles/"))
	assert.False(t, hasRoute(app, "PATCH", "/api/vehicles/:id/status"))
}

func TestPingHistoryMountedUnderTracking(t *testing.T) {
	app := setupApp(t)

	assert.True(t, hasRoute(app, "POST", "/api/tracking/pings"))
	assert.True(t, hasRoute(app, "GET", "/api/tracking/vehicles/:id/pings"))
	assert.False(t, hasRoute(app, "GET", "/api/fleet/vehicles/:id/pings"))
}

func TestPublicAndAuthRoutes(t *testing.T) {
	app := setupApp(t)

	assert.True(t, hasRoute(app, "POST", "/api/auth/login"))
	assert.True(t, hasRoute(app, "POST", "/api/auth/refresh"))
	assert.True(t, hasRoute(app, "GET", "/api/auth/me"))
	assert.True(t, hasRoute(app, "POST", "/api/auth/logout"))
}

func TestAnalyticsAndExportRoutes(t *testing.T) {
	app := setupApp(t)

	assert.True(t, hasRoute(app, "GET", "/api/analytics/kpi"))
	assert.True(t, hasRoute(app, "GET", "/api/analytics/monthly"))
	assert.True(t, hasRoute(app, "GET", "/api/analytics/vehicles/:id/roi"))
	assert.True(t, hasRoute(app, "GET", "/api/export/trips.csv"))
	assert.True(t, hasRoute(app, "GET", "/api/export/monthly.pdf"))
}
