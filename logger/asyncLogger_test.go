package logger

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	log_model "fleetflow/models/log"
	"fleetflow/types"

	gsqlite "github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(gsqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite memory DB: %v", err)
	}
	if err := db.AutoMigrate(&log_model.Log{}); err != nil {
		t.Fatalf("automigrate failed: %v", err)
	}
	return db
}

func TestAsyncLoggerPersistsEntries(t *testing.T) {
	db := setupTestDB(t)
	al := NewAsyncLogger(db)
	go al.ProcessLog()

	al.Log(types.LogEntry{
		Method:      "POST",
		URL:         "/api/trips/1/status",
		RequestBody: `{"status":"DISPATCHED"}`,
		StatusCode:  200,
		CreatedAt:   time.Now(),
	})

	// The writer drains the channel on its own goroutine
	var stored log_model.Log
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := db.First(&stored).Error; err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	assert.Equal(t, "POST", stored.Method)
	assert.Equal(t, "/api/trips/1/status", stored.URL)
	assert.Equal(t, `{"status":"DISPATCHED"}`, stored.RequestBody)
	assert.Equal(t, 200, stored.StatusCode)
}

func TestRequestLogEntryCopiesRequest(t *testing.T) {
	app := fiber.New()

	var entry types.LogEntry
	app.Post("/trips", func(c *fiber.Ctx) error {
		entry = RequestLogEntry(c)
		return c.SendStatus(fiber.StatusCreated)
	})

	req := httptest.NewRequest("POST", "/trips", strings.NewReader(`{"origin":"Dhaka"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	assert.NoError(t, err)

	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/trips", entry.URL)
	assert.Equal(t, `{"origin":"Dhaka"}`, entry.RequestBody)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestRequestLogEntryRedactedWithholdsBodies(t *testing.T) {
	app := fiber.New()

	var entry types.LogEntry
	app.Post("/login", func(c *fiber.Ctx) error {
		entry = RequestLogEntryRedacted(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("POST", "/login", strings.NewReader(`{"username":"admin","password":"secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	assert.NoError(t, err)

	assert.Equal(t, "[REDACTED]", entry.RequestBody)
	assert.Equal(t, "[REDACTED]", entry.ResponseBody)
	assert.NotContains(t, entry.RequestBody, "secret123")
	assert.Equal(t, "/login", entry.URL)
}
