package logger

import (
	"time"

	"fleetflow/types"

	"github.com/gofiber/fiber/v2"
)

// RequestLogEntry creates a deep-copied log entry for the current request.
// All data is copied so the entry stays valid after fiber recycles the context.
func RequestLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := string(append([]byte(nil), c.Body()...))
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

// RequestLogEntryRedacted is RequestLogEntry with both bodies withheld, for
// routes whose payloads carry credentials or tokens.
func RequestLogEntryRedacted(c *fiber.Ctx) types.LogEntry {
	entry := RequestLogEntry(c)
	entry.RequestBody = "[REDACTED]"
	entry.ResponseBody = "[REDACTED]"
	return entry
}
