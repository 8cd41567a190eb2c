// Package testutils provides fixtures for tests and test-only API endpoints.
// The routes are only registered when ENVIRONMENT=test.
package testutils

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutes registers test-only routes.
// These endpoints should ONLY be registered in test environments.
func RegisterRoutes(e *echo.Echo, db *bun.DB) {
	h := &handler{db: db}

	test := e.Group("/test")
	test.POST("/fixtures", h.loadFixtures)
	test.DELETE("/fixtures", h.deleteAll)
}
