package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/brace-tracker/internal/domain"
)

func TestErrorHandler_StatusMapping(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/bad-config", func(c *fiber.Ctx) error {
		return fmt.Errorf("%w: window_days must be at least 1", domain.ErrInvalidConfig)
	})
	app.Get("/no-data", func(c *fiber.Ctx) error {
		return fmt.Errorf("%w: /tmp/nope", domain.ErrDataDirNotFound)
	})
	app.Get("/empty", func(c *fiber.Ctx) error {
		return domain.ErrNoRecords
	})
	app.Get("/explicit", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusServiceUnavailable, "warming up")
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	tests := []struct {
		path string
		want int
	}{
		{"/bad-config", fiber.StatusBadRequest},
		{"/no-data", fiber.StatusNotFound},
		{"/empty", fiber.StatusNotFound},
		{"/explicit", fiber.StatusServiceUnavailable},
		{"/boom", fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
		if err != nil {
			t.Fatalf("request %s failed: %v", tt.path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.path, resp.StatusCode, tt.want)
		}
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err != nil || payload.Error == "" {
			t.Errorf("%s: body should carry the error message, got %q", tt.path, body)
		}
	}
}
