package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/brace-tracker/internal/domain"
	"github.com/seu-repo/brace-tracker/internal/observability/telemetry"
	"github.com/seu-repo/brace-tracker/internal/ports"
	"github.com/seu-repo/brace-tracker/internal/service/usage"
	"github.com/seu-repo/brace-tracker/pkg/config"
)

// ReportHandler serves the reports computed from one ingestion run. The
// record set is read-only after ingestion, so handlers share it without
// locking.
type ReportHandler struct {
	usage  ports.UsageService
	result *domain.IngestResult
	cfg    config.AnalysisConfig
	log    *zap.Logger
}

func NewReportHandler(usageService ports.UsageService, result *domain.IngestResult, cfg config.AnalysisConfig, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		usage:  usageService,
		result: result,
		cfg:    cfg,
		log:    log,
	}
}

func (h *ReportHandler) ListDevices(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"run_id":  h.result.RunID,
		"devices": h.result.Records.DeviceIDs(),
	})
}

// GetReport returns the weekly report for one device. A "days" query param
// overrides the configured window length for this request only.
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	deviceID := c.Params("id")
	if h.result.Records.Device(deviceID) == nil {
		telemetry.ReportsServedTotal.WithLabelValues("not_found").Inc()
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "device not found"})
	}

	service := h.usage
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			telemetry.ReportsServedTotal.WithLabelValues("bad_request").Inc()
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("invalid days override %q", raw)})
		}
		if days != h.cfg.WindowDays {
			cfg := h.cfg
			cfg.WindowDays = days
			override, err := usage.NewService(cfg, h.log)
			if err != nil {
				telemetry.ReportsServedTotal.WithLabelValues("bad_request").Inc()
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
			}
			service = override
		}
	}

	report, err := service.EvaluateDevice(c.Context(), h.result.Records, deviceID, time.Now())
	if err != nil {
		telemetry.ReportsServedTotal.WithLabelValues("error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	report.RunID = h.result.RunID

	telemetry.ReportsServedTotal.WithLabelValues("ok").Inc()
	return c.JSON(report)
}

func (h *ReportHandler) ListWarnings(c *fiber.Ctx) error {
	warnings := h.result.Warnings
	if warnings == nil {
		warnings = []domain.IngestWarning{}
	}
	return c.JSON(fiber.Map{
		"run_id":   h.result.RunID,
		"warnings": warnings,
	})
}
