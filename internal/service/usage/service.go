package usage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/brace-tracker/internal/domain"
	"github.com/seu-repo/brace-tracker/internal/ports"
	"github.com/seu-repo/brace-tracker/pkg/config"
)

// Service is the evaluation entry point for the CLI and the report server.
type Service struct {
	agg *Aggregator
	log *zap.Logger
}

// NewService validates the analysis configuration up front; threshold and
// window violations are the only fatal errors in the pipeline.
func NewService(cfg config.AnalysisConfig, log *zap.Logger) (ports.UsageService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{agg: NewAggregator(cfg), log: log}, nil
}

// EvaluateDevice reports on a single device. A device with no records (never
// seen, or requested through a filter that matched nothing) still gets a
// full window of zero days and Compliant=false rather than an error.
func (s *Service) EvaluateDevice(ctx context.Context, records domain.DeviceRecordSet, deviceID string, now time.Time) (*domain.WeeklyReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hours := records.Device(deviceID)
	if len(hours) == 0 {
		s.log.Debug("no records for device", zap.String("device_id", deviceID))
	}

	report := s.agg.Report(deviceID, hours, now)
	return &report, nil
}

// EvaluateAll reports on every known device in lexicographic id order.
func (s *Service) EvaluateAll(ctx context.Context, records domain.DeviceRecordSet, now time.Time) ([]domain.WeeklyReport, error) {
	ids := records.DeviceIDs()
	reports := make([]domain.WeeklyReport, 0, len(ids))

	for _, id := range ids {
		report, err := s.EvaluateDevice(ctx, records, id, now)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}

	return reports, nil
}
