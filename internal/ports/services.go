package ports

import (
	"context"
	"time"

	"github.com/seu-repo/brace-tracker/internal/domain"
)

// IngestService loads every device CSV log under a data directory into a
// deduplicated record set.
type IngestService interface {
	IngestDirectory(ctx context.Context, dataDir string) (*domain.IngestResult, error)
}

// UsageService turns a record set into wear-time compliance reports.
type UsageService interface {
	EvaluateDevice(ctx context.Context, records domain.DeviceRecordSet, deviceID string, now time.Time) (*domain.WeeklyReport, error)
	EvaluateAll(ctx context.Context, records domain.DeviceRecordSet, now time.Time) ([]domain.WeeklyReport, error)
}
