package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/brace-tracker/internal/domain"
	"github.com/seu-repo/brace-tracker/internal/observability/telemetry"
	"github.com/seu-repo/brace-tracker/internal/ports"
)

// Service discovers device CSV logs and folds them into a deduplicated
// record set. Per-file and per-row failures become warnings on the result;
// only a missing data directory is an error.
type Service struct {
	log *zap.Logger
}

func NewService(log *zap.Logger) ports.IngestService {
	return &Service{log: log}
}

func (s *Service) IngestDirectory(ctx context.Context, dataDir string) (*domain.IngestResult, error) {
	info, err := os.Stat(dataDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrDataDirNotFound, dataDir)
	}

	paths, err := filepath.Glob(filepath.Join(dataDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list csv files: %w", err)
	}
	// Lexicographic order keeps warnings reproducible across runs.
	sort.Strings(paths)

	telemetry.IngestRunsTotal.Inc()

	result := &domain.IngestResult{
		RunID:   uuid.NewString(),
		Records: make(domain.DeviceRecordSet),
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.ingestFile(path, result)
	}

	s.log.Info("ingestion finished",
		zap.String("run_id", result.RunID),
		zap.String("data_dir", dataDir),
		zap.Int("files", len(paths)),
		zap.Int("devices", len(result.Records)),
		zap.Int("warnings", len(result.Warnings)),
	)

	return result, nil
}

// ingestFile reads one CSV log. The handle is released before the next file
// is opened, whether or not parsing succeeded.
func (s *Service) ingestFile(path string, result *domain.IngestResult) {
	deviceID := DeviceIDFromFilename(path)

	f, err := os.Open(path)
	if err != nil {
		s.fileWarning(result, path, deviceID, err)
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	normalizer := NewNormalizer(deviceID)

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				s.rowWarning(result, path, deviceID, parseErr.Line, strings.Join(fields, ","), err)
				continue
			}
			s.fileWarning(result, path, deviceID, err)
			return
		}

		// Physical line in the file, so warnings stay accurate when the
		// reader skips blank lines.
		line, _ := reader.FieldPos(0)

		sample, ok, err := normalizer.NormalizeRow(fields)
		if err != nil {
			s.rowWarning(result, path, deviceID, line, strings.Join(fields, ","), err)
			continue
		}
		if !ok {
			continue
		}

		result.Records.Merge(sample)
		telemetry.RowsParsedTotal.Inc()
	}
}

func (s *Service) fileWarning(result *domain.IngestResult, path, deviceID string, err error) {
	telemetry.FilesFailedTotal.Inc()
	warning := domain.IngestWarning{
		Kind:     domain.WarningFileAccess,
		File:     path,
		DeviceID: deviceID,
		Reason:   err.Error(),
	}
	result.Warnings = append(result.Warnings, warning)
	s.log.Warn("skipping unreadable file", zap.String("file", path), zap.Error(err))
}

func (s *Service) rowWarning(result *domain.IngestResult, path, deviceID string, line int, raw string, err error) {
	telemetry.RowsSkippedTotal.WithLabelValues("row_parse").Inc()
	warning := domain.IngestWarning{
		Kind:     domain.WarningRowParse,
		File:     path,
		Line:     line,
		DeviceID: deviceID,
		Reason:   err.Error(),
		Raw:      raw,
	}
	result.Warnings = append(result.Warnings, warning)
	s.log.Debug("skipping row",
		zap.String("file", path),
		zap.Int("line", line),
		zap.String("reason", err.Error()),
	)
}
