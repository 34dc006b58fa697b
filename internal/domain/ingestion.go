package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataDirNotFound means the data directory itself is missing or
	// unreadable. Per-file problems are warnings, not errors.
	ErrDataDirNotFound = errors.New("data directory not found")

	// ErrNoRecords means ingestion finished without a single valid sample.
	ErrNoRecords = errors.New("no records found")

	// ErrInvalidConfig marks configuration values the run cannot proceed with.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// WarningKind classifies recoverable ingestion problems.
type WarningKind string

const (
	WarningFileAccess WarningKind = "file_access"
	WarningRowParse   WarningKind = "row_parse"
)

// IngestWarning records a skipped file or row. Warnings are additive: they
// never suppress output for unaffected devices.
type IngestWarning struct {
	Kind     WarningKind `json:"kind"`
	File     string      `json:"file"`
	Line     int         `json:"line,omitempty"`
	DeviceID string      `json:"device_id,omitempty"`
	Reason   string      `json:"reason"`
	Raw      string      `json:"raw,omitempty"`
}

func (w IngestWarning) String() string {
	if w.Kind == WarningFileAccess {
		return fmt.Sprintf("%s: %s", w.File, w.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", w.File, w.Line, w.Reason)
}

// IngestResult is everything one ingestion run produced.
type IngestResult struct {
	RunID    string          `json:"run_id"`
	Records  DeviceRecordSet `json:"-"`
	Warnings []IngestWarning `json:"warnings"`
}
