package ingest

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/seu-repo/brace-tracker/internal/domain"
)

// timestampLayouts are tried in order. Naive layouts carry no offset and are
// interpreted as UTC; offset-bearing ones convert to UTC after parsing.
var timestampLayouts = []struct {
	layout string
	naive  bool
}{
	// Browser export format: Thu Sep 11 2025 10:54:11 GMT-0500
	{"Mon Jan 2 2006 15:04:05 GMT-0700", false},
	{time.RFC3339, false},
	{"2006-01-02 15:04-0700", false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04", true},
}

// ParseTimestamp parses one exported timestamp into a UTC instant. A trailing
// zone name fragment like " (Central Daylight Time)" is stripped first.
func ParseTimestamp(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if i := strings.Index(cleaned, " ("); i >= 0 {
		cleaned = cleaned[:i]
	}

	for _, candidate := range timestampLayouts {
		var t time.Time
		var err error
		if candidate.naive {
			t, err = time.ParseInLocation(candidate.layout, cleaned, time.UTC)
		} else {
			t, err = time.Parse(candidate.layout, cleaned)
		}
		if err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// DeviceIDFromFilename derives the device id from a log filename: the stem up
// to the first underscore, or the whole stem when there is none.
func DeviceIDFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.Index(stem, "_"); i >= 0 {
		return stem[:i]
	}
	return stem
}

// Normalizer turns raw CSV rows from one file into samples. It keeps the
// header context (column positions) discovered while reading the file, and
// every sample it emits carries the filename-derived device id.
type Normalizer struct {
	deviceID string
	timeCol  int
	tempCol  int
}

func NewNormalizer(deviceID string) *Normalizer {
	return &Normalizer{deviceID: deviceID, timeCol: 0, tempCol: 1}
}

// NormalizeRow parses one CSV row. The second return reports whether a sample
// was produced: header rows and blank rows skip silently (false, nil), while
// a garbled data row returns an error the caller records as a warning. A bad
// row never aborts the rest of the file.
func (n *Normalizer) NormalizeRow(fields []string) (domain.RawSample, bool, error) {
	for i := range fields {
		fields[i] = strings.TrimSpace(strings.TrimSuffix(fields[i], "\r"))
	}

	if isBlank(fields) {
		return domain.RawSample{}, false, nil
	}

	// Header rows (including duplicates mid-file) are detected by the first
	// field parsing as neither a number nor a timestamp.
	if looksLikeHeader(fields[0]) {
		n.adoptHeader(fields)
		return domain.RawSample{}, false, nil
	}

	need := n.timeCol
	if n.tempCol > need {
		need = n.tempCol
	}
	if len(fields) <= need {
		return domain.RawSample{}, false, fmt.Errorf("expected at least %d columns, got %d", need+1, len(fields))
	}

	timestamp, err := ParseTimestamp(fields[n.timeCol])
	if err != nil {
		return domain.RawSample{}, false, err
	}

	temperature, err := strconv.ParseFloat(fields[n.tempCol], 64)
	if err != nil {
		return domain.RawSample{}, false, fmt.Errorf("unparseable temperature %q", fields[n.tempCol])
	}

	return domain.RawSample{
		DeviceID:    n.deviceID,
		Timestamp:   timestamp,
		Temperature: temperature,
	}, true, nil
}

// adoptHeader remembers recognized column names so files with extra or
// reordered columns still resolve the right fields.
func (n *Normalizer) adoptHeader(fields []string) {
	for i, name := range fields {
		switch strings.ToLower(name) {
		case "date", "timestamp", "time":
			n.timeCol = i
		case "temperature", "temperature_f", "temp":
			n.tempCol = i
		}
	}
}

func isBlank(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}

func looksLikeHeader(first string) bool {
	if first == "" {
		return true
	}
	if _, err := strconv.ParseFloat(first, 64); err == nil {
		return false
	}
	if _, err := ParseTimestamp(first); err == nil {
		return false
	}
	return true
}
