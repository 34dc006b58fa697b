package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/seu-repo/brace-tracker/internal/domain"
)

func sampleReports() []domain.WeeklyReport {
	start := time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC)
	days := make([]domain.DailySummary, 0, 7)
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		summary := domain.DailySummary{
			Date:                date,
			HoursAboveThreshold: 16,
			HoursRecorded:       24,
			Complete:            true,
		}
		if i == 6 {
			summary.HoursAboveThreshold = 1
			summary.HoursRecorded = 3
			summary.Complete = false
			summary.BelowThresholdHours = []time.Time{
				date.Add(5 * time.Hour),
				date.Add(6 * time.Hour),
			}
		}
		days = append(days, summary)
	}

	fullDays := make([]domain.DailySummary, 0, 7)
	for i := 0; i < 7; i++ {
		fullDays = append(fullDays, domain.DailySummary{
			Date:                start.AddDate(0, 0, i),
			HoursAboveThreshold: 17,
			HoursRecorded:       24,
			Complete:            true,
		})
	}

	return []domain.WeeklyReport{
		{
			DeviceID:           "B123",
			WindowStart:        start,
			WindowEnd:          start.AddDate(0, 0, 6),
			Days:               days,
			AverageHoursPerDay: (16*6 + 1) / 7.0,
			Compliant:          false,
		},
		{
			DeviceID:           "B456",
			WindowStart:        start,
			WindowEnd:          start.AddDate(0, 0, 6),
			Days:               fullDays,
			AverageHoursPerDay: 17.0,
			Compliant:          true,
		},
	}
}

func TestText_Plain(t *testing.T) {
	out := Text(sampleReports(), TextOptions{
		UsageThreshold:       16.0,
		TemperatureThreshold: 90.0,
	})

	for _, want := range []string{
		"Device: B123",
		"7-day avg: 13.9 hr/day",
		"needs improvement",
		"Thu 2025-09-11: 16 hrs",
		"Wed 2025-09-17: 1 hr (incomplete: 3/24 hours logged)",
		"Device: B456",
		"7-day avg: 17.0 hr/day",
		"meets goal",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("output should not contain ANSI codes without UseColor")
	}
	if strings.Contains(out, "below 90.0") {
		t.Error("below-threshold listing requires Verbose")
	}
}

func TestText_VerboseListsBelowThresholdHours(t *testing.T) {
	out := Text(sampleReports(), TextOptions{
		Verbose:              true,
		UsageThreshold:       16.0,
		TemperatureThreshold: 90.0,
	})

	if !strings.Contains(out, "below 90.0°F at: 05:00, 06:00") {
		t.Errorf("missing verbose below-threshold listing:\n%s", out)
	}
}

func TestText_Color(t *testing.T) {
	out := Text(sampleReports(), TextOptions{
		UseColor:             true,
		UsageThreshold:       16.0,
		TemperatureThreshold: 90.0,
	})

	if !strings.Contains(out, ansiGreen+"16 hrs"+ansiReset) {
		t.Errorf("on-target day should render green:\n%q", out)
	}
	if !strings.Contains(out, ansiRed) {
		t.Errorf("far-below day should render red:\n%q", out)
	}
}

func TestJSON_RoundTrips(t *testing.T) {
	out, err := JSON(sampleReports())
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded []struct {
		DeviceID           string  `json:"device_id"`
		AverageHoursPerDay float64 `json:"average_hours_per_day"`
		Compliant          bool    `json:"compliant"`
		DailySummaries     []struct {
			HoursAboveThreshold int `json:"hours_above_threshold"`
			HoursRecorded       int `json:"hours_recorded"`
		} `json:"daily_summaries"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].DeviceID != "B123" || decoded[1].DeviceID != "B456" {
		t.Fatalf("unexpected payload: %s", out)
	}
	if len(decoded[0].DailySummaries) != 7 {
		t.Errorf("expected 7 daily summaries, got %d", len(decoded[0].DailySummaries))
	}
	if !decoded[1].Compliant {
		t.Error("second device should be compliant")
	}
}

func TestShouldColor(t *testing.T) {
	if !ShouldColor(ColorAlways, nil) {
		t.Error("always must color")
	}
	if ShouldColor(ColorNever, nil) {
		t.Error("never must not color")
	}

	t.Setenv("NO_COLOR", "1")
	if ShouldColor(ColorAuto, nil) {
		t.Error("auto must honor NO_COLOR")
	}
}
