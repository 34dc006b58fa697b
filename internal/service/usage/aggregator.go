package usage

import (
	"time"

	"github.com/seu-repo/brace-tracker/internal/domain"
	"github.com/seu-repo/brace-tracker/pkg/config"
)

// Aggregator computes the trailing wear-time window for one device. The
// window covers WindowDays complete UTC days ending the day before now's
// UTC date, so the in-progress day never deflates the average.
type Aggregator struct {
	cfg config.AnalysisConfig
}

func NewAggregator(cfg config.AnalysisConfig) *Aggregator {
	return &Aggregator{cfg: cfg}
}

// WindowEnd returns midnight UTC of the most recent complete day.
func (a *Aggregator) WindowEnd(now time.Time) time.Time {
	utc := now.UTC()
	today := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, -1)
}

// Report builds the window for one device. Days without data fill in as
// zero summaries; the average always divides by the full window length, so
// missing data counts as zero wear rather than shrinking the denominator.
func (a *Aggregator) Report(deviceID string, records map[time.Time]domain.HourlyRecord, now time.Time) domain.WeeklyReport {
	end := a.WindowEnd(now)
	start := end.AddDate(0, 0, -(a.cfg.WindowDays - 1))

	days := make([]domain.DailySummary, 0, a.cfg.WindowDays)
	totalAbove := 0

	for offset := 0; offset < a.cfg.WindowDays; offset++ {
		day := start.AddDate(0, 0, offset)
		summary := a.summarizeDay(day, records)
		totalAbove += summary.HoursAboveThreshold
		days = append(days, summary)
	}

	average := float64(totalAbove) / float64(a.cfg.WindowDays)

	return domain.WeeklyReport{
		DeviceID:           deviceID,
		WindowStart:        start,
		WindowEnd:          end,
		Days:               days,
		AverageHoursPerDay: average,
		Compliant:          len(records) > 0 && Compliant(average, a.cfg.UsageThresholdHoursPerDay),
	}
}

func (a *Aggregator) summarizeDay(day time.Time, records map[time.Time]domain.HourlyRecord) domain.DailySummary {
	summary := domain.DailySummary{Date: day}

	for hour := 0; hour < 24; hour++ {
		record, ok := records[day.Add(time.Duration(hour)*time.Hour)]
		if !ok {
			continue
		}
		summary.HoursRecorded++
		// Strictly above: a reading exactly at the threshold does not count.
		if record.Temperature > a.cfg.TemperatureThresholdFahrenheit {
			summary.HoursAboveThreshold++
		} else {
			summary.BelowThresholdHours = append(summary.BelowThresholdHours, record.Hour)
		}
	}

	summary.Complete = summary.HoursRecorded == 24
	return summary
}
