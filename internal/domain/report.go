package domain

import "time"

// DailySummary is one UTC calendar day inside a report window.
type DailySummary struct {
	Date                time.Time   `json:"date"`
	HoursAboveThreshold int         `json:"hours_above_threshold"`
	HoursRecorded       int         `json:"hours_recorded"`
	Complete            bool        `json:"complete"`
	BelowThresholdHours []time.Time `json:"below_threshold_hours,omitempty"`
}

// WeeklyReport summarizes wear-time for one device over the trailing window
// of complete days.
type WeeklyReport struct {
	DeviceID           string         `json:"device_id"`
	RunID              string         `json:"run_id,omitempty"`
	WindowStart        time.Time      `json:"window_start"`
	WindowEnd          time.Time      `json:"window_end"`
	Days               []DailySummary `json:"daily_summaries"`
	AverageHoursPerDay float64        `json:"average_hours_per_day"`
	Compliant          bool           `json:"compliant"`
}

// TotalHoursAbove sums the over-threshold hours across the window.
func (r WeeklyReport) TotalHoursAbove() int {
	total := 0
	for _, day := range r.Days {
		total += day.HoursAboveThreshold
	}
	return total
}
