package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/seu-repo/brace-tracker/internal/domain"
)

const (
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiReset  = "\033[0m"

	// Averages within this many hours under the target render yellow
	// instead of red.
	nearThresholdBufferHours = 2.0
)

// Color modes accepted by the CLI and the report config.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type TextOptions struct {
	Verbose              bool
	UseColor             bool
	UsageThreshold       float64
	TemperatureThreshold float64
}

// Text renders the human-readable per-device report.
func Text(reports []domain.WeeklyReport, opts TextOptions) string {
	var lines []string

	for _, report := range reports {
		status := "meets goal"
		if !report.Compliant {
			status = "needs improvement"
		}

		completeDays := 0
		for _, day := range report.Days {
			if day.Complete {
				completeDays++
			}
		}

		lines = append(lines, fmt.Sprintf("Device: %s", report.DeviceID))
		avgText := fmt.Sprintf("%.1f hr/day", report.AverageHoursPerDay)
		lines = append(lines, fmt.Sprintf("%d-day avg: %s (based on %d/%d complete days, %s)",
			len(report.Days),
			colorize(avgText, report.AverageHoursPerDay, opts),
			completeDays,
			len(report.Days),
			status,
		))

		for _, day := range report.Days {
			suffix := "hrs"
			if day.HoursAboveThreshold == 1 {
				suffix = "hr"
			}
			note := ""
			if !day.Complete {
				note = fmt.Sprintf(" (incomplete: %d/24 hours logged)", day.HoursRecorded)
			}
			hoursText := fmt.Sprintf("%d %s", day.HoursAboveThreshold, suffix)
			lines = append(lines, fmt.Sprintf("  %s: %s%s",
				day.Date.Format("Mon 2006-01-02"),
				colorize(hoursText, float64(day.HoursAboveThreshold), opts),
				note,
			))

			if opts.Verbose && len(day.BelowThresholdHours) > 0 {
				times := make([]string, 0, len(day.BelowThresholdHours))
				for _, h := range day.BelowThresholdHours {
					times = append(times, h.Format("15:04"))
				}
				lines = append(lines, fmt.Sprintf("    below %.1f°F at: %s",
					opts.TemperatureThreshold, strings.Join(times, ", ")))
			}
		}
		lines = append(lines, "")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func colorize(text string, hours float64, opts TextOptions) string {
	if !opts.UseColor {
		return text
	}

	delta := hours - opts.UsageThreshold
	color := ansiRed
	switch {
	case delta >= 0:
		color = ansiGreen
	case delta >= -nearThresholdBufferHours:
		color = ansiYellow
	}
	return color + text + ansiReset
}

// ShouldColor resolves a color mode against the output stream: "always" and
// "never" are absolute, "auto" colors only TTYs and honors NO_COLOR.
func ShouldColor(mode string, out *os.File) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	info, err := out.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
