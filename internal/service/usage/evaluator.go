package usage

// Compliant reports whether a window average meets the usage target.
// Meeting the target exactly passes.
func Compliant(averageHoursPerDay, usageThresholdHoursPerDay float64) bool {
	return averageHoursPerDay >= usageThresholdHoursPerDay
}
