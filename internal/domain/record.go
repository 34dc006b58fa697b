package domain

import (
	"sort"
	"time"
)

// RawSample is a single parsed CSV row prior to deduplication.
type RawSample struct {
	DeviceID    string
	Timestamp   time.Time // UTC
	Temperature float64   // Fahrenheit
}

// HourlyRecord is the canonical observation after deduplication: at most one
// exists per (device, UTC hour) pair.
type HourlyRecord struct {
	DeviceID    string    `json:"device_id"`
	Hour        time.Time `json:"hour"`
	Temperature float64   `json:"temperature_f"`
}

// HourKey returns the UTC hour bucket an instant belongs to.
func HourKey(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// DeviceRecordSet maps device id -> hour bucket -> surviving record.
type DeviceRecordSet map[string]map[time.Time]HourlyRecord

// Merge folds a sample into the set, keeping the maximum temperature per
// device-hour. Ties keep the first-seen sample, so the fold is idempotent
// and independent of input order.
func (s DeviceRecordSet) Merge(sample RawSample) {
	hour := HourKey(sample.Timestamp)

	hours, ok := s[sample.DeviceID]
	if !ok {
		hours = make(map[time.Time]HourlyRecord)
		s[sample.DeviceID] = hours
	}

	existing, ok := hours[hour]
	if ok && sample.Temperature <= existing.Temperature {
		return
	}

	hours[hour] = HourlyRecord{
		DeviceID:    sample.DeviceID,
		Hour:        hour,
		Temperature: sample.Temperature,
	}
}

// Device returns the hour-keyed records for one device. A nil map means the
// device was never seen.
func (s DeviceRecordSet) Device(id string) map[time.Time]HourlyRecord {
	return s[id]
}

// DeviceIDs returns every known device id in lexicographic order.
func (s DeviceRecordSet) DeviceIDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
