package domain

import "time"

// NormalizeDuration приводит длительность слота к допустимому значению
// Неположительная длительность заменяется на дефолтную до любых сравнений
func NormalizeDuration(minutes int) int {
	if minutes <= 0 {
		return DefaultSlotDurationMinutes
	}
	return minutes
}

// SlotEnd returns the exclusive end of the slot [start, start+duration).
func SlotEnd(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(NormalizeDuration(durationMinutes)) * time.Minute)
}

// SlotsOverlap reports whether two slots of the same duration intersect.
// Intervals are half-open: a slot starting exactly where another ends
// does NOT overlap it.
//
// Примеры (длительность 30 минут):
//   - 10:00 и 10:15 → пересекаются
//   - 10:00 и 10:30 → НЕ пересекаются (граничат)
//   - 10:00 и 10:00 → пересекаются
func SlotsOverlap(aStart, bStart time.Time, durationMinutes int) bool {
	d := time.Duration(NormalizeDuration(durationMinutes)) * time.Minute
	return aStart.Before(bStart.Add(d)) && aStart.Add(d).After(bStart)
}
