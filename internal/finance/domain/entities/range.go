package entities

import "time"

// DateRange - включающий диапазон дат. Любая из границ может отсутствовать.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Contains сообщает, попадает ли t в диапазон.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// IsZero сообщает, что ни одна граница не задана.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// YearRange возвращает диапазон с 1 января по 31 декабря года включительно (UTC).
func YearRange(year int) DateRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	return DateRange{Start: &start, End: &end}
}
