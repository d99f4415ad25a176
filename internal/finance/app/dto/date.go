package dto

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/finance/domain/apperr"
	"fintrack/internal/finance/domain/entities"
)

// DayLayout - формат даты без времени.
const DayLayout = "2006-01-02"

// ErrInvalidDate возвращается для дат, которые не удалось разобрать.
var ErrInvalidDate = fmt.Errorf("date must be YYYY-MM-DD or RFC3339: %w", apperr.ErrInvalidInput)

// ParseDate разбирает дату в формате YYYY-MM-DD (UTC) или RFC3339.
// dateOnly сообщает, что время суток не было указано.
func ParseDate(value string) (t time.Time, dateOnly bool, err error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DayLayout, value); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

// ParseRange строит диапазон из необязательных границ. Конечная дата без
// времени включает весь день.
func ParseRange(start, end string) (entities.DateRange, error) {
	var r entities.DateRange

	if start != "" {
		t, _, err := ParseDate(start)
		if err != nil {
			return r, fmt.Errorf("startDate: %w", err)
		}
		r.Start = &t
	}

	if end != "" {
		t, dateOnly, err := ParseDate(end)
		if err != nil {
			return r, fmt.Errorf("endDate: %w", err)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		r.End = &t
	}

	return r, nil
}

// Date - дата в теле запроса, принимает YYYY-MM-DD или RFC3339.
type Date struct {
	time.Time
}

// UnmarshalJSON реализует json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, _, err := ParseDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Ptr возвращает nil для незаданной даты.
func (d *Date) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
