package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping its calendar day.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day.
func Today() time.Time {
	return DateOf(time.Now())
}

// TimeOfDay is a wall-clock time without a date, used by reports.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay returns the time of day, or an error when out of range.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %02d:%02d:%02d", hour, minute, second)
	}
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}, nil
}

// ParseTimeOfDay accepts "15:04" and "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day: %q", s)
}

func (t TimeOfDay) seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.seconds() < other.seconds()
}

// String formats as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// MarshalText implements encoding.TextMarshaler.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer; the column type is TIME.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner for TIME columns returned as text or as a timestamp.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = TimeOfDay{Hour: v.Hour(), Minute: v.Minute(), Second: v.Second()}
		return nil
	case []byte:
		return t.UnmarshalText(v)
	case string:
		return t.UnmarshalText([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}
