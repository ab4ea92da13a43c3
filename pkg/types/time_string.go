package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString is returned when a value is not a valid "HH:MM" time of day
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the current day
	ErrTimeOverflow = errors.New("time is out of day bounds")
)

// TimeString is a local time of day in "HH:MM" 24-hour format.
type TimeString string

// NewTimeString takes the time of day from t (seconds are dropped).
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses "H:MM", "HH:MM" or "HH:MM:SS" and returns the canonical form.
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseClock24(s)
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(minutes)
}

// NewTimeStringFromMinutes builds a TimeString from minutes after midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String returns the raw value
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return strings.TrimSpace(string(t)) == ""
}

// Validate checks the "HH:MM" format
func (t TimeString) Validate() error {
	_, err := parseClock24(string(t))
	return err
}

// Minutes returns minutes after midnight.
func (t TimeString) Minutes() (int, error) {
	return parseClock24(string(t))
}

// AddMinutes shifts the time. Results outside [00:00, 23:59] return ErrTimeOverflow.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore compares two times of day. Invalid values never compare as before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

// IsAfter compares two times of day. Invalid values never compare as after.
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a > b
}

// Clock converts the value to the 12-hour wire form ("9:30 AM").
func (t TimeString) Clock() (ClockTime, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return ClockFromMinutes(minutes), nil
}

// On places the time of day on the calendar day of date in loc.
func (t TimeString) On(date time.Time, loc *time.Location) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = date.Location()
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc), nil
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as "HH:MM:SS".
func (t *TimeString) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}

	parsed, err := NewTimeStringFromString(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func parseClock24(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts) == 3 {
		if _, err := strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	return hour*60 + minute, nil
}
