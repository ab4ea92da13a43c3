package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidClockTime is returned when a value is not a valid "H:MM AM/PM" time
var ErrInvalidClockTime = errors.New("invalid clock time format")

// ClockTime is a time of day in the 12-hour textual form used on the wire ("9:30 AM").
type ClockTime string

// ParseClockTime parses "9:30 AM", "09:30am", "12:00 pm" and returns the canonical form.
func ParseClockTime(s string) (ClockTime, error) {
	minutes, err := parseClock12(s)
	if err != nil {
		return "", err
	}
	return ClockFromMinutes(minutes), nil
}

// ClockFromMinutes formats minutes after midnight as "H:MM AM".
func ClockFromMinutes(minutes int) ClockTime {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	hour, minute := minutes/60, minutes%60

	marker := "AM"
	if hour >= 12 {
		marker = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return ClockTime(fmt.Sprintf("%d:%02d %s", hour12, minute, marker))
}

// String returns the raw value
func (c ClockTime) String() string {
	return string(c)
}

// IsZero reports whether the value is empty
func (c ClockTime) IsZero() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Minutes returns minutes after midnight.
func (c ClockTime) Minutes() (int, error) {
	return parseClock12(string(c))
}

// TimeString converts the value to the 24-hour form.
func (c ClockTime) TimeString() (TimeString, error) {
	minutes, err := c.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(minutes)
}

// Scan implements sql.Scanner
func (c *ClockTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = ""
	case string:
		*c = ClockTime(v)
	case []byte:
		*c = ClockTime(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidClockTime, src)
	}
	return nil
}

// Value implements driver.Valuer
func (c ClockTime) Value() (driver.Value, error) {
	return string(c), nil
}

func parseClock12(s string) (int, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))

	var marker string
	switch {
	case strings.HasSuffix(raw, "AM"):
		marker = "AM"
	case strings.HasSuffix(raw, "PM"):
		marker = "PM"
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	clock := strings.TrimSpace(strings.TrimSuffix(raw, marker))

	parts := strings.Split(clock, ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}

	hour %= 12
	if marker == "PM" {
		hour += 12
	}
	return hour*60 + minute, nil
}
