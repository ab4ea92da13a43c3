package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateKey is returned when a value is not a valid "D_M_YYYY" calendar date
var ErrInvalidDateKey = errors.New("invalid date key format")

// DateKey is a calendar date in the "day_month_year" textual form ("18_10_2026").
// Day and month carry no zero padding, month is 1-based.
type DateKey string

// NewDateKey takes the calendar date of t in its own location.
func NewDateKey(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey(fmt.Sprintf("%d_%d_%d", d, int(m), y))
}

// ParseDateKey validates s and returns the canonical form ("05_03_2026" -> "5_3_2026").
func ParseDateKey(s string) (DateKey, error) {
	y, m, d, err := DateKey(s).Parts()
	if err != nil {
		return "", err
	}
	return DateKey(fmt.Sprintf("%d_%d_%d", d, int(m), y)), nil
}

// String returns the raw value
func (k DateKey) String() string {
	return string(k)
}

// IsZero reports whether the value is empty
func (k DateKey) IsZero() bool {
	return strings.TrimSpace(string(k)) == ""
}

// Parts splits the key into year, month and day. Dates that do not exist
// (31_4_2026, 29_2_2025) are rejected instead of rolled over.
func (k DateKey) Parts() (int, time.Month, int, error) {
	parts := strings.Split(strings.TrimSpace(string(k)), "_")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, string(k))
	}

	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, string(k))
	}
	if month < 1 || month > 12 || day < 1 || year < 1 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, string(k))
	}
	if day > DaysIn(year, time.Month(month)) {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDateKey, string(k))
	}

	return year, time.Month(month), day, nil
}

// Date returns midnight of the date in loc (UTC when loc is nil).
func (k DateKey) Date(loc *time.Location) (time.Time, error) {
	y, m, d, err := k.Parts()
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// Equal compares two keys by calendar date, tolerating non-canonical padding.
func (k DateKey) Equal(other DateKey) bool {
	y1, m1, d1, err1 := k.Parts()
	y2, m2, d2, err2 := other.Parts()
	if err1 != nil || err2 != nil {
		return false
	}
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Scan implements sql.Scanner
func (k *DateKey) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*k = ""
	case string:
		*k = DateKey(v)
	case []byte:
		*k = DateKey(v)
	case time.Time:
		*k = NewDateKey(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidDateKey, src)
	}
	return nil
}

// Value implements driver.Valuer. Keys are stored in postgres DATE columns,
// so the value is the ISO form "2006-01-02".
func (k DateKey) Value() (driver.Value, error) {
	if k.IsZero() {
		return nil, nil
	}
	day, err := k.Date(time.UTC)
	if err != nil {
		return nil, err
	}
	return day.Format("2006-01-02"), nil
}

// DaysIn returns the number of days in the month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
