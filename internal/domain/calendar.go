package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// BlockedDate fully closes a salon on one calendar date
type BlockedDate struct {
	ID        int64
	SalonID   int64
	Date      types.DateKey
	Reason    string
	CreatedAt time.Time
}

// HolidayKind is the recurrence of a RecurringHoliday
type HolidayKind string

const (
	HolidayWeekly  HolidayKind = "weekly"
	HolidayMonthly HolidayKind = "monthly"
)

// RecurringHoliday closes the salon on a weekday or a day of month
type RecurringHoliday struct {
	ID         int64
	SalonID    int64
	Name       string
	Kind       HolidayKind
	Weekday    time.Weekday // HolidayWeekly only
	DayOfMonth int          // HolidayMonthly only, 1..31
	CreatedAt  time.Time
}

// Matches reports whether the rule closes the salon on date.
// A monthly rule for a day the month does not have never fires.
func (h *RecurringHoliday) Matches(date time.Time) bool {
	switch h.Kind {
	case HolidayWeekly:
		return date.Weekday() == h.Weekday
	case HolidayMonthly:
		return h.DayOfMonth >= 1 && date.Day() == h.DayOfMonth
	default:
		return false
	}
}

// SpecialWorkingDay forces the salon open on one calendar date
type SpecialWorkingDay struct {
	ID        int64
	SalonID   int64
	Date      types.DateKey
	Note      string
	CreatedAt time.Time
}

// SalonCalendar bundles everything the slot computation reads for a salon
type SalonCalendar struct {
	Settings     *AvailabilitySettings
	BlockedDates []BlockedDate
	Holidays     []RecurringHoliday
	SpecialDays  []SpecialWorkingDay
}
