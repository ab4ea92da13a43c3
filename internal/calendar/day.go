package calendar

import (
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// ClosedReason explains why the salon takes no bookings on a date
type ClosedReason string

const (
	ReasonNone          ClosedReason = ""
	ReasonBlocked       ClosedReason = "blocked"
	ReasonWeeklyOff     ClosedReason = "weekly_off"
	ReasonHoliday       ClosedReason = "holiday"
	ReasonPast          ClosedReason = "past"
	ReasonOutsideWindow ClosedReason = "outside_window"
	ReasonInvalid       ClosedReason = "invalid"
)

// Status is the verdict for one calendar date
type Status struct {
	Date    types.DateKey
	Open    bool
	Special bool // opened by a special working day
	Reason  ClosedReason
	Note    string // blocked reason, holiday name or special day note
}

// DayStatus decides whether the salon is open on date. Precedence:
// blocked, past, booking window, special working day, days open, recurring holidays.
func DayStatus(
	date types.DateKey,
	settings *domain.AvailabilitySettings,
	blocked []domain.BlockedDate,
	holidays []domain.RecurringHoliday,
	special []domain.SpecialWorkingDay,
	now time.Time,
) Status {
	status := Status{Date: date}
	if settings == nil {
		status.Reason = ReasonInvalid
		return status
	}

	loc := settings.Location(now.Location())
	day, err := date.Date(loc)
	if err != nil {
		status.Reason = ReasonInvalid
		return status
	}
	status.Date = types.NewDateKey(day)

	for _, b := range blocked {
		if b.Date.Equal(date) {
			status.Reason = ReasonBlocked
			status.Note = b.Reason
			return status
		}
	}

	today := startOfDay(now.In(loc))
	if day.Before(today) {
		status.Reason = ReasonPast
		return status
	}
	if !insideBookingWindow(day, today, settings, loc) {
		status.Reason = ReasonOutsideWindow
		return status
	}

	for _, s := range special {
		if s.Date.Equal(date) {
			status.Open = true
			status.Special = true
			status.Note = s.Note
			return status
		}
	}

	if !settings.IsOpenOn(day.Weekday()) {
		status.Reason = ReasonWeeklyOff
		return status
	}

	for i := range holidays {
		if holidays[i].Matches(day) {
			status.Reason = ReasonHoliday
			status.Note = holidays[i].Name
			return status
		}
	}

	status.Open = true
	return status
}

// insideBookingWindow checks the explicit window and the advance booking limit
func insideBookingWindow(day, today time.Time, settings *domain.AvailabilitySettings, loc *time.Location) bool {
	if settings.BookingWindowStart != nil && !settings.BookingWindowStart.IsZero() {
		if start, err := settings.BookingWindowStart.Date(loc); err == nil && day.Before(start) {
			return false
		}
	}
	if settings.BookingWindowEnd != nil && !settings.BookingWindowEnd.IsZero() {
		if end, err := settings.BookingWindowEnd.Date(loc); err == nil && day.After(end) {
			return false
		}
	}
	if settings.HasAdvanceBookingLimit() {
		maxDate := today.AddDate(0, 0, settings.MaxAdvanceBookingDays)
		if day.After(maxDate) {
			return false
		}
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// isSameDay checks that two instants fall on the same calendar date
func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
