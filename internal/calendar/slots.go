package calendar

import (
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// ComputeAvailableSlots returns the bookable slots of date in ascending order,
// or an empty list when the salon is closed. Malformed input yields no slots.
func ComputeAvailableSlots(
	date types.DateKey,
	settings *domain.AvailabilitySettings,
	blocked []domain.BlockedDate,
	holidays []domain.RecurringHoliday,
	special []domain.SpecialWorkingDay,
	existing []*domain.Appointment,
	now time.Time,
) []domain.Slot {
	all := ComputeDaySlots(date, settings, blocked, holidays, special, existing, now)

	available := make([]domain.Slot, 0, len(all))
	for _, slot := range all {
		if slot.Available {
			available = append(available, slot)
		}
	}
	return available
}

// ComputeDaySlots returns every slot of an open day with its availability and reason.
// Break slots are never generated.
func ComputeDaySlots(
	date types.DateKey,
	settings *domain.AvailabilitySettings,
	blocked []domain.BlockedDate,
	holidays []domain.RecurringHoliday,
	special []domain.SpecialWorkingDay,
	existing []*domain.Appointment,
	now time.Time,
) []domain.Slot {
	status := DayStatus(date, settings, blocked, holidays, special, now)
	if !status.Open {
		return []domain.Slot{}
	}

	starts := generateSlotStarts(settings)
	if len(starts) == 0 {
		return []domain.Slot{}
	}

	loc := settings.Location(now.Location())
	day, _ := status.Date.Date(loc)
	localNow := now.In(loc)
	earliest := localNow.Add(time.Duration(settings.MinBookingLeadHours) * time.Hour)
	today := isSameDay(day, localNow)
	occupied := occupiedStarts(status.Date, existing)

	slots := make([]domain.Slot, 0, len(starts))
	for _, start := range starts {
		slot := domain.Slot{
			Date:            status.Date,
			Time:            types.ClockFromMinutes(start),
			DurationMinutes: settings.SlotDurationMinutes,
			Available:       true,
		}
		slot.StartTime, _ = types.NewTimeStringFromMinutes(start)

		switch {
		case overlapsAny(start, settings.SlotDurationMinutes, occupied):
			slot.Available = false
			slot.Reason = domain.SlotReasonBooked
		case today && slotInstant(day, start).Before(earliest):
			slot.Available = false
			slot.Reason = domain.SlotReasonLeadTime
		}

		slots = append(slots, slot)
	}
	return slots
}

// ForCalendar runs ComputeAvailableSlots over a loaded salon calendar
func ForCalendar(cal *domain.SalonCalendar, date types.DateKey, existing []*domain.Appointment, now time.Time) []domain.Slot {
	if cal == nil {
		return []domain.Slot{}
	}
	return ComputeAvailableSlots(date, cal.Settings, cal.BlockedDates, cal.Holidays, cal.SpecialDays, existing, now)
}

// IsSlotBookable reports whether clock is the start of an available slot on date.
// existing must not contain the appointment being moved.
func IsSlotBookable(cal *domain.SalonCalendar, date types.DateKey, clock types.ClockTime, existing []*domain.Appointment, now time.Time) bool {
	target, err := clock.Minutes()
	if err != nil {
		return false
	}
	for _, slot := range ForCalendar(cal, date, existing, now) {
		start, err := slot.StartTime.Minutes()
		if err == nil && start == target {
			return true
		}
	}
	return false
}

// generateSlotStarts steps from SlotStartTime by the slot duration and keeps
// only slots that end by SlotEndTime and do not start inside the break.
func generateSlotStarts(settings *domain.AvailabilitySettings) []int {
	duration := settings.SlotDurationMinutes
	if duration <= 0 {
		return nil
	}
	open, err := settings.SlotStartTime.Minutes()
	if err != nil {
		return nil
	}
	closing, err := settings.SlotEndTime.Minutes()
	if err != nil || closing <= open {
		return nil
	}

	breakStart, breakEnd := -1, -1
	if settings.BreakEnabled {
		bs, errS := settings.BreakStartTime.Minutes()
		be, errE := settings.BreakEndTime.Minutes()
		if errS == nil && errE == nil && bs < be {
			breakStart, breakEnd = bs, be
		}
	}

	starts := make([]int, 0, (closing-open)/duration)
	for start := open; start+duration <= closing; start += duration {
		if start >= breakStart && start < breakEnd {
			continue
		}
		starts = append(starts, start)
	}
	return starts
}

// occupiedStarts collects start minutes of active appointments on date
func occupiedStarts(date types.DateKey, existing []*domain.Appointment) []int {
	starts := make([]int, 0, len(existing))
	for _, app := range existing {
		if app == nil || !app.IsActive() || !app.SlotDate.Equal(date) {
			continue
		}
		start, err := app.SlotTime.Minutes()
		if err != nil {
			continue
		}
		starts = append(starts, start)
	}
	return starts
}

func slotInstant(day time.Time, minutes int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, day.Location())
}

// overlapsAny checks strict overlap of [start, start+duration) with appointments
// lasting one slot. Adjacent intervals do not overlap.
func overlapsAny(start, duration int, occupied []int) bool {
	end := start + duration
	for _, bookingStart := range occupied {
		bookingEnd := bookingStart + duration
		if bookingStart < end && bookingEnd > start {
			return true
		}
	}
	return false
}
