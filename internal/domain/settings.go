package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// AvailabilitySettings represents the operating-hours configuration of a salon
type AvailabilitySettings struct {
	SalonID             int64
	SlotStartTime       types.TimeString
	SlotEndTime         types.TimeString
	SlotDurationMinutes int

	BreakEnabled   bool
	BreakStartTime types.TimeString
	BreakEndTime   types.TimeString

	DaysOpen []time.Weekday

	BookingWindowStart    *types.DateKey // earliest bookable date, nil = no limit
	BookingWindowEnd      *types.DateKey // latest bookable date, nil = no limit
	MaxAdvanceBookingDays int            // 0 = unlimited
	MinBookingLeadHours   int

	AllowRescheduling     bool
	RescheduleLeadHours   int
	CancellationLeadHours int // applies to customer cancellations, 0 = no limit

	Timezone  string // IANA name, empty = salon default
	UpdatedAt time.Time
}

// DefaultAvailabilitySettings returns the settings used until a salon saves its own
func DefaultAvailabilitySettings(salonID int64) *AvailabilitySettings {
	return &AvailabilitySettings{
		SalonID:             salonID,
		SlotStartTime:       DefaultSlotStartTime,
		SlotEndTime:         DefaultSlotEndTime,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		DaysOpen: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday,
		},
		MinBookingLeadHours: DefaultMinBookingLeadHours,
		AllowRescheduling:   true,
		RescheduleLeadHours: DefaultRescheduleLeadHours,
	}
}

// IsOpenOn returns true if the weekday is in DaysOpen
func (s *AvailabilitySettings) IsOpenOn(day time.Weekday) bool {
	for _, d := range s.DaysOpen {
		if d == day {
			return true
		}
	}
	return false
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *AvailabilitySettings) HasAdvanceBookingLimit() bool {
	return s.MaxAdvanceBookingDays > 0
}

// Location resolves Timezone, falling back when it is empty or unknown
func (s *AvailabilitySettings) Location(fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if s == nil || s.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

// ParseWeekday accepts full or three-letter English weekday names in any case
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || n == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// WeekdayNames returns the names of days in the given order
func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.String())
	}
	return names
}
