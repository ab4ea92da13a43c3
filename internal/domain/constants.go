package domain

import "github.com/m04kA/SMC-SalonConsole/pkg/types"

// Default configuration values
const (
	DefaultSlotStartTime       types.TimeString = "09:00"
	DefaultSlotEndTime         types.TimeString = "17:00"
	DefaultSlotDurationMinutes                  = 30
	DefaultMinBookingLeadHours                  = 0
	DefaultRescheduleLeadHours                  = 3
	DefaultStatsDays                            = 31
	DefaultStatsMonths                          = 6
	DefaultTopServices                          = 5
)

// Business validation constants
const (
	MinSlotDurationMinutes   = 5
	MaxSlotDurationMinutes   = 480 // 8 hours
	MinAdvanceBookingDays    = 0
	MaxAdvanceBookingDays    = 365 // 1 year
	MaxLeadHours             = 168 // 1 week
	MaxBlockedReasonLength   = 500
	MaxHolidayNameLength     = 100
	MaxSpecialDayNoteLength  = 500
	MaxStatsDays             = 366
	MaxStatsMonths           = 24
	MaxTopServices           = 50
	MaxRecentAppointments    = 10
	MaxServiceDescriptionLen = 255
)
