package domain

import "github.com/m04kA/SMC-SalonConsole/pkg/types"

// SlotReason explains why a generated slot cannot be booked
type SlotReason string

const (
	SlotReasonNone     SlotReason = ""
	SlotReasonBooked   SlotReason = "booked"
	SlotReasonLeadTime SlotReason = "lead_time"
)

// Slot represents a (date, time) pair of fixed duration
type Slot struct {
	Date            types.DateKey
	Time            types.ClockTime
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
	Reason          SlotReason
}

// EndTime returns the time the slot ends, or "" when it would pass midnight
func (s *Slot) EndTime() types.TimeString {
	end, err := s.StartTime.AddMinutes(s.DurationMinutes)
	if err != nil {
		return ""
	}
	return end
}
