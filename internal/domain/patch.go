package domain

import "github.com/m04kA/SMC-SalonConsole/pkg/types"

// AppointmentPatch is a partial update; nil fields are left untouched
type AppointmentPatch struct {
	IsCompleted    *bool
	Cancelled      *bool
	HasRescheduled *bool
	Payment        *bool
	SlotDate       *types.DateKey
	SlotTime       *types.ClockTime
}

// IsEmpty returns true if the patch changes nothing
func (p AppointmentPatch) IsEmpty() bool {
	return p.IsCompleted == nil && p.Cancelled == nil && p.HasRescheduled == nil &&
		p.Payment == nil && p.SlotDate == nil && p.SlotTime == nil
}

// Apply returns a patched copy of a; a itself is not modified
func (p AppointmentPatch) Apply(a *Appointment) *Appointment {
	c := a.Clone()
	if p.IsCompleted != nil {
		c.IsCompleted = *p.IsCompleted
	}
	if p.Cancelled != nil {
		c.Cancelled = *p.Cancelled
	}
	if p.HasRescheduled != nil {
		c.HasRescheduled = *p.HasRescheduled
	}
	if p.Payment != nil {
		c.Payment = *p.Payment
	}
	if p.SlotDate != nil {
		c.SlotDate = *p.SlotDate
	}
	if p.SlotTime != nil {
		c.SlotTime = *p.SlotTime
	}
	return c
}

// Diff builds the patch that turns before into after
func Diff(before, after *Appointment) AppointmentPatch {
	var p AppointmentPatch
	if before.IsCompleted != after.IsCompleted {
		v := after.IsCompleted
		p.IsCompleted = &v
	}
	if before.Cancelled != after.Cancelled {
		v := after.Cancelled
		p.Cancelled = &v
	}
	if before.HasRescheduled != after.HasRescheduled {
		v := after.HasRescheduled
		p.HasRescheduled = &v
	}
	if before.Payment != after.Payment {
		v := after.Payment
		p.Payment = &v
	}
	if before.SlotDate != after.SlotDate {
		v := after.SlotDate
		p.SlotDate = &v
	}
	if before.SlotTime != after.SlotTime {
		v := after.SlotTime
		p.SlotTime = &v
	}
	return p
}
