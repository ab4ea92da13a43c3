package lifecycle

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// Transition names an appointment state change
type Transition string

const (
	TransitionComplete     Transition = "complete"
	TransitionUndoComplete Transition = "undo_complete"
	TransitionCancel       Transition = "cancel"
	TransitionReschedule   Transition = "reschedule"
)

// Every transition returns the next value of the appointment and leaves the input untouched.

// Complete marks a scheduled appointment as done
func Complete(a *domain.Appointment) (*domain.Appointment, error) {
	if a == nil {
		return nil, domain.ErrAppointmentNotFound
	}
	if a.IsTerminal() {
		return nil, fmt.Errorf("%w: cannot complete a %s appointment", domain.ErrInvalidTransition, a.State())
	}

	next := a.Clone()
	next.IsCompleted = true
	return next, nil
}

// UndoComplete moves a completed appointment back to scheduled; staff only
func UndoComplete(a *domain.Appointment, actor domain.Actor) (*domain.Appointment, error) {
	if a == nil {
		return nil, domain.ErrAppointmentNotFound
	}
	if !a.IsCompleted || a.Cancelled {
		return nil, fmt.Errorf("%w: cannot undo completion of a %s appointment", domain.ErrInvalidTransition, a.State())
	}
	if !actor.Role.IsStaff() {
		return nil, fmt.Errorf("%w: undo requires a staff role, got %q", domain.ErrInvalidTransition, actor.Role)
	}

	next := a.Clone()
	next.IsCompleted = false
	return next, nil
}

// Cancel marks a scheduled appointment as cancelled
func Cancel(a *domain.Appointment, actor domain.Actor, settings *domain.AvailabilitySettings, now time.Time) (*domain.Appointment, error) {
	if err := CancelEligibility(a, actor, settings, now); err != nil {
		return nil, err
	}

	next := a.Clone()
	next.Cancelled = true
	return next, nil
}

// Reschedule moves the appointment to a new slot and spends the one-time reschedule.
// Bookability of the target slot is checked by the caller against the calendar.
func Reschedule(
	a *domain.Appointment,
	settings *domain.AvailabilitySettings,
	date types.DateKey,
	clock types.ClockTime,
	now time.Time,
) (*domain.Appointment, error) {
	if err := RescheduleEligibility(a, settings, now); err != nil {
		return nil, err
	}

	newDate, err := types.ParseDateKey(date.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSlot, err)
	}
	newTime, err := types.ParseClockTime(clock.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSlot, err)
	}

	next := a.Clone()
	next.SlotDate = newDate
	next.SlotTime = newTime
	next.HasRescheduled = true
	return next, nil
}
