package lifecycle

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// CheckRescheduleEligibility reports whether the reschedule action may be offered
func CheckRescheduleEligibility(a *domain.Appointment, settings *domain.AvailabilitySettings, now time.Time) bool {
	return RescheduleEligibility(a, settings, now) == nil
}

// RescheduleEligibility returns the first failing reschedule guard, or nil.
// The gap between now and the current slot start must strictly exceed RescheduleLeadHours.
func RescheduleEligibility(a *domain.Appointment, settings *domain.AvailabilitySettings, now time.Time) error {
	if a == nil {
		return domain.ErrAppointmentNotFound
	}
	if a.IsTerminal() {
		return fmt.Errorf("%w: appointment is %s", domain.ErrInvalidTransition, a.State())
	}
	if a.HasRescheduled {
		return domain.ErrRescheduleAlreadyUsed
	}
	if settings == nil {
		settings = domain.DefaultAvailabilitySettings(a.SalonID)
	}
	if !settings.AllowRescheduling {
		return domain.ErrRescheduleDisabled
	}

	gap, err := timeUntilSlot(a, settings, now)
	if err != nil {
		return err
	}
	lead := time.Duration(settings.RescheduleLeadHours) * time.Hour
	if gap <= lead {
		return fmt.Errorf("%w: %s left before the slot, more than %dh required",
			domain.ErrLeadTimeViolation, gap.Round(time.Minute), settings.RescheduleLeadHours)
	}
	return nil
}

// CancelEligibility returns the first failing cancel guard, or nil.
// Only customers are bound by CancellationLeadHours.
func CancelEligibility(a *domain.Appointment, actor domain.Actor, settings *domain.AvailabilitySettings, now time.Time) error {
	if a == nil {
		return domain.ErrAppointmentNotFound
	}
	if a.IsTerminal() {
		return fmt.Errorf("%w: appointment is %s", domain.ErrInvalidTransition, a.State())
	}
	if actor.Role != domain.RoleCustomer || settings == nil || settings.CancellationLeadHours <= 0 {
		return nil
	}

	gap, err := timeUntilSlot(a, settings, now)
	if err != nil {
		return err
	}
	lead := time.Duration(settings.CancellationLeadHours) * time.Hour
	if gap <= lead {
		return fmt.Errorf("%w: %s left before the slot, more than %dh required",
			domain.ErrLeadTimeViolation, gap.Round(time.Minute), settings.CancellationLeadHours)
	}
	return nil
}

// timeUntilSlot resolves the appointment start in the salon's location
func timeUntilSlot(a *domain.Appointment, settings *domain.AvailabilitySettings, now time.Time) (time.Duration, error) {
	start, err := a.StartsAt(settings.Location(now.Location()))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrInvalidSlot, err)
	}
	return start.Sub(now), nil
}
