package domain

import (
	"errors"
	"fmt"
)

// Appointment lifecycle errors
var (
	// ErrInvalidTransition is returned for any transition out of a terminal state or otherwise not allowed
	ErrInvalidTransition = errors.New("appointment: invalid transition")

	// ErrRescheduleAlreadyUsed is returned when the one-time reschedule was already spent
	ErrRescheduleAlreadyUsed = errors.New("appointment: reschedule already used")

	// ErrLeadTimeViolation is returned when an action is too close to the slot start
	ErrLeadTimeViolation = errors.New("appointment: lead time violation")

	// ErrRescheduleDisabled is returned when the salon does not allow rescheduling
	ErrRescheduleDisabled = fmt.Errorf("%w: rescheduling is disabled", ErrInvalidTransition)

	// ErrInvalidSlot is returned when an appointment slot cannot be parsed or is not bookable
	ErrInvalidSlot = errors.New("appointment: invalid slot")

	// ErrAppointmentNotFound is returned when the appointment id is unknown
	ErrAppointmentNotFound = errors.New("appointment: not found")
)

// Remote collaborator and reconciliation errors
var (
	// ErrRemoteRejected is returned when the server answered success:false
	ErrRemoteRejected = errors.New("remote: rejected")

	// ErrRemoteUnavailable is returned on transport failures; the action may be retried
	ErrRemoteUnavailable = errors.New("remote: unavailable")

	// ErrCommitTimeout is returned when the commit did not resolve in time
	ErrCommitTimeout = fmt.Errorf("%w: commit timed out", ErrRemoteUnavailable)

	// ErrConflict is returned when another mutation of the same appointment is in flight
	ErrConflict = errors.New("reconcile: conflicting mutation in flight")

	// ErrDisposed is returned when the owning store was disposed
	ErrDisposed = errors.New("reconcile: store disposed")
)

// IsRetryable reports whether the error is transient
func IsRetryable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable) || errors.Is(err, ErrConflict)
}
