package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// AppointmentState is the lifecycle state derived from the appointment flags
type AppointmentState string

const (
	StateScheduled AppointmentState = "scheduled"
	StateCompleted AppointmentState = "completed"
	StateCancelled AppointmentState = "cancelled"
)

// Appointment represents a booked salon service
type Appointment struct {
	ID         int64
	SalonID    int64
	CustomerID int64
	StylistID  int64

	// Denormalized data for listings
	CustomerName       string
	StylistName        string
	ServiceDescription string

	SlotDate types.DateKey   // "day_month_year"
	SlotTime types.ClockTime // "H:MM AM"
	Amount   float64
	Payment  bool // paid or not

	IsCompleted    bool
	Cancelled      bool
	HasRescheduled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// State returns the lifecycle state of the appointment
func (a *Appointment) State() AppointmentState {
	switch {
	case a.Cancelled:
		return StateCancelled
	case a.IsCompleted:
		return StateCompleted
	default:
		return StateScheduled
	}
}

// IsTerminal returns true if the appointment is completed or cancelled
func (a *Appointment) IsTerminal() bool {
	return a.Cancelled || a.IsCompleted
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return !a.Cancelled
}

// CanBeRescheduled returns true if the one-time reschedule is still unused on a non-terminal appointment
func (a *Appointment) CanBeRescheduled() bool {
	return !a.IsTerminal() && !a.HasRescheduled
}

// StartsAt resolves SlotDate and SlotTime into one instant in loc
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	day, err := a.SlotDate.Date(loc)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := a.SlotTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// Clone returns a shallow copy; Appointment holds no reference fields
func (a *Appointment) Clone() *Appointment {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// AppointmentsFilter фильтр для получения записей салона
type AppointmentsFilter struct {
	SalonID          int64          // Обязательный параметр
	StylistID        *int64         // Фильтр по мастеру (опционально)
	CustomerID       *int64         // Фильтр по клиенту (опционально)
	SlotDate         *types.DateKey // Фильтр по дате (опционально)
	IncludeCancelled bool           // Включать ли отменённые записи
}
