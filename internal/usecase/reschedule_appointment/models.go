package reschedule_appointment

import (
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID int64
	Actor         domain.Actor
	SlotDate      string // "19_10_2026"
	SlotTime      string // "2:30 PM" или "14:30"
}

// Response модель ответа с перенесённой записью
type Response struct {
	Appointment  *domain.Appointment
	PreviousDate types.DateKey
	PreviousTime types.ClockTime
}
