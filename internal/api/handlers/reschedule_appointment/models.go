package reschedule_appointment

import (
	apptmodels "github.com/m04kA/SMC-SalonConsole/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/SMC-SalonConsole/internal/usecase/reschedule_appointment"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	SlotDate string `json:"slotDate"` // "23_10_2026"
	SlotTime string `json:"slotTime"` // "2:30 PM" или "14:30"
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	Appointment  *apptmodels.AppointmentResponse `json:"appointment"`
	PreviousDate string                          `json:"previousDate"`
	PreviousTime string                          `json:"previousTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *RescheduleResponse {
	return &RescheduleResponse{
		Appointment:  apptmodels.FromDomainAppointment(resp.Appointment),
		PreviousDate: resp.PreviousDate.String(),
		PreviousTime: resp.PreviousTime.String(),
	}
}
