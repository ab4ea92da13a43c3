package models

import (
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// Request модели

// ListRequest запрос на получение записей салона
type ListRequest struct {
	SalonID          int64
	StylistID        *int64 // Фильтр по мастеру (опционально)
	IncludeCancelled bool
}

// Response модели

// AppointmentResponse запись салона
type AppointmentResponse struct {
	ID                 int64     `json:"id"`
	SalonID            int64     `json:"salonId"`
	CustomerID         int64     `json:"customerId"`
	StylistID          int64     `json:"stylistId"`
	CustomerName       string    `json:"customerName"`
	StylistName        string    `json:"stylistName"`
	ServiceDescription string    `json:"serviceDescription"`
	SlotDate           string    `json:"slotDate"` // "19_10_2026"
	SlotTime           string    `json:"slotTime"` // "9:30 AM"
	Amount             float64   `json:"amount"`
	Payment            bool      `json:"payment"`
	IsCompleted        bool      `json:"isCompleted"`
	Cancelled          bool      `json:"cancelled"`
	HasRescheduled     bool      `json:"hasRescheduled"`
	State              string    `json:"state"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// AppointmentListResponse список записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// Методы конвертации

// ToDomainFilter конвертирует запрос в domain фильтр
func (r *ListRequest) ToDomainFilter() domain.AppointmentsFilter {
	return domain.AppointmentsFilter{
		SalonID:          r.SalonID,
		StylistID:        r.StylistID,
		IncludeCancelled: r.IncludeCancelled,
	}
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                 a.ID,
		SalonID:            a.SalonID,
		CustomerID:         a.CustomerID,
		StylistID:          a.StylistID,
		CustomerName:       a.CustomerName,
		StylistName:        a.StylistName,
		ServiceDescription: a.ServiceDescription,
		SlotDate:           a.SlotDate.String(),
		SlotTime:           a.SlotTime.String(),
		Amount:             a.Amount,
		Payment:            a.Payment,
		IsCompleted:        a.IsCompleted,
		Cancelled:          a.Cancelled,
		HasRescheduled:     a.HasRescheduled,
		State:              string(a.State()),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(apps []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(apps)),
		Total:        len(apps),
	}
	for _, a := range apps {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}
