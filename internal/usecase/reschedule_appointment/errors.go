package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда пользователь не может переносить эту запись
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrSlotUnavailable возвращается, когда новый слот нельзя забронировать
	// (салон закрыт, слот занят или нарушен срок бронирования)
	ErrSlotUnavailable = errors.New("reschedule_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
