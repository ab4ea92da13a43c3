package appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на действие с записью
	ErrAccessDenied = errors.New("appointments: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// Ошибки переходов состояния (domain.ErrInvalidTransition, domain.ErrLeadTimeViolation,
// domain.ErrRescheduleAlreadyUsed) возвращаются как есть и проверяются через errors.Is.
