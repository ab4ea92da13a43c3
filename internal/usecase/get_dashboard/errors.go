package get_dashboard

import "errors"

var (
	// ErrAccessDenied возвращается, когда статистика недоступна для роли
	ErrAccessDenied = errors.New("get_dashboard: access denied")

	// ErrInvalidInput возвращается при некорректных параметрах периода
	ErrInvalidInput = errors.New("get_dashboard: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_dashboard: internal error")
)
