package availability

import "errors"

var (
	// ErrNotFound возвращается, когда удаляемая запись календаря не найдена
	ErrNotFound = errors.New("calendar entry not found")

	// ErrAlreadyExists возвращается при повторном добавлении той же даты
	ErrAlreadyExists = errors.New("calendar entry already exists")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
