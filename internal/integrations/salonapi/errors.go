package salonapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("salonapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("salonapi client: invalid response")
)

// Коды ошибок в конверте ответа
const (
	codeInvalidTransition     = "invalid_transition"
	codeRescheduleAlreadyUsed = "reschedule_already_used"
	codeLeadTimeViolation     = "lead_time_violation"
	codeNotFound              = "not_found"
)

// RemoteError ответ сервиса с success=false.
// Сервис доступен, поэтому такая ошибка не считается отказом для circuit breaker.
type RemoteError struct {
	Status  int
	Code    string
	Message string
	kinds   []error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%v: %s (code=%s, status=%d)", e.kinds[0], e.Message, e.Code, e.Status)
}

func (e *RemoteError) Unwrap() []error {
	return e.kinds
}

// newRemoteError сопоставляет код ответа с ошибкой домена
func newRemoteError(status int, code, message string) *RemoteError {
	e := &RemoteError{Status: status, Code: code, Message: message}
	switch code {
	case codeInvalidTransition:
		e.kinds = []error{domain.ErrInvalidTransition}
	case codeRescheduleAlreadyUsed:
		e.kinds = []error{domain.ErrRescheduleAlreadyUsed}
	case codeLeadTimeViolation:
		e.kinds = []error{domain.ErrLeadTimeViolation}
	case codeNotFound:
		e.kinds = []error{domain.ErrRemoteRejected, domain.ErrAppointmentNotFound}
	default:
		e.kinds = []error{domain.ErrRemoteRejected}
	}
	return e
}

// unavailable ошибка транспорта или 5xx, действие можно повторить
func unavailable(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrRemoteUnavailable, fmt.Sprintf(format, v...))
}

func isServerFailure(status int) bool {
	return status >= http.StatusInternalServerError
}
