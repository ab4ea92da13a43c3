package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// Коды ошибок в ответе
const (
	CodeInvalidTransition     = "invalid_transition"
	CodeRescheduleAlreadyUsed = "reschedule_already_used"
	CodeLeadTimeViolation     = "lead_time_violation"
	CodeSlotUnavailable       = "slot_unavailable"
	CodeNotFound              = "not_found"
	CodeForbidden             = "forbidden"
	CodeUnauthorized          = "unauthorized"
	CodeInvalidInput          = "invalid_input"
	CodeAlreadyExists         = "already_exists"
	CodeInternal              = "internal"
)

const (
	msgOK                    = "ok"
	msgInternalError         = "внутренняя ошибка сервера"
	msgInvalidTransition     = "действие недоступно в текущем состоянии записи"
	msgRescheduleAlreadyUsed = "запись уже переносилась"
	msgLeadTimeViolation     = "до начала записи осталось слишком мало времени"
	msgInvalidSlot           = "некорректный слот записи"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// Envelope общий формат ответа API
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondJSON отправляет успешный ответ с данными
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	RespondSuccess(w, status, msgOK, data)
}

// RespondSuccess отправляет успешный ответ с сообщением
func RespondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

// RespondError отправляет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, code, message string) {
	write(w, status, Envelope{Success: false, Message: message, Code: code})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidInput, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondInternalError 500
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, msgInternalError)
}

// RespondTransitionError отвечает на отказ в переходе состояния записи.
// Возвращает false, если err не является ошибкой перехода.
func RespondTransitionError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domain.ErrRescheduleAlreadyUsed):
		RespondConflict(w, CodeRescheduleAlreadyUsed, msgRescheduleAlreadyUsed)
	case errors.Is(err, domain.ErrLeadTimeViolation):
		RespondError(w, http.StatusUnprocessableEntity, CodeLeadTimeViolation, msgLeadTimeViolation)
	case errors.Is(err, domain.ErrInvalidTransition):
		RespondConflict(w, CodeInvalidTransition, msgInvalidTransition)
	case errors.Is(err, domain.ErrInvalidSlot):
		RespondBadRequest(w, msgInvalidSlot)
	default:
		return false
	}
	return true
}

// DecodeJSON декодирует тело запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
