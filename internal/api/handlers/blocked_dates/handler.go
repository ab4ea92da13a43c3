package blocked_dates

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgMissingUser        = "отсутствует пользователь"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается D_M_YYYY"
	msgForbidden          = "доступ запрещен"
	msgAlreadyBlocked     = "дата уже заблокирована"
	msgNotBlocked         = "дата не заблокирована"
	msgBlocked            = "дата заблокирована"
	msgUnblocked          = "блокировка снята"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleAdd POST /api/v1/salons/{salonId}/blocked-dates
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salons/{id}/blocked-dates - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/blocked-dates - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.BlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddBlockedDate(r.Context(), actor, salonID, &req)
	if err != nil {
		h.respondError(w, "POST /salons/{id}/blocked-dates", salonID, err)
		return
	}

	h.logger.Info("POST /salons/{id}/blocked-dates - Date blocked: salon_id=%d, date=%s", salonID, result.Date)
	handlers.RespondSuccess(w, http.StatusCreated, msgBlocked, result)
}

// HandleRemove DELETE /api/v1/salons/{salonId}/blocked-dates/{date}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/blocked-dates/{date} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id}/blocked-dates/{date} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	date := mux.Vars(r)["date"]
	if err := h.service.RemoveBlockedDate(r.Context(), actor, salonID, date); err != nil {
		h.respondError(w, "DELETE /salons/{id}/blocked-dates/{date}", salonID, err)
		return
	}

	h.logger.Info("DELETE /salons/{id}/blocked-dates/{date} - Date unblocked: salon_id=%d, date=%s", salonID, date)
	handlers.RespondSuccess(w, http.StatusOK, msgUnblocked, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, salonID int64, err error) {
	switch {
	case errors.Is(err, availability.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: salon_id=%d", route, salonID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: salon_id=%d, error=%v", route, salonID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)

	case errors.Is(err, availability.ErrAlreadyExists):
		h.logger.Warn("%s - Already blocked: salon_id=%d", route, salonID)
		handlers.RespondConflict(w, handlers.CodeAlreadyExists, msgAlreadyBlocked)

	case errors.Is(err, availability.ErrNotFound):
		h.logger.Warn("%s - Not blocked: salon_id=%d", route, salonID)
		handlers.RespondNotFound(w, msgNotBlocked)

	default:
		h.logger.Error("%s - Failed: salon_id=%d, error=%v", route, salonID, err)
		handlers.RespondInternalError(w)
	}
}
