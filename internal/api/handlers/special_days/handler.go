package special_days

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
	msgInvalidData        = "некорректный особый рабочий день"
	msgForbidden          = "доступ запрещен"
	msgAlreadyExists      = "особый рабочий день на эту дату уже есть"
	msgNotFound           = "особый рабочий день не найден"
	msgAdded              = "особый рабочий день добавлен"
	msgRemoved            = "особый рабочий день удалён"
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

// HandleAdd POST /api/v1/salons/{salonId}/special-days
// Особый рабочий день открывает салон в дату, которая иначе была бы выходной
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salons/{id}/special-days - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/special-days - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.SpecialDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/special-days - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddSpecialDay(r.Context(), actor, salonID, &req)
	if err != nil {
		h.respondError(w, "POST /salons/{id}/special-days", salonID, err)
		return
	}

	h.logger.Info("POST /salons/{id}/special-days - Special day added: salon_id=%d, date=%s", salonID, result.Date)
	handlers.RespondSuccess(w, http.StatusCreated, msgAdded, result)
}

// HandleRemove DELETE /api/v1/salons/{salonId}/special-days/{date}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/special-days/{date} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id}/special-days/{date} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	date := mux.Vars(r)["date"]
	if err := h.service.RemoveSpecialDay(r.Context(), actor, salonID, date); err != nil {
		h.respondError(w, "DELETE /salons/{id}/special-days/{date}", salonID, err)
		return
	}

	h.logger.Info("DELETE /salons/{id}/special-days/{date} - Special day removed: salon_id=%d, date=%s", salonID, date)
	handlers.RespondSuccess(w, http.StatusOK, msgRemoved, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, salonID int64, err error) {
	switch {
	case errors.Is(err, availability.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: salon_id=%d", route, salonID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: salon_id=%d, error=%v", route, salonID, err)
		handlers.RespondBadRequest(w, msgInvalidData)

	case errors.Is(err, availability.ErrAlreadyExists):
		h.logger.Warn("%s - Already exists: salon_id=%d", route, salonID)
		handlers.RespondConflict(w, handlers.CodeAlreadyExists, msgAlreadyExists)

	case errors.Is(err, availability.ErrNotFound):
		h.logger.Warn("%s - Not found: salon_id=%d", route, salonID)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Failed: salon_id=%d, error=%v", route, salonID, err)
		handlers.RespondInternalError(w)
	}
}
