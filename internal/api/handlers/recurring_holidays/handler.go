package recurring_holidays

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidHolidayID   = "некорректный ID выходного"
	msgMissingUser        = "отсутствует пользователь"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректный выходной"
	msgForbidden          = "доступ запрещен"
	msgAlreadyExists      = "такой выходной уже есть"
	msgNotFound           = "выходной не найден"
	msgAdded              = "выходной добавлен"
	msgRemoved            = "выходной удалён"
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

// HandleAdd POST /api/v1/salons/{salonId}/holidays
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("POST /salons/{id}/holidays - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/holidays - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.HolidayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/holidays - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddHoliday(r.Context(), actor, salonID, &req)
	if err != nil {
		h.respondError(w, "POST /salons/{id}/holidays", salonID, err)
		return
	}

	h.logger.Info("POST /salons/{id}/holidays - Holiday added: salon_id=%d, holiday_id=%d, kind=%s",
		salonID, result.ID, result.Kind)
	handlers.RespondSuccess(w, http.StatusCreated, msgAdded, result)
}

// HandleRemove DELETE /api/v1/salons/{salonId}/holidays/{holidayId}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/holidays/{holidayId} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	holidayID, err := handlers.PathInt64(r, "holidayId")
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/holidays/{holidayId} - Invalid holiday ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHolidayID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id}/holidays/{holidayId} - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.RemoveHoliday(r.Context(), actor, salonID, holidayID); err != nil {
		h.respondError(w, "DELETE /salons/{id}/holidays/{holidayId}", salonID, err)
		return
	}

	h.logger.Info("DELETE /salons/{id}/holidays/{holidayId} - Holiday removed: salon_id=%d, holiday_id=%d",
		salonID, holidayID)
	handlers.RespondSuccess(w, http.StatusOK, msgRemoved, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, salonID int64, err error) {
	switch {
	case errors.Is(err, availability.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: salon_id=%d", route, salonID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("%s - Invalid data: salon_id=%d, error=%v", route, salonID, err)
		handlers.RespondBadRequest(w, msgInvalidData+": "+err.Error())

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
