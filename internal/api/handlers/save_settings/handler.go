package save_settings

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
	msgMissingUser        = "отсутствует пользователь"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные настройки доступности"
	msgSaved              = "настройки сохранены"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}/availability/settings
// Настройки сохраняются целиком. Доступно только администратору.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/availability/settings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /salons/{id}/availability/settings - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req models.SettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/availability/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SaveSettings(r.Context(), actor, salonID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /salons/{id}/availability/settings - Access denied: salon_id=%d, user_id=%d",
				salonID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/availability/settings - Invalid data: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondBadRequest(w, msgInvalidData+": "+err.Error())

		default:
			h.logger.Error("PUT /salons/{id}/availability/settings - Failed to save settings: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/availability/settings - Settings saved successfully: salon_id=%d, user_id=%d",
		salonID, actor.UserID)
	handlers.RespondSuccess(w, http.StatusOK, msgSaved, result)
}
