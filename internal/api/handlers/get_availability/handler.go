package get_availability

import (
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
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

// Handle GET /api/v1/salons/{salonId}/availability
// Возвращает настройки по умолчанию (isDefault=true), если салон ещё не сохранял свои
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/availability - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), salonID)
	if err != nil {
		h.logger.Error("GET /salons/{id}/availability - Failed to get availability: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/availability - Availability retrieved successfully: salon_id=%d, default=%t",
		salonID, result.Settings.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, result)
}
