package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUser          = "отсутствует пользователь"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgCancelled            = "запись отменена"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.Cancel(r.Context(), actor, appointmentID)
	if err != nil {
		if handlers.RespondTransitionError(w, err) {
			h.logger.Warn("PATCH /appointments/{id}/cancel - Transition rejected: appointment_id=%d, error=%v",
				appointmentID, err)
			return
		}
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled: appointment_id=%d, user_id=%d",
		appointmentID, actor.UserID)
	handlers.RespondSuccess(w, http.StatusOK, msgCancelled, result)
}
