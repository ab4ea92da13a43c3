package update_completion

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUser          = "отсутствует пользователь"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgCompleted            = "запись отмечена выполненной"
	msgUndone               = "отметка о выполнении снята"
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

// HandleComplete PATCH /api/v1/appointments/{appointmentId}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /appointments/{id}/complete", h.service.Complete, msgCompleted)
}

// HandleUndo PATCH /api/v1/appointments/{appointmentId}/incomplete
func (h *Handler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "PATCH /appointments/{id}/incomplete", h.service.UndoComplete, msgUndone)
}

type transitionFunc func(ctx context.Context, actor domain.Actor, id int64) (*models.AppointmentResponse, error)

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, route string, apply transitionFunc, msgDone string) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("%s - Invalid appointment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing actor", route)
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := apply(r.Context(), actor, appointmentID)
	if err != nil {
		if handlers.RespondTransitionError(w, err) {
			h.logger.Warn("%s - Transition rejected: appointment_id=%d, error=%v", route, appointmentID, err)
			return
		}
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("%s - Appointment not found: appointment_id=%d", route, appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: appointment_id=%d, user_id=%d", route, appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("%s - Failed: appointment_id=%d, error=%v", route, appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Done: appointment_id=%d, user_id=%d, state=%s", route, appointmentID, actor.UserID, result.State)
	handlers.RespondSuccess(w, http.StatusOK, msgDone, result)
}
