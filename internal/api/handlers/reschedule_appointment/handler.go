package reschedule_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	rescheduleAppointment "github.com/m04kA/SMC-SalonConsole/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUser          = "отсутствует пользователь"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidSlot          = "некорректные дата или время"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgSlotUnavailable      = "выбранный слот недоступен"
	msgRescheduled          = "запись перенесена"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
// Запись можно перенести только один раз
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		Actor:         actor,
		SlotDate:      req.SlotDate,
		SlotTime:      req.SlotTime,
	})
	if err != nil {
		if handlers.RespondTransitionError(w, err) {
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Transition rejected: appointment_id=%d, error=%v",
				appointmentID, err)
			return
		}
		switch {
		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid slot: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrSlotUnavailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot unavailable: appointment_id=%d, date=%s, time=%s",
				appointmentID, req.SlotDate, req.SlotTime)
			handlers.RespondConflict(w, handlers.CodeSlotUnavailable, msgSlotUnavailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled: appointment_id=%d, from=%s %s, to=%s %s",
		appointmentID, result.PreviousDate, result.PreviousTime, result.Appointment.SlotDate, result.Appointment.SlotTime)
	handlers.RespondSuccess(w, http.StatusOK, msgRescheduled, FromUseCaseResponse(result))
}
