package get_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonConsole/pkg/ptr"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidStylistID = "некорректный ID мастера"
	msgInvalidFlag      = "некорректное значение includeCancelled"
	msgMissingUser      = "отсутствует пользователь"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/salons/{salonId}/appointments?stylistId=&includeCancelled=
// Администратор видит все записи салона, мастер - свои, клиент - свои
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/appointments - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/appointments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	req := &models.ListRequest{SalonID: salonID}

	stylistID, err := handlers.QueryInt(r, "stylistId")
	if err != nil || stylistID < 0 {
		h.logger.Warn("GET /salons/{id}/appointments - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}
	if stylistID > 0 {
		req.StylistID = ptr.Ptr(int64(stylistID))
	}

	req.IncludeCancelled, err = handlers.QueryBool(r, "includeCancelled")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/appointments - Invalid includeCancelled: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFlag)
		return
	}

	result, err := h.service.List(r.Context(), actor, req)
	if err != nil {
		if errors.Is(err, appointments.ErrAccessDenied) {
			h.logger.Warn("GET /salons/{id}/appointments - Access denied: salon_id=%d, user_id=%d",
				salonID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /salons/{id}/appointments - Failed to list appointments: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/appointments - Appointments retrieved: salon_id=%d, user_id=%d, count=%d",
		salonID, actor.UserID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
