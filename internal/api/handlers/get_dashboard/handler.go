package get_dashboard

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	getDashboard "github.com/m04kA/SMC-SalonConsole/internal/usecase/get_dashboard"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgMissingUser    = "отсутствует пользователь"
	msgInvalidParams  = "некорректные параметры статистики"
	msgForbidden      = "статистика доступна только персоналу салона"
)

type Handler struct {
	useCase GetDashboardUseCase
	logger  Logger
}

func NewHandler(useCase GetDashboardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/dashboard?days=&months=&top=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/dashboard - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/dashboard - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	req := &getDashboard.Request{SalonID: salonID, Actor: actor}
	for name, dst := range map[string]*int{"days": &req.Days, "months": &req.Months, "top": &req.TopN} {
		if *dst, err = handlers.QueryInt(r, name); err != nil {
			h.logger.Warn("GET /salons/{id}/dashboard - Invalid %s: %v", name, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getDashboard.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/dashboard - Invalid params: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidParams+": "+err.Error())

		case errors.Is(err, getDashboard.ErrAccessDenied):
			h.logger.Warn("GET /salons/{id}/dashboard - Access denied: salon_id=%d, user_id=%d", salonID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /salons/{id}/dashboard - Failed to build dashboard: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/dashboard - Dashboard built: salon_id=%d, scope=%s, total=%d",
		salonID, result.Scope, result.Dashboard.TotalAppointments)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
