package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonConsole/internal/usecase/get_available_slots"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidStylistID = "некорректный ID мастера"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается D_M_YYYY"
	msgInvalidFlag      = "некорректное значение includeUnavailable"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/stylists/{stylistId}/available-slots
// Query params: date (required, D_M_YYYY), includeUnavailable (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := handlers.PathInt64(r, "salonId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/stylists/{id}/available-slots - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	stylistID, err := handlers.PathInt64(r, "stylistId")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/stylists/{id}/available-slots - Invalid stylist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStylistID)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		h.logger.Warn("GET /salons/{id}/stylists/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	includeUnavailable, err := handlers.QueryBool(r, "includeUnavailable")
	if err != nil {
		h.logger.Warn("GET /salons/{id}/stylists/{id}/available-slots - Invalid includeUnavailable: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFlag)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		SalonID:            salonID,
		StylistID:          stylistID,
		Date:               date,
		IncludeUnavailable: includeUnavailable,
	})
	if err != nil {
		if errors.Is(err, getAvailableSlots.ErrInvalidInput) {
			h.logger.Warn("GET /salons/{id}/stylists/{id}/available-slots - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		h.logger.Error("GET /salons/{id}/stylists/{id}/available-slots - Failed to get slots: salon_id=%d, stylist_id=%d, error=%v",
			salonID, stylistID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/stylists/{id}/available-slots - Slots retrieved: salon_id=%d, stylist_id=%d, date=%s, open=%t, count=%d",
		salonID, stylistID, result.Date, result.Open, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
