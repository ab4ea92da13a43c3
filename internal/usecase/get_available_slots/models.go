package get_available_slots

import (
	"github.com/m04kA/SMC-SalonConsole/internal/calendar"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// Request модель запроса на получение слотов мастера
type Request struct {
	SalonID            int64
	StylistID          int64
	Date               string // "19_10_2026"
	IncludeUnavailable bool   // вернуть и занятые слоты с причиной
}

// Response модель ответа со слотами на дату
type Response struct {
	Date         types.DateKey
	SalonID      int64
	StylistID    int64
	Open         bool
	ClosedReason calendar.ClosedReason
	Note         string
	Timezone     string
	Slots        []domain.Slot
}
