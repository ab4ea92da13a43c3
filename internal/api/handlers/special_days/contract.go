package special_days

import (
	"context"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability/models"
)

type CalendarService interface {
	AddSpecialDay(ctx context.Context, actor domain.Actor, salonID int64, req *models.SpecialDayRequest) (*models.SpecialDayResponse, error)
	RemoveSpecialDay(ctx context.Context, actor domain.Actor, salonID int64, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
