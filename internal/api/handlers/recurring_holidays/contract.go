package recurring_holidays

import (
	"context"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability/models"
)

type CalendarService interface {
	AddHoliday(ctx context.Context, actor domain.Actor, salonID int64, req *models.HolidayRequest) (*models.HolidayResponse, error)
	RemoveHoliday(ctx context.Context, actor domain.Actor, salonID int64, holidayID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
