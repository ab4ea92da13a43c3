package blocked_dates

import (
	"context"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability/models"
)

type CalendarService interface {
	AddBlockedDate(ctx context.Context, actor domain.Actor, salonID int64, req *models.BlockedDateRequest) (*models.BlockedDateResponse, error)
	RemoveBlockedDate(ctx context.Context, actor domain.Actor, salonID int64, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
