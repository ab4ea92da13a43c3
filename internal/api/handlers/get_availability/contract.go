package get_availability

import (
	"context"

	"github.com/m04kA/SMC-SalonConsole/internal/service/availability/models"
)

type AvailabilityService interface {
	GetAvailability(ctx context.Context, salonID int64) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
