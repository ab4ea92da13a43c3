package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
