package get_appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments/models"
)

type AppointmentService interface {
	List(ctx context.Context, actor domain.Actor, req *models.ListRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
