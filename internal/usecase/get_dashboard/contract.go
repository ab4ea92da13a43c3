package get_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	ListStylists(ctx context.Context, salonID int64) ([]domain.Stylist, error)
}

// SettingsProvider источник настроек доступности салона
type SettingsProvider interface {
	GetSettings(ctx context.Context, salonID int64) (*domain.AvailabilitySettings, bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
