package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateState(ctx context.Context, app *domain.Appointment) (*domain.Appointment, error)
}

// CalendarProvider источник настроек и календаря салона
type CalendarProvider interface {
	GetCalendar(ctx context.Context, salonID int64) (*domain.SalonCalendar, bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учёт переходов состояния записей
type MetricsRecorder interface {
	ObserveTransition(transition, result string)
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

type nopMetrics struct{}

func (nopMetrics) ObserveTransition(string, string) {}
