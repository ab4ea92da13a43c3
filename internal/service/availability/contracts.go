package availability

import (
	"context"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// SettingsRepository интерфейс репозитория настроек доступности
type SettingsRepository interface {
	GetBySalonID(ctx context.Context, salonID int64) (*domain.AvailabilitySettings, error)
	Upsert(ctx context.Context, settings *domain.AvailabilitySettings) (*domain.AvailabilitySettings, error)
}

// CalendarRepository интерфейс репозитория календаря салона
type CalendarRepository interface {
	ListBlockedDates(ctx context.Context, salonID int64) ([]domain.BlockedDate, error)
	AddBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, salonID int64, date types.DateKey) error

	ListHolidays(ctx context.Context, salonID int64) ([]domain.RecurringHoliday, error)
	AddHoliday(ctx context.Context, holiday *domain.RecurringHoliday) (*domain.RecurringHoliday, error)
	DeleteHoliday(ctx context.Context, salonID, holidayID int64) error

	ListSpecialDays(ctx context.Context, salonID int64) ([]domain.SpecialWorkingDay, error)
	AddSpecialDay(ctx context.Context, day *domain.SpecialWorkingDay) (*domain.SpecialWorkingDay, error)
	DeleteSpecialDay(ctx context.Context, salonID int64, date types.DateKey) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
