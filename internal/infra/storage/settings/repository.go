package settings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonConsole/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

const table = "availability_settings"

var columns = []string{
	"salon_id",
	"slot_start_time",
	"slot_end_time",
	"slot_duration_minutes",
	"break_enabled",
	"break_start_time",
	"break_end_time",
	"days_open",
	"booking_window_start",
	"booking_window_end",
	"max_advance_booking_days",
	"min_booking_lead_hours",
	"allow_rescheduling",
	"reschedule_lead_hours",
	"cancellation_lead_hours",
	"timezone",
	"updated_at",
}

// Repository репозиторий настроек доступности салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySalonID получает настройки салона.
// Если салон не сохранял настройки, возвращает ErrSettingsNotFound.
func (r *Repository) GetBySalonID(ctx context.Context, salonID int64) (*domain.AvailabilitySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"salon_id": salonID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - build select query: %v", ErrBuildQuery, err)
	}

	settings, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalonID - scan settings: %v", ErrScanRow, err)
	}

	return settings, nil
}

// Upsert создает или полностью перезаписывает настройки салона
func (r *Repository) Upsert(ctx context.Context, settings *domain.AvailabilitySettings) (*domain.AvailabilitySettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns[:len(columns)-1]...).
		Values(
			settings.SalonID,
			settings.SlotStartTime,
			settings.SlotEndTime,
			settings.SlotDurationMinutes,
			settings.BreakEnabled,
			settings.BreakStartTime,
			settings.BreakEndTime,
			pq.StringArray(domain.WeekdayNames(settings.DaysOpen)),
			settings.BookingWindowStart,
			settings.BookingWindowEnd,
			settings.MaxAdvanceBookingDays,
			settings.MinBookingLeadHours,
			settings.AllowRescheduling,
			settings.RescheduleLeadHours,
			settings.CancellationLeadHours,
			settings.Timezone,
		).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			slot_start_time = EXCLUDED.slot_start_time,
			slot_end_time = EXCLUDED.slot_end_time,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			break_enabled = EXCLUDED.break_enabled,
			break_start_time = EXCLUDED.break_start_time,
			break_end_time = EXCLUDED.break_end_time,
			days_open = EXCLUDED.days_open,
			booking_window_start = EXCLUDED.booking_window_start,
			booking_window_end = EXCLUDED.booking_window_end,
			max_advance_booking_days = EXCLUDED.max_advance_booking_days,
			min_booking_lead_hours = EXCLUDED.min_booking_lead_hours,
			allow_rescheduling = EXCLUDED.allow_rescheduling,
			reschedule_lead_hours = EXCLUDED.reschedule_lead_hours,
			cancellation_lead_hours = EXCLUDED.cancellation_lead_hours,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	saved := *settings
	saved.UpdatedAt = updatedAt.Time
	return &saved, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSettings(row rowScanner) (*domain.AvailabilitySettings, error) {
	var (
		s                      domain.AvailabilitySettings
		daysOpen               pq.StringArray
		windowStart, windowEnd types.DateKey
		updatedAt              sql.NullTime
	)

	err := row.Scan(
		&s.SalonID,
		&s.SlotStartTime,
		&s.SlotEndTime,
		&s.SlotDurationMinutes,
		&s.BreakEnabled,
		&s.BreakStartTime,
		&s.BreakEndTime,
		&daysOpen,
		&windowStart,
		&windowEnd,
		&s.MaxAdvanceBookingDays,
		&s.MinBookingLeadHours,
		&s.AllowRescheduling,
		&s.RescheduleLeadHours,
		&s.CancellationLeadHours,
		&s.Timezone,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !windowStart.IsZero() {
		s.BookingWindowStart = &windowStart
	}
	if !windowEnd.IsZero() {
		s.BookingWindowEnd = &windowEnd
	}

	s.DaysOpen = make([]time.Weekday, 0, len(daysOpen))
	for _, name := range daysOpen {
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWeekday, err)
		}
		s.DaysOpen = append(s.DaysOpen, day)
	}
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
