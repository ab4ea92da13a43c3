package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonConsole/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

const (
	blockedTable = "blocked_dates"
	holidayTable = "recurring_holidays"
	specialTable = "special_working_days"
)

// Repository репозиторий календаря салона: заблокированные даты,
// повторяющиеся выходные и особые рабочие дни
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календаря
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ============================================================
// Заблокированные даты
// ============================================================

// ListBlockedDates получает все заблокированные даты салона
func (r *Repository) ListBlockedDates(ctx context.Context, salonID int64) ([]domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "date", "reason", "created_at").
		From(blockedTable).
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.BlockedDate, 0)
	for rows.Next() {
		var (
			b         domain.BlockedDate
			createdAt sql.NullTime
		)
		if err := rows.Scan(&b.ID, &b.SalonID, &b.Date, &b.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}
		b.CreatedAt = createdAt.Time
		result = append(result, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// AddBlockedDate блокирует дату. Повторная блокировка той же даты возвращает ErrDuplicateDate.
func (r *Repository) AddBlockedDate(ctx context.Context, blocked *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(blockedTable).
		Columns("salon_id", "date", "reason").
		Values(blocked.SalonID, blocked.Date, blocked.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	saved := *blocked
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &createdAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateDate
	}
	if err != nil {
		return nil, fmt.Errorf("%w: AddBlockedDate - execute insert: %v", ErrExecQuery, err)
	}
	saved.CreatedAt = createdAt.Time

	return &saved, nil
}

// DeleteBlockedDate снимает блокировку с даты
func (r *Repository) DeleteBlockedDate(ctx context.Context, salonID int64, date types.DateKey) error {
	return r.deleteWhere(ctx, "DeleteBlockedDate", blockedTable,
		squirrel.Eq{"salon_id": salonID, "date": date}, ErrBlockedDateNotFound)
}

// ============================================================
// Повторяющиеся выходные
// ============================================================

// ListHolidays получает повторяющиеся выходные салона
func (r *Repository) ListHolidays(ctx context.Context, salonID int64) ([]domain.RecurringHoliday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "kind", "weekday", "day_of_month", "created_at").
		From(holidayTable).
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.RecurringHoliday, 0)
	for rows.Next() {
		var (
			h                   domain.RecurringHoliday
			weekday, dayOfMonth sql.NullInt32
			createdAt           sql.NullTime
		)
		if err := rows.Scan(&h.ID, &h.SalonID, &h.Name, &h.Kind, &weekday, &dayOfMonth, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListHolidays - scan row: %v", ErrScanRow, err)
		}
		h.Weekday = time.Weekday(weekday.Int32)
		h.DayOfMonth = int(dayOfMonth.Int32)
		h.CreatedAt = createdAt.Time
		result = append(result, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// AddHoliday добавляет повторяющийся выходной
func (r *Repository) AddHoliday(ctx context.Context, holiday *domain.RecurringHoliday) (*domain.RecurringHoliday, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var weekday, dayOfMonth sql.NullInt32
	switch holiday.Kind {
	case domain.HolidayWeekly:
		weekday = sql.NullInt32{Int32: int32(holiday.Weekday), Valid: true}
	case domain.HolidayMonthly:
		dayOfMonth = sql.NullInt32{Int32: int32(holiday.DayOfMonth), Valid: true}
	}

	query, args, err := psqlbuilder.Insert(holidayTable).
		Columns("salon_id", "name", "kind", "weekday", "day_of_month").
		Values(holiday.SalonID, holiday.Name, string(holiday.Kind), weekday, dayOfMonth).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddHoliday - build insert query: %v", ErrBuildQuery, err)
	}

	saved := *holiday
	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: AddHoliday - execute insert: %v", ErrExecQuery, err)
	}
	saved.CreatedAt = createdAt.Time

	return &saved, nil
}

// DeleteHoliday удаляет повторяющийся выходной салона
func (r *Repository) DeleteHoliday(ctx context.Context, salonID, holidayID int64) error {
	return r.deleteWhere(ctx, "DeleteHoliday", holidayTable,
		squirrel.Eq{"salon_id": salonID, "id": holidayID}, ErrHolidayNotFound)
}

// ============================================================
// Особые рабочие дни
// ============================================================

// ListSpecialDays получает особые рабочие дни салона
func (r *Repository) ListSpecialDays(ctx context.Context, salonID int64) ([]domain.SpecialWorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "date", "note", "created_at").
		From(specialTable).
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.SpecialWorkingDay, 0)
	for rows.Next() {
		var (
			d         domain.SpecialWorkingDay
			createdAt sql.NullTime
		)
		if err := rows.Scan(&d.ID, &d.SalonID, &d.Date, &d.Note, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListSpecialDays - scan row: %v", ErrScanRow, err)
		}
		d.CreatedAt = createdAt.Time
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDays - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// AddSpecialDay добавляет особый рабочий день
func (r *Repository) AddSpecialDay(ctx context.Context, day *domain.SpecialWorkingDay) (*domain.SpecialWorkingDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(specialTable).
		Columns("salon_id", "date", "note").
		Values(day.SalonID, day.Date, day.Note).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddSpecialDay - build insert query: %v", ErrBuildQuery, err)
	}

	saved := *day
	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &createdAt)
	if isUniqueViolation(err) {
		return nil, ErrDuplicateDate
	}
	if err != nil {
		return nil, fmt.Errorf("%w: AddSpecialDay - execute insert: %v", ErrExecQuery, err)
	}
	saved.CreatedAt = createdAt.Time

	return &saved, nil
}

// DeleteSpecialDay удаляет особый рабочий день
func (r *Repository) DeleteSpecialDay(ctx context.Context, salonID int64, date types.DateKey) error {
	return r.deleteWhere(ctx, "DeleteSpecialDay", specialTable,
		squirrel.Eq{"salon_id": salonID, "date": date}, ErrSpecialDayNotFound)
}

func (r *Repository) deleteWhere(ctx context.Context, op, table string, where squirrel.Eq, notFound error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(where).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return notFound
	}

	return nil
}
