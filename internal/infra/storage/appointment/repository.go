package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonConsole/pkg/psqlbuilder"
)

const (
	table         = "appointments"
	stylistsTable = "stylists"
)

var columns = []string{
	"id",
	"salon_id",
	"customer_id",
	"stylist_id",
	"customer_name",
	"stylist_name",
	"service_description",
	"slot_date",
	"slot_time",
	"amount",
	"payment",
	"is_completed",
	"cancelled",
	"has_rescheduled",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями салона.
// Записи создаются внешним процессом бронирования и никогда не удаляются физически.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает запись по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	app, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return app, nil
}

// List получает записи салона с фильтрацией.
// Примеры:
//
//	// Все активные записи салона
//	filter := domain.AppointmentsFilter{SalonID: 1}
//
//	// Записи мастера на дату, включая отменённые
//	filter := domain.AppointmentsFilter{SalonID: 1, StylistID: &id, SlotDate: &date, IncludeCancelled: true}
//
// Внутри транзакции при фильтре по мастеру и дате строки блокируются (FOR UPDATE),
// чтобы перенос не занял слот параллельно с другим переносом.
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"salon_id": filter.SalonID})

	if filter.StylistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"stylist_id": *filter.StylistID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.SlotDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": *filter.SlotDate})
	}
	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"cancelled": false})
	}

	selectBuilder = selectBuilder.OrderBy("slot_date DESC", "id DESC")

	if dbmetrics.IsInTransaction(ctx) && filter.StylistID != nil && filter.SlotDate != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateState сохраняет флаги состояния и слот записи
func (r *Repository) UpdateState(ctx context.Context, app *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("slot_date", app.SlotDate).
		Set("slot_time", app.SlotTime).
		Set("payment", app.Payment).
		Set("is_completed", app.IsCompleted).
		Set("cancelled", app.Cancelled).
		Set("has_rescheduled", app.HasRescheduled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": app.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateState - execute update: %v", ErrExecQuery, err)
	}

	saved := app.Clone()
	saved.UpdatedAt = updatedAt.Time
	return saved, nil
}

// ListStylists получает мастеров салона
func (r *Repository) ListStylists(ctx context.Context, salonID int64) ([]domain.Stylist, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name").
		From(stylistsTable).
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStylists - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStylists - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stylists := make([]domain.Stylist, 0)
	for rows.Next() {
		var s domain.Stylist
		if err := rows.Scan(&s.ID, &s.SalonID, &s.Name); err != nil {
			return nil, fmt.Errorf("%w: ListStylists - scan row: %v", ErrScanRow, err)
		}
		stylists = append(stylists, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStylists - rows error: %v", ErrScanRow, err)
	}

	return stylists, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		app                  domain.Appointment
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&app.ID,
		&app.SalonID,
		&app.CustomerID,
		&app.StylistID,
		&app.CustomerName,
		&app.StylistName,
		&app.ServiceDescription,
		&app.SlotDate,
		&app.SlotTime,
		&app.Amount,
		&app.Payment,
		&app.IsCompleted,
		&app.Cancelled,
		&app.HasRescheduled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time
	return &app, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	apps := make([]*domain.Appointment, 0)

	for rows.Next() {
		app, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return apps, nil
}
