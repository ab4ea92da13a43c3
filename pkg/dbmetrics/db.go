package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonConsole/pkg/metrics"
)

// DefaultStatsInterval период сбора статистики connection pool
const DefaultStatsInterval = 15 * time.Second

// DB оборачивает *sql.DB и пишет длительность запросов в prometheus.
// С nil метриками работает как обычный *sql.DB.
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	service string
}

// Wrap создаёт обёртку без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics, service string) *DB {
	return &DB{db: db, metrics: m, service: service}
}

// WrapWithDefault создаёт обёртку и запускает сбор статистики пула до закрытия stop
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, service string, stop <-chan struct{}) *DB {
	w := Wrap(db, m, service)
	if m != nil {
		go w.collectStats(DefaultStatsInterval, stop)
	}
	return w
}

// Unwrap возвращает исходный *sql.DB
func (d *DB) Unwrap() *sql.DB {
	return d.db
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe(query, start, row.Err())
	return row
}

// BeginTx открывает транзакцию, запросы которой тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		d.observe("BEGIN", time.Now(), err)
		return nil, err
	}
	return &instrumentedTx{SqlTxWrapper: SqlTxWrapper{Tx: tx}, db: d}, nil
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.metrics == nil {
		return
	}
	op := Operation(query)
	d.metrics.DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil && err != sql.ErrNoRows {
		d.metrics.DBErrorsTotal.WithLabelValues(op).Inc()
	}
}

func (d *DB) collectStats(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		d.recordStats()
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (d *DB) recordStats() {
	stats := d.db.Stats()
	d.metrics.DBOpenConnections.WithLabelValues(d.service).Set(float64(stats.OpenConnections))
	d.metrics.DBInUseConnections.WithLabelValues(d.service).Set(float64(stats.InUse))
	d.metrics.DBIdleConnections.WithLabelValues(d.service).Set(float64(stats.Idle))
}

// Operation возвращает первое слово запроса в нижнем регистре (select, insert, ...)
func Operation(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

type instrumentedTx struct {
	SqlTxWrapper
	db *DB
}

func (t *instrumentedTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.Tx.ExecContext(ctx, query, args...)
	t.db.observe(query, start, err)
	return res, err
}

func (t *instrumentedTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.Tx.QueryContext(ctx, query, args...)
	t.db.observe(query, start, err)
	return rows, err
}

func (t *instrumentedTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.Tx.QueryRowContext(ctx, query, args...)
	t.db.observe(query, start, row.Err())
	return row
}

func (t *instrumentedTx) Commit() error {
	start := time.Now()
	err := t.Tx.Commit()
	t.db.observe("COMMIT", start, err)
	return err
}
