package calendar

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBlockedDateNotFound возвращается, когда заблокированная дата не найдена
	ErrBlockedDateNotFound = errors.New("calendar.repository: blocked date not found")

	// ErrHolidayNotFound возвращается, когда праздник не найден
	ErrHolidayNotFound = errors.New("calendar.repository: holiday not found")

	// ErrSpecialDayNotFound возвращается, когда особый рабочий день не найден
	ErrSpecialDayNotFound = errors.New("calendar.repository: special day not found")

	// ErrDuplicateDate возвращается при повторном добавлении той же даты
	ErrDuplicateDate = errors.New("calendar.repository: date already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)

// uniqueViolation код ошибки postgres при нарушении уникального индекса
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
