package calendar

import (
	"github.com/m04kA/SMC-SalonConsole/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
