package get_dashboard

import (
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/reports"
)

// Scope область статистики
type Scope string

const (
	ScopeSalon   Scope = "salon"   // администратор видит весь салон
	ScopeStylist Scope = "stylist" // мастер видит только свои записи
)

// Request модель запроса статистики
type Request struct {
	SalonID int64
	Actor   domain.Actor
	Days    int // 0 = domain.DefaultStatsDays
	Months  int // 0 = domain.DefaultStatsMonths
	TopN    int // 0 = domain.DefaultTopServices
}

// Response модель ответа со статистикой
type Response struct {
	SalonID   int64
	Scope     Scope
	Timezone  string
	Dashboard reports.Dashboard
}
