package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// MonthRevenue sums appointment amounts of one calendar month
type MonthRevenue struct {
	Label     string // "Jan 2026"
	Year      int
	Month     time.Month
	Total     float64 // non-cancelled
	Completed float64 // completed only
}

// SumRevenueByMonth returns monthCount trailing months ending with the month of now,
// oldest first. monthCount <= 0 falls back to domain.DefaultStatsMonths.
func SumRevenueByMonth(apps []*domain.Appointment, now time.Time, monthCount int) []MonthRevenue {
	if monthCount <= 0 {
		monthCount = domain.DefaultStatsMonths
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	months := make([]MonthRevenue, 0, monthCount)
	index := make(map[string]int, monthCount)
	for i := monthCount - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		index[monthKey(m.Year(), m.Month())] = len(months)
		months = append(months, MonthRevenue{
			Label: fmt.Sprintf("%s %d", m.Month().String()[:3], m.Year()),
			Year:  m.Year(),
			Month: m.Month(),
		})
	}

	for _, app := range apps {
		if app == nil || app.Cancelled {
			continue
		}
		y, m, _, err := app.SlotDate.Parts()
		if err != nil {
			continue
		}
		i, ok := index[monthKey(y, m)]
		if !ok {
			continue
		}
		months[i].Total += app.Amount
		if app.IsCompleted {
			months[i].Completed += app.Amount
		}
	}
	return months
}

// ServiceCount is the number of bookings of one service
type ServiceCount struct {
	Service string
	Count   int
}

// PopularityByService counts non-cancelled appointments per service, highest first,
// ties in first-seen order, truncated to topN (topN <= 0 keeps all).
func PopularityByService(apps []*domain.Appointment, topN int) []ServiceCount {
	counts := make([]ServiceCount, 0)
	index := make(map[string]int)

	for _, app := range apps {
		if app == nil || app.Cancelled {
			continue
		}
		name := strings.TrimSpace(app.ServiceDescription)
		if name == "" {
			continue
		}
		i, ok := index[name]
		if !ok {
			i = len(counts)
			index[name] = i
			counts = append(counts, ServiceCount{Service: name})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if topN > 0 && len(counts) > topN {
		counts = counts[:topN]
	}
	return counts
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d", year, int(month))
}
