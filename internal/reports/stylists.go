package reports

import (
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// Stylist is a roster entry
type Stylist struct {
	ID   int64
	Name string
}

// StylistPerformance aggregates one stylist's appointments
type StylistPerformance struct {
	StylistID      int64
	StylistName    string
	Total          int
	Completed      int
	Cancelled      int
	Revenue        float64 // completed amounts
	CompletionRate float64 // Completed / Total, 0 when Total is 0
}

// PerformanceByStylist aggregates appointments per stylist. Roster stylists come first
// in roster order, even with no appointments; others follow in first-seen order.
func PerformanceByStylist(apps []*domain.Appointment, roster ...Stylist) []StylistPerformance {
	result := make([]StylistPerformance, 0, len(roster))
	index := make(map[int64]int, len(roster))

	for _, s := range roster {
		if _, ok := index[s.ID]; ok {
			continue
		}
		index[s.ID] = len(result)
		result = append(result, StylistPerformance{StylistID: s.ID, StylistName: s.Name})
	}

	for _, app := range apps {
		if app == nil {
			continue
		}
		i, ok := index[app.StylistID]
		if !ok {
			i = len(result)
			index[app.StylistID] = i
			result = append(result, StylistPerformance{StylistID: app.StylistID, StylistName: app.StylistName})
		}
		p := &result[i]
		if p.StylistName == "" {
			p.StylistName = app.StylistName
		}

		p.Total++
		switch {
		case app.Cancelled:
			p.Cancelled++
		case app.IsCompleted:
			p.Completed++
			p.Revenue += app.Amount
		}
	}

	for i := range result {
		if result[i].Total > 0 {
			result[i].CompletionRate = float64(result[i].Completed) / float64(result[i].Total)
		}
	}
	return result
}

// customerKey identifies a customer by id, or by name when the id is missing
func customerKey(app *domain.Appointment) string {
	if app.CustomerID > 0 {
		return "id:" + strconv.FormatInt(app.CustomerID, 10)
	}
	name := strings.ToLower(strings.TrimSpace(app.CustomerName))
	if name == "" {
		return ""
	}
	return "name:" + name
}
