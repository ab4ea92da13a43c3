package reports

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// DayBucket counts appointments on one calendar date
type DayBucket struct {
	Date  types.DateKey
	Label string // "Oct 19"
	Count int
}

// DayBuckets returns n trailing days ending today, oldest first.
// n <= 0 falls back to domain.DefaultStatsDays.
func DayBuckets(now time.Time, n int) []DayBucket {
	if n <= 0 {
		n = domain.DefaultStatsDays
	}
	today := startOfDay(now)

	buckets := make([]DayBucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		buckets = append(buckets, DayBucket{
			Date:  types.NewDateKey(day),
			Label: fmt.Sprintf("%s %d", day.Month().String()[:3], day.Day()),
		})
	}
	return buckets
}

// CountByDateBucket counts non-cancelled appointments per bucket. Appointments outside
// the buckets or with an unparsable date are ignored. The input buckets are not modified.
func CountByDateBucket(apps []*domain.Appointment, buckets []DayBucket) []DayBucket {
	out := make([]DayBucket, len(buckets))
	index := make(map[string]int, len(buckets))
	for i, b := range buckets {
		out[i] = b
		out[i].Count = 0
		if key, err := types.ParseDateKey(b.Date.String()); err == nil {
			index[key.String()] = i
		}
	}

	for _, app := range apps {
		if app == nil || app.Cancelled {
			continue
		}
		key, err := types.ParseDateKey(app.SlotDate.String())
		if err != nil {
			continue
		}
		if i, ok := index[key.String()]; ok {
			out[i].Count++
		}
	}
	return out
}

// RetentionBucket counts distinct customers by number of visits
type RetentionBucket struct {
	Label     string
	MinVisits int
	MaxVisits int // 0 = no upper bound
	Customers int
}

// RetentionBuckets groups distinct customers of non-cancelled appointments into
// the fixed buckets 1, 2-3, 4-5 and 6+.
func RetentionBuckets(apps []*domain.Appointment) []RetentionBucket {
	buckets := []RetentionBucket{
		{Label: "1", MinVisits: 1, MaxVisits: 1},
		{Label: "2-3", MinVisits: 2, MaxVisits: 3},
		{Label: "4-5", MinVisits: 4, MaxVisits: 5},
		{Label: "6+", MinVisits: 6},
	}

	visits := make(map[string]int)
	for _, app := range apps {
		if app == nil || app.Cancelled {
			continue
		}
		key := customerKey(app)
		if key == "" {
			continue
		}
		visits[key]++
	}

	for _, n := range visits {
		for i := range buckets {
			if n >= buckets[i].MinVisits && (buckets[i].MaxVisits == 0 || n <= buckets[i].MaxVisits) {
				buckets[i].Customers++
				break
			}
		}
	}
	return buckets
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
