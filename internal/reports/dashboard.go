package reports

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// Options tunes Summarize
type Options struct {
	Days     int // daily buckets, default domain.DefaultStatsDays
	Months   int // revenue months, default domain.DefaultStatsMonths
	TopN     int // services, default domain.DefaultTopServices
	Latest   int // latest appointments, default domain.MaxRecentAppointments
	Roster   []Stylist
	Location *time.Location // salon location, default now.Location()
}

// Dashboard is the summary shown to admins and stylists
type Dashboard struct {
	TotalAppointments int
	Scheduled         int
	Completed         int
	Cancelled         int
	Upcoming          int // scheduled and starting after now

	Revenue       float64 // non-cancelled amounts
	PaidRevenue   float64
	UnpaidRevenue float64

	Daily       []DayBucket
	Monthly     []MonthRevenue
	TopServices []ServiceCount
	Stylists    []StylistPerformance
	Retention   []RetentionBucket
	Latest      []*domain.Appointment // most recent slot first
}

// Summarize folds apps into a Dashboard
func Summarize(apps []*domain.Appointment, now time.Time, opts Options) Dashboard {
	if opts.Location != nil {
		now = now.In(opts.Location)
	}
	if opts.TopN <= 0 {
		opts.TopN = domain.DefaultTopServices
	}
	if opts.Latest <= 0 {
		opts.Latest = domain.MaxRecentAppointments
	}

	d := Dashboard{
		Daily:       CountByDateBucket(apps, DayBuckets(now, opts.Days)),
		Monthly:     SumRevenueByMonth(apps, now, opts.Months),
		TopServices: PopularityByService(apps, opts.TopN),
		Stylists:    PerformanceByStylist(apps, opts.Roster...),
		Retention:   RetentionBuckets(apps),
	}

	type dated struct {
		app   *domain.Appointment
		start time.Time
		ok    bool
	}
	all := make([]dated, 0, len(apps))

	for _, app := range apps {
		if app == nil {
			continue
		}
		d.TotalAppointments++

		start, err := app.StartsAt(now.Location())
		all = append(all, dated{app: app, start: start, ok: err == nil})

		switch app.State() {
		case domain.StateCancelled:
			d.Cancelled++
			continue
		case domain.StateCompleted:
			d.Completed++
		default:
			d.Scheduled++
			if err == nil && start.After(now) {
				d.Upcoming++
			}
		}

		d.Revenue += app.Amount
		if app.Payment {
			d.PaidRevenue += app.Amount
		} else {
			d.UnpaidRevenue += app.Amount
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].ok != all[j].ok {
			return all[i].ok
		}
		return all[i].start.After(all[j].start)
	})
	if len(all) > opts.Latest {
		all = all[:opts.Latest]
	}
	d.Latest = make([]*domain.Appointment, 0, len(all))
	for _, x := range all {
		d.Latest = append(d.Latest, x.app)
	}

	return d
}
