package reports_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/reports"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

var now = time.Date(2026, time.October, 18, 15, 0, 0, 0, time.UTC)

func app(id int64, date types.DateKey, opts ...func(*domain.Appointment)) *domain.Appointment {
	a := &domain.Appointment{ID: id, SlotDate: date, SlotTime: "10:00 AM", Amount: 10}
	for _, o := range opts {
		o(a)
	}
	return a
}

func cancelled(a *domain.Appointment) { a.Cancelled = true }
func completed(a *domain.Appointment) { a.IsCompleted = true }
func paid(a *domain.Appointment)      { a.Payment = true }
func amount(v float64) func(*domain.Appointment) {
	return func(a *domain.Appointment) { a.Amount = v }
}
func service(s string) func(*domain.Appointment) {
	return func(a *domain.Appointment) { a.ServiceDescription = s }
}
func stylistID(id int64, name string) func(*domain.Appointment) {
	return func(a *domain.Appointment) { a.StylistID, a.StylistName = id, name }
}
func customer(id int64) func(*domain.Appointment) {
	return func(a *domain.Appointment) { a.CustomerID = id }
}

func TestDayBuckets_DefaultIsTrailingMonthTodayInclusive(t *testing.T) {
	buckets := reports.DayBuckets(now, 0)

	require.Len(t, buckets, 31)
	assert.Equal(t, types.DateKey("18_9_2026"), buckets[0].Date)
	assert.Equal(t, types.DateKey("18_10_2026"), buckets[30].Date)
	assert.Equal(t, "Oct 18", buckets[30].Label)
}

func TestCountByDateBucket(t *testing.T) {
	apps := []*domain.Appointment{
		app(1, "18_10_2026"),
		app(2, "18_10_2026", cancelled),
		app(3, "17_10_2026"),
		app(4, "01_10_2026"),
		app(5, "19_10_2026"),
		app(6, "garbage"),
		nil,
	}
	buckets := reports.DayBuckets(now, 31)

	counted := reports.CountByDateBucket(apps, buckets)

	assert.Equal(t, 1, counted[30].Count)
	assert.Equal(t, 1, counted[29].Count)
	assert.Equal(t, 1, counted[13].Count, "1_10_2026")
	total := 0
	for _, b := range counted {
		total += b.Count
	}
	assert.Equal(t, 3, total)
	assert.Zero(t, buckets[30].Count, "input buckets must not change")
}

func TestSumRevenueByMonth(t *testing.T) {
	apps := []*domain.Appointment{
		app(1, "3_10_2026", amount(100), completed),
		app(2, "4_10_2026", amount(50)),
		app(3, "5_10_2026", amount(999), cancelled),
		app(4, "20_9_2026", amount(30), completed),
		app(5, "20_1_2026", amount(70)),
	}

	months := reports.SumRevenueByMonth(apps, now, 3)

	require.Len(t, months, 3)
	assert.Equal(t, "Aug 2026", months[0].Label)
	assert.Equal(t, "Sep 2026", months[1].Label)
	assert.Equal(t, "Oct 2026", months[2].Label)
	assert.Equal(t, 150.0, months[2].Total)
	assert.Equal(t, 100.0, months[2].Completed)
	assert.Equal(t, 30.0, months[1].Total)
	assert.Equal(t, 30.0, months[1].Completed)
	assert.Zero(t, months[0].Total)
}

func TestSumRevenueByMonth_CrossesYear(t *testing.T) {
	jan := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)

	months := reports.SumRevenueByMonth([]*domain.Appointment{app(1, "15_12_2025", amount(20))}, jan, 2)

	assert.Equal(t, "Dec 2025", months[0].Label)
	assert.Equal(t, 20.0, months[0].Total)
	assert.Equal(t, "Jan 2026", months[1].Label)
}

func TestPopularityByService_TiesKeepFirstSeenOrder(t *testing.T) {
	apps := []*domain.Appointment{
		app(1, "1_10_2026", service("Haircut")),
		app(2, "1_10_2026", service("Coloring")),
		app(3, "1_10_2026", service("Coloring")),
		app(4, "1_10_2026", service("Manicure")),
		app(5, "1_10_2026", service("Haircut")),
		app(6, "1_10_2026", service("Beard")),
		app(7, "1_10_2026", service("Manicure"), cancelled),
		app(8, "1_10_2026", service("  ")),
	}

	top := reports.PopularityByService(apps, 3)

	assert.Equal(t, []reports.ServiceCount{
		{Service: "Haircut", Count: 2},
		{Service: "Coloring", Count: 2},
		{Service: "Manicure", Count: 1},
	}, top)
	assert.Len(t, reports.PopularityByService(apps, 0), 4)
}

func TestPerformanceByStylist_EmptyRosterEntryHasZeroRate(t *testing.T) {
	perf := reports.PerformanceByStylist(nil, reports.Stylist{ID: 7, Name: "Anna"})

	require.Len(t, perf, 1)
	assert.Equal(t, 0, perf[0].Total)
	assert.Equal(t, 0.0, perf[0].CompletionRate)
}

func TestPerformanceByStylist(t *testing.T) {
	apps := []*domain.Appointment{
		app(1, "1_10_2026", stylistID(7, "Anna"), completed, amount(40)),
		app(2, "2_10_2026", stylistID(7, "Anna"), amount(25)),
		app(3, "3_10_2026", stylistID(7, "Anna"), cancelled, amount(60)),
		app(4, "3_10_2026", stylistID(7, "Anna"), completed, amount(35)),
		app(5, "4_10_2026", stylistID(9, "Boris"), completed, amount(50)),
	}

	perf := reports.PerformanceByStylist(apps, reports.Stylist{ID: 3, Name: "Vera"}, reports.Stylist{ID: 7})

	require.Len(t, perf, 3)
	assert.Equal(t, int64(3), perf[0].StylistID)
	assert.Zero(t, perf[0].CompletionRate)

	anna := perf[1]
	assert.Equal(t, "Anna", anna.StylistName)
	assert.Equal(t, 4, anna.Total)
	assert.Equal(t, 2, anna.Completed)
	assert.Equal(t, 1, anna.Cancelled)
	assert.Equal(t, 75.0, anna.Revenue)
	assert.InDelta(t, 0.5, anna.CompletionRate, 1e-9)

	assert.Equal(t, int64(9), perf[2].StylistID)
	assert.Equal(t, 1.0, perf[2].CompletionRate)
}

func TestRetentionBuckets(t *testing.T) {
	var apps []*domain.Appointment
	visits := map[int64]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 6, 6: 9}
	id := int64(0)
	for c, n := range visits {
		for i := 0; i < n; i++ {
			id++
			apps = append(apps, app(id, "1_10_2026", customer(c)))
		}
	}
	// a cancelled visit does not count
	apps = append(apps, app(100, "1_10_2026", customer(1), cancelled))
	// customers without id are keyed by name
	apps = append(apps,
		&domain.Appointment{ID: 101, CustomerName: "Walk In", SlotDate: "1_10_2026"},
		&domain.Appointment{ID: 102, CustomerName: "walk in ", SlotDate: "2_10_2026"},
	)

	buckets := reports.RetentionBuckets(apps)

	require.Len(t, buckets, 4)
	assert.Equal(t, []string{"1", "2-3", "4-5", "6+"}, []string{buckets[0].Label, buckets[1].Label, buckets[2].Label, buckets[3].Label})
	assert.Equal(t, 1, buckets[0].Customers)
	assert.Equal(t, 3, buckets[1].Customers)
	assert.Equal(t, 1, buckets[2].Customers)
	assert.Equal(t, 2, buckets[3].Customers)
}

func TestSummarize(t *testing.T) {
	apps := []*domain.Appointment{
		app(1, "10_10_2026", completed, paid, amount(40)),
		// 10:00 AM today, already started
		app(2, "18_10_2026", amount(25)),
		app(3, "20_10_2026", amount(30), paid),
		app(4, "21_10_2026", amount(99), cancelled),
		// unparsable date sorts last
		app(5, "broken", amount(5)),
		app(6, "19_10_2026", func(a *domain.Appointment) { a.SlotTime = "4:00 PM" }),
	}

	d := reports.Summarize(apps, now, reports.Options{Latest: 3})

	assert.Equal(t, 6, d.TotalAppointments)
	assert.Equal(t, 4, d.Scheduled)
	assert.Equal(t, 1, d.Completed)
	assert.Equal(t, 1, d.Cancelled)
	assert.Equal(t, 2, d.Upcoming)
	assert.Equal(t, 110.0, d.Revenue)
	assert.Equal(t, 70.0, d.PaidRevenue)
	assert.Equal(t, 40.0, d.UnpaidRevenue)
	assert.Len(t, d.Daily, domain.DefaultStatsDays)
	assert.Len(t, d.Monthly, domain.DefaultStatsMonths)

	require.Len(t, d.Latest, 3)
	assert.Equal(t, []int64{4, 3, 6}, []int64{d.Latest[0].ID, d.Latest[1].ID, d.Latest[2].ID})
}
