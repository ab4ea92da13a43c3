package get_dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	getDashboard "github.com/m04kA/SMC-SalonConsole/internal/usecase/get_dashboard"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeSettings struct{}

func (fakeSettings) GetSettings(_ context.Context, salonID int64) (*domain.AvailabilitySettings, bool, error) {
	return domain.DefaultAvailabilitySettings(salonID), true, nil
}

type fakeRepo struct {
	apps       []*domain.Appointment
	lastFilter domain.AppointmentsFilter
}

func (r *fakeRepo) List(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.lastFilter = filter
	result := make([]*domain.Appointment, 0, len(r.apps))
	for _, app := range r.apps {
		if filter.StylistID != nil && app.StylistID != *filter.StylistID {
			continue
		}
		result = append(result, app)
	}
	return result, nil
}

func (r *fakeRepo) ListStylists(context.Context, int64) ([]domain.Stylist, error) {
	return []domain.Stylist{
		{ID: 20, SalonID: 7, Name: "Anna"},
		{ID: 21, SalonID: 7, Name: "Boris"},
		{ID: 22, SalonID: 7, Name: "Vera"},
	}, nil
}

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func fixture() (*getDashboard.UseCase, *fakeRepo) {
	repo := &fakeRepo{apps: []*domain.Appointment{
		{ID: 1, SalonID: 7, CustomerID: 300, StylistID: 20, ServiceDescription: "Haircut", SlotDate: "10_10_2026", SlotTime: "9:00 AM", Amount: 40, Payment: true, IsCompleted: true},
		{ID: 2, SalonID: 7, CustomerID: 301, StylistID: 21, ServiceDescription: "Coloring", SlotDate: "12_10_2026", SlotTime: "11:00 AM", Amount: 90, IsCompleted: true},
		{ID: 3, SalonID: 7, CustomerID: 300, StylistID: 20, ServiceDescription: "Haircut", SlotDate: "22_10_2026", SlotTime: "10:00 AM", Amount: 40},
		{ID: 4, SalonID: 7, CustomerID: 302, StylistID: 21, ServiceDescription: "Haircut", SlotDate: "15_10_2026", SlotTime: "1:00 PM", Amount: 40, Cancelled: true},
	}}
	return getDashboard.NewUseCase(repo, fakeSettings{}, fixedClock{now: now}, nopLogger{}), repo
}

func TestExecute_AdminSeesSalon(t *testing.T) {
	uc, repo := fixture()

	resp, err := uc.Execute(context.Background(), &getDashboard.Request{
		SalonID: 7, Actor: domain.Actor{UserID: 1, Role: domain.RoleAdmin}, Days: 14, Months: 3, TopN: 1,
	})
	require.NoError(t, err)

	assert.True(t, repo.lastFilter.IncludeCancelled)
	assert.Equal(t, getDashboard.ScopeSalon, resp.Scope)
	assert.Equal(t, "UTC", resp.Timezone)

	d := resp.Dashboard
	assert.Equal(t, 4, d.TotalAppointments)
	assert.Equal(t, 2, d.Completed)
	assert.Equal(t, 1, d.Cancelled)
	assert.Equal(t, 1, d.Upcoming)
	assert.InDelta(t, 170.0, d.Revenue, 0.001)
	assert.InDelta(t, 40.0, d.PaidRevenue, 0.001)
	assert.Len(t, d.Daily, 14)
	assert.Len(t, d.Monthly, 3)
	require.Len(t, d.TopServices, 1)
	assert.Equal(t, "Haircut", d.TopServices[0].Service)
	require.Len(t, d.Stylists, 3)
	assert.Equal(t, "Vera", d.Stylists[2].StylistName)
	assert.Equal(t, 0, d.Stylists[2].Total)
}

func TestExecute_StylistSeesOwn(t *testing.T) {
	uc, repo := fixture()

	resp, err := uc.Execute(context.Background(), &getDashboard.Request{
		SalonID: 7, Actor: domain.Actor{UserID: 20, Role: domain.RoleStylist},
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.StylistID)
	assert.Equal(t, int64(20), *repo.lastFilter.StylistID)
	assert.Equal(t, getDashboard.ScopeStylist, resp.Scope)
	assert.Equal(t, 2, resp.Dashboard.TotalAppointments)
	require.Len(t, resp.Dashboard.Stylists, 1)
	assert.Equal(t, "Anna", resp.Dashboard.Stylists[0].StylistName)
	assert.Len(t, resp.Dashboard.Daily, domain.DefaultStatsDays)
}

func TestExecute_Rejections(t *testing.T) {
	uc, _ := fixture()
	ctx := context.Background()
	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	_, err := uc.Execute(ctx, &getDashboard.Request{SalonID: 7, Actor: domain.Actor{UserID: 300, Role: domain.RoleCustomer}})
	assert.ErrorIs(t, err, getDashboard.ErrAccessDenied)

	_, err = uc.Execute(ctx, &getDashboard.Request{SalonID: 7, Actor: admin, Months: domain.MaxStatsMonths + 1})
	assert.ErrorIs(t, err, getDashboard.ErrInvalidInput)

	_, err = uc.Execute(ctx, &getDashboard.Request{SalonID: 7, Actor: admin, Days: -1})
	assert.ErrorIs(t, err, getDashboard.ErrInvalidInput)
}
