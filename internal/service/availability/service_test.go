package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SalonConsole/internal/infra/storage/calendar"
	settingsRepo "github.com/m04kA/SMC-SalonConsole/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability/models"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSettingsRepo struct {
	saved *domain.AvailabilitySettings
	err   error
}

func (r *fakeSettingsRepo) GetBySalonID(_ context.Context, _ int64) (*domain.AvailabilitySettings, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.saved == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return r.saved, nil
}

func (r *fakeSettingsRepo) Upsert(_ context.Context, s *domain.AvailabilitySettings) (*domain.AvailabilitySettings, error) {
	r.saved = s
	return s, nil
}

type fakeCalendarRepo struct {
	blocked  []domain.BlockedDate
	holidays []domain.RecurringHoliday
	special  []domain.SpecialWorkingDay
}

func (r *fakeCalendarRepo) ListBlockedDates(context.Context, int64) ([]domain.BlockedDate, error) {
	return r.blocked, nil
}

func (r *fakeCalendarRepo) AddBlockedDate(_ context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error) {
	for _, existing := range r.blocked {
		if existing.Date.Equal(b.Date) {
			return nil, calendarRepo.ErrDuplicateDate
		}
	}
	saved := *b
	saved.ID = int64(len(r.blocked) + 1)
	r.blocked = append(r.blocked, saved)
	return &saved, nil
}

func (r *fakeCalendarRepo) DeleteBlockedDate(_ context.Context, _ int64, date types.DateKey) error {
	for i, b := range r.blocked {
		if b.Date.Equal(date) {
			r.blocked = append(r.blocked[:i], r.blocked[i+1:]...)
			return nil
		}
	}
	return calendarRepo.ErrBlockedDateNotFound
}

func (r *fakeCalendarRepo) ListHolidays(context.Context, int64) ([]domain.RecurringHoliday, error) {
	return r.holidays, nil
}

func (r *fakeCalendarRepo) AddHoliday(_ context.Context, h *domain.RecurringHoliday) (*domain.RecurringHoliday, error) {
	saved := *h
	saved.ID = int64(len(r.holidays) + 1)
	r.holidays = append(r.holidays, saved)
	return &saved, nil
}

func (r *fakeCalendarRepo) DeleteHoliday(context.Context, int64, int64) error {
	return calendarRepo.ErrHolidayNotFound
}

func (r *fakeCalendarRepo) ListSpecialDays(context.Context, int64) ([]domain.SpecialWorkingDay, error) {
	return r.special, nil
}

func (r *fakeCalendarRepo) AddSpecialDay(_ context.Context, d *domain.SpecialWorkingDay) (*domain.SpecialWorkingDay, error) {
	saved := *d
	r.special = append(r.special, saved)
	return &saved, nil
}

func (r *fakeCalendarRepo) DeleteSpecialDay(context.Context, int64, types.DateKey) error {
	return nil
}

var admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}

func validRequest() *models.SettingsRequest {
	return &models.SettingsRequest{
		SlotStartTime:       "9:00",
		SlotEndTime:         "17:00",
		SlotDurationMinutes: 30,
		BreakEnabled:        true,
		BreakStartTime:      "13:00",
		BreakEndTime:        "14:00",
		DaysOpen:            []string{"mon", "Tuesday", "MONDAY"},
		BookingWindowStart:  "01_10_2026",
		AllowRescheduling:   true,
		RescheduleLeadHours: 3,
		Timezone:            "UTC",
	}
}

func newService() (*availability.Service, *fakeSettingsRepo, *fakeCalendarRepo) {
	settings := &fakeSettingsRepo{}
	cal := &fakeCalendarRepo{}
	return availability.NewService(settings, cal, nopLogger{}), settings, cal
}

func TestGetAvailability_DefaultsWhenNeverSaved(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetAvailability(context.Background(), 7)
	require.NoError(t, err)

	assert.True(t, resp.Settings.IsDefault)
	assert.Equal(t, "09:00", resp.Settings.SlotStartTime)
	assert.Equal(t, "17:00", resp.Settings.SlotEndTime)
	assert.Equal(t, 30, resp.Settings.SlotDurationMinutes)
	assert.Equal(t, 3, resp.Settings.RescheduleLeadHours)
	assert.Len(t, resp.Settings.DaysOpen, 6)
	assert.NotNil(t, resp.BlockedDates)
}

func TestGetSettings_RepositoryFailure(t *testing.T) {
	svc := availability.NewService(&fakeSettingsRepo{err: errors.New("db down")}, &fakeCalendarRepo{}, nopLogger{})

	_, _, err := svc.GetSettings(context.Background(), 1)
	assert.ErrorIs(t, err, availability.ErrInternal)
}

func TestSaveSettings(t *testing.T) {
	svc, repo, _ := newService()

	resp, err := svc.SaveSettings(context.Background(), admin, 7, validRequest())
	require.NoError(t, err)

	assert.False(t, resp.IsDefault)
	assert.Equal(t, []string{"Monday", "Tuesday"}, resp.DaysOpen)
	assert.Equal(t, "1_10_2026", resp.BookingWindowStart)
	require.NotNil(t, repo.saved)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday}, repo.saved.DaysOpen)
	assert.Equal(t, types.TimeString("09:00"), repo.saved.SlotStartTime)
}

func TestSaveSettings_AdminOnly(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.SaveSettings(context.Background(), domain.Actor{UserID: 2, Role: domain.RoleStylist}, 7, validRequest())

	assert.ErrorIs(t, err, availability.ErrAccessDenied)
	assert.Nil(t, repo.saved)
}

func TestSaveSettings_Validation(t *testing.T) {
	cases := map[string]func(r *models.SettingsRequest){
		"end before start":     func(r *models.SettingsRequest) { r.SlotEndTime = "08:00" },
		"duration too small":   func(r *models.SettingsRequest) { r.SlotDurationMinutes = 2 },
		"duration over window": func(r *models.SettingsRequest) { r.SlotEndTime = "09:20" },
		"break outside window": func(r *models.SettingsRequest) { r.BreakEndTime = "18:00" },
		"empty break":          func(r *models.SettingsRequest) { r.BreakEndTime = "13:00" },
		"unknown weekday":      func(r *models.SettingsRequest) { r.DaysOpen = []string{"Funday"} },
		"bad window date":      func(r *models.SettingsRequest) { r.BookingWindowStart = "31_2_2026" },
		"window reversed":      func(r *models.SettingsRequest) { r.BookingWindowEnd = "1_9_2026" },
		"advance days":         func(r *models.SettingsRequest) { r.MaxAdvanceBookingDays = 400 },
		"negative lead":        func(r *models.SettingsRequest) { r.MinBookingLeadHours = -1 },
		"unknown timezone":     func(r *models.SettingsRequest) { r.Timezone = "Mars/Olympus" },
		"bad clock":            func(r *models.SettingsRequest) { r.SlotStartTime = "nine" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _, _ := newService()
			req := validRequest()
			mutate(req)

			_, err := svc.SaveSettings(context.Background(), admin, 7, req)
			assert.ErrorIs(t, err, availability.ErrInvalidInput)
		})
	}
}

func TestBlockedDates(t *testing.T) {
	svc, _, cal := newService()
	ctx := context.Background()

	resp, err := svc.AddBlockedDate(ctx, admin, 7, &models.BlockedDateRequest{Date: "24_12_2026", Reason: "Christmas Eve"})
	require.NoError(t, err)
	assert.Equal(t, "24_12_2026", resp.Date)

	_, err = svc.AddBlockedDate(ctx, admin, 7, &models.BlockedDateRequest{Date: "24_12_2026"})
	assert.ErrorIs(t, err, availability.ErrAlreadyExists)

	_, err = svc.AddBlockedDate(ctx, admin, 7, &models.BlockedDateRequest{Date: "2026-12-24"})
	assert.ErrorIs(t, err, availability.ErrInvalidInput)

	require.NoError(t, svc.RemoveBlockedDate(ctx, admin, 7, "24_12_2026"))
	assert.Empty(t, cal.blocked)

	assert.ErrorIs(t, svc.RemoveBlockedDate(ctx, admin, 7, "24_12_2026"), availability.ErrNotFound)
	assert.ErrorIs(t, svc.RemoveBlockedDate(ctx, domain.Actor{Role: domain.RoleCustomer}, 7, "24_12_2026"), availability.ErrAccessDenied)
}

func TestAddHoliday(t *testing.T) {
	svc, _, cal := newService()
	ctx := context.Background()

	resp, err := svc.AddHoliday(ctx, admin, 7, &models.HolidayRequest{Name: " Sundays ", Kind: "weekly", Weekday: "sun"})
	require.NoError(t, err)
	assert.Equal(t, "Sunday", resp.Weekday)
	assert.Equal(t, "Sundays", cal.holidays[0].Name)

	_, err = svc.AddHoliday(ctx, admin, 7, &models.HolidayRequest{Name: "Inventory", Kind: "monthly", DayOfMonth: 32})
	assert.ErrorIs(t, err, availability.ErrInvalidInput)

	_, err = svc.AddHoliday(ctx, admin, 7, &models.HolidayRequest{Name: "x", Kind: "yearly"})
	assert.ErrorIs(t, err, availability.ErrInvalidInput)

	assert.ErrorIs(t, svc.RemoveHoliday(ctx, admin, 7, 99), availability.ErrNotFound)
}
