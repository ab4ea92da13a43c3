package lifecycle_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/lifecycle"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

var (
	admin    = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	stylist  = domain.Actor{UserID: 7, Role: domain.RoleStylist}
	customer = domain.Actor{UserID: 42, Role: domain.RoleCustomer}
)

func scheduled() *domain.Appointment {
	return &domain.Appointment{
		ID:         10,
		SalonID:    1,
		CustomerID: 42,
		StylistID:  7,
		SlotDate:   "19_10_2026",
		SlotTime:   "10:00 AM",
		Amount:     50,
	}
}

func settings() *domain.AvailabilitySettings {
	s := domain.DefaultAvailabilitySettings(1)
	s.CancellationLeadHours = 24
	return s
}

func TestCheckRescheduleEligibility_SameDayInsideLeadTime(t *testing.T) {
	now := time.Date(2026, time.October, 19, 8, 30, 0, 0, time.UTC)

	assert.False(t, lifecycle.CheckRescheduleEligibility(scheduled(), settings(), now))

	err := lifecycle.RescheduleEligibility(scheduled(), settings(), now)
	assert.ErrorIs(t, err, domain.ErrLeadTimeViolation)
}

func TestCheckRescheduleEligibility_GapMustStrictlyExceedLead(t *testing.T) {
	exactlyThree := time.Date(2026, time.October, 19, 7, 0, 0, 0, time.UTC)
	assert.False(t, lifecycle.CheckRescheduleEligibility(scheduled(), settings(), exactlyThree))

	justOver := exactlyThree.Add(-time.Minute)
	assert.True(t, lifecycle.CheckRescheduleEligibility(scheduled(), settings(), justOver))
}

func TestCheckRescheduleEligibility_Guards(t *testing.T) {
	now := time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC)

	used := scheduled()
	used.HasRescheduled = true
	assert.ErrorIs(t, lifecycle.RescheduleEligibility(used, settings(), now), domain.ErrRescheduleAlreadyUsed)

	disabled := settings()
	disabled.AllowRescheduling = false
	err := lifecycle.RescheduleEligibility(scheduled(), disabled, now)
	assert.ErrorIs(t, err, domain.ErrRescheduleDisabled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	broken := scheduled()
	broken.SlotTime = "25:00"
	assert.ErrorIs(t, lifecycle.RescheduleEligibility(broken, settings(), now), domain.ErrInvalidSlot)

	assert.True(t, lifecycle.CheckRescheduleEligibility(scheduled(), nil, now))
}

func TestCheckRescheduleEligibility_SalonTimezone(t *testing.T) {
	s := settings()
	s.Timezone = "Asia/Tokyo"
	// 10:00 AM in Tokyo is 01:00 UTC; at 21:30 UTC the day before the gap is 3.5h
	now := time.Date(2026, time.October, 18, 21, 30, 0, 0, time.UTC)
	assert.True(t, lifecycle.CheckRescheduleEligibility(scheduled(), s, now))

	now = time.Date(2026, time.October, 18, 22, 30, 0, 0, time.UTC)
	assert.False(t, lifecycle.CheckRescheduleEligibility(scheduled(), s, now))
}

func TestReschedule_OneTimeLaw(t *testing.T) {
	now := time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC)
	original := scheduled()

	moved, err := lifecycle.Reschedule(original, settings(), "21_10_2026", "2:30 pm", now)
	require.NoError(t, err)
	assert.Equal(t, types.DateKey("21_10_2026"), moved.SlotDate)
	assert.Equal(t, types.ClockTime("2:30 PM"), moved.SlotTime)
	assert.True(t, moved.HasRescheduled)
	assert.False(t, original.HasRescheduled, "input must not be modified")

	_, err = lifecycle.Reschedule(moved, settings(), "22_10_2026", "9:00 AM", now)
	assert.ErrorIs(t, err, domain.ErrRescheduleAlreadyUsed)
}

func TestReschedule_InvalidTarget(t *testing.T) {
	now := time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC)

	_, err := lifecycle.Reschedule(scheduled(), settings(), "32_10_2026", "9:00 AM", now)
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)

	_, err = lifecycle.Reschedule(scheduled(), settings(), "21_10_2026", "9:00", now)
	assert.ErrorIs(t, err, domain.ErrInvalidSlot)
}

func TestTerminalStatesRejectEveryTransition(t *testing.T) {
	now := time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC)

	cancelled := scheduled()
	cancelled.Cancelled = true
	cancelled.HasRescheduled = true

	completed := scheduled()
	completed.IsCompleted = true

	for name, app := range map[string]*domain.Appointment{"cancelled": cancelled, "completed": completed} {
		t.Run(name, func(t *testing.T) {
			_, err := lifecycle.Complete(app)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)

			_, err = lifecycle.Cancel(app, admin, settings(), now)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)

			_, err = lifecycle.Reschedule(app, settings(), "21_10_2026", "9:00 AM", now)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		})
	}

	_, err := lifecycle.UndoComplete(cancelled, admin)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestComplete_AndUndo(t *testing.T) {
	done, err := lifecycle.Complete(scheduled())
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, done.State())

	back, err := lifecycle.UndoComplete(done, stylist)
	require.NoError(t, err)
	assert.Equal(t, domain.StateScheduled, back.State())
	assert.True(t, done.IsCompleted)

	_, err = lifecycle.UndoComplete(done, customer)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = lifecycle.UndoComplete(scheduled(), admin)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_CustomerLeadTime(t *testing.T) {
	dayBefore := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	_, err := lifecycle.Cancel(scheduled(), customer, settings(), dayBefore)
	assert.ErrorIs(t, err, domain.ErrLeadTimeViolation)

	cancelled, err := lifecycle.Cancel(scheduled(), admin, settings(), dayBefore)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCancelled, cancelled.State())

	twoDaysBefore := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	_, err = lifecycle.Cancel(scheduled(), customer, settings(), twoDaysBefore)
	assert.NoError(t, err)

	noLimit := settings()
	noLimit.CancellationLeadHours = 0
	_, err = lifecycle.Cancel(scheduled(), customer, noLimit, dayBefore)
	assert.NoError(t, err)
}

func TestDiffRoundTrip(t *testing.T) {
	now := time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC)
	before := scheduled()

	after, err := lifecycle.Reschedule(before, settings(), "21_10_2026", "11:00 AM", now)
	require.NoError(t, err)

	patch := domain.Diff(before, after)
	assert.Nil(t, patch.Cancelled)
	assert.Equal(t, after, patch.Apply(before))
}
