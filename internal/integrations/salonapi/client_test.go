package salonapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var session = salonapi.Session{Token: "secret", UserID: 1, Role: domain.RoleAdmin}

func writeEnvelope(w http.ResponseWriter, status int, env map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func newClient(t *testing.T, h http.HandlerFunc) *salonapi.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return salonapi.NewClient(salonapi.Config{
		BaseURL:     srv.URL,
		Timeout:     time.Second,
		MaxFailures: 2,
		OpenTimeout: time.Minute,
	}, nopLogger{})
}

func TestCancel_SendsIdentityAndDecodesAppointment(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/appointments/12/cancel", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "1", r.Header.Get("X-User-ID"))
		assert.Equal(t, "admin", r.Header.Get("X-User-Role"))
		assert.Len(t, r.Header.Get("X-Request-ID"), 36)

		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "ok",
			"data": map[string]interface{}{
				"id": 12, "salonId": 7, "stylistId": 20, "customerId": 300,
				"slotDate": "22_10_2026", "slotTime": "10:00 AM", "cancelled": true,
			},
		})
	})

	app, err := client.Cancel(context.Background(), session, 12)
	require.NoError(t, err)

	assert.Equal(t, int64(12), app.ID)
	assert.True(t, app.Cancelled)
	assert.Equal(t, types.DateKey("22_10_2026"), app.SlotDate)
	assert.Equal(t, domain.StateCancelled, app.State())
}

func TestRemoteErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		code   string
		target error
	}{
		{http.StatusConflict, "invalid_transition", domain.ErrInvalidTransition},
		{http.StatusConflict, "reschedule_already_used", domain.ErrRescheduleAlreadyUsed},
		{http.StatusUnprocessableEntity, "lead_time_violation", domain.ErrLeadTimeViolation},
		{http.StatusConflict, "slot_unavailable", domain.ErrRemoteRejected},
		{http.StatusForbidden, "forbidden", domain.ErrRemoteRejected},
		{http.StatusNotFound, "not_found", domain.ErrAppointmentNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(w, tc.status, map[string]interface{}{"success": false, "message": "nope", "code": tc.code})
			})

			_, err := client.Complete(context.Background(), session, 3)

			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)
			assert.False(t, domain.IsRetryable(err))

			var remote *salonapi.RemoteError
			require.True(t, errors.As(err, &remote))
			assert.Equal(t, tc.status, remote.Status)
		})
	}
}

func TestServerFailure_IsUnavailable(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "code": "internal"})
	})

	_, err := client.UndoComplete(context.Background(), session, 3)

	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.True(t, domain.IsRetryable(err))
}

func TestCircuitBreaker_OpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.Cancel(ctx, session, 1)
		require.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	}

	_, err := client.Cancel(ctx, session, 1)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCircuitBreaker_IgnoresRejections(t *testing.T) {
	var calls atomic.Int32
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeEnvelope(w, http.StatusConflict, map[string]interface{}{"success": false, "code": "invalid_transition"})
	})

	for i := 0; i < 4; i++ {
		_, err := client.Cancel(context.Background(), session, 1)
		require.ErrorIs(t, err, domain.ErrInvalidTransition)
	}
	assert.Equal(t, int32(4), calls.Load())
}

func TestReschedule_SendsSlot(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "23_10_2026", body["slotDate"])
		assert.Equal(t, "2:30 PM", body["slotTime"])

		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"appointment": map[string]interface{}{
					"id": 5, "slotDate": body["slotDate"], "slotTime": body["slotTime"], "hasRescheduled": true,
				},
				"previousDate": "22_10_2026",
				"previousTime": "10:00 AM",
			},
		})
	})

	app, err := client.Reschedule(context.Background(), session, 5, "23_10_2026", "2:30 PM")
	require.NoError(t, err)
	assert.True(t, app.HasRescheduled)
	assert.Equal(t, types.ClockTime("2:30 PM"), app.SlotTime)
}

func TestGetCalendar_ConvertsToDomain(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/salons/7/availability", r.URL.Path)
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"settings": map[string]interface{}{
					"salonId": 7, "slotStartTime": "09:00", "slotEndTime": "17:00", "slotDurationMinutes": 30,
					"breakEnabled": true, "breakStartTime": "13:00", "breakEndTime": "14:00",
					"daysOpen": []string{"Monday", "Tuesday"}, "allowRescheduling": true, "rescheduleLeadHours": 3,
					"timezone": "Europe/Moscow",
				},
				"blockedDates": []map[string]interface{}{{"id": 1, "date": "24_12_2026", "reason": "Inventory"}},
				"holidays": []map[string]interface{}{
					{"id": 2, "name": "Staff day", "kind": "monthly", "dayOfMonth": 15},
					{"id": 3, "name": "Wednesday off", "kind": "weekly", "weekday": "Wednesday"},
				},
				"specialDays": []map[string]interface{}{{"id": 4, "date": "27_12_2026", "note": "Holiday rush"}},
			},
		})
	})

	cal, err := client.GetCalendar(context.Background(), session, 7)
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("13:00"), cal.Settings.BreakStartTime)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday}, cal.Settings.DaysOpen)
	require.Len(t, cal.BlockedDates, 1)
	assert.Equal(t, types.DateKey("24_12_2026"), cal.BlockedDates[0].Date)
	require.Len(t, cal.Holidays, 2)
	assert.Equal(t, 15, cal.Holidays[0].DayOfMonth)
	assert.Equal(t, time.Wednesday, cal.Holidays[1].Weekday)
	require.Len(t, cal.SpecialDays, 1)
}

func TestListAppointments_Query(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("stylistId"))
		assert.Equal(t, "true", r.URL.Query().Get("includeCancelled"))
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": map[string]interface{}{
				"appointments": []map[string]interface{}{
					{"id": 1, "slotDate": "22_10_2026", "slotTime": "10:00 AM"},
					{"id": 2, "slotDate": "23_10_2026", "slotTime": "11:00 AM", "cancelled": true},
				},
				"total": 2,
			},
		})
	})

	apps, err := client.ListAppointments(context.Background(), session, 7, salonapi.ListOptions{StylistID: 20, IncludeCancelled: true})
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.True(t, apps[1].Cancelled)
}
