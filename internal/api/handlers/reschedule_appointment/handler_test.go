package reschedule_appointment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	rescheduleHandler "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/reschedule_appointment"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	rescheduleAppointment "github.com/m04kA/SMC-SalonConsole/internal/usecase/reschedule_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	err error
	req *rescheduleAppointment.Request
}

func (u *fakeUseCase) Execute(_ context.Context, req *rescheduleAppointment.Request) (*rescheduleAppointment.Response, error) {
	u.req = req
	if u.err != nil {
		return nil, u.err
	}
	return &rescheduleAppointment.Response{
		Appointment: &domain.Appointment{
			ID: req.AppointmentID, SalonID: 7, StylistID: 20, CustomerID: 300,
			SlotDate: "23_10_2026", SlotTime: "2:30 PM", HasRescheduled: true,
		},
		PreviousDate: "22_10_2026",
		PreviousTime: "10:00 AM",
	}, nil
}

func serve(t *testing.T, uc *fakeUseCase, body string) (*httptest.ResponseRecorder, handlers.Envelope) {
	t.Helper()

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleHandler.NewHandler(uc, nopLogger{}).Handle).
		Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/appointments/5/reschedule", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "300")
	req.Header.Set(middleware.HeaderUserRole, "customer")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env handlers.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return rec, env
}

func TestHandle_Rescheduled(t *testing.T) {
	uc := &fakeUseCase{}

	rec, env := serve(t, uc, `{"slotDate":"23_10_2026","slotTime":"14:30"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), uc.req.AppointmentID)
	assert.Equal(t, "14:30", uc.req.SlotTime)
	assert.Equal(t, domain.RoleCustomer, uc.req.Actor.Role)

	data := env.Data.(map[string]interface{})
	assert.Equal(t, "22_10_2026", data["previousDate"])
	appointment := data["appointment"].(map[string]interface{})
	assert.Equal(t, "2:30 PM", appointment["slotTime"])
	assert.Equal(t, true, appointment["hasRescheduled"])
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrRescheduleAlreadyUsed, http.StatusConflict, handlers.CodeRescheduleAlreadyUsed},
		{domain.ErrLeadTimeViolation, http.StatusUnprocessableEntity, handlers.CodeLeadTimeViolation},
		{rescheduleAppointment.ErrSlotUnavailable, http.StatusConflict, handlers.CodeSlotUnavailable},
		{rescheduleAppointment.ErrInvalidInput, http.StatusBadRequest, handlers.CodeInvalidInput},
		{rescheduleAppointment.ErrAccessDenied, http.StatusForbidden, handlers.CodeForbidden},
		{rescheduleAppointment.ErrAppointmentNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{rescheduleAppointment.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec, env := serve(t, &fakeUseCase{err: tc.err}, `{"slotDate":"23_10_2026","slotTime":"2:30 PM"}`)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, env.Code)
		})
	}
}

func TestHandle_RejectsUnknownFields(t *testing.T) {
	uc := &fakeUseCase{}

	rec, env := serve(t, uc, `{"slotDate":"23_10_2026","slotTime":"2:30 PM","stylistId":3}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, handlers.CodeInvalidInput, env.Code)
	assert.Nil(t, uc.req)
}
