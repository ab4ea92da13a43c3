package update_completion_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonConsole/internal/api/handlers"
	updateCompletion "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/update_completion"
	"github.com/m04kA/SMC-SalonConsole/internal/api/middleware"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err   error
	calls []string
}

func (s *fakeService) Complete(_ context.Context, _ domain.Actor, id int64) (*models.AppointmentResponse, error) {
	s.calls = append(s.calls, "complete")
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentResponse{ID: id, IsCompleted: true, State: string(domain.StateCompleted)}, nil
}

func (s *fakeService) UndoComplete(_ context.Context, _ domain.Actor, id int64) (*models.AppointmentResponse, error) {
	s.calls = append(s.calls, "undo")
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentResponse{ID: id, State: string(domain.StateScheduled)}, nil
}

func serve(t *testing.T, svc *fakeService, path string) (*httptest.ResponseRecorder, handlers.Envelope) {
	t.Helper()

	h := updateCompletion.NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/appointments/{appointmentId}/complete", h.HandleComplete).Methods(http.MethodPatch)
	r.HandleFunc("/appointments/{appointmentId}/incomplete", h.HandleUndo).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, nil)
	req.Header.Set(middleware.HeaderUserID, "20")
	req.Header.Set(middleware.HeaderUserRole, "stylist")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body handlers.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

func TestHandle_CompleteAndUndo(t *testing.T) {
	svc := &fakeService{}

	rec, body := serve(t, svc, "/appointments/5/complete")
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "completed", data["state"])

	rec, body = serve(t, svc, "/appointments/5/incomplete")
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok = body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "scheduled", data["state"])

	assert.Equal(t, []string{"complete", "undo"}, svc.calls)
}

func TestHandle_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidTransition, http.StatusConflict, handlers.CodeInvalidTransition},
		{appointments.ErrAppointmentNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{appointments.ErrAccessDenied, http.StatusForbidden, handlers.CodeForbidden},
		{appointments.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			rec, body := serve(t, &fakeService{err: tc.err}, "/appointments/5/complete")

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}
