package get_appointments_test

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
	getAppointments "github.com/m04kA/SMC-SalonConsole/internal/api/handlers/get_appointments"
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
	err  error
	last *models.ListRequest
}

func (s *fakeService) List(_ context.Context, _ domain.Actor, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentListResponse{
		Appointments: []models.AppointmentResponse{{ID: 1, SalonID: req.SalonID}},
		Total:        1,
	}, nil
}

func serve(t *testing.T, svc *fakeService, path string) (*httptest.ResponseRecorder, handlers.Envelope) {
	t.Helper()

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/salons/{salonId}/appointments", getAppointments.NewHandler(svc, nopLogger{}).Handle).
		Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(middleware.HeaderUserID, "1")
	req.Header.Set(middleware.HeaderUserRole, "admin")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body handlers.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

func TestHandle_Filters(t *testing.T) {
	svc := &fakeService{}

	rec, body := serve(t, svc, "/salons/7/appointments?stylistId=20&includeCancelled=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)
	require.NotNil(t, svc.last.StylistID)
	assert.Equal(t, int64(20), *svc.last.StylistID)
	assert.True(t, svc.last.IncludeCancelled)
	assert.Equal(t, int64(7), svc.last.SalonID)

	_, _ = serve(t, svc, "/salons/7/appointments")
	assert.Nil(t, svc.last.StylistID)
	assert.False(t, svc.last.IncludeCancelled)
}

func TestHandle_Rejections(t *testing.T) {
	cases := map[string]struct {
		path   string
		err    error
		status int
	}{
		"negative stylist": {"/salons/7/appointments?stylistId=-1", nil, http.StatusBadRequest},
		"bad flag":         {"/salons/7/appointments?includeCancelled=maybe", nil, http.StatusBadRequest},
		"bad salon":        {"/salons/x/appointments", nil, http.StatusBadRequest},
		"access denied":    {"/salons/7/appointments", appointments.ErrAccessDenied, http.StatusForbidden},
		"internal":         {"/salons/7/appointments", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec, body := serve(t, &fakeService{err: tc.err}, tc.path)

			assert.Equal(t, tc.status, rec.Code)
			assert.False(t, body.Success)
		})
	}
}
