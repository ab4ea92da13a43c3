package salonapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

const (
	apiPrefix       = "/api/v1"
	maxResponseBody = 4 << 20

	headerUserID    = "X-User-ID"
	headerUserRole  = "X-User-Role"
	headerRequestID = "X-Request-ID"
)

// Config настройки клиента
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxFailures uint32        // подряд идущих отказов до размыкания breaker
	OpenTimeout time.Duration // сколько breaker остаётся разомкнутым
}

// Client клиент REST API salon-console
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*envelope]
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(cfg Config, log Logger) *Client {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*envelope](gobreaker.Settings{
		Name:        "salon-console",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// Бизнес-отказ означает, что сервис отвечает
		IsSuccessful: func(err error) bool {
			var remote *RemoteError
			return err == nil || errors.As(err, &remote) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("salonapi: circuit breaker %s changed state from %s to %s", name, from, to)
		},
	})

	return c
}

// GetCalendar получает настройки и календарь салона
func (c *Client) GetCalendar(ctx context.Context, s Session, salonID int64) (*domain.SalonCalendar, error) {
	var resp calendarResponse
	path := fmt.Sprintf("/salons/%d/availability", salonID)
	if err := c.do(ctx, s, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain()
}

// ListOptions фильтры списка записей
type ListOptions struct {
	StylistID        int64 // 0 = все мастера
	IncludeCancelled bool
}

// ListAppointments получает записи салона
func (c *Client) ListAppointments(ctx context.Context, s Session, salonID int64, opts ListOptions) ([]*domain.Appointment, error) {
	query := url.Values{}
	if opts.StylistID > 0 {
		query.Set("stylistId", strconv.FormatInt(opts.StylistID, 10))
	}
	if opts.IncludeCancelled {
		query.Set("includeCancelled", "true")
	}

	var resp appointmentList
	path := fmt.Sprintf("/salons/%d/appointments", salonID)
	if err := c.do(ctx, s, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}

	apps := make([]*domain.Appointment, 0, len(resp.Appointments))
	for i := range resp.Appointments {
		app, err := resp.Appointments[i].ToDomain()
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// AvailableSlots получает слоты мастера на дату, включая занятые
func (c *Client) AvailableSlots(ctx context.Context, s Session, salonID, stylistID int64, date types.DateKey) (*Slots, error) {
	query := url.Values{}
	query.Set("date", date.String())
	query.Set("includeUnavailable", "true")

	var resp Slots
	path := fmt.Sprintf("/salons/%d/stylists/%d/available-slots", salonID, stylistID)
	if err := c.do(ctx, s, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Cancel отменяет запись
func (c *Client) Cancel(ctx context.Context, s Session, appointmentID int64) (*domain.Appointment, error) {
	return c.transition(ctx, s, appointmentID, "cancel")
}

// Complete отмечает запись выполненной
func (c *Client) Complete(ctx context.Context, s Session, appointmentID int64) (*domain.Appointment, error) {
	return c.transition(ctx, s, appointmentID, "complete")
}

// UndoComplete снимает отметку о выполнении
func (c *Client) UndoComplete(ctx context.Context, s Session, appointmentID int64) (*domain.Appointment, error) {
	return c.transition(ctx, s, appointmentID, "incomplete")
}

// Reschedule переносит запись на другой слот
func (c *Client) Reschedule(
	ctx context.Context,
	s Session,
	appointmentID int64,
	date types.DateKey,
	clock types.ClockTime,
) (*domain.Appointment, error) {
	body := rescheduleRequest{SlotDate: date.String(), SlotTime: clock.String()}

	var resp rescheduleResult
	path := fmt.Sprintf("/appointments/%d/reschedule", appointmentID)
	if err := c.do(ctx, s, http.MethodPatch, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return resp.Appointment.ToDomain()
}

// DashboardQuery параметры статистики, 0 = значение по умолчанию сервиса
type DashboardQuery struct {
	Days   int
	Months int
	TopN   int
}

// Dashboard получает статистику салона
func (c *Client) Dashboard(ctx context.Context, s Session, salonID int64, q DashboardQuery) (*Dashboard, error) {
	query := url.Values{}
	for name, value := range map[string]int{"days": q.Days, "months": q.Months, "top": q.TopN} {
		if value > 0 {
			query.Set(name, strconv.Itoa(value))
		}
	}

	var resp Dashboard
	path := fmt.Sprintf("/salons/%d/dashboard", salonID)
	if err := c.do(ctx, s, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) transition(ctx context.Context, s Session, appointmentID int64, action string) (*domain.Appointment, error) {
	var resp Appointment
	path := fmt.Sprintf("/appointments/%d/%s", appointmentID, action)
	if err := c.do(ctx, s, http.MethodPatch, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain()
}

// do выполняет запрос через circuit breaker и раскладывает data из конверта в out
func (c *Client) do(
	ctx context.Context,
	s Session,
	method, path string,
	query url.Values,
	body, out interface{},
) error {
	env, err := c.breaker.Execute(func() (*envelope, error) {
		return c.roundTrip(ctx, s, method, path, query, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.log.Warn("salonapi: %s %s rejected by circuit breaker", method, path)
			return unavailable("%s %s: %v", method, path, err)
		}
		return err
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %s %s - failed to decode data: %v", ErrInvalidResponse, method, path, err)
	}
	return nil
}

func (c *Client) roundTrip(
	ctx context.Context,
	s Session,
	method, path string,
	query url.Values,
	body interface{},
) (*envelope, error) {
	target := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerUserID, strconv.FormatInt(s.UserID, 10))
	req.Header.Set(headerUserRole, string(s.Role))
	req.Header.Set(headerRequestID, requestID)
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("salonapi: %s %s failed: request_id=%s, error=%v", method, path, requestID, err)
		return nil, unavailable("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, unavailable("%s %s: failed to read response: %v", method, path, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	// Обработка статус-кодов
	switch {
	case isServerFailure(resp.StatusCode):
		c.log.Error("salonapi: %s %s - server failure: request_id=%s, status=%d", method, path, requestID, resp.StatusCode)
		return nil, unavailable("%s %s: status %d", method, path, resp.StatusCode)
	case decodeErr != nil:
		return nil, fmt.Errorf("%w: %s %s - status %d: %v", ErrInvalidResponse, method, path, resp.StatusCode, decodeErr)
	case !env.Success || resp.StatusCode >= http.StatusBadRequest:
		c.log.Warn("salonapi: %s %s - rejected: request_id=%s, status=%d, code=%s, message=%s",
			method, path, requestID, resp.StatusCode, env.Code, env.Message)
		return nil, newRemoteError(resp.StatusCode, env.Code, env.Message)
	}

	return &env, nil
}
