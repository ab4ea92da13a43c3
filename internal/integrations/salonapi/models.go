package salonapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// envelope общий формат ответа сервиса
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Appointment запись в формате API
type Appointment struct {
	ID                 int64     `json:"id"`
	SalonID            int64     `json:"salonId"`
	CustomerID         int64     `json:"customerId"`
	StylistID          int64     `json:"stylistId"`
	CustomerName       string    `json:"customerName"`
	StylistName        string    `json:"stylistName"`
	ServiceDescription string    `json:"serviceDescription"`
	SlotDate           string    `json:"slotDate"`
	SlotTime           string    `json:"slotTime"`
	Amount             float64   `json:"amount"`
	Payment            bool      `json:"payment"`
	IsCompleted        bool      `json:"isCompleted"`
	Cancelled          bool      `json:"cancelled"`
	HasRescheduled     bool      `json:"hasRescheduled"`
	State              string    `json:"state"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ToDomain конвертирует запись в domain модель
func (a *Appointment) ToDomain() (*domain.Appointment, error) {
	date, err := types.ParseDateKey(a.SlotDate)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment id=%d slotDate: %v", ErrInvalidResponse, a.ID, err)
	}
	clock, err := types.ParseClockTime(a.SlotTime)
	if err != nil {
		return nil, fmt.Errorf("%w: appointment id=%d slotTime: %v", ErrInvalidResponse, a.ID, err)
	}
	return &domain.Appointment{
		ID:                 a.ID,
		SalonID:            a.SalonID,
		CustomerID:         a.CustomerID,
		StylistID:          a.StylistID,
		CustomerName:       a.CustomerName,
		StylistName:        a.StylistName,
		ServiceDescription: a.ServiceDescription,
		SlotDate:           date,
		SlotTime:           clock,
		Amount:             a.Amount,
		Payment:            a.Payment,
		IsCompleted:        a.IsCompleted,
		Cancelled:          a.Cancelled,
		HasRescheduled:     a.HasRescheduled,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}, nil
}

type appointmentList struct {
	Appointments []Appointment `json:"appointments"`
	Total        int           `json:"total"`
}

type rescheduleRequest struct {
	SlotDate string `json:"slotDate"`
	SlotTime string `json:"slotTime"`
}

type rescheduleResult struct {
	Appointment  Appointment `json:"appointment"`
	PreviousDate string      `json:"previousDate"`
	PreviousTime string      `json:"previousTime"`
}

// Settings настройки доступности в формате API
type Settings struct {
	SalonID               int64    `json:"salonId"`
	SlotStartTime         string   `json:"slotStartTime"`
	SlotEndTime           string   `json:"slotEndTime"`
	SlotDurationMinutes   int      `json:"slotDurationMinutes"`
	BreakEnabled          bool     `json:"breakEnabled"`
	BreakStartTime        string   `json:"breakStartTime,omitempty"`
	BreakEndTime          string   `json:"breakEndTime,omitempty"`
	DaysOpen              []string `json:"daysOpen"`
	BookingWindowStart    string   `json:"bookingWindowStart,omitempty"`
	BookingWindowEnd      string   `json:"bookingWindowEnd,omitempty"`
	MaxAdvanceBookingDays int      `json:"maxAdvanceBookingDays"`
	MinBookingLeadHours   int      `json:"minBookingLeadHours"`
	AllowRescheduling     bool     `json:"allowRescheduling"`
	RescheduleLeadHours   int      `json:"rescheduleLeadHours"`
	CancellationLeadHours int      `json:"cancellationLeadHours"`
	Timezone              string   `json:"timezone,omitempty"`
	IsDefault             bool     `json:"isDefault"`
}

type blockedDate struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type holiday struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Weekday    string `json:"weekday,omitempty"`
	DayOfMonth int    `json:"dayOfMonth,omitempty"`
}

type specialDay struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}

type calendarResponse struct {
	Settings     Settings      `json:"settings"`
	BlockedDates []blockedDate `json:"blockedDates"`
	Holidays     []holiday     `json:"holidays"`
	SpecialDays  []specialDay  `json:"specialDays"`
}

// toDomain собирает календарь салона
func (r *calendarResponse) toDomain() (*domain.SalonCalendar, error) {
	settings, err := r.Settings.toDomain()
	if err != nil {
		return nil, err
	}

	cal := &domain.SalonCalendar{
		Settings:     settings,
		BlockedDates: make([]domain.BlockedDate, 0, len(r.BlockedDates)),
		Holidays:     make([]domain.RecurringHoliday, 0, len(r.Holidays)),
		SpecialDays:  make([]domain.SpecialWorkingDay, 0, len(r.SpecialDays)),
	}

	for _, b := range r.BlockedDates {
		date, err := types.ParseDateKey(b.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: blocked date: %v", ErrInvalidResponse, err)
		}
		cal.BlockedDates = append(cal.BlockedDates, domain.BlockedDate{
			ID: b.ID, SalonID: settings.SalonID, Date: date, Reason: b.Reason,
		})
	}

	for _, h := range r.Holidays {
		rule := domain.RecurringHoliday{ID: h.ID, SalonID: settings.SalonID, Name: h.Name, Kind: domain.HolidayKind(h.Kind)}
		switch rule.Kind {
		case domain.HolidayWeekly:
			if rule.Weekday, err = domain.ParseWeekday(h.Weekday); err != nil {
				return nil, fmt.Errorf("%w: holiday id=%d: %v", ErrInvalidResponse, h.ID, err)
			}
		case domain.HolidayMonthly:
			rule.DayOfMonth = h.DayOfMonth
		default:
			return nil, fmt.Errorf("%w: holiday id=%d has unknown kind %q", ErrInvalidResponse, h.ID, h.Kind)
		}
		cal.Holidays = append(cal.Holidays, rule)
	}

	for _, d := range r.SpecialDays {
		date, err := types.ParseDateKey(d.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: special day: %v", ErrInvalidResponse, err)
		}
		cal.SpecialDays = append(cal.SpecialDays, domain.SpecialWorkingDay{
			ID: d.ID, SalonID: settings.SalonID, Date: date, Note: d.Note,
		})
	}

	return cal, nil
}

func (s *Settings) toDomain() (*domain.AvailabilitySettings, error) {
	out := &domain.AvailabilitySettings{
		SalonID:               s.SalonID,
		SlotDurationMinutes:   s.SlotDurationMinutes,
		BreakEnabled:          s.BreakEnabled,
		MaxAdvanceBookingDays: s.MaxAdvanceBookingDays,
		MinBookingLeadHours:   s.MinBookingLeadHours,
		AllowRescheduling:     s.AllowRescheduling,
		RescheduleLeadHours:   s.RescheduleLeadHours,
		CancellationLeadHours: s.CancellationLeadHours,
		Timezone:              s.Timezone,
		DaysOpen:              make([]time.Weekday, 0, len(s.DaysOpen)),
	}

	var err error
	if out.SlotStartTime, err = types.NewTimeStringFromString(s.SlotStartTime); err != nil {
		return nil, fmt.Errorf("%w: slotStartTime: %v", ErrInvalidResponse, err)
	}
	if out.SlotEndTime, err = types.NewTimeStringFromString(s.SlotEndTime); err != nil {
		return nil, fmt.Errorf("%w: slotEndTime: %v", ErrInvalidResponse, err)
	}
	if s.BreakStartTime != "" {
		if out.BreakStartTime, err = types.NewTimeStringFromString(s.BreakStartTime); err != nil {
			return nil, fmt.Errorf("%w: breakStartTime: %v", ErrInvalidResponse, err)
		}
	}
	if s.BreakEndTime != "" {
		if out.BreakEndTime, err = types.NewTimeStringFromString(s.BreakEndTime); err != nil {
			return nil, fmt.Errorf("%w: breakEndTime: %v", ErrInvalidResponse, err)
		}
	}

	for _, name := range s.DaysOpen {
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("%w: daysOpen: %v", ErrInvalidResponse, err)
		}
		out.DaysOpen = append(out.DaysOpen, day)
	}

	if s.BookingWindowStart != "" {
		key, err := types.ParseDateKey(s.BookingWindowStart)
		if err != nil {
			return nil, fmt.Errorf("%w: bookingWindowStart: %v", ErrInvalidResponse, err)
		}
		out.BookingWindowStart = &key
	}
	if s.BookingWindowEnd != "" {
		key, err := types.ParseDateKey(s.BookingWindowEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: bookingWindowEnd: %v", ErrInvalidResponse, err)
		}
		out.BookingWindowEnd = &key
	}

	return out, nil
}

// Slots ответ со слотами мастера на дату
type Slots struct {
	Date         string `json:"date"`
	SalonID      int64  `json:"salonId"`
	StylistID    int64  `json:"stylistId"`
	Open         bool   `json:"open"`
	ClosedReason string `json:"closedReason,omitempty"`
	Note         string `json:"note,omitempty"`
	Timezone     string `json:"timezone"`
	Slots        []Slot `json:"slots"`
}

// Slot временной слот
type Slot struct {
	Time            string `json:"time"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"`
}

// Dashboard статистика салона
type Dashboard struct {
	SalonID           int64          `json:"salonId"`
	Scope             string         `json:"scope"`
	Timezone          string         `json:"timezone"`
	TotalAppointments int            `json:"totalAppointments"`
	Scheduled         int            `json:"scheduled"`
	Completed         int            `json:"completed"`
	Cancelled         int            `json:"cancelled"`
	Upcoming          int            `json:"upcoming"`
	Revenue           float64        `json:"revenue"`
	PaidRevenue       float64        `json:"paidRevenue"`
	UnpaidRevenue     float64        `json:"unpaidRevenue"`
	TopServices       []ServiceCount `json:"topServices"`
	Stylists          []StylistStats `json:"stylists"`
}

type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

type StylistStats struct {
	StylistID      int64   `json:"stylistId"`
	StylistName    string  `json:"stylistName"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	Revenue        float64 `json:"revenue"`
	CompletionRate float64 `json:"completionRate"`
}
