package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// Request модели

// SettingsRequest запрос на сохранение настроек доступности.
// Настройки сохраняются целиком, частичное обновление не поддерживается.
type SettingsRequest struct {
	SlotStartTime         string   `json:"slotStartTime"` // "09:00"
	SlotEndTime           string   `json:"slotEndTime"`   // "17:00"
	SlotDurationMinutes   int      `json:"slotDurationMinutes"`
	BreakEnabled          bool     `json:"breakEnabled"`
	BreakStartTime        string   `json:"breakStartTime,omitempty"`
	BreakEndTime          string   `json:"breakEndTime,omitempty"`
	DaysOpen              []string `json:"daysOpen"`
	BookingWindowStart    string   `json:"bookingWindowStart,omitempty"`
	BookingWindowEnd      string   `json:"bookingWindowEnd,omitempty"`
	MaxAdvanceBookingDays int      `json:"maxAdvanceBookingDays"` // 0 = без ограничений
	MinBookingLeadHours   int      `json:"minBookingLeadHours"`
	AllowRescheduling     bool     `json:"allowRescheduling"`
	RescheduleLeadHours   int      `json:"rescheduleLeadHours"`
	CancellationLeadHours int      `json:"cancellationLeadHours"`
	Timezone              string   `json:"timezone,omitempty"`
}

// BlockedDateRequest запрос на блокировку даты
type BlockedDateRequest struct {
	Date   string `json:"date"` // "19_10_2026"
	Reason string `json:"reason"`
}

// HolidayRequest запрос на добавление повторяющегося выходного
type HolidayRequest struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`                 // weekly | monthly
	Weekday    string `json:"weekday,omitempty"`    // для weekly
	DayOfMonth int    `json:"dayOfMonth,omitempty"` // для monthly
}

// SpecialDayRequest запрос на добавление особого рабочего дня
type SpecialDayRequest struct {
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}

// Response модели

// SettingsResponse настройки доступности салона
type SettingsResponse struct {
	SalonID               int64     `json:"salonId"`
	SlotStartTime         string    `json:"slotStartTime"`
	SlotEndTime           string    `json:"slotEndTime"`
	SlotDurationMinutes   int       `json:"slotDurationMinutes"`
	BreakEnabled          bool      `json:"breakEnabled"`
	BreakStartTime        string    `json:"breakStartTime,omitempty"`
	BreakEndTime          string    `json:"breakEndTime,omitempty"`
	DaysOpen              []string  `json:"daysOpen"`
	BookingWindowStart    string    `json:"bookingWindowStart,omitempty"`
	BookingWindowEnd      string    `json:"bookingWindowEnd,omitempty"`
	MaxAdvanceBookingDays int       `json:"maxAdvanceBookingDays"`
	MinBookingLeadHours   int       `json:"minBookingLeadHours"`
	AllowRescheduling     bool      `json:"allowRescheduling"`
	RescheduleLeadHours   int       `json:"rescheduleLeadHours"`
	CancellationLeadHours int       `json:"cancellationLeadHours"`
	Timezone              string    `json:"timezone,omitempty"`
	IsDefault             bool      `json:"isDefault"` // салон ещё не сохранял настройки
	UpdatedAt             time.Time `json:"updatedAt,omitempty"`
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// HolidayResponse повторяющийся выходной
type HolidayResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Weekday    string `json:"weekday,omitempty"`
	DayOfMonth int    `json:"dayOfMonth,omitempty"`
}

// SpecialDayResponse особый рабочий день
type SpecialDayResponse struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Note string `json:"note,omitempty"`
}

// CalendarResponse настройки и календарь салона одним ответом
type CalendarResponse struct {
	Settings     SettingsResponse      `json:"settings"`
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
	Holidays     []HolidayResponse     `json:"holidays"`
	SpecialDays  []SpecialDayResponse  `json:"specialDays"`
}

// Методы конвертации

// ToDomain разбирает запрос в domain модель. Ошибка означает некорректный формат поля.
func (r *SettingsRequest) ToDomain(salonID int64) (*domain.AvailabilitySettings, error) {
	start, err := types.NewTimeStringFromString(r.SlotStartTime)
	if err != nil {
		return nil, fmt.Errorf("slotStartTime: %v", err)
	}
	end, err := types.NewTimeStringFromString(r.SlotEndTime)
	if err != nil {
		return nil, fmt.Errorf("slotEndTime: %v", err)
	}

	s := &domain.AvailabilitySettings{
		SalonID:               salonID,
		SlotStartTime:         start,
		SlotEndTime:           end,
		SlotDurationMinutes:   r.SlotDurationMinutes,
		BreakEnabled:          r.BreakEnabled,
		MaxAdvanceBookingDays: r.MaxAdvanceBookingDays,
		MinBookingLeadHours:   r.MinBookingLeadHours,
		AllowRescheduling:     r.AllowRescheduling,
		RescheduleLeadHours:   r.RescheduleLeadHours,
		CancellationLeadHours: r.CancellationLeadHours,
		Timezone:              r.Timezone,
	}

	if r.BreakEnabled || r.BreakStartTime != "" || r.BreakEndTime != "" {
		if s.BreakStartTime, err = types.NewTimeStringFromString(r.BreakStartTime); err != nil {
			return nil, fmt.Errorf("breakStartTime: %v", err)
		}
		if s.BreakEndTime, err = types.NewTimeStringFromString(r.BreakEndTime); err != nil {
			return nil, fmt.Errorf("breakEndTime: %v", err)
		}
	}

	seen := make(map[time.Weekday]bool, len(r.DaysOpen))
	s.DaysOpen = make([]time.Weekday, 0, len(r.DaysOpen))
	for _, name := range r.DaysOpen {
		day, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("daysOpen: %v", err)
		}
		if !seen[day] {
			seen[day] = true
			s.DaysOpen = append(s.DaysOpen, day)
		}
	}

	if r.BookingWindowStart != "" {
		key, err := types.ParseDateKey(r.BookingWindowStart)
		if err != nil {
			return nil, fmt.Errorf("bookingWindowStart: %v", err)
		}
		s.BookingWindowStart = &key
	}
	if r.BookingWindowEnd != "" {
		key, err := types.ParseDateKey(r.BookingWindowEnd)
		if err != nil {
			return nil, fmt.Errorf("bookingWindowEnd: %v", err)
		}
		s.BookingWindowEnd = &key
	}

	return s, nil
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.AvailabilitySettings, isDefault bool) SettingsResponse {
	resp := SettingsResponse{
		SalonID:               s.SalonID,
		SlotStartTime:         s.SlotStartTime.String(),
		SlotEndTime:           s.SlotEndTime.String(),
		SlotDurationMinutes:   s.SlotDurationMinutes,
		BreakEnabled:          s.BreakEnabled,
		BreakStartTime:        s.BreakStartTime.String(),
		BreakEndTime:          s.BreakEndTime.String(),
		DaysOpen:              domain.WeekdayNames(s.DaysOpen),
		MaxAdvanceBookingDays: s.MaxAdvanceBookingDays,
		MinBookingLeadHours:   s.MinBookingLeadHours,
		AllowRescheduling:     s.AllowRescheduling,
		RescheduleLeadHours:   s.RescheduleLeadHours,
		CancellationLeadHours: s.CancellationLeadHours,
		Timezone:              s.Timezone,
		IsDefault:             isDefault,
		UpdatedAt:             s.UpdatedAt,
	}
	if s.BookingWindowStart != nil {
		resp.BookingWindowStart = s.BookingWindowStart.String()
	}
	if s.BookingWindowEnd != nil {
		resp.BookingWindowEnd = s.BookingWindowEnd.String()
	}
	return resp
}

// ToDomain разбирает запрос в domain модель
func (r *BlockedDateRequest) ToDomain(salonID int64) (*domain.BlockedDate, error) {
	date, err := types.ParseDateKey(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %v", err)
	}
	return &domain.BlockedDate{SalonID: salonID, Date: date, Reason: r.Reason}, nil
}

// ToDomain разбирает запрос в domain модель
func (r *HolidayRequest) ToDomain(salonID int64) (*domain.RecurringHoliday, error) {
	h := &domain.RecurringHoliday{SalonID: salonID, Name: r.Name, Kind: domain.HolidayKind(r.Kind)}

	switch h.Kind {
	case domain.HolidayWeekly:
		day, err := domain.ParseWeekday(r.Weekday)
		if err != nil {
			return nil, fmt.Errorf("weekday: %v", err)
		}
		h.Weekday = day
	case domain.HolidayMonthly:
		if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
			return nil, fmt.Errorf("dayOfMonth must be between 1 and 31, got %d", r.DayOfMonth)
		}
		h.DayOfMonth = r.DayOfMonth
	default:
		return nil, fmt.Errorf("kind must be weekly or monthly, got %q", r.Kind)
	}

	return h, nil
}

// ToDomain разбирает запрос в domain модель
func (r *SpecialDayRequest) ToDomain(salonID int64) (*domain.SpecialWorkingDay, error) {
	date, err := types.ParseDateKey(r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %v", err)
	}
	return &domain.SpecialWorkingDay{SalonID: salonID, Date: date, Note: r.Note}, nil
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b domain.BlockedDate) BlockedDateResponse {
	return BlockedDateResponse{ID: b.ID, Date: b.Date.String(), Reason: b.Reason}
}

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h domain.RecurringHoliday) HolidayResponse {
	resp := HolidayResponse{ID: h.ID, Name: h.Name, Kind: string(h.Kind)}
	switch h.Kind {
	case domain.HolidayWeekly:
		resp.Weekday = h.Weekday.String()
	case domain.HolidayMonthly:
		resp.DayOfMonth = h.DayOfMonth
	}
	return resp
}

// FromDomainSpecialDay конвертирует domain модель в DTO
func FromDomainSpecialDay(d domain.SpecialWorkingDay) SpecialDayResponse {
	return SpecialDayResponse{ID: d.ID, Date: d.Date.String(), Note: d.Note}
}

// FromDomainCalendar конвертирует календарь салона в DTO
func FromDomainCalendar(cal *domain.SalonCalendar, isDefault bool) *CalendarResponse {
	resp := &CalendarResponse{
		Settings:     FromDomainSettings(cal.Settings, isDefault),
		BlockedDates: make([]BlockedDateResponse, 0, len(cal.BlockedDates)),
		Holidays:     make([]HolidayResponse, 0, len(cal.Holidays)),
		SpecialDays:  make([]SpecialDayResponse, 0, len(cal.SpecialDays)),
	}
	for _, b := range cal.BlockedDates {
		resp.BlockedDates = append(resp.BlockedDates, FromDomainBlockedDate(b))
	}
	for _, h := range cal.Holidays {
		resp.Holidays = append(resp.Holidays, FromDomainHoliday(h))
	}
	for _, d := range cal.SpecialDays {
		resp.SpecialDays = append(resp.SpecialDays, FromDomainSpecialDay(d))
	}
	return resp
}
