package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	calendarRepo "github.com/m04kA/SMC-SalonConsole/internal/infra/storage/calendar"
	settingsRepo "github.com/m04kA/SMC-SalonConsole/internal/infra/storage/settings"
	"github.com/m04kA/SMC-SalonConsole/internal/service/availability/models"
	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// Service сервис настроек доступности и календаря салона
type Service struct {
	settingsRepo SettingsRepository
	calendarRepo CalendarRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	settingsRepo SettingsRepository,
	calendarRepo CalendarRepository,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		calendarRepo: calendarRepo,
		logger:       logger,
	}
}

// GetSettings получает настройки салона.
// Если салон не сохранял настройки, возвращает настройки по умолчанию и isDefault=true.
func (s *Service) GetSettings(ctx context.Context, salonID int64) (*domain.AvailabilitySettings, bool, error) {
	settings, err := s.settingsRepo.GetBySalonID(ctx, salonID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultAvailabilitySettings(salonID), true, nil
		}
		s.logger.Error("GetSettings: repository error for salon=%d: %v", salonID, err)
		return nil, false, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
	}
	return settings, false, nil
}

// GetCalendar собирает настройки и календарь салона для расчёта слотов
func (s *Service) GetCalendar(ctx context.Context, salonID int64) (*domain.SalonCalendar, bool, error) {
	settings, isDefault, err := s.GetSettings(ctx, salonID)
	if err != nil {
		return nil, false, err
	}

	blocked, err := s.calendarRepo.ListBlockedDates(ctx, salonID)
	if err != nil {
		s.logger.Error("GetCalendar: failed to list blocked dates for salon=%d: %v", salonID, err)
		return nil, false, fmt.Errorf("%w: GetCalendar - repository error: %v", ErrInternal, err)
	}

	holidays, err := s.calendarRepo.ListHolidays(ctx, salonID)
	if err != nil {
		s.logger.Error("GetCalendar: failed to list holidays for salon=%d: %v", salonID, err)
		return nil, false, fmt.Errorf("%w: GetCalendar - repository error: %v", ErrInternal, err)
	}

	special, err := s.calendarRepo.ListSpecialDays(ctx, salonID)
	if err != nil {
		s.logger.Error("GetCalendar: failed to list special days for salon=%d: %v", salonID, err)
		return nil, false, fmt.Errorf("%w: GetCalendar - repository error: %v", ErrInternal, err)
	}

	return &domain.SalonCalendar{
		Settings:     settings,
		BlockedDates: blocked,
		Holidays:     holidays,
		SpecialDays:  special,
	}, isDefault, nil
}

// GetAvailability возвращает настройки и календарь салона.
// Публичный метод - доступен всем ролям.
func (s *Service) GetAvailability(ctx context.Context, salonID int64) (*models.CalendarResponse, error) {
	s.logger.Info("GetAvailability: fetching calendar for salon=%d", salonID)

	cal, isDefault, err := s.GetCalendar(ctx, salonID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetAvailability: salon=%d blocked=%d holidays=%d special=%d default=%t",
		salonID, len(cal.BlockedDates), len(cal.Holidays), len(cal.SpecialDays), isDefault)
	return models.FromDomainCalendar(cal, isDefault), nil
}

// SaveSettings сохраняет настройки салона целиком.
// Доступно только администратору.
func (s *Service) SaveSettings(ctx context.Context, actor domain.Actor, salonID int64, req *models.SettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("SaveSettings: saving settings for salon=%d by user=%d", salonID, actor.UserID)

	if actor.Role != domain.RoleAdmin {
		s.logger.Warn("SaveSettings: user=%d with role=%s is not an admin", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	settings, err := req.ToDomain(salonID)
	if err != nil {
		s.logger.Warn("SaveSettings: invalid request for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := ValidateSettings(settings); err != nil {
		s.logger.Warn("SaveSettings: validation failed for salon=%d: %v", salonID, err)
		return nil, err
	}

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("SaveSettings: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: SaveSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SaveSettings: successfully saved settings for salon=%d", salonID)
	resp := models.FromDomainSettings(saved, false)
	return &resp, nil
}

// AddBlockedDate блокирует дату. Доступно только администратору.
func (s *Service) AddBlockedDate(ctx context.Context, actor domain.Actor, salonID int64, req *models.BlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("AddBlockedDate: blocking date=%s for salon=%d by user=%d", req.Date, salonID, actor.UserID)

	if actor.Role != domain.RoleAdmin {
		s.logger.Warn("AddBlockedDate: user=%d with role=%s is not an admin", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	blocked, err := req.ToDomain(salonID)
	if err != nil {
		s.logger.Warn("AddBlockedDate: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(blocked.Reason) > domain.MaxBlockedReasonLength {
		s.logger.Warn("AddBlockedDate: reason too long (%d chars)", len(blocked.Reason))
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockedReasonLength)
	}

	saved, err := s.calendarRepo.AddBlockedDate(ctx, blocked)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrDuplicateDate) {
			s.logger.Warn("AddBlockedDate: date=%s already blocked for salon=%d", blocked.Date, salonID)
			return nil, ErrAlreadyExists
		}
		s.logger.Error("AddBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlockedDate: successfully blocked date=%s id=%d", saved.Date, saved.ID)
	resp := models.FromDomainBlockedDate(*saved)
	return &resp, nil
}

// RemoveBlockedDate снимает блокировку даты. Доступно только администратору.
func (s *Service) RemoveBlockedDate(ctx context.Context, actor domain.Actor, salonID int64, date string) error {
	s.logger.Info("RemoveBlockedDate: unblocking date=%s for salon=%d by user=%d", date, salonID, actor.UserID)

	if actor.Role != domain.RoleAdmin {
		s.logger.Warn("RemoveBlockedDate: user=%d with role=%s is not an admin", actor.UserID, actor.Role)
		return ErrAccessDenied
	}

	key, err := types.ParseDateKey(date)
	if err != nil {
		s.logger.Warn("RemoveBlockedDate: invalid date=%q: %v", date, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.calendarRepo.DeleteBlockedDate(ctx, salonID, key); err != nil {
		if errors.Is(err, calendarRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("RemoveBlockedDate: date=%s is not blocked for salon=%d", key, salonID)
			return ErrNotFound
		}
		s.logger.Error("RemoveBlockedDate: repository error: %v", err)
		return fmt.Errorf("%w: RemoveBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBlockedDate: successfully unblocked date=%s for salon=%d", key, salonID)
	return nil
}

// AddHoliday добавляет повторяющийся выходной. Доступно только администратору.
func (s *Service) AddHoliday(ctx context.Context, actor domain.Actor, salonID int64, req *models.HolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("AddHoliday: adding %s holiday %q for salon=%d by user=%d", req.Kind, req.Name, salonID, actor.UserID)

	if actor.Role != domain.RoleAdmin {
		s.logger.Warn("AddHoliday: user=%d with role=%s is not an admin", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	holiday, err := req.ToDomain(salonID)
	if err != nil {
		s.logger.Warn("AddHoliday: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	name := strings.TrimSpace(holiday.Name)
	if name == "" || len(name) > domain.MaxHolidayNameLength {
		s.logger.Warn("AddHoliday: invalid name %q", holiday.Name)
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxHolidayNameLength)
	}
	holiday.Name = name

	saved, err := s.calendarRepo.AddHoliday(ctx, holiday)
	if err != nil {
		s.logger.Error("AddHoliday: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddHoliday: successfully added holiday id=%d for salon=%d", saved.ID, salonID)
	resp := models.FromDomainHoliday(*saved)
	return &resp, nil
}

// RemoveHoliday удаляет повторяющийся выходной. Доступно только администратору.
func (s *Service) RemoveHoliday(ctx context.Context, actor domain.Actor, salonID, holidayID int64) error {
	s.logger.Info("RemoveHoliday: removing holiday id=%d for salon=%d by user=%d", holidayID, salonID, actor.UserID)

	if actor.Role != domain.RoleAdmin {
		s.logger.Warn("RemoveHoliday: user=%d with role=%s is not an admin", actor.UserID, actor.Role)
		return ErrAccessDenied
	}

	if err := s.calendarRepo.DeleteHoliday(ctx, salonID, holidayID); err != nil {
		if errors.Is(err, calendarRepo.ErrHolidayNotFound) {
			s.logger.Warn("RemoveHoliday: holiday id=%d not found for salon=%d", holidayID, salonID)
			return ErrNotFound
		}
		s.logger.Error("RemoveHoliday: repository error: %v", err)
		return fmt.Errorf("%w: RemoveHoliday - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveHoliday: successfully removed holiday id=%d", holidayID)
	return nil
}

// AddSpecialDay добавляет особый рабочий день. Доступно только администратору.
func (s *Service) AddSpecialDay(ctx context.Context, actor domain.Actor, salonID int64, req *models.SpecialDayRequest) (*models.SpecialDayResponse, error) {
	s.logger.Info("AddSpecialDay: adding special day date=%s for salon=%d by user=%d", req.Date, salonID, actor.UserID)

	if actor.Role != domain.RoleAdmin {
		s.logger.Warn("AddSpecialDay: user=%d with role=%s is not an admin", actor.UserID, actor.Role)
		return nil, ErrAccessDenied
	}

	day, err := req.ToDomain(salonID)
	if err != nil {
		s.logger.Warn("AddSpecialDay: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(day.Note) > domain.MaxSpecialDayNoteLength {
		s.logger.Warn("AddSpecialDay: note too long (%d chars)", len(day.Note))
		return nil, fmt.Errorf("%w: note must be at most %d characters", ErrInvalidInput, domain.MaxSpecialDayNoteLength)
	}

	saved, err := s.calendarRepo.AddSpecialDay(ctx, day)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrDuplicateDate) {
			s.logger.Warn("AddSpecialDay: date=%s already special for salon=%d", day.Date, salonID)
			return nil, ErrAlreadyExists
		}
		s.logger.Error("AddSpecialDay: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddSpecialDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddSpecialDay: successfully added special day id=%d", saved.ID)
	resp := models.FromDomainSpecialDay(*saved)
	return &resp, nil
}

// RemoveSpecialDay удаляет особый рабочий день. Доступно только администратору.
func (s *Service) RemoveSpecialDay(ctx context.Context, actor domain.Actor, salonID int64, date string) error {
	s.logger.Info("RemoveSpecialDay: removing special day date=%s for salon=%d by user=%d", date, salonID, actor.UserID)

	if actor.Role != domain.RoleAdmin {
		s.logger.Warn("RemoveSpecialDay: user=%d with role=%s is not an admin", actor.UserID, actor.Role)
		return ErrAccessDenied
	}

	key, err := types.ParseDateKey(date)
	if err != nil {
		s.logger.Warn("RemoveSpecialDay: invalid date=%q: %v", date, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.calendarRepo.DeleteSpecialDay(ctx, salonID, key); err != nil {
		if errors.Is(err, calendarRepo.ErrSpecialDayNotFound) {
			s.logger.Warn("RemoveSpecialDay: date=%s is not special for salon=%d", key, salonID)
			return ErrNotFound
		}
		s.logger.Error("RemoveSpecialDay: repository error: %v", err)
		return fmt.Errorf("%w: RemoveSpecialDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveSpecialDay: successfully removed special day date=%s", key)
	return nil
}

// ValidateSettings проверяет диапазоны и согласованность настроек
func ValidateSettings(s *domain.AvailabilitySettings) error {
	start, err := s.SlotStartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: slotStartTime: %v", ErrInvalidInput, err)
	}
	end, err := s.SlotEndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: slotEndTime: %v", ErrInvalidInput, err)
	}
	if end <= start {
		return fmt.Errorf("%w: slotEndTime must be after slotStartTime", ErrInvalidInput)
	}

	if s.SlotDurationMinutes < domain.MinSlotDurationMinutes || s.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if s.SlotDurationMinutes > end-start {
		return fmt.Errorf("%w: slotDurationMinutes exceeds the working window", ErrInvalidInput)
	}

	if s.BreakEnabled {
		bs, err := s.BreakStartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: breakStartTime: %v", ErrInvalidInput, err)
		}
		be, err := s.BreakEndTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: breakEndTime: %v", ErrInvalidInput, err)
		}
		if be <= bs || bs < start || be > end {
			return fmt.Errorf("%w: break must be a non-empty interval inside the working window", ErrInvalidInput)
		}
	}

	if s.BookingWindowStart != nil && s.BookingWindowEnd != nil {
		from, _ := s.BookingWindowStart.Date(time.UTC)
		to, _ := s.BookingWindowEnd.Date(time.UTC)
		if to.Before(from) {
			return fmt.Errorf("%w: bookingWindowEnd must not be before bookingWindowStart", ErrInvalidInput)
		}
	}

	if s.MaxAdvanceBookingDays < domain.MinAdvanceBookingDays || s.MaxAdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: maxAdvanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	for name, v := range map[string]int{
		"minBookingLeadHours":   s.MinBookingLeadHours,
		"rescheduleLeadHours":   s.RescheduleLeadHours,
		"cancellationLeadHours": s.CancellationLeadHours,
	} {
		if v < 0 || v > domain.MaxLeadHours {
			return fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidInput, name, domain.MaxLeadHours)
		}
	}

	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("%w: timezone: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
