package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonConsole/internal/calendar"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// UseCase use case для получения слотов мастера на дату
type UseCase struct {
	appointmentRepo  AppointmentRepository
	calendarProvider CalendarProvider
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarProvider CalendarProvider,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		calendarProvider: calendarProvider,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов.
// Закрытый день возвращается без ошибки: Open=false и причина закрытия.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, stylist=%d, date=%s", req.SalonID, req.StylistID, req.Date)

	// 1. Валидация входных данных
	date, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки и календарь салона
	cal, isDefault, err := uc.calendarProvider.GetCalendar(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get calendar for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}
	if isDefault {
		uc.logger.Info("GetAvailableSlots: using default settings for salon=%d", req.SalonID)
	}

	resp := &Response{
		Date:      date,
		SalonID:   req.SalonID,
		StylistID: req.StylistID,
		Timezone:  cal.Settings.Location(now.Location()).String(),
		Slots:     []domain.Slot{},
	}

	// 4. Проверяем, открыт ли салон в этот день
	status := calendar.DayStatus(date, cal.Settings, cal.BlockedDates, cal.Holidays, cal.SpecialDays, now)
	resp.Date = status.Date
	resp.Note = status.Note
	if !status.Open {
		uc.logger.Info("GetAvailableSlots: salon=%d is closed on %s: %s", req.SalonID, date, status.Reason)
		resp.ClosedReason = status.Reason
		return resp, nil
	}
	resp.Open = true

	// 5. Получаем активные записи мастера на эту дату
	filter := domain.AppointmentsFilter{
		SalonID:   req.SalonID,
		StylistID: &req.StylistID,
		SlotDate:  &resp.Date,
	}
	existing, err := uc.appointmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 6. Вычисляем слоты
	if req.IncludeUnavailable {
		resp.Slots = calendar.ComputeDaySlots(resp.Date, cal.Settings, cal.BlockedDates, cal.Holidays, cal.SpecialDays, existing, now)
	} else {
		resp.Slots = calendar.ForCalendar(cal, resp.Date, existing, now)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for salon=%d, stylist=%d, date=%s (booked=%d)",
		len(resp.Slots), req.SalonID, req.StylistID, resp.Date, len(existing))
	return resp, nil
}
