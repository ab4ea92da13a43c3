package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonConsole/internal/calendar"
	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonConsole/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonConsole/internal/lifecycle"
)

// UseCase use case для переноса записи на другой слот
type UseCase struct {
	appointmentRepo  AppointmentRepository
	calendarProvider CalendarProvider
	txManager        TransactionManager
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarProvider CalendarProvider,
	txManager TransactionManager,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		calendarProvider: calendarProvider,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute выполняет use case переноса записи.
// Использует сериализуемую транзакцию: запись и записи мастера на новую дату блокируются,
// чтобы два параллельных переноса не заняли один слот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: appointment=%d, user=%d, role=%s, date=%s, time=%s",
		req.AppointmentID, req.Actor.UserID, req.Actor.Role, req.SlotDate, req.SlotTime)

	// 1. Валидация входных данных
	date, clock, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		uc.metrics.ObserveTransition(string(lifecycle.TransitionReschedule), "rejected")
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *Response

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем запись с блокировкой (FOR UPDATE)
		app, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 3.2. Проверяем права доступа
		if !req.Actor.CanActOn(app) {
			uc.logger.Warn("RescheduleAppointment: access denied for user=%d to appointment id=%d",
				req.Actor.UserID, app.ID)
			return ErrAccessDenied
		}

		// 3.3. Получаем настройки и календарь салона
		cal, _, err := uc.calendarProvider.GetCalendar(txCtx, app.SalonID)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get calendar for salon=%d: %v", app.SalonID, err)
			return fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
		}

		// 3.4. Проверяем правила переноса (однократность, срок, состояние)
		next, err := lifecycle.Reschedule(app, cal.Settings, date, clock, now)
		if err != nil {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d cannot be rescheduled: %v", app.ID, err)
			return err
		}
		if app.SlotDate.Equal(date) && app.SlotTime == clock {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d already at %s %s", app.ID, date, clock)
			return fmt.Errorf("%w: appointment is already at this slot", ErrInvalidInput)
		}

		// 3.5. Получаем записи мастера на новую дату с блокировкой (FOR UPDATE)
		filter := domain.AppointmentsFilter{
			SalonID:   app.SalonID,
			StylistID: &app.StylistID,
			SlotDate:  &date,
		}
		sameDay, err := uc.appointmentRepo.List(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		others := make([]*domain.Appointment, 0, len(sameDay))
		for _, other := range sameDay {
			if other.ID != app.ID {
				others = append(others, other)
			}
		}

		// 3.6. Проверяем, что новый слот можно забронировать
		if !calendar.IsSlotBookable(cal, date, clock, others, now) {
			uc.logger.Warn("RescheduleAppointment: slot %s %s is not available for stylist=%d",
				date, clock, app.StylistID)
			return ErrSlotUnavailable
		}

		// 3.7. Сохраняем новый слот
		saved, err := uc.appointmentRepo.UpdateState(txCtx, next)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to update appointment id=%d: %v", app.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = &Response{
			Appointment:  saved,
			PreviousDate: app.SlotDate,
			PreviousTime: app.SlotTime,
		}
		return nil
	})

	if err != nil {
		uc.metrics.ObserveTransition(string(lifecycle.TransitionReschedule), resultOf(err))
		return nil, err
	}

	uc.metrics.ObserveTransition(string(lifecycle.TransitionReschedule), "ok")
	uc.logger.Info("RescheduleAppointment: appointment id=%d moved from %s %s to %s %s",
		result.Appointment.ID, result.PreviousDate, result.PreviousTime, result.Appointment.SlotDate, result.Appointment.SlotTime)
	return result, nil
}

// resultOf отличает бизнес-отказ от инфраструктурной ошибки
func resultOf(err error) string {
	switch {
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrRescheduleAlreadyUsed),
		errors.Is(err, domain.ErrLeadTimeViolation),
		errors.Is(err, domain.ErrInvalidSlot):
		return "rejected"
	default:
		return "error"
	}
}
