package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonConsole/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonConsole/internal/lifecycle"
	"github.com/m04kA/SMC-SalonConsole/internal/service/appointments/models"
)

// Результаты перехода для метрик
const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

// transitionFunc вычисляет следующее состояние записи
type transitionFunc func(app *domain.Appointment, settings *domain.AvailabilitySettings, now time.Time) (*domain.Appointment, error)

type nopMetrics struct{}

func (nopMetrics) ObserveTransition(string, string) {}

// Service сервис для работы с записями салона
type Service struct {
	appointmentRepo  AppointmentRepository
	settingsProvider SettingsProvider
	txManager        TransactionManager
	metrics          MetricsRecorder
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	settingsProvider SettingsProvider,
	txManager TransactionManager,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		appointmentRepo:  appointmentRepo,
		settingsProvider: settingsProvider,
		txManager:        txManager,
		metrics:          metrics,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// List получает записи салона.
// Мастер видит только свои записи, клиент - только записи, которые он сделал.
func (s *Service) List(ctx context.Context, actor domain.Actor, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for salon=%d by user=%d role=%s", req.SalonID, actor.UserID, actor.Role)

	filter := req.ToDomainFilter()

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleStylist:
		if req.StylistID != nil && *req.StylistID != actor.UserID {
			s.logger.Warn("List: stylist=%d requested appointments of stylist=%d", actor.UserID, *req.StylistID)
			return nil, ErrAccessDenied
		}
		filter.StylistID = &actor.UserID
	case domain.RoleCustomer:
		filter.CustomerID = &actor.UserID
	default:
		s.logger.Warn("List: unknown role=%q for user=%d", actor.Role, actor.UserID)
		return nil, ErrAccessDenied
	}

	apps, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for salon=%d", len(apps), req.SalonID)
	return models.FromDomainAppointmentList(apps), nil
}

// GetByID получает запись по ID с проверкой прав доступа
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, actor.UserID)

	app, err := s.load(ctx, "GetByID", actor, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(app), nil
}

// Cancel отменяет запись.
// Клиент ограничен сроком отмены из настроек салона, персонал - нет.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d role=%s", id, actor.UserID, actor.Role)

	return s.transition(ctx, "Cancel", lifecycle.TransitionCancel, actor, id,
		func(app *domain.Appointment, settings *domain.AvailabilitySettings, now time.Time) (*domain.Appointment, error) {
			return lifecycle.Cancel(app, actor, settings, now)
		})
}

// Complete отмечает запись выполненной. Доступно только персоналу.
func (s *Service) Complete(ctx context.Context, actor domain.Actor, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%d by user=%d", id, actor.UserID)

	if !actor.Role.IsStaff() {
		s.logger.Warn("Complete: user=%d with role=%s is not staff", actor.UserID, actor.Role)
		s.metrics.ObserveTransition(string(lifecycle.TransitionComplete), resultRejected)
		return nil, ErrAccessDenied
	}

	return s.transition(ctx, "Complete", lifecycle.TransitionComplete, actor, id,
		func(app *domain.Appointment, _ *domain.AvailabilitySettings, _ time.Time) (*domain.Appointment, error) {
			return lifecycle.Complete(app)
		})
}

// UndoComplete возвращает выполненную запись в запланированные. Доступно только персоналу.
func (s *Service) UndoComplete(ctx context.Context, actor domain.Actor, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("UndoComplete: reverting completion of appointment id=%d by user=%d", id, actor.UserID)

	if !actor.Role.IsStaff() {
		s.logger.Warn("UndoComplete: user=%d with role=%s is not staff", actor.UserID, actor.Role)
		s.metrics.ObserveTransition(string(lifecycle.TransitionUndoComplete), resultRejected)
		return nil, ErrAccessDenied
	}

	return s.transition(ctx, "UndoComplete", lifecycle.TransitionUndoComplete, actor, id,
		func(app *domain.Appointment, _ *domain.AvailabilitySettings, _ time.Time) (*domain.Appointment, error) {
			return lifecycle.UndoComplete(app, actor)
		})
}

// transition загружает запись под блокировкой, применяет переход и сохраняет результат
func (s *Service) transition(
	ctx context.Context,
	op string,
	kind lifecycle.Transition,
	actor domain.Actor,
	id int64,
	apply transitionFunc,
) (*models.AppointmentResponse, error) {
	now := s.timeProvider.Now()

	var saved *domain.Appointment
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		app, err := s.load(txCtx, op, actor, id)
		if err != nil {
			return err
		}

		settings, _, err := s.settingsProvider.GetSettings(txCtx, app.SalonID)
		if err != nil {
			s.logger.Error("%s: failed to get settings for salon=%d: %v", op, app.SalonID, err)
			return fmt.Errorf("%w: %s - settings error: %v", ErrInternal, op, err)
		}

		next, err := apply(app, settings, now)
		if err != nil {
			s.logger.Warn("%s: transition rejected for appointment id=%d: %v", op, id, err)
			return err
		}

		saved, err = s.appointmentRepo.UpdateState(txCtx, next)
		if err != nil {
			s.logger.Error("%s: repository error on update of appointment id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
		return nil
	})
	if err != nil {
		s.metrics.ObserveTransition(string(kind), resultOf(err))
		return nil, err
	}

	s.metrics.ObserveTransition(string(kind), resultOK)
	s.logger.Info("%s: appointment id=%d is now %s", op, id, saved.State())
	return models.FromDomainAppointment(saved), nil
}

// load получает запись и проверяет, что actor может с ней работать
func (s *Service) load(ctx context.Context, op string, actor domain.Actor, id int64) (*domain.Appointment, error) {
	app, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !actor.CanActOn(app) {
		s.logger.Warn("%s: access denied for user=%d role=%s to appointment id=%d", op, actor.UserID, actor.Role, id)
		return nil, ErrAccessDenied
	}

	return app, nil
}

// resultOf отличает бизнес-отказ от инфраструктурной ошибки
func resultOf(err error) string {
	switch {
	case errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrRescheduleAlreadyUsed),
		errors.Is(err, domain.ErrLeadTimeViolation),
		errors.Is(err, domain.ErrInvalidSlot):
		return resultRejected
	default:
		return resultError
	}
}
