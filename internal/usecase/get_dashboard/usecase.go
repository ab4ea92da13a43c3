package get_dashboard

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
	"github.com/m04kA/SMC-SalonConsole/internal/reports"
)

// UseCase use case для получения статистики салона
type UseCase struct {
	appointmentRepo  AppointmentRepository
	settingsProvider SettingsProvider
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settingsProvider SettingsProvider,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		settingsProvider: settingsProvider,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute собирает статистику по записям салона.
// Администратор получает статистику всего салона, мастер - только по своим записям.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDashboard: salon=%d, user=%d, role=%s, days=%d, months=%d, top=%d",
		req.SalonID, req.Actor.UserID, req.Actor.Role, req.Days, req.Months, req.TopN)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDashboard: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем область статистики
	filter := domain.AppointmentsFilter{SalonID: req.SalonID, IncludeCancelled: true}
	scope := ScopeSalon
	switch req.Actor.Role {
	case domain.RoleAdmin:
	case domain.RoleStylist:
		scope = ScopeStylist
		filter.StylistID = &req.Actor.UserID
	default:
		uc.logger.Warn("GetDashboard: user=%d with role=%s has no access to statistics", req.Actor.UserID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	now := uc.timeProvider.Now()

	// 3. Получаем настройки салона для часового пояса
	settings, _, err := uc.settingsProvider.GetSettings(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("GetDashboard: failed to get settings for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	loc := settings.Location(now.Location())

	// 4. Получаем записи, включая отменённые
	apps, err := uc.appointmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDashboard: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 5. Получаем мастеров салона
	stylists, err := uc.appointmentRepo.ListStylists(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("GetDashboard: failed to get stylists: %v", err)
		return nil, fmt.Errorf("%w: failed to get stylists: %v", ErrInternal, err)
	}

	roster := make([]reports.Stylist, 0, len(stylists))
	for _, s := range stylists {
		if scope == ScopeStylist && s.ID != req.Actor.UserID {
			continue
		}
		roster = append(roster, reports.Stylist{ID: s.ID, Name: s.Name})
	}

	// 6. Считаем статистику
	dashboard := reports.Summarize(apps, now, reports.Options{
		Days:     req.Days,
		Months:   req.Months,
		TopN:     req.TopN,
		Roster:   roster,
		Location: loc,
	})

	uc.logger.Info("GetDashboard: salon=%d scope=%s total=%d revenue=%.2f",
		req.SalonID, scope, dashboard.TotalAppointments, dashboard.Revenue)

	return &Response{
		SalonID:   req.SalonID,
		Scope:     scope,
		Timezone:  loc.String(),
		Dashboard: dashboard,
	}, nil
}
