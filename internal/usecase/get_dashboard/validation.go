package get_dashboard

import (
	"fmt"

	"github.com/m04kA/SMC-SalonConsole/internal/domain"
)

// validateRequest валидирует параметры периода
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}
	if req.Days < 0 || req.Days > domain.MaxStatsDays {
		return fmt.Errorf("%w: days must be between 0 and %d", ErrInvalidInput, domain.MaxStatsDays)
	}
	if req.Months < 0 || req.Months > domain.MaxStatsMonths {
		return fmt.Errorf("%w: months must be between 0 and %d", ErrInvalidInput, domain.MaxStatsMonths)
	}
	if req.TopN < 0 || req.TopN > domain.MaxTopServices {
		return fmt.Errorf("%w: top must be between 0 and %d", ErrInvalidInput, domain.MaxTopServices)
	}
	return nil
}
