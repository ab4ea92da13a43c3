package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// validateRequest валидирует входные данные запроса и разбирает дату
func validateRequest(req *Request) (types.DateKey, error) {
	if req.SalonID <= 0 {
		return "", fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}
	if req.StylistID <= 0 {
		return "", fmt.Errorf("%w: stylistID must be positive", ErrInvalidInput)
	}

	date, err := types.ParseDateKey(req.Date)
	if err != nil {
		return "", fmt.Errorf("%w: date: %v", ErrInvalidInput, err)
	}
	return date, nil
}
