package reschedule_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SalonConsole/pkg/types"
)

// validateRequest валидирует запрос и приводит слот к каноническому виду.
// Время принимается и в 12-часовом ("2:30 PM"), и в 24-часовом ("14:30") формате.
func validateRequest(req *Request) (types.DateKey, types.ClockTime, error) {
	if req.AppointmentID <= 0 {
		return "", "", fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	date, err := types.ParseDateKey(req.SlotDate)
	if err != nil {
		return "", "", fmt.Errorf("%w: slotDate: %v", ErrInvalidInput, err)
	}

	clock, err := types.ParseClockTime(req.SlotTime)
	if err != nil {
		ts, tsErr := types.NewTimeStringFromString(req.SlotTime)
		if tsErr != nil {
			return "", "", fmt.Errorf("%w: slotTime: %v", ErrInvalidInput, err)
		}
		if clock, err = ts.Clock(); err != nil {
			return "", "", fmt.Errorf("%w: slotTime: %v", ErrInvalidInput, err)
		}
	}

	return date, clock, nil
}
