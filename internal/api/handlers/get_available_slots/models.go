package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-SalonConsole/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date         string          `json:"date"`
	SalonID      int64           `json:"salonId"`
	StylistID    int64           `json:"stylistId"`
	Open         bool            `json:"open"`
	ClosedReason string          `json:"closedReason,omitempty"`
	Note         string          `json:"note,omitempty"`
	Timezone     string          `json:"timezone"`
	Slots        []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time            string `json:"time"`      // "9:30 AM"
	StartTime       string `json:"startTime"` // "09:30"
	EndTime         string `json:"endTime,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i := range resp.Slots {
		slot := &resp.Slots[i]
		slots[i] = AvailableSlot{
			Time:            slot.Time.String(),
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime().String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			Reason:          string(slot.Reason),
		}
	}

	return &AvailableSlotsResponse{
		Date:         resp.Date.String(),
		SalonID:      resp.SalonID,
		StylistID:    resp.StylistID,
		Open:         resp.Open,
		ClosedReason: string(resp.ClosedReason),
		Note:         resp.Note,
		Timezone:     resp.Timezone,
		Slots:        slots,
	}
}
