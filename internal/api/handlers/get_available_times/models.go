package get_available_times

import (
	"time"

	getAvailableTimes "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_times"
)

// SlotResponse свободный слот [start, end)
type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date  string         `json:"date"` // MM/DD/YYYY
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{Start: slot.Start, End: slot.End})
	}

	return &AvailableTimesResponse{
		Date:  resp.Date.String(),
		Slots: slots,
	}
}
