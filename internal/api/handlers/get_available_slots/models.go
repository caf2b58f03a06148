package get_available_slots

import (
	"github.com/holistia/booking-service/internal/domain"
	getAvailableSlots "github.com/holistia/booking-service/internal/usecase/get_available_slots"
)

// SlotResponse is one bookable window.
type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AvailableSlotsResponse is the HTTP response body.
type AvailableSlotsResponse struct {
	ProfessionalID int64          `json:"professional_id"`
	Date           string         `json:"date"`
	DurationMin    int            `json:"duration_min"`
	Slots          []SlotResponse `json:"slots"`
}

// FromUseCaseResponse converts the use case result into the HTTP response.
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		ProfessionalID: resp.ProfessionalID,
		Date:           resp.Date.Format(domain.DateFormat),
		DurationMin:    resp.DurationMin,
		Slots:          slots,
	}
}
