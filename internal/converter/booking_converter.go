package converter

import (
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/service"

	"github.com/shopspring/decimal"
)

// Money renders an amount with 2 decimals, rounding half away from zero
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DraftToResponse converts a BookingDraft entity to DraftResponse DTO
func DraftToResponse(draft *entity.BookingDraft) *dto.DraftResponse {
	if draft == nil {
		return nil
	}

	services := make([]dto.ServiceSelectionResponse, len(draft.Services))
	for i, s := range draft.Services {
		services[i] = dto.ServiceSelectionResponse{
			ID:            s.ID,
			Name:          s.Name,
			Price:         Money(s.Price),
			OriginalPrice: Money(s.OriginalPrice),
			Duration:      s.Duration,
			Category:      s.Category,
		}
	}

	response := &dto.DraftResponse{
		VendorID:           draft.VendorID,
		Services:           services,
		ProfessionalID:     draft.ProfessionalID,
		ProfessionalChosen: draft.ProfessionalChosen,
		Date:               draft.Date,
		Time:               draft.Time,
		OrderType:          string(draft.OrderType),
		RecurringFrequency: draft.RecurringFrequency,
		TotalDuration:      draft.TotalDuration(),
		Revision:           draft.Revision,
		NextStep:           string(draft.NextStep()),
	}

	if !draft.UpdatedAt.IsZero() {
		updatedAt := draft.UpdatedAt
		response.UpdatedAt = &updatedAt
	}

	return response
}

// QuoteToResponse converts a Quote to QuoteResponse DTO
func QuoteToResponse(quote entity.Quote) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		Subtotal:      Money(quote.Subtotal),
		Discount:      Money(quote.Discount),
		Tax:           Money(quote.Tax),
		Total:         Money(quote.Total),
		ItemCount:     quote.ItemCount,
		TotalDuration: quote.TotalDuration,
	}
}

// AvailabilityToResponse converts a resolved Availability to AvailabilityResponse DTO
func AvailabilityToResponse(a *service.Availability) *dto.AvailabilityResponse {
	if a == nil {
		return nil
	}

	slots := make([]dto.TimeSlotResponse, len(a.Slots))
	for i, s := range a.Slots {
		slots[i] = dto.TimeSlotResponse{Time: s.Time, Available: s.Available}
	}

	return &dto.AvailabilityResponse{
		Date:         a.Date,
		Duration:     a.Duration,
		Source:       a.Source,
		AuthRequired: a.AuthRequired,
		Slots:        slots,
	}
}
