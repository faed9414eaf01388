package dto

import "time"

// Request DTOs

// Revision, when sent, must match the draft revision the client last saw
type ToggleServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
	Revision  *int64 `json:"revision" validate:"omitempty,gte=0"`
}

// A null professional_id means "any professional"
type SelectProfessionalRequest struct {
	ProfessionalID *string `json:"professional_id"`
	Revision       *int64  `json:"revision" validate:"omitempty,gte=0"`
}

type SelectScheduleRequest struct {
	OrderType          string `json:"order_type" validate:"required,oneof=now schedule recurring"`
	Date               string `json:"date" validate:"omitempty,ymd"`
	Time               string `json:"time" validate:"omitempty,hhmm"`
	RecurringFrequency string `json:"recurring_frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
	Revision           *int64 `json:"revision" validate:"omitempty,gte=0"`
}

// Response DTOs

type ServiceSelectionResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price"`
	Duration      int    `json:"duration"`
	Category      string `json:"category,omitempty"`
}

type DraftResponse struct {
	VendorID           string                     `json:"vendor_id"`
	Services           []ServiceSelectionResponse `json:"services"`
	ProfessionalID     *string                    `json:"professional_id"`
	ProfessionalChosen bool                       `json:"professional_chosen"`
	Date               string                     `json:"date,omitempty"`
	Time               string                     `json:"time,omitempty"`
	OrderType          string                     `json:"order_type,omitempty"`
	RecurringFrequency string                     `json:"recurring_frequency,omitempty"`
	TotalDuration      int                        `json:"total_duration"`
	Revision           int64                      `json:"revision"`
	NextStep           string                     `json:"next_step"`
	UpdatedAt          *time.Time                 `json:"updated_at,omitempty"`
}

type ToggleServiceResponse struct {
	Selected bool           `json:"selected"`
	Draft    *DraftResponse `json:"draft"`
}

type TimeSlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AvailabilityResponse struct {
	Date         string             `json:"date"`
	Duration     int                `json:"duration"`
	Source       string             `json:"source"`
	AuthRequired bool               `json:"auth_required"`
	Slots        []TimeSlotResponse `json:"slots"`
}

// Money values are decimal strings rounded to 2 places
type QuoteResponse struct {
	Subtotal      string `json:"subtotal"`
	Discount      string `json:"discount"`
	Tax           string `json:"tax"`
	Total         string `json:"total"`
	ItemCount     int    `json:"item_count"`
	TotalDuration int    `json:"total_duration"`
}
