package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType is how the customer wants the appointment scheduled
type OrderType string

const (
	OrderTypeNow       OrderType = "now"
	OrderTypeSchedule  OrderType = "schedule"
	OrderTypeRecurring OrderType = "recurring"
)

// TimeNow is the time value stored when the customer books for right away
const TimeNow = "now"

// Wire formats for draft dates and times
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Recurring frequencies accepted by the marketplace
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

// WizardStep names the page the booking wizard should show next
type WizardStep string

const (
	StepServices     WizardStep = "services"
	StepProfessional WizardStep = "professional"
	StepTime         WizardStep = "time"
	StepConfirm      WizardStep = "confirm"
)

// ServiceSelection is a vendor service copied into a draft.
// Values come from the vendor catalogue at the moment it was picked.
type ServiceSelection struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Duration      int             `json:"duration"`
	Category      string          `json:"category,omitempty"`
}

// BookingDraft is the in-progress booking for one vendor in one booking session.
// Revision is owned by the store and is not part of the serialized payload.
type BookingDraft struct {
	VendorID           string             `json:"vendor_id"`
	Services           []ServiceSelection `json:"services"`
	ProfessionalID     *string            `json:"professional_id"`
	ProfessionalChosen bool               `json:"professional_chosen"`
	Date               string             `json:"date,omitempty"`
	Time               string             `json:"time,omitempty"`
	OrderType          OrderType          `json:"order_type,omitempty"`
	RecurringFrequency string             `json:"recurring_frequency,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	Revision           int64              `json:"-"`
}

// NewBookingDraft returns the default empty draft for a vendor
func NewBookingDraft(vendorID string) *BookingDraft {
	return &BookingDraft{
		VendorID: vendorID,
		Services: []ServiceSelection{},
	}
}

// IsEmpty reports whether no service has been selected yet
func (d *BookingDraft) IsEmpty() bool {
	return len(d.Services) == 0
}

// HasService checks if the service is already selected
func (d *BookingDraft) HasService(serviceID string) bool {
	for _, s := range d.Services {
		if s.ID == serviceID {
			return true
		}
	}
	return false
}

// ToggleService adds the selection when absent and removes it when present.
// Returns true when the service ended up selected.
func (d *BookingDraft) ToggleService(selection ServiceSelection) bool {
	for i, s := range d.Services {
		if s.ID == selection.ID {
			d.Services = append(d.Services[:i], d.Services[i+1:]...)
			d.afterServicesChanged()
			return false
		}
	}
	d.Services = append(d.Services, selection)
	d.afterServicesChanged()
	return true
}

// afterServicesChanged keeps the draft consistent with its service list.
// An empty list resets everything chosen after step one; otherwise a concrete
// time is dropped because the total duration changed.
func (d *BookingDraft) afterServicesChanged() {
	if d.IsEmpty() {
		d.ProfessionalID = nil
		d.ProfessionalChosen = false
		d.Date = ""
		d.Time = ""
		d.OrderType = ""
		d.RecurringFrequency = ""
		return
	}
	if d.Time != TimeNow {
		d.Time = ""
	}
}

// SetProfessional records the professional choice; nil means "any"
func (d *BookingDraft) SetProfessional(professionalID *string) {
	d.ProfessionalID = professionalID
	d.ProfessionalChosen = true
}

// TotalDuration is the sum of the selected service durations in minutes
func (d *BookingDraft) TotalDuration() int {
	total := 0
	for _, s := range d.Services {
		total += s.Duration
	}
	return total
}

// ServiceIDs returns the selected service ids in selection order
func (d *BookingDraft) ServiceIDs() []string {
	ids := make([]string, len(d.Services))
	for i, s := range d.Services {
		ids[i] = s.ID
	}
	return ids
}

// NextStep derives the wizard page to show from what has been filled in
func (d *BookingDraft) NextStep() WizardStep {
	switch {
	case d.IsEmpty():
		return StepServices
	case d.OrderType == OrderTypeNow && d.Time == TimeNow:
		return StepConfirm
	case !d.ProfessionalChosen:
		return StepProfessional
	case d.Date == "" || d.Time == "":
		return StepTime
	default:
		return StepConfirm
	}
}
