package entity

import "github.com/shopspring/decimal"

// Vendor is a service-providing business listed in the marketplace
type Vendor struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Address      string          `json:"address,omitempty"`
	Rating       float64         `json:"rating,omitempty"`
	ImageURL     string          `json:"image_url,omitempty"`
	Services     []VendorService `json:"services"`
	CompanyHours []CompanyHour   `json:"company_hours"`
}

// VendorService is an item of the vendor catalogue
type VendorService struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Duration      int             `json:"duration"`
	Category      string          `json:"category,omitempty"`
}

// FindService looks up a catalogue item by id
func (v *Vendor) FindService(serviceID string) (*VendorService, bool) {
	for i := range v.Services {
		if v.Services[i].ID == serviceID {
			return &v.Services[i], true
		}
	}
	return nil, false
}

// Selection copies the catalogue item into a draft selection.
// A missing original price falls back to the price itself.
func (s VendorService) Selection() ServiceSelection {
	original := s.OriginalPrice
	if original.IsZero() {
		original = s.Price
	}
	return ServiceSelection{
		ID:            s.ID,
		Name:          s.Name,
		Price:         s.Price,
		OriginalPrice: original,
		Duration:      s.Duration,
		Category:      s.Category,
	}
}

// CompanyHour is the opening configuration of one weekday
type CompanyHour struct {
	Day         string      `json:"day"`
	IsAvailable bool        `json:"is_available"`
	Slots       []HourRange `json:"slots"`
}

// HourRange is an open interval in "HH:MM" local time
type HourRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Technician is a professional working for a vendor
type Technician struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	Title     string  `json:"title,omitempty"`
}

// ServiceArea is a city or district the marketplace operates in
type ServiceArea struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// TimeSlot is one bookable start time of a day
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
