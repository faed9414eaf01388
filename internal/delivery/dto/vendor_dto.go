package dto

// Response DTOs

type VendorServiceResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price"`
	Duration      int    `json:"duration"`
	Category      string `json:"category,omitempty"`
}

type HourRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CompanyHourResponse struct {
	Day         string              `json:"day"`
	IsAvailable bool                `json:"is_available"`
	Slots       []HourRangeResponse `json:"slots"`
}

type TechnicianResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Rating    float64 `json:"rating,omitempty"`
	Title     string  `json:"title,omitempty"`
}

type VendorResponse struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Description  string                  `json:"description,omitempty"`
	Address      string                  `json:"address,omitempty"`
	Rating       float64                 `json:"rating,omitempty"`
	ImageURL     string                  `json:"image_url,omitempty"`
	Services     []VendorServiceResponse `json:"services"`
	CompanyHours []CompanyHourResponse   `json:"company_hours"`
	Technicians  []TechnicianResponse    `json:"technicians,omitempty"`
}

type TechnicianListResponse struct {
	Technicians []TechnicianResponse `json:"technicians"`
	Total       int                  `json:"total"`
}

type ServiceAreaResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

type ServiceAreaListResponse struct {
	Areas []ServiceAreaResponse `json:"areas"`
	Total int                   `json:"total"`
}
