package dto

// Request DTOs

type AddressRequest struct {
	Label      string  `json:"label" validate:"required,max=50"`
	Street     string  `json:"street" validate:"required,max=255"`
	City       string  `json:"city" validate:"required,max=100"`
	PostalCode string  `json:"postal_code" validate:"max=20"`
	Latitude   float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude  float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Notes      string  `json:"notes" validate:"max=500"`
	IsDefault  bool    `json:"is_default"`
}

type PaymentMethodRequest struct {
	Type      string `json:"type" validate:"required,oneof=card wallet"`
	Token     string `json:"token" validate:"required"`
	IsDefault bool   `json:"is_default"`
}

// Response DTOs

type AddressResponse struct {
	ID         string  `json:"id"`
	Label      string  `json:"label"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	IsDefault  bool    `json:"is_default"`
}

type AddressListResponse struct {
	Addresses []AddressResponse `json:"addresses"`
	Total     int               `json:"total"`
}

type PaymentMethodResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Brand       string `json:"brand,omitempty"`
	Last4       string `json:"last4,omitempty"`
	ExpiryMonth int    `json:"expiry_month,omitempty"`
	ExpiryYear  int    `json:"expiry_year,omitempty"`
	IsDefault   bool   `json:"is_default"`
}

type PaymentMethodListResponse struct {
	PaymentMethods []PaymentMethodResponse `json:"payment_methods"`
	Total          int                     `json:"total"`
}

type PointsResponse struct {
	Points int    `json:"points"`
	Value  string `json:"value"`
}
