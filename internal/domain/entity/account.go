package entity

import "github.com/shopspring/decimal"

// Address is a customer location where the service is delivered
type Address struct {
	ID         string  `json:"id,omitempty"`
	Label      string  `json:"label"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code,omitempty"`
	Latitude   float64 `json:"latitude,omitempty"`
	Longitude  float64 `json:"longitude,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	IsDefault  bool    `json:"is_default"`
}

// PaymentMethod is a stored card or wallet of the customer
type PaymentMethod struct {
	ID          string `json:"id,omitempty"`
	Type        string `json:"type"`
	Brand       string `json:"brand,omitempty"`
	Last4       string `json:"last4,omitempty"`
	ExpiryMonth int    `json:"expiry_month,omitempty"`
	ExpiryYear  int    `json:"expiry_year,omitempty"`
	Token       string `json:"token,omitempty"`
	IsDefault   bool   `json:"is_default"`
}

// PointsBalance is the customer's loyalty wallet
type PointsBalance struct {
	Points int             `json:"points"`
	Value  decimal.Decimal `json:"value"`
}
