package dto

import "time"

// Request DTOs

type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Response DTOs

type OrderItemResponse struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	Status       string              `json:"status"`
	VendorID     string              `json:"vendor_id"`
	VendorName   string              `json:"vendor_name,omitempty"`
	TechnicianID *string             `json:"technician_id,omitempty"`
	Date         string              `json:"date"`
	Time         string              `json:"time"`
	OrderType    string              `json:"order_type"`
	Total        string              `json:"total"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"created_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}
