package dto

// Request DTOs

type CheckoutRequest struct {
	AddressID       string `json:"address_id" validate:"required"`
	PaymentMethodID string `json:"payment_method_id"`
	Notes           string `json:"notes" validate:"max=500"`
	Revision        *int64 `json:"revision" validate:"omitempty,gte=0"`
}

// Response DTOs

type CheckoutResponse struct {
	OrderID  string         `json:"order_id"`
	Status   string         `json:"status"`
	Redirect string         `json:"redirect"`
	Quote    *QuoteResponse `json:"quote"`
}
