package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus mirrors the status reported by the marketplace
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ActiveOrderStatuses are the statuses that can still change remotely
var ActiveOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusInProgress,
}

// Order is the local ledger row of an order submitted through the booking wizard
type Order struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RemoteOrderID      string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"remote_order_id"`
	UserID             string          `gorm:"type:varchar(100);not null;index" json:"user_id"`
	VendorID           string          `gorm:"type:varchar(100);not null;index" json:"vendor_id"`
	Status             OrderStatus     `gorm:"type:varchar(30);not null;default:'pending';index" json:"status"`
	OrderType          OrderType       `gorm:"type:varchar(20);not null" json:"order_type"`
	RecurringFrequency string          `gorm:"type:varchar(20)" json:"recurring_frequency,omitempty"`
	ScheduledDate      string          `gorm:"type:varchar(10);not null" json:"scheduled_date"`
	ScheduledTime      string          `gorm:"type:varchar(5);not null" json:"scheduled_time"`
	ProfessionalID     *string         `gorm:"type:varchar(100)" json:"professional_id,omitempty"`
	AddressID          string          `gorm:"type:varchar(100);not null" json:"address_id"`
	Items              JSON            `gorm:"type:jsonb" json:"items"`
	Subtotal           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Discount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	Tax                decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// IsActive checks if the remote status may still change
func (o *Order) IsActive() bool {
	for _, s := range ActiveOrderStatuses {
		if o.Status == s {
			return true
		}
	}
	return false
}

// OrderLineItem is one service of an order creation request
type OrderLineItem struct {
	ServiceID string `json:"service_id"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest is the order creation payload sent to the marketplace
type OrderRequest struct {
	VendorID           string          `json:"vendor_id"`
	AddressID          string          `json:"address_id"`
	TechnicianID       *string         `json:"technician_id"`
	Date               string          `json:"date"`
	Time               string          `json:"time"`
	OrderType          OrderType       `json:"order_type"`
	RecurringFrequency string          `json:"recurring_frequency,omitempty"`
	PaymentMethodID    string          `json:"payment_method_id,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Items              []OrderLineItem `json:"items"`
}

// RemoteOrder is an order as the marketplace reports it
type RemoteOrder struct {
	ID           string          `json:"id"`
	Status       OrderStatus     `json:"status"`
	VendorID     string          `json:"vendor_id"`
	VendorName   string          `json:"vendor_name,omitempty"`
	TechnicianID *string         `json:"technician_id,omitempty"`
	Date         string          `json:"date"`
	Time         string          `json:"time"`
	OrderType    OrderType       `json:"order_type"`
	Total        decimal.Decimal `json:"total"`
	Items        []RemoteItem    `json:"items,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// RemoteItem is a line of a marketplace order
type RemoteItem struct {
	ServiceID string          `json:"service_id"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Quote is the display-only price estimate of a draft
type Quote struct {
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	ItemCount     int
	TotalDuration int
}
