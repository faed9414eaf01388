package repository

import (
	"context"

	"salon-booking/internal/domain/entity"
)

// The gateways below are served by the remote marketplace REST API.
// token is the caller's bearer token; an empty token calls anonymously.

type VendorGateway interface {
	GetVendor(ctx context.Context, token, vendorID string) (*entity.Vendor, error)
	ListTechnicians(ctx context.Context, token, vendorID string) ([]entity.Technician, error)
	// AvailableCounts returns the free technician count per "HH:MM" start time
	AvailableCounts(ctx context.Context, token, vendorID, date string, duration int) (map[string]int, error)
	ListServiceAreas(ctx context.Context, token string) ([]entity.ServiceArea, error)
}

type OrderGateway interface {
	CreateOrder(ctx context.Context, token string, req *entity.OrderRequest) (*entity.RemoteOrder, error)
	ListOrders(ctx context.Context, token, status string) ([]entity.RemoteOrder, error)
	GetOrder(ctx context.Context, token, orderID string) (*entity.RemoteOrder, error)
	CancelOrder(ctx context.Context, token, orderID, reason string) (*entity.RemoteOrder, error)
}

type AccountGateway interface {
	ListAddresses(ctx context.Context, token string) ([]entity.Address, error)
	CreateAddress(ctx context.Context, token string, address *entity.Address) (*entity.Address, error)
	UpdateAddress(ctx context.Context, token, addressID string, address *entity.Address) (*entity.Address, error)
	DeleteAddress(ctx context.Context, token, addressID string) error
	ListPaymentMethods(ctx context.Context, token string) ([]entity.PaymentMethod, error)
	CreatePaymentMethod(ctx context.Context, token string, method *entity.PaymentMethod) (*entity.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, token, methodID string) error
	GetPointsBalance(ctx context.Context, token string) (*entity.PointsBalance, error)
}
