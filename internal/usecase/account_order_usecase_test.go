package usecase

import (
	"context"
	"testing"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/infrastructure/marketplace"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountGateway struct {
	addresses []entity.Address
	deleteErr error
	pointsErr error
	lastToken string
}

func (g *fakeAccountGateway) ListAddresses(_ context.Context, token string) ([]entity.Address, error) {
	g.lastToken = token
	return g.addresses, nil
}

func (g *fakeAccountGateway) CreateAddress(_ context.Context, _ string, address *entity.Address) (*entity.Address, error) {
	created := *address
	created.ID = "addr-new"
	return &created, nil
}

func (g *fakeAccountGateway) UpdateAddress(_ context.Context, _, addressID string, address *entity.Address) (*entity.Address, error) {
	updated := *address
	updated.ID = addressID
	return &updated, nil
}

func (g *fakeAccountGateway) DeleteAddress(context.Context, string, string) error {
	return g.deleteErr
}

func (g *fakeAccountGateway) ListPaymentMethods(context.Context, string) ([]entity.PaymentMethod, error) {
	return []entity.PaymentMethod{{ID: "pm-1", Type: "card", Brand: "visa", Last4: "4242", IsDefault: true}}, nil
}

func (g *fakeAccountGateway) CreatePaymentMethod(_ context.Context, _ string, method *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	return &entity.PaymentMethod{ID: "pm-2", Type: method.Type, IsDefault: method.IsDefault}, nil
}

func (g *fakeAccountGateway) DeletePaymentMethod(context.Context, string, string) error {
	return &marketplace.APIError{StatusCode: 404, Message: "Not found"}
}

func (g *fakeAccountGateway) GetPointsBalance(context.Context, string) (*entity.PointsBalance, error) {
	if g.pointsErr != nil {
		return nil, g.pointsErr
	}
	return &entity.PointsBalance{Points: 120, Value: decimal.RequireFromString("12")}, nil
}

func TestAccount_RequiresSignIn(t *testing.T) {
	uc := NewAccountUsecase(quietLogger(), &fakeAccountGateway{})

	_, err := uc.ListAddresses(sessionCtx())
	assert.ErrorIs(t, err, ErrAuthRequired)

	_, err = uc.GetPoints(context.Background())
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestAccount_Addresses(t *testing.T) {
	gateway := &fakeAccountGateway{addresses: []entity.Address{{ID: "addr-1", Label: "Home", Street: "1 Main St", City: "Springfield"}}}
	uc := NewAccountUsecase(quietLogger(), gateway)
	ctx := userCtx()

	list, err := uc.ListAddresses(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "Home", list.Addresses[0].Label)
	assert.Equal(t, testToken, gateway.lastToken)

	created, err := uc.CreateAddress(ctx, &dto.AddressRequest{Label: "Office", Street: "2 Side St", City: "Springfield"})
	require.NoError(t, err)
	assert.Equal(t, "addr-new", created.ID)
	assert.Equal(t, "Office", created.Label)

	updated, err := uc.UpdateAddress(ctx, "addr-1", &dto.AddressRequest{Label: "Home", Street: "3 Main St", City: "Springfield"})
	require.NoError(t, err)
	assert.Equal(t, "addr-1", updated.ID)
	assert.Equal(t, "3 Main St", updated.Street)

	gateway.deleteErr = &marketplace.APIError{StatusCode: 404, Message: "Not found"}
	assert.ErrorIs(t, uc.DeleteAddress(ctx, "addr-9"), ErrAddressNotFound)
}

func TestAccount_PaymentMethodsAndPoints(t *testing.T) {
	gateway := &fakeAccountGateway{}
	uc := NewAccountUsecase(quietLogger(), gateway)
	ctx := userCtx()

	methods, err := uc.ListPaymentMethods(ctx)
	require.NoError(t, err)
	require.Len(t, methods.PaymentMethods, 1)
	assert.Equal(t, "4242", methods.PaymentMethods[0].Last4)

	created, err := uc.CreatePaymentMethod(ctx, &dto.PaymentMethodRequest{Type: "wallet", Token: "tok", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, "wallet", created.Type)

	assert.ErrorIs(t, uc.DeletePaymentMethod(ctx, "pm-9"), ErrPaymentMethodNotFound)

	points, err := uc.GetPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, 120, points.Points)
	assert.Equal(t, "12.00", points.Value)

	gateway.pointsErr = &marketplace.APIError{StatusCode: 401, Message: "Unauthenticated."}
	_, err = uc.GetPoints(ctx)
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestOrder_CancelRecordsLedger(t *testing.T) {
	orders := &fakeOrderGateway{remote: &entity.RemoteOrder{ID: "ord-1", Status: entity.OrderStatusPending}}
	ledger := &fakeLedger{}
	uc := NewOrderUsecase(quietLogger(), orders, ledger)

	res, err := uc.CancelOrder(userCtx(), "ord-1", &dto.CancelOrderRequest{Reason: "changed plans"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.OrderStatusCancelled), res.Status)
	assert.Equal(t, []string{"ord-1"}, ledger.cancellations)
}

func TestOrder_CancelNotFound(t *testing.T) {
	orders := &fakeOrderGateway{cancelErr: &marketplace.APIError{StatusCode: 404, Message: "Not found"}}
	ledger := &fakeLedger{}
	uc := NewOrderUsecase(quietLogger(), orders, ledger)

	_, err := uc.CancelOrder(userCtx(), "ord-9", &dto.CancelOrderRequest{})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Empty(t, ledger.cancellations)

	_, err = uc.CancelOrder(sessionCtx(), "ord-9", &dto.CancelOrderRequest{})
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestOrder_GetAndList(t *testing.T) {
	orders := &fakeOrderGateway{remote: &entity.RemoteOrder{ID: "ord-1", Status: entity.OrderStatusConfirmed, Total: decimal.RequireFromString("157.5")}}
	uc := NewOrderUsecase(quietLogger(), orders, &fakeLedger{})
	ctx := userCtx()

	list, err := uc.ListOrders(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "157.50", list.Orders[0].Total)

	order, err := uc.GetOrder(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", order.Status)

	_, err = uc.GetOrder(ctx, "ord-2")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
