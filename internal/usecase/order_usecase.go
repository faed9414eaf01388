package usecase

import (
	"context"
	"errors"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

type OrderUsecase interface {
	ListOrders(ctx context.Context, status string) (*dto.OrderListResponse, error)
	GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error)
	CancelOrder(ctx context.Context, orderID string, req *dto.CancelOrderRequest) (*dto.OrderResponse, error)
}

type orderUsecase struct {
	log    *logrus.Logger
	orders repository.OrderGateway
	ledger service.OrderLedger
}

func NewOrderUsecase(log *logrus.Logger, orders repository.OrderGateway, ledger service.OrderLedger) OrderUsecase {
	return &orderUsecase{
		log:    log,
		orders: orders,
		ledger: ledger,
	}
}

func (u *orderUsecase) ListOrders(ctx context.Context, status string) (*dto.OrderListResponse, error) {
	token := middleware.GetTokenFromContext(ctx)
	if token == "" {
		return nil, ErrAuthRequired
	}

	orders, err := u.orders.ListOrders(ctx, token, status)
	if err != nil {
		u.log.Warnf("Failed to list orders: %+v", err)
		return nil, remoteError(err, nil)
	}

	return &dto.OrderListResponse{
		Orders: converter.OrdersToResponses(orders),
		Total:  len(orders),
	}, nil
}

func (u *orderUsecase) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	token := middleware.GetTokenFromContext(ctx)
	if token == "" {
		return nil, ErrAuthRequired
	}

	order, err := u.orders.GetOrder(ctx, token, orderID)
	if err != nil {
		mapped := remoteError(err, ErrOrderNotFound)
		if !errors.Is(mapped, ErrOrderNotFound) {
			u.log.Warnf("Failed to get order %s: %+v", orderID, err)
		}
		return nil, mapped
	}

	return converter.OrderToResponse(order), nil
}

// CancelOrder cancels remotely, then mirrors the new status into the ledger.
// A ledger failure does not undo the remote cancellation.
func (u *orderUsecase) CancelOrder(ctx context.Context, orderID string, req *dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrAuthRequired
	}

	order, err := u.orders.CancelOrder(ctx, middleware.GetTokenFromContext(ctx), orderID, req.Reason)
	if err != nil {
		mapped := remoteError(err, ErrOrderNotFound)
		if !errors.Is(mapped, ErrOrderNotFound) {
			u.log.Warnf("Failed to cancel order %s: %+v", orderID, err)
		}
		return nil, mapped
	}

	if order.ID == "" {
		order.ID = orderID
	}

	if err := u.ledger.RecordCancellation(context.WithoutCancel(ctx), userID, order, req.Reason); err != nil {
		u.log.Warnf("Failed to record cancellation of order %s: %+v", orderID, err)
	}

	return converter.OrderToResponse(order), nil
}
