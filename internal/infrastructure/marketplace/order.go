package marketplace

import (
	"context"
	"net/http"
	"net/url"

	"salon-booking/internal/domain/entity"
)

func (c *Client) CreateOrder(ctx context.Context, token string, req *entity.OrderRequest) (*entity.RemoteOrder, error) {
	var order entity.RemoteOrder
	if err := c.do(ctx, http.MethodPost, "/orders", nil, token, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, token, status string) ([]entity.RemoteOrder, error) {
	var query url.Values
	if status != "" {
		query = url.Values{"status": []string{status}}
	}

	var orders []entity.RemoteOrder
	if err := c.do(ctx, http.MethodGet, "/orders", query, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*entity.RemoteOrder, error) {
	var order entity.RemoteOrder
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, token, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

type cancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

func (c *Client) CancelOrder(ctx context.Context, token, orderID, reason string) (*entity.RemoteOrder, error) {
	var order entity.RemoteOrder
	path := "/orders/" + url.PathEscape(orderID) + "/cancel"
	if err := c.do(ctx, http.MethodPost, path, nil, token, cancelOrderRequest{Reason: reason}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
