package marketplace

import (
	"context"
	"net/http"
	"net/url"

	"salon-booking/internal/domain/entity"
)

func (c *Client) ListAddresses(ctx context.Context, token string) ([]entity.Address, error) {
	var addresses []entity.Address
	if err := c.do(ctx, http.MethodGet, "/addresses", nil, token, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *Client) CreateAddress(ctx context.Context, token string, address *entity.Address) (*entity.Address, error) {
	var created entity.Address
	if err := c.do(ctx, http.MethodPost, "/addresses", nil, token, address, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateAddress(ctx context.Context, token, addressID string, address *entity.Address) (*entity.Address, error) {
	var updated entity.Address
	if err := c.do(ctx, http.MethodPut, "/addresses/"+url.PathEscape(addressID), nil, token, address, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteAddress(ctx context.Context, token, addressID string) error {
	return c.do(ctx, http.MethodDelete, "/addresses/"+url.PathEscape(addressID), nil, token, nil, nil)
}

func (c *Client) ListPaymentMethods(ctx context.Context, token string) ([]entity.PaymentMethod, error) {
	var methods []entity.PaymentMethod
	if err := c.do(ctx, http.MethodGet, "/payment-methods", nil, token, nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func (c *Client) CreatePaymentMethod(ctx context.Context, token string, method *entity.PaymentMethod) (*entity.PaymentMethod, error) {
	var created entity.PaymentMethod
	if err := c.do(ctx, http.MethodPost, "/payment-methods", nil, token, method, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeletePaymentMethod(ctx context.Context, token, methodID string) error {
	return c.do(ctx, http.MethodDelete, "/payment-methods/"+url.PathEscape(methodID), nil, token, nil, nil)
}

func (c *Client) GetPointsBalance(ctx context.Context, token string) (*entity.PointsBalance, error) {
	var balance entity.PointsBalance
	if err := c.do(ctx, http.MethodGet, "/points", nil, token, nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}
