package usecase

import (
	"context"
	"errors"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrAddressNotFound       = errors.New("address not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

type AccountUsecase interface {
	ListAddresses(ctx context.Context) (*dto.AddressListResponse, error)
	CreateAddress(ctx context.Context, req *dto.AddressRequest) (*dto.AddressResponse, error)
	UpdateAddress(ctx context.Context, addressID string, req *dto.AddressRequest) (*dto.AddressResponse, error)
	DeleteAddress(ctx context.Context, addressID string) error
	ListPaymentMethods(ctx context.Context) (*dto.PaymentMethodListResponse, error)
	CreatePaymentMethod(ctx context.Context, req *dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error)
	DeletePaymentMethod(ctx context.Context, methodID string) error
	GetPoints(ctx context.Context) (*dto.PointsResponse, error)
}

type accountUsecase struct {
	log      *logrus.Logger
	accounts repository.AccountGateway
}

func NewAccountUsecase(log *logrus.Logger, accounts repository.AccountGateway) AccountUsecase {
	return &accountUsecase{
		log:      log,
		accounts: accounts,
	}
}

// token returns the caller's bearer token; account data is never read anonymously
func (u *accountUsecase) token(ctx context.Context) (string, error) {
	token := middleware.GetTokenFromContext(ctx)
	if token == "" {
		return "", ErrAuthRequired
	}
	return token, nil
}

func (u *accountUsecase) ListAddresses(ctx context.Context) (*dto.AddressListResponse, error) {
	token, err := u.token(ctx)
	if err != nil {
		return nil, err
	}

	addresses, err := u.accounts.ListAddresses(ctx, token)
	if err != nil {
		u.log.Warnf("Failed to list addresses: %+v", err)
		return nil, remoteError(err, nil)
	}

	return &dto.AddressListResponse{
		Addresses: converter.AddressesToResponses(addresses),
		Total:     len(addresses),
	}, nil
}

func (u *accountUsecase) CreateAddress(ctx context.Context, req *dto.AddressRequest) (*dto.AddressResponse, error) {
	token, err := u.token(ctx)
	if err != nil {
		return nil, err
	}

	address, err := u.accounts.CreateAddress(ctx, token, converter.AddressRequestToEntity(req))
	if err != nil {
		u.log.Warnf("Failed to create address: %+v", err)
		return nil, remoteError(err, nil)
	}

	return converter.AddressToResponse(address), nil
}

func (u *accountUsecase) UpdateAddress(ctx context.Context, addressID string, req *dto.AddressRequest) (*dto.AddressResponse, error) {
	token, err := u.token(ctx)
	if err != nil {
		return nil, err
	}

	address, err := u.accounts.UpdateAddress(ctx, token, addressID, converter.AddressRequestToEntity(req))
	if err != nil {
		return nil, u.accountError("update address "+addressID, err, ErrAddressNotFound)
	}

	return converter.AddressToResponse(address), nil
}

func (u *accountUsecase) DeleteAddress(ctx context.Context, addressID string) error {
	token, err := u.token(ctx)
	if err != nil {
		return err
	}

	if err := u.accounts.DeleteAddress(ctx, token, addressID); err != nil {
		return u.accountError("delete address "+addressID, err, ErrAddressNotFound)
	}
	return nil
}

func (u *accountUsecase) ListPaymentMethods(ctx context.Context) (*dto.PaymentMethodListResponse, error) {
	token, err := u.token(ctx)
	if err != nil {
		return nil, err
	}

	methods, err := u.accounts.ListPaymentMethods(ctx, token)
	if err != nil {
		u.log.Warnf("Failed to list payment methods: %+v", err)
		return nil, remoteError(err, nil)
	}

	return &dto.PaymentMethodListResponse{
		PaymentMethods: converter.PaymentMethodsToResponses(methods),
		Total:          len(methods),
	}, nil
}

func (u *accountUsecase) CreatePaymentMethod(ctx context.Context, req *dto.PaymentMethodRequest) (*dto.PaymentMethodResponse, error) {
	token, err := u.token(ctx)
	if err != nil {
		return nil, err
	}

	method, err := u.accounts.CreatePaymentMethod(ctx, token, &entity.PaymentMethod{
		Type:      req.Type,
		Token:     req.Token,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		u.log.Warnf("Failed to create payment method: %+v", err)
		return nil, remoteError(err, nil)
	}

	return converter.PaymentMethodToResponse(method), nil
}

func (u *accountUsecase) DeletePaymentMethod(ctx context.Context, methodID string) error {
	token, err := u.token(ctx)
	if err != nil {
		return err
	}

	if err := u.accounts.DeletePaymentMethod(ctx, token, methodID); err != nil {
		return u.accountError("delete payment method "+methodID, err, ErrPaymentMethodNotFound)
	}
	return nil
}

func (u *accountUsecase) GetPoints(ctx context.Context) (*dto.PointsResponse, error) {
	token, err := u.token(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := u.accounts.GetPointsBalance(ctx, token)
	if err != nil {
		u.log.Warnf("Failed to get points balance: %+v", err)
		return nil, remoteError(err, nil)
	}

	return converter.PointsToResponse(balance), nil
}

func (u *accountUsecase) accountError(op string, err error, notFound error) error {
	mapped := remoteError(err, notFound)
	if !errors.Is(mapped, notFound) {
		u.log.Warnf("Failed to %s: %+v", op, err)
	}
	return mapped
}
