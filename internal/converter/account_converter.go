package converter

import (
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
)

// AddressRequestToEntity converts an AddressRequest DTO to Address entity
func AddressRequestToEntity(req *dto.AddressRequest) *entity.Address {
	return &entity.Address{
		Label:      req.Label,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Notes:      req.Notes,
		IsDefault:  req.IsDefault,
	}
}

// AddressToResponse converts an Address entity to AddressResponse DTO
func AddressToResponse(address *entity.Address) *dto.AddressResponse {
	if address == nil {
		return nil
	}

	return &dto.AddressResponse{
		ID:         address.ID,
		Label:      address.Label,
		Street:     address.Street,
		City:       address.City,
		PostalCode: address.PostalCode,
		Latitude:   address.Latitude,
		Longitude:  address.Longitude,
		Notes:      address.Notes,
		IsDefault:  address.IsDefault,
	}
}

// AddressesToResponses converts a slice of Address entities to slice of AddressResponse DTOs
func AddressesToResponses(addresses []entity.Address) []dto.AddressResponse {
	responses := make([]dto.AddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = *AddressToResponse(&addresses[i])
	}
	return responses
}

// PaymentMethodToResponse converts a PaymentMethod entity to PaymentMethodResponse DTO.
// The payment token never leaves the service.
func PaymentMethodToResponse(method *entity.PaymentMethod) *dto.PaymentMethodResponse {
	if method == nil {
		return nil
	}

	return &dto.PaymentMethodResponse{
		ID:          method.ID,
		Type:        method.Type,
		Brand:       method.Brand,
		Last4:       method.Last4,
		ExpiryMonth: method.ExpiryMonth,
		ExpiryYear:  method.ExpiryYear,
		IsDefault:   method.IsDefault,
	}
}

// PaymentMethodsToResponses converts a slice of PaymentMethod entities to slice of PaymentMethodResponse DTOs
func PaymentMethodsToResponses(methods []entity.PaymentMethod) []dto.PaymentMethodResponse {
	responses := make([]dto.PaymentMethodResponse, len(methods))
	for i := range methods {
		responses[i] = *PaymentMethodToResponse(&methods[i])
	}
	return responses
}

// PointsToResponse converts a PointsBalance entity to PointsResponse DTO
func PointsToResponse(balance *entity.PointsBalance) *dto.PointsResponse {
	if balance == nil {
		return &dto.PointsResponse{Value: "0.00"}
	}
	return &dto.PointsResponse{
		Points: balance.Points,
		Value:  Money(balance.Value),
	}
}
