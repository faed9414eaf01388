package converter

import (
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
)

// OrderToResponse converts a RemoteOrder entity to OrderResponse DTO
func OrderToResponse(order *entity.RemoteOrder) *dto.OrderResponse {
	if order == nil {
		return nil
	}

	items := make([]dto.OrderItemResponse, len(order.Items))
	for i, it := range order.Items {
		items[i] = dto.OrderItemResponse{
			ServiceID: it.ServiceID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     Money(it.Price),
		}
	}

	return &dto.OrderResponse{
		ID:           order.ID,
		Status:       string(order.Status),
		VendorID:     order.VendorID,
		VendorName:   order.VendorName,
		TechnicianID: order.TechnicianID,
		Date:         order.Date,
		Time:         order.Time,
		OrderType:    string(order.OrderType),
		Total:        Money(order.Total),
		Items:        items,
		CreatedAt:    order.CreatedAt,
	}
}

// OrdersToResponses converts a slice of RemoteOrder entities to slice of OrderResponse DTOs
func OrdersToResponses(orders []entity.RemoteOrder) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *OrderToResponse(&orders[i])
	}
	return responses
}
