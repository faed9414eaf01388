package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"
	"salon-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
	validator    *validator.CustomValidator
}

func NewOrderHandler(orderUsecase usecase.OrderUsecase, validator *validator.CustomValidator) *OrderHandler {
	return &OrderHandler{
		orderUsecase: orderUsecase,
		validator:    validator,
	}
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err, "Failed to get orders")
		return
	}

	response.Success(w, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderUsecase.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get order")
		return
	}

	response.Success(w, http.StatusOK, "Order retrieved successfully", order)
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	// The body is optional
	var req dto.CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.orderUsecase.CancelOrder(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to cancel order")
		return
	}

	response.Success(w, http.StatusOK, "Order cancelled successfully", order)
}
