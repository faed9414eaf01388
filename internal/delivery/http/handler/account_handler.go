package handler

import (
	"encoding/json"
	"net/http"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"
	"salon-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
	validator      *validator.CustomValidator
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase, validator *validator.CustomValidator) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
		validator:      validator,
	}
}

func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.accountUsecase.ListAddresses(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get addresses")
		return
	}

	response.Success(w, http.StatusOK, "Addresses retrieved successfully", addresses)
}

func (h *AccountHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	address, err := h.accountUsecase.CreateAddress(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create address")
		return
	}

	response.Success(w, http.StatusCreated, "Address created successfully", address)
}

func (h *AccountHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	var req dto.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	address, err := h.accountUsecase.UpdateAddress(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err, "Failed to update address")
		return
	}

	response.Success(w, http.StatusOK, "Address updated successfully", address)
}

func (h *AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUsecase.DeleteAddress(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to delete address")
		return
	}

	response.Success(w, http.StatusOK, "Address deleted successfully", nil)
}

func (h *AccountHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.accountUsecase.ListPaymentMethods(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get payment methods")
		return
	}

	response.Success(w, http.StatusOK, "Payment methods retrieved successfully", methods)
}

func (h *AccountHandler) CreatePaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	method, err := h.accountUsecase.CreatePaymentMethod(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to add payment method")
		return
	}

	response.Success(w, http.StatusCreated, "Payment method added successfully", method)
}

func (h *AccountHandler) DeletePaymentMethod(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUsecase.DeletePaymentMethod(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Failed to delete payment method")
		return
	}

	response.Success(w, http.StatusOK, "Payment method deleted successfully", nil)
}

func (h *AccountHandler) GetPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.accountUsecase.GetPoints(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get points balance")
		return
	}

	response.Success(w, http.StatusOK, "Points balance retrieved successfully", points)
}
