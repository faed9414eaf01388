package handler

import (
	"context"
	"errors"
	"net/http"

	"salon-booking/internal/infrastructure/marketplace"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"
)

// writeError answers with the category of err. Marketplace errors keep their
// message and field errors as sent.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		response.UnprocessableEntity(w, vErr.Error(), vErr.Fields)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrAuthRequired):
		response.AuthRequired(w, "")
		return
	case errors.Is(err, usecase.ErrSessionRequired):
		response.Error(w, http.StatusBadRequest, "Booking session is required", nil)
		return
	case errors.Is(err, usecase.ErrVendorNotFound):
		response.NotFound(w, "Vendor not found")
		return
	case errors.Is(err, usecase.ErrServiceNotFound):
		response.NotFound(w, "Service not found")
		return
	case errors.Is(err, usecase.ErrProfessionalNotFound):
		response.NotFound(w, "Professional not found")
		return
	case errors.Is(err, usecase.ErrOrderNotFound):
		response.NotFound(w, "Order not found")
		return
	case errors.Is(err, usecase.ErrAddressNotFound):
		response.NotFound(w, "Address not found")
		return
	case errors.Is(err, usecase.ErrPaymentMethodNotFound):
		response.NotFound(w, "Payment method not found")
		return
	case errors.Is(err, usecase.ErrDraftEmpty):
		response.Error(w, http.StatusBadRequest, "Select at least one service first", nil)
		return
	case errors.Is(err, usecase.ErrDraftConflict):
		response.Conflict(w, "Booking was changed in another window, reload and try again")
		return
	case errors.Is(err, usecase.ErrSubmissionInProgress):
		response.Conflict(w, "Your order is already being submitted")
		return
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the answer.
		return
	}

	if apiErr, ok := marketplace.AsAPIError(err); ok {
		writeAPIError(w, apiErr)
		return
	}

	response.InternalServerError(w, fallback)
}

func writeAPIError(w http.ResponseWriter, apiErr *marketplace.APIError) {
	switch {
	case apiErr.StatusCode == http.StatusUnauthorized:
		response.AuthRequired(w, apiErr.Message)
	case len(apiErr.Fields) > 0:
		status := apiErr.StatusCode
		if status < 400 || status >= 500 {
			status = http.StatusUnprocessableEntity
		}
		response.Error(w, status, apiErr.Message, apiErr.Fields)
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		response.Error(w, apiErr.StatusCode, apiErr.Message, nil)
	default:
		response.Error(w, http.StatusBadGateway, apiErr.Message, nil)
	}
}
