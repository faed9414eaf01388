package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"
	"salon-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	wizardUsecase       usecase.BookingWizardUsecase
	availabilityUsecase usecase.AvailabilityUsecase
	checkoutUsecase     usecase.CheckoutUsecase
	validator           *validator.CustomValidator
}

func NewBookingHandler(
	wizardUsecase usecase.BookingWizardUsecase,
	availabilityUsecase usecase.AvailabilityUsecase,
	checkoutUsecase usecase.CheckoutUsecase,
	validator *validator.CustomValidator,
) *BookingHandler {
	return &BookingHandler{
		wizardUsecase:       wizardUsecase,
		availabilityUsecase: availabilityUsecase,
		checkoutUsecase:     checkoutUsecase,
		validator:           validator,
	}
}

type availabilityQuery struct {
	Date     string `json:"date" validate:"required,ymd"`
	Duration int    `json:"duration" validate:"gte=0,lte=1440"`
}

func (h *BookingHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.wizardUsecase.GetDraft(r.Context(), mux.Vars(r)["vendorId"])
	if err != nil {
		writeError(w, err, "Failed to get booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking retrieved successfully", draft)
}

func (h *BookingHandler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.wizardUsecase.Discard(r.Context(), mux.Vars(r)["vendorId"]); err != nil {
		writeError(w, err, "Failed to discard booking")
		return
	}

	response.Success(w, http.StatusOK, "Booking discarded successfully", nil)
}

func (h *BookingHandler) ToggleService(w http.ResponseWriter, r *http.Request) {
	var req dto.ToggleServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.wizardUsecase.ToggleService(r.Context(), mux.Vars(r)["vendorId"], &req)
	if err != nil {
		writeError(w, err, "Failed to update services")
		return
	}

	response.Success(w, http.StatusOK, "Services updated successfully", result)
}

func (h *BookingHandler) SelectProfessional(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectProfessionalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	draft, err := h.wizardUsecase.SelectProfessional(r.Context(), mux.Vars(r)["vendorId"], &req)
	if err != nil {
		writeError(w, err, "Failed to select professional")
		return
	}

	response.Success(w, http.StatusOK, "Professional selected successfully", draft)
}

func (h *BookingHandler) SelectSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	draft, err := h.wizardUsecase.SelectSchedule(r.Context(), mux.Vars(r)["vendorId"], &req)
	if err != nil {
		writeError(w, err, "Failed to select schedule")
		return
	}

	response.Success(w, http.StatusOK, "Schedule selected successfully", draft)
}

func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	query := availabilityQuery{Date: r.URL.Query().Get("date")}
	if raw := r.URL.Query().Get("duration"); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil {
			response.ValidationError(w, map[string]string{"duration": "duration must be a number of minutes"})
			return
		}
		query.Duration = duration
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), mux.Vars(r)["vendorId"], query.Date, query.Duration)
	if err != nil {
		writeError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func (h *BookingHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.checkoutUsecase.GetQuote(r.Context(), mux.Vars(r)["vendorId"])
	if err != nil {
		writeError(w, err, "Failed to get quote")
		return
	}

	response.Success(w, http.StatusOK, "Quote retrieved successfully", quote)
}

func (h *BookingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.checkoutUsecase.Submit(r.Context(), mux.Vars(r)["vendorId"], &req)
	if err != nil {
		writeError(w, err, "Failed to place order")
		return
	}

	response.Success(w, http.StatusCreated, "Order placed successfully", result)
}
