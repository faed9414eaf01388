package handler

import (
	"net/http"

	"salon-booking/internal/usecase"
	"salon-booking/pkg/response"

	"github.com/gorilla/mux"
)

type VendorHandler struct {
	vendorUsecase usecase.VendorUsecase
}

func NewVendorHandler(vendorUsecase usecase.VendorUsecase) *VendorHandler {
	return &VendorHandler{
		vendorUsecase: vendorUsecase,
	}
}

func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendor, err := h.vendorUsecase.GetVendor(r.Context(), mux.Vars(r)["vendorId"])
	if err != nil {
		writeError(w, err, "Failed to get vendor")
		return
	}

	response.Success(w, http.StatusOK, "Vendor retrieved successfully", vendor)
}

func (h *VendorHandler) ListTechnicians(w http.ResponseWriter, r *http.Request) {
	technicians, err := h.vendorUsecase.ListTechnicians(r.Context(), mux.Vars(r)["vendorId"])
	if err != nil {
		writeError(w, err, "Failed to get technicians")
		return
	}

	response.Success(w, http.StatusOK, "Technicians retrieved successfully", technicians)
}

func (h *VendorHandler) ListServiceAreas(w http.ResponseWriter, r *http.Request) {
	areas, err := h.vendorUsecase.ListServiceAreas(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get service areas")
		return
	}

	response.Success(w, http.StatusOK, "Service areas retrieved successfully", areas)
}
