package http

import (
	"net/http"

	"salon-booking/internal/delivery/http/handler"
	"salon-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	vendorHandler   *handler.VendorHandler
	bookingHandler  *handler.BookingHandler
	accountHandler  *handler.AccountHandler
	orderHandler    *handler.OrderHandler
	auditLogHandler *handler.AuditLogHandler
	authMiddleware  *middleware.AuthMiddleware
}

func NewRouter(
	vendorHandler *handler.VendorHandler,
	bookingHandler *handler.BookingHandler,
	accountHandler *handler.AccountHandler,
	orderHandler *handler.OrderHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		vendorHandler:   vendorHandler,
		bookingHandler:  bookingHandler,
		accountHandler:  accountHandler,
		orderHandler:    orderHandler,
		auditLogHandler: auditLogHandler,
		authMiddleware:  authMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Catalogue routes (public, identity forwarded when present)
	public := api.NewRoute().Subrouter()
	public.Use(r.authMiddleware.Identify)
	public.HandleFunc("/vendors/{vendorId}", r.vendorHandler.GetVendor).Methods(http.MethodGet)
	public.HandleFunc("/vendors/{vendorId}/technicians", r.vendorHandler.ListTechnicians).Methods(http.MethodGet)
	public.HandleFunc("/service-areas", r.vendorHandler.ListServiceAreas).Methods(http.MethodGet)

	// Booking wizard routes (booking session, optional identity)
	booking := api.PathPrefix("/bookings/{vendorId}").Subrouter()
	booking.Use(middleware.BookingSession)
	booking.Use(r.authMiddleware.Identify)
	booking.HandleFunc("/draft", r.bookingHandler.GetDraft).Methods(http.MethodGet)
	booking.HandleFunc("/draft", r.bookingHandler.DiscardDraft).Methods(http.MethodDelete)
	booking.HandleFunc("/draft/services", r.bookingHandler.ToggleService).Methods(http.MethodPost)
	booking.HandleFunc("/draft/professional", r.bookingHandler.SelectProfessional).Methods(http.MethodPut)
	booking.HandleFunc("/draft/schedule", r.bookingHandler.SelectSchedule).Methods(http.MethodPut)
	booking.HandleFunc("/availability", r.bookingHandler.GetAvailability).Methods(http.MethodGet)
	booking.HandleFunc("/quote", r.bookingHandler.GetQuote).Methods(http.MethodGet)

	// Checkout (booking session, sign-in required)
	checkout := api.PathPrefix("/bookings/{vendorId}").Subrouter()
	checkout.Use(middleware.BookingSession)
	checkout.Use(r.authMiddleware.Authenticate)
	checkout.HandleFunc("/checkout", r.bookingHandler.Checkout).Methods(http.MethodPost)

	// Account routes (protected)
	me := api.PathPrefix("/me").Subrouter()
	me.Use(r.authMiddleware.Authenticate)
	me.HandleFunc("/addresses", r.accountHandler.ListAddresses).Methods(http.MethodGet)
	me.HandleFunc("/addresses", r.accountHandler.CreateAddress).Methods(http.MethodPost)
	me.HandleFunc("/addresses/{id}", r.accountHandler.UpdateAddress).Methods(http.MethodPut)
	me.HandleFunc("/addresses/{id}", r.accountHandler.DeleteAddress).Methods(http.MethodDelete)
	me.HandleFunc("/payment-methods", r.accountHandler.ListPaymentMethods).Methods(http.MethodGet)
	me.HandleFunc("/payment-methods", r.accountHandler.CreatePaymentMethod).Methods(http.MethodPost)
	me.HandleFunc("/payment-methods/{id}", r.accountHandler.DeletePaymentMethod).Methods(http.MethodDelete)
	me.HandleFunc("/points", r.accountHandler.GetPoints).Methods(http.MethodGet)
	me.HandleFunc("/activity", r.auditLogHandler.GetMyActivity).Methods(http.MethodGet)

	// Order routes (protected)
	orders := api.PathPrefix("/orders").Subrouter()
	orders.Use(r.authMiddleware.Authenticate)
	orders.HandleFunc("", r.orderHandler.ListOrders).Methods(http.MethodGet)
	orders.HandleFunc("/{id}", r.orderHandler.GetOrder).Methods(http.MethodGet)
	orders.HandleFunc("/{id}/cancel", r.orderHandler.CancelOrder).Methods(http.MethodPost)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
