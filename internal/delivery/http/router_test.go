package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salon-booking/config"
	"salon-booking/internal/delivery/http/handler"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/infrastructure/marketplace"
	"salon-booking/internal/repository"
	"salon-booking/internal/service"
	"salon-booking/internal/usecase"
	"salon-booking/pkg/jwt"
	"salon-booking/pkg/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubMarketplace struct {
	createErr error
	created   []*entity.OrderRequest
}

func (m *stubMarketplace) GetVendor(_ context.Context, _, vendorID string) (*entity.Vendor, error) {
	if vendorID != "v-1" {
		return nil, &marketplace.APIError{StatusCode: 404, Message: "Vendor not found"}
	}
	return &entity.Vendor{
		ID:   "v-1",
		Name: "Glow Studio",
		Services: []entity.VendorService{
			{ID: "s-cut", Name: "Haircut", Price: decimal.NewFromInt(150), Duration: 45},
		},
		CompanyHours: []entity.CompanyHour{
			{Day: "Tue", IsAvailable: true, Slots: []entity.HourRange{{Start: "09:00", End: "09:30"}}},
		},
	}, nil
}

func (m *stubMarketplace) ListTechnicians(context.Context, string, string) ([]entity.Technician, error) {
	return []entity.Technician{{ID: "t-1", Name: "Ana"}}, nil
}

func (m *stubMarketplace) AvailableCounts(_ context.Context, token, _, _ string, _ int) (map[string]int, error) {
	if token == "" {
		return nil, &marketplace.APIError{StatusCode: 401, Message: "Unauthenticated."}
	}
	return map[string]int{"09:10": 2}, nil
}

func (m *stubMarketplace) ListServiceAreas(context.Context, string) ([]entity.ServiceArea, error) {
	return nil, nil
}

func (m *stubMarketplace) CreateOrder(_ context.Context, _ string, req *entity.OrderRequest) (*entity.RemoteOrder, error) {
	m.created = append(m.created, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &entity.RemoteOrder{ID: "ord-1", Status: entity.OrderStatusPending}, nil
}

func (m *stubMarketplace) ListOrders(context.Context, string, string) ([]entity.RemoteOrder, error) {
	return []entity.RemoteOrder{{ID: "ord-1", Status: entity.OrderStatusPending, Total: decimal.RequireFromString("157.5")}}, nil
}

func (m *stubMarketplace) GetOrder(context.Context, string, string) (*entity.RemoteOrder, error) {
	return nil, &marketplace.APIError{StatusCode: 404, Message: "Not found"}
}

func (m *stubMarketplace) CancelOrder(context.Context, string, string, string) (*entity.RemoteOrder, error) {
	return nil, &marketplace.APIError{StatusCode: 404, Message: "Not found"}
}

type noopLedger struct{}

func (noopLedger) RecordSubmission(context.Context, *service.Submission) error { return nil }

func (noopLedger) RecordCancellation(context.Context, string, *entity.RemoteOrder, string) error {
	return nil
}

type testClock struct{}

// Monday 2026-10-19 08:00 UTC
func (testClock) Now() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }

type testServer struct {
	handler    http.Handler
	market     *stubMarketplace
	jwtService *jwt.JWTService
}

func newTestServer(t *testing.T) *testServer {
	log := logrus.New()
	log.SetOutput(io.Discard)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	market := &stubMarketplace{}
	drafts := repository.NewDraftRepository(client, log, time.Hour)
	resolver := service.NewAvailabilityResolver(10*time.Minute, time.UTC, testClock{}, log)
	pricing := service.NewPricingCalculator(service.DefaultDiscountRate, service.DefaultTaxRate)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret"})
	v := validator.NewValidator()

	router := NewRouter(
		handler.NewVendorHandler(usecase.NewVendorUsecase(log, market)),
		handler.NewBookingHandler(
			usecase.NewBookingWizardUsecase(log, drafts, market, resolver, noopAudit{}),
			usecase.NewAvailabilityUsecase(log, drafts, market, resolver),
			usecase.NewCheckoutUsecase(log, drafts, market, pricing, resolver, noopLedger{}, time.Second),
			v,
		),
		handler.NewAccountHandler(usecase.NewAccountUsecase(log, nil), v),
		handler.NewOrderHandler(usecase.NewOrderUsecase(log, market, noopLedger{}), v),
		handler.NewAuditLogHandler(nil),
		middleware.NewAuthMiddleware(jwtService),
	)

	return &testServer{
		handler:    middleware.NewCORSMiddleware(nil).Handle(router.Setup()),
		market:     market,
		jwtService: jwtService,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, session, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if session != "" {
		req.Header.Set(middleware.SessionHeader, session)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestRouter_SessionIsMintedAndEchoed(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/bookings/v-1/draft", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	session := rec.Header().Get(middleware.SessionHeader)
	require.NotEmpty(t, session)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/bookings/v-1/draft", session, "", nil)
	assert.Equal(t, session, rec.Header().Get(middleware.SessionHeader))
}

func TestRouter_WizardToCheckout(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/bookings/v-1/draft", "", "", nil)
	session := rec.Header().Get(middleware.SessionHeader)

	rec, env := s.do(t, http.MethodPost, "/api/v1/bookings/v-1/draft/services", session, "", map[string]string{"service_id": "s-cut"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var toggled struct {
		Selected bool `json:"selected"`
		Draft    struct {
			NextStep string `json:"next_step"`
			Revision int64  `json:"revision"`
		} `json:"draft"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.True(t, toggled.Selected)
	assert.Equal(t, "professional", toggled.Draft.NextStep)

	rec, env = s.do(t, http.MethodPut, "/api/v1/bookings/v-1/draft/schedule", session, "", map[string]string{"order_type": "now"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var scheduled struct {
		Time     string `json:"time"`
		NextStep string `json:"next_step"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &scheduled))
	assert.Equal(t, "now", scheduled.Time)
	assert.Equal(t, "confirm", scheduled.NextStep)

	rec, env = s.do(t, http.MethodGet, "/api/v1/bookings/v-1/quote", session, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subtotal":"166.67","discount":"16.67","tax":"7.50","total":"157.50","item_count":1,"total_duration":45}`, string(env.Data))

	// Anonymous checkout is sent to the login page
	rec, env = s.do(t, http.MethodPost, "/api/v1/bookings/v-1/checkout", session, "", map[string]string{"address_id": "addr-1"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"redirect":"/login"}`, string(env.Error))

	token, err := s.jwtService.GenerateAccessToken("u-1", "ana@example.com", time.Hour)
	require.NoError(t, err)

	rec, env = s.do(t, http.MethodPost, "/api/v1/bookings/v-1/checkout", session, token, map[string]string{"address_id": "addr-1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var placed struct {
		OrderID  string `json:"order_id"`
		Redirect string `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &placed))
	assert.Equal(t, "ord-1", placed.OrderID)
	assert.Equal(t, "/orders/ord-1/confirmation", placed.Redirect)
	require.Len(t, s.market.created, 1)

	// The draft is gone after a successful order
	rec, env = s.do(t, http.MethodGet, "/api/v1/bookings/v-1/draft", session, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"next_step":"services"`)
}

func TestRouter_CheckoutSurfacesRemoteMessage(t *testing.T) {
	s := newTestServer(t)
	s.market.createErr = &marketplace.APIError{
		StatusCode: 422,
		Message:    "The selected address is outside the service area.",
		Fields:     map[string]string{"address_id": "The selected address is outside the service area."},
	}

	rec, _ := s.do(t, http.MethodGet, "/api/v1/bookings/v-1/draft", "", "", nil)
	session := rec.Header().Get(middleware.SessionHeader)
	s.do(t, http.MethodPost, "/api/v1/bookings/v-1/draft/services", session, "", map[string]string{"service_id": "s-cut"})
	s.do(t, http.MethodPut, "/api/v1/bookings/v-1/draft/schedule", session, "", map[string]string{"order_type": "now"})

	token, err := s.jwtService.GenerateAccessToken("u-1", "", time.Hour)
	require.NoError(t, err)

	rec, env := s.do(t, http.MethodPost, "/api/v1/bookings/v-1/checkout", session, token, map[string]string{"address_id": "addr-far"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "The selected address is outside the service area.", env.Message)
	assert.JSONEq(t, `{"address_id":"The selected address is outside the service area."}`, string(env.Error))
}

func TestRouter_RequestValidation(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPut, "/api/v1/bookings/v-1/draft/schedule", "", "", map[string]string{"order_type": "later", "time": "9am"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Contains(t, fields, "order_type")
	assert.Contains(t, fields, "time")

	rec, _ = s.do(t, http.MethodGet, "/api/v1/bookings/v-1/availability?date=tomorrow", "", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AvailabilityAnonymousNeedsSignIn(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/bookings/v-1/availability?date=2026-10-20&duration=30", "", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var availability struct {
		Source       string `json:"source"`
		AuthRequired bool   `json:"auth_required"`
		Slots        []struct {
			Time      string `json:"time"`
			Available bool   `json:"available"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &availability))
	assert.True(t, availability.AuthRequired)
	assert.Equal(t, "basic", availability.Source)
	assert.Len(t, availability.Slots, 3)

	token, err := s.jwtService.GenerateAccessToken("u-1", "", time.Hour)
	require.NoError(t, err)

	rec, env = s.do(t, http.MethodGet, "/api/v1/bookings/v-1/availability?date=2026-10-20&duration=30", "", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &availability))
	assert.False(t, availability.AuthRequired)
	assert.Equal(t, "remote", availability.Source)
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/orders", "", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"redirect":"/login"}`, string(env.Error))

	rec, _ = s.do(t, http.MethodGet, "/api/v1/me/points", "", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := s.jwtService.GenerateAccessToken("u-1", "", time.Hour)
	require.NoError(t, err)

	rec, env = s.do(t, http.MethodGet, "/api/v1/orders", "", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"total":"157.50"`)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/orders/ord-404", "", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_UnknownVendor(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/vendors/v-404", "", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PreflightExposesSessionHeader(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/bookings/v-1/draft", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	req.Header.Set("Access-Control-Request-Headers", middleware.SessionHeader)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

type noopAudit struct{}

func (noopAudit) Record(context.Context, *gorm.DB, string, string, string, entity.JSON) error {
	return nil
}
