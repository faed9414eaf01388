package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/domain/entity"
	domainRepo "salon-booking/internal/domain/repository"
	"salon-booking/internal/infrastructure/marketplace"
	redisRepo "salon-booking/internal/repository"
	"salon-booking/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	testVendorID  = "v-1"
	testSessionID = "7f9c3a52-1d8e-4c1b-9a55-2f7d0c6e8b11"
	testUserID    = "u-1"
	testToken     = "token-abc"
)

// 2026-10-19 10:00 UTC, a Monday
var testNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newDraftStore(t *testing.T) domainRepo.DraftRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redisRepo.NewDraftRepository(client, quietLogger(), 24*time.Hour)
}

func newTestResolver() *service.AvailabilityResolver {
	return service.NewAvailabilityResolver(10*time.Minute, time.UTC, fixedClock{now: testNow}, quietLogger())
}

func sessionCtx() context.Context {
	return middleware.WithSessionID(context.Background(), testSessionID)
}

func userCtx() context.Context {
	return middleware.WithUser(sessionCtx(), testUserID, testToken)
}

func testVendor() *entity.Vendor {
	return &entity.Vendor{
		ID:   testVendorID,
		Name: "Glow Studio",
		Services: []entity.VendorService{
			{ID: "s-cut", Name: "Haircut", Price: decimal.NewFromInt(150), Duration: 45},
			{ID: "s-nail", Name: "Manicure", Price: decimal.RequireFromString("90"), OriginalPrice: decimal.NewFromInt(100), Duration: 30},
		},
		CompanyHours: []entity.CompanyHour{
			{Day: "Monday", IsAvailable: true, Slots: []entity.HourRange{{Start: "09:00", End: "12:00"}}},
			{Day: "Tuesday", IsAvailable: true, Slots: []entity.HourRange{{Start: "09:00", End: "09:30"}}},
		},
	}
}

type fakeVendorGateway struct {
	mu          sync.Mutex
	vendor      *entity.Vendor
	vendorErr   error
	technicians []entity.Technician
	techErr     error
	counts      map[string]int
	countsErr   error
	countCalls  int
	lastToken   string
}

func (g *fakeVendorGateway) GetVendor(_ context.Context, token, vendorID string) (*entity.Vendor, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastToken = token
	if g.vendorErr != nil {
		return nil, g.vendorErr
	}
	if g.vendor == nil || g.vendor.ID != vendorID {
		return nil, &marketplace.APIError{StatusCode: 404, Message: "Vendor not found"}
	}
	return g.vendor, nil
}

func (g *fakeVendorGateway) ListTechnicians(context.Context, string, string) ([]entity.Technician, error) {
	if g.techErr != nil {
		return nil, g.techErr
	}
	return g.technicians, nil
}

func (g *fakeVendorGateway) AvailableCounts(context.Context, string, string, string, int) (map[string]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.countCalls++
	return g.counts, g.countsErr
}

func (g *fakeVendorGateway) ListServiceAreas(context.Context, string) ([]entity.ServiceArea, error) {
	return []entity.ServiceArea{{ID: "a-1", Name: "Downtown"}}, nil
}

type fakeOrderGateway struct {
	created   []*entity.OrderRequest
	createErr error
	remote    *entity.RemoteOrder
	cancelErr error
	lastToken string
}

func (g *fakeOrderGateway) CreateOrder(_ context.Context, token string, req *entity.OrderRequest) (*entity.RemoteOrder, error) {
	g.lastToken = token
	g.created = append(g.created, req)
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.remote, nil
}

func (g *fakeOrderGateway) ListOrders(context.Context, string, string) ([]entity.RemoteOrder, error) {
	if g.remote == nil {
		return nil, nil
	}
	return []entity.RemoteOrder{*g.remote}, nil
}

func (g *fakeOrderGateway) GetOrder(_ context.Context, _ string, orderID string) (*entity.RemoteOrder, error) {
	if g.remote == nil || g.remote.ID != orderID {
		return nil, &marketplace.APIError{StatusCode: 404, Message: "Order not found"}
	}
	return g.remote, nil
}

func (g *fakeOrderGateway) CancelOrder(_ context.Context, _ string, orderID, _ string) (*entity.RemoteOrder, error) {
	if g.cancelErr != nil {
		return nil, g.cancelErr
	}
	return &entity.RemoteOrder{ID: orderID, Status: entity.OrderStatusCancelled}, nil
}

type fakeLedger struct {
	submissions   []*service.Submission
	cancellations []string
	err           error
}

func (l *fakeLedger) RecordSubmission(_ context.Context, sub *service.Submission) error {
	l.submissions = append(l.submissions, sub)
	return l.err
}

func (l *fakeLedger) RecordCancellation(_ context.Context, _ string, remote *entity.RemoteOrder, _ string) error {
	l.cancellations = append(l.cancellations, remote.ID)
	return l.err
}

type fakeAudit struct {
	actions []string
}

func (a *fakeAudit) Record(_ context.Context, _ *gorm.DB, _, _, action string, _ entity.JSON) error {
	a.actions = append(a.actions, action)
	return nil
}
