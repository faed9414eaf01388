package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/infrastructure/marketplace"
	"salon-booking/internal/service"

	"github.com/sirupsen/logrus"
)

// DefaultSubmitLockTTL bounds how long a crashed submission can block a retry
const DefaultSubmitLockTTL = 30 * time.Second

type CheckoutUsecase interface {
	GetQuote(ctx context.Context, vendorID string) (*dto.QuoteResponse, error)
	Submit(ctx context.Context, vendorID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type checkoutUsecase struct {
	log       *logrus.Logger
	draftRepo repository.DraftRepository
	orders    repository.OrderGateway
	pricing   *service.PricingCalculator
	resolver  *service.AvailabilityResolver
	ledger    service.OrderLedger
	lockTTL   time.Duration
}

func NewCheckoutUsecase(
	log *logrus.Logger,
	draftRepo repository.DraftRepository,
	orders repository.OrderGateway,
	pricing *service.PricingCalculator,
	resolver *service.AvailabilityResolver,
	ledger service.OrderLedger,
	lockTTL time.Duration,
) CheckoutUsecase {
	if lockTTL <= 0 {
		lockTTL = DefaultSubmitLockTTL
	}
	return &checkoutUsecase{
		log:       log,
		draftRepo: draftRepo,
		orders:    orders,
		pricing:   pricing,
		resolver:  resolver,
		ledger:    ledger,
		lockTTL:   lockTTL,
	}
}

// GetQuote prices the session draft for display
func (u *checkoutUsecase) GetQuote(ctx context.Context, vendorID string) (*dto.QuoteResponse, error) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		return nil, ErrSessionRequired
	}

	draft, err := u.draftRepo.Get(ctx, sessionID, vendorID)
	if err != nil {
		u.log.Warnf("Failed to get draft %s/%s: %+v", sessionID, vendorID, err)
		return nil, err
	}
	if draft.IsEmpty() {
		return nil, ErrDraftEmpty
	}

	return converter.QuoteToResponse(u.pricing.Quote(draft.Services)), nil
}

// Submit turns the session draft into a marketplace order.
//
// Flow:
// 1. Take the submission lock so a double click cannot create two orders
// 2. Read the draft under the lock; it must have services, a date and a time
//    that has not passed, and an address must be given
// 3. Create the order remotely; its error is returned as is
// 4. Clear the draft, then record the order in the ledger
//
// Steps after the remote order exists only log failures.
func (u *checkoutUsecase) Submit(ctx context.Context, vendorID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrAuthRequired
	}
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		return nil, ErrSessionRequired
	}

	acquired, err := u.draftRepo.AcquireSubmitLock(ctx, sessionID, vendorID, u.lockTTL)
	if err != nil {
		u.log.Warnf("Failed to acquire submit lock %s/%s: %+v", sessionID, vendorID, err)
		return nil, err
	}
	if !acquired {
		return nil, ErrSubmissionInProgress
	}
	defer func() {
		// The request context may already be cancelled; the lock must still go.
		if err := u.draftRepo.ReleaseSubmitLock(context.WithoutCancel(ctx), sessionID, vendorID); err != nil {
			u.log.Warnf("Failed to release submit lock %s/%s: %+v", sessionID, vendorID, err)
		}
	}()

	// A submission that finished while this one waited has already cleared the draft.
	draft, err := u.draftRepo.Get(ctx, sessionID, vendorID)
	if err != nil {
		u.log.Warnf("Failed to get draft %s/%s: %+v", sessionID, vendorID, err)
		return nil, err
	}
	if req.Revision != nil && *req.Revision != draft.Revision {
		return nil, ErrDraftConflict
	}

	if fields := missingCheckoutFields(draft, req); len(fields) > 0 {
		return nil, newValidationError(ErrDraftIncomplete, fields)
	}
	if draft.OrderType == entity.OrderTypeNow {
		draft.Date = u.resolver.Today()
	} else if err := checkScheduleTime(u.resolver, draft.Date, draft.Time); err != nil {
		return nil, err
	}

	orderReq := buildOrderRequest(draft, req)

	remote, err := u.orders.CreateOrder(ctx, middleware.GetTokenFromContext(ctx), orderReq)
	if err != nil {
		u.log.Warnf("Failed to create order for draft %s/%s: %+v", sessionID, vendorID, err)
		return nil, remoteError(err, nil)
	}
	if remote == nil || remote.ID == "" {
		// The order may exist remotely, so the draft is kept for the customer to check.
		u.log.Warnf("Failed to create order for draft %s/%s: marketplace returned no order id", sessionID, vendorID)
		return nil, &marketplace.APIError{
			StatusCode: http.StatusBadGateway,
			Message:    "The marketplace did not confirm the order, check your orders before retrying",
		}
	}

	quote := u.pricing.Quote(draft.Services)
	persistCtx := context.WithoutCancel(ctx)

	if err := u.draftRepo.Delete(persistCtx, sessionID, vendorID); err != nil {
		u.log.Warnf("Failed to clear draft %s/%s after order %s: %+v", sessionID, vendorID, remote.ID, err)
	}

	if err := u.ledger.RecordSubmission(persistCtx, &service.Submission{
		UserID:    userID,
		SessionID: sessionID,
		Draft:     draft,
		Request:   orderReq,
		Remote:    remote,
		Quote:     quote,
	}); err != nil {
		u.log.Warnf("Failed to record order %s in ledger: %+v", remote.ID, err)
	}

	status := string(remote.Status)
	if status == "" {
		status = string(entity.OrderStatusPending)
	}

	return &dto.CheckoutResponse{
		OrderID:  remote.ID,
		Status:   status,
		Redirect: fmt.Sprintf("/orders/%s/confirmation", remote.ID),
		Quote:    converter.QuoteToResponse(quote),
	}, nil
}

func missingCheckoutFields(draft *entity.BookingDraft, req *dto.CheckoutRequest) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(req.AddressID) == "" {
		fields["address_id"] = "address_id is required"
	}
	if draft.IsEmpty() {
		fields["services"] = "at least one service must be selected"
	}
	if draft.Date == "" {
		fields["date"] = "date is required"
	}
	if draft.Time == "" {
		fields["time"] = "time is required"
	}
	return fields
}

// buildOrderRequest maps every selected service to a line item of quantity 1
func buildOrderRequest(draft *entity.BookingDraft, req *dto.CheckoutRequest) *entity.OrderRequest {
	items := make([]entity.OrderLineItem, len(draft.Services))
	for i, s := range draft.Services {
		items[i] = entity.OrderLineItem{ServiceID: s.ID, Quantity: 1}
	}

	orderType := draft.OrderType
	if orderType == "" {
		orderType = entity.OrderTypeSchedule
	}

	return &entity.OrderRequest{
		VendorID:           draft.VendorID,
		AddressID:          strings.TrimSpace(req.AddressID),
		TechnicianID:       draft.ProfessionalID,
		Date:               draft.Date,
		Time:               draft.Time,
		OrderType:          orderType,
		RecurringFrequency: draft.RecurringFrequency,
		PaymentMethodID:    req.PaymentMethodID,
		Notes:              req.Notes,
		Items:              items,
	}
}
