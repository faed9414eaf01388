package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/service"

	"github.com/sirupsen/logrus"
)

type BookingWizardUsecase interface {
	GetDraft(ctx context.Context, vendorID string) (*dto.DraftResponse, error)
	ToggleService(ctx context.Context, vendorID string, req *dto.ToggleServiceRequest) (*dto.ToggleServiceResponse, error)
	SelectProfessional(ctx context.Context, vendorID string, req *dto.SelectProfessionalRequest) (*dto.DraftResponse, error)
	SelectSchedule(ctx context.Context, vendorID string, req *dto.SelectScheduleRequest) (*dto.DraftResponse, error)
	Discard(ctx context.Context, vendorID string) error
}

type bookingWizardUsecase struct {
	log          *logrus.Logger
	draftRepo    repository.DraftRepository
	vendors      repository.VendorGateway
	resolver     *service.AvailabilityResolver
	auditService service.AuditService
}

func NewBookingWizardUsecase(
	log *logrus.Logger,
	draftRepo repository.DraftRepository,
	vendors repository.VendorGateway,
	resolver *service.AvailabilityResolver,
	auditService service.AuditService,
) BookingWizardUsecase {
	return &bookingWizardUsecase{
		log:          log,
		draftRepo:    draftRepo,
		vendors:      vendors,
		resolver:     resolver,
		auditService: auditService,
	}
}

// GetDraft returns the draft of the current booking session, or an empty one
func (u *bookingWizardUsecase) GetDraft(ctx context.Context, vendorID string) (*dto.DraftResponse, error) {
	draft, _, err := u.loadDraft(ctx, vendorID, nil)
	if err != nil {
		return nil, err
	}
	return converter.DraftToResponse(draft), nil
}

// ToggleService adds or removes a catalogue service.
// Price, duration and name are always taken from the vendor catalogue.
func (u *bookingWizardUsecase) ToggleService(ctx context.Context, vendorID string, req *dto.ToggleServiceRequest) (*dto.ToggleServiceResponse, error) {
	token := middleware.GetTokenFromContext(ctx)

	vendor, err := u.vendors.GetVendor(ctx, token, vendorID)
	if err != nil {
		err = remoteError(err, ErrVendorNotFound)
		if !errors.Is(err, ErrVendorNotFound) {
			u.log.Warnf("Failed to get vendor %s: %+v", vendorID, err)
		}
		return nil, err
	}

	catalogued, ok := vendor.FindService(req.ServiceID)
	if !ok {
		return nil, ErrServiceNotFound
	}

	draft, sessionID, err := u.loadDraft(ctx, vendorID, req.Revision)
	if err != nil {
		return nil, err
	}

	selected := draft.ToggleService(catalogued.Selection())

	if err := u.saveDraft(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	return &dto.ToggleServiceResponse{
		Selected: selected,
		Draft:    converter.DraftToResponse(draft),
	}, nil
}

// SelectProfessional records a specific technician or "any" (nil / empty id)
func (u *bookingWizardUsecase) SelectProfessional(ctx context.Context, vendorID string, req *dto.SelectProfessionalRequest) (*dto.DraftResponse, error) {
	draft, sessionID, err := u.loadDraft(ctx, vendorID, req.Revision)
	if err != nil {
		return nil, err
	}
	if draft.IsEmpty() {
		return nil, ErrDraftEmpty
	}

	var professionalID *string
	if req.ProfessionalID != nil && strings.TrimSpace(*req.ProfessionalID) != "" {
		id := strings.TrimSpace(*req.ProfessionalID)

		technicians, err := u.vendors.ListTechnicians(ctx, middleware.GetTokenFromContext(ctx), vendorID)
		if err != nil {
			err = remoteError(err, ErrVendorNotFound)
			if !errors.Is(err, ErrVendorNotFound) {
				u.log.Warnf("Failed to list technicians of vendor %s: %+v", vendorID, err)
			}
			return nil, err
		}

		found := false
		for _, t := range technicians {
			if t.ID == id {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrProfessionalNotFound
		}
		professionalID = &id
	}

	draft.SetProfessional(professionalID)

	if err := u.saveDraft(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	return converter.DraftToResponse(draft), nil
}

// SelectSchedule stores when the appointment should happen.
//
// "now" books for today and skips straight to confirmation. "schedule" and
// "recurring" need a date that is not in the past and an HH:MM time that has
// not already passed; "recurring" also needs a frequency.
func (u *bookingWizardUsecase) SelectSchedule(ctx context.Context, vendorID string, req *dto.SelectScheduleRequest) (*dto.DraftResponse, error) {
	draft, sessionID, err := u.loadDraft(ctx, vendorID, req.Revision)
	if err != nil {
		return nil, err
	}
	if draft.IsEmpty() {
		return nil, ErrDraftEmpty
	}

	orderType := entity.OrderType(req.OrderType)

	switch orderType {
	case entity.OrderTypeNow:
		draft.OrderType = entity.OrderTypeNow
		draft.Date = u.resolver.Today()
		draft.Time = entity.TimeNow
		draft.RecurringFrequency = ""

	case entity.OrderTypeSchedule, entity.OrderTypeRecurring:
		if err := u.validateSchedule(req, orderType); err != nil {
			return nil, err
		}
		draft.OrderType = orderType
		draft.Date = req.Date
		draft.Time = req.Time
		draft.RecurringFrequency = ""
		if orderType == entity.OrderTypeRecurring {
			draft.RecurringFrequency = req.RecurringFrequency
		}

	default:
		return nil, newValidationError(ErrInvalidSchedule, map[string]string{
			"order_type": "order_type must be one of now schedule recurring",
		})
	}

	if err := u.saveDraft(ctx, sessionID, draft); err != nil {
		return nil, err
	}

	return converter.DraftToResponse(draft), nil
}

func (u *bookingWizardUsecase) validateSchedule(req *dto.SelectScheduleRequest, orderType entity.OrderType) error {
	fields := make(map[string]string)

	if req.Date == "" {
		fields["date"] = "date is required"
	}
	if req.Time == "" {
		fields["time"] = "time is required"
	}
	if orderType == entity.OrderTypeRecurring && !isFrequency(req.RecurringFrequency) {
		fields["recurring_frequency"] = "recurring_frequency must be one of weekly biweekly monthly"
	}
	if len(fields) > 0 {
		return newValidationError(ErrInvalidSchedule, fields)
	}

	return checkScheduleTime(u.resolver, req.Date, req.Time)
}

// checkScheduleTime rejects a date and "HH:MM" time that is not in the future
func checkScheduleTime(resolver *service.AvailabilityResolver, date, clockTime string) error {
	loc := resolver.Location()
	now := resolver.Now()

	day, err := time.ParseInLocation(entity.DateFormat, date, loc)
	if err != nil {
		return newValidationError(ErrInvalidSchedule, map[string]string{"date": "date must be a date in YYYY-MM-DD format"})
	}
	clock, err := time.ParseInLocation(entity.TimeFormat, clockTime, loc)
	if err != nil {
		return newValidationError(ErrInvalidSchedule, map[string]string{"time": "time must be a time in HH:MM format"})
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if day.Before(today) {
		return newValidationError(ErrInvalidSchedule, map[string]string{"date": "date cannot be in the past"})
	}

	start := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	if !start.After(now) {
		return newValidationError(ErrInvalidSchedule, map[string]string{"time": "time has already passed"})
	}

	return nil
}

// Discard removes the draft of the current booking session
func (u *bookingWizardUsecase) Discard(ctx context.Context, vendorID string) error {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		return ErrSessionRequired
	}

	if err := u.draftRepo.Delete(ctx, sessionID, vendorID); err != nil {
		u.log.Warnf("Failed to delete draft %s/%s: %+v", sessionID, vendorID, err)
		return err
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	_ = u.auditService.Record(ctx, nil, userID, sessionID, entity.AuditActionDraftDiscard, entity.JSON{
		"vendor_id": vendorID,
	})

	return nil
}

// loadDraft reads the session draft and, when the client sent the revision it
// last saw, rejects the request if the draft has moved on since.
func (u *bookingWizardUsecase) loadDraft(ctx context.Context, vendorID string, expected *int64) (*entity.BookingDraft, string, error) {
	sessionID, ok := middleware.GetSessionIDFromContext(ctx)
	if !ok {
		return nil, "", ErrSessionRequired
	}

	draft, err := u.draftRepo.Get(ctx, sessionID, vendorID)
	if err != nil {
		u.log.Warnf("Failed to get draft %s/%s: %+v", sessionID, vendorID, err)
		return nil, "", err
	}

	if expected != nil && *expected != draft.Revision {
		return nil, "", ErrDraftConflict
	}

	return draft, sessionID, nil
}

// saveDraft writes the draft back only if nobody saved it since it was read
func (u *bookingWizardUsecase) saveDraft(ctx context.Context, sessionID string, draft *entity.BookingDraft) error {
	now := u.resolver.Now()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	if err := u.draftRepo.Save(ctx, sessionID, draft, draft.Revision); err != nil {
		if errors.Is(err, repository.ErrRevisionMismatch) {
			return ErrDraftConflict
		}
		u.log.Warnf("Failed to save draft %s/%s: %+v", sessionID, draft.VendorID, err)
		return err
	}
	return nil
}

func isFrequency(value string) bool {
	switch value {
	case entity.FrequencyWeekly, entity.FrequencyBiweekly, entity.FrequencyMonthly:
		return true
	}
	return false
}
