package usecase

import (
	"context"
	"errors"
	"time"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type AvailabilityUsecase interface {
	// GetAvailability lists the start times of a vendor day. A zero duration
	// means the total duration of the session draft.
	GetAvailability(ctx context.Context, vendorID, date string, duration int) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	log       *logrus.Logger
	draftRepo repository.DraftRepository
	vendors   repository.VendorGateway
	resolver  *service.AvailabilityResolver
}

func NewAvailabilityUsecase(
	log *logrus.Logger,
	draftRepo repository.DraftRepository,
	vendors repository.VendorGateway,
	resolver *service.AvailabilityResolver,
) AvailabilityUsecase {
	return &availabilityUsecase{
		log:       log,
		draftRepo: draftRepo,
		vendors:   vendors,
		resolver:  resolver,
	}
}

func (u *availabilityUsecase) GetAvailability(ctx context.Context, vendorID, date string, duration int) (*dto.AvailabilityResponse, error) {
	day, err := time.ParseInLocation(entity.DateFormat, date, u.resolver.Location())
	if err != nil {
		return nil, newValidationError(ErrInvalidSchedule, map[string]string{"date": "date must be a date in YYYY-MM-DD format"})
	}

	if duration <= 0 {
		sessionID, ok := middleware.GetSessionIDFromContext(ctx)
		if !ok {
			return nil, ErrSessionRequired
		}
		draft, err := u.draftRepo.Get(ctx, sessionID, vendorID)
		if err != nil {
			u.log.Warnf("Failed to get draft %s/%s: %+v", sessionID, vendorID, err)
			return nil, err
		}
		duration = draft.TotalDuration()
	}
	if duration <= 0 {
		return nil, ErrDraftEmpty
	}

	token := middleware.GetTokenFromContext(ctx)

	var (
		vendor    *entity.Vendor
		counts    map[string]int
		countsErr error
	)

	// A failed count read degrades to basic slots, so only the vendor read can fail the group.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := u.vendors.GetVendor(gctx, token, vendorID)
		if err != nil {
			return err
		}
		vendor = v
		return nil
	})
	g.Go(func() error {
		counts, countsErr = u.vendors.AvailableCounts(gctx, token, vendorID, date, duration)
		return nil
	})

	if err := g.Wait(); err != nil {
		err = remoteError(err, ErrVendorNotFound)
		if !errors.Is(err, ErrVendorNotFound) {
			u.log.Warnf("Failed to get vendor %s: %+v", vendorID, err)
		}
		return nil, err
	}

	availability := u.resolver.Resolve(vendor.CompanyHours, day, duration, counts, countsErr)

	return converter.AvailabilityToResponse(availability), nil
}
