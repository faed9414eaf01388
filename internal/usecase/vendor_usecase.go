package usecase

import (
	"context"
	"errors"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/delivery/http/middleware"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type VendorUsecase interface {
	GetVendor(ctx context.Context, vendorID string) (*dto.VendorResponse, error)
	ListTechnicians(ctx context.Context, vendorID string) (*dto.TechnicianListResponse, error)
	ListServiceAreas(ctx context.Context) (*dto.ServiceAreaListResponse, error)
}

type vendorUsecase struct {
	log     *logrus.Logger
	vendors repository.VendorGateway
}

func NewVendorUsecase(log *logrus.Logger, vendors repository.VendorGateway) VendorUsecase {
	return &vendorUsecase{
		log:     log,
		vendors: vendors,
	}
}

// GetVendor loads the vendor profile and its technicians concurrently.
// The page still renders when only the technician list fails.
func (u *vendorUsecase) GetVendor(ctx context.Context, vendorID string) (*dto.VendorResponse, error) {
	token := middleware.GetTokenFromContext(ctx)

	var (
		vendor      *entity.Vendor
		technicians []entity.Technician
	)

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
		list, err := u.vendors.ListTechnicians(gctx, token, vendorID)
		if err != nil {
			u.log.Warnf("Failed to list technicians of vendor %s: %+v", vendorID, err)
			return nil
		}
		technicians = list
		return nil
	})

	if err := g.Wait(); err != nil {
		err = remoteError(err, ErrVendorNotFound)
		if !errors.Is(err, ErrVendorNotFound) {
			u.log.Warnf("Failed to get vendor %s: %+v", vendorID, err)
		}
		return nil, err
	}

	return converter.VendorToResponse(vendor, technicians), nil
}

func (u *vendorUsecase) ListTechnicians(ctx context.Context, vendorID string) (*dto.TechnicianListResponse, error) {
	technicians, err := u.vendors.ListTechnicians(ctx, middleware.GetTokenFromContext(ctx), vendorID)
	if err != nil {
		err = remoteError(err, ErrVendorNotFound)
		if !errors.Is(err, ErrVendorNotFound) {
			u.log.Warnf("Failed to list technicians of vendor %s: %+v", vendorID, err)
		}
		return nil, err
	}

	return &dto.TechnicianListResponse{
		Technicians: converter.TechniciansToResponses(technicians),
		Total:       len(technicians),
	}, nil
}

func (u *vendorUsecase) ListServiceAreas(ctx context.Context) (*dto.ServiceAreaListResponse, error) {
	areas, err := u.vendors.ListServiceAreas(ctx, middleware.GetTokenFromContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list service areas: %+v", err)
		return nil, remoteError(err, nil)
	}

	return &dto.ServiceAreaListResponse{
		Areas: converter.ServiceAreasToResponses(areas),
		Total: len(areas),
	}, nil
}
