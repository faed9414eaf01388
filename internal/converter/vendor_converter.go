package converter

import (
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
)

// VendorToResponse converts a Vendor entity to VendorResponse DTO
func VendorToResponse(vendor *entity.Vendor, technicians []entity.Technician) *dto.VendorResponse {
	if vendor == nil {
		return nil
	}

	services := make([]dto.VendorServiceResponse, len(vendor.Services))
	for i, s := range vendor.Services {
		sel := s.Selection()
		services[i] = dto.VendorServiceResponse{
			ID:            sel.ID,
			Name:          sel.Name,
			Price:         Money(sel.Price),
			OriginalPrice: Money(sel.OriginalPrice),
			Duration:      sel.Duration,
			Category:      sel.Category,
		}
	}

	hours := make([]dto.CompanyHourResponse, len(vendor.CompanyHours))
	for i, h := range vendor.CompanyHours {
		ranges := make([]dto.HourRangeResponse, len(h.Slots))
		for j, r := range h.Slots {
			ranges[j] = dto.HourRangeResponse{Start: r.Start, End: r.End}
		}
		hours[i] = dto.CompanyHourResponse{
			Day:         h.Day,
			IsAvailable: h.IsAvailable,
			Slots:       ranges,
		}
	}

	return &dto.VendorResponse{
		ID:           vendor.ID,
		Name:         vendor.Name,
		Description:  vendor.Description,
		Address:      vendor.Address,
		Rating:       vendor.Rating,
		ImageURL:     vendor.ImageURL,
		Services:     services,
		CompanyHours: hours,
		Technicians:  TechniciansToResponses(technicians),
	}
}

// TechniciansToResponses converts a slice of Technician entities to slice of TechnicianResponse DTOs
func TechniciansToResponses(technicians []entity.Technician) []dto.TechnicianResponse {
	responses := make([]dto.TechnicianResponse, len(technicians))
	for i, t := range technicians {
		responses[i] = dto.TechnicianResponse{
			ID:        t.ID,
			Name:      t.Name,
			AvatarURL: t.AvatarURL,
			Rating:    t.Rating,
			Title:     t.Title,
		}
	}
	return responses
}

// ServiceAreasToResponses converts a slice of ServiceArea entities to slice of ServiceAreaResponse DTOs
func ServiceAreasToResponses(areas []entity.ServiceArea) []dto.ServiceAreaResponse {
	responses := make([]dto.ServiceAreaResponse, len(areas))
	for i, a := range areas {
		responses[i] = dto.ServiceAreaResponse{ID: a.ID, Name: a.Name, City: a.City}
	}
	return responses
}
