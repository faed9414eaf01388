package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"salon-booking/internal/domain/entity"
)

func (c *Client) GetVendor(ctx context.Context, token, vendorID string) (*entity.Vendor, error) {
	var vendor entity.Vendor
	if err := c.do(ctx, http.MethodGet, "/vendors/"+url.PathEscape(vendorID), nil, token, nil, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (c *Client) ListTechnicians(ctx context.Context, token, vendorID string) ([]entity.Technician, error) {
	var technicians []entity.Technician
	path := "/vendors/" + url.PathEscape(vendorID) + "/technicians"
	if err := c.do(ctx, http.MethodGet, path, nil, token, nil, &technicians); err != nil {
		return nil, err
	}
	return technicians, nil
}

type availabilityEntry struct {
	Time                 string `json:"time"`
	AvailableTechnicians int    `json:"available_technicians"`
}

// AvailableCounts accepts both {"09:00": 2} and [{"time":"09:00","available_technicians":2}]
func (c *Client) AvailableCounts(ctx context.Context, token, vendorID, date string, duration int) (map[string]int, error) {
	query := url.Values{}
	query.Set("date", date)
	query.Set("duration", strconv.Itoa(duration))

	var raw json.RawMessage
	path := "/vendors/" + url.PathEscape(vendorID) + "/availability"
	if err := c.do(ctx, http.MethodGet, path, query, token, nil, &raw); err != nil {
		return nil, err
	}

	counts := map[string]int{}
	if err := json.Unmarshal(raw, &counts); err == nil {
		return counts, nil
	}

	var entries []availabilityEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode availability for vendor %s: %w", vendorID, err)
	}
	for _, e := range entries {
		counts[e.Time] += e.AvailableTechnicians
	}
	return counts, nil
}

func (c *Client) ListServiceAreas(ctx context.Context, token string) ([]entity.ServiceArea, error) {
	var areas []entity.ServiceArea
	if err := c.do(ctx, http.MethodGet, "/service-areas", nil, token, nil, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}
