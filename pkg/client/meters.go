package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gork-labs/paykit/pkg/models"
)

const metersPath = "/v1/meters/"

// MetersService manages meters.
type MetersService struct {
	client *Client
}

func (s *MetersService) List(ctx context.Context, params ListParams) (*models.ListResource[models.Meter], error) {
	return list[models.Meter](ctx, s.client, "meters.list", metersPath, params)
}

// Pager returns a Pager over all meters, starting at params.Page.
func (s *MetersService) Pager(params ListParams) *Pager[models.Meter] {
	return newPager(params, s.List)
}

func (s *MetersService) Get(ctx context.Context, id string) (*models.Meter, error) {
	path, err := resourcePath(metersPath, id)
	if err != nil {
		return nil, err
	}
	var meter models.Meter
	if err := s.client.call(ctx, "meters.get", http.MethodGet, path, nil, nil, &meter); err != nil {
		return nil, err
	}
	return &meter, nil
}

func (s *MetersService) Create(ctx context.Context, body models.MeterCreate) (*models.Meter, error) {
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("meters.create: %w", err)
	}
	var meter models.Meter
	if err := s.client.call(ctx, "meters.create", http.MethodPost, metersPath, nil, body, &meter); err != nil {
		return nil, err
	}
	return &meter, nil
}
