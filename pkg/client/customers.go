package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gork-labs/paykit/pkg/models"
)

const customersPath = "/v1/customers/"

// CustomersService manages customers.
type CustomersService struct {
	client *Client
}

func (s *CustomersService) List(ctx context.Context, params ListParams) (*models.ListResource[models.Customer], error) {
	return list[models.Customer](ctx, s.client, "customers.list", customersPath, params)
}

// Pager returns a Pager over all customers, starting at params.Page.
func (s *CustomersService) Pager(params ListParams) *Pager[models.Customer] {
	return newPager(params, s.List)
}

func (s *CustomersService) Get(ctx context.Context, id string) (*models.Customer, error) {
	path, err := resourcePath(customersPath, id)
	if err != nil {
		return nil, err
	}
	var customer models.Customer
	if err := s.client.call(ctx, "customers.get", http.MethodGet, path, nil, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomersService) Create(ctx context.Context, body models.CustomerCreate) (*models.Customer, error) {
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("customers.create: %w", err)
	}
	var customer models.Customer
	if err := s.client.call(ctx, "customers.create", http.MethodPost, customersPath, nil, body, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomersService) Update(ctx context.Context, id string, body models.CustomerUpdate) (*models.Customer, error) {
	path, err := resourcePath(customersPath, id)
	if err != nil {
		return nil, err
	}
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("customers.update: %w", err)
	}
	var customer models.Customer
	if err := s.client.call(ctx, "customers.update", http.MethodPatch, path, nil, body, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomersService) Delete(ctx context.Context, id string) error {
	path, err := resourcePath(customersPath, id)
	if err != nil {
		return err
	}
	return s.client.call(ctx, "customers.delete", http.MethodDelete, path, nil, nil, nil)
}
