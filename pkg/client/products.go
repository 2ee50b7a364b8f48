package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gork-labs/paykit/pkg/models"
)

const productsPath = "/v1/products/"

// ProductsService manages products.
type ProductsService struct {
	client *Client
}

func (s *ProductsService) Create(ctx context.Context, body models.ProductCreate) (*models.Product, error) {
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("products.create: %w", err)
	}
	var product models.Product
	if err := s.client.call(ctx, "products.create", http.MethodPost, productsPath, nil, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductsService) Get(ctx context.Context, id string) (*models.Product, error) {
	path, err := resourcePath(productsPath, id)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := s.client.call(ctx, "products.get", http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
