package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gork-labs/paykit/pkg/models"
)

const checkoutsPath = "/v1/checkouts/"

// CheckoutsService manages checkout sessions.
type CheckoutsService struct {
	client *Client
}

// Create opens a checkout session. The customer, when set, is either attached
// by ID or created along with the session.
func (s *CheckoutsService) Create(ctx context.Context, body models.CheckoutCreate) (*models.Checkout, error) {
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("checkouts.create: %w", err)
	}
	var checkout models.Checkout
	if err := s.client.call(ctx, "checkouts.create", http.MethodPost, checkoutsPath, nil, body, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}

func (s *CheckoutsService) Get(ctx context.Context, id string) (*models.Checkout, error) {
	path, err := resourcePath(checkoutsPath, id)
	if err != nil {
		return nil, err
	}
	var checkout models.Checkout
	if err := s.client.call(ctx, "checkouts.get", http.MethodGet, path, nil, nil, &checkout); err != nil {
		return nil, err
	}
	return &checkout, nil
}
