package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gork-labs/paykit/pkg/models"
)

const eventsIngestPath = "/v1/events/ingest"

// EventsService ingests usage events.
type EventsService struct {
	client *Client
}

// Ingest sends a batch of events. Each event names its customer either by ID
// or by external ID.
func (s *EventsService) Ingest(ctx context.Context, body models.EventsIngest) (*models.EventsIngestResponse, error) {
	if err := body.Validate(); err != nil {
		return nil, fmt.Errorf("events.ingest: %w", err)
	}
	var resp models.EventsIngestResponse
	if err := s.client.call(ctx, "events.ingest", http.MethodPost, eventsIngestPath, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
