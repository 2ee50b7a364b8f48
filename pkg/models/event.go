package models

import (
	"time"

	"github.com/gork-labs/paykit/pkg/unions"
)

// EventCreateCustomer is an event for a customer identified by its ID.
type EventCreateCustomer struct {
	Name           string     `json:"name" validate:"required"`
	Timestamp      *time.Time `json:"timestamp,omitempty"`
	OrganizationID *string    `json:"organization_id,omitempty"`
	Metadata       Metadata   `json:"metadata,omitempty"`
	CustomerID     string     `json:"customer_id" validate:"required"`
}

// EventCreateExternalCustomer is an event for a customer identified by the
// ID it has in the caller's system.
type EventCreateExternalCustomer struct {
	Name               string     `json:"name" validate:"required"`
	Timestamp          *time.Time `json:"timestamp,omitempty"`
	OrganizationID     *string    `json:"organization_id,omitempty"`
	Metadata           Metadata   `json:"metadata,omitempty"`
	ExternalCustomerID string     `json:"external_customer_id" validate:"required"`
}

// EventsIngest is the body of an ingest events request.
type EventsIngest struct {
	Events []EventCreate `json:"events" validate:"required,min=1,max=1000"`
}

func (e EventsIngest) Validate() error {
	return unions.ValidatePayload(e)
}

// EventsIngestResponse reports how many events were stored.
type EventsIngestResponse struct {
	Inserted int `json:"inserted"`
}
