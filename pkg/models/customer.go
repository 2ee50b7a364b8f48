package models

import (
	"time"

	"github.com/gork-labs/paykit/pkg/unions"
)

// Address is a postal address. Country is an ISO 3166-1 alpha-2 code.
type Address struct {
	Line1      *string `json:"line1,omitempty"`
	Line2      *string `json:"line2,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	Country    string  `json:"country" validate:"required,len=2"`
}

// Customer is a customer of the organization.
type Customer struct {
	ID             string     `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	ModifiedAt     *time.Time `json:"modified_at,omitempty"`
	Metadata       Metadata   `json:"metadata,omitempty"`
	ExternalID     *string    `json:"external_id,omitempty"`
	Email          string     `json:"email"`
	EmailVerified  bool       `json:"email_verified"`
	Name           *string    `json:"name,omitempty"`
	BillingAddress *Address   `json:"billing_address,omitempty"`
	OrganizationID string     `json:"organization_id"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// CustomerCreate is the body of a create customer request.
type CustomerCreate struct {
	Email          string   `json:"email" validate:"required,email"`
	Name           *string  `json:"name,omitempty"`
	ExternalID     *string  `json:"external_id,omitempty"`
	BillingAddress *Address `json:"billing_address,omitempty"`
	Metadata       Metadata `json:"metadata,omitempty" validate:"omitempty,max=50,dive,keys,max=40,endkeys"`
	OrganizationID *string  `json:"organization_id,omitempty"`
}

func (c CustomerCreate) Validate() error {
	return unions.ValidatePayload(c)
}

// CustomerUpdate is the body of an update customer request. Nil fields are
// left unchanged.
type CustomerUpdate struct {
	Email          *string  `json:"email,omitempty" validate:"omitempty,email"`
	Name           *string  `json:"name,omitempty"`
	ExternalID     *string  `json:"external_id,omitempty"`
	BillingAddress *Address `json:"billing_address,omitempty"`
	Metadata       Metadata `json:"metadata,omitempty" validate:"omitempty,max=50,dive,keys,max=40,endkeys"`
}

func (c CustomerUpdate) Validate() error {
	return unions.ValidatePayload(c)
}
