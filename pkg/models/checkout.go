package models

import (
	"time"

	"github.com/gork-labs/paykit/pkg/unions"
)

// AttachExistingCustomer links a checkout to a customer that already exists.
type AttachExistingCustomer struct {
	CustomerID string `json:"customer_id" validate:"required"`
}

// NewCustomer creates the customer when the checkout is created.
type NewCustomer struct {
	Email          string   `json:"email" validate:"required,email"`
	Name           string   `json:"name,omitempty"`
	ExternalID     string   `json:"external_id,omitempty"`
	BillingAddress *Address `json:"billing_address,omitempty"`
}

// CheckoutCreate is the body of a create checkout session request.
type CheckoutCreate struct {
	Products           []string          `json:"products" validate:"required,min=1"`
	Customer           *CheckoutCustomer `json:"customer,omitempty"`
	Amount             *int64            `json:"amount,omitempty" validate:"omitempty,min=50"`
	DiscountID         *string           `json:"discount_id,omitempty"`
	AllowDiscountCodes *bool             `json:"allow_discount_codes,omitempty"`
	SuccessURL         *string           `json:"success_url,omitempty" validate:"omitempty,url"`
	Metadata           Metadata          `json:"metadata,omitempty" validate:"omitempty,max=50,dive,keys,max=40,endkeys"`
	CustomerMetadata   Metadata          `json:"customer_metadata,omitempty" validate:"omitempty,max=50,dive,keys,max=40,endkeys"`
}

func (c CheckoutCreate) Validate() error {
	return unions.ValidatePayload(c)
}

// Checkout is a checkout session.
type Checkout struct {
	ID           string         `json:"id"`
	Status       CheckoutStatus `json:"status"`
	ClientSecret string         `json:"client_secret"`
	URL          string         `json:"url"`
	ExpiresAt    time.Time      `json:"expires_at"`
	SuccessURL   string         `json:"success_url"`
	Amount       *int64         `json:"amount,omitempty"`
	Currency     *string        `json:"currency,omitempty"`
	ProductID    string         `json:"product_id"`
	CustomerID   *string        `json:"customer_id,omitempty"`
	Metadata     Metadata       `json:"metadata,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	ModifiedAt   *time.Time     `json:"modified_at,omitempty"`
}
