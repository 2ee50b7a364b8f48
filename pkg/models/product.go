package models

import (
	"time"

	"github.com/gork-labs/paykit/pkg/unions"
)

// FixedPriceCreate is a price with a fixed amount, in cents.
type FixedPriceCreate struct {
	AmountType    PriceAmountType `json:"amount_type" validate:"required,eq=fixed"`
	PriceAmount   int64           `json:"price_amount" validate:"required,min=50"`
	PriceCurrency string          `json:"price_currency,omitempty" validate:"omitempty,len=3"`
}

// CustomPriceCreate is a pay-what-you-want price.
type CustomPriceCreate struct {
	AmountType    PriceAmountType `json:"amount_type" validate:"required,eq=custom"`
	MinimumAmount *int64          `json:"minimum_amount,omitempty" validate:"omitempty,min=50"`
	MaximumAmount *int64          `json:"maximum_amount,omitempty" validate:"omitempty,max=99999999"`
	PresetAmount  *int64          `json:"preset_amount,omitempty"`
	PriceCurrency string          `json:"price_currency,omitempty" validate:"omitempty,len=3"`
}

// FreePriceCreate is a free price.
type FreePriceCreate struct {
	AmountType PriceAmountType `json:"amount_type" validate:"required,eq=free"`
}

// FixedPrice returns a fixed price of amount cents.
func FixedPrice(amount int64, currency string) PriceCreate {
	return PriceCreateFromFixed(FixedPriceCreate{AmountType: PriceAmountTypeFixed, PriceAmount: amount, PriceCurrency: currency})
}

// FreePrice returns a free price.
func FreePrice() PriceCreate {
	return PriceCreateFromFree(FreePriceCreate{AmountType: PriceAmountTypeFree})
}

// ProductCreate is the body of a create product request.
type ProductCreate struct {
	Name              string             `json:"name" validate:"required,min=3"`
	Description       *string            `json:"description,omitempty"`
	RecurringInterval *RecurringInterval `json:"recurring_interval,omitempty"`
	Prices            []PriceCreate      `json:"prices" validate:"required,min=1"`
	Metadata          Metadata           `json:"metadata,omitempty" validate:"omitempty,max=50,dive,keys,max=40,endkeys"`
	OrganizationID    *string            `json:"organization_id,omitempty"`
}

func (p ProductCreate) Validate() error {
	return unions.ValidatePayload(p)
}

// ProductPrice is a price of an existing product. The fields set depend on AmountType.
type ProductPrice struct {
	ID            string          `json:"id"`
	AmountType    PriceAmountType `json:"amount_type"`
	PriceAmount   *int64          `json:"price_amount,omitempty"`
	MinimumAmount *int64          `json:"minimum_amount,omitempty"`
	MaximumAmount *int64          `json:"maximum_amount,omitempty"`
	PresetAmount  *int64          `json:"preset_amount,omitempty"`
	PriceCurrency string          `json:"price_currency,omitempty"`
	IsArchived    bool            `json:"is_archived"`
	ProductID     string          `json:"product_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Product is a product of the organization.
type Product struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Description       *string            `json:"description,omitempty"`
	RecurringInterval *RecurringInterval `json:"recurring_interval,omitempty"`
	IsRecurring       bool               `json:"is_recurring"`
	IsArchived        bool               `json:"is_archived"`
	Prices            []ProductPrice     `json:"prices"`
	Metadata          Metadata           `json:"metadata,omitempty"`
	OrganizationID    string             `json:"organization_id"`
	CreatedAt         time.Time          `json:"created_at"`
	ModifiedAt        *time.Time         `json:"modified_at,omitempty"`
}
