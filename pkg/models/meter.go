package models

import (
	"time"

	"github.com/gork-labs/paykit/pkg/unions"
)

// CountAggregation counts matching events.
type CountAggregation struct {
	Func AggregationFunc `json:"func" validate:"required,eq=count"`
}

// PropertyAggregation applies sum, max, min or avg to an event property.
type PropertyAggregation struct {
	Func     AggregationFunc `json:"func" validate:"required,oneof=sum max min avg"`
	Property string          `json:"property" validate:"required"`
}

// UniqueAggregation counts distinct values of an event property.
type UniqueAggregation struct {
	Func     AggregationFunc `json:"func" validate:"required,eq=unique"`
	Property string          `json:"property" validate:"required"`
}

// Aggregation is how a meter turns matching events into a quantity. The func
// field selects the member.
type Aggregation = unions.Union3[CountAggregation, PropertyAggregation, UniqueAggregation]

// Count returns an aggregation counting events.
func Count() Aggregation {
	return Aggregation{A: &CountAggregation{Func: AggregationFuncCount}}
}

// Aggregate returns an aggregation applying fn to property. Use Unique for
// distinct counts.
func Aggregate(fn AggregationFunc, property string) Aggregation {
	return Aggregation{B: &PropertyAggregation{Func: fn, Property: property}}
}

// Unique returns an aggregation counting distinct values of property.
func Unique(property string) Aggregation {
	return Aggregation{C: &UniqueAggregation{Func: AggregationFuncUnique, Property: property}}
}

// Meter aggregates ingested events into a billable quantity.
type Meter struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Filter         Filter      `json:"filter"`
	Aggregation    Aggregation `json:"aggregation"`
	Metadata       Metadata    `json:"metadata,omitempty"`
	OrganizationID string      `json:"organization_id"`
	CreatedAt      time.Time   `json:"created_at"`
	ModifiedAt     *time.Time  `json:"modified_at,omitempty"`
}

// MeterCreate is the body of a create meter request.
type MeterCreate struct {
	Name           string      `json:"name" validate:"required,min=3"`
	Filter         Filter      `json:"filter"`
	Aggregation    Aggregation `json:"aggregation"`
	Metadata       Metadata    `json:"metadata,omitempty" validate:"omitempty,max=50,dive,keys,max=40,endkeys"`
	OrganizationID *string     `json:"organization_id,omitempty"`
}

// Validate validates the request, including the filter clauses and the aggregation.
func (m MeterCreate) Validate() error {
	return unions.ValidatePayload(m)
}
