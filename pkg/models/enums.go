package models

// FilterOperator compares an event property against a value.
type FilterOperator string

const (
	FilterOperatorEq      FilterOperator = "eq"
	FilterOperatorNe      FilterOperator = "ne"
	FilterOperatorGt      FilterOperator = "gt"
	FilterOperatorGte     FilterOperator = "gte"
	FilterOperatorLt      FilterOperator = "lt"
	FilterOperatorLte     FilterOperator = "lte"
	FilterOperatorLike    FilterOperator = "like"
	FilterOperatorNotLike FilterOperator = "not_like"
)

// Known reports whether o is one of the operators this client knows about.
// Unknown operators sent by the server are kept as-is.
func (o FilterOperator) Known() bool {
	switch o {
	case FilterOperatorEq, FilterOperatorNe, FilterOperatorGt, FilterOperatorGte,
		FilterOperatorLt, FilterOperatorLte, FilterOperatorLike, FilterOperatorNotLike:
		return true
	}
	return false
}

// FilterConjunction combines the clauses of a filter.
type FilterConjunction string

const (
	FilterConjunctionAnd FilterConjunction = "and"
	FilterConjunctionOr  FilterConjunction = "or"
)

func (c FilterConjunction) Known() bool {
	return c == FilterConjunctionAnd || c == FilterConjunctionOr
}

// AggregationFunc is the function a meter applies to matching events.
type AggregationFunc string

const (
	AggregationFuncCount  AggregationFunc = "count"
	AggregationFuncSum    AggregationFunc = "sum"
	AggregationFuncMax    AggregationFunc = "max"
	AggregationFuncMin    AggregationFunc = "min"
	AggregationFuncAvg    AggregationFunc = "avg"
	AggregationFuncUnique AggregationFunc = "unique"
)

func (f AggregationFunc) Known() bool {
	switch f {
	case AggregationFuncCount, AggregationFuncSum, AggregationFuncMax,
		AggregationFuncMin, AggregationFuncAvg, AggregationFuncUnique:
		return true
	}
	return false
}

// CheckoutStatus is the lifecycle state of a checkout session.
type CheckoutStatus string

const (
	CheckoutStatusOpen      CheckoutStatus = "open"
	CheckoutStatusExpired   CheckoutStatus = "expired"
	CheckoutStatusConfirmed CheckoutStatus = "confirmed"
	CheckoutStatusSucceeded CheckoutStatus = "succeeded"
	CheckoutStatusFailed    CheckoutStatus = "failed"
)

func (s CheckoutStatus) Known() bool {
	switch s {
	case CheckoutStatusOpen, CheckoutStatusExpired, CheckoutStatusConfirmed,
		CheckoutStatusSucceeded, CheckoutStatusFailed:
		return true
	}
	return false
}

// PriceAmountType discriminates product prices.
type PriceAmountType string

const (
	PriceAmountTypeFixed  PriceAmountType = "fixed"
	PriceAmountTypeCustom PriceAmountType = "custom"
	PriceAmountTypeFree   PriceAmountType = "free"
)

func (t PriceAmountType) Known() bool {
	return t == PriceAmountTypeFixed || t == PriceAmountTypeCustom || t == PriceAmountTypeFree
}

// RecurringInterval is the billing period of a recurring product.
type RecurringInterval string

const (
	RecurringIntervalMonth RecurringInterval = "month"
	RecurringIntervalYear  RecurringInterval = "year"
)

func (i RecurringInterval) Known() bool {
	return i == RecurringIntervalMonth || i == RecurringIntervalYear
}
