package models

import "github.com/gork-labs/paykit/pkg/unions"

// Filter selects events. Its clauses are either conditions or nested filters,
// combined with the conjunction.
type Filter struct {
	Conjunction FilterConjunction `json:"conjunction" validate:"required"`
	Clauses     FilterClauses     `json:"clauses"`
}

// Validate validates the filter and every nested clause.
func (f Filter) Validate() error {
	return unions.ValidatePayload(f)
}

// FilterCondition compares the event property Key with Value.
type FilterCondition struct {
	Key      string         `json:"key" validate:"required,max=400"`
	Operator FilterOperator `json:"operator" validate:"required"`
	Value    MetadataValue  `json:"value"`
}

// And returns a filter matching events that satisfy every condition.
func And(conditions ...FilterCondition) Filter {
	return Filter{Conjunction: FilterConjunctionAnd, Clauses: FilterClausesFromConditions(conditions)}
}

// Or returns a filter matching events that satisfy at least one condition.
func Or(conditions ...FilterCondition) Filter {
	return Filter{Conjunction: FilterConjunctionOr, Clauses: FilterClausesFromConditions(conditions)}
}

// Depth returns the number of filter levels, counting f itself.
func (f Filter) Depth() int {
	nested, ok := f.Clauses.AsFilters()
	if !ok {
		return 1
	}
	deepest := 0
	for _, n := range nested {
		if d := n.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
