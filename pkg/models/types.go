package models

import "sort"

// types maps schema names to constructors of empty values, for tooling that
// decodes payloads chosen at runtime.
var types = map[string]func() any{
	"Address":                     func() any { return new(Address) },
	"Aggregation":                 func() any { return new(Aggregation) },
	"AttachExistingCustomer":      func() any { return new(AttachExistingCustomer) },
	"Checkout":                    func() any { return new(Checkout) },
	"CheckoutCreate":              func() any { return new(CheckoutCreate) },
	"CheckoutCustomer":            func() any { return new(CheckoutCustomer) },
	"Customer":                    func() any { return new(Customer) },
	"CustomerCreate":              func() any { return new(CustomerCreate) },
	"CustomerUpdate":              func() any { return new(CustomerUpdate) },
	"EventCreate":                 func() any { return new(EventCreate) },
	"EventCreateCustomer":         func() any { return new(EventCreateCustomer) },
	"EventCreateExternalCustomer": func() any { return new(EventCreateExternalCustomer) },
	"EventsIngest":                func() any { return new(EventsIngest) },
	"Filter":                      func() any { return new(Filter) },
	"FilterClauses":               func() any { return new(FilterClauses) },
	"FilterCondition":             func() any { return new(FilterCondition) },
	"Metadata":                    func() any { return new(Metadata) },
	"MetadataValue":               func() any { return new(MetadataValue) },
	"Meter":                       func() any { return new(Meter) },
	"MeterCreate":                 func() any { return new(MeterCreate) },
	"NewCustomer":                 func() any { return new(NewCustomer) },
	"PriceCreate":                 func() any { return new(PriceCreate) },
	"Product":                     func() any { return new(Product) },
	"ProductCreate":               func() any { return new(ProductCreate) },
}

// New returns a pointer to an empty value of the named schema type.
func New(name string) (any, bool) {
	ctor, ok := types[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// TypeNames returns the names accepted by New, sorted.
func TypeNames() []string {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
