package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Metadata is a set of key-value pairs attached to a resource.
type Metadata map[string]MetadataValue

// Get returns the value stored under key as a string, formatting numbers and
// booleans.
func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v.IsZero() {
		return "", false
	}
	if s, ok := v.AsString(); ok {
		return s, true
	}
	return fmt.Sprint(v.Value()), true
}

// MetadataFromStrings builds Metadata holding string values only.
func MetadataFromStrings(values map[string]string) Metadata {
	m := make(Metadata, len(values))
	for k, v := range values {
		m[k] = MetadataValueFromString(v)
	}
	return m
}

// MetadataValueFromFloat64 returns a Number holding f in its shortest form.
func MetadataValueFromFloat64(f float64) MetadataValue {
	return MetadataValueFromNumber(json.Number(strconv.FormatFloat(f, 'g', -1, 64)))
}

// MetadataValueFromInt returns a Number holding i.
func MetadataValueFromInt(i int64) MetadataValue {
	return MetadataValueFromNumber(json.Number(strconv.FormatInt(i, 10)))
}

// AsFloat64 returns a Number value converted to float64. Numbers beyond
// float64 precision are rounded; use AsNumber for the exact literal.
func (u MetadataValue) AsFloat64() (float64, bool) {
	n, ok := u.AsNumber()
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}
