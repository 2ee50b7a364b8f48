// Package unions implements tagged unions for JSON fields that accept one of
// several payload shapes.
//
// A union type declares its alternatives once, in priority order, with
// Register. Decoding tries each alternative in that order and keeps the first
// one whose payload decodes strictly and validates; encoding writes the active
// payload back unchanged.
package unions

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
)

// Variant is implemented by every union type.
type Variant interface {
	json.Marshaler
	// Validate validates the active payload, recursively.
	Validate() error
	// Active returns the name of the active alternative, or "" when unset.
	Active() string
	// Value returns the active payload, or nil when unset.
	Value() any
}

// Union holds the active alternative of a named union type. Named unions embed
// it and add typed constructors and accessors. The zero Union has no
// alternative set.
type Union struct {
	name    string
	payload any
}

// New returns a Union with the named alternative active.
func New(name string, payload any) Union {
	return Union{name: name, payload: payload}
}

// Active returns the name of the active alternative.
func (u Union) Active() string {
	return u.name
}

// Value returns the active payload.
func (u Union) Value() any {
	return u.payload
}

// IsZero reports whether no alternative is set.
func (u Union) IsZero() bool {
	return u.name == ""
}

// MarshalJSON writes the active payload.
func (u Union) MarshalJSON() ([]byte, error) {
	if u.IsZero() {
		return nil, ErrNoAlternative
	}
	return marshalPayload(u.payload)
}

// Validate validates the active payload.
func (u Union) Validate() error {
	if u.IsZero() {
		return &ValidationError{Rule: ruleVariant, Err: ErrNoAlternative}
	}
	return ValidatePayload(u.payload)
}

func (u Union) String() string {
	if u.IsZero() {
		return "<unset>"
	}
	return fmt.Sprintf("%s(%v)", u.name, u.payload)
}

// As returns the payload of u when the named alternative is active.
func As[P any](u Union, name string) (P, bool) {
	if u.name != name {
		var zero P
		return zero, false
	}
	p, ok := u.payload.(P)
	return p, ok
}

// marshalPayload encodes a union payload. A nil slice or map is written as
// [] or {} so that it decodes back into an alternative instead of null.
func marshalPayload(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch {
	case rv.Kind() == reflect.Slice && rv.IsNil() && rv.Type().Elem().Kind() != reflect.Uint8:
		return []byte("[]"), nil
	case rv.Kind() == reflect.Map && rv.IsNil():
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}

var packageQualifier = regexp.MustCompile(`[\w\-./]*\.`)

// locationOf names an anonymous generic union after its type arguments,
// without package paths: "Union2[string, Filter]".
func locationOf(t reflect.Type) string {
	name := packageQualifier.ReplaceAllString(t.String(), "")
	return strings.ReplaceAll(name, ",", ", ")
}

// genericAlternatives holds the descriptors of each instantiated generic
// union, keyed by its reflect.Type.
var genericAlternatives sync.Map

// cachedAlternatives returns the descriptors of the generic union U, built
// on first use.
func cachedAlternatives[U any](build func(location string) *Alternatives[U]) *Alternatives[U] {
	t := reflect.TypeFor[U]()
	if alts, ok := genericAlternatives.Load(t); ok {
		return alts.(*Alternatives[U])
	}
	alts, _ := genericAlternatives.LoadOrStore(t, build(locationOf(t)))
	return alts.(*Alternatives[U])
}

// Union2 represents a union of two types. A is tried before B.
type Union2[A, B any] struct {
	A *A `validate:"-"`
	B *B `validate:"-"`
}

// UnmarshalJSON implements json.Unmarshaler for Union2.
func (u *Union2[A, B]) UnmarshalJSON(data []byte) error {
	alts := cachedAlternatives(func(location string) *Alternatives[Union2[A, B]] {
		return Register(location,
			Alt("A", func(a A) Union2[A, B] { return Union2[A, B]{A: &a} }),
			Alt("B", func(b B) Union2[A, B] { return Union2[A, B]{B: &b} }),
		)
	})
	return alts.Unmarshal(data, u)
}

// MarshalJSON implements json.Marshaler for Union2.
func (u Union2[A, B]) MarshalJSON() ([]byte, error) {
	v := u.Value()
	if v == nil {
		return nil, ErrNoAlternative
	}
	return marshalPayload(v)
}

// Validate validates the active union member.
func (u Union2[A, B]) Validate() error {
	return validateMembers(u.Value(), u.A != nil, u.B != nil)
}

// Active returns "A" or "B", or "" when unset.
func (u Union2[A, B]) Active() string {
	switch {
	case u.A != nil:
		return "A"
	case u.B != nil:
		return "B"
	default:
		return ""
	}
}

// Value returns the active member.
func (u Union2[A, B]) Value() any {
	switch {
	case u.A != nil:
		return u.A
	case u.B != nil:
		return u.B
	default:
		return nil
	}
}

// Union3 represents a union of three types, tried in order A, B, C.
type Union3[A, B, C any] struct {
	A *A `validate:"-"`
	B *B `validate:"-"`
	C *C `validate:"-"`
}

// UnmarshalJSON implements json.Unmarshaler for Union3.
func (u *Union3[A, B, C]) UnmarshalJSON(data []byte) error {
	alts := cachedAlternatives(func(location string) *Alternatives[Union3[A, B, C]] {
		return Register(location,
			Alt("A", func(a A) Union3[A, B, C] { return Union3[A, B, C]{A: &a} }),
			Alt("B", func(b B) Union3[A, B, C] { return Union3[A, B, C]{B: &b} }),
			Alt("C", func(c C) Union3[A, B, C] { return Union3[A, B, C]{C: &c} }),
		)
	})
	return alts.Unmarshal(data, u)
}

// MarshalJSON implements json.Marshaler for Union3.
func (u Union3[A, B, C]) MarshalJSON() ([]byte, error) {
	v := u.Value()
	if v == nil {
		return nil, ErrNoAlternative
	}
	return marshalPayload(v)
}

// Validate validates the active union member.
func (u Union3[A, B, C]) Validate() error {
	return validateMembers(u.Value(), u.A != nil, u.B != nil, u.C != nil)
}

// Active returns "A", "B" or "C", or "" when unset.
func (u Union3[A, B, C]) Active() string {
	switch {
	case u.A != nil:
		return "A"
	case u.B != nil:
		return "B"
	case u.C != nil:
		return "C"
	default:
		return ""
	}
}

// Value returns the active member.
func (u Union3[A, B, C]) Value() any {
	switch {
	case u.A != nil:
		return u.A
	case u.B != nil:
		return u.B
	case u.C != nil:
		return u.C
	default:
		return nil
	}
}

// Union4 represents a union of four types, tried in order A, B, C, D.
type Union4[A, B, C, D any] struct {
	A *A `validate:"-"`
	B *B `validate:"-"`
	C *C `validate:"-"`
	D *D `validate:"-"`
}

// UnmarshalJSON implements json.Unmarshaler for Union4.
func (u *Union4[A, B, C, D]) UnmarshalJSON(data []byte) error {
	alts := cachedAlternatives(func(location string) *Alternatives[Union4[A, B, C, D]] {
		return Register(location,
			Alt("A", func(a A) Union4[A, B, C, D] { return Union4[A, B, C, D]{A: &a} }),
			Alt("B", func(b B) Union4[A, B, C, D] { return Union4[A, B, C, D]{B: &b} }),
			Alt("C", func(c C) Union4[A, B, C, D] { return Union4[A, B, C, D]{C: &c} }),
			Alt("D", func(d D) Union4[A, B, C, D] { return Union4[A, B, C, D]{D: &d} }),
		)
	})
	return alts.Unmarshal(data, u)
}

// MarshalJSON implements json.Marshaler for Union4.
func (u Union4[A, B, C, D]) MarshalJSON() ([]byte, error) {
	v := u.Value()
	if v == nil {
		return nil, ErrNoAlternative
	}
	return marshalPayload(v)
}

// Validate validates the active union member.
func (u Union4[A, B, C, D]) Validate() error {
	return validateMembers(u.Value(), u.A != nil, u.B != nil, u.C != nil, u.D != nil)
}

// Active returns "A", "B", "C" or "D", or "" when unset.
func (u Union4[A, B, C, D]) Active() string {
	switch {
	case u.A != nil:
		return "A"
	case u.B != nil:
		return "B"
	case u.C != nil:
		return "C"
	case u.D != nil:
		return "D"
	default:
		return ""
	}
}

// Value returns the active member.
func (u Union4[A, B, C, D]) Value() any {
	switch {
	case u.A != nil:
		return u.A
	case u.B != nil:
		return u.B
	case u.C != nil:
		return u.C
	case u.D != nil:
		return u.D
	default:
		return nil
	}
}

// validateMembers checks that exactly one member is set before validating it.
func validateMembers(value any, set ...bool) error {
	count := 0
	for _, s := range set {
		if s {
			count++
		}
	}
	switch {
	case count == 0:
		return &ValidationError{Rule: ruleVariant, Err: ErrNoAlternative}
	case count > 1:
		return &ValidationError{Rule: ruleVariant, Err: fmt.Errorf("%d union members set, want exactly one", count)}
	}
	return ValidatePayload(value)
}
