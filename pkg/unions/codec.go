package unions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// Shape is the coarse JSON kind of a raw value or of an alternative's payload.
type Shape uint8

// Shapes recognized by the codec.
const (
	ShapeInvalid Shape = iota
	ShapeAny
	ShapeNull
	ShapeString
	ShapeNumber
	ShapeBool
	ShapeObject
	ShapeArray
)

func (s Shape) String() string {
	switch s {
	case ShapeAny:
		return "any"
	case ShapeNull:
		return "null"
	case ShapeString:
		return "string"
	case ShapeNumber:
		return "number"
	case ShapeBool:
		return "boolean"
	case ShapeObject:
		return "object"
	case ShapeArray:
		return "array"
	default:
		return "invalid"
	}
}

// accepts reports whether a payload of shape s may be decoded from raw of shape raw.
func (s Shape) accepts(raw Shape) bool {
	return s == ShapeAny || s == raw
}

// ShapeOf classifies raw JSON by its first significant byte. It does not
// validate the rest of the input.
func ShapeOf(data []byte) Shape {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return ShapeInvalid
	}
	switch c := data[0]; {
	case c == '{':
		return ShapeObject
	case c == '[':
		return ShapeArray
	case c == '"':
		return ShapeString
	case c == 't' || c == 'f':
		return ShapeBool
	case c == 'n':
		return ShapeNull
	case c == '-' || (c >= '0' && c <= '9'):
		return ShapeNumber
	default:
		return ShapeInvalid
	}
}

var (
	unmarshalerType = reflect.TypeFor[json.Unmarshaler]()
	numberType      = reflect.TypeFor[json.Number]()
)

// shapeForType derives the JSON shape a Go payload type decodes from. Types
// with their own UnmarshalJSON decide for themselves and report ShapeAny.
// json.Number holds a number literal verbatim.
func shapeForType(t reflect.Type) Shape {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == numberType {
		return ShapeNumber
	}
	if t.Implements(unmarshalerType) || reflect.PointerTo(t).Implements(unmarshalerType) {
		return ShapeAny
	}
	switch t.Kind() {
	case reflect.String:
		return ShapeString
	case reflect.Bool:
		return ShapeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return ShapeNumber
	case reflect.Struct, reflect.Map:
		return ShapeObject
	case reflect.Slice, reflect.Array:
		return ShapeArray
	default:
		return ShapeAny
	}
}

// Alternative describes one branch of a union of type U: the payload shape it
// accepts and how a raw value becomes a U.
type Alternative[U any] struct {
	name  string
	shape Shape
	try   func(data []byte) (U, error)
}

// Alt declares an alternative named name whose payload type is P. from wraps a
// decoded payload into the union; it is the same function callers use to build
// the union for outgoing requests.
//
// The trial-decode is strict: unknown object fields, numeric coercion and
// payloads failing their validate tags are all non-matches.
func Alt[P, U any](name string, from func(P) U) Alternative[U] {
	return Alternative[U]{
		name:  name,
		shape: shapeForType(reflect.TypeFor[P]()),
		try: func(data []byte) (U, error) {
			var zero U
			payload, err := decodeStrict[P](data)
			if err != nil {
				locateNested(err, data, reflect.TypeFor[P]())
				return zero, err
			}
			if err := ValidatePayload(payload); err != nil {
				return zero, err
			}
			return from(payload), nil
		},
	}
}

// Name returns the alternative's declared name.
func (a Alternative[U]) Name() string {
	return a.name
}

// Shape returns the JSON shape the alternative's payload decodes from.
func (a Alternative[U]) Shape() Shape {
	return a.shape
}

// Try attempts to interpret data as this alternative. Failures are returned as
// *MalformedPayloadError.
func (a Alternative[U]) Try(data []byte) (U, error) {
	if raw := ShapeOf(data); !a.shape.accepts(raw) {
		var zero U
		return zero, &MalformedPayloadError{
			Alternative: a.name,
			Err:         fmt.Errorf("%w: expected %s, got %s", ErrShapeMismatch, a.shape, raw),
		}
	}
	u, err := a.try(data)
	if err != nil {
		return u, &MalformedPayloadError{Alternative: a.name, Err: err}
	}
	return u, nil
}

func decodeStrict[P any](data []byte) (P, error) {
	var payload P
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		return payload, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return payload, errors.New("unexpected data after payload")
	}
	return payload, nil
}

// Alternatives is the ordered, read-only descriptor list of one union field.
// It is safe for concurrent use.
type Alternatives[U any] struct {
	location string
	alts     []Alternative[U]
}

// Register declares the alternatives of a union in priority order. Earlier
// alternatives win when raw input fits more than one. Register panics on an
// empty list or duplicate names, so mistakes surface at package init.
func Register[U any](location string, alts ...Alternative[U]) *Alternatives[U] {
	if len(alts) == 0 {
		panic(fmt.Sprintf("unions: %s: no alternatives declared", location))
	}
	seen := make(map[string]struct{}, len(alts))
	for _, alt := range alts {
		if _, dup := seen[alt.name]; dup {
			panic(fmt.Sprintf("unions: %s: duplicate alternative %q", location, alt.name))
		}
		seen[alt.name] = struct{}{}
	}
	return &Alternatives[U]{location: location, alts: alts}
}

// Location returns the schema location the alternatives were registered for.
func (r *Alternatives[U]) Location() string {
	return r.location
}

// Names returns the alternative names in declared order.
func (r *Alternatives[U]) Names() []string {
	names := make([]string, len(r.alts))
	for i, alt := range r.alts {
		names[i] = alt.name
	}
	return names
}

// Decode returns the union built by the first alternative that accepts data.
// When none does it returns *UnknownShapeError.
func (r *Alternatives[U]) Decode(data []byte) (U, error) {
	var zero U
	if !json.Valid(data) {
		return zero, fmt.Errorf("%s: %w", r.location, ErrInvalidJSON)
	}

	attempts := make([]error, 0, len(r.alts))
	for _, alt := range r.alts {
		u, err := alt.Try(data)
		if err == nil {
			return u, nil
		}
		attempts = append(attempts, err)
	}

	return zero, &UnknownShapeError{
		Location: r.location,
		Raw:      bytes.Clone(data),
		Attempts: attempts,
	}
}

// Unmarshal is the body of a union's UnmarshalJSON. A JSON null leaves dst
// untouched.
func (r *Alternatives[U]) Unmarshal(data []byte, dst *U) error {
	if ShapeOf(data) == ShapeNull {
		return nil
	}
	u, err := r.Decode(data)
	if err != nil {
		return err
	}
	*dst = u
	return nil
}

// Encode serializes the active payload of v.
func Encode(v Variant) (json.RawMessage, error) {
	return v.MarshalJSON()
}
