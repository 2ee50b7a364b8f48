package unions

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var variantType = reflect.TypeFor[Variant]()

// Unmarshal decodes data into v like json.Unmarshal. When a union inside v
// matches none of its alternatives, the returned *UnknownShapeError carries
// the path of that field relative to v, e.g. "events[1]".
func Unmarshal(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err != nil {
		if t := reflect.TypeOf(v); t != nil {
			locateNested(err, data, t)
		}
	}
	return err
}

// locateNested fills in the Path of an *UnknownShapeError raised while
// decoding data as t. encoding/json stops at the first failing field, so the
// first union position in document order holding the rejected bytes is the
// one that failed.
func locateNested(err error, data []byte, t reflect.Type) {
	var unknown *UnknownShapeError
	if !errors.As(err, &unknown) || unknown.Path != "" {
		return
	}
	if path, ok := locate(data, t, bytes.TrimSpace(unknown.Raw)); ok {
		unknown.Path = path
	}
}

// locate searches data, decoded as t, for the union field whose raw value is
// target. It does not descend into unions: a failure below one surfaces as a
// failure of that union.
func locate(data []byte, t reflect.Type, target []byte) (string, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	data = bytes.TrimSpace(data)
	if isVariantType(t) {
		return "", bytes.Equal(data, target)
	}
	if t.Implements(unmarshalerType) || reflect.PointerTo(t).Implements(unmarshalerType) {
		return "", false
	}

	var (
		path  string
		found bool
	)
	switch t.Kind() {
	case reflect.Struct:
		fields := jsonFields(t)
		eachMember(data, func(key string, raw []byte) bool {
			field, ok := fields.lookup(key)
			if !ok {
				return true
			}
			if p, hit := locate(raw, field.typ, target); hit {
				path, found = joinPath(field.name, p), true
			}
			return !found
		})
	case reflect.Map:
		eachMember(data, func(key string, raw []byte) bool {
			if p, hit := locate(raw, t.Elem(), target); hit {
				path, found = joinPath("["+key+"]", p), true
			}
			return !found
		})
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return "", false
		}
		eachElement(data, func(i int, raw []byte) bool {
			if p, hit := locate(raw, t.Elem(), target); hit {
				path, found = joinPath(fmt.Sprintf("[%d]", i), p), true
			}
			return !found
		})
	}
	return path, found
}

func isVariantType(t reflect.Type) bool {
	return t.Implements(variantType) || reflect.PointerTo(t).Implements(variantType)
}

// eachMember calls fn for the members of a JSON object in document order
// until fn returns false.
func eachMember(data []byte, fn func(key string, raw []byte) bool) {
	if ShapeOf(data) != ShapeObject {
		return
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return
		}
		if !fn(key, raw) {
			return
		}
	}
}

// eachElement calls fn for the elements of a JSON array until fn returns false.
func eachElement(data []byte, fn func(i int, raw []byte) bool) {
	if ShapeOf(data) != ShapeArray {
		return
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return
	}
	for i := 0; dec.More(); i++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return
		}
		if !fn(i, raw) {
			return
		}
	}
}

type jsonField struct {
	name string
	typ  reflect.Type
}

type fieldList []jsonField

// jsonFields lists the decodable fields of struct type t by JSON name,
// flattening untagged embedded structs the way encoding/json does.
func jsonFields(t reflect.Type) fieldList {
	var fields fieldList
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Tag.Get("json") == "" {
			ft := field.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct && !isVariantType(ft) {
				fields = append(fields, jsonFields(ft)...)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name := jsonFieldName(field); name != "" {
			fields = append(fields, jsonField{name: name, typ: field.Type})
		}
	}
	return fields
}

// lookup matches key exactly first, then case-insensitively like encoding/json.
func (l fieldList) lookup(key string) (jsonField, bool) {
	for _, f := range l {
		if f.name == key {
			return f, true
		}
	}
	for _, f := range l {
		if strings.EqualFold(f.name, key) {
			return f, true
		}
	}
	return jsonField{}, false
}
