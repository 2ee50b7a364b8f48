package unions

import (
	"fmt"
	"reflect"
	"sort"
)

// Walk calls fn for every union reachable from v, outer unions before the
// unions nested in their payloads. Paths use the notation of ValidationError.Path.
func Walk(v any, fn func(path string, u Variant)) {
	walkValue(reflect.ValueOf(v), "", fn)
}

func walkValue(rv reflect.Value, path string, fn func(string, Variant)) {
	if !rv.IsValid() {
		return
	}
	if variant, ok := asVariant(rv); ok {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return
		}
		fn(path, variant)
		walkValue(reflect.ValueOf(variant.Value()), path, fn)
		return
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if !rv.IsNil() {
			walkValue(rv.Elem(), path, fn)
		}
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			name := jsonFieldName(field)
			if name == "" {
				continue
			}
			if field.Anonymous && field.Tag.Get("json") == "" {
				name = ""
			}
			walkValue(rv.Field(i), joinPath(path, name), fn)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			walkValue(rv.Index(i), fmt.Sprintf("%s[%d]", path, i), fn)
		}
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, key := range keys {
			walkValue(rv.MapIndex(key), fmt.Sprintf("%s[%v]", path, key.Interface()), fn)
		}
	}
}
