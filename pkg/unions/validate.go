package unions

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is cached to avoid recreation on each trial-decode.
var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()

		// Use JSON tag names so that error paths match the wire format.
		validatorInstance.RegisterTagNameFunc(jsonFieldName)
	})
	return validatorInstance
}

// Validator returns the shared validator used for payload validation, so that
// callers can register additional rules.
func Validator() *validator.Validate {
	return getValidator()
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

// ValidatePayload validates v against its validate tags and validates every
// union reachable from it. All failures are reported, as ValidationErrors.
func ValidatePayload(v any) error {
	var errs ValidationErrors
	validateValue(reflect.ValueOf(v), "", true, &errs)
	return errs.orNil()
}

// validateValue walks rv. checkTags is false for struct fields of a struct
// that was already checked, because the validator recurses into those itself.
// Slice and map elements are always checked since models carry no dive tags.
func validateValue(rv reflect.Value, path string, checkTags bool, errs *ValidationErrors) {
	if !rv.IsValid() {
		return
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return
		}
		if variant, ok := asVariant(rv); ok {
			errs.add(path, variant.Validate())
			return
		}
		validateValue(rv.Elem(), path, checkTags, errs)
		return
	}

	if variant, ok := asVariant(rv); ok {
		errs.add(path, variant.Validate())
		return
	}

	switch rv.Kind() {
	case reflect.Struct:
		if checkTags {
			validateTags(rv.Interface(), path, errs)
		}
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() || field.Tag.Get("validate") == "-" {
				continue
			}
			name := jsonFieldName(field)
			if name == "" {
				continue
			}
			if field.Anonymous && field.Tag.Get("json") == "" {
				name = ""
			}
			validateValue(rv.Field(i), joinPath(path, name), false, errs)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			validateValue(rv.Index(i), fmt.Sprintf("%s[%d]", path, i), true, errs)
		}
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, key := range keys {
			validateValue(rv.MapIndex(key), fmt.Sprintf("%s[%v]", path, key.Interface()), true, errs)
		}
	}
}

func asVariant(rv reflect.Value) (Variant, bool) {
	if !rv.CanInterface() {
		return nil, false
	}
	variant, ok := rv.Interface().(Variant)
	return variant, ok
}

func validateTags(v any, path string, errs *ValidationErrors) {
	err := getValidator().Struct(v)
	if err == nil {
		return
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// Not a validatable struct, e.g. time.Time.
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.add(path, err)
		return
	}
	for _, fe := range fieldErrs {
		*errs = append(*errs, &ValidationError{
			Path: joinPath(path, trimRoot(fe.Namespace())),
			Rule: fe.Tag(),
			Err:  fe,
		})
	}
}

// trimRoot drops the struct type name the validator prefixes namespaces with.
func trimRoot(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
