package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names so error paths match the payload the caller sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse decodes a JSON character document and validates its shape.
// It returns a *ValidationError when a required field is missing, a field has
// the wrong type, or a nested list element is invalid.
func Parse(data []byte) (*Character, error) {
	var p characterPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, decodeError(data, err)
	}

	if err := validate.Struct(&p); err != nil {
		return nil, structError(err)
	}

	return p.toCharacter(), nil
}

// FromMap validates an already decoded payload, such as a generic request body.
func FromMap(payload map[string]any) (*Character, error) {
	if payload == nil {
		return nil, newValidationError("", "payload is required")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, newValidationError("", fmt.Sprintf("payload is not a JSON document: %v", err))
	}
	return Parse(data)
}

func decodeError(data []byte, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		var doc any
		if json.Unmarshal(data, &doc) == nil {
			if field, reason, ok := locateTypeError(doc, reflect.TypeOf(characterPayload{}), ""); ok {
				return newValidationError(field, reason)
			}
		}
		return newValidationError(typeErr.Field,
			fmt.Sprintf("must be %s, got %s", jsonTypeName(typeErr.Type), typeErr.Value))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newValidationError("", fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, syntaxErr))
	}

	return newValidationError("", fmt.Sprintf("malformed JSON: %v", err))
}

// locateTypeError walks doc against t and returns the path of the first value
// t cannot hold. encoding/json reports only the struct path of a type error,
// without list indexes or map keys. List elements are written as [i] and map
// entries as [key], the same form validator uses for missing fields.
func locateTypeError(doc any, t reflect.Type, path string) (string, string, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if doc == nil {
		return "", "", false
	}

	mismatch := func() (string, string, bool) {
		return path, fmt.Sprintf("must be %s, got %s", jsonTypeName(t), jsonValueName(doc)), true
	}

	switch t.Kind() {
	case reflect.Struct:
		obj, ok := doc.(map[string]any)
		if !ok {
			return mismatch()
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				continue
			}
			v, present := lookupKey(obj, name)
			if !present {
				continue
			}
			if field, reason, found := locateTypeError(v, f.Type, joinPath(path, name)); found {
				return field, reason, true
			}
		}

	case reflect.Slice:
		arr, ok := doc.([]any)
		if !ok {
			return mismatch()
		}
		for i, v := range arr {
			if field, reason, found := locateTypeError(v, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); found {
				return field, reason, true
			}
		}

	case reflect.Map:
		obj, ok := doc.(map[string]any)
		if !ok {
			return mismatch()
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if field, reason, found := locateTypeError(obj[k], t.Elem(), fmt.Sprintf("%s[%s]", path, k)); found {
				return field, reason, true
			}
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := doc.(float64)
		if !ok || n != math.Trunc(n) {
			return mismatch()
		}

	case reflect.Float32, reflect.Float64:
		if _, ok := doc.(float64); !ok {
			return mismatch()
		}

	case reflect.String:
		if _, ok := doc.(string); !ok {
			return mismatch()
		}

	case reflect.Bool:
		if _, ok := doc.(bool); !ok {
			return mismatch()
		}
	}

	return "", "", false
}

// lookupKey matches object keys the way encoding/json does: exact name
// first, then case-insensitively.
func lookupKey(obj map[string]any, name string) (any, bool) {
	if v, ok := obj[name]; ok {
		return v, true
	}
	for k, v := range obj {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func jsonValueName(v any) string {
	switch v := v.(type) {
	case string:
		return "string"
	case float64:
		if v != math.Trunc(v) {
			return fmt.Sprintf("number %v", v)
		}
		return "number"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func structError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newValidationError("", err.Error())
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:  trimRoot(fe.Namespace()),
			Reason: reasonFor(fe),
		})
	}
	return out
}

// trimRoot drops the payload type name validator puts in front of the path.
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

func jsonTypeName(t reflect.Type) string {
	if t == nil {
		return "a value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	default:
		return t.String()
	}
}
