package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// field is one path/value pair of a JSON request body.
type field struct {
	path  string
	value any
}

// encodeBody builds a JSON object from sjson paths. Nil values are skipped so
// partial updates only carry the fields that changed.
func encodeBody(fields ...field) ([]byte, error) {
	body := []byte("{}")
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		var err error
		body, err = sjson.SetBytes(body, f.path, f.value)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeValidation, "encode "+f.path, err)
		}
	}
	return body, nil
}

// optional returns nil for an empty string so encodeBody skips it.
func optional(value string) any {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return value
}

// ParseAmount reads a non-negative decimal form value. name labels the field
// in the returned validation error.
func ParseAmount(name, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperrors.WithMetadata(apperrors.CodeValidation, name+" is required", map[string]string{"field": name})
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperrors.WithMetadata(apperrors.CodeValidation, fmt.Sprintf("%s must be a number", name), map[string]string{"field": name})
	}
	if value < 0 {
		return 0, apperrors.WithMetadata(apperrors.CodeValidation, fmt.Sprintf("%s must not be negative", name), map[string]string{"field": name})
	}
	return value, nil
}

// ParseCount reads a non-negative whole-number form value.
func ParseCount(name, raw string) (int, error) {
	value, err := ParseAmount(name, raw)
	if err != nil {
		return 0, err
	}
	if value != float64(int(value)) {
		return 0, apperrors.WithMetadata(apperrors.CodeValidation, fmt.Sprintf("%s must be a whole number", name), map[string]string{"field": name})
	}
	return int(value), nil
}

// decodeResult decodes the record a mutation echoes back. ok is false when
// the response carries no record, which is not an error.
func decodeResult[T interface{ Validate() error }](resource string, root gjson.Result, decode func(gjson.Result) T, keys ...string) (rec T, ok bool, err error) {
	item, err := payload(root, keys...)
	if err != nil || !item.IsObject() {
		return rec, false, nil
	}
	rec, err = decodeOne(resource, item, decode)
	if err != nil {
		return rec, false, err
	}
	return rec, true, nil
}
