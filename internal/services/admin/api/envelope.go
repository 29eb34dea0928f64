package api

import (
	"log"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/socialadmin/internal/platform/errors"
	"github.com/tidwall/gjson"
)

// parseEnvelope validates the JSON envelope and rejects success:false.
func parseEnvelope(raw []byte) (gjson.Result, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, apperrors.New(apperrors.CodeInvalidResponse, "response is not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if success := root.Get("success"); success.Exists() && !success.Bool() {
		message := strings.TrimSpace(root.Get("message").String())
		if message == "" {
			message = "request was not successful"
		}
		return gjson.Result{}, apperrors.New(apperrors.CodeTransport, message)
	}
	return root, nil
}

// envelopeMessage extracts the message of an error response, if any.
func envelopeMessage(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return ""
	}
	root := gjson.ParseBytes(raw)
	for _, key := range []string{"message", "error"} {
		if v := root.Get(key); v.Type == gjson.String {
			return strings.TrimSpace(v.String())
		}
	}
	return ""
}

// payload resolves the envelope body from "data" or one of the resource keys.
// A bare (non-envelope) array or object is accepted as the payload itself.
func payload(root gjson.Result, keys ...string) (gjson.Result, error) {
	if data := root.Get("data"); data.Exists() {
		return data, nil
	}
	for _, key := range keys {
		if v := root.Get(key); v.Exists() {
			return v, nil
		}
	}
	if root.IsArray() {
		return root, nil
	}
	if root.IsObject() && !root.Get("success").Exists() {
		return root, nil
	}
	return gjson.Result{}, apperrors.WithMetadata(apperrors.CodeInvalidResponse, "response has no payload", map[string]string{
		"keys": strings.Join(keys, ","),
	})
}

// decodeList decodes every element of an array payload, dropping records
// that fail validation.
func decodeList[T interface{ Validate() error }](resource string, items gjson.Result, decode func(gjson.Result) T) ([]T, error) {
	if !items.IsArray() {
		return nil, apperrors.New(apperrors.CodeInvalidResponse, resource+" payload is not a list")
	}
	elements := items.Array()
	out := make([]T, 0, len(elements))
	for i, element := range elements {
		rec := decode(element)
		if err := rec.Validate(); err != nil {
			log.Printf("api: drop invalid %s record %d: %v", resource, i, err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// decodeOne decodes and validates a single record payload.
func decodeOne[T interface{ Validate() error }](resource string, item gjson.Result, decode func(gjson.Result) T) (T, error) {
	if item.IsArray() {
		elements := item.Array()
		if len(elements) == 0 {
			var zero T
			return zero, apperrors.New(apperrors.CodeNotFound, resource+" not found")
		}
		item = elements[0]
	}
	rec := decode(item)
	if !item.IsObject() {
		return rec, apperrors.New(apperrors.CodeInvalidResponse, resource+" payload is not an object")
	}
	if err := rec.Validate(); err != nil {
		return rec, apperrors.Wrap(apperrors.CodeInvalidResponse, "invalid "+resource, err)
	}
	return rec, nil
}

// first returns the first existing value among keys.
func first(r gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if v := r.Get(key); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

func str(r gjson.Result, keys ...string) string {
	return strings.TrimSpace(first(r, keys...).String())
}

// num reads a number, accepting numeric strings.
func num(r gjson.Result, keys ...string) (float64, bool) {
	v := first(r, keys...)
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func numOr(r gjson.Result, keys ...string) float64 {
	v, _ := num(r, keys...)
	return v
}

func intOr(r gjson.Result, keys ...string) int {
	return int(numOr(r, keys...))
}

// boolean reads true/false, accepting "true"/"false" strings and 0/1.
func boolean(r gjson.Result, keys ...string) bool {
	v := first(r, keys...)
	switch v.Type {
	case gjson.True:
		return true
	case gjson.String:
		b, _ := strconv.ParseBool(strings.TrimSpace(v.String()))
		return b
	case gjson.Number:
		return v.Float() != 0
	default:
		return false
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timestamp reads an RFC 3339 string, a date, or epoch milliseconds.
func timestamp(r gjson.Result, keys ...string) time.Time {
	v := first(r, keys...)
	switch v.Type {
	case gjson.Number:
		return time.UnixMilli(v.Int()).UTC()
	case gjson.String:
		raw := strings.TrimSpace(v.String())
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}
