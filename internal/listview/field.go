package listview

import (
	"strconv"
	"time"
)

// Kind selects how a field is compared, filtered and declared in expressions.
type Kind int

const (
	// KindString compares as case-sensitive raw strings.
	KindString Kind = iota
	// KindNumber compares numerically.
	KindNumber
	// KindTime compares chronologically.
	KindTime
	// KindBool orders false before true.
	KindBool
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	case KindBool:
		return "bool"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field reads one typed value from a record.
//
// Build fields with String, Number, OptionalNumber, Time and Bool so the kind
// and the accessor always agree.
type Field[T any] struct {
	kind Kind
	str  func(T) string
	num  func(T) (float64, bool)
	tm   func(T) time.Time
	bl   func(T) bool
}

// String declares a text field.
func String[T any](get func(T) string) Field[T] {
	return Field[T]{kind: KindString, str: get}
}

// Number declares a numeric field that is always present.
func Number[T any](get func(T) float64) Field[T] {
	return Field[T]{kind: KindNumber, num: func(rec T) (float64, bool) { return get(rec), true }}
}

// OptionalNumber declares a numeric field that may be absent on a record.
func OptionalNumber[T any](get func(T) (float64, bool)) Field[T] {
	return Field[T]{kind: KindNumber, num: get}
}

// Time declares a timestamp field; the zero time counts as missing.
func Time[T any](get func(T) time.Time) Field[T] {
	return Field[T]{kind: KindTime, tm: get}
}

// Bool declares a boolean field.
func Bool[T any](get func(T) bool) Field[T] {
	return Field[T]{kind: KindBool, bl: get}
}

// Kind reports the field kind.
func (f Field[T]) Kind() Kind {
	return f.kind
}

func (f Field[T]) valid() bool {
	switch f.kind {
	case KindString:
		return f.str != nil
	case KindNumber:
		return f.num != nil
	case KindTime:
		return f.tm != nil
	case KindBool:
		return f.bl != nil
	default:
		return false
	}
}

func (f Field[T]) stringValue(rec T) string {
	return f.str(rec)
}

func (f Field[T]) numberValue(rec T) (float64, bool) {
	return f.num(rec)
}

func (f Field[T]) timeValue(rec T) (time.Time, bool) {
	v := f.tm(rec)
	return v, !v.IsZero()
}

func (f Field[T]) boolValue(rec T) bool {
	return f.bl(rec)
}

// Text renders the field as plain text; missing values render empty.
func (f Field[T]) Text(rec T) string {
	switch f.kind {
	case KindString:
		return f.str(rec)
	case KindNumber:
		v, ok := f.num(rec)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case KindTime:
		v, ok := f.timeValue(rec)
		if !ok {
			return ""
		}
		return v.Format(time.RFC3339)
	case KindBool:
		return strconv.FormatBool(f.bl(rec))
	default:
		return ""
	}
}
