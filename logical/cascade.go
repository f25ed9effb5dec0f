package logical

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
)

// shape is one step of a conversion cascade: a named input shape and the
// conversion applied to values of that shape. convert reports matched=false
// when the value does not have the shape; once a shape matches, its result
// or error is final.
type shape struct {
	name    string
	convert func(d Descriptor, v any) (raw any, matched bool, err error)
}

// cascade is an ordered list of shapes. Order is part of the contract: a
// value satisfying several shapes is converted by the first one.
type cascade []shape

func (c cascade) run(d Descriptor, v any) (any, error) {
	if isNull(v) {
		return nil, nil
	}
	for _, s := range c {
		raw, matched, err := s.convert(d, v)
		if !matched {
			continue
		}
		if err != nil {
			return nil, err
		}
		return raw, nil
	}
	return nil, &ConversionError{
		Kind:     UnsupportedInputType,
		Tag:      d.String(),
		Observed: typeName(v),
		Target:   d.rawTypeName(),
	}
}

func (c cascade) names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.name
	}
	return names
}

// isNull reports whether v is nil or a nil pointer.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

func (d Descriptor) rawTypeName() string {
	switch d.kind {
	case KindDate:
		return "int32"
	case KindLocalTimestampMillis, KindTimestampMicros:
		return "int64"
	case KindDecimal:
		return "[]byte"
	case KindFixed:
		return "logical.Fixed"
	case KindGeoPoint, KindVarchar:
		return "string"
	default:
		return "invalid"
	}
}

func (d Descriptor) convErr(kind ConversionErrorKind, v any, target string, cause error) *ConversionError {
	return &ConversionError{
		Kind:     kind,
		Tag:      d.String(),
		Observed: typeName(v),
		Target:   target,
		Err:      cause,
	}
}

// numericKinds are the reflect kinds accepted as "any other numeric" input,
// so named numeric types match as well as builtin ones.
func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// toInt64 coerces a numeric value to int64. Floating point values are
// truncated toward zero. matched is false for non-numeric values.
func toInt64(v any) (n int64, matched bool, err error) {
	if b, ok := v.(*big.Int); ok {
		if !b.IsInt64() {
			return 0, true, fmt.Errorf("%s overflows int64", b)
		}
		return b.Int64(), true, nil
	}

	rv := reflect.ValueOf(v)
	if !isNumericKind(rv.Kind()) {
		return 0, false, nil
	}
	switch {
	case rv.CanInt():
		return rv.Int(), true, nil
	case rv.CanUint():
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, true, fmt.Errorf("%d overflows int64", u)
		}
		return int64(u), true, nil
	default:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, true, fmt.Errorf("%v is not a finite number", f)
		}
		f = math.Trunc(f)
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, true, fmt.Errorf("%v overflows int64", f)
		}
		return int64(f), true, nil
	}
}

// toFloat64 returns the closest float64 to a numeric value.
func toFloat64(v any) (f float64, matched bool) {
	if b, ok := v.(*big.Int); ok {
		f, _ = new(big.Float).SetInt(b).Float64()
		return f, true
	}
	rv := reflect.ValueOf(v)
	if !isNumericKind(rv.Kind()) {
		return 0, false
	}
	switch {
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	case rv.Kind() == reflect.Float32:
		// Widening a float32 directly would expose binary noise digits;
		// go through its own shortest decimal form instead.
		f, _ = parseShortest(float32(rv.Float()))
		return f, true
	default:
		return rv.Float(), true
	}
}

// asText returns the string content of a string or named string type.
func asText(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func toInt32(n int64) (int32, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%d overflows int32", n)
	}
	return int32(n), nil
}
