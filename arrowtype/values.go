package arrowtype

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/decimal256"

	"github.com/hugr-lab/logicaltypes/logical"
)

// ErrBuilderMismatch is returned when a builder or array does not hold the
// Arrow type of the descriptor.
var ErrBuilderMismatch = errors.New("arrow builder does not match logical type")

// Append converts v to its raw form and appends it to b. Null inputs append
// a null. b must have been created for DataType(d).
func Append(b array.Builder, d logical.Descriptor, v any) error {
	raw, err := d.ConvertToRaw(v)
	if err != nil {
		return err
	}
	if raw == nil {
		b.AppendNull()
		return nil
	}

	mismatch := func() error {
		return fmt.Errorf("%w: %s builder for %s", ErrBuilderMismatch, b.Type(), d)
	}

	switch bldr := b.(type) {
	case *array.Date32Builder:
		days, ok := raw.(int32)
		if !ok {
			return mismatch()
		}
		bldr.Append(arrow.Date32(days))
	case *array.Decimal128Builder:
		unscaled, err := unscaledValue(d, raw)
		if err != nil {
			return err
		}
		bldr.Append(decimal128.FromBigInt(unscaled))
	case *array.Decimal256Builder:
		unscaled, err := unscaledValue(d, raw)
		if err != nil {
			return err
		}
		bldr.Append(decimal256.FromBigInt(unscaled))
	case *array.FixedSizeBinaryBuilder:
		fixed, ok := raw.(logical.Fixed)
		if !ok {
			return mismatch()
		}
		width := bldr.Type().(*arrow.FixedSizeBinaryType).ByteWidth
		if fixed.Len() != width {
			return fmt.Errorf("%w: %d bytes for %s", ErrBuilderMismatch, fixed.Len(), bldr.Type())
		}
		bldr.Append(fixed)
	case *array.TimestampBuilder:
		n, ok := raw.(int64)
		if !ok {
			return mismatch()
		}
		bldr.Append(arrow.Timestamp(n))
	case *array.StringBuilder:
		s, ok := raw.(string)
		if !ok {
			return mismatch()
		}
		bldr.Append(s)
	case *array.ExtensionBuilder:
		if _, ok := bldr.Type().(*PointExtensionType); !ok {
			return mismatch()
		}
		s, ok := raw.(string)
		if !ok {
			return mismatch()
		}
		if _, err := logical.ParsePoint(s); err != nil {
			return err
		}
		storage, ok := bldr.StorageBuilder().(*array.StringBuilder)
		if !ok {
			return mismatch()
		}
		storage.Append(s)
	default:
		return mismatch()
	}
	return nil
}

// unscaledValue decodes the raw form of a DECIMAL to its unscaled integer.
func unscaledValue(d logical.Descriptor, raw any) (*big.Int, error) {
	v, err := d.ConvertToLogical(raw)
	if err != nil {
		return nil, err
	}
	dec, ok := v.(logical.Decimal)
	if !ok {
		return nil, fmt.Errorf("%w: %T for %s", ErrBuilderMismatch, v, d)
	}
	return dec.Unscaled(), nil
}

// Value returns the logical value at index i of arr, or nil when the slot
// is null.
func Value(arr arrow.Array, i int, d logical.Descriptor) (any, error) {
	if arr.IsNull(i) {
		return nil, nil
	}

	var raw any
	switch a := arr.(type) {
	case *array.Date32:
		raw = int32(a.Value(i))
	case *array.Decimal128:
		// The DECIMAL cascade reads Arrow decimals at the descriptor scale.
		r, err := d.ConvertToRaw(a.Value(i))
		if err != nil {
			return nil, err
		}
		raw = r
	case *array.Decimal256:
		r, err := d.ConvertToRaw(a.Value(i))
		if err != nil {
			return nil, err
		}
		raw = r
	case *array.FixedSizeBinary:
		raw = logical.Fixed(bytes.Clone(a.Value(i)))
	case *array.Timestamp:
		raw = int64(a.Value(i))
	case *array.String:
		raw = a.Value(i)
	case *array.LargeString:
		raw = a.Value(i)
	case array.ExtensionArray:
		return Value(a.Storage(), i, d)
	default:
		return nil, fmt.Errorf("%w: %s array for %s", ErrBuilderMismatch, arr.DataType(), d)
	}
	return d.ConvertToLogical(raw)
}

// Values returns all logical values of arr.
func Values(arr arrow.Array, d logical.Descriptor) ([]any, error) {
	out := make([]any, arr.Len())
	for i := range out {
		v, err := Value(arr, i, d)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
