package logical

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/decimal256"
)

// decimalCascade resolves DECIMAL input to the two's complement big-endian
// bytes of the unscaled value at the descriptor scale.
var decimalCascade = cascade{
	{"[]byte", func(d Descriptor, v any) (any, bool, error) {
		b, ok := v.([]byte)
		return b, ok, nil
	}},
	{"logical.Fixed", func(d Descriptor, v any) (any, bool, error) {
		f, ok := v.(Fixed)
		return []byte(f), ok, nil
	}},
	{"logical.Decimal", func(d Descriptor, v any) (any, bool, error) {
		dec, ok := v.(Decimal)
		if !ok {
			return nil, false, nil
		}
		raw, err := d.encodeDecimal(dec, v)
		return raw, true, err
	}},
	{"*big.Int", func(d Descriptor, v any) (any, bool, error) {
		b, ok := v.(*big.Int)
		if !ok {
			return nil, false, nil
		}
		raw, err := d.encodeDecimal(DecimalOf(b, 0), v)
		return raw, true, err
	}},
	{"decimal128.Num", func(d Descriptor, v any) (any, bool, error) {
		n, ok := v.(decimal128.Num)
		if !ok {
			return nil, false, nil
		}
		// Arrow decimals carry no scale; the descriptor scale applies.
		raw, err := d.encodeDecimal(DecimalOf(n.BigInt(), d.scale), v)
		return raw, true, err
	}},
	{"decimal256.Num", func(d Descriptor, v any) (any, bool, error) {
		n, ok := v.(decimal256.Num)
		if !ok {
			return nil, false, nil
		}
		raw, err := d.encodeDecimal(DecimalOf(n.BigInt(), d.scale), v)
		return raw, true, err
	}},
	{"numeric", func(d Descriptor, v any) (any, bool, error) {
		f, ok := toFloat64(v)
		if !ok {
			return nil, false, nil
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, true, d.convErr(OutOfRange, v, "logical.Decimal", fmt.Errorf("%v is not a finite number", f))
		}
		// The shortest text of the double is the exact decimal that is
		// rounded, so 1.005 rounds to 1.00 at scale 2.
		dec, err := ParseDecimal(strconv.FormatFloat(f, 'g', -1, 64))
		if err != nil {
			return nil, true, d.convErr(MalformedDecimalText, v, "logical.Decimal", err)
		}
		dec, err = dec.Rescale(d.scale, RoundHalfDown)
		if err != nil {
			return nil, true, d.convErr(OutOfRange, v, "logical.Decimal", err)
		}
		raw, err := d.encodeDecimal(dec, v)
		return raw, true, err
	}},
	{"string", func(d Descriptor, v any) (any, bool, error) {
		s, ok := asText(v)
		if !ok {
			return nil, false, nil
		}
		dec, err := ParseDecimal(s)
		if err != nil {
			return nil, true, d.convErr(MalformedDecimalText, v, "logical.Decimal",
				fmt.Errorf("cannot convert the string %q into a decimal: %w", s, err))
		}
		raw, err := d.encodeDecimal(dec, v)
		return raw, true, err
	}},
}

// encodeDecimal checks dec against the descriptor scale and precision and
// encodes its unscaled value. A scale change must be exact.
func (d Descriptor) encodeDecimal(dec Decimal, v any) ([]byte, error) {
	if dec.Sign() == 0 {
		return encodeTwosComplement(dec.int()), nil
	}
	// Reject before rescaling so a large exponent never builds a large
	// power of ten.
	digits, shift := int64(dec.Precision()), int64(d.scale)-int64(dec.Scale())
	switch {
	case shift > 0 && digits+shift > int64(d.precision):
		return nil, d.convErr(OutOfRange, v, "[]byte",
			fmt.Errorf("cannot encode decimal with precision %d and scale %d as max precision %d", digits, dec.Scale(), d.precision))
	case shift < 0 && -shift >= digits:
		return nil, d.convErr(OutOfRange, v, "[]byte",
			fmt.Errorf("cannot encode decimal with scale %d as scale %d without rounding", dec.Scale(), d.scale))
	}
	if dec.Scale() != d.scale {
		rescaled, err := dec.Rescale(d.scale, RoundUnnecessary)
		if err != nil {
			return nil, d.convErr(OutOfRange, v, "[]byte",
				fmt.Errorf("cannot encode decimal with scale %d as scale %d without rounding", dec.Scale(), d.scale))
		}
		dec = rescaled
	}
	if p := dec.Precision(); p > d.precision {
		return nil, d.convErr(OutOfRange, v, "[]byte",
			fmt.Errorf("cannot encode decimal with precision %d as max precision %d", p, d.precision))
	}
	return encodeTwosComplement(dec.int()), nil
}

func (d Descriptor) decimalToLogical(v any) (any, error) {
	var b []byte
	switch t := v.(type) {
	case []byte:
		b = t
	case Fixed:
		b = t
	default:
		return nil, d.convErr(InvalidRawRepresentation, v, "logical.Decimal", nil)
	}
	if len(b) == 0 {
		return nil, d.convErr(InvalidRawRepresentation, v, "logical.Decimal", errors.New("zero length decimal bytes"))
	}
	return DecimalOf(decodeTwosComplement(b), d.scale), nil
}

// parseShortest widens a float32 through its shortest decimal text.
func parseShortest(f float32) (float64, error) {
	return strconv.ParseFloat(strconv.FormatFloat(float64(f), 'g', -1, 32), 64)
}
