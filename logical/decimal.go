package logical

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// RoundingMode selects how Rescale handles discarded digits.
type RoundingMode uint8

const (
	// RoundUnnecessary fails when any non-zero digit would be discarded.
	RoundUnnecessary RoundingMode = iota
	// RoundHalfDown rounds to the nearest neighbor, ties toward zero.
	RoundHalfDown
	// RoundHalfUp rounds to the nearest neighbor, ties away from zero.
	RoundHalfUp
	// RoundDown truncates toward zero.
	RoundDown
)

var (
	errRoundingNecessary = errors.New("rounding necessary")
	errScaleRange        = errors.New("scale out of range")
)

var bigTen = big.NewInt(10)

// Decimal is an immutable arbitrary-precision decimal number: an unscaled
// integer and a scale, with value unscaled × 10^-scale. The zero value is 0
// at scale 0.
type Decimal struct {
	unscaled *big.Int
	scale    int
}

// DecimalOf returns unscaled × 10^-scale. The integer is copied.
func DecimalOf(unscaled *big.Int, scale int) Decimal {
	if unscaled == nil {
		return Decimal{scale: scale}
	}
	return Decimal{unscaled: new(big.Int).Set(unscaled), scale: scale}
}

// DecimalFromInt64 returns v × 10^-scale.
func DecimalFromInt64(v int64, scale int) Decimal {
	return Decimal{unscaled: big.NewInt(v), scale: scale}
}

// ParseDecimal parses a decimal literal: an optional sign, digits with an
// optional fractional part, and an optional exponent, e.g. "-12.50",
// ".5", "1E+3". The scale of the result is the number of fractional digits
// minus the exponent, so "1.50" has scale 2 and "1E+3" has scale -3. The
// scale must fit in 32 bits.
func ParseDecimal(s string) (Decimal, error) {
	if s == "" {
		return Decimal{}, fmt.Errorf("empty decimal literal")
	}
	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, err := strconv.ParseInt(s[i+1:], 10, 32)
		if err != nil {
			return Decimal{}, fmt.Errorf("invalid exponent in %q", s)
		}
		exp = int(e)
	}

	neg := false
	switch {
	case strings.HasPrefix(mantissa, "-"):
		neg = true
		mantissa = mantissa[1:]
	case strings.HasPrefix(mantissa, "+"):
		mantissa = mantissa[1:]
	}

	intPart, fracPart, hasPoint := strings.Cut(mantissa, ".")
	if intPart == "" && fracPart == "" {
		return Decimal{}, fmt.Errorf("no digits in %q", s)
	}
	if hasPoint && strings.Contains(fracPart, ".") {
		return Decimal{}, fmt.Errorf("multiple decimal points in %q", s)
	}
	digits := intPart + fracPart
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Decimal{}, fmt.Errorf("invalid character %q in %q", r, s)
		}
	}

	unscaled, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Decimal{}, fmt.Errorf("invalid digits in %q", s)
	}
	if neg {
		unscaled.Neg(unscaled)
	}
	scale := int64(len(fracPart)) - int64(exp)
	if !scaleInRange(scale) {
		return Decimal{}, fmt.Errorf("%w: exponent of %q", errScaleRange, s)
	}
	return Decimal{unscaled: unscaled, scale: int(scale)}, nil
}

func scaleInRange(scale int64) bool {
	return scale >= math.MinInt32 && scale <= math.MaxInt32
}

func (d Decimal) int() *big.Int {
	if d.unscaled == nil {
		return new(big.Int)
	}
	return d.unscaled
}

// Unscaled returns a copy of the unscaled integer.
func (d Decimal) Unscaled() *big.Int {
	return new(big.Int).Set(d.int())
}

// Scale returns the number of digits after the decimal point.
func (d Decimal) Scale() int { return d.scale }

// Sign returns -1, 0 or +1.
func (d Decimal) Sign() int { return d.int().Sign() }

// Precision returns the number of digits in the unscaled value. Zero has
// precision 1.
func (d Decimal) Precision() int {
	u := d.int()
	if u.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(u).String())
}

// Rescale returns d with the given scale. Increasing the scale is always
// exact; decreasing it discards digits according to mode. Both scales
// must fit in 32 bits.
func (d Decimal) Rescale(scale int, mode RoundingMode) (Decimal, error) {
	if !scaleInRange(int64(scale)) || !scaleInRange(int64(d.scale)) {
		return Decimal{}, fmt.Errorf("%w: %d to %d", errScaleRange, d.scale, scale)
	}
	u := d.int()
	switch {
	case scale == d.scale:
		return DecimalOf(u, scale), nil
	case scale > d.scale:
		factor := pow10(scale - d.scale)
		return Decimal{unscaled: new(big.Int).Mul(u, factor), scale: scale}, nil
	}

	divisor := pow10(d.scale - scale)
	q, r := new(big.Int).QuoRem(u, divisor, new(big.Int))
	if r.Sign() == 0 {
		return Decimal{unscaled: q, scale: scale}, nil
	}

	// |2r| against the divisor decides whether the discarded part is
	// below, at, or above one half.
	twice := new(big.Int).Abs(r)
	twice.Lsh(twice, 1)
	half := twice.Cmp(divisor)

	var away bool
	switch mode {
	case RoundUnnecessary:
		return Decimal{}, fmt.Errorf("%w: scale %d to %d", errRoundingNecessary, d.scale, scale)
	case RoundHalfDown:
		away = half > 0
	case RoundHalfUp:
		away = half >= 0
	case RoundDown:
		away = false
	}
	if away {
		q.Add(q, big.NewInt(int64(u.Sign())))
	}
	return Decimal{unscaled: q, scale: scale}, nil
}

// Cmp compares the numeric values of d and other.
func (d Decimal) Cmp(other Decimal) int {
	a, b := d.int(), other.int()
	switch {
	case d.scale < other.scale:
		a = new(big.Int).Mul(a, pow10(other.scale-d.scale))
	case d.scale > other.scale:
		b = new(big.Int).Mul(b, pow10(d.scale-other.scale))
	}
	return a.Cmp(b)
}

// Equal reports whether d and other have the same value and scale, so 3.0
// and 3.00 are not equal. Use Cmp to compare values only.
func (d Decimal) Equal(other Decimal) bool {
	return d.scale == other.scale && d.int().Cmp(other.int()) == 0
}

// String returns d in plain notation, e.g. "-12.50".
func (d Decimal) String() string {
	u := d.int()
	digits := new(big.Int).Abs(u).String()
	sign := ""
	if u.Sign() < 0 {
		sign = "-"
	}
	switch {
	case d.scale <= 0:
		if u.Sign() == 0 {
			return "0"
		}
		return sign + digits + strings.Repeat("0", -d.scale)
	case len(digits) > d.scale:
		return sign + digits[:len(digits)-d.scale] + "." + digits[len(digits)-d.scale:]
	default:
		return sign + "0." + strings.Repeat("0", d.scale-len(digits)) + digits
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	v, err := ParseDecimal(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func pow10(n int) *big.Int {
	if n < 0 {
		panic(fmt.Sprintf("logical: negative power of ten %d", n))
	}
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

// encodeTwosComplement returns the minimal big-endian two's complement
// encoding of x. Zero encodes as a single zero byte.
func encodeTwosComplement(x *big.Int) []byte {
	switch x.Sign() {
	case 0:
		return []byte{0}
	case 1:
		b := x.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	// For negative x the magnitude of -x-1 plus a sign bit must fit.
	n := new(big.Int).Not(x).BitLen()/8 + 1
	y := new(big.Int).Lsh(big.NewInt(1), uint(8*n))
	y.Add(y, x)
	return y.FillBytes(make([]byte, n))
}

// decodeTwosComplement is the inverse of encodeTwosComplement; it accepts
// any sign-extended width.
func decodeTwosComplement(b []byte) *big.Int {
	x := new(big.Int).SetBytes(b)
	if len(b) > 0 && b[0]&0x80 != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), uint(8*len(b))))
	}
	return x
}

// signExtend widens a two's complement encoding to size bytes.
func signExtend(b []byte, size int) ([]byte, error) {
	if len(b) > size {
		return nil, fmt.Errorf("%d bytes do not fit in %d", len(b), size)
	}
	out := make([]byte, size)
	if len(b) > 0 && b[0]&0x80 != 0 {
		for i := range size - len(b) {
			out[i] = 0xff
		}
	}
	copy(out[size-len(b):], b)
	return out, nil
}

// maxPrecisionForSize returns the largest decimal precision whose every
// value fits a signed two's complement integer of size bytes.
func maxPrecisionForSize(size int) int {
	if size <= 0 {
		return 0
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(8*size-1))
	limit.Sub(limit, big.NewInt(1))
	return len(limit.String()) - 1
}
