package logical

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		input    string
		unscaled int64
		scale    int
		text     string
		wantErr  bool
	}{
		{input: "12.50", unscaled: 1250, scale: 2, text: "12.50"},
		{input: "-0.05", unscaled: -5, scale: 2, text: "-0.05"},
		{input: "+7", unscaled: 7, scale: 0, text: "7"},
		{input: ".5", unscaled: 5, scale: 1, text: "0.5"},
		{input: "5.", unscaled: 5, scale: 0, text: "5"},
		{input: "1E+3", unscaled: 1, scale: -3, text: "1000"},
		{input: "2.5e-3", unscaled: 25, scale: 4, text: "0.0025"},
		{input: "", wantErr: true},
		{input: "-", wantErr: true},
		{input: "1.2.3", wantErr: true},
		{input: "1e", wantErr: true},
		{input: "0x10", wantErr: true},
		{input: " 1", wantErr: true},
		{input: "1e9223372036854775807", wantErr: true},
		{input: "1e-9223372036854775808", wantErr: true},
		{input: "1e2147483648", wantErr: true},
		{input: "1.5e-2147483647", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDecimal(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDecimal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Unscaled().Int64() != tt.unscaled || got.Scale() != tt.scale {
				t.Errorf("ParseDecimal() = %s×10^-%d, want %d×10^-%d", got.Unscaled(), got.Scale(), tt.unscaled, tt.scale)
			}
			if got.String() != tt.text {
				t.Errorf("String() = %q, want %q", got.String(), tt.text)
			}
		})
	}
}

func TestDecimal_Rescale(t *testing.T) {
	tests := []struct {
		input   string
		scale   int
		mode    RoundingMode
		want    string
		wantErr bool
	}{
		{input: "1.005", scale: 2, mode: RoundHalfDown, want: "1.00"},
		{input: "1.005", scale: 2, mode: RoundHalfUp, want: "1.01"},
		{input: "-1.005", scale: 2, mode: RoundHalfDown, want: "-1.00"},
		{input: "-1.005", scale: 2, mode: RoundHalfUp, want: "-1.01"},
		{input: "1.0051", scale: 2, mode: RoundHalfDown, want: "1.01"},
		{input: "1.009", scale: 2, mode: RoundDown, want: "1.00"},
		{input: "1.5", scale: 3, mode: RoundUnnecessary, want: "1.500"},
		{input: "1.500", scale: 1, mode: RoundUnnecessary, want: "1.5"},
		{input: "1.55", scale: 1, mode: RoundUnnecessary, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDecimal(tt.input)
			if err != nil {
				t.Fatalf("ParseDecimal() error = %v", err)
			}
			got, err := d.Rescale(tt.scale, tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Rescale() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("Rescale() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDecimal_Compare(t *testing.T) {
	a, _ := ParseDecimal("3.0")
	b, _ := ParseDecimal("3.00")
	c, _ := ParseDecimal("-3")

	if a.Cmp(b) != 0 {
		t.Error("3.0 and 3.00 compare unequal")
	}
	if a.Equal(b) {
		t.Error("3.0 and 3.00 are Equal despite different scales")
	}
	if c.Cmp(a) >= 0 || c.Sign() != -1 {
		t.Error("-3 is not below 3.0")
	}
	if (Decimal{}).String() != "0" || (Decimal{}).Precision() != 1 {
		t.Error("zero value is not 0")
	}
	if got := DecimalOf(big.NewInt(-12345), 2).Precision(); got != 5 {
		t.Errorf("Precision() = %d, want 5", got)
	}
}

func TestDecimal_Text(t *testing.T) {
	var d Decimal
	if err := d.UnmarshalText([]byte("-42.125")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	text, err := d.MarshalText()
	if err != nil || string(text) != "-42.125" {
		t.Errorf("MarshalText() = %q, %v", text, err)
	}
	if err := d.UnmarshalText([]byte("nope")); err == nil {
		t.Error("expected error for malformed text")
	}
}

func TestTwosComplement(t *testing.T) {
	tests := []struct {
		value int64
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x00, 0x80}},
		{300, []byte{0x01, 0x2c}},
		{-1, []byte{0xff}},
		{-128, []byte{0x80}},
		{-129, []byte{0xff, 0x7f}},
		{-32768, []byte{0x80, 0x00}},
	}

	for _, tt := range tests {
		got := encodeTwosComplement(big.NewInt(tt.value))
		if !bytes.Equal(got, tt.want) {
			t.Errorf("encode(%d) = %x, want %x", tt.value, got, tt.want)
		}
		if back := decodeTwosComplement(got); back.Int64() != tt.value {
			t.Errorf("decode(%x) = %s, want %d", got, back, tt.value)
		}

		wide, err := signExtend(got, 8)
		if err != nil {
			t.Fatalf("signExtend(%x) error = %v", got, err)
		}
		if back := decodeTwosComplement(wide); back.Int64() != tt.value {
			t.Errorf("decode(%x) = %s, want %d", wide, back, tt.value)
		}
	}

	if _, err := signExtend([]byte{1, 2, 3}, 2); err == nil {
		t.Error("expected error when bytes exceed size")
	}
}

func TestMaxPrecisionForSize(t *testing.T) {
	tests := map[int]int{1: 2, 2: 4, 4: 9, 8: 18, 16: 38, 32: 76}
	for size, want := range tests {
		if got := maxPrecisionForSize(size); got != want {
			t.Errorf("maxPrecisionForSize(%d) = %d, want %d", size, got, want)
		}
	}
	if got := minFixedSize(38); got != 16 {
		t.Errorf("minFixedSize(38) = %d, want 16", got)
	}
	if got := minFixedSize(10); got != 5 {
		t.Errorf("minFixedSize(10) = %d, want 5", got)
	}
}

func TestRescale_RoundingNecessary(t *testing.T) {
	d, _ := ParseDecimal("0.125")
	_, err := d.Rescale(2, RoundUnnecessary)
	if !errors.Is(err, errRoundingNecessary) {
		t.Errorf("Rescale() error = %v, want errRoundingNecessary", err)
	}
}

func TestParseDecimal_ScaleRange(t *testing.T) {
	_, err := ParseDecimal("1e-9223372036854775808")
	if err == nil {
		t.Fatal("expected error for exponent beyond 32 bits")
	}
	_, err = ParseDecimal("1.25e-2147483647")
	if !errors.Is(err, errScaleRange) {
		t.Errorf("ParseDecimal() error = %v, want errScaleRange", err)
	}
}
