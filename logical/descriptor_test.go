package logical

import (
	"errors"
	"maps"
	"reflect"
	"slices"
	"testing"

	"github.com/hugr-lab/logicaltypes/schema"
)

func mustDecimal(t testing.TB, precision, scale int) Descriptor {
	t.Helper()
	d, err := DecimalType(precision, scale)
	if err != nil {
		t.Fatalf("DecimalType(%d, %d) error = %v", precision, scale, err)
	}
	return d
}

func mustFixed(t testing.TB, length int) Descriptor {
	t.Helper()
	d, err := FixedType(length)
	if err != nil {
		t.Fatalf("FixedType(%d) error = %v", length, err)
	}
	return d
}

func mustVarchar(t testing.TB, length int) Descriptor {
	t.Helper()
	d, err := VarcharType(length)
	if err != nil {
		t.Fatalf("VarcharType(%d) error = %v", length, err)
	}
	return d
}

func allDescriptors(t testing.TB) []Descriptor {
	return []Descriptor{
		DateType(),
		mustDecimal(t, 10, 2),
		mustFixed(t, 16),
		LocalTimestampMillisType(),
		TimestampMicrosType(),
		GeoPointType(),
		mustVarchar(t, 255),
	}
}

func TestConstructors_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		build func() (Descriptor, error)
		param string
	}{
		{"decimal zero precision", func() (Descriptor, error) { return DecimalType(0, 0) }, schema.PropPrecision},
		{"decimal negative scale", func() (Descriptor, error) { return DecimalType(5, -1) }, schema.PropScale},
		{"decimal scale above precision", func() (Descriptor, error) { return DecimalType(5, 6) }, schema.PropScale},
		{"fixed zero length", func() (Descriptor, error) { return FixedType(0) }, schema.PropLength},
		{"varchar negative length", func() (Descriptor, error) { return VarcharType(-3) }, schema.PropMaxLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
			var ce *ConfigurationError
			if !errors.As(err, &ce) || ce.Param != tt.param {
				t.Errorf("error param = %v, want %q", err, tt.param)
			}
		})
	}
}

func TestDescriptor_Equality(t *testing.T) {
	if !mustFixed(t, 16).Equal(mustFixed(t, 16)) {
		t.Error("FixedType(16) != FixedType(16)")
	}
	if mustFixed(t, 16) == mustFixed(t, 8) {
		t.Error("FixedType(16) == FixedType(8)")
	}
	if mustDecimal(t, 10, 2) != mustDecimal(t, 10, 2) {
		t.Error("DecimalType(10, 2) != DecimalType(10, 2)")
	}
	if mustDecimal(t, 10, 2).Equal(mustDecimal(t, 10, 3)) {
		t.Error("DecimalType(10, 2) == DecimalType(10, 3)")
	}
	if DateType() != DateType() {
		t.Error("DateType() is not canonical")
	}
	if mustVarchar(t, 16).Equal(mustFixed(t, 16)) {
		t.Error("VARCHAR(16) == FIXED(16)")
	}
	if (Descriptor{}).Valid() {
		t.Error("zero descriptor is valid")
	}
}

func TestDescriptor_StringParse(t *testing.T) {
	want := []string{
		"DATE",
		"DECIMAL(10,2)",
		"FIXED(16)",
		"LOCALTIMESTAMPMILLIS",
		"TIMESTAMPMICROS",
		"ST_POINT",
		"VARCHAR(255)",
	}
	for i, d := range allDescriptors(t) {
		if got := d.String(); got != want[i] {
			t.Errorf("String() = %q, want %q", got, want[i])
		}
		parsed, err := Parse(d.String())
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", d, err)
		}
		if parsed != d {
			t.Errorf("Parse(%q) = %s", d, parsed)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr error
	}{
		{input: " DECIMAL( 12 , 4 ) ", want: "DECIMAL(12,4)"},
		{input: "DECIMAL(9)", want: "DECIMAL(9,0)"},
		{input: "DECIMAL", wantErr: ErrMissingParameter},
		{input: "VARCHAR", wantErr: ErrMissingParameter},
		{input: "FIXED(x)", wantErr: ErrInvalidParameter},
		{input: "FIXED(16", wantErr: ErrInvalidParameter},
		{input: "DATE(1)", wantErr: ErrInvalidParameter},
		{input: "DECIMAL(1,2,3)", wantErr: ErrInvalidParameter},
		{input: "DECIMAL(4,5)", wantErr: ErrInvalidParameter},
		{input: "UUID", wantErr: ErrUnknownLogicalType},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalizeTag(t *testing.T) {
	tests := map[string]string{
		"decimal":                TagDecimal,
		"local-timestamp-millis": TagLocalTimestampMillis,
		"timestamp-micros":       TagTimestampMicros,
		"DATE":                   TagDate,
		"uuid":                   "uuid",
	}
	for in, want := range tests {
		if got := NormalizeTag(in); got != want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBackingType(t *testing.T) {
	want := []schema.Type{
		schema.TypeInt32,
		schema.TypeBytes,
		schema.TypeFixed,
		schema.TypeInt64,
		schema.TypeInt64,
		schema.TypeString,
		schema.TypeString,
	}
	for i, d := range allDescriptors(t) {
		if got := d.BackingType(); got != want[i] {
			t.Errorf("%s BackingType() = %s, want %s", d, got, want[i])
		}
	}
}

func TestRecommendedSchema(t *testing.T) {
	for _, d := range allDescriptors(t) {
		t.Run(d.String(), func(t *testing.T) {
			node := d.RecommendedSchema()
			if node == nil {
				t.Fatal("RecommendedSchema() = nil")
			}
			if node.Type() != d.BackingType() {
				t.Errorf("node type = %s, want %s", node.Type(), d.BackingType())
			}
			if node.LogicalType() != d.Tag() {
				t.Errorf("node logicalType = %q, want %q", node.LogicalType(), d.Tag())
			}
			back, err := FromSchema(node)
			if err != nil {
				t.Fatalf("FromSchema() error = %v", err)
			}
			if back != d {
				t.Errorf("FromSchema() = %s, want %s", back, d)
			}
		})
	}

	if DateType().RecommendedSchema() != DateType().RecommendedSchema() {
		t.Error("DATE recommended schema is rebuilt on every call")
	}
	if got := mustFixed(t, 16).RecommendedSchema().Size(); got != 16 {
		t.Errorf("FIXED(16) recommended size = %d", got)
	}
	if (Descriptor{}).RecommendedSchema() != nil {
		t.Error("invalid descriptor has a recommended schema")
	}
}

func TestConvertedType(t *testing.T) {
	samples := map[Kind]any{
		KindDate:                 int32(0),
		KindDecimal:              []byte{0x01},
		KindFixed:                Fixed(make([]byte, 16)),
		KindLocalTimestampMillis: int64(0),
		KindTimestampMicros:      int64(0),
		KindGeoPoint:             "POINT(0 0)",
		KindVarchar:              "x",
	}
	for _, d := range allDescriptors(t) {
		v, err := d.ConvertToLogical(samples[d.Kind()])
		if err != nil {
			t.Fatalf("%s ConvertToLogical() error = %v", d, err)
		}
		want := d.ConvertedType().GoType()
		if got := reflect.TypeOf(v); got != want {
			t.Errorf("%s logical value type = %s, ConvertedType() says %s", d, got, want)
		}
	}
}

func TestParams(t *testing.T) {
	if DateType().Params() != nil {
		t.Error("DATE has parameters")
	}
	params := mustDecimal(t, 10, 2).Params()
	if params[schema.PropPrecision] != 10 || params[schema.PropScale] != 2 {
		t.Errorf("DECIMAL(10,2) params = %v", params)
	}
	keys := slices.Sorted(maps.Keys(mustVarchar(t, 8).Params()))
	if !slices.Equal(keys, []string{schema.PropMaxLength}) {
		t.Errorf("VARCHAR params = %v", keys)
	}
}
