package schema

import (
	"errors"
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{input: "INT32", want: TypeInt32},
		{input: "int", want: TypeInt32},
		{input: "LONG", want: TypeInt64},
		{input: "bytes", want: TypeBytes},
		{input: "BLOB", want: TypeBytes},
		{input: "utf8", want: TypeString},
		{input: "FIXED", want: TypeFixed},
		{input: "DOUBLE", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	n, err := New(TypeString)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if n.Type() != TypeString || n.Size() != 0 || n.Name() != "" {
		t.Errorf("unexpected node %s", n)
	}

	if _, err := New(TypeFixed); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("New(FIXED) error = %v, want ErrInvalidNode", err)
	}
	if _, err := New(TypeInvalid); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("New(invalid) error = %v, want ErrInvalidNode", err)
	}
	if _, err := NewFixed("", 4); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("NewFixed(no name) error = %v, want ErrInvalidNode", err)
	}
	if _, err := NewFixed("f", 0); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("NewFixed(size 0) error = %v, want ErrInvalidNode", err)
	}
}

func TestWithProps(t *testing.T) {
	base, _ := New(TypeBytes)
	n, err := base.WithProps(map[string]any{
		PropLogicalType: "DECIMAL",
		PropPrecision:   10,
		PropScale:       int32(2),
	})
	if err != nil {
		t.Fatalf("WithProps() error = %v", err)
	}

	if len(base.Props()) != 0 {
		t.Error("WithProps modified the receiver")
	}
	if n.LogicalType() != "DECIMAL" {
		t.Errorf("LogicalType() = %q, want DECIMAL", n.LogicalType())
	}
	if v, _ := n.Prop(PropPrecision); v != int64(10) {
		t.Errorf("precision = %#v, want int64(10)", v)
	}
	if got := n.String(); got != "BYTES{logicalType=DECIMAL,precision=10,scale=2}" {
		t.Errorf("String() = %q", got)
	}

	props := n.Props()
	props[PropScale] = int64(5)
	if v, _ := n.Prop(PropScale); v != int64(2) {
		t.Error("Props() returned the internal map")
	}

	if _, err := base.WithProps(map[string]any{"bad": []int{1}}); !errors.Is(err, ErrInvalidNode) {
		t.Errorf("WithProps(slice) error = %v, want ErrInvalidNode", err)
	}
	if len(n.WithoutProps().Props()) != 0 {
		t.Error("WithoutProps() kept properties")
	}
}

func TestEqual(t *testing.T) {
	a, _ := NewFixed("uuid", 16)
	b, _ := NewFixed("uuid", 16)
	a, _ = a.WithProps(map[string]any{PropLength: 16})
	b, _ = b.WithProps(map[string]any{PropLength: uint8(16)})

	if !a.Equal(b) {
		t.Errorf("%s != %s", a, b)
	}
	c, _ := NewFixed("uuid", 8)
	if a.Equal(c) {
		t.Errorf("%s == %s", a, c)
	}
	var nilNode *Node
	if a.Equal(nilNode) || !nilNode.Equal(nil) {
		t.Error("nil node comparison")
	}
	if got := a.String(); got != "FIXED(uuid,16){length=16}" {
		t.Errorf("String() = %q", got)
	}
}

func TestIntProp(t *testing.T) {
	base, _ := New(TypeString)
	n, _ := base.WithProps(map[string]any{
		"a": 255,
		"b": "64",
		"c": 3.0,
		"d": 2.5,
		"e": true,
	})

	tests := []struct {
		key     string
		want    int
		present bool
		wantErr bool
	}{
		{key: "a", want: 255, present: true},
		{key: "b", want: 64, present: true},
		{key: "c", want: 3, present: true},
		{key: "d", present: true, wantErr: true},
		{key: "e", present: true, wantErr: true},
		{key: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, present, err := n.IntProp(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("IntProp() error = %v, wantErr %v", err, tt.wantErr)
			}
			if present != tt.present {
				t.Errorf("IntProp() present = %v, want %v", present, tt.present)
			}
			if got != tt.want {
				t.Errorf("IntProp() = %d, want %d", got, tt.want)
			}
		})
	}
}
