package logicaltypes

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/hugr-lab/logicaltypes/logical"
	"github.com/hugr-lab/logicaltypes/schema"
)

func newTestRegistry(t *testing.T, config Config) *Registry {
	t.Helper()
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r, err := NewRegistry(config)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return r
}

func mustNode(t *testing.T, typ schema.Type) *schema.Node {
	t.Helper()
	n, err := schema.New(typ)
	if err != nil {
		t.Fatalf("schema.New(%s) error = %v", typ, err)
	}
	return n
}

func TestNewRegistry_InvalidConfig(t *testing.T) {
	_, err := NewRegistry(Config{MaxEntries: -1})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewRegistry() error = %v, want ErrInvalidConfig", err)
	}
}

func TestNewRegistry_DefaultLogger(t *testing.T) {
	level := slog.LevelDebug
	r, err := NewRegistry(Config{LogLevel: &level})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if r.logger == nil {
		t.Fatal("expected a default logger")
	}
}

func TestRegistry_OneInstancePerKey(t *testing.T) {
	r := newTestRegistry(t, Config{})
	params := map[string]any{"precision": 10, "scale": 2}

	a, err := r.Lookup("DECIMAL", params, mustNode(t, schema.TypeBytes))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	b, err := r.Lookup("decimal", map[string]any{"precision": "10", "scale": int64(2)}, mustNode(t, schema.TypeBytes))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if a != b {
		t.Error("equal annotations returned different instances")
	}

	d, _ := logical.DecimalType(10, 3)
	c, err := r.Bind(d, mustNode(t, schema.TypeBytes))
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if c == a {
		t.Error("different scales share an instance")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_Concurrent(t *testing.T) {
	r := newTestRegistry(t, Config{})
	node := mustNode(t, schema.TypeInt32)

	results := make([]*logical.Bound, 16)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := r.Lookup(logical.TagDate, nil, node)
			if err != nil {
				t.Errorf("Lookup() error = %v", err)
				return
			}
			results[i] = b
		}()
	}
	wg.Wait()

	for _, b := range results[1:] {
		if b != results[0] {
			t.Fatal("concurrent lookups returned different instances")
		}
	}
}

func TestRegistry_StrictTags(t *testing.T) {
	r := newTestRegistry(t, Config{StrictTags: true})
	node := mustNode(t, schema.TypeInt32)

	if _, err := r.Lookup("date", nil, node); !errors.Is(err, logical.ErrUnknownLogicalType) {
		t.Errorf("Lookup(date) error = %v, want ErrUnknownLogicalType", err)
	}
	if _, err := r.Lookup("DATE", nil, node); err != nil {
		t.Errorf("Lookup(DATE) error = %v", err)
	}
}

func TestRegistry_MaxEntries(t *testing.T) {
	r := newTestRegistry(t, Config{MaxEntries: 1})

	if _, err := r.Lookup("DATE", nil, mustNode(t, schema.TypeInt32)); err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	a, err := r.Lookup("TIMESTAMPMICROS", nil, mustNode(t, schema.TypeInt64))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	b, err := r.Lookup("TIMESTAMPMICROS", nil, mustNode(t, schema.TypeInt64))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if a == b {
		t.Error("uncached bindings share an instance")
	}
	if !a.Schema().Equal(b.Schema()) {
		t.Error("uncached bindings differ")
	}
}

func TestRegistry_Errors(t *testing.T) {
	var logs bytes.Buffer
	r := newTestRegistry(t, Config{Logger: slog.New(slog.NewTextHandler(&logs, nil))})

	_, err := r.Lookup("DECIMAL", map[string]any{"precision": 10, "scale": 2}, mustNode(t, schema.TypeString))
	if !errors.Is(err, logical.ErrIncompatiblePhysicalType) {
		t.Errorf("Lookup() error = %v, want ErrIncompatiblePhysicalType", err)
	}
	if !strings.Contains(logs.String(), "Rejected logical type annotation") {
		t.Errorf("expected a warning, got %q", logs.String())
	}

	if _, err := r.FromSchema(nil); !errors.Is(err, schema.ErrInvalidNode) {
		t.Errorf("FromSchema(nil) error = %v, want ErrInvalidNode", err)
	}
	if _, err := r.FromSchema(mustNode(t, schema.TypeInt32)); !errors.Is(err, logical.ErrMissingParameter) {
		t.Errorf("FromSchema(unannotated) error = %v, want ErrMissingParameter", err)
	}
	if r.Len() != 0 {
		t.Errorf("Len() = %d after failures, want 0", r.Len())
	}
}

func TestRegistry_EncodeDecode(t *testing.T) {
	r := newTestRegistry(t, Config{})

	fixed, err := schema.NewFixed("amount", 16)
	if err != nil {
		t.Fatalf("NewFixed() error = %v", err)
	}
	d, _ := logical.DecimalType(38, 6)
	bound, err := r.Bind(d, fixed)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	data, err := r.Encode(bound)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := r.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded != bound {
		t.Error("Decode() returned a different instance")
	}
	if decoded.Descriptor != d {
		t.Errorf("Decode() = %s, want %s", decoded.Descriptor, d)
	}

	if _, err := r.Encode(&logical.Bound{}); !errors.Is(err, schema.ErrInvalidNode) {
		t.Errorf("Encode(unbound) error = %v, want ErrInvalidNode", err)
	}
	if _, err := r.Decode([]byte("garbage")); err == nil {
		t.Error("expected error for garbage input")
	}
}
