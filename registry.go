package logicaltypes

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/hugr-lab/logicaltypes/logical"
	"github.com/hugr-lab/logicaltypes/schema"
)

// Registry turns logical-type annotations into bound descriptors. It keeps
// at most one *logical.Bound per distinct annotated schema node, so callers
// may compare bound descriptors by pointer. A Registry is safe for
// concurrent use.
type Registry struct {
	logger     *slog.Logger
	strictTags bool
	maxEntries int

	mu      sync.Mutex
	entries map[string]*logical.Bound
}

// NewRegistry creates a registry.
func NewRegistry(config Config) (*Registry, error) {
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	logger := config.Logger
	if logger == nil {
		level := slog.LevelInfo
		if config.LogLevel != nil {
			level = *config.LogLevel
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
		logger = slog.New(handler)
	}

	return &Registry{
		logger:     logger,
		strictTags: config.StrictTags,
		maxEntries: config.MaxEntries,
		entries:    make(map[string]*logical.Bound),
	}, nil
}

// Lookup reconstructs the descriptor named by tag and params, validates it
// against node and returns the shared bound descriptor.
func (r *Registry) Lookup(tag string, params map[string]any, node *schema.Node) (*logical.Bound, error) {
	if err := r.checkTag(tag); err != nil {
		return nil, err
	}

	d, err := logical.Reconstruct(tag, params, node)
	if err != nil {
		r.logger.Warn("Rejected logical type annotation", "tag", tag, "error", err)
		return nil, err
	}
	return r.Bind(d, node)
}

// FromSchema returns the bound descriptor annotated on node.
func (r *Registry) FromSchema(node *schema.Node) (*logical.Bound, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", schema.ErrInvalidNode)
	}
	tag := node.LogicalType()
	if tag == "" {
		_, err := logical.FromSchema(node)
		return nil, err
	}
	if err := r.checkTag(tag); err != nil {
		return nil, err
	}

	d, err := logical.FromSchema(node)
	if err != nil {
		r.logger.Warn("Rejected logical type annotation", "tag", tag, "error", err)
		return nil, err
	}
	return r.Bind(d, node)
}

// checkTag rejects Avro tag aliases when the registry is strict.
func (r *Registry) checkTag(tag string) error {
	if !r.strictTags {
		return nil
	}
	if _, ok := logical.KindOf(tag); !ok {
		err := &logical.ConfigurationError{Kind: logical.UnknownLogicalType, Tag: tag}
		r.logger.Warn("Rejected logical type annotation", "tag", tag, "error", err)
		return err
	}
	return nil
}

// Bind attaches d to node and returns the shared bound descriptor.
func (r *Registry) Bind(d logical.Descriptor, node *schema.Node) (*logical.Bound, error) {
	bound, err := logical.Bind(d, node)
	if err != nil {
		r.logger.Warn("Rejected logical type binding", "type", d.String(), "error", err)
		return nil, err
	}

	key, err := schema.Marshal(bound.Schema())
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema key: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[string(key)]; ok {
		return existing, nil
	}
	if r.maxEntries > 0 && len(r.entries) >= r.maxEntries {
		r.logger.Debug("Registry full, returning uncached binding",
			"type", d.String(),
			"max_entries", r.maxEntries,
		)
		return &bound, nil
	}

	r.entries[string(key)] = &bound
	r.logger.Debug("Registered logical type binding",
		"type", d.String(),
		"schema", bound.Schema().String(),
		"entries", len(r.entries),
	)
	return &bound, nil
}

// Encode serializes the annotated schema of b as compressed MessagePack.
func (r *Registry) Encode(b *logical.Bound) ([]byte, error) {
	if b == nil || !b.IsBound() {
		return nil, fmt.Errorf("%w: descriptor is not bound", schema.ErrInvalidNode)
	}
	return schema.MarshalCompressed(b.Schema())
}

// Decode restores a bound descriptor from bytes produced by Encode.
func (r *Registry) Decode(data []byte) (*logical.Bound, error) {
	node, err := schema.UnmarshalCompressed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return r.FromSchema(node)
}

// Len returns the number of cached bound descriptors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
