package schema

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Property keys written by the logical-type binder.
const (
	PropLogicalType = "logicalType"
	PropPrecision   = "precision"
	PropScale       = "scale"
	PropLength      = "length"
	PropMaxLength   = "maxLength"
)

// ErrInvalidNode is returned when a node cannot be constructed.
var ErrInvalidNode = errors.New("invalid schema node")

// Node is a physical schema node: a wire type plus metadata properties.
// Nodes are immutable; every accessor returns a copy and every modifier
// returns a new node, so a node may be shared freely between goroutines.
type Node struct {
	typ   Type
	name  string
	size  int
	props map[string]any
}

// New creates a node for a non-FIXED physical type.
func New(t Type) (*Node, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown physical type %s", ErrInvalidNode, t)
	}
	if t == TypeFixed {
		return nil, fmt.Errorf("%w: FIXED nodes require a name and size", ErrInvalidNode)
	}
	return &Node{typ: t}, nil
}

// NewFixed creates a FIXED node holding exactly size bytes.
func NewFixed(name string, size int) (*Node, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: FIXED node requires a name", ErrInvalidNode)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: FIXED size must be positive, got %d", ErrInvalidNode, size)
	}
	return &Node{typ: TypeFixed, name: name, size: size}, nil
}

// Type returns the physical type of the node.
func (n *Node) Type() Type { return n.typ }

// Name returns the name of a FIXED node; empty for other types.
func (n *Node) Name() string { return n.name }

// Size returns the byte size of a FIXED node; zero for other types.
func (n *Node) Size() int { return n.size }

// Prop returns a single property value.
func (n *Node) Prop(key string) (any, bool) {
	v, ok := n.props[key]
	return v, ok
}

// Props returns a copy of the node properties.
func (n *Node) Props() map[string]any {
	return maps.Clone(n.props)
}

// LogicalType returns the logical-type annotation, if any.
func (n *Node) LogicalType() string {
	s, _ := n.props[PropLogicalType].(string)
	return s
}

// WithProps returns a copy of the node with props merged over the existing
// properties. Integer values are stored as int64 and floating point values
// as float64, so nodes compare equal regardless of the integer width the
// caller or a decoder used.
func (n *Node) WithProps(props map[string]any) (*Node, error) {
	merged := maps.Clone(n.props)
	if merged == nil {
		merged = make(map[string]any, len(props))
	}
	for k, v := range props {
		nv, err := normalizeProp(v)
		if err != nil {
			return nil, fmt.Errorf("%w: property %q: %w", ErrInvalidNode, k, err)
		}
		merged[k] = nv
	}
	return &Node{typ: n.typ, name: n.name, size: n.size, props: merged}, nil
}

// WithoutProps returns a copy of the node stripped of all properties.
func (n *Node) WithoutProps() *Node {
	return &Node{typ: n.typ, name: n.name, size: n.size}
}

// Equal reports whether two nodes have the same type, name, size and
// properties.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.typ == other.typ &&
		n.name == other.name &&
		n.size == other.size &&
		maps.Equal(n.props, other.props)
}

// String renders the node as TYPE, FIXED(name,size) followed by sorted
// properties, e.g. BYTES{logicalType=DECIMAL,precision=10,scale=2}.
func (n *Node) String() string {
	var sb strings.Builder
	sb.WriteString(n.typ.String())
	if n.typ == TypeFixed {
		fmt.Fprintf(&sb, "(%s,%d)", n.name, n.size)
	}
	if len(n.props) > 0 {
		sb.WriteByte('{')
		for i, k := range slices.Sorted(maps.Keys(n.props)) {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%s=%v", k, n.props[k])
		}
		sb.WriteByte('}')
	}
	return sb.String()
}

func normalizeProp(v any) (any, error) {
	switch t := v.(type) {
	case string, bool, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return nil, fmt.Errorf("value %d overflows int64", t)
		}
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, fmt.Errorf("value %d overflows int64", t)
		}
		return int64(t), nil
	case float32:
		return float64(t), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// IntProp reads an integer property. Annotations parsed from text may carry
// numbers as strings or floats; both are accepted when they hold an exact
// integer.
func (n *Node) IntProp(key string) (int, bool, error) {
	v, ok := n.props[key]
	if !ok {
		return 0, false, nil
	}
	i, err := ToInt(v)
	if err != nil {
		return 0, true, fmt.Errorf("property %q: %w", key, err)
	}
	return i, true, nil
}

// ToInt converts a scalar annotation value to int.
func ToInt(v any) (int, error) {
	nv, err := normalizeProp(v)
	if err != nil {
		return 0, err
	}
	switch t := nv.(type) {
	case int64:
		if t > math.MaxInt32 || t < math.MinInt32 {
			return 0, fmt.Errorf("value %d out of range", t)
		}
		return int(t), nil
	case float64:
		if t != math.Trunc(t) || t > math.MaxInt32 || t < math.MinInt32 {
			return 0, fmt.Errorf("value %v is not an integer", t)
		}
		return int(t), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", t)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("value of type %T is not an integer", nv)
	}
}
