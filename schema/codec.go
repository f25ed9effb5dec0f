package schema

import (
	"fmt"

	"github.com/hugr-lab/logicaltypes/internal/serialize"
)

// wireNode is the MessagePack layout of a node.
type wireNode struct {
	Type  string         `msgpack:"type"`
	Name  string         `msgpack:"name,omitempty"`
	Size  int            `msgpack:"size,omitempty"`
	Props map[string]any `msgpack:"props,omitempty"`
}

// Marshal encodes a node as MessagePack. Equal nodes encode to equal bytes.
func Marshal(n *Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil node", ErrInvalidNode)
	}
	return serialize.Encode(wireNode{
		Type:  n.typ.String(),
		Name:  n.name,
		Size:  n.size,
		Props: n.props,
	})
}

// Unmarshal decodes a node produced by Marshal and re-validates it.
func Unmarshal(data []byte) (*Node, error) {
	var w wireNode
	if err := serialize.Decode(data, &w); err != nil {
		return nil, err
	}
	t, err := ParseType(w.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNode, err)
	}

	var n *Node
	if t == TypeFixed {
		n, err = NewFixed(w.Name, w.Size)
	} else {
		n, err = New(t)
	}
	if err != nil {
		return nil, err
	}
	if len(w.Props) == 0 {
		return n, nil
	}
	return n.WithProps(w.Props)
}

// MarshalCompressed encodes a node as ZStandard-compressed MessagePack.
func MarshalCompressed(n *Node) ([]byte, error) {
	data, err := Marshal(n)
	if err != nil {
		return nil, err
	}
	return serialize.Compress(data)
}

// UnmarshalCompressed decodes a node produced by MarshalCompressed.
func UnmarshalCompressed(data []byte) (*Node, error) {
	raw, err := serialize.Decompress(data)
	if err != nil {
		return nil, err
	}
	return Unmarshal(raw)
}
