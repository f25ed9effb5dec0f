// Package schema models the physical side of a serialization schema: the
// closed set of wire representations a logical type may bind to, and an
// immutable schema node carrying metadata properties.
package schema

import (
	"fmt"
	"strings"
)

// Type identifies a physical wire representation.
type Type int8

const (
	TypeInvalid Type = iota
	TypeInt32
	TypeInt64
	TypeBytes
	TypeString
	TypeFixed
)

var typeNames = map[Type]string{
	TypeInt32:  "INT32",
	TypeInt64:  "INT64",
	TypeBytes:  "BYTES",
	TypeString: "STRING",
	TypeFixed:  "FIXED",
}

// typeAliases maps the names used by Avro schema documents to physical types.
var typeAliases = map[string]Type{
	"INT":   TypeInt32,
	"LONG":  TypeInt64,
	"INT4":  TypeInt32,
	"INT8":  TypeInt64,
	"BLOB":  TypeBytes,
	"BYTEA": TypeBytes,
	"UTF8":  TypeString,
}

// String returns the canonical upper-case name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int8(t))
}

// Valid reports whether t is one of the known physical types.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseType returns the physical type for a name. Matching is
// case-insensitive and accepts the Avro spellings ("int", "long").
func ParseType(name string) (Type, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == upper {
			return t, nil
		}
	}
	if t, ok := typeAliases[upper]; ok {
		return t, nil
	}
	return TypeInvalid, fmt.Errorf("unknown physical type: %q", name)
}
