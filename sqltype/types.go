// Package sqltype maps logical type descriptors to DuckDB SQL types.
//
// FromDescriptor and LogicalType.SQL produce the column type used in DDL;
// ParseSQL and ToDescriptor read a DuckDB type name back into a descriptor.
// LogicalType also decodes the JSON type objects DuckDB emits in
// serialized plans.
package sqltype

// TypeID identifies DuckDB data types.
type TypeID string

const (
	TypeIDInvalid     TypeID = "INVALID"
	TypeIDInteger     TypeID = "INTEGER"
	TypeIDBigInt      TypeID = "BIGINT"
	TypeIDDate        TypeID = "DATE"
	TypeIDTimestampMs TypeID = "TIMESTAMP_MS"
	TypeIDTimestamp   TypeID = "TIMESTAMP"
	TypeIDTimestampTZ TypeID = "TIMESTAMP_TZ"
	TypeIDDecimal     TypeID = "DECIMAL"
	TypeIDVarchar     TypeID = "VARCHAR"
	TypeIDBlob        TypeID = "BLOB"
	TypeIDGeometry    TypeID = "GEOMETRY"
)

// typeIDMapping maps DuckDB full type names and aliases to normalized
// short names.
var typeIDMapping = map[TypeID]TypeID{
	// Timestamp types - full SQL names
	"TIMESTAMP WITH TIME ZONE":    TypeIDTimestampTZ,
	"TIMESTAMPTZ":                 TypeIDTimestampTZ,
	"TIMESTAMP WITHOUT TIME ZONE": TypeIDTimestamp,
	"DATETIME":                    TypeIDTimestamp,
	// Integer types - aliases
	"INT":  TypeIDInteger,
	"INT4": TypeIDInteger,
	"INT8": TypeIDBigInt,
	"LONG": TypeIDBigInt,
	// Decimal aliases
	"NUMERIC": TypeIDDecimal,
	// String types - aliases
	"STRING":            TypeIDVarchar,
	"TEXT":              TypeIDVarchar,
	"CHARACTER VARYING": TypeIDVarchar,
	// Binary types - aliases
	"BYTEA":     TypeIDBlob,
	"BINARY":    TypeIDBlob,
	"VARBINARY": TypeIDBlob,
}

// Normalize returns the canonical TypeID for the given type ID.
func (t TypeID) Normalize() TypeID {
	if mapped, ok := typeIDMapping[t]; ok {
		return mapped
	}
	return t
}

// Type info kinds.
const (
	DecimalTypeInfoKind = "DECIMAL_TYPE_INFO"
	StringTypeInfoKind  = "STRING_TYPE_INFO"
)

// Aliases recorded on VARCHAR and BLOB types whose descriptor is not
// implied by the type ID.
const (
	AliasPoint = "ST_POINT"
	AliasFixed = "FIXED"
)

// LogicalType represents DuckDB logical types with optional extra type information.
type LogicalType struct {
	ID       TypeID        `json:"id"`
	TypeInfo ExtraTypeInfo `json:"type_info"`
}

// ExtraTypeInfo is the interface for additional type information.
type ExtraTypeInfo interface {
	extraTypeInfoMarker()
}

// DecimalTypeInfo contains precision and scale for DECIMAL types.
type DecimalTypeInfo struct {
	Type  string `json:"type"` // "DECIMAL_TYPE_INFO"
	Alias string `json:"alias"`
	Width int    `json:"width"` // Total digits
	Scale int    `json:"scale"` // Decimal places
}

func (d *DecimalTypeInfo) extraTypeInfoMarker() {}

// StringTypeInfo contains the declared length of VARCHAR and BLOB types.
// DuckDB does not enforce the length; it is kept for round-trips.
type StringTypeInfo struct {
	Type   string `json:"type"` // "STRING_TYPE_INFO"
	Alias  string `json:"alias"`
	Length int    `json:"length,omitempty"`
}

func (s *StringTypeInfo) extraTypeInfoMarker() {}

// Maximum width of a DuckDB DECIMAL, and the width and scale of a DECIMAL
// declared without parameters.
const (
	MaxDecimalWidth     = 38
	defaultDecimalWidth = 18
	defaultDecimalScale = 3
)
