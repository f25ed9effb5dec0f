// Package logicaltypes binds semantic logical types (dates, decimals,
// timestamps, fixed-length binary, bounded text and geospatial points) to
// the physical representations of a schema-described serialization format.
//
// The conversion contract lives in package logical; package schema models
// physical schema nodes. This package provides the Registry, which turns
// schema annotations into shared, validated descriptors:
//
//	reg, err := logicaltypes.NewRegistry(logicaltypes.Config{})
//	if err != nil {
//	    return err
//	}
//
//	node, _ := schema.New(schema.TypeBytes)
//	bound, err := reg.Lookup("DECIMAL", map[string]any{
//	    "precision": 10,
//	    "scale":     2,
//	}, node)
//	if err != nil {
//	    return err // *logical.ConfigurationError
//	}
//
//	raw, err := bound.ConvertToRaw("3.00")   // []byte{0x01, 0x2c}
//	v, err := bound.ConvertToLogical(raw)    // logical.Decimal 3.00
//
// # Interop
//
// Package arrowtype maps descriptors to Apache Arrow data types and
// appends converted values to Arrow builders. Package sqltype renders
// descriptors as DuckDB SQL types.
//
// # Annotations
//
// Annotated schema nodes carry the tag under "logicalType" and the
// parameters under "precision", "scale", "length" and "maxLength".
// Registry.Encode and Registry.Decode move them as ZStandard-compressed
// MessagePack.
package logicaltypes
