// Package logical maps semantic values to and from the physical wire
// representations described by a schema.
//
// A Descriptor is one of seven logical types:
//
//	DATE                  INT32   days since 1970-01-01
//	DECIMAL(p,s)          BYTES   two's complement big-endian unscaled value
//	FIXED(n)              FIXED   exactly n bytes
//	LOCALTIMESTAMPMILLIS  INT64   milliseconds of a wall-clock date-time, read as UTC
//	TIMESTAMPMICROS       INT64   microseconds since the Unix epoch
//	ST_POINT              STRING  WKT text
//	VARCHAR(n)            STRING  text of at most n characters
//
// # Conversion
//
// ConvertToRaw accepts a value of any supported shape and returns the one
// canonical physical value. Shapes are tried in a fixed order, listed by
// AcceptedShapes; the first match wins:
//
//	d := logical.DateType()
//	raw, err := d.ConvertToRaw("2024-01-15") // int32(19737)
//	v, err := d.ConvertToLogical(raw)        // logical.Date{2024, time.January, 15}
//
// ConvertToLogical accepts only the canonical physical value. A nil input
// converts to nil in both directions.
//
// # Binding
//
// Attach validates that a physical schema node can carry a descriptor and
// returns a copy of the node annotated with the logical type tag and its
// parameters. Reconstruct and FromSchema go the other way, rebuilding a
// descriptor from an annotation:
//
//	node, _ := schema.New(schema.TypeBytes)
//	dec, _ := logical.DecimalType(10, 2)
//	bound, err := logical.Bind(dec, node)
//	raw, err := bound.ConvertToRaw(3) // bytes of unscaled 300
//
// Conversion failures are reported as *ConversionError, binding failures as
// *ConfigurationError. Both match the package sentinel errors with errors.Is.
package logical
