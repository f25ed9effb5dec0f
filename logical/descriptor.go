package logical

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/hugr-lab/logicaltypes/schema"
)

// Kind identifies a logical type variant.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindDate
	KindDecimal
	KindFixed
	KindLocalTimestampMillis
	KindTimestampMicros
	KindGeoPoint
	KindVarchar
)

// Logical type tags as written to schema annotations. Tags are case-sensitive.
const (
	TagDate                 = "DATE"
	TagDecimal              = "DECIMAL"
	TagFixed                = "FIXED"
	TagLocalTimestampMillis = "LOCALTIMESTAMPMILLIS"
	TagTimestampMicros      = "TIMESTAMPMICROS"
	TagGeoPoint             = "ST_POINT"
	TagVarchar              = "VARCHAR"
)

var kindTags = [...]string{
	KindDate:                 TagDate,
	KindDecimal:              TagDecimal,
	KindFixed:                TagFixed,
	KindLocalTimestampMillis: TagLocalTimestampMillis,
	KindTimestampMicros:      TagTimestampMicros,
	KindGeoPoint:             TagGeoPoint,
	KindVarchar:              TagVarchar,
}

// Tag returns the annotation tag of the kind.
func (k Kind) Tag() string {
	if k == KindInvalid || int(k) >= len(kindTags) {
		return ""
	}
	return kindTags[k]
}

func (k Kind) String() string {
	if t := k.Tag(); t != "" {
		return t
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// KindOf returns the kind for an exact tag.
func KindOf(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t != "" && t == tag {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// tagAliases maps Avro logical type names to tags.
var tagAliases = map[string]string{
	"date":                   TagDate,
	"decimal":                TagDecimal,
	"local-timestamp-millis": TagLocalTimestampMillis,
	"timestamp-micros":       TagTimestampMicros,
	"varchar":                TagVarchar,
	"fixed":                  TagFixed,
}

// NormalizeTag returns the canonical tag for tag, mapping Avro logical type
// names such as "local-timestamp-millis" to their tags. Unknown names are
// returned unchanged.
func NormalizeTag(tag string) string {
	if canonical, ok := tagAliases[tag]; ok {
		return canonical
	}
	return tag
}

// Descriptor is an immutable logical type: a kind plus its parameters.
// Descriptors are comparable; two descriptors are equal when their kinds and
// parameters are equal. The zero Descriptor is invalid.
type Descriptor struct {
	kind      Kind
	precision int
	scale     int
	length    int
}

// DateType returns the DATE descriptor.
func DateType() Descriptor { return Descriptor{kind: KindDate} }

// LocalTimestampMillisType returns the LOCALTIMESTAMPMILLIS descriptor.
func LocalTimestampMillisType() Descriptor { return Descriptor{kind: KindLocalTimestampMillis} }

// TimestampMicrosType returns the TIMESTAMPMICROS descriptor.
func TimestampMicrosType() Descriptor { return Descriptor{kind: KindTimestampMicros} }

// GeoPointType returns the ST_POINT descriptor.
func GeoPointType() Descriptor { return Descriptor{kind: KindGeoPoint} }

// DecimalType returns a DECIMAL descriptor. Precision must be positive and
// scale must lie in [0, precision].
func DecimalType(precision, scale int) (Descriptor, error) {
	if precision <= 0 {
		return Descriptor{}, invalidParam(TagDecimal, schema.PropPrecision, "precision must be positive, got %d", precision)
	}
	if scale < 0 || scale > precision {
		return Descriptor{}, invalidParam(TagDecimal, schema.PropScale, "scale must be in [0, %d], got %d", precision, scale)
	}
	return Descriptor{kind: KindDecimal, precision: precision, scale: scale}, nil
}

// FixedType returns a FIXED descriptor for values of exactly length bytes.
func FixedType(length int) (Descriptor, error) {
	if length <= 0 {
		return Descriptor{}, invalidParam(TagFixed, schema.PropLength, "length must be positive, got %d", length)
	}
	return Descriptor{kind: KindFixed, length: length}, nil
}

// VarcharType returns a VARCHAR descriptor for text of at most maxLength characters.
func VarcharType(maxLength int) (Descriptor, error) {
	if maxLength <= 0 {
		return Descriptor{}, invalidParam(TagVarchar, schema.PropMaxLength, "max length must be positive, got %d", maxLength)
	}
	return Descriptor{kind: KindVarchar, length: maxLength}, nil
}

// Kind returns the variant of the descriptor.
func (d Descriptor) Kind() Kind { return d.kind }

// Tag returns the annotation tag, e.g. "DECIMAL".
func (d Descriptor) Tag() string { return d.kind.Tag() }

// Valid reports whether d was produced by one of the constructors.
func (d Descriptor) Valid() bool { return d.kind != KindInvalid && d.kind.Tag() != "" }

// Precision returns the DECIMAL precision; zero for other kinds.
func (d Descriptor) Precision() int { return d.precision }

// Scale returns the DECIMAL scale; zero for other kinds.
func (d Descriptor) Scale() int { return d.scale }

// Length returns the FIXED length or the VARCHAR maximum length; zero for
// other kinds.
func (d Descriptor) Length() int { return d.length }

// Equal reports whether d and other describe the same logical type.
func (d Descriptor) Equal(other Descriptor) bool { return d == other }

// String renders the descriptor as DATE, DECIMAL(10,2), FIXED(16) or
// VARCHAR(255). Parse accepts the same form.
func (d Descriptor) String() string {
	switch d.kind {
	case KindDecimal:
		return fmt.Sprintf("%s(%d,%d)", TagDecimal, d.precision, d.scale)
	case KindFixed, KindVarchar:
		return fmt.Sprintf("%s(%d)", d.kind.Tag(), d.length)
	case KindInvalid:
		return "INVALID"
	default:
		return d.kind.String()
	}
}

// BackingType returns the physical type the descriptor converts to.
// DECIMAL converts to BYTES even when bound to a FIXED node; see Bound.
func (d Descriptor) BackingType() schema.Type {
	switch d.kind {
	case KindDate:
		return schema.TypeInt32
	case KindLocalTimestampMillis, KindTimestampMicros:
		return schema.TypeInt64
	case KindDecimal:
		return schema.TypeBytes
	case KindFixed:
		return schema.TypeFixed
	case KindGeoPoint, KindVarchar:
		return schema.TypeString
	default:
		return schema.TypeInvalid
	}
}

// Params returns the parameters written to schema annotations.
func (d Descriptor) Params() map[string]any {
	switch d.kind {
	case KindDecimal:
		return map[string]any{schema.PropPrecision: d.precision, schema.PropScale: d.scale}
	case KindFixed:
		return map[string]any{schema.PropLength: d.length}
	case KindVarchar:
		return map[string]any{schema.PropMaxLength: d.length}
	default:
		return nil
	}
}

// annotations returns the tag and parameters as node properties.
func (d Descriptor) annotations() map[string]any {
	props := d.Params()
	if props == nil {
		props = make(map[string]any, 1)
	}
	props[schema.PropLogicalType] = d.Tag()
	return props
}

// Recommended schemas of the parameterless kinds, built on first use.
var (
	dateSchema            = sync.OnceValue(func() *schema.Node { return recommend(DateType()) })
	localTimestampSchema  = sync.OnceValue(func() *schema.Node { return recommend(LocalTimestampMillisType()) })
	timestampMicrosSchema = sync.OnceValue(func() *schema.Node { return recommend(TimestampMicrosType()) })
	geoPointSchema        = sync.OnceValue(func() *schema.Node { return recommend(GeoPointType()) })
)

// RecommendedSchema returns the physical schema node the descriptor should be
// embedded in when building a schema from scratch: the backing type
// annotated with the tag and parameters. It returns nil for an invalid
// descriptor.
func (d Descriptor) RecommendedSchema() *schema.Node {
	switch d.kind {
	case KindDate:
		return dateSchema()
	case KindLocalTimestampMillis:
		return localTimestampSchema()
	case KindTimestampMicros:
		return timestampMicrosSchema()
	case KindGeoPoint:
		return geoPointSchema()
	case KindDecimal, KindFixed, KindVarchar:
		return recommend(d)
	default:
		return nil
	}
}

func recommend(d Descriptor) *schema.Node {
	var (
		node *schema.Node
		err  error
	)
	if d.kind == KindFixed {
		node, err = schema.NewFixed(fmt.Sprintf("fixed_%d", d.length), d.length)
	} else {
		node, err = schema.New(d.BackingType())
	}
	if err != nil {
		panic(fmt.Sprintf("logical: recommended schema for %s: %v", d, err))
	}
	annotated, err := Attach(d, node)
	if err != nil {
		panic(fmt.Sprintf("logical: recommended schema for %s: %v", d, err))
	}
	return annotated
}

// SemanticType identifies the Go type ConvertToLogical produces.
type SemanticType uint8

const (
	SemanticInvalid SemanticType = iota
	SemanticDate
	SemanticDecimal
	SemanticFixed
	SemanticLocalDateTime
	SemanticInstant
	SemanticText
)

func (s SemanticType) String() string {
	switch s {
	case SemanticDate:
		return "Date"
	case SemanticDecimal:
		return "Decimal"
	case SemanticFixed:
		return "Fixed"
	case SemanticLocalDateTime:
		return "LocalDateTime"
	case SemanticInstant:
		return "Instant"
	case SemanticText:
		return "Text"
	default:
		return "Invalid"
	}
}

// GoType returns the reflect.Type of values of the semantic type.
func (s SemanticType) GoType() reflect.Type {
	switch s {
	case SemanticDate:
		return reflect.TypeFor[Date]()
	case SemanticDecimal:
		return reflect.TypeFor[Decimal]()
	case SemanticFixed:
		return reflect.TypeFor[Fixed]()
	case SemanticLocalDateTime:
		return reflect.TypeFor[LocalDateTime]()
	case SemanticInstant:
		return reflect.TypeFor[time.Time]()
	case SemanticText:
		return reflect.TypeFor[string]()
	default:
		return nil
	}
}

// ConvertedType returns the semantic type ConvertToLogical produces.
func (d Descriptor) ConvertedType() SemanticType {
	switch d.kind {
	case KindDate:
		return SemanticDate
	case KindDecimal:
		return SemanticDecimal
	case KindFixed:
		return SemanticFixed
	case KindLocalTimestampMillis:
		return SemanticLocalDateTime
	case KindTimestampMicros:
		return SemanticInstant
	case KindGeoPoint, KindVarchar:
		return SemanticText
	default:
		return SemanticInvalid
	}
}
