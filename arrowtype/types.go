package arrowtype

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/logicaltypes/logical"
	"github.com/hugr-lab/logicaltypes/schema"
)

// Field metadata keys.
const (
	MetadataLogicalType = "logical_type"
	MetadataPrecision   = "precision"
	MetadataScale       = "scale"
	MetadataLength      = "length"
	MetadataMaxLength   = "max_length"
)

// Maximum decimal precision of the Arrow decimal types.
const (
	maxDecimal128Precision = 38
	maxDecimal256Precision = 76
)

// ErrUnsupportedType is returned when an Arrow type has no logical type
// counterpart, or a descriptor has no Arrow counterpart.
var ErrUnsupportedType = errors.New("unsupported arrow type")

// DataType returns the Arrow type holding values of d.
func DataType(d logical.Descriptor) (arrow.DataType, error) {
	switch d.Kind() {
	case logical.KindDate:
		return arrow.FixedWidthTypes.Date32, nil
	case logical.KindDecimal:
		switch {
		case d.Precision() <= maxDecimal128Precision:
			return &arrow.Decimal128Type{Precision: int32(d.Precision()), Scale: int32(d.Scale())}, nil
		case d.Precision() <= maxDecimal256Precision:
			return &arrow.Decimal256Type{Precision: int32(d.Precision()), Scale: int32(d.Scale())}, nil
		default:
			return nil, fmt.Errorf("%w: %s exceeds decimal256 precision %d", ErrUnsupportedType, d, maxDecimal256Precision)
		}
	case logical.KindFixed:
		return &arrow.FixedSizeBinaryType{ByteWidth: d.Length()}, nil
	case logical.KindLocalTimestampMillis:
		// No time zone: the values are wall-clock readings.
		return &arrow.TimestampType{Unit: arrow.Millisecond}, nil
	case logical.KindTimestampMicros:
		return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}, nil
	case logical.KindGeoPoint:
		return NewPointExtensionType(), nil
	case logical.KindVarchar:
		return arrow.BinaryTypes.String, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, d)
	}
}

// Field creates an Arrow field for d with the logical type recorded in the
// field metadata.
func Field(name string, d logical.Descriptor, nullable bool) (arrow.Field, error) {
	dt, err := DataType(d)
	if err != nil {
		return arrow.Field{}, err
	}

	md := map[string]string{
		MetadataLogicalType: d.Tag(),
	}
	switch d.Kind() {
	case logical.KindDecimal:
		md[MetadataPrecision] = strconv.Itoa(d.Precision())
		md[MetadataScale] = strconv.Itoa(d.Scale())
	case logical.KindFixed:
		md[MetadataLength] = strconv.Itoa(d.Length())
	case logical.KindVarchar:
		md[MetadataMaxLength] = strconv.Itoa(d.Length())
	}

	return arrow.Field{
		Name:     name,
		Type:     dt,
		Nullable: nullable,
		Metadata: arrow.MetadataFrom(md),
	}, nil
}

// FromField returns the logical type of an Arrow field. Field metadata
// written by Field takes precedence and is validated against the Arrow
// type; without metadata the type is inferred from the Arrow type alone.
func FromField(f arrow.Field) (logical.Descriptor, error) {
	node, err := physicalNode(f.Type)
	if err != nil {
		return logical.Descriptor{}, fmt.Errorf("field %q: %w", f.Name, err)
	}

	if tag, ok := f.Metadata.GetValue(MetadataLogicalType); ok {
		params := make(map[string]any, 3)
		for key, param := range map[string]string{
			MetadataPrecision: schema.PropPrecision,
			MetadataScale:     schema.PropScale,
			MetadataLength:    schema.PropLength,
			MetadataMaxLength: schema.PropMaxLength,
		} {
			if v, ok := f.Metadata.GetValue(key); ok {
				params[param] = v
			}
		}
		d, err := logical.Reconstruct(tag, params, node)
		if err != nil {
			return logical.Descriptor{}, fmt.Errorf("field %q: %w", f.Name, err)
		}
		return d, nil
	}

	d, err := inferDescriptor(f.Type)
	if err != nil {
		return logical.Descriptor{}, fmt.Errorf("field %q: %w", f.Name, err)
	}
	return d, nil
}

func inferDescriptor(dt arrow.DataType) (logical.Descriptor, error) {
	switch t := dt.(type) {
	case *arrow.Date32Type:
		return logical.DateType(), nil
	case *arrow.Decimal128Type:
		return logical.DecimalType(int(t.Precision), int(t.Scale))
	case *arrow.Decimal256Type:
		return logical.DecimalType(int(t.Precision), int(t.Scale))
	case *arrow.FixedSizeBinaryType:
		return logical.FixedType(t.ByteWidth)
	case *arrow.TimestampType:
		switch {
		case t.Unit == arrow.Millisecond && t.TimeZone == "":
			return logical.LocalTimestampMillisType(), nil
		case t.Unit == arrow.Microsecond && t.TimeZone != "":
			return logical.TimestampMicrosType(), nil
		}
	case *PointExtensionType:
		return logical.GeoPointType(), nil
	}
	return logical.Descriptor{}, fmt.Errorf("%w: %s has no logical type without field metadata", ErrUnsupportedType, dt)
}

// physicalNode returns the physical schema node matching an Arrow type's
// storage, so annotations read from Arrow metadata are validated the same
// way as annotations read from a schema.
func physicalNode(dt arrow.DataType) (*schema.Node, error) {
	if ext, ok := dt.(arrow.ExtensionType); ok {
		dt = ext.StorageType()
	}
	switch t := dt.(type) {
	case *arrow.Date32Type, *arrow.Int32Type:
		return schema.New(schema.TypeInt32)
	case *arrow.TimestampType, *arrow.Int64Type:
		return schema.New(schema.TypeInt64)
	case *arrow.Decimal128Type, *arrow.Decimal256Type, *arrow.BinaryType, *arrow.LargeBinaryType:
		return schema.New(schema.TypeBytes)
	case *arrow.StringType, *arrow.LargeStringType:
		return schema.New(schema.TypeString)
	case *arrow.FixedSizeBinaryType:
		return schema.NewFixed(fmt.Sprintf("fixed_%d", t.ByteWidth), t.ByteWidth)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dt)
	}
}
