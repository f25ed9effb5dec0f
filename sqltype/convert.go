package sqltype

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hugr-lab/logicaltypes/logical"
)

// ErrUnsupportedType is returned for types with no counterpart on the other
// side of the mapping.
var ErrUnsupportedType = errors.New("unsupported SQL type")

// FromDescriptor returns the DuckDB type storing values of d.
func FromDescriptor(d logical.Descriptor) (LogicalType, error) {
	switch d.Kind() {
	case logical.KindDate:
		return LogicalType{ID: TypeIDDate}, nil
	case logical.KindDecimal:
		if d.Precision() > MaxDecimalWidth {
			return LogicalType{}, fmt.Errorf("%w: %s exceeds DECIMAL width %d", ErrUnsupportedType, d, MaxDecimalWidth)
		}
		return LogicalType{ID: TypeIDDecimal, TypeInfo: &DecimalTypeInfo{
			Type:  DecimalTypeInfoKind,
			Width: d.Precision(),
			Scale: d.Scale(),
		}}, nil
	case logical.KindFixed:
		return LogicalType{ID: TypeIDBlob, TypeInfo: &StringTypeInfo{
			Type:   StringTypeInfoKind,
			Alias:  AliasFixed,
			Length: d.Length(),
		}}, nil
	case logical.KindLocalTimestampMillis:
		return LogicalType{ID: TypeIDTimestampMs}, nil
	case logical.KindTimestampMicros:
		return LogicalType{ID: TypeIDTimestampTZ}, nil
	case logical.KindGeoPoint:
		// Points are WKT text, not the spatial extension's binary GEOMETRY.
		return LogicalType{ID: TypeIDVarchar, TypeInfo: &StringTypeInfo{
			Type:  StringTypeInfoKind,
			Alias: AliasPoint,
		}}, nil
	case logical.KindVarchar:
		return LogicalType{ID: TypeIDVarchar, TypeInfo: &StringTypeInfo{
			Type:   StringTypeInfoKind,
			Length: d.Length(),
		}}, nil
	default:
		return LogicalType{}, fmt.Errorf("%w: %s", ErrUnsupportedType, d)
	}
}

// SQL returns the DuckDB type name used in DDL.
func (lt LogicalType) SQL() string {
	switch lt.ID.Normalize() {
	case TypeIDDecimal:
		if info, ok := lt.TypeInfo.(*DecimalTypeInfo); ok {
			return fmt.Sprintf("DECIMAL(%d, %d)", info.Width, info.Scale)
		}
		return "DECIMAL"
	case TypeIDVarchar:
		if info, ok := lt.TypeInfo.(*StringTypeInfo); ok && info.Alias == "" && info.Length > 0 {
			return fmt.Sprintf("VARCHAR(%d)", info.Length)
		}
		return "VARCHAR"
	case TypeIDTimestampTZ:
		return "TIMESTAMP WITH TIME ZONE"
	default:
		return string(lt.ID.Normalize())
	}
}

// ToDescriptor returns the logical type of values stored in lt.
func (lt LogicalType) ToDescriptor() (logical.Descriptor, error) {
	switch lt.ID.Normalize() {
	case TypeIDDate:
		return logical.DateType(), nil
	case TypeIDDecimal:
		if info, ok := lt.TypeInfo.(*DecimalTypeInfo); ok {
			return logical.DecimalType(info.Width, info.Scale)
		}
		return logical.DecimalType(defaultDecimalWidth, defaultDecimalScale)
	case TypeIDTimestampMs:
		return logical.LocalTimestampMillisType(), nil
	case TypeIDTimestampTZ:
		return logical.TimestampMicrosType(), nil
	case TypeIDGeometry:
		return logical.GeoPointType(), nil
	case TypeIDVarchar:
		info, _ := lt.TypeInfo.(*StringTypeInfo)
		switch {
		case info != nil && info.Alias == AliasPoint:
			return logical.GeoPointType(), nil
		case info != nil && info.Length > 0:
			return logical.VarcharType(info.Length)
		}
		return logical.Descriptor{}, fmt.Errorf("%w: VARCHAR without a length", ErrUnsupportedType)
	case TypeIDBlob:
		if info, ok := lt.TypeInfo.(*StringTypeInfo); ok && info.Alias == AliasFixed {
			return logical.FixedType(info.Length)
		}
		return logical.Descriptor{}, fmt.Errorf("%w: BLOB without a fixed length", ErrUnsupportedType)
	default:
		return logical.Descriptor{}, fmt.Errorf("%w: %s", ErrUnsupportedType, lt.ID)
	}
}

// ParseSQL parses a DuckDB type name such as "DECIMAL(10, 2)",
// "VARCHAR(255)" or "TIMESTAMP WITH TIME ZONE".
func ParseSQL(text string) (LogicalType, error) {
	text = strings.ToUpper(strings.TrimSpace(text))
	name, args, hasArgs := strings.Cut(text, "(")
	lt := LogicalType{ID: TypeID(strings.Join(strings.Fields(name), " ")).Normalize()}
	if !hasArgs {
		return lt, nil
	}

	args, ok := strings.CutSuffix(strings.TrimSpace(args), ")")
	if !ok {
		return LogicalType{}, fmt.Errorf("invalid SQL type %q: unbalanced parentheses", text)
	}
	var values []int
	for _, part := range strings.Split(args, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return LogicalType{}, fmt.Errorf("invalid SQL type %q: %w", text, err)
		}
		values = append(values, n)
	}

	switch {
	case lt.ID == TypeIDDecimal && len(values) <= 2:
		info := &DecimalTypeInfo{Type: DecimalTypeInfoKind, Width: values[0]}
		if len(values) == 2 {
			info.Scale = values[1]
		}
		lt.TypeInfo = info
	case lt.ID == TypeIDVarchar && len(values) == 1:
		lt.TypeInfo = &StringTypeInfo{Type: StringTypeInfoKind, Length: values[0]}
	default:
		return LogicalType{}, fmt.Errorf("invalid SQL type %q: unexpected parameters", text)
	}
	return lt, nil
}
