package logical

func (d Descriptor) cascade() cascade {
	switch d.kind {
	case KindDate:
		return dateCascade
	case KindDecimal:
		return decimalCascade
	case KindFixed:
		return fixedCascade
	case KindLocalTimestampMillis:
		return localTimestampCascade
	case KindTimestampMicros:
		return timestampMicrosCascade
	case KindGeoPoint:
		return geoPointCascade
	case KindVarchar:
		return varcharCascade
	default:
		return nil
	}
}

// ConvertToRaw returns the canonical physical value for v: int32 for DATE,
// int64 for the timestamps, []byte for DECIMAL, Fixed for FIXED and string
// for ST_POINT and VARCHAR. A nil input returns nil. Input shapes are
// tried in the order reported by AcceptedShapes.
func (d Descriptor) ConvertToRaw(v any) (any, error) {
	if !d.Valid() {
		return nil, d.convErr(UnsupportedInputType, v, "invalid logical type", nil)
	}
	return d.cascade().run(d, v)
}

// ConvertToLogical returns the semantic value for a canonical physical
// value. Only the type ConvertToRaw produces is accepted; a nil input
// returns nil.
func (d Descriptor) ConvertToLogical(v any) (any, error) {
	if isNull(v) {
		return nil, nil
	}
	switch d.kind {
	case KindDate:
		return d.dateToLogical(v)
	case KindDecimal:
		return d.decimalToLogical(v)
	case KindFixed:
		return d.fixedToLogical(v)
	case KindLocalTimestampMillis:
		return d.localTimestampToLogical(v)
	case KindTimestampMicros:
		return d.timestampMicrosToLogical(v)
	case KindGeoPoint, KindVarchar:
		return d.textToLogical(v)
	default:
		return nil, d.convErr(InvalidRawRepresentation, v, "invalid logical type", nil)
	}
}

// AcceptedShapes lists the input shapes ConvertToRaw accepts, in the order
// they are tried.
func (d Descriptor) AcceptedShapes() []string {
	return d.cascade().names()
}
