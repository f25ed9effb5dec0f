package logical

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

var textShape = shape{"string", func(d Descriptor, v any) (any, bool, error) {
	s, ok := asText(v)
	return s, ok, nil
}}

var stringerShape = shape{"any", func(d Descriptor, v any) (any, bool, error) {
	return fmt.Sprint(v), true, nil
}}

// varcharCascade passes text through and stringifies anything else. The
// maximum length is not enforced on conversion.
var varcharCascade = cascade{textShape, stringerShape}

// geoPointCascade is the VARCHAR cascade with geometries rendered as WKT.
var geoPointCascade = cascade{
	textShape,
	{"orb.Geometry", func(d Descriptor, v any) (any, bool, error) {
		g, ok := v.(orb.Geometry)
		if !ok {
			return nil, false, nil
		}
		return wkt.MarshalString(g), true, nil
	}},
	stringerShape,
}

func (d Descriptor) textToLogical(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, d.convErr(InvalidRawRepresentation, v, "string", nil)
	}
	return s, nil
}

// ParsePoint parses ST_POINT text such as "POINT(30 10)".
func ParsePoint(text string) (orb.Point, error) {
	p, err := wkt.UnmarshalPoint(text)
	if err != nil {
		return orb.Point{}, fmt.Errorf("invalid %s text %q: %w", TagGeoPoint, text, err)
	}
	return p, nil
}
