package logical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hugr-lab/logicaltypes/schema"
)

// binderProps are the node properties owned by the binder. Attach replaces
// them and leaves every other property untouched.
var binderProps = []string{
	schema.PropLogicalType,
	schema.PropPrecision,
	schema.PropScale,
	schema.PropLength,
	schema.PropMaxLength,
}

// Attach validates that node can carry d and returns a copy of node
// annotated with the logical type tag and parameters.
//
// The node type must equal the backing type, with two refinements: a
// FIXED descriptor requires the node size to equal its length, and a
// DECIMAL may also be carried by a FIXED node large enough for its
// precision.
func Attach(d Descriptor, node *schema.Node) (*schema.Node, error) {
	if !d.Valid() {
		return nil, invalidParam(d.String(), "kind", "descriptor was not constructed")
	}
	if err := d.checkCarrier(node); err != nil {
		return nil, err
	}

	props := node.Props()
	for _, k := range binderProps {
		delete(props, k)
	}
	for k, v := range d.annotations() {
		props[k] = v
	}
	annotated, err := node.WithoutProps().WithProps(props)
	if err != nil {
		return nil, &ConfigurationError{
			Kind:     IncompatiblePhysicalType,
			Tag:      d.String(),
			Expected: d.expectedCarrier(),
			Actual:   node.String(),
			Err:      err,
		}
	}
	return annotated, nil
}

func (d Descriptor) expectedCarrier() string {
	switch d.kind {
	case KindFixed:
		return fmt.Sprintf("%s(%d)", schema.TypeFixed, d.length)
	case KindDecimal:
		return fmt.Sprintf("%s or %s(size >= %d)", schema.TypeBytes, schema.TypeFixed, minFixedSize(d.precision))
	default:
		return d.BackingType().String()
	}
}

func (d Descriptor) checkCarrier(node *schema.Node) error {
	incompatible := func(actual string) error {
		return &ConfigurationError{
			Kind:     IncompatiblePhysicalType,
			Tag:      d.String(),
			Expected: d.expectedCarrier(),
			Actual:   actual,
		}
	}
	if node == nil {
		return incompatible("nil")
	}

	switch d.kind {
	case KindFixed:
		if node.Type() != schema.TypeFixed || node.Size() != d.length {
			return incompatible(describeNode(node))
		}
	case KindDecimal:
		switch node.Type() {
		case schema.TypeBytes:
		case schema.TypeFixed:
			if d.precision > maxPrecisionForSize(node.Size()) {
				return incompatible(describeNode(node))
			}
		default:
			return incompatible(describeNode(node))
		}
	default:
		if node.Type() != d.BackingType() {
			return incompatible(describeNode(node))
		}
	}
	return nil
}

func describeNode(node *schema.Node) string {
	if node.Type() == schema.TypeFixed {
		return fmt.Sprintf("%s(%d)", schema.TypeFixed, node.Size())
	}
	return node.Type().String()
}

// minFixedSize returns the smallest FIXED size able to hold precision digits.
func minFixedSize(precision int) int {
	size := 1
	for maxPrecisionForSize(size) < precision {
		size++
	}
	return size
}

// Bound is a descriptor validated against a physical schema node. Its
// conversions follow the node: a DECIMAL bound to a FIXED node converts to a
// Fixed value sign-extended to the node size.
type Bound struct {
	Descriptor
	schema *schema.Node
}

// Bind attaches d to node and returns the bound descriptor.
func Bind(d Descriptor, node *schema.Node) (Bound, error) {
	annotated, err := Attach(d, node)
	if err != nil {
		return Bound{}, err
	}
	return Bound{Descriptor: d, schema: annotated}, nil
}

// Schema returns the annotated schema node.
func (b Bound) Schema() *schema.Node { return b.schema }

// IsBound reports whether b was produced by Bind.
func (b Bound) IsBound() bool { return b.schema != nil }

// ConvertToRaw converts v like Descriptor.ConvertToRaw, adjusting DECIMAL
// values for a FIXED carrier.
func (b Bound) ConvertToRaw(v any) (any, error) {
	raw, err := b.Descriptor.ConvertToRaw(v)
	if err != nil || raw == nil {
		return raw, err
	}
	if b.kind == KindDecimal && b.schema != nil && b.schema.Type() == schema.TypeFixed {
		fixed, err := signExtend(raw.([]byte), b.schema.Size())
		if err != nil {
			return nil, b.convErr(OutOfRange, v, describeNode(b.schema), err)
		}
		return Fixed(fixed), nil
	}
	return raw, nil
}

// Reconstruct rebuilds a descriptor from an annotation: a tag plus named
// parameters, validated against the node carrying it. Avro logical type
// names ("decimal", "local-timestamp-millis", ...) are accepted for their
// tags.
//
// DECIMAL requires precision and scale. VARCHAR requires maxLength (length
// is accepted as well). FIXED takes length from the parameters or, when
// absent, from the node size.
func Reconstruct(tag string, params map[string]any, node *schema.Node) (Descriptor, error) {
	kind, ok := KindOf(NormalizeTag(tag))
	if !ok {
		return Descriptor{}, &ConfigurationError{Kind: UnknownLogicalType, Tag: tag}
	}

	var (
		d   Descriptor
		err error
	)
	switch kind {
	case KindDate:
		d = DateType()
	case KindLocalTimestampMillis:
		d = LocalTimestampMillisType()
	case KindTimestampMicros:
		d = TimestampMicrosType()
	case KindGeoPoint:
		d = GeoPointType()
	case KindDecimal:
		precision, err := intParam(TagDecimal, params, schema.PropPrecision)
		if err != nil {
			return Descriptor{}, err
		}
		scale, err := intParam(TagDecimal, params, schema.PropScale)
		if err != nil {
			return Descriptor{}, err
		}
		d, err = DecimalType(precision, scale)
		if err != nil {
			return Descriptor{}, err
		}
	case KindFixed:
		length, err := intParam(TagFixed, params, schema.PropLength)
		if err != nil {
			if node == nil || node.Type() != schema.TypeFixed || !isMissing(err) {
				return Descriptor{}, err
			}
			length = node.Size()
		}
		d, err = FixedType(length)
		if err != nil {
			return Descriptor{}, err
		}
	case KindVarchar:
		length, err := intParam(TagVarchar, params, schema.PropMaxLength)
		if isMissing(err) {
			length, err = intParam(TagVarchar, params, schema.PropLength)
			if isMissing(err) {
				err = missingParam(TagVarchar, schema.PropMaxLength)
			}
		}
		if err != nil {
			return Descriptor{}, err
		}
		d, err = VarcharType(length)
		if err != nil {
			return Descriptor{}, err
		}
	}

	if err = d.checkCarrier(node); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// FromSchema reconstructs the descriptor annotated on node. Parameters are
// read as integer properties; other properties are ignored.
func FromSchema(node *schema.Node) (Descriptor, error) {
	if node == nil {
		return Descriptor{}, missingParam("", schema.PropLogicalType)
	}
	tag := node.LogicalType()
	if tag == "" {
		return Descriptor{}, missingParam(describeNode(node), schema.PropLogicalType)
	}

	params := make(map[string]any, len(binderProps))
	for _, key := range binderProps {
		if key == schema.PropLogicalType {
			continue
		}
		v, ok, err := node.IntProp(key)
		if err != nil {
			raw, _ := node.Prop(key)
			return Descriptor{}, &ConfigurationError{Kind: InvalidParameter, Tag: tag, Param: key, Actual: fmt.Sprint(raw), Err: err}
		}
		if ok {
			params[key] = v
		}
	}
	return Reconstruct(tag, params, node)
}

func intParam(tag string, params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, missingParam(tag, key)
	}
	n, err := schema.ToInt(v)
	if err != nil {
		return 0, &ConfigurationError{Kind: InvalidParameter, Tag: tag, Param: key, Actual: fmt.Sprint(v), Err: err}
	}
	return n, nil
}

func isMissing(err error) bool {
	ce, ok := err.(*ConfigurationError)
	return ok && ce.Kind == MissingParameter
}

// Parse parses the String form of a descriptor: DATE, DECIMAL(10,2),
// FIXED(16), VARCHAR(255), and so on. Spaces around parameters are allowed.
func Parse(text string) (Descriptor, error) {
	text = strings.TrimSpace(text)
	name, args, hasArgs := strings.Cut(text, "(")
	name = strings.TrimSpace(name)
	if hasArgs {
		var ok bool
		args, ok = strings.CutSuffix(args, ")")
		if !ok {
			return Descriptor{}, invalidParam(name, "text", "unbalanced parentheses in %q", text)
		}
	}

	kind, ok := KindOf(name)
	if !ok {
		return Descriptor{}, &ConfigurationError{Kind: UnknownLogicalType, Tag: name}
	}

	var values []int
	if hasArgs {
		for _, part := range strings.Split(args, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return Descriptor{}, invalidParam(name, "text", "%q is not an integer", strings.TrimSpace(part))
			}
			values = append(values, n)
		}
	}

	switch kind {
	case KindDecimal:
		switch len(values) {
		case 0:
			return Descriptor{}, missingParam(name, schema.PropPrecision)
		case 1:
			// DECIMAL(p) means scale 0, as in SQL.
			return DecimalType(values[0], 0)
		case 2:
			return DecimalType(values[0], values[1])
		}
	case KindFixed, KindVarchar:
		if len(values) == 0 {
			param := schema.PropLength
			if kind == KindVarchar {
				param = schema.PropMaxLength
			}
			return Descriptor{}, missingParam(name, param)
		}
		if len(values) == 1 {
			if kind == KindFixed {
				return FixedType(values[0])
			}
			return VarcharType(values[0])
		}
	default:
		if !hasArgs {
			return Descriptor{kind: kind}, nil
		}
	}
	return Descriptor{}, invalidParam(name, "text", "unexpected parameters in %q", text)
}
