package logical

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by ConversionError and ConfigurationError through
// errors.Is.
var (
	// ErrUnsupportedInput is returned when a value matches no accepted shape.
	ErrUnsupportedInput = errors.New("unsupported input type")
	// ErrInvalidRaw is returned when a raw value is not the canonical physical value.
	ErrInvalidRaw = errors.New("invalid raw representation")
	// ErrMalformedDecimal is returned when text is not a decimal literal.
	ErrMalformedDecimal = errors.New("malformed decimal text")
	// ErrMalformedText is returned when date or timestamp text cannot be parsed.
	ErrMalformedText = errors.New("malformed text")
	// ErrOutOfRange is returned when a value does not fit the physical type
	// or the declared precision and scale.
	ErrOutOfRange = errors.New("value out of range")

	// ErrIncompatiblePhysicalType is returned when a schema node cannot carry a logical type.
	ErrIncompatiblePhysicalType = errors.New("incompatible physical type")
	// ErrUnknownLogicalType is returned for an unrecognized logical type tag.
	ErrUnknownLogicalType = errors.New("unknown logical type")
	// ErrMissingParameter is returned when a required parameter is absent.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrInvalidParameter is returned when a parameter is out of its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ConversionErrorKind classifies conversion failures.
type ConversionErrorKind uint8

const (
	UnsupportedInputType ConversionErrorKind = iota + 1
	InvalidRawRepresentation
	MalformedDecimalText
	MalformedText
	OutOfRange
)

func (k ConversionErrorKind) String() string {
	switch k {
	case UnsupportedInputType:
		return "UnsupportedInputType"
	case InvalidRawRepresentation:
		return "InvalidRawRepresentation"
	case MalformedDecimalText:
		return "MalformedDecimalText"
	case MalformedText:
		return "MalformedText"
	case OutOfRange:
		return "OutOfRange"
	default:
		return fmt.Sprintf("ConversionErrorKind(%d)", uint8(k))
	}
}

func (k ConversionErrorKind) sentinel() error {
	switch k {
	case UnsupportedInputType:
		return ErrUnsupportedInput
	case InvalidRawRepresentation:
		return ErrInvalidRaw
	case MalformedDecimalText:
		return ErrMalformedDecimal
	case MalformedText:
		return ErrMalformedText
	case OutOfRange:
		return ErrOutOfRange
	}
	return nil
}

// ConversionError is returned by ConvertToRaw and ConvertToLogical.
type ConversionError struct {
	Kind     ConversionErrorKind
	Tag      string // logical type, e.g. DECIMAL(10,2)
	Observed string // Go type of the rejected value
	Target   string // type the conversion was producing
	Err      error  // underlying cause, if any
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%s: cannot convert a value of type %q into %s", e.Tag, e.Observed, e.Target)
	if e.Kind != UnsupportedInputType && e.Kind != InvalidRawRepresentation {
		msg += " (" + e.Kind.sentinel().Error() + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for the error kind.
func (e *ConversionError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// ConfigurationErrorKind classifies descriptor construction and binding failures.
type ConfigurationErrorKind uint8

const (
	IncompatiblePhysicalType ConfigurationErrorKind = iota + 1
	UnknownLogicalType
	MissingParameter
	InvalidParameter
)

func (k ConfigurationErrorKind) String() string {
	switch k {
	case IncompatiblePhysicalType:
		return "IncompatiblePhysicalType"
	case UnknownLogicalType:
		return "UnknownLogicalType"
	case MissingParameter:
		return "MissingParameter"
	case InvalidParameter:
		return "InvalidParameter"
	default:
		return fmt.Sprintf("ConfigurationErrorKind(%d)", uint8(k))
	}
}

func (k ConfigurationErrorKind) sentinel() error {
	switch k {
	case IncompatiblePhysicalType:
		return ErrIncompatiblePhysicalType
	case UnknownLogicalType:
		return ErrUnknownLogicalType
	case MissingParameter:
		return ErrMissingParameter
	case InvalidParameter:
		return ErrInvalidParameter
	}
	return nil
}

// ConfigurationError is returned when a descriptor is constructed with
// invalid parameters or bound to a physical schema node that cannot carry it.
type ConfigurationError struct {
	Kind     ConfigurationErrorKind
	Tag      string
	Param    string // parameter name for MissingParameter and InvalidParameter
	Expected string // expected physical type for IncompatiblePhysicalType
	Actual   string
	Err      error
}

func (e *ConfigurationError) Error() string {
	var msg string
	switch e.Kind {
	case IncompatiblePhysicalType:
		msg = fmt.Sprintf("%s: incompatible physical type: expected %s, got %s", e.Tag, e.Expected, e.Actual)
	case UnknownLogicalType:
		msg = fmt.Sprintf("unknown logical type: %q", e.Tag)
	case MissingParameter:
		msg = fmt.Sprintf("%s: missing parameter %q", e.Tag, e.Param)
	case InvalidParameter:
		msg = fmt.Sprintf("%s: invalid parameter %q: %s", e.Tag, e.Param, e.Actual)
	default:
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for the error kind.
func (e *ConfigurationError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

func invalidParam(tag, param, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Kind:   InvalidParameter,
		Tag:    tag,
		Param:  param,
		Actual: fmt.Sprintf(format, args...),
	}
}

func missingParam(tag, param string) *ConfigurationError {
	return &ConfigurationError{Kind: MissingParameter, Tag: tag, Param: param}
}
