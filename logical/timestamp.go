package logical

import (
	"fmt"
	"time"
)

func errInvalidCalendar(v fmt.Stringer) error {
	return fmt.Errorf("%s is not a valid calendar value", v)
}

// localTimestampCascade resolves LOCALTIMESTAMPMILLIS input to milliseconds
// of the wall-clock reading taken as UTC.
var localTimestampCascade = cascade{
	{"int64", func(d Descriptor, v any) (any, bool, error) {
		n, ok := v.(int64)
		return n, ok, nil
	}},
	{"numeric", numericToInt64},
	{"logical.LocalDateTime", func(d Descriptor, v any) (any, bool, error) {
		dt, ok := v.(LocalDateTime)
		if !ok {
			return nil, false, nil
		}
		if !dt.Valid() {
			return nil, true, d.convErr(OutOfRange, v, "int64", errInvalidCalendar(dt))
		}
		return dt.In(time.UTC).UnixMilli(), true, nil
	}},
	{"time.Time", func(d Descriptor, v any) (any, bool, error) {
		t, ok := v.(time.Time)
		if !ok {
			return nil, false, nil
		}
		// The UTC civil reading of an instant has the instant's epoch millis.
		return t.UnixMilli(), true, nil
	}},
	{"string", func(d Descriptor, v any) (any, bool, error) {
		s, ok := asText(v)
		if !ok {
			return nil, false, nil
		}
		dt, err := ParseLocalDateTime(s)
		if err != nil {
			return nil, true, d.convErr(MalformedText, v, "logical.LocalDateTime", err)
		}
		return dt.In(time.UTC).UnixMilli(), true, nil
	}},
}

// timestampMicrosCascade resolves TIMESTAMPMICROS input to microseconds
// since the Unix epoch.
var timestampMicrosCascade = cascade{
	{"int64", func(d Descriptor, v any) (any, bool, error) {
		n, ok := v.(int64)
		return n, ok, nil
	}},
	{"numeric", numericToInt64},
	{"time.Time", func(d Descriptor, v any) (any, bool, error) {
		t, ok := v.(time.Time)
		if !ok {
			return nil, false, nil
		}
		return t.UnixMicro(), true, nil
	}},
	{"string", func(d Descriptor, v any) (any, bool, error) {
		s, ok := asText(v)
		if !ok {
			return nil, false, nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, true, d.convErr(MalformedText, v, "time.Time", err)
		}
		return t.UnixMicro(), true, nil
	}},
	{"logical.LocalDateTime", func(d Descriptor, v any) (any, bool, error) {
		dt, ok := v.(LocalDateTime)
		if !ok {
			return nil, false, nil
		}
		if !dt.Valid() {
			return nil, true, d.convErr(OutOfRange, v, "int64", errInvalidCalendar(dt))
		}
		return dt.In(time.UTC).UnixMicro(), true, nil
	}},
}

func numericToInt64(d Descriptor, v any) (any, bool, error) {
	n, ok, err := toInt64(v)
	if !ok {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, d.convErr(OutOfRange, v, "int64", err)
	}
	return n, true, nil
}

func (d Descriptor) localTimestampToLogical(v any) (any, error) {
	n, ok := v.(int64)
	if !ok {
		return nil, d.convErr(InvalidRawRepresentation, v, "logical.LocalDateTime", nil)
	}
	return LocalDateTimeOf(time.UnixMilli(n).UTC()), nil
}

func (d Descriptor) timestampMicrosToLogical(v any) (any, error) {
	n, ok := v.(int64)
	if !ok {
		return nil, d.convErr(InvalidRawRepresentation, v, "time.Time", nil)
	}
	return time.UnixMicro(n).UTC(), nil
}
