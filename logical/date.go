package logical

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
)

// dateCascade resolves DATE input to an int32 day count.
var dateCascade = cascade{
	{"int32", func(d Descriptor, v any) (any, bool, error) {
		n, ok := v.(int32)
		return n, ok, nil
	}},
	{"arrow.Date32", func(d Descriptor, v any) (any, bool, error) {
		n, ok := v.(arrow.Date32)
		return int32(n), ok, nil
	}},
	{"logical.Date", func(d Descriptor, v any) (any, bool, error) {
		date, ok := v.(Date)
		if !ok {
			return nil, false, nil
		}
		raw, err := d.dateToDays(date, v)
		return raw, true, err
	}},
	{"numeric", func(d Descriptor, v any) (any, bool, error) {
		n, ok, err := toInt64(v)
		if !ok {
			return nil, false, nil
		}
		if err != nil {
			return nil, true, d.convErr(OutOfRange, v, "int32", err)
		}
		days, err := toInt32(n)
		if err != nil {
			return nil, true, d.convErr(OutOfRange, v, "int32", err)
		}
		return days, true, nil
	}},
	{"string", func(d Descriptor, v any) (any, bool, error) {
		s, ok := asText(v)
		if !ok {
			return nil, false, nil
		}
		date, err := ParseDate(s)
		if err != nil {
			return nil, true, d.convErr(MalformedText, v, "logical.Date", err)
		}
		raw, err := d.dateToDays(date, v)
		return raw, true, err
	}},
	{"time.Time", func(d Descriptor, v any) (any, bool, error) {
		t, ok := v.(time.Time)
		if !ok {
			return nil, false, nil
		}
		raw, err := d.dateToDays(DateOf(t.UTC()), v)
		return raw, true, err
	}},
	{"logical.LocalDateTime", func(d Descriptor, v any) (any, bool, error) {
		dt, ok := v.(LocalDateTime)
		if !ok {
			return nil, false, nil
		}
		raw, err := d.dateToDays(dt.Date, v)
		return raw, true, err
	}},
}

func (d Descriptor) dateToDays(date Date, v any) (any, error) {
	if !date.Valid() {
		return nil, d.convErr(OutOfRange, v, "int32", errInvalidCalendar(date))
	}
	days, err := toInt32(date.DaysSinceEpoch())
	if err != nil {
		return nil, d.convErr(OutOfRange, v, "int32", err)
	}
	return days, nil
}

func (d Descriptor) dateToLogical(v any) (any, error) {
	switch n := v.(type) {
	case int32:
		return DateFromDays(int64(n)), nil
	default:
		return nil, d.convErr(InvalidRawRepresentation, v, "logical.Date", nil)
	}
}
