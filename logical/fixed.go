package logical

import (
	"bytes"

	"github.com/google/uuid"
)

// fixedCascade wraps binary input as a Fixed value. The length is not
// checked here; writing exactly Length bytes is the encoder's job.
var fixedCascade = cascade{
	{"logical.Fixed", func(d Descriptor, v any) (any, bool, error) {
		f, ok := v.(Fixed)
		return f, ok, nil
	}},
	{"[]byte", func(d Descriptor, v any) (any, bool, error) {
		b, ok := v.([]byte)
		return Fixed(b), ok, nil
	}},
	{"uuid.UUID", func(d Descriptor, v any) (any, bool, error) {
		u, ok := v.(uuid.UUID)
		if !ok {
			return nil, false, nil
		}
		return Fixed(bytes.Clone(u[:])), true, nil
	}},
	{"*bytes.Buffer", func(d Descriptor, v any) (any, bool, error) {
		buf, ok := v.(*bytes.Buffer)
		if !ok {
			return nil, false, nil
		}
		return Fixed(buf.Bytes()), true, nil
	}},
}

func (d Descriptor) fixedToLogical(v any) (any, error) {
	f, ok := v.(Fixed)
	if !ok {
		return nil, d.convErr(InvalidRawRepresentation, v, "logical.Fixed", nil)
	}
	return f, nil
}
