package transcoder

import (
	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/serde"
)

// Encode converts v into host objects with the default strategy.
func Encode(v any) (object.Object, error) {
	return EncodeWith(DefaultStrategy(), v)
}

// EncodeWith converts v into host objects built by s.
func EncodeWith(s Strategy, v any) (object.Object, error) {
	obj, err := NewEncoder(s).Encode(v)
	if err != nil {
		return nil, errors.Classify(errors.PhaseEncode, err)
	}
	return obj, nil
}

// Decode converts obj into a T.
func Decode[T any](obj object.Object) (T, error) {
	var out T
	if err := DecodeInto(obj, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// DecodeInto converts obj into the value ptr points to.
func DecodeInto(obj object.Object, ptr any) error {
	if err := serde.Deserialize(NewDecoder(obj), ptr); err != nil {
		return errors.Classify(errors.PhaseDecode, err)
	}
	return nil
}
