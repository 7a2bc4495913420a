package hostbridge

import (
	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/transcoder"
)

// Codec converts values with a fixed container strategy.
type Codec struct {
	strategy transcoder.Strategy
}

// NewCodec returns a Codec building containers with s. Unset members of s
// use the defaults.
func NewCodec(s transcoder.Strategy) Codec {
	return Codec{strategy: s}
}

// Encode converts v into host objects.
func (c Codec) Encode(v any) (object.Object, error) {
	return transcoder.EncodeWith(c.strategy, v)
}

// Decode converts obj into the value ptr points to.
func (c Codec) Decode(obj object.Object, ptr any) error {
	return transcoder.DecodeInto(obj, ptr)
}

// Convert rebuilds obj with the codec's containers.
func (c Codec) Convert(obj object.Object) (object.Object, error) {
	return transcoder.Convert(obj, c.strategy)
}

// ToHost converts v with the default containers.
func ToHost(v any) (object.Object, error) {
	return transcoder.Encode(v)
}

// FromHost converts obj into a T.
func FromHost[T any](obj object.Object) (T, error) {
	return transcoder.Decode[T](obj)
}
