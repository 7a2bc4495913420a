package transcoder

import (
	"reflect"

	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/serde"
)

var objectType = reflect.TypeOf((*object.Object)(nil)).Elem()

// Host objects stored in Go values (fields of type object.Object, *object.List,
// ...) serialize by replaying a Decoder and deserialize by rebuilding the
// object with the default strategy.
func init() {
	serde.Register(serde.Extension{
		Type: objectType,
		Source: func(v any) serde.Source {
			return serde.From(NewDecoder(v.(object.Object)))
		},
		Deserialize: func(d serde.Deserializer) (any, error) {
			return FromDeserializer(d, DefaultStrategy())
		},
	})
}

// FromDeserializer builds a host object from any deserializer. A Decoder
// hands over its object as is.
func FromDeserializer(d serde.Deserializer, s Strategy) (object.Object, error) {
	if dec, ok := d.(*Decoder); ok {
		return dec.obj, nil
	}
	return serde.Transcode[object.Object](d, NewEncoder(s))
}

// Convert deep-copies obj into the containers of s. Every sequence, tuples
// and sets included, is rebuilt with s.List.
func Convert(obj object.Object, s Strategy) (object.Object, error) {
	return serde.Transcode[object.Object](NewDecoder(obj), NewEncoder(s))
}

// Value carries a host object through statically typed structures. It
// encodes as the object itself and decodes into whatever object the input
// describes.
type Value struct {
	Object object.Object
}

func (v Value) object() object.Object {
	if v.Object == nil {
		return object.None
	}
	return v.Object
}

// Deserializer replays the object, letting any serde.Serializer consume it.
func (v Value) Deserializer() serde.Deserializer {
	return NewDecoder(v.Object)
}

func (v *Value) UnmarshalSerde(d serde.Deserializer) error {
	obj, err := FromDeserializer(d, DefaultStrategy())
	if err != nil {
		return err
	}
	v.Object = obj
	return nil
}

func (v Value) String() string {
	return object.Repr(v.object())
}
