package transcoder

import (
	"math/big"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/serde"
	"go.uber.org/zap"
)

// Encoder builds host objects. It implements serde.Serializer and creates
// containers through its Strategy.
type Encoder struct {
	strategy Strategy
}

// NewEncoder returns an Encoder using s. Unset strategy members fall back
// to DefaultStrategy.
func NewEncoder(s Strategy) Encoder {
	return Encoder{strategy: s.withDefaults()}
}

// Encode converts v. Host objects and Values found anywhere in v are
// inserted as they are.
func (e Encoder) Encode(v any) (object.Object, error) {
	switch x := v.(type) {
	case Value:
		return x.object(), nil
	case *Value:
		if x != nil {
			return x.object(), nil
		}
	case object.Object:
		return x, nil
	}
	return serde.Serialize[object.Object](e, v)
}

func builderErr(err error) error {
	if err == nil {
		return nil
	}
	Logger().Debug("container builder failed", zap.Error(err))
	return errors.Classify(errors.PhaseEncode, err)
}

func (e Encoder) SerializeBool(v bool) (object.Object, error) { return object.Bool(v), nil }

func (e Encoder) SerializeInt8(v int8) (object.Object, error)   { return object.NewInt(int64(v)), nil }
func (e Encoder) SerializeInt16(v int16) (object.Object, error) { return object.NewInt(int64(v)), nil }
func (e Encoder) SerializeInt32(v int32) (object.Object, error) { return object.NewInt(int64(v)), nil }
func (e Encoder) SerializeInt64(v int64) (object.Object, error) { return object.NewInt(v), nil }

func (e Encoder) SerializeUint8(v uint8) (object.Object, error)   { return object.NewUint(uint64(v)), nil }
func (e Encoder) SerializeUint16(v uint16) (object.Object, error) { return object.NewUint(uint64(v)), nil }
func (e Encoder) SerializeUint32(v uint32) (object.Object, error) { return object.NewUint(uint64(v)), nil }
func (e Encoder) SerializeUint64(v uint64) (object.Object, error) { return object.NewUint(v), nil }

func (e Encoder) SerializeBigInt(v *big.Int) (object.Object, error) {
	return object.NewBigInt(v), nil
}

func (e Encoder) SerializeFloat32(v float32) (object.Object, error) {
	return object.Float(float64(v)), nil
}

func (e Encoder) SerializeFloat64(v float64) (object.Object, error) {
	return object.Float(v), nil
}

func (e Encoder) SerializeChar(v rune) (object.Object, error) { return object.Str(string(v)), nil }
func (e Encoder) SerializeStr(v string) (object.Object, error) { return object.Str(v), nil }

func (e Encoder) SerializeBytes(v []byte) (object.Object, error) {
	return object.Bytes(append([]byte{}, v...)), nil
}

func (e Encoder) SerializeNone() (object.Object, error)        { return object.None, nil }
func (e Encoder) SerializeSome(v any) (object.Object, error)   { return e.Encode(v) }
func (e Encoder) SerializeUnit() (object.Object, error)        { return object.None, nil }
func (e Encoder) SerializeUnitStruct(string) (object.Object, error) { return object.None, nil }

// SerializeUnitVariant encodes a unit variant as its bare name.
func (e Encoder) SerializeUnitVariant(_ string, _ int, variant string) (object.Object, error) {
	return object.Str(variant), nil
}

func (e Encoder) SerializeNewtypeStruct(_ string, v any) (object.Object, error) {
	return e.Encode(v)
}

// SerializeNewtypeVariant encodes {variant: payload}.
func (e Encoder) SerializeNewtypeVariant(name string, _ int, variant string, v any) (object.Object, error) {
	payload, err := e.Encode(v)
	if err != nil {
		return nil, errors.AtPath(errors.PhaseEncode, err, variant)
	}
	return e.wrapVariant(name, variant, payload)
}

func (e Encoder) wrapVariant(name, variant string, payload object.Object) (object.Object, error) {
	var b NamedMappingBuilder
	var err error
	if vt, ok := e.strategy.NamedMap.(VariantMappingType); ok {
		b, err = vt.NewVariantBuilder(name)
	} else {
		b, err = e.strategy.NamedMap.NewNamedBuilder(name, 1)
	}
	if err != nil {
		return nil, builderErr(err)
	}
	if err := b.PushField(variant, payload); err != nil {
		return nil, builderErr(err)
	}
	obj, err := b.Finish()
	return obj, builderErr(err)
}

func (e Encoder) SerializeSeq(length int) (serde.SerializeSeq[object.Object], error) {
	return newSeqBuilder(e, e.strategy.List, length), nil
}

func (e Encoder) SerializeTuple(length int) (serde.SerializeSeq[object.Object], error) {
	return newSeqBuilder(e, e.strategy.Tuple, length), nil
}

func (e Encoder) SerializeTupleStruct(_ string, length int) (serde.SerializeSeq[object.Object], error) {
	return newSeqBuilder(e, e.strategy.Tuple, length), nil
}

// SerializeTupleVariant encodes {variant: (items...)}.
func (e Encoder) SerializeTupleVariant(name string, _ int, variant string, length int) (serde.SerializeSeq[object.Object], error) {
	b := newSeqBuilder(e, e.strategy.Tuple, length)
	b.enum, b.variant = name, variant
	return b, nil
}

func (e Encoder) SerializeMap(length int) (serde.SerializeMap[object.Object], error) {
	b, err := e.strategy.Map.NewBuilder(max(length, 0))
	if err != nil {
		return nil, builderErr(err)
	}
	return &mapBuilder{enc: e, b: b}, nil
}

func (e Encoder) SerializeStruct(name string, length int) (serde.SerializeStruct[object.Object], error) {
	b, err := e.strategy.NamedMap.NewNamedBuilder(name, length)
	if err != nil {
		return nil, builderErr(err)
	}
	return &structBuilder{enc: e, b: b}, nil
}

// SerializeStructVariant encodes {variant: {fields...}}.
func (e Encoder) SerializeStructVariant(name string, _ int, variant string, length int) (serde.SerializeStruct[object.Object], error) {
	b, err := e.strategy.NamedMap.NewNamedBuilder(name, length)
	if err != nil {
		return nil, builderErr(err)
	}
	return &structBuilder{enc: e, b: b, enum: name, variant: variant}, nil
}

// seqBuilder collects encoded items for a sequence, tuple or tuple variant.
type seqBuilder struct {
	enc     Encoder
	kind    ListType
	items   []object.Object
	enum    string
	variant string
}

func newSeqBuilder(e Encoder, kind ListType, length int) *seqBuilder {
	return &seqBuilder{enc: e, kind: kind, items: make([]object.Object, 0, max(length, 0))}
}

func (s *seqBuilder) SerializeElement(v any) error {
	item, err := s.enc.Encode(v)
	if err != nil {
		return errors.AtPath(errors.PhaseEncode, err, errors.Index(len(s.items)))
	}
	s.items = append(s.items, item)
	return nil
}

func (s *seqBuilder) End() (object.Object, error) {
	seq, err := s.kind.CreateSequence(s.items)
	if err != nil {
		return nil, builderErr(err)
	}
	if s.variant == "" {
		return seq, nil
	}
	return s.enc.wrapVariant(s.enum, s.variant, seq)
}

// mapBuilder buffers a key until its value arrives.
type mapBuilder struct {
	enc Encoder
	b   MappingBuilder
	key object.Object
}

func (m *mapBuilder) SerializeKey(k any) error {
	key, err := m.enc.Encode(k)
	if err != nil {
		return errors.AtPath(errors.PhaseEncode, err, errors.KeySegment)
	}
	m.key = key
	return nil
}

func (m *mapBuilder) SerializeValue(v any) error {
	if m.key == nil {
		panic("transcoder: SerializeValue called without a preceding SerializeKey")
	}
	key := m.key
	m.key = nil
	value, err := m.enc.Encode(v)
	if err != nil {
		return errors.AtPath(errors.PhaseEncode, err, keySegment(key))
	}
	return builderErr(m.b.PushItem(key, value))
}

func (m *mapBuilder) End() (object.Object, error) {
	obj, err := m.b.Finish()
	return obj, builderErr(err)
}

// structBuilder pushes fields in declaration order.
type structBuilder struct {
	enc     Encoder
	b       NamedMappingBuilder
	enum    string
	variant string
}

func (s *structBuilder) SerializeField(name string, v any) error {
	value, err := s.enc.Encode(v)
	if err != nil {
		return errors.AtPath(errors.PhaseEncode, err, name)
	}
	return builderErr(s.b.PushField(name, value))
}

func (s *structBuilder) End() (object.Object, error) {
	obj, err := s.b.Finish()
	if err != nil {
		return nil, builderErr(err)
	}
	if s.variant == "" {
		return obj, nil
	}
	return s.enc.wrapVariant(s.enum, s.variant, obj)
}
