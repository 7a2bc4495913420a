package serde

import "math/big"

// Transcode streams the value read from d straight into s, without an
// intermediate representation. Container order is preserved.
func Transcode[T any](d Deserializer, s Serializer[T]) (T, error) {
	v := &transcoder[T]{BaseVisitor: BaseVisitor{Expect: "any value"}, s: s}
	if err := d.DeserializeAny(v); err != nil {
		var zero T
		return zero, err
	}
	return v.out, nil
}

// From wraps d so that serializing the result replays d.
func From(d Deserializer) Source {
	return deferred{d}
}

type deferred struct {
	d Deserializer
}

func (s deferred) Deserializer() Deserializer { return s.d }

type transcoder[T any] struct {
	BaseVisitor
	s   Serializer[T]
	out T
}

func (t *transcoder[T]) put(out T, err error) error {
	if err != nil {
		return err
	}
	t.out = out
	return nil
}

func (t *transcoder[T]) VisitBool(v bool) error        { return t.put(t.s.SerializeBool(v)) }
func (t *transcoder[T]) VisitInt8(v int8) error        { return t.put(t.s.SerializeInt8(v)) }
func (t *transcoder[T]) VisitInt16(v int16) error      { return t.put(t.s.SerializeInt16(v)) }
func (t *transcoder[T]) VisitInt32(v int32) error      { return t.put(t.s.SerializeInt32(v)) }
func (t *transcoder[T]) VisitInt64(v int64) error      { return t.put(t.s.SerializeInt64(v)) }
func (t *transcoder[T]) VisitInt128(v *big.Int) error  { return t.put(t.s.SerializeBigInt(v)) }
func (t *transcoder[T]) VisitUint8(v uint8) error      { return t.put(t.s.SerializeUint8(v)) }
func (t *transcoder[T]) VisitUint16(v uint16) error    { return t.put(t.s.SerializeUint16(v)) }
func (t *transcoder[T]) VisitUint32(v uint32) error    { return t.put(t.s.SerializeUint32(v)) }
func (t *transcoder[T]) VisitUint64(v uint64) error    { return t.put(t.s.SerializeUint64(v)) }
func (t *transcoder[T]) VisitUint128(v *big.Int) error { return t.put(t.s.SerializeBigInt(v)) }
func (t *transcoder[T]) VisitBigInt(v *big.Int) error  { return t.put(t.s.SerializeBigInt(v)) }
func (t *transcoder[T]) VisitFloat32(v float32) error  { return t.put(t.s.SerializeFloat32(v)) }
func (t *transcoder[T]) VisitFloat64(v float64) error  { return t.put(t.s.SerializeFloat64(v)) }
func (t *transcoder[T]) VisitChar(v rune) error        { return t.put(t.s.SerializeChar(v)) }
func (t *transcoder[T]) VisitStr(v string) error       { return t.put(t.s.SerializeStr(v)) }
func (t *transcoder[T]) VisitBytes(v []byte) error     { return t.put(t.s.SerializeBytes(v)) }
func (t *transcoder[T]) VisitNone() error              { return t.put(t.s.SerializeNone()) }
func (t *transcoder[T]) VisitUnit() error              { return t.put(t.s.SerializeUnit()) }

func (t *transcoder[T]) VisitSome(d Deserializer) error {
	return t.put(t.s.SerializeSome(deferred{d}))
}

func (t *transcoder[T]) VisitNewtypeStruct(d Deserializer) error {
	return t.put(t.s.SerializeNewtypeStruct("", deferred{d}))
}

func (t *transcoder[T]) VisitSeq(seq SeqAccess) error {
	n, ok := seq.SizeHint()
	if !ok {
		n = -1
	}
	b, err := t.s.SerializeSeq(n)
	if err != nil {
		return err
	}
	elem := SeedFunc(func(d Deserializer) error { return b.SerializeElement(deferred{d}) })
	for {
		more, err := seq.NextElement(elem)
		if err != nil {
			return err
		}
		if !more {
			return t.put(b.End())
		}
	}
}

func (t *transcoder[T]) VisitMap(m MapAccess) error {
	n, ok := m.SizeHint()
	if !ok {
		n = -1
	}
	b, err := t.s.SerializeMap(n)
	if err != nil {
		return err
	}
	key := SeedFunc(func(d Deserializer) error { return b.SerializeKey(deferred{d}) })
	value := SeedFunc(func(d Deserializer) error { return b.SerializeValue(deferred{d}) })
	for {
		more, err := m.NextKey(key)
		if err != nil {
			return err
		}
		if !more {
			return t.put(b.End())
		}
		if err := m.NextValue(value); err != nil {
			return err
		}
	}
}

// VisitEnum re-emits an enum as a newtype variant keyed by its name.
func (t *transcoder[T]) VisitEnum(e EnumAccess) error {
	var name string
	va, err := e.Variant(SeedFunc(func(d Deserializer) error {
		return d.DeserializeIdentifier(&identVisitor{BaseVisitor{"variant identifier"}, &name})
	}))
	if err != nil {
		return err
	}
	return va.NewtypeVariant(SeedFunc(func(d Deserializer) error {
		return t.put(t.s.SerializeNewtypeVariant("", 0, name, deferred{d}))
	}))
}
