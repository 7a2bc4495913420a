package transcoder

import (
	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/serde"
)

// seqAccess reads a host sequence by index.
type seqAccess struct {
	seq object.Sequence
	pos int
	n   int
}

// newSeqAccess checks the length against expected unless it is negative.
func newSeqAccess(seq object.Sequence, expected int) (*seqAccess, error) {
	n, err := seq.Len()
	if err != nil {
		return nil, hostErr(err)
	}
	if expected >= 0 && n != expected {
		return nil, errors.IncorrectSequenceLength(errors.PhaseDecode, expected, n)
	}
	return &seqAccess{seq: seq, n: n}, nil
}

func (s *seqAccess) NextElement(seed serde.Seed) (bool, error) {
	if s.pos >= s.n {
		return false, nil
	}
	i := s.pos
	s.pos++
	item, err := s.seq.GetItem(i)
	if err != nil {
		return false, errors.AtPath(errors.PhaseDecode, err, errors.Index(i))
	}
	if err := seed.DeserializeSeed(NewDecoder(item)); err != nil {
		return false, errors.AtPath(errors.PhaseDecode, err, errors.Index(i))
	}
	return true, nil
}

func (s *seqAccess) SizeHint() (int, bool) { return s.n - s.pos, true }

// setAccess reads a set through its iterator.
type setAccess struct {
	it  object.Iterator
	pos int
	n   int
}

func newSetAccess(set object.Iterable) (*setAccess, error) {
	it, err := set.Iter()
	if err != nil {
		return nil, hostErr(err)
	}
	n := -1
	if sized, ok := set.(interface{ Len() (int, error) }); ok {
		if n, err = sized.Len(); err != nil {
			return nil, hostErr(err)
		}
	}
	return &setAccess{it: it, n: n}, nil
}

func (s *setAccess) NextElement(seed serde.Seed) (bool, error) {
	item, ok, err := s.it.Next()
	if err != nil {
		return false, hostErr(err)
	}
	if !ok {
		return false, nil
	}
	i := s.pos
	s.pos++
	if err := seed.DeserializeSeed(NewDecoder(item)); err != nil {
		return false, errors.AtPath(errors.PhaseDecode, err, errors.Index(i))
	}
	return true, nil
}

func (s *setAccess) SizeHint() (int, bool) {
	if s.n < 0 {
		return 0, false
	}
	return s.n - s.pos, true
}

// mapAccess enumerates the keys up front and looks values up lazily.
type mapAccess struct {
	m    object.Mapping
	keys []object.Object
	pos  int
}

func newMapAccess(m object.Mapping) (*mapAccess, error) {
	keys, err := m.Keys()
	if err != nil {
		return nil, hostErr(err)
	}
	return &mapAccess{m: m, keys: keys}, nil
}

func (m *mapAccess) NextKey(seed serde.Seed) (bool, error) {
	if m.pos >= len(m.keys) {
		return false, nil
	}
	key := m.keys[m.pos]
	if err := seed.DeserializeSeed(NewDecoder(key)); err != nil {
		return false, errors.AtPath(errors.PhaseDecode, err, keySegment(key))
	}
	return true, nil
}

func (m *mapAccess) NextValue(seed serde.Seed) error {
	if m.pos >= len(m.keys) {
		panic("transcoder: NextValue called without a pending key")
	}
	key := m.keys[m.pos]
	m.pos++
	value, err := m.m.GetItem(key)
	if err != nil {
		return errors.AtPath(errors.PhaseDecode, err, keySegment(key))
	}
	if err := seed.DeserializeSeed(NewDecoder(value)); err != nil {
		return errors.AtPath(errors.PhaseDecode, err, keySegment(key))
	}
	return nil
}

func (m *mapAccess) SizeHint() (int, bool) { return len(m.keys) - m.pos, true }

// keySegment names a mapping entry in an error path.
func keySegment(key object.Object) string {
	if s, ok := key.(object.Str); ok {
		return string(s)
	}
	return object.Repr(key)
}

// enumAccess reads the {variant: payload} form.
type enumAccess struct {
	variant string
	payload object.Object
}

func (e *enumAccess) Variant(seed serde.Seed) (serde.VariantAccess, error) {
	if err := seed.DeserializeSeed(NewDecoder(object.Str(e.variant))); err != nil {
		return nil, err
	}
	return e, nil
}

// UnitVariant ignores the payload.
func (e *enumAccess) UnitVariant() error { return nil }

func (e *enumAccess) NewtypeVariant(seed serde.Seed) error {
	return errors.AtPath(errors.PhaseDecode, seed.DeserializeSeed(NewDecoder(e.payload)), e.variant)
}

func (e *enumAccess) TupleVariant(length int, v serde.Visitor) error {
	return errors.AtPath(errors.PhaseDecode, NewDecoder(e.payload).DeserializeTuple(length, v), e.variant)
}

func (e *enumAccess) StructVariant(fields []string, v serde.Visitor) error {
	return errors.AtPath(errors.PhaseDecode, NewDecoder(e.payload).DeserializeStruct("", fields, v), e.variant)
}
