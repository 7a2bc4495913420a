package serde

import "math/big"

// treeSerializer renders the data model as plain Go values. Structs and
// maps become ordered Maps; variants become single-entry Maps.
type treeSerializer struct{}

func (t treeSerializer) SerializeBool(v bool) (any, error)       { return v, nil }
func (t treeSerializer) SerializeInt8(v int8) (any, error)       { return int64(v), nil }
func (t treeSerializer) SerializeInt16(v int16) (any, error)     { return int64(v), nil }
func (t treeSerializer) SerializeInt32(v int32) (any, error)     { return int64(v), nil }
func (t treeSerializer) SerializeInt64(v int64) (any, error)     { return v, nil }
func (t treeSerializer) SerializeUint8(v uint8) (any, error)     { return uint64(v), nil }
func (t treeSerializer) SerializeUint16(v uint16) (any, error)   { return uint64(v), nil }
func (t treeSerializer) SerializeUint32(v uint32) (any, error)   { return uint64(v), nil }
func (t treeSerializer) SerializeUint64(v uint64) (any, error)   { return v, nil }
func (t treeSerializer) SerializeBigInt(v *big.Int) (any, error) { return new(big.Int).Set(v), nil }
func (t treeSerializer) SerializeFloat32(v float32) (any, error) { return float64(v), nil }
func (t treeSerializer) SerializeFloat64(v float64) (any, error) { return v, nil }
func (t treeSerializer) SerializeChar(v rune) (any, error)       { return string(v), nil }
func (t treeSerializer) SerializeStr(v string) (any, error)      { return v, nil }
func (t treeSerializer) SerializeBytes(v []byte) (any, error)    { return append([]byte{}, v...), nil }
func (t treeSerializer) SerializeNone() (any, error)             { return nil, nil }
func (t treeSerializer) SerializeSome(v any) (any, error)        { return Serialize[any](t, v) }
func (t treeSerializer) SerializeUnit() (any, error)             { return nil, nil }
func (t treeSerializer) SerializeUnitStruct(string) (any, error) { return nil, nil }

func (t treeSerializer) SerializeUnitVariant(_ string, _ int, variant string) (any, error) {
	return variant, nil
}

func (t treeSerializer) SerializeNewtypeStruct(_ string, v any) (any, error) {
	return Serialize[any](t, v)
}

func (t treeSerializer) SerializeNewtypeVariant(_ string, _ int, variant string, v any) (any, error) {
	inner, err := Serialize[any](t, v)
	if err != nil {
		return nil, err
	}
	return Map{{Key: variant, Value: inner}}, nil
}

func (t treeSerializer) SerializeSeq(int) (SerializeSeq[any], error) {
	return &treeSeq{}, nil
}

func (t treeSerializer) SerializeTuple(int) (SerializeSeq[any], error) {
	return &treeSeq{}, nil
}

func (t treeSerializer) SerializeTupleStruct(string, int) (SerializeSeq[any], error) {
	return &treeSeq{}, nil
}

func (t treeSerializer) SerializeTupleVariant(_ string, _ int, variant string, _ int) (SerializeSeq[any], error) {
	return &treeSeq{variant: variant}, nil
}

func (t treeSerializer) SerializeMap(int) (SerializeMap[any], error) {
	return &treeMap{}, nil
}

func (t treeSerializer) SerializeStruct(string, int) (SerializeStruct[any], error) {
	return &treeMap{}, nil
}

func (t treeSerializer) SerializeStructVariant(_ string, _ int, variant string, _ int) (SerializeStruct[any], error) {
	return &treeMap{variant: variant}, nil
}

type treeSeq struct {
	items   []any
	variant string
}

func (s *treeSeq) SerializeElement(v any) error {
	item, err := Serialize[any](treeSerializer{}, v)
	if err != nil {
		return err
	}
	s.items = append(s.items, item)
	return nil
}

func (s *treeSeq) End() (any, error) {
	items := s.items
	if items == nil {
		items = []any{}
	}
	if s.variant != "" {
		return Map{{Key: s.variant, Value: items}}, nil
	}
	return items, nil
}

type treeMap struct {
	entries Map
	key     any
	variant string
}

func (m *treeMap) SerializeKey(k any) error {
	key, err := Serialize[any](treeSerializer{}, k)
	m.key = key
	return err
}

func (m *treeMap) SerializeValue(v any) error {
	val, err := Serialize[any](treeSerializer{}, v)
	if err != nil {
		return err
	}
	m.entries = append(m.entries, Entry{Key: m.key, Value: val})
	return nil
}

func (m *treeMap) SerializeField(name string, v any) error {
	if err := m.SerializeKey(name); err != nil {
		return err
	}
	return m.SerializeValue(v)
}

func (m *treeMap) End() (any, error) {
	entries := m.entries
	if entries == nil {
		entries = Map{}
	}
	if m.variant != "" {
		return Map{{Key: m.variant, Value: entries}}, nil
	}
	return entries, nil
}
