package serde

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/wippyai/hostbridge/internal/numeric"
)

// VisitInteger passes n to the visitor using the narrowest width that
// holds it: unsigned widths for non-negative values, signed otherwise,
// VisitBigInt beyond 128 bits.
func VisitInteger(v Visitor, n *big.Int) error {
	switch numeric.Narrow(n) {
	case numeric.U8:
		return v.VisitUint8(uint8(n.Uint64()))
	case numeric.U16:
		return v.VisitUint16(uint16(n.Uint64()))
	case numeric.U32:
		return v.VisitUint32(uint32(n.Uint64()))
	case numeric.U64:
		return v.VisitUint64(n.Uint64())
	case numeric.U128:
		return v.VisitUint128(n)
	case numeric.I8:
		return v.VisitInt8(int8(n.Int64()))
	case numeric.I16:
		return v.VisitInt16(int16(n.Int64()))
	case numeric.I32:
		return v.VisitInt32(int32(n.Int64()))
	case numeric.I64:
		return v.VisitInt64(n.Int64())
	case numeric.I128:
		return v.VisitInt128(n)
	}
	return v.VisitBigInt(n)
}

// ValueDeserializer reads plain Go values: nil, bools, integers of every
// width, *big.Int, floats, json.Number, strings, []byte, slices, maps and
// Map. Map keys of Go maps are visited in sorted order.
type ValueDeserializer struct {
	v any
}

func NewValueDeserializer(v any) *ValueDeserializer {
	return &ValueDeserializer{v: v}
}

func (d *ValueDeserializer) DeserializeAny(v Visitor) error {
	switch x := d.v.(type) {
	case nil:
		return v.VisitUnit()
	case bool:
		return v.VisitBool(x)
	case int:
		return v.VisitInt64(int64(x))
	case int8:
		return v.VisitInt8(x)
	case int16:
		return v.VisitInt16(x)
	case int32:
		return v.VisitInt32(x)
	case int64:
		return v.VisitInt64(x)
	case uint:
		return v.VisitUint64(uint64(x))
	case uint8:
		return v.VisitUint8(x)
	case uint16:
		return v.VisitUint16(x)
	case uint32:
		return v.VisitUint32(x)
	case uint64:
		return v.VisitUint64(x)
	case *big.Int:
		if x == nil {
			return v.VisitUnit()
		}
		return VisitInteger(v, x)
	case big.Int:
		return VisitInteger(v, &x)
	case float32:
		return v.VisitFloat32(x)
	case float64:
		return v.VisitFloat64(x)
	case json.Number:
		return visitNumber(v, x)
	case string:
		return v.VisitStr(x)
	case []byte:
		return v.VisitBytes(x)
	case []any:
		return v.VisitSeq(&valueSeqAccess{items: x})
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k, Value: x[k]}
		}
		return v.VisitMap(&valueMapAccess{entries: entries})
	case Map:
		return v.VisitMap(&valueMapAccess{entries: x})
	}
	return d.deserializeReflect(v)
}

func visitNumber(v Visitor, n json.Number) error {
	if b, ok := new(big.Int).SetString(string(n), 10); ok {
		return VisitInteger(v, b)
	}
	f, err := n.Float64()
	if err != nil {
		return Custom("invalid number %q", string(n))
	}
	return v.VisitFloat64(f)
}

// deserializeReflect handles slices and maps of concrete element types.
func (d *ValueDeserializer) deserializeReflect(v Visitor) error {
	rv := reflect.ValueOf(d.v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return v.VisitUnit()
		}
		return NewValueDeserializer(rv.Elem().Interface()).DeserializeAny(v)
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return v.VisitSeq(&valueSeqAccess{items: items})
	case reflect.Map:
		keys := sortedKeys(rv)
		entries := make([]Entry, len(keys))
		for i, k := range keys {
			entries[i] = Entry{Key: k.Interface(), Value: rv.MapIndex(k).Interface()}
		}
		return v.VisitMap(&valueMapAccess{entries: entries})
	}
	return Custom("unsupported value of type %T", d.v)
}

func (d *ValueDeserializer) DeserializeBool(v Visitor) error    { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeInt8(v Visitor) error    { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeInt16(v Visitor) error   { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeInt32(v Visitor) error   { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeInt64(v Visitor) error   { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeUint8(v Visitor) error   { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeUint16(v Visitor) error  { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeUint32(v Visitor) error  { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeUint64(v Visitor) error  { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeFloat32(v Visitor) error { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeFloat64(v Visitor) error { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeChar(v Visitor) error    { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeStr(v Visitor) error     { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeBytes(v Visitor) error   { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeSeq(v Visitor) error     { return d.DeserializeAny(v) }
func (d *ValueDeserializer) DeserializeMap(v Visitor) error     { return d.DeserializeAny(v) }

func (d *ValueDeserializer) DeserializeIdentifier(v Visitor) error { return d.DeserializeAny(v) }

func (d *ValueDeserializer) DeserializeOption(v Visitor) error {
	if d.v == nil {
		return v.VisitNone()
	}
	return v.VisitSome(d)
}

func (d *ValueDeserializer) DeserializeUnit(v Visitor) error { return d.DeserializeAny(v) }

func (d *ValueDeserializer) DeserializeUnitStruct(_ string, v Visitor) error {
	return d.DeserializeAny(v)
}

func (d *ValueDeserializer) DeserializeNewtypeStruct(_ string, v Visitor) error {
	return v.VisitNewtypeStruct(d)
}

func (d *ValueDeserializer) DeserializeTuple(_ int, v Visitor) error { return d.DeserializeAny(v) }

func (d *ValueDeserializer) DeserializeTupleStruct(_ string, _ int, v Visitor) error {
	return d.DeserializeAny(v)
}

func (d *ValueDeserializer) DeserializeStruct(_ string, _ []string, v Visitor) error {
	return d.DeserializeAny(v)
}

// DeserializeEnum accepts a bare string (unit variant) or a single-entry
// map from variant name to payload.
func (d *ValueDeserializer) DeserializeEnum(_ string, _ []string, v Visitor) error {
	switch x := d.v.(type) {
	case string:
		return v.VisitEnum(StrEnumAccess(x))
	case map[string]any:
		if len(x) == 1 {
			for k, val := range x {
				return v.VisitEnum(&valueEnumAccess{variant: k, payload: val, hasPayload: true})
			}
		}
	case Map:
		if len(x) == 1 {
			if k, ok := x[0].Key.(string); ok {
				return v.VisitEnum(&valueEnumAccess{variant: k, payload: x[0].Value, hasPayload: true})
			}
		}
	}
	return InvalidType(fmt.Sprintf("%T", d.v), "string or map with a single key")
}

func (d *ValueDeserializer) DeserializeIgnoredAny(v Visitor) error { return v.VisitUnit() }

type valueSeqAccess struct {
	items []any
	pos   int
}

func (s *valueSeqAccess) NextElement(seed Seed) (bool, error) {
	if s.pos >= len(s.items) {
		return false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return true, seed.DeserializeSeed(NewValueDeserializer(item))
}

func (s *valueSeqAccess) SizeHint() (int, bool) { return len(s.items) - s.pos, true }

type valueMapAccess struct {
	entries []Entry
	pos     int
}

func (m *valueMapAccess) NextKey(seed Seed) (bool, error) {
	if m.pos >= len(m.entries) {
		return false, nil
	}
	return true, seed.DeserializeSeed(NewValueDeserializer(m.entries[m.pos].Key))
}

func (m *valueMapAccess) NextValue(seed Seed) error {
	if m.pos >= len(m.entries) {
		return Custom("NextValue called before NextKey")
	}
	v := m.entries[m.pos].Value
	m.pos++
	return seed.DeserializeSeed(NewValueDeserializer(v))
}

func (m *valueMapAccess) SizeHint() (int, bool) { return len(m.entries) - m.pos, true }

// StrEnumAccess is the enum access for a bare variant name. Only unit
// variants can be read from it.
func StrEnumAccess(variant string) EnumAccess {
	return &valueEnumAccess{variant: variant}
}

type valueEnumAccess struct {
	variant    string
	payload    any
	hasPayload bool
}

func (e *valueEnumAccess) Variant(seed Seed) (VariantAccess, error) {
	if err := seed.DeserializeSeed(NewValueDeserializer(e.variant)); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *valueEnumAccess) UnitVariant() error {
	if e.hasPayload && e.payload != nil {
		return InvalidType("newtype variant", "unit variant")
	}
	return nil
}

func (e *valueEnumAccess) NewtypeVariant(seed Seed) error {
	if !e.hasPayload {
		return InvalidType("unit variant", "newtype variant")
	}
	return seed.DeserializeSeed(NewValueDeserializer(e.payload))
}

func (e *valueEnumAccess) TupleVariant(length int, v Visitor) error {
	if !e.hasPayload {
		return InvalidType("unit variant", "tuple variant")
	}
	return NewValueDeserializer(e.payload).DeserializeTuple(length, v)
}

func (e *valueEnumAccess) StructVariant(fields []string, v Visitor) error {
	if !e.hasPayload {
		return InvalidType("unit variant", "struct variant")
	}
	return NewValueDeserializer(e.payload).DeserializeStruct("", fields, v)
}
