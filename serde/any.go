package serde

import (
	"math"
	"math/big"
	"reflect"
)

// anyVisitor builds plain Go values: nil, bool, int64, uint64 (only above
// math.MaxInt64), *big.Int, float64, string, []byte, []any and maps.
// Maps become map[string]any when every key is a string and map[any]any
// otherwise. Enums become a single-entry map from variant to payload.
type anyVisitor struct {
	BaseVisitor
	out *any
}

func anySeed(out *any) Seed {
	return SeedFunc(func(d Deserializer) error {
		return d.DeserializeAny(&anyVisitor{BaseVisitor{"any value"}, out})
	})
}

func (v *anyVisitor) set(x any) error {
	*v.out = x
	return nil
}

func (v *anyVisitor) VisitBool(b bool) error       { return v.set(b) }
func (v *anyVisitor) VisitInt8(n int8) error       { return v.set(int64(n)) }
func (v *anyVisitor) VisitInt16(n int16) error     { return v.set(int64(n)) }
func (v *anyVisitor) VisitInt32(n int32) error     { return v.set(int64(n)) }
func (v *anyVisitor) VisitInt64(n int64) error     { return v.set(n) }
func (v *anyVisitor) VisitInt128(n *big.Int) error { return v.setBig(n) }
func (v *anyVisitor) VisitUint8(n uint8) error     { return v.set(int64(n)) }
func (v *anyVisitor) VisitUint16(n uint16) error   { return v.set(int64(n)) }
func (v *anyVisitor) VisitUint32(n uint32) error   { return v.set(int64(n)) }
func (v *anyVisitor) VisitUint64(n uint64) error {
	if n > math.MaxInt64 {
		return v.set(n)
	}
	return v.set(int64(n))
}
func (v *anyVisitor) VisitUint128(n *big.Int) error { return v.setBig(n) }
func (v *anyVisitor) VisitBigInt(n *big.Int) error  { return v.setBig(n) }

func (v *anyVisitor) setBig(n *big.Int) error {
	switch {
	case n.IsInt64():
		return v.set(n.Int64())
	case n.IsUint64():
		return v.set(n.Uint64())
	}
	return v.set(new(big.Int).Set(n))
}

func (v *anyVisitor) VisitFloat32(f float32) error { return v.set(float64(f)) }
func (v *anyVisitor) VisitFloat64(f float64) error { return v.set(f) }
func (v *anyVisitor) VisitChar(r rune) error       { return v.set(string(r)) }
func (v *anyVisitor) VisitStr(s string) error      { return v.set(s) }
func (v *anyVisitor) VisitBytes(b []byte) error    { return v.set(append([]byte{}, b...)) }
func (v *anyVisitor) VisitNone() error             { return v.set(nil) }
func (v *anyVisitor) VisitUnit() error             { return v.set(nil) }

func (v *anyVisitor) VisitSome(d Deserializer) error {
	return d.DeserializeAny(v)
}

func (v *anyVisitor) VisitNewtypeStruct(d Deserializer) error {
	return d.DeserializeAny(v)
}

func (v *anyVisitor) VisitSeq(seq SeqAccess) error {
	n, _ := seq.SizeHint()
	out := make([]any, 0, n)
	for {
		var elem any
		more, err := seq.NextElement(anySeed(&elem))
		if err != nil {
			return err
		}
		if !more {
			return v.set(out)
		}
		out = append(out, elem)
	}
}

func (v *anyVisitor) VisitMap(m MapAccess) error {
	var keys, values []any
	allStrings := true
	for {
		var key, val any
		more, err := m.NextKey(anySeed(&key))
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if err := m.NextValue(anySeed(&val)); err != nil {
			return err
		}
		if _, ok := key.(string); !ok {
			allStrings = false
		}
		keys = append(keys, key)
		values = append(values, val)
	}

	if allStrings {
		out := make(map[string]any, len(keys))
		for i, k := range keys {
			out[k.(string)] = values[i]
		}
		return v.set(out)
	}
	out := make(map[any]any, len(keys))
	for i, k := range keys {
		if k != nil && !reflect.TypeOf(k).Comparable() {
			return Custom("map key of type %T cannot be used in a Go map", k)
		}
		out[k] = values[i]
	}
	return v.set(out)
}

func (v *anyVisitor) VisitEnum(e EnumAccess) error {
	var name string
	va, err := e.Variant(SeedFunc(func(d Deserializer) error {
		return d.DeserializeIdentifier(&identVisitor{BaseVisitor{"variant identifier"}, &name})
	}))
	if err != nil {
		return err
	}
	var payload any
	if err := va.NewtypeVariant(anySeed(&payload)); err != nil {
		return err
	}
	return v.set(map[string]any{name: payload})
}
