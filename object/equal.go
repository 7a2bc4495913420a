package object

import (
	"bytes"
	"math/big"
	"reflect"
)

// Equal applies host equality: numbers compare by value across bool, int
// and float, bytes equals bytearray, and set equals frozenset.
func Equal(a, b Object) bool {
	if na, ok := numeric(a); ok {
		nb, ok := numeric(b)
		return ok && na != nil && nb != nil && na.Cmp(nb) == 0
	}
	switch x := a.(type) {
	case nil, NoneType:
		return Classify(b) == KindNone
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case Bytes, *ByteArray:
		xb, _ := AsBytes(a)
		yb, err := AsBytes(b)
		return err == nil && bytes.Equal(xb, yb)
	case *List:
		y, ok := b.(*List)
		return ok && equalItems(x.items, y.items)
	case *Tuple:
		y, ok := b.(*Tuple)
		return ok && equalItems(x.items, y.items)
	case *Dict:
		y, ok := b.(*Dict)
		if !ok || len(x.keys) != len(y.keys) {
			return false
		}
		for i, k := range x.keys {
			v, ok := y.Get(k)
			if !ok || !Equal(x.values[i], v) {
				return false
			}
		}
		return true
	case *Set:
		return equalSets(&x.hashSet, b)
	case *FrozenSet:
		return equalSets(&x.hashSet, b)
	}
	return reflect.DeepEqual(a, b)
}

// numeric returns the exact value of a number; NaN and infinities report
// ok with a nil value so they never compare equal.
func numeric(o Object) (*big.Float, bool) {
	switch v := o.(type) {
	case Bool:
		if v {
			return big.NewFloat(1), true
		}
		return big.NewFloat(0), true
	case *Int:
		return new(big.Float).SetInt(&v.v), true
	case Float:
		f := float64(v)
		if f != f || f > maxFloat || f < -maxFloat {
			return nil, true
		}
		return big.NewFloat(f), true
	}
	return nil, false
}

const maxFloat = 1.7976931348623157e308

func equalItems(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalSets(x *hashSet, b Object) bool {
	var y *hashSet
	switch v := b.(type) {
	case *Set:
		y = &v.hashSet
	case *FrozenSet:
		y = &v.hashSet
	default:
		return false
	}
	if len(x.members) != len(y.members) {
		return false
	}
	for _, m := range x.members {
		if !y.contains(m) {
			return false
		}
	}
	return true
}
