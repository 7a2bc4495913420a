package object

import (
	"math/big"
	"unicode/utf8"
)

// Object is a handle to a value owned by the host runtime.
type Object interface {
	// TypeName returns the host-visible type name ("int", "dict", ...).
	TypeName() string
}

// Sequence is the host's generic sequence protocol.
type Sequence interface {
	Object
	Len() (int, error)
	GetItem(i int) (Object, error)
}

// Mapping is the host's generic mapping protocol.
type Mapping interface {
	Object
	Len() (int, error)
	Keys() ([]Object, error)
	GetItem(key Object) (Object, error)
}

// MutableMapping is a Mapping that accepts item assignment.
type MutableMapping interface {
	Mapping
	SetItem(key, value Object) error
}

// Iterable can produce an Iterator over its members.
type Iterable interface {
	Object
	Iter() (Iterator, error)
}

// Iterator yields members until exhausted.
type Iterator interface {
	Next() (Object, bool, error)
}

// NoneType is the type of the None sentinel.
type NoneType struct{}

// None is the host's absent-value sentinel.
var None = NoneType{}

func (NoneType) TypeName() string { return "NoneType" }

// Bool is a host boolean.
type Bool bool

const (
	True  Bool = true
	False Bool = false
)

func (Bool) TypeName() string { return "bool" }

// Int is an arbitrary precision host integer.
type Int struct {
	v big.Int
}

func NewInt(v int64) *Int {
	i := &Int{}
	i.v.SetInt64(v)
	return i
}

func NewUint(v uint64) *Int {
	i := &Int{}
	i.v.SetUint64(v)
	return i
}

// NewBigInt copies b into a new host integer.
func NewBigInt(b *big.Int) *Int {
	i := &Int{}
	i.v.Set(b)
	return i
}

func (*Int) TypeName() string { return "int" }

// Big returns a copy of the integer value.
func (i *Int) Big() *big.Int {
	return new(big.Int).Set(&i.v)
}

func (i *Int) Sign() int { return i.v.Sign() }

func (i *Int) BitLen() int { return i.v.BitLen() }

func (i *Int) String() string { return i.v.String() }

// Float is a host float (IEEE-754 double).
type Float float64

func (Float) TypeName() string { return "float" }

// Str is a host text string.
type Str string

func (Str) TypeName() string { return "str" }

// Len returns the length in code points.
func (s Str) Len() int { return utf8.RuneCountInString(string(s)) }

// Bytes is an immutable host byte string.
type Bytes []byte

func (Bytes) TypeName() string { return "bytes" }

// ByteArray is a mutable host byte buffer.
type ByteArray struct {
	data []byte
}

func NewByteArray(b []byte) *ByteArray {
	return &ByteArray{data: append([]byte(nil), b...)}
}

func (*ByteArray) TypeName() string { return "bytearray" }

func (b *ByteArray) Bytes() []byte { return b.data }

func (b *ByteArray) Append(p ...byte) { b.data = append(b.data, p...) }

// List is a mutable host sequence.
type List struct {
	items []Object
}

func NewList(items ...Object) *List {
	return &List{items: items}
}

func (*List) TypeName() string { return "list" }

func (l *List) Len() (int, error) { return len(l.items), nil }

func (l *List) GetItem(i int) (Object, error) {
	if i < 0 || i >= len(l.items) {
		return nil, NewIndexError("list index out of range")
	}
	return l.items[i], nil
}

func (l *List) Append(o Object) { l.items = append(l.items, o) }

// Items returns the backing slice; callers must not modify it.
func (l *List) Items() []Object { return l.items }

// Tuple is an immutable host sequence.
type Tuple struct {
	items []Object
}

func NewTuple(items ...Object) *Tuple {
	return &Tuple{items: items}
}

func (*Tuple) TypeName() string { return "tuple" }

func (t *Tuple) Len() (int, error) { return len(t.items), nil }

func (t *Tuple) GetItem(i int) (Object, error) {
	if i < 0 || i >= len(t.items) {
		return nil, NewIndexError("tuple index out of range")
	}
	return t.items[i], nil
}

func (t *Tuple) Items() []Object { return t.items }
