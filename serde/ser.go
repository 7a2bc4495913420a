package serde

import "math/big"

// Serializer turns the data model into an output of type T. Lengths are
// -1 when unknown.
type Serializer[T any] interface {
	SerializeBool(v bool) (T, error)
	SerializeInt8(v int8) (T, error)
	SerializeInt16(v int16) (T, error)
	SerializeInt32(v int32) (T, error)
	SerializeInt64(v int64) (T, error)
	SerializeUint8(v uint8) (T, error)
	SerializeUint16(v uint16) (T, error)
	SerializeUint32(v uint32) (T, error)
	SerializeUint64(v uint64) (T, error)
	// SerializeBigInt carries 128-bit and wider integers.
	SerializeBigInt(v *big.Int) (T, error)
	SerializeFloat32(v float32) (T, error)
	SerializeFloat64(v float64) (T, error)
	SerializeChar(v rune) (T, error)
	SerializeStr(v string) (T, error)
	SerializeBytes(v []byte) (T, error)
	SerializeNone() (T, error)
	SerializeSome(v any) (T, error)
	SerializeUnit() (T, error)
	SerializeUnitStruct(name string) (T, error)
	SerializeUnitVariant(name string, index int, variant string) (T, error)
	SerializeNewtypeStruct(name string, v any) (T, error)
	SerializeNewtypeVariant(name string, index int, variant string, v any) (T, error)
	SerializeSeq(length int) (SerializeSeq[T], error)
	SerializeTuple(length int) (SerializeSeq[T], error)
	SerializeTupleStruct(name string, length int) (SerializeSeq[T], error)
	SerializeTupleVariant(name string, index int, variant string, length int) (SerializeSeq[T], error)
	SerializeMap(length int) (SerializeMap[T], error)
	SerializeStruct(name string, length int) (SerializeStruct[T], error)
	SerializeStructVariant(name string, index int, variant string, length int) (SerializeStruct[T], error)
}

// SerializeSeq builds sequences, tuples, tuple structs and tuple variants.
type SerializeSeq[T any] interface {
	SerializeElement(v any) error
	End() (T, error)
}

// SerializeMap builds maps. Every SerializeKey is followed by exactly one
// SerializeValue.
type SerializeMap[T any] interface {
	SerializeKey(k any) error
	SerializeValue(v any) error
	End() (T, error)
}

// SerializeStruct builds structs and struct variants.
type SerializeStruct[T any] interface {
	SerializeField(name string, v any) error
	End() (T, error)
}

// Marshaler is implemented by types that serialize as another value.
type Marshaler interface {
	MarshalSerde() (any, error)
}

// Source is implemented by values that serialize by replaying a
// Deserializer into the target Serializer.
type Source interface {
	Deserializer() Deserializer
}

// Map is an ordered map. It serializes as a map with its entries in
// slice order.
type Map []Entry

type Entry struct {
	Key   any
	Value any
}
