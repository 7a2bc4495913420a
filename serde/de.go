package serde

import "math/big"

// Deserializer drives a Visitor from some input. The Deserialize* method
// called is a hint about the expected shape; self-describing inputs may
// call whichever Visit method matches the data.
type Deserializer interface {
	DeserializeAny(v Visitor) error
	DeserializeBool(v Visitor) error
	DeserializeInt8(v Visitor) error
	DeserializeInt16(v Visitor) error
	DeserializeInt32(v Visitor) error
	DeserializeInt64(v Visitor) error
	DeserializeUint8(v Visitor) error
	DeserializeUint16(v Visitor) error
	DeserializeUint32(v Visitor) error
	DeserializeUint64(v Visitor) error
	DeserializeFloat32(v Visitor) error
	DeserializeFloat64(v Visitor) error
	DeserializeChar(v Visitor) error
	DeserializeStr(v Visitor) error
	DeserializeBytes(v Visitor) error
	DeserializeOption(v Visitor) error
	DeserializeUnit(v Visitor) error
	DeserializeUnitStruct(name string, v Visitor) error
	DeserializeNewtypeStruct(name string, v Visitor) error
	DeserializeSeq(v Visitor) error
	DeserializeTuple(length int, v Visitor) error
	DeserializeTupleStruct(name string, length int, v Visitor) error
	DeserializeMap(v Visitor) error
	DeserializeStruct(name string, fields []string, v Visitor) error
	DeserializeEnum(name string, variants []string, v Visitor) error
	DeserializeIdentifier(v Visitor) error
	DeserializeIgnoredAny(v Visitor) error
}

// Visitor receives exactly one value from a Deserializer and stores it.
type Visitor interface {
	// Expecting describes what the visitor accepts, for error messages.
	Expecting() string

	VisitBool(v bool) error
	VisitInt8(v int8) error
	VisitInt16(v int16) error
	VisitInt32(v int32) error
	VisitInt64(v int64) error
	VisitInt128(v *big.Int) error
	VisitUint8(v uint8) error
	VisitUint16(v uint16) error
	VisitUint32(v uint32) error
	VisitUint64(v uint64) error
	VisitUint128(v *big.Int) error
	// VisitBigInt receives integers wider than 128 bits.
	VisitBigInt(v *big.Int) error
	VisitFloat32(v float32) error
	VisitFloat64(v float64) error
	VisitChar(v rune) error
	VisitStr(v string) error
	VisitBytes(v []byte) error
	VisitNone() error
	VisitSome(d Deserializer) error
	VisitUnit() error
	VisitNewtypeStruct(d Deserializer) error
	VisitSeq(seq SeqAccess) error
	VisitMap(m MapAccess) error
	VisitEnum(e EnumAccess) error
}

// Seed deserializes one value with state supplied by the caller.
type Seed interface {
	DeserializeSeed(d Deserializer) error
}

// SeedFunc adapts a function to a Seed.
type SeedFunc func(d Deserializer) error

func (f SeedFunc) DeserializeSeed(d Deserializer) error { return f(d) }

// SeqAccess yields sequence elements one at a time.
type SeqAccess interface {
	// NextElement returns false once the sequence is exhausted.
	NextElement(seed Seed) (bool, error)
	SizeHint() (int, bool)
}

// MapAccess yields entries as alternating key and value reads.
type MapAccess interface {
	NextKey(seed Seed) (bool, error)
	NextValue(seed Seed) error
	SizeHint() (int, bool)
}

// EnumAccess identifies the variant of an enum.
type EnumAccess interface {
	Variant(seed Seed) (VariantAccess, error)
}

// VariantAccess reads the payload of the identified variant.
type VariantAccess interface {
	UnitVariant() error
	NewtypeVariant(seed Seed) error
	TupleVariant(length int, v Visitor) error
	StructVariant(fields []string, v Visitor) error
}

// Unmarshaler is implemented by types that deserialize themselves.
type Unmarshaler interface {
	UnmarshalSerde(d Deserializer) error
}
