package serde

// Unit is the empty value. As an enum variant payload (*Unit) it marks a
// unit variant.
type Unit struct{}

// TupleStruct, embedded in a struct, makes the struct serialize as a tuple
// struct. A tuple struct with exactly one field is a newtype struct.
//
//	type Point struct {
//		serde.TupleStruct
//		X, Y int
//	}
type TupleStruct struct{}

// Enum, embedded in a struct, makes the struct a tagged union. Each other
// exported field is a variant and must be a pointer; exactly one is set.
// The payload type selects the variant kind: *Unit for unit variants, a
// tuple struct for tuple variants, a plain struct for struct variants and
// any other type for newtype variants.
//
//	type Shape struct {
//		serde.Enum
//		Empty  *serde.Unit
//		Circle *float64
//		Rect   *Rect
//	}
type Enum struct{}

// Char is a single Unicode scalar value.
type Char rune
