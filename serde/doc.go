// Package serde is a format-agnostic data model for moving Go values in
// and out of foreign representations.
//
// A Serializer receives one call per value in the data model (booleans,
// integers of every width, floats, chars, strings, bytes, options, unit,
// sequences, tuples, maps, structs and enum variants) and produces an
// output of type T. Serialize drives any Serializer from a Go value using
// reflection.
//
// A Deserializer is the mirror image: it is told what the caller expects
// (DeserializeStr, DeserializeStruct, ...) or asked to describe itself
// (DeserializeAny), and answers by calling back into a Visitor. Deserialize
// fills a Go value from any Deserializer.
//
// Transcode connects the two directly, so a value can move between formats
// without materializing an intermediate tree.
//
// Go types map onto the data model as follows:
//
//	bool, intN, uintN, floatN      scalars of the same width
//	int, uint                      i64, u64
//	*big.Int, big.Int              integers of any size
//	Char                           char
//	string, []byte                 str, bytes
//	*T                             option
//	Unit                           unit
//	[]T                            seq
//	[N]T                           tuple of length N
//	map[K]V, Map                   map (Map keeps insertion order)
//	struct                         struct; zero fields is a unit struct
//	struct embedding TupleStruct   tuple struct, or newtype with one field
//	struct embedding Enum          enum
//
// Struct fields use the "serde" tag, falling back to "json", for the field
// name and the omitempty option.
package serde
