// Package object models the dynamically-typed host runtime that values are
// bridged to and from.
//
// Every host value is an Object. The built-in kinds (None, Bool, *Int,
// Float, Str, Bytes, *ByteArray, *List, *Tuple, *Dict, *Set, *FrozenSet)
// are concrete Go types; user-defined host containers take part through
// the Sequence, Mapping and Iterable protocols, the same way duck typing
// works in the host language:
//
//	d := object.NewDict()
//	_ = d.SetItem(object.Str("a"), object.NewInt(1))
//	object.Classify(d) // object.KindDict
//	object.Repr(d)     // {'a': 1}
//
// Operations that the host can refuse (hashing an unhashable key, reading
// past the end of a sequence, converting an oversized int) return an
// *Exception carrying the host exception type.
package object
