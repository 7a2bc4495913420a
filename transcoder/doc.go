// Package transcoder converts between Go values and host objects.
//
// Encoding walks a Go value with the serde reflect driver and builds host
// objects through a Strategy; decoding walks a host object with a Decoder
// that answers the serde visitor protocol:
//
//	┌──────────────────────────────────────────────────────────────┐
//	│ Go value ──Serialize──▶ Encoder ──Strategy──▶ host objects   │
//	│ Go value ◀──Deserialize── Decoder ◀────────── host objects   │
//	└──────────────────────────────────────────────────────────────┘
//
// # Shapes
//
//	Go                          host
//	──────────────────────────────────────────────
//	bool                        bool
//	intN, uintN, *big.Int       int
//	floatN                      float
//	string, serde.Char          str
//	[]byte                      bytes
//	nil pointer, serde.Unit     None
//	[]T                         list
//	[N]T, tuple struct          tuple
//	map[K]V, serde.Map          dict
//	struct                      dict keyed by field name
//	unit variant                "Variant"
//	other variants              {"Variant": payload}
//
// Decoding is duck typed: any sequence decodes into a slice, sets and
// frozensets included, and any mapping decodes into a map or struct.
// Integers are handed to visitors at the narrowest width that holds them,
// so decoding into any yields int64, uint64 or *big.Int as needed.
//
// # Strategies
//
// A Strategy picks the containers the Encoder creates. DefaultStrategy
// builds list, tuple and dict; TypeTagged adds the Go type name to every
// struct mapping and leaves enum wrappers single-key:
//
//	obj, err := transcoder.EncodeWith(transcoder.Strategy{
//		NamedMap: transcoder.TypeTagged{Key: "__type__"},
//	}, point)
//
// # Errors
//
// Every failure is an *errors.Error carrying the path to the offending
// value. errors.ToException maps it onto the exception the host raises.
//
// # Formats
//
// ToJSON, ToYAML and ToCBOR render host objects in other formats, and the
// From functions read them back. Value wraps a host object so it can sit in
// Go structs that are encoded by any of these paths.
package transcoder
