// Package errors provides the structured error type for hostbridge.
//
// Errors are categorized by Phase (encode, decode, transcode) and by a
// closed set of Kinds. Every kind surfaces in the host as one exception
// category: host errors re-raise the original exception, the length
// kinds become ValueError and everything else becomes TypeError.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindIncorrectSequenceLength).
//		Path("pairs", "[2]").
//		Lengths(2, 3).
//		Build()
//
// Or use the per-kind constructors:
//
//	err := errors.DictKeyNotString(errors.PhaseDecode)
//	err := errors.UnsupportedType(errors.PhaseDecode, "set_iterator")
//
// While an error unwinds through nested containers, AtPath records where
// it happened, so the final message reads "root_map.nested_1.nested_key:
// unexpected type: ...". ToException turns any error into the exception
// raised in the host.
package errors
