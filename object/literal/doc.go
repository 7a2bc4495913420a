// Package literal parses host literal syntax into objects.
//
// It understands the literal subset of the host language: None, True,
// False, integers of any size, floats, quoted strings and bytes, lists,
// tuples, dicts and sets, plus the constructor calls set(), frozenset(),
// bytearray(), tuple(), list() and float() for values without a literal
// spelling:
//
//	obj, err := literal.Parse(`{"a": [1, 2.5, (None, b"\x00")], "s": frozenset({1})}`)
package literal
