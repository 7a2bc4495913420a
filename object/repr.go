package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Repr renders o in host literal syntax.
func Repr(o Object) string {
	var b strings.Builder
	writeRepr(&b, o)
	return b.String()
}

func writeRepr(b *strings.Builder, o Object) {
	switch v := o.(type) {
	case nil, NoneType:
		b.WriteString("None")
	case Bool:
		if v {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case *Int:
		b.WriteString(v.String())
	case Float:
		b.WriteString(FormatFloat(float64(v)))
	case Str:
		writeStrRepr(b, string(v))
	case Bytes:
		writeBytesRepr(b, v)
	case *ByteArray:
		b.WriteString("bytearray(")
		writeBytesRepr(b, v.data)
		b.WriteByte(')')
	case *List:
		b.WriteByte('[')
		writeItems(b, v.items)
		b.WriteByte(']')
	case *Tuple:
		b.WriteByte('(')
		writeItems(b, v.items)
		if len(v.items) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	case *Dict:
		b.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, k)
			b.WriteString(": ")
			writeRepr(b, v.values[i])
		}
		b.WriteByte('}')
	case *Set:
		if len(v.members) == 0 {
			b.WriteString("set()")
			return
		}
		b.WriteByte('{')
		writeItems(b, v.members)
		b.WriteByte('}')
	case *FrozenSet:
		if len(v.members) == 0 {
			b.WriteString("frozenset()")
			return
		}
		b.WriteString("frozenset({")
		writeItems(b, v.members)
		b.WriteString("})")
	case fmt.Stringer:
		b.WriteString(v.String())
	default:
		b.WriteString("<" + o.TypeName() + " object>")
	}
}

func writeItems(b *strings.Builder, items []Object) {
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeRepr(b, item)
	}
}

// FormatFloat formats f the way the host prints floats: shortest
// round-trip digits, always with a fractional part or an exponent.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func writeStrRepr(b *strings.Builder, s string) {
	quote := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(b, `\x%02x`, r)
		case !unicode.IsPrint(r) && r > 0x7f:
			if r > 0xffff {
				fmt.Fprintf(b, `\U%08x`, r)
			} else {
				fmt.Fprintf(b, `\u%04x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
}

func writeBytesRepr(b *strings.Builder, data []byte) {
	quote := byte('\'')
	if strings.IndexByte(string(data), '\'') >= 0 && strings.IndexByte(string(data), '"') < 0 {
		quote = '"'
	}
	b.WriteString("b")
	b.WriteByte(quote)
	for _, c := range data {
		switch {
		case c == quote || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c >= 0x7f:
			fmt.Fprintf(b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
}
