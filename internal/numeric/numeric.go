package numeric

import "math/big"

// Width is a fixed integer width chosen to carry a value.
type Width uint8

const (
	U8 Width = iota
	U16
	U32
	U64
	U128
	I8
	I16
	I32
	I64
	I128
	// Big marks values that do not fit any fixed width.
	Big
)

var widthNames = [...]string{
	U8:   "u8",
	U16:  "u16",
	U32:  "u32",
	U64:  "u64",
	U128: "u128",
	I8:   "i8",
	I16:  "i16",
	I32:  "i32",
	I64:  "i64",
	I128: "i128",
	Big:  "bigint",
}

func (w Width) String() string {
	if int(w) < len(widthNames) {
		return widthNames[w]
	}
	return "unknown"
}

// Bits returns the width in bits, or 0 for Big.
func (w Width) Bits() int {
	switch w {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32:
		return 32
	case U64, I64:
		return 64
	case U128, I128:
		return 128
	}
	return 0
}

func (w Width) Signed() bool {
	return w >= I8 && w <= I128
}

// Narrow picks the smallest width that holds n: unsigned widths for
// non-negative values, signed widths for negative ones.
func Narrow(n *big.Int) Width {
	bits := n.BitLen()
	if n.Sign() >= 0 {
		switch {
		case bits <= 8:
			return U8
		case bits <= 16:
			return U16
		case bits <= 32:
			return U32
		case bits <= 64:
			return U64
		case bits <= 128:
			return U128
		}
		return Big
	}
	for _, w := range [...]Width{I8, I16, I32, I64, I128} {
		if FitsInt(n, w.Bits()) {
			return w
		}
	}
	return Big
}

// FitsInt reports whether n is representable as a signed integer of the
// given bit size.
func FitsInt(n *big.Int, bits int) bool {
	if n.Sign() >= 0 {
		return n.BitLen() < bits
	}
	// -2^(bits-1) is the most negative value: |n|-1 must fit in bits-1.
	m := new(big.Int).Neg(n)
	m.Sub(m, big.NewInt(1))
	return m.BitLen() < bits
}

// FitsUint reports whether n is representable as an unsigned integer of
// the given bit size.
func FitsUint(n *big.Int, bits int) bool {
	return n.Sign() >= 0 && n.BitLen() <= bits
}
