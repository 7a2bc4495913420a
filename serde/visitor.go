package serde

import (
	"fmt"
	"math/big"
)

// BaseVisitor rejects every input with an invalid type error. Embed it and
// override the Visit methods the visitor accepts.
type BaseVisitor struct {
	Expect string
}

func (b BaseVisitor) Expecting() string { return b.Expect }

func (b BaseVisitor) invalid(unexpected string) error {
	return InvalidType(unexpected, b.Expect)
}

func (b BaseVisitor) VisitBool(v bool) error        { return b.invalid(unexpectedBool(v)) }
func (b BaseVisitor) VisitInt8(v int8) error        { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitInt16(v int16) error      { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitInt32(v int32) error      { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitInt64(v int64) error      { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitInt128(v *big.Int) error  { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitUint8(v uint8) error      { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitUint16(v uint16) error    { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitUint32(v uint32) error    { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitUint64(v uint64) error    { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitUint128(v *big.Int) error { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitBigInt(v *big.Int) error  { return b.invalid(unexpectedInt(v)) }
func (b BaseVisitor) VisitFloat32(v float32) error  { return b.invalid(unexpectedFloat(v)) }
func (b BaseVisitor) VisitFloat64(v float64) error  { return b.invalid(unexpectedFloat(v)) }
func (b BaseVisitor) VisitChar(v rune) error        { return b.invalid(fmt.Sprintf("char %q", v)) }
func (b BaseVisitor) VisitStr(v string) error       { return b.invalid(unexpectedStr(v)) }
func (b BaseVisitor) VisitBytes([]byte) error       { return b.invalid("byte array") }
func (b BaseVisitor) VisitNone() error              { return b.invalid("Option value") }
func (b BaseVisitor) VisitSome(Deserializer) error  { return b.invalid("Option value") }
func (b BaseVisitor) VisitUnit() error              { return b.invalid("unit value") }
func (b BaseVisitor) VisitNewtypeStruct(Deserializer) error {
	return b.invalid("newtype struct")
}
func (b BaseVisitor) VisitSeq(SeqAccess) error   { return b.invalid("sequence") }
func (b BaseVisitor) VisitMap(MapAccess) error   { return b.invalid("map") }
func (b BaseVisitor) VisitEnum(EnumAccess) error { return b.invalid("enum") }

// IgnoredAny consumes and discards any value.
type IgnoredAny struct {
	BaseVisitor
}

func (IgnoredAny) VisitBool(bool) error           { return nil }
func (IgnoredAny) VisitInt8(int8) error           { return nil }
func (IgnoredAny) VisitInt16(int16) error         { return nil }
func (IgnoredAny) VisitInt32(int32) error         { return nil }
func (IgnoredAny) VisitInt64(int64) error         { return nil }
func (IgnoredAny) VisitInt128(*big.Int) error     { return nil }
func (IgnoredAny) VisitUint8(uint8) error         { return nil }
func (IgnoredAny) VisitUint16(uint16) error       { return nil }
func (IgnoredAny) VisitUint32(uint32) error       { return nil }
func (IgnoredAny) VisitUint64(uint64) error       { return nil }
func (IgnoredAny) VisitUint128(*big.Int) error    { return nil }
func (IgnoredAny) VisitBigInt(*big.Int) error     { return nil }
func (IgnoredAny) VisitFloat32(float32) error     { return nil }
func (IgnoredAny) VisitFloat64(float64) error     { return nil }
func (IgnoredAny) VisitChar(rune) error           { return nil }
func (IgnoredAny) VisitStr(string) error          { return nil }
func (IgnoredAny) VisitBytes([]byte) error        { return nil }
func (IgnoredAny) VisitNone() error               { return nil }
func (IgnoredAny) VisitUnit() error               { return nil }
func (i IgnoredAny) VisitSome(d Deserializer) error {
	return d.DeserializeIgnoredAny(i)
}
func (i IgnoredAny) VisitNewtypeStruct(d Deserializer) error {
	return d.DeserializeIgnoredAny(i)
}

func (i IgnoredAny) VisitSeq(seq SeqAccess) error {
	for {
		more, err := seq.NextElement(ignoreSeed)
		if err != nil || !more {
			return err
		}
	}
}

func (i IgnoredAny) VisitMap(m MapAccess) error {
	for {
		more, err := m.NextKey(ignoreSeed)
		if err != nil || !more {
			return err
		}
		if err := m.NextValue(ignoreSeed); err != nil {
			return err
		}
	}
}

func (i IgnoredAny) VisitEnum(e EnumAccess) error {
	va, err := e.Variant(ignoreSeed)
	if err != nil {
		return err
	}
	return va.NewtypeVariant(ignoreSeed)
}

var ignoreSeed = SeedFunc(func(d Deserializer) error {
	return d.DeserializeIgnoredAny(IgnoredAny{BaseVisitor{Expect: "anything"}})
})
