package serde

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"unicode/utf8"
)

// Deserialize reads a value from d into the value pointed to by v.
func Deserialize(d Deserializer, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return Custom("Deserialize requires a non-nil pointer, got %T", v)
	}
	return deserializeValue(d, rv.Elem())
}

// Into returns a seed that deserializes into the value pointed to by v.
func Into(v any) Seed {
	return SeedFunc(func(d Deserializer) error { return Deserialize(d, v) })
}

func valueSeed(rv reflect.Value) Seed {
	return SeedFunc(func(d Deserializer) error { return deserializeValue(d, rv) })
}

func deserializeValue(d Deserializer, rv reflect.Value) error {
	ct, err := compile(rv.Type())
	if err != nil {
		return err
	}

	if ct.shape == shapeExtension {
		return deserializeExtension(d, ct, rv)
	}
	if ct.unmarshaler && rv.CanAddr() {
		return rv.Addr().Interface().(Unmarshaler).UnmarshalSerde(d)
	}

	switch ct.shape {
	case shapeBool:
		return d.DeserializeBool(&boolVisitor{BaseVisitor{"a boolean"}, rv})
	case shapeInt8:
		return d.DeserializeInt8(newIntVisitor(rv))
	case shapeInt16:
		return d.DeserializeInt16(newIntVisitor(rv))
	case shapeInt32:
		return d.DeserializeInt32(newIntVisitor(rv))
	case shapeInt64:
		return d.DeserializeInt64(newIntVisitor(rv))
	case shapeUint8:
		return d.DeserializeUint8(newIntVisitor(rv))
	case shapeUint16:
		return d.DeserializeUint16(newIntVisitor(rv))
	case shapeUint32:
		return d.DeserializeUint32(newIntVisitor(rv))
	case shapeUint64:
		return d.DeserializeUint64(newIntVisitor(rv))
	case shapeBigInt:
		return d.DeserializeAny(&bigIntVisitor{BaseVisitor{"an integer"}, rv})
	case shapeFloat32:
		return d.DeserializeFloat32(&floatVisitor{BaseVisitor{"f32"}, rv})
	case shapeFloat64:
		return d.DeserializeFloat64(&floatVisitor{BaseVisitor{"f64"}, rv})
	case shapeChar:
		return d.DeserializeChar(&charVisitor{BaseVisitor{"a character"}, rv})
	case shapeString:
		return d.DeserializeStr(&stringVisitor{BaseVisitor{"a string"}, rv})
	case shapeBytes:
		return d.DeserializeBytes(&bytesVisitor{BaseVisitor{"a byte array"}, rv})
	case shapeOption:
		return d.DeserializeOption(&optionVisitor{BaseVisitor{"option"}, rv})
	case shapeUnit:
		return d.DeserializeUnit(&unitVisitor{BaseVisitor{"unit"}})
	case shapeUnitStruct:
		return d.DeserializeUnitStruct(ct.name, &unitVisitor{BaseVisitor{"unit struct " + ct.name}})
	case shapeSeq:
		return d.DeserializeSeq(&seqVisitor{BaseVisitor{"a sequence"}, rv})
	case shapeTuple:
		return d.DeserializeTuple(rv.Len(), &arrayVisitor{
			BaseVisitor{fmt.Sprintf("an array of length %d", rv.Len())}, rv,
		})
	case shapeMap, shapeOrderedMap:
		return d.DeserializeMap(&mapVisitor{BaseVisitor{"a map"}, rv})
	case shapeStruct:
		return d.DeserializeStruct(ct.name, ct.fieldNames, &structVisitor{BaseVisitor{"struct " + ct.name}, ct, rv})
	case shapeNewtype:
		return d.DeserializeNewtypeStruct(ct.name, &newtypeVisitor{
			BaseVisitor{"tuple struct " + ct.name}, rv.Field(ct.fields[0].index),
		})
	case shapeTupleStruct:
		return d.DeserializeTupleStruct(ct.name, len(ct.fields), &tupleStructVisitor{
			BaseVisitor{"tuple struct " + ct.name}, ct, rv,
		})
	case shapeEnum:
		return d.DeserializeEnum(ct.name, ct.variantNames, &enumVisitor{BaseVisitor{"enum " + ct.name}, ct, rv})
	case shapeInterface:
		return deserializeInterface(d, rv)
	}
	return Custom("unsupported Go type %s", rv.Type())
}

func deserializeExtension(d Deserializer, ct *compiledType, rv reflect.Value) error {
	v, err := ct.ext.Deserialize(d)
	if err != nil {
		return err
	}
	if v == nil {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	xv := reflect.ValueOf(v)
	if !xv.Type().AssignableTo(rv.Type()) {
		return Custom("cannot assign %s to %s", xv.Type(), rv.Type())
	}
	rv.Set(xv)
	return nil
}

func deserializeInterface(d Deserializer, rv reflect.Value) error {
	if rv.NumMethod() == 0 {
		var out any
		if err := d.DeserializeAny(&anyVisitor{BaseVisitor{"any value"}, &out}); err != nil {
			return err
		}
		if out == nil {
			rv.Set(reflect.Zero(rv.Type()))
		} else {
			rv.Set(reflect.ValueOf(out))
		}
		return nil
	}
	// A non-empty interface can only be filled through the pointer it holds.
	if !rv.IsNil() && rv.Elem().Kind() == reflect.Ptr && !rv.Elem().IsNil() {
		return deserializeValue(d, rv.Elem().Elem())
	}
	return Custom("cannot deserialize into interface %s", rv.Type())
}

type boolVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *boolVisitor) VisitBool(b bool) error {
	v.rv.SetBool(b)
	return nil
}

// intVisitor accepts any integer and range checks it against the target.
type intVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func newIntVisitor(rv reflect.Value) *intVisitor {
	return &intVisitor{BaseVisitor{rv.Type().Kind().String()}, rv}
}

func (v *intVisitor) VisitInt8(n int8) error       { return v.setBig(big.NewInt(int64(n))) }
func (v *intVisitor) VisitInt16(n int16) error     { return v.setBig(big.NewInt(int64(n))) }
func (v *intVisitor) VisitInt32(n int32) error     { return v.setBig(big.NewInt(int64(n))) }
func (v *intVisitor) VisitInt64(n int64) error     { return v.setBig(big.NewInt(n)) }
func (v *intVisitor) VisitInt128(n *big.Int) error { return v.setBig(n) }
func (v *intVisitor) VisitUint8(n uint8) error     { return v.setBig(new(big.Int).SetUint64(uint64(n))) }
func (v *intVisitor) VisitUint16(n uint16) error   { return v.setBig(new(big.Int).SetUint64(uint64(n))) }
func (v *intVisitor) VisitUint32(n uint32) error   { return v.setBig(new(big.Int).SetUint64(uint64(n))) }
func (v *intVisitor) VisitUint64(n uint64) error   { return v.setBig(new(big.Int).SetUint64(n)) }
func (v *intVisitor) VisitUint128(n *big.Int) error {
	return v.setBig(n)
}
func (v *intVisitor) VisitBigInt(n *big.Int) error { return v.setBig(n) }

func (v *intVisitor) setBig(n *big.Int) error {
	switch v.rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !n.IsInt64() || v.rv.OverflowInt(n.Int64()) {
			return InvalidValue(unexpectedInt(n), v.Expect)
		}
		v.rv.SetInt(n.Int64())
	default:
		if !n.IsUint64() || v.rv.OverflowUint(n.Uint64()) {
			return InvalidValue(unexpectedInt(n), v.Expect)
		}
		v.rv.SetUint(n.Uint64())
	}
	return nil
}

type bigIntVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *bigIntVisitor) VisitInt8(n int8) error       { return v.set(big.NewInt(int64(n))) }
func (v *bigIntVisitor) VisitInt16(n int16) error     { return v.set(big.NewInt(int64(n))) }
func (v *bigIntVisitor) VisitInt32(n int32) error     { return v.set(big.NewInt(int64(n))) }
func (v *bigIntVisitor) VisitInt64(n int64) error     { return v.set(big.NewInt(n)) }
func (v *bigIntVisitor) VisitInt128(n *big.Int) error { return v.set(n) }
func (v *bigIntVisitor) VisitUint8(n uint8) error     { return v.set(new(big.Int).SetUint64(uint64(n))) }
func (v *bigIntVisitor) VisitUint16(n uint16) error   { return v.set(new(big.Int).SetUint64(uint64(n))) }
func (v *bigIntVisitor) VisitUint32(n uint32) error   { return v.set(new(big.Int).SetUint64(uint64(n))) }
func (v *bigIntVisitor) VisitUint64(n uint64) error   { return v.set(new(big.Int).SetUint64(n)) }
func (v *bigIntVisitor) VisitUint128(n *big.Int) error {
	return v.set(n)
}
func (v *bigIntVisitor) VisitBigInt(n *big.Int) error { return v.set(n) }

// VisitNone leaves a *big.Int target nil.
func (v *bigIntVisitor) VisitNone() error {
	if v.rv.Kind() != reflect.Ptr {
		return v.BaseVisitor.VisitNone()
	}
	v.rv.Set(reflect.Zero(v.rv.Type()))
	return nil
}

func (v *bigIntVisitor) VisitUnit() error { return v.VisitNone() }

func (v *bigIntVisitor) set(n *big.Int) error {
	c := new(big.Int).Set(n)
	if v.rv.Kind() == reflect.Ptr {
		v.rv.Set(reflect.ValueOf(c))
	} else {
		v.rv.Set(reflect.ValueOf(*c))
	}
	return nil
}

type floatVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *floatVisitor) VisitFloat32(f float32) error { return v.set(float64(f)) }
func (v *floatVisitor) VisitFloat64(f float64) error { return v.set(f) }
func (v *floatVisitor) VisitInt8(n int8) error       { return v.set(float64(n)) }
func (v *floatVisitor) VisitInt16(n int16) error     { return v.set(float64(n)) }
func (v *floatVisitor) VisitInt32(n int32) error     { return v.set(float64(n)) }
func (v *floatVisitor) VisitInt64(n int64) error     { return v.set(float64(n)) }
func (v *floatVisitor) VisitUint8(n uint8) error     { return v.set(float64(n)) }
func (v *floatVisitor) VisitUint16(n uint16) error   { return v.set(float64(n)) }
func (v *floatVisitor) VisitUint32(n uint32) error   { return v.set(float64(n)) }
func (v *floatVisitor) VisitUint64(n uint64) error   { return v.set(float64(n)) }

func (v *floatVisitor) set(f float64) error {
	if v.rv.Kind() == reflect.Float32 && !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return InvalidValue(unexpectedFloat(f), v.Expect)
	}
	v.rv.SetFloat(f)
	return nil
}

type charVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *charVisitor) VisitChar(r rune) error {
	v.rv.SetInt(int64(r))
	return nil
}

func (v *charVisitor) VisitStr(s string) error {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return InvalidValue(unexpectedStr(s), v.Expect)
	}
	return v.VisitChar(r)
}

type stringVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *stringVisitor) VisitStr(s string) error {
	v.rv.SetString(s)
	return nil
}

func (v *stringVisitor) VisitChar(r rune) error { return v.VisitStr(string(r)) }

func (v *stringVisitor) VisitBytes(b []byte) error {
	if !utf8.Valid(b) {
		return InvalidValue("byte array", v.Expect)
	}
	return v.VisitStr(string(b))
}

type bytesVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *bytesVisitor) VisitBytes(b []byte) error {
	v.rv.SetBytes(append([]byte{}, b...))
	return nil
}

func (v *bytesVisitor) VisitStr(s string) error { return v.VisitBytes([]byte(s)) }

func (v *bytesVisitor) VisitSeq(seq SeqAccess) error {
	out := []byte{}
	for {
		var b uint8
		more, err := seq.NextElement(Into(&b))
		if err != nil {
			return err
		}
		if !more {
			break
		}
		out = append(out, b)
	}
	v.rv.SetBytes(out)
	return nil
}

type optionVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *optionVisitor) VisitNone() error {
	v.rv.Set(reflect.Zero(v.rv.Type()))
	return nil
}

func (v *optionVisitor) VisitUnit() error { return v.VisitNone() }

func (v *optionVisitor) VisitSome(d Deserializer) error {
	p := reflect.New(v.rv.Type().Elem())
	if err := deserializeValue(d, p.Elem()); err != nil {
		return err
	}
	v.rv.Set(p)
	return nil
}

type unitVisitor struct {
	BaseVisitor
}

func (unitVisitor) VisitUnit() error { return nil }

type seqVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *seqVisitor) VisitSeq(seq SeqAccess) error {
	n, _ := seq.SizeHint()
	out := reflect.MakeSlice(v.rv.Type(), 0, n)
	for {
		elem := reflect.New(v.rv.Type().Elem()).Elem()
		more, err := seq.NextElement(valueSeed(elem))
		if err != nil {
			return err
		}
		if !more {
			break
		}
		out = reflect.Append(out, elem)
	}
	v.rv.Set(out)
	return nil
}

type arrayVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *arrayVisitor) VisitSeq(seq SeqAccess) error {
	n := v.rv.Len()
	for i := 0; i < n; i++ {
		more, err := seq.NextElement(valueSeed(v.rv.Index(i)))
		if err != nil {
			return err
		}
		if !more {
			return InvalidLength(i, v.Expect)
		}
	}
	return expectEnd(seq, n, v.Expect)
}

// expectEnd fails if seq has elements beyond the n already read.
func expectEnd(seq SeqAccess, n int, expected string) error {
	extra := 0
	for {
		more, err := seq.NextElement(ignoreSeed)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		extra++
	}
	if extra > 0 {
		return InvalidLength(n+extra, expected)
	}
	return nil
}

type mapVisitor struct {
	BaseVisitor
	rv reflect.Value
}

func (v *mapVisitor) VisitMap(m MapAccess) error {
	if v.rv.Type() == orderedMapType {
		return v.visitOrdered(m)
	}
	t := v.rv.Type()
	if v.rv.IsNil() {
		n, _ := m.SizeHint()
		v.rv.Set(reflect.MakeMapWithSize(t, n))
	}
	for {
		key := reflect.New(t.Key()).Elem()
		more, err := m.NextKey(valueSeed(key))
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		val := reflect.New(t.Elem()).Elem()
		if err := m.NextValue(valueSeed(val)); err != nil {
			return err
		}
		v.rv.SetMapIndex(key, val)
	}
}

func (v *mapVisitor) visitOrdered(m MapAccess) error {
	out := Map{}
	for {
		var e Entry
		more, err := m.NextKey(Into(&e.Key))
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if err := m.NextValue(Into(&e.Value)); err != nil {
			return err
		}
		out = append(out, e)
	}
	v.rv.Set(reflect.ValueOf(out))
	return nil
}

type structVisitor struct {
	BaseVisitor
	ct *compiledType
	rv reflect.Value
}

func (v *structVisitor) VisitMap(m MapAccess) error {
	seen := make([]bool, len(v.ct.fields))
	for {
		var name string
		more, err := m.NextKey(SeedFunc(func(d Deserializer) error {
			return d.DeserializeIdentifier(&identVisitor{BaseVisitor{"field identifier"}, &name})
		}))
		if err != nil {
			return err
		}
		if !more {
			break
		}
		i := v.ct.findField(name)
		if i < 0 {
			if err := m.NextValue(ignoreSeed); err != nil {
				return err
			}
			continue
		}
		if seen[i] {
			return DuplicateField(v.ct.fields[i].name)
		}
		seen[i] = true
		if err := m.NextValue(valueSeed(v.rv.Field(v.ct.fields[i].index))); err != nil {
			return err
		}
	}
	for i, f := range v.ct.fields {
		if seen[i] {
			continue
		}
		if !f.optional && !f.omitEmpty {
			return MissingField(f.name)
		}
		v.rv.Field(f.index).Set(reflect.Zero(v.rv.Field(f.index).Type()))
	}
	return nil
}

// VisitSeq fills fields positionally.
func (v *structVisitor) VisitSeq(seq SeqAccess) error {
	for i, f := range v.ct.fields {
		more, err := seq.NextElement(valueSeed(v.rv.Field(f.index)))
		if err != nil {
			return err
		}
		if !more {
			return InvalidLength(i, fmt.Sprintf("%s with %d elements", v.Expect, len(v.ct.fields)))
		}
	}
	return expectEnd(seq, len(v.ct.fields), v.Expect)
}

type tupleStructVisitor struct {
	BaseVisitor
	ct *compiledType
	rv reflect.Value
}

func (v *tupleStructVisitor) VisitSeq(seq SeqAccess) error {
	expected := fmt.Sprintf("%s with %d elements", v.Expect, len(v.ct.fields))
	for i, f := range v.ct.fields {
		more, err := seq.NextElement(valueSeed(v.rv.Field(f.index)))
		if err != nil {
			return err
		}
		if !more {
			return InvalidLength(i, expected)
		}
	}
	return expectEnd(seq, len(v.ct.fields), expected)
}

type newtypeVisitor struct {
	BaseVisitor
	field reflect.Value
}

func (v *newtypeVisitor) VisitNewtypeStruct(d Deserializer) error {
	return deserializeValue(d, v.field)
}

func (v *newtypeVisitor) VisitSeq(seq SeqAccess) error {
	more, err := seq.NextElement(valueSeed(v.field))
	if err != nil {
		return err
	}
	if !more {
		return InvalidLength(0, v.Expect+" with 1 element")
	}
	return expectEnd(seq, 1, v.Expect+" with 1 element")
}

// identVisitor captures a field or variant name.
type identVisitor struct {
	BaseVisitor
	out *string
}

func (v *identVisitor) VisitStr(s string) error {
	*v.out = s
	return nil
}

func (v *identVisitor) VisitBytes(b []byte) error { return v.VisitStr(string(b)) }

type enumVisitor struct {
	BaseVisitor
	ct *compiledType
	rv reflect.Value
}

func (v *enumVisitor) VisitEnum(e EnumAccess) error {
	var name string
	va, err := e.Variant(SeedFunc(func(d Deserializer) error {
		return d.DeserializeIdentifier(&identVisitor{BaseVisitor{"variant identifier"}, &name})
	}))
	if err != nil {
		return err
	}
	i := v.ct.findVariant(name)
	if i < 0 {
		return UnknownVariant(name, v.ct.variantNames)
	}
	variant := v.ct.variants[i]
	payload := reflect.New(variant.payload)

	switch variant.kind {
	case variantUnit:
		err = va.UnitVariant()
	case variantNewtype:
		err = va.NewtypeVariant(valueSeed(payload.Elem()))
	case variantTuple:
		pt, cerr := compile(variant.payload)
		if cerr != nil {
			return cerr
		}
		err = va.TupleVariant(len(pt.fields), &tupleStructVisitor{
			BaseVisitor{"tuple variant " + v.ct.name + "::" + variant.name}, pt, payload.Elem(),
		})
	case variantStruct:
		pt, cerr := compile(variant.payload)
		if cerr != nil {
			return cerr
		}
		err = va.StructVariant(pt.fieldNames, &structVisitor{
			BaseVisitor{"struct variant " + v.ct.name + "::" + variant.name}, pt, payload.Elem(),
		})
	}
	if err != nil {
		return err
	}

	for _, other := range v.ct.variants {
		f := v.rv.Field(other.field)
		f.Set(reflect.Zero(f.Type()))
	}
	v.rv.Field(variant.field).Set(payload)
	return nil
}
