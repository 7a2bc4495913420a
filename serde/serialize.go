package serde

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
)

// Serialize drives s with the Go value v.
func Serialize[T any](s Serializer[T], v any) (T, error) {
	switch x := v.(type) {
	case nil:
		return s.SerializeNone()
	case Source:
		return Transcode(x.Deserializer(), s)
	}
	return serializeValue(s, reflect.ValueOf(v))
}

func serializeValue[T any](s Serializer[T], rv reflect.Value) (T, error) {
	var zero T

	ct, err := compile(rv.Type())
	if err != nil {
		return zero, err
	}

	if ct.shape == shapeExtension {
		return Transcode(ct.ext.Source(rv.Interface()).Deserializer(), s)
	}
	if ct.source && !(rv.Kind() == reflect.Ptr && rv.IsNil()) {
		return Transcode(rv.Interface().(Source).Deserializer(), s)
	}
	if m := marshalerOf(ct, rv); m != nil {
		proxy, err := m.MarshalSerde()
		if err != nil {
			return zero, err
		}
		return Serialize(s, proxy)
	}

	switch ct.shape {
	case shapeBool:
		return s.SerializeBool(rv.Bool())
	case shapeInt8:
		return s.SerializeInt8(int8(rv.Int()))
	case shapeInt16:
		return s.SerializeInt16(int16(rv.Int()))
	case shapeInt32:
		return s.SerializeInt32(int32(rv.Int()))
	case shapeInt64:
		return s.SerializeInt64(rv.Int())
	case shapeUint8:
		return s.SerializeUint8(uint8(rv.Uint()))
	case shapeUint16:
		return s.SerializeUint16(uint16(rv.Uint()))
	case shapeUint32:
		return s.SerializeUint32(uint32(rv.Uint()))
	case shapeUint64:
		return s.SerializeUint64(rv.Uint())
	case shapeBigInt:
		return serializeBigInt(s, rv)
	case shapeFloat32:
		return s.SerializeFloat32(float32(rv.Float()))
	case shapeFloat64:
		return s.SerializeFloat64(rv.Float())
	case shapeChar:
		return s.SerializeChar(rune(rv.Int()))
	case shapeString:
		return s.SerializeStr(rv.String())
	case shapeBytes:
		return s.SerializeBytes(rv.Bytes())
	case shapeOption:
		if rv.IsNil() {
			return s.SerializeNone()
		}
		return s.SerializeSome(rv.Elem().Interface())
	case shapeUnit:
		return s.SerializeUnit()
	case shapeUnitStruct:
		return s.SerializeUnitStruct(ct.name)
	case shapeSeq:
		b, err := s.SerializeSeq(rv.Len())
		if err != nil {
			return zero, err
		}
		return serializeElements(b, rv)
	case shapeTuple:
		b, err := s.SerializeTuple(rv.Len())
		if err != nil {
			return zero, err
		}
		return serializeElements(b, rv)
	case shapeMap:
		return serializeMap(s, rv)
	case shapeOrderedMap:
		return serializeOrderedMap(s, rv.Interface().(Map))
	case shapeStruct:
		b, err := s.SerializeStruct(ct.name, countFields(ct, rv))
		if err != nil {
			return zero, err
		}
		return serializeFields(b, ct, rv)
	case shapeNewtype:
		return s.SerializeNewtypeStruct(ct.name, rv.Field(ct.fields[0].index).Interface())
	case shapeTupleStruct:
		b, err := s.SerializeTupleStruct(ct.name, len(ct.fields))
		if err != nil {
			return zero, err
		}
		return serializeTupleFields(b, ct, rv)
	case shapeEnum:
		return serializeEnum(s, ct, rv)
	case shapeInterface:
		if rv.IsNil() {
			return s.SerializeNone()
		}
		return serializeValue(s, rv.Elem())
	}
	return zero, Custom("unsupported Go type %s", rv.Type())
}

func marshalerOf(ct *compiledType, rv reflect.Value) Marshaler {
	switch {
	case ct.marshaler:
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return nil
		}
		return rv.Interface().(Marshaler)
	case ct.ptrMarshaler && rv.CanAddr():
		return rv.Addr().Interface().(Marshaler)
	}
	return nil
}

func serializeBigInt[T any](s Serializer[T], rv reflect.Value) (T, error) {
	var b *big.Int
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return s.SerializeNone()
		}
		b = rv.Interface().(*big.Int)
	} else {
		v := rv.Interface().(big.Int)
		b = &v
	}
	return s.SerializeBigInt(b)
}

func serializeElements[T any](b SerializeSeq[T], rv reflect.Value) (T, error) {
	for i := 0; i < rv.Len(); i++ {
		if err := b.SerializeElement(rv.Index(i).Interface()); err != nil {
			var zero T
			return zero, err
		}
	}
	return b.End()
}

func serializeMap[T any](s Serializer[T], rv reflect.Value) (T, error) {
	var zero T
	b, err := s.SerializeMap(rv.Len())
	if err != nil {
		return zero, err
	}
	for _, k := range sortedKeys(rv) {
		if err := b.SerializeKey(k.Interface()); err != nil {
			return zero, err
		}
		if err := b.SerializeValue(rv.MapIndex(k).Interface()); err != nil {
			return zero, err
		}
	}
	return b.End()
}

// sortedKeys orders map keys so output is deterministic.
func sortedKeys(rv reflect.Value) []reflect.Value {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		switch a.Kind() {
		case reflect.String:
			return a.String() < b.String()
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return a.Int() < b.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return a.Uint() < b.Uint()
		case reflect.Float32, reflect.Float64:
			return a.Float() < b.Float()
		}
		return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
	})
	return keys
}

func serializeOrderedMap[T any](s Serializer[T], m Map) (T, error) {
	var zero T
	b, err := s.SerializeMap(len(m))
	if err != nil {
		return zero, err
	}
	for _, e := range m {
		if err := b.SerializeKey(e.Key); err != nil {
			return zero, err
		}
		if err := b.SerializeValue(e.Value); err != nil {
			return zero, err
		}
	}
	return b.End()
}

func countFields(ct *compiledType, rv reflect.Value) int {
	n := 0
	for _, f := range ct.fields {
		if !f.omitEmpty || !rv.Field(f.index).IsZero() {
			n++
		}
	}
	return n
}

func serializeFields[T any](b SerializeStruct[T], ct *compiledType, rv reflect.Value) (T, error) {
	for _, f := range ct.fields {
		fv := rv.Field(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		if err := b.SerializeField(f.name, fv.Interface()); err != nil {
			var zero T
			return zero, err
		}
	}
	return b.End()
}

func serializeTupleFields[T any](b SerializeSeq[T], ct *compiledType, rv reflect.Value) (T, error) {
	for _, f := range ct.fields {
		if err := b.SerializeElement(rv.Field(f.index).Interface()); err != nil {
			var zero T
			return zero, err
		}
	}
	return b.End()
}

func serializeEnum[T any](s Serializer[T], ct *compiledType, rv reflect.Value) (T, error) {
	var zero T

	active := -1
	for i, v := range ct.variants {
		if rv.Field(v.field).IsNil() {
			continue
		}
		if active >= 0 {
			return zero, Custom("enum %s has more than one variant set (%s, %s)",
				ct.name, ct.variants[active].name, v.name)
		}
		active = i
	}
	if active < 0 {
		return zero, Custom("enum %s has no variant set", ct.name)
	}

	v := ct.variants[active]
	payload := rv.Field(v.field).Elem()

	switch v.kind {
	case variantUnit:
		return s.SerializeUnitVariant(ct.name, active, v.name)
	case variantTuple:
		pt, err := compile(v.payload)
		if err != nil {
			return zero, err
		}
		b, err := s.SerializeTupleVariant(ct.name, active, v.name, len(pt.fields))
		if err != nil {
			return zero, err
		}
		return serializeTupleFields(b, pt, payload)
	case variantStruct:
		pt, err := compile(v.payload)
		if err != nil {
			return zero, err
		}
		b, err := s.SerializeStructVariant(ct.name, active, v.name, countFields(pt, payload))
		if err != nil {
			return zero, err
		}
		return serializeFields(b, pt, payload)
	}
	return s.SerializeNewtypeVariant(ct.name, active, v.name, payload.Interface())
}
