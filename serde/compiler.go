package serde

import (
	"math/big"
	"reflect"
	"strings"
	"sync"
)

type shape uint8

const (
	shapeUnsupported shape = iota
	shapeBool
	shapeInt8
	shapeInt16
	shapeInt32
	shapeInt64
	shapeUint8
	shapeUint16
	shapeUint32
	shapeUint64
	shapeBigInt
	shapeFloat32
	shapeFloat64
	shapeChar
	shapeString
	shapeBytes
	shapeOption
	shapeSeq
	shapeTuple
	shapeMap
	shapeOrderedMap
	shapeStruct
	shapeUnit
	shapeUnitStruct
	shapeTupleStruct
	shapeNewtype
	shapeEnum
	shapeInterface
	shapeExtension
)

type variantKind uint8

const (
	variantUnit variantKind = iota
	variantNewtype
	variantTuple
	variantStruct
)

type compiledField struct {
	name      string
	index     int
	omitEmpty bool
	optional  bool
}

type compiledVariant struct {
	name    string
	field   int
	kind    variantKind
	payload reflect.Type
}

type compiledType struct {
	typ          reflect.Type
	shape        shape
	name         string
	fields       []compiledField
	fieldNames   []string
	variants     []compiledVariant
	variantNames []string
	ext          *Extension

	marshaler    bool
	ptrMarshaler bool
	unmarshaler  bool
	source       bool
}

var (
	typeCache sync.Map // reflect.Type -> *compiledType

	bigIntType      = reflect.TypeOf(big.Int{})
	unitType        = reflect.TypeOf(Unit{})
	charType        = reflect.TypeOf(Char(0))
	tupleMarker     = reflect.TypeOf(TupleStruct{})
	enumMarker      = reflect.TypeOf(Enum{})
	orderedMapType  = reflect.TypeOf(Map(nil))
	marshalerType   = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
	sourceType      = reflect.TypeOf((*Source)(nil)).Elem()
)

func compile(t reflect.Type) (*compiledType, error) {
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*compiledType), nil
	}
	ct, err := compileType(t)
	if err != nil {
		return nil, err
	}
	typeCache.Store(t, ct)
	return ct, nil
}

func compileType(t reflect.Type) (*compiledType, error) {
	ct := &compiledType{
		typ:          t,
		name:         t.Name(),
		marshaler:    t.Implements(marshalerType),
		ptrMarshaler: t.Kind() != reflect.Ptr && reflect.PointerTo(t).Implements(marshalerType),
		unmarshaler:  reflect.PointerTo(t).Implements(unmarshalerType),
		source:       t.Implements(sourceType),
	}

	if ext := lookupExtension(t); ext != nil {
		ct.shape = shapeExtension
		ct.ext = ext
		return ct, nil
	}

	switch t {
	case charType:
		ct.shape = shapeChar
		return ct, nil
	case unitType:
		ct.shape = shapeUnit
		return ct, nil
	case orderedMapType:
		ct.shape = shapeOrderedMap
		return ct, nil
	case bigIntType, reflect.PointerTo(bigIntType):
		ct.shape = shapeBigInt
		return ct, nil
	}

	switch t.Kind() {
	case reflect.Bool:
		ct.shape = shapeBool
	case reflect.Int8:
		ct.shape = shapeInt8
	case reflect.Int16:
		ct.shape = shapeInt16
	case reflect.Int32:
		ct.shape = shapeInt32
	case reflect.Int64, reflect.Int:
		ct.shape = shapeInt64
	case reflect.Uint8:
		ct.shape = shapeUint8
	case reflect.Uint16:
		ct.shape = shapeUint16
	case reflect.Uint32:
		ct.shape = shapeUint32
	case reflect.Uint64, reflect.Uint, reflect.Uintptr:
		ct.shape = shapeUint64
	case reflect.Float32:
		ct.shape = shapeFloat32
	case reflect.Float64:
		ct.shape = shapeFloat64
	case reflect.String:
		ct.shape = shapeString
	case reflect.Ptr:
		ct.shape = shapeOption
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			ct.shape = shapeBytes
		} else {
			ct.shape = shapeSeq
		}
	case reflect.Array:
		ct.shape = shapeTuple
	case reflect.Map:
		ct.shape = shapeMap
	case reflect.Interface:
		ct.shape = shapeInterface
	case reflect.Struct:
		if err := compileStruct(ct); err != nil {
			return nil, err
		}
	default:
		ct.shape = shapeUnsupported
	}
	return ct, nil
}

func compileStruct(ct *compiledType) error {
	t := ct.typ
	isTuple, isEnum := false, false

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == tupleMarker {
			isTuple = true
			continue
		}
		if f.Anonymous && f.Type == enumMarker {
			isEnum = true
			continue
		}
		if !f.IsExported() {
			continue
		}
		name, omitEmpty, skip := fieldTag(f)
		if skip {
			continue
		}
		ct.fields = append(ct.fields, compiledField{
			name:      name,
			index:     i,
			omitEmpty: omitEmpty,
			optional:  f.Type.Kind() == reflect.Ptr,
		})
		ct.fieldNames = append(ct.fieldNames, name)
	}

	switch {
	case isEnum:
		return compileEnum(ct)
	case isTuple && len(ct.fields) == 1:
		ct.shape = shapeNewtype
	case isTuple:
		ct.shape = shapeTupleStruct
	case len(ct.fields) == 0:
		ct.shape = shapeUnitStruct
	default:
		ct.shape = shapeStruct
	}
	return nil
}

func compileEnum(ct *compiledType) error {
	ct.shape = shapeEnum
	for _, f := range ct.fields {
		ft := ct.typ.Field(f.index).Type
		if ft.Kind() != reflect.Ptr {
			return Custom("enum %s: variant field %s must be a pointer, got %s",
				ct.typ, ct.typ.Field(f.index).Name, ft)
		}
		payload := ft.Elem()
		kind := variantNewtype
		if payload == unitType {
			kind = variantUnit
		} else if payload.Kind() == reflect.Struct && lookupExtension(payload) == nil {
			switch structShape(payload) {
			case shapeTupleStruct:
				kind = variantTuple
			case shapeStruct:
				kind = variantStruct
			}
		}
		ct.variants = append(ct.variants, compiledVariant{
			name:    f.name,
			field:   f.index,
			kind:    kind,
			payload: payload,
		})
		ct.variantNames = append(ct.variantNames, f.name)
	}
	return nil
}

// structShape classifies a struct type without compiling its fields.
func structShape(t reflect.Type) shape {
	if t == unitType || t == bigIntType {
		return shapeUnsupported
	}
	isTuple, n := false, 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == enumMarker {
			return shapeEnum
		}
		if f.Anonymous && f.Type == tupleMarker {
			isTuple = true
			continue
		}
		if _, _, skip := fieldTag(f); f.IsExported() && !skip {
			n++
		}
	}
	switch {
	case isTuple && n == 1:
		return shapeNewtype
	case isTuple:
		return shapeTupleStruct
	case n == 0:
		return shapeUnitStruct
	}
	return shapeStruct
}

// fieldTag reads the serde tag, falling back to the json tag.
func fieldTag(f reflect.StructField) (name string, omitEmpty, skip bool) {
	tag, ok := f.Tag.Lookup("serde")
	if !ok {
		tag, ok = f.Tag.Lookup("json")
	}
	if !ok {
		return f.Name, false, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "-" && opts == "" {
		return "", false, true
	}
	if name == "" {
		name = f.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// findField matches by exact name first, then case-insensitively.
func (ct *compiledType) findField(name string) int {
	for i, f := range ct.fields {
		if f.name == name {
			return i
		}
	}
	for i, f := range ct.fields {
		if strings.EqualFold(f.name, name) {
			return i
		}
	}
	return -1
}

func (ct *compiledType) findVariant(name string) int {
	for i, v := range ct.variants {
		if v.name == name {
			return i
		}
	}
	for i, v := range ct.variants {
		if strings.EqualFold(v.name, name) {
			return i
		}
	}
	return -1
}
