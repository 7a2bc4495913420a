package transcoder

import (
	"math/big"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/internal/numeric"
	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/serde"
	"go.uber.org/zap"
)

// Decoder reads one host object. It implements serde.Deserializer; a fresh
// Decoder is created for every element, key, value and variant payload.
type Decoder struct {
	obj object.Object
}

// NewDecoder returns a Decoder for obj. A nil handle reads as None.
func NewDecoder(obj object.Object) *Decoder {
	if obj == nil {
		obj = object.None
	}
	return &Decoder{obj: obj}
}

// Object returns the handle being decoded.
func (d *Decoder) Object() object.Object { return d.obj }

func (d *Decoder) typeName() string { return d.obj.TypeName() }

func hostErr(err error) error {
	return errors.Classify(errors.PhaseDecode, err)
}

// DeserializeAny inspects the object and calls the matching Visit method.
// Cheap concrete type checks come first; the sequence and mapping
// protocols are the last resort.
func (d *Decoder) DeserializeAny(v serde.Visitor) error {
	switch object.Classify(d.obj) {
	case object.KindNone:
		return v.VisitUnit()
	case object.KindBool:
		return v.VisitBool(bool(d.obj.(object.Bool)))
	case object.KindInt:
		return serde.VisitInteger(v, d.obj.(*object.Int).Big())
	case object.KindList, object.KindTuple, object.KindSequence:
		seq, err := newSeqAccess(d.obj.(object.Sequence), -1)
		if err != nil {
			return err
		}
		return v.VisitSeq(seq)
	case object.KindDict, object.KindMapping:
		m, err := newMapAccess(d.obj.(object.Mapping))
		if err != nil {
			return err
		}
		return v.VisitMap(m)
	case object.KindStr:
		return v.VisitStr(string(d.obj.(object.Str)))
	case object.KindBytes, object.KindByteArray:
		b, err := object.AsBytes(d.obj)
		if err != nil {
			return hostErr(err)
		}
		return v.VisitBytes(b)
	case object.KindFloat:
		return v.VisitFloat64(float64(d.obj.(object.Float)))
	case object.KindFrozenSet, object.KindSet:
		set, err := newSetAccess(d.obj.(object.Iterable))
		if err != nil {
			return err
		}
		return v.VisitSeq(set)
	}
	Logger().Debug("unsupported host type", zap.String("type", d.typeName()))
	return errors.UnsupportedType(errors.PhaseDecode, d.typeName())
}

func (d *Decoder) DeserializeBool(v serde.Visitor) error {
	b, err := object.Truthy(d.obj)
	if err != nil {
		return hostErr(err)
	}
	return v.VisitBool(b)
}

// extractInt reads an integer and range checks it against the target width.
func (d *Decoder) extractInt(bits int, signed bool, target string) (*big.Int, error) {
	n, err := object.AsBigInt(d.obj)
	if err != nil {
		return nil, hostErr(err)
	}
	switch {
	case signed && !numeric.FitsInt(n, bits):
		return nil, hostErr(object.NewOverflowError("int too large to convert to " + target))
	case !signed && n.Sign() < 0:
		return nil, hostErr(object.NewOverflowError("can't convert negative int to unsigned"))
	case !signed && !numeric.FitsUint(n, bits):
		return nil, hostErr(object.NewOverflowError("int too large to convert to " + target))
	}
	return n, nil
}

func (d *Decoder) DeserializeInt8(v serde.Visitor) error {
	n, err := d.extractInt(8, true, "int8")
	if err != nil {
		return err
	}
	return v.VisitInt8(int8(n.Int64()))
}

func (d *Decoder) DeserializeInt16(v serde.Visitor) error {
	n, err := d.extractInt(16, true, "int16")
	if err != nil {
		return err
	}
	return v.VisitInt16(int16(n.Int64()))
}

func (d *Decoder) DeserializeInt32(v serde.Visitor) error {
	n, err := d.extractInt(32, true, "int32")
	if err != nil {
		return err
	}
	return v.VisitInt32(int32(n.Int64()))
}

func (d *Decoder) DeserializeInt64(v serde.Visitor) error {
	n, err := d.extractInt(64, true, "int64")
	if err != nil {
		return err
	}
	return v.VisitInt64(n.Int64())
}

func (d *Decoder) DeserializeUint8(v serde.Visitor) error {
	n, err := d.extractInt(8, false, "uint8")
	if err != nil {
		return err
	}
	return v.VisitUint8(uint8(n.Uint64()))
}

func (d *Decoder) DeserializeUint16(v serde.Visitor) error {
	n, err := d.extractInt(16, false, "uint16")
	if err != nil {
		return err
	}
	return v.VisitUint16(uint16(n.Uint64()))
}

func (d *Decoder) DeserializeUint32(v serde.Visitor) error {
	n, err := d.extractInt(32, false, "uint32")
	if err != nil {
		return err
	}
	return v.VisitUint32(uint32(n.Uint64()))
}

func (d *Decoder) DeserializeUint64(v serde.Visitor) error {
	n, err := d.extractInt(64, false, "uint64")
	if err != nil {
		return err
	}
	return v.VisitUint64(n.Uint64())
}

func (d *Decoder) DeserializeFloat32(v serde.Visitor) error {
	f, err := object.AsFloat64(d.obj)
	if err != nil {
		return hostErr(err)
	}
	return v.VisitFloat32(float32(f))
}

func (d *Decoder) DeserializeFloat64(v serde.Visitor) error {
	f, err := object.AsFloat64(d.obj)
	if err != nil {
		return hostErr(err)
	}
	return v.VisitFloat64(f)
}

// DeserializeChar accepts a str of exactly one code point.
func (d *Decoder) DeserializeChar(v serde.Visitor) error {
	s, ok := d.obj.(object.Str)
	if !ok {
		return errors.UnexpectedType(errors.PhaseDecode, d.typeName(), "str")
	}
	if s.Len() != 1 {
		return errors.InvalidLengthChar(errors.PhaseDecode)
	}
	return v.VisitChar([]rune(string(s))[0])
}

func (d *Decoder) DeserializeStr(v serde.Visitor) error {
	s, ok := d.obj.(object.Str)
	if !ok {
		return errors.UnexpectedType(errors.PhaseDecode, d.typeName(), "str")
	}
	return v.VisitStr(string(s))
}

func (d *Decoder) DeserializeBytes(v serde.Visitor) error {
	b, err := object.AsBytes(d.obj)
	if err != nil {
		return errors.UnexpectedType(errors.PhaseDecode, d.typeName(), "bytes")
	}
	return v.VisitBytes(b)
}

func (d *Decoder) DeserializeOption(v serde.Visitor) error {
	if object.Classify(d.obj) == object.KindNone {
		return v.VisitNone()
	}
	return v.VisitSome(d)
}

func (d *Decoder) DeserializeUnit(v serde.Visitor) error {
	if object.Classify(d.obj) != object.KindNone {
		return errors.Message(errors.PhaseDecode, "expected None")
	}
	return v.VisitUnit()
}

func (d *Decoder) DeserializeUnitStruct(_ string, v serde.Visitor) error {
	return d.DeserializeUnit(v)
}

func (d *Decoder) DeserializeNewtypeStruct(_ string, v serde.Visitor) error {
	return v.VisitNewtypeStruct(d)
}

// DeserializeSeq reads any sequence. Sets and frozensets are read in
// iteration order.
func (d *Decoder) DeserializeSeq(v serde.Visitor) error {
	switch object.Classify(d.obj) {
	case object.KindList, object.KindTuple, object.KindSequence:
		seq, err := newSeqAccess(d.obj.(object.Sequence), -1)
		if err != nil {
			return err
		}
		return v.VisitSeq(seq)
	case object.KindSet, object.KindFrozenSet:
		Logger().Debug("reading set as sequence", zap.String("type", d.typeName()))
		set, err := newSetAccess(d.obj.(object.Iterable))
		if err != nil {
			return err
		}
		return v.VisitSeq(set)
	}
	return errors.UnexpectedType(errors.PhaseDecode, d.typeName(), "Sequence")
}

// DeserializeTuple requires a sequence of exactly length items.
func (d *Decoder) DeserializeTuple(length int, v serde.Visitor) error {
	seq, ok := d.obj.(object.Sequence)
	if !ok {
		return errors.UnexpectedType(errors.PhaseDecode, d.typeName(), "Sequence")
	}
	access, err := newSeqAccess(seq, length)
	if err != nil {
		return err
	}
	return v.VisitSeq(access)
}

func (d *Decoder) DeserializeTupleStruct(_ string, length int, v serde.Visitor) error {
	return d.DeserializeTuple(length, v)
}

func (d *Decoder) DeserializeMap(v serde.Visitor) error {
	m, ok := d.obj.(object.Mapping)
	if !ok {
		return errors.UnexpectedType(errors.PhaseDecode, d.typeName(), "Mapping")
	}
	access, err := newMapAccess(m)
	if err != nil {
		return err
	}
	return v.VisitMap(access)
}

func (d *Decoder) DeserializeStruct(_ string, _ []string, v serde.Visitor) error {
	return d.DeserializeMap(v)
}

// DeserializeEnum reads a bare str as a unit variant and a single-key
// dict as {variant: payload}.
func (d *Decoder) DeserializeEnum(_ string, _ []string, v serde.Visitor) error {
	switch o := d.obj.(type) {
	case object.Str:
		return v.VisitEnum(serde.StrEnumAccess(string(o)))
	case object.Mapping:
		n, err := o.Len()
		if err != nil {
			return hostErr(err)
		}
		if n != 1 {
			return errors.InvalidLengthEnum(errors.PhaseDecode)
		}
		keys, err := o.Keys()
		if err != nil {
			return hostErr(err)
		}
		variant, ok := keys[0].(object.Str)
		if !ok {
			return errors.DictKeyNotString(errors.PhaseDecode)
		}
		payload, err := o.GetItem(variant)
		if err != nil {
			return hostErr(err)
		}
		return v.VisitEnum(&enumAccess{variant: string(variant), payload: payload})
	}
	return errors.InvalidEnumType(errors.PhaseDecode)
}

// DeserializeIdentifier reads field and variant names, which must be str.
func (d *Decoder) DeserializeIdentifier(v serde.Visitor) error {
	s, ok := d.obj.(object.Str)
	if !ok {
		return errors.DictKeyNotString(errors.PhaseDecode)
	}
	return v.VisitStr(string(s))
}

func (d *Decoder) DeserializeIgnoredAny(v serde.Visitor) error {
	return v.VisitUnit()
}
