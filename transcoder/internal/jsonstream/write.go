// Package jsonstream moves the serde data model in and out of JSON with
// json-iterator, keeping object member order in both directions.
package jsonstream

import (
	"encoding/base64"
	"fmt"
	"math/big"

	jsoniter "github.com/json-iterator/go"
	"github.com/wippyai/hostbridge/serde"
)

type done = struct{}

// Serializer writes the data model to a jsoniter stream. Bytes are written
// as base64 strings; scalar map keys are quoted.
type Serializer struct {
	s *jsoniter.Stream
}

func NewSerializer(s *jsoniter.Stream) Serializer {
	return Serializer{s: s}
}

// Marshal serializes v with api.
func Marshal(api jsoniter.API, v any) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)
	if _, err := serde.Serialize[done](NewSerializer(stream), v); err != nil {
		return nil, err
	}
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func (w Serializer) result() (done, error) {
	return done{}, w.s.Error
}

func (w Serializer) SerializeBool(v bool) (done, error)     { w.s.WriteBool(v); return w.result() }
func (w Serializer) SerializeInt8(v int8) (done, error)     { w.s.WriteInt8(v); return w.result() }
func (w Serializer) SerializeInt16(v int16) (done, error)   { w.s.WriteInt16(v); return w.result() }
func (w Serializer) SerializeInt32(v int32) (done, error)   { w.s.WriteInt32(v); return w.result() }
func (w Serializer) SerializeInt64(v int64) (done, error)   { w.s.WriteInt64(v); return w.result() }
func (w Serializer) SerializeUint8(v uint8) (done, error)   { w.s.WriteUint8(v); return w.result() }
func (w Serializer) SerializeUint16(v uint16) (done, error) { w.s.WriteUint16(v); return w.result() }
func (w Serializer) SerializeUint32(v uint32) (done, error) { w.s.WriteUint32(v); return w.result() }
func (w Serializer) SerializeUint64(v uint64) (done, error) { w.s.WriteUint64(v); return w.result() }

func (w Serializer) SerializeBigInt(v *big.Int) (done, error) {
	w.s.WriteRaw(v.String())
	return w.result()
}

func (w Serializer) SerializeFloat32(v float32) (done, error) {
	w.s.WriteFloat32(v)
	return w.result()
}

func (w Serializer) SerializeFloat64(v float64) (done, error) {
	w.s.WriteFloat64(v)
	return w.result()
}

func (w Serializer) SerializeChar(v rune) (done, error)   { w.s.WriteString(string(v)); return w.result() }
func (w Serializer) SerializeStr(v string) (done, error)  { w.s.WriteString(v); return w.result() }
func (w Serializer) SerializeNone() (done, error)         { w.s.WriteNil(); return w.result() }
func (w Serializer) SerializeUnit() (done, error)         { w.s.WriteNil(); return w.result() }
func (w Serializer) SerializeSome(v any) (done, error)    { return serde.Serialize[done](w, v) }
func (w Serializer) SerializeUnitStruct(string) (done, error) {
	w.s.WriteNil()
	return w.result()
}

func (w Serializer) SerializeBytes(v []byte) (done, error) {
	w.s.WriteString(base64.StdEncoding.EncodeToString(v))
	return w.result()
}

func (w Serializer) SerializeUnitVariant(_ string, _ int, variant string) (done, error) {
	w.s.WriteString(variant)
	return w.result()
}

func (w Serializer) SerializeNewtypeStruct(_ string, v any) (done, error) {
	return serde.Serialize[done](w, v)
}

func (w Serializer) SerializeNewtypeVariant(_ string, _ int, variant string, v any) (done, error) {
	w.s.WriteObjectStart()
	w.s.WriteObjectField(variant)
	if _, err := serde.Serialize[done](w, v); err != nil {
		return done{}, err
	}
	w.s.WriteObjectEnd()
	return w.result()
}

func (w Serializer) SerializeSeq(int) (serde.SerializeSeq[done], error) {
	return &seqWriter{w: w}, nil
}

func (w Serializer) SerializeTuple(int) (serde.SerializeSeq[done], error) {
	return &seqWriter{w: w}, nil
}

func (w Serializer) SerializeTupleStruct(string, int) (serde.SerializeSeq[done], error) {
	return &seqWriter{w: w}, nil
}

func (w Serializer) SerializeTupleVariant(_ string, _ int, variant string, _ int) (serde.SerializeSeq[done], error) {
	w.s.WriteObjectStart()
	w.s.WriteObjectField(variant)
	return &seqWriter{w: w, wrapped: true}, nil
}

func (w Serializer) SerializeMap(int) (serde.SerializeMap[done], error) {
	return &mapWriter{w: w}, nil
}

func (w Serializer) SerializeStruct(string, int) (serde.SerializeStruct[done], error) {
	return &mapWriter{w: w}, nil
}

func (w Serializer) SerializeStructVariant(_ string, _ int, variant string, _ int) (serde.SerializeStruct[done], error) {
	w.s.WriteObjectStart()
	w.s.WriteObjectField(variant)
	return &mapWriter{w: w, wrapped: true}, nil
}

// seqWriter opens the array lazily so empty arrays print as [].
type seqWriter struct {
	w       Serializer
	n       int
	wrapped bool
}

func (s *seqWriter) SerializeElement(v any) error {
	if s.n == 0 {
		s.w.s.WriteArrayStart()
	} else {
		s.w.s.WriteMore()
	}
	s.n++
	_, err := serde.Serialize[done](s.w, v)
	return err
}

func (s *seqWriter) End() (done, error) {
	if s.n == 0 {
		s.w.s.WriteEmptyArray()
	} else {
		s.w.s.WriteArrayEnd()
	}
	if s.wrapped {
		s.w.s.WriteObjectEnd()
	}
	return s.w.result()
}

type mapWriter struct {
	w       Serializer
	n       int
	wrapped bool
}

func (m *mapWriter) field(name string) {
	if m.n == 0 {
		m.w.s.WriteObjectStart()
	} else {
		m.w.s.WriteMore()
	}
	m.n++
	m.w.s.WriteObjectField(name)
}

// SerializeKey writes k as an object member name. Strings are used as is;
// numbers, booleans and null are quoted.
func (m *mapWriter) SerializeKey(k any) error {
	name, err := keyName(m.w.s, k)
	if err != nil {
		return err
	}
	m.field(name)
	return nil
}

func (m *mapWriter) SerializeValue(v any) error {
	_, err := serde.Serialize[done](m.w, v)
	return err
}

func (m *mapWriter) SerializeField(name string, v any) error {
	m.field(name)
	return m.SerializeValue(v)
}

func (m *mapWriter) End() (done, error) {
	if m.n == 0 {
		m.w.s.WriteEmptyObject()
	} else {
		m.w.s.WriteObjectEnd()
	}
	if m.wrapped {
		m.w.s.WriteObjectEnd()
	}
	return m.w.result()
}

// keyName renders k on a scratch stream and turns the scalar it produced
// into a member name.
func keyName(parent *jsoniter.Stream, k any) (string, error) {
	pool := parent.Pool()
	tmp := pool.BorrowStream(nil)
	defer pool.ReturnStream(tmp)

	if _, err := serde.Serialize[done](NewSerializer(tmp), k); err != nil {
		return "", err
	}
	if tmp.Error != nil {
		return "", tmp.Error
	}
	raw := tmp.Buffer()
	if len(raw) == 0 {
		return "", fmt.Errorf("empty map key")
	}
	switch c := raw[0]; {
	case c == '"':
		return jsoniter.ParseBytes(jsoniter.ConfigDefault, raw).ReadString(), nil
	case c == '-' || (c >= '0' && c <= '9') || c == 't' || c == 'f' || c == 'n':
		return string(raw), nil
	}
	return "", fmt.Errorf("JSON object keys must be strings or scalars, got %s", raw)
}
