package serde

import (
	"math/big"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Foo string `serde:"foo"`
	Bar uint8  `serde:"bar"`
}

type withOptional struct {
	Name  string  `serde:"name"`
	Note  *string `serde:"note"`
	Count int     `json:"count,omitempty"`
	Skip  int     `serde:"-"`
}

type point struct {
	TupleStruct
	X, Y int
}

type meters struct {
	TupleStruct
	V float64
}

type marker struct{}

type rect struct {
	W int `serde:"w"`
	H int `serde:"h"`
}

type pair struct {
	TupleStruct
	A string
	B int
}

type figure struct {
	Enum
	Empty  *Unit
	Circle *float64
	Rect   *rect
	Pair   *pair `serde:"pair"`
}

type everything struct {
	Bool   bool
	I8     int8
	U64    uint64
	F32    float32
	Char   Char
	Str    string
	Bytes  []byte
	Big    *big.Int
	Seq    []int
	Arr    [2]string
	Map    map[string]int
	Point  point
	Meters meters
	Marker marker
	Shape  figure
	Opt    *inner
	Any    any
}

func ptr[T any](v T) *T { return &v }

func tree(t *testing.T, v any) any {
	t.Helper()
	out, err := Serialize[any](treeSerializer{}, v)
	require.NoError(t, err)
	return out
}

func TestSerializeStructFieldOrder(t *testing.T) {
	out := tree(t, inner{Foo: "x", Bar: 7})
	assert.Equal(t, Map{{Key: "foo", Value: "x"}, {Key: "bar", Value: uint64(7)}}, out)
}

func TestSerializeTags(t *testing.T) {
	out := tree(t, withOptional{Name: "n", Skip: 3})
	assert.Equal(t, Map{{Key: "name", Value: "n"}, {Key: "note", Value: nil}}, out)
}

func TestSerializeShapes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"tuple struct", point{X: 1, Y: -2}, []any{int64(1), int64(-2)}},
		{"newtype struct", meters{V: 2.5}, 2.5},
		{"unit struct", marker{}, nil},
		{"unit", Unit{}, nil},
		{"char", Char('é'), "é"},
		{"array", [2]string{"a", "b"}, []any{"a", "b"}},
		{"nil slice", []int(nil), []any{}},
		{"sorted map", map[string]int{"b": 2, "a": 1}, Map{{Key: "a", Value: int64(1)}, {Key: "b", Value: int64(2)}}},
		{"unit variant", figure{Empty: &Unit{}}, "Empty"},
		{"newtype variant", figure{Circle: ptr(1.5)}, Map{{Key: "Circle", Value: 1.5}}},
		{"struct variant", figure{Rect: &rect{W: 1, H: 2}}, Map{{Key: "Rect", Value: Map{{Key: "w", Value: int64(1)}, {Key: "h", Value: int64(2)}}}}},
		{"tuple variant", figure{Pair: &pair{A: "cat", B: 12}}, Map{{Key: "pair", Value: []any{"cat", int64(12)}}}},
		{"nil pointer", (*inner)(nil), nil},
		{"interface", []any{1, "x"}, []any{int64(1), "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree(t, tt.in))
		})
	}
}

func TestSerializeBigInt(t *testing.T) {
	n, _ := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	assert.Equal(t, 0, n.Cmp(tree(t, n).(*big.Int)))
}

func TestSerializeEnumErrors(t *testing.T) {
	_, err := Serialize[any](treeSerializer{}, figure{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no variant set")

	_, err = Serialize[any](treeSerializer{}, figure{Empty: &Unit{}, Circle: ptr(1.0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one variant")
}

func TestSerializeUnsupported(t *testing.T) {
	_, err := Serialize[any](treeSerializer{}, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported Go type chan int")
}

func TestRoundTrip(t *testing.T) {
	values := []any{
		&everything{
			Bool:   true,
			I8:     -5,
			U64:    1 << 63,
			F32:    1.5,
			Char:   'z',
			Str:    "hello",
			Bytes:  []byte{0, 1, 2},
			Big:    new(big.Int).Lsh(big.NewInt(1), 130),
			Seq:    []int{1, 2, 3},
			Arr:    [2]string{"a", "b"},
			Map:    map[string]int{"k": 1},
			Point:  point{X: 3, Y: 4},
			Meters: meters{V: 9.75},
			Shape:  figure{Rect: &rect{W: 5, H: 6}},
			Opt:    &inner{Foo: "o", Bar: 1},
			Any:    "free",
		},
		&figure{Empty: &Unit{}},
		&figure{Circle: ptr(0.5)},
		&figure{Pair: &pair{A: "cat", B: -1}},
	}

	for _, v := range values {
		rt := reflect.TypeOf(v).Elem()
		t.Run(rt.Name(), func(t *testing.T) {
			out := reflect.New(rt)
			require.NoError(t, Deserialize(NewValueDeserializer(tree(t, v)), out.Interface()))
			assert.Equal(t, v, out.Interface())
		})
	}
}

func TestDeserializeMissingField(t *testing.T) {
	var out inner
	err := Deserialize(NewValueDeserializer(map[string]any{"foo": "x"}), &out)
	require.Error(t, err)
	assert.Equal(t, "missing field `bar`", err.Error())
}

func TestDeserializeOptionalAndUnknownFields(t *testing.T) {
	var out withOptional
	in := map[string]any{"name": "n", "extra": []any{1, 2}, "Count": 4}
	require.NoError(t, Deserialize(NewValueDeserializer(in), &out))
	assert.Equal(t, withOptional{Name: "n", Count: 4}, out)
}

func TestDeserializeDuplicateField(t *testing.T) {
	var out inner
	in := Map{{Key: "foo", Value: "a"}, {Key: "bar", Value: 1}, {Key: "foo", Value: "b"}}
	err := Deserialize(NewValueDeserializer(in), &out)
	require.Error(t, err)
	assert.Equal(t, "duplicate field `foo`", err.Error())
}

func TestDeserializeIntegerRange(t *testing.T) {
	var u8 uint8
	require.NoError(t, Deserialize(NewValueDeserializer(255), &u8))
	assert.Equal(t, uint8(255), u8)

	err := Deserialize(NewValueDeserializer(256), &u8)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "invalid value: integer `256`"), err.Error())

	var i16 int16
	assert.Error(t, Deserialize(NewValueDeserializer(-40000), &i16))

	var u uint
	assert.Error(t, Deserialize(NewValueDeserializer(-1), &u))

	var f float64
	require.NoError(t, Deserialize(NewValueDeserializer(3), &f))
	assert.Equal(t, 3.0, f)

	var s string
	err = Deserialize(NewValueDeserializer(1), &s)
	require.Error(t, err)
	assert.Equal(t, "invalid type: integer `1`, expected a string", err.Error())
}

func TestDeserializeArrayLength(t *testing.T) {
	var arr [2]int
	err := Deserialize(NewValueDeserializer([]any{1, 2, 3}), &arr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid length 3")

	var p point
	err = Deserialize(NewValueDeserializer([]any{1}), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid length 1")
}

func TestDeserializeEnumErrors(t *testing.T) {
	var s figure
	err := Deserialize(NewValueDeserializer("Triangle"), &s)
	require.Error(t, err)
	assert.Equal(t, "unknown variant `Triangle`, expected one of `Empty`, `Circle`, `Rect`, `pair`", err.Error())

	err = Deserialize(NewValueDeserializer("Circle"), &s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected newtype variant")

	require.NoError(t, Deserialize(NewValueDeserializer("empty"), &s))
	assert.NotNil(t, s.Empty)
}

func TestDeserializeEnumResetsOtherVariants(t *testing.T) {
	s := figure{Empty: &Unit{}}
	require.NoError(t, Deserialize(NewValueDeserializer(map[string]any{"Circle": 2.0}), &s))
	assert.Nil(t, s.Empty)
	assert.Equal(t, 2.0, *s.Circle)
}

func TestDeserializeAny(t *testing.T) {
	var out any
	in := Map{
		{Key: "a", Value: int8(1)},
		{Key: "b", Value: []any{uint64(1 << 63), "x", nil}},
		{Key: "c", Value: new(big.Int).Lsh(big.NewInt(1), 100)},
	}
	require.NoError(t, Deserialize(NewValueDeserializer(in), &out))
	m, ok := out.(map[string]any)
	require.True(t, ok, "expected map[string]any, got %T", out)
	assert.Equal(t, int64(1), m["a"])
	assert.Equal(t, []any{uint64(1 << 63), "x", nil}, m["b"])
	assert.IsType(t, &big.Int{}, m["c"])

	require.NoError(t, Deserialize(NewValueDeserializer(Map{{Key: int64(1), Value: "one"}}), &out))
	assert.Equal(t, map[any]any{int64(1): "one"}, out)

	err := Deserialize(NewValueDeserializer(Map{{Key: []any{1}, Value: "x"}}), &out)
	require.Error(t, err)
}

func TestDeserializeOrderedMap(t *testing.T) {
	var out Map
	in := Map{{Key: "z", Value: 1}, {Key: "a", Value: 2}}
	require.NoError(t, Deserialize(NewValueDeserializer(in), &out))
	assert.Equal(t, Map{{Key: "z", Value: int64(1)}, {Key: "a", Value: int64(2)}}, out)
}

func TestDeserializeRequiresPointer(t *testing.T) {
	var out inner
	assert.Error(t, Deserialize(NewValueDeserializer(nil), out))
	assert.Error(t, Deserialize(NewValueDeserializer(nil), (*inner)(nil)))
}

func TestTranscodePreservesOrder(t *testing.T) {
	in := Map{{Key: "z", Value: []any{1, "a"}}, {Key: "a", Value: map[string]any{"y": true, "b": nil}}}
	out, err := Transcode[any](NewValueDeserializer(in), treeSerializer{})
	require.NoError(t, err)
	want := Map{
		{Key: "z", Value: []any{int64(1), "a"}},
		{Key: "a", Value: Map{{Key: "b", Value: nil}, {Key: "y", Value: true}}},
	}
	assert.Equal(t, want, out)
}

func TestSerializeSource(t *testing.T) {
	out := tree(t, []any{From(NewValueDeserializer(int16(-3)))})
	assert.Equal(t, []any{int64(-3)}, out)
}

type celsius float64

func (c celsius) MarshalSerde() (any, error) { return map[string]float64{"celsius": float64(c)}, nil }

type upper string

func (u *upper) UnmarshalSerde(d Deserializer) error {
	var s string
	if err := Deserialize(d, &s); err != nil {
		return err
	}
	*u = upper(strings.ToUpper(s))
	return nil
}

func TestHooks(t *testing.T) {
	assert.Equal(t, Map{{Key: "celsius", Value: 21.5}}, tree(t, celsius(21.5)))

	var u struct{ Name upper }
	require.NoError(t, Deserialize(NewValueDeserializer(map[string]any{"Name": "abc"}), &u))
	assert.Equal(t, upper("ABC"), u.Name)
}

type handle interface{ ID() string }

type fileHandle struct{ id string }

func (f fileHandle) ID() string { return f.id }

func init() {
	Register(Extension{
		Type: reflect.TypeOf((*handle)(nil)).Elem(),
		Source: func(v any) Source {
			return From(NewValueDeserializer("handle:" + v.(handle).ID()))
		},
		Deserialize: func(d Deserializer) (any, error) {
			var s string
			if err := Deserialize(d, &s); err != nil {
				return nil, err
			}
			return fileHandle{id: strings.TrimPrefix(s, "handle:")}, nil
		},
	})
}

func TestExtension(t *testing.T) {
	type holder struct {
		H handle
		F fileHandle
	}
	in := holder{H: fileHandle{id: "a"}, F: fileHandle{id: "b"}}
	out := tree(t, in)
	assert.Equal(t, Map{{Key: "H", Value: "handle:a"}, {Key: "F", Value: "handle:b"}}, out)

	var back holder
	require.NoError(t, Deserialize(NewValueDeserializer(out), &back))
	assert.Equal(t, in, back)
}

// widthRecorder notes which Visit method received an integer.
type widthRecorder struct {
	BaseVisitor
	got string
}

func (w *widthRecorder) VisitUint8(uint8) error       { w.got = "u8"; return nil }
func (w *widthRecorder) VisitUint16(uint16) error     { w.got = "u16"; return nil }
func (w *widthRecorder) VisitUint64(uint64) error     { w.got = "u64"; return nil }
func (w *widthRecorder) VisitUint128(*big.Int) error  { w.got = "u128"; return nil }
func (w *widthRecorder) VisitInt8(int8) error         { w.got = "i8"; return nil }
func (w *widthRecorder) VisitInt128(*big.Int) error   { w.got = "i128"; return nil }
func (w *widthRecorder) VisitBigInt(*big.Int) error   { w.got = "big"; return nil }

func TestVisitInteger(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"255", "u8"},
		{"256", "u16"},
		{"18446744073709551615", "u64"},
		{"18446744073709551616", "u128"},
		{"-1", "i8"},
		{"-9223372036854775809", "i128"},
		{"340282366920938463463374607431768211456", "big"},
	}
	for _, tt := range tests {
		n, _ := new(big.Int).SetString(tt.value, 10)
		w := &widthRecorder{}
		require.NoError(t, VisitInteger(w, n))
		assert.Equal(t, tt.want, w.got, tt.value)
	}
}
