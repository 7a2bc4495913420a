package transcoder

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/object/literal"
	"github.com/wippyai/hostbridge/serde"
)

type config struct {
	Name    string            `serde:"name"`
	Port    uint16            `serde:"port"`
	Tags    []string          `serde:"tags"`
	Limits  map[string]int    `serde:"limits"`
	Backup  *string           `serde:"backup"`
	Weights [2]float64        `serde:"weights"`
	Extra   map[string]string `serde:"extra,omitempty"`
}

type pair struct {
	serde.TupleStruct
	Label string
	Value float64
}

type celsius struct {
	serde.TupleStruct
	Degrees float64
}

type empty struct{}

type coords struct {
	X int `serde:"x"`
	Y int `serde:"y"`
}

type foo struct {
	serde.Enum
	Variant *serde.Unit
	Tuple   *pair
	Struct  *coords
	Newtype *string
}

func TestEncodeScalars(t *testing.T) {
	huge, _ := new(big.Int).SetString("340282366920938463463374607431768211456", 10)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "None"},
		{"true", true, "True"},
		{"int8 min", int8(math.MinInt8), "-128"},
		{"uint64 max", uint64(math.MaxUint64), "18446744073709551615"},
		{"int", -42, "-42"},
		{"big", huge, "340282366920938463463374607431768211456"},
		{"float32", float32(1.5), "1.5"},
		{"float64 integral", 2.0, "2.0"},
		{"char", serde.Char('ß'), "'ß'"},
		{"string", "cat", "'cat'"},
		{"bytes", []byte("ab"), "b'ab'"},
		{"unit", serde.Unit{}, "None"},
		{"unit struct", empty{}, "None"},
		{"newtype struct", celsius{Degrees: 21.5}, "21.5"},
		{"nil pointer", (*config)(nil), "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got := object.Repr(obj); got != tt.want {
				t.Errorf("Encode(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeContainers(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"slice", []int{1, 2, 3}, "[1, 2, 3]"},
		{"empty slice", []string{}, "[]"},
		{"array", [2]string{"a", "b"}, "('a', 'b')"},
		{"tuple struct", pair{Label: "cat", Value: -10.05}, "('cat', -10.05)"},
		{"nested", [][]int{{1}, {}}, "[[1], []]"},
		{"map", map[string]int{"b": 2, "a": 1}, "{'a': 1, 'b': 2}"},
		{"int keys", map[int]bool{2: true, -1: false}, "{-1: False, 2: True}"},
		{"ordered map", serde.Map{{Key: "z", Value: 1}, {Key: "a", Value: nil}}, "{'z': 1, 'a': None}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got := object.Repr(obj); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeStructFieldOrder(t *testing.T) {
	obj, err := Encode(config{
		Name:    "api",
		Port:    8080,
		Tags:    []string{"a"},
		Limits:  map[string]int{"rps": 10},
		Weights: [2]float64{0.5, 1},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := "{'name': 'api', 'port': 8080, 'tags': ['a'], 'limits': {'rps': 10}, 'backup': None, 'weights': (0.5, 1.0)}"
	if got := object.Repr(obj); got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestEncodeEnum(t *testing.T) {
	s := "hi"
	tests := []struct {
		name string
		in   foo
		want string
	}{
		{"unit", foo{Variant: &serde.Unit{}}, "'Variant'"},
		{"tuple", foo{Tuple: &pair{Label: "cat", Value: 12}}, "{'Tuple': ('cat', 12.0)}"},
		{"struct", foo{Struct: &coords{X: 1, Y: 2}}, "{'Struct': {'x': 1, 'y': 2}}"},
		{"newtype", foo{Newtype: &s}, "{'Newtype': 'hi'}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Encode(tt.in)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got := object.Repr(obj); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodePassesObjectsThrough(t *testing.T) {
	inner := literal.MustParse("{1, 2}")
	type wrapper struct {
		Raw   object.Object
		Value Value
	}
	obj, err := Encode(wrapper{Raw: inner, Value: Value{Object: inner}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	d := obj.(*object.Dict)
	raw, _ := d.GetItem(object.Str("Raw"))
	val, _ := d.GetItem(object.Str("Value"))
	if raw != inner || val != inner {
		t.Error("host objects should be inserted without copying")
	}
}

func TestEncodeErrorPath(t *testing.T) {
	type inner struct {
		Ch chan int
	}
	type outer struct {
		Items []any `serde:"items"`
	}
	_, err := Encode(outer{Items: []any{1, inner{Ch: make(chan int)}}})
	if err == nil {
		t.Fatal("expected error")
	}
	var e *errors.Error
	if !asError(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if e.Phase != errors.PhaseEncode {
		t.Errorf("phase = %s, want encode", e.Phase)
	}
	if got := e.PathString(); got != "items[1].Ch" {
		t.Errorf("path = %q, want items[1].Ch", got)
	}
	if !strings.Contains(e.Message(), "unsupported Go type chan int") {
		t.Errorf("unexpected message %q", e.Message())
	}
}

func TestEncodeMapKeyErrorPath(t *testing.T) {
	type lookup struct {
		Table serde.Map `serde:"table"`
	}
	_, err := Encode(lookup{Table: serde.Map{{Key: "ok", Value: 1}, {Key: make(chan int), Value: 2}}})
	if err == nil {
		t.Fatal("expected error")
	}
	var e *errors.Error
	if !asError(err, &e) {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if got := e.PathString(); got != "table."+errors.KeySegment {
		t.Errorf("path = %q, want table.%s", got, errors.KeySegment)
	}
	if !strings.Contains(e.Message(), "unsupported Go type chan int") {
		t.Errorf("unexpected message %q", e.Message())
	}
}

func TestEncodeMapValueWithoutKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	b, err := NewEncoder(DefaultStrategy()).SerializeMap(1)
	if err != nil {
		t.Fatal(err)
	}
	_ = b.SerializeValue(1)
}
