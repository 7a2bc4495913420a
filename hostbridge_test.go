package hostbridge

import (
	"testing"

	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/object/literal"
	"github.com/wippyai/hostbridge/transcoder"
)

type point struct {
	X int `serde:"x"`
	Y int `serde:"y"`
}

func TestToHostFromHost(t *testing.T) {
	obj, err := ToHost(point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("ToHost failed: %v", err)
	}
	if got := object.Repr(obj); got != "{'x': 1, 'y': 2}" {
		t.Errorf("got %s", got)
	}

	p, err := FromHost[point](obj)
	if err != nil {
		t.Fatalf("FromHost failed: %v", err)
	}
	if p != (point{X: 1, Y: 2}) {
		t.Errorf("got %+v", p)
	}
}

func TestCodec(t *testing.T) {
	var zero Codec
	obj, err := zero.Encode([2]int{1, 2})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got := object.Repr(obj); got != "(1, 2)" {
		t.Errorf("zero codec: got %s", got)
	}

	codec := NewCodec(transcoder.Strategy{Tuple: transcoder.ListKind{}})
	obj, err = codec.Encode([2]int{1, 2})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got := object.Repr(obj); got != "[1, 2]" {
		t.Errorf("got %s", got)
	}

	var back [2]int
	if err := codec.Decode(obj, &back); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if back != [2]int{1, 2} {
		t.Errorf("got %v", back)
	}

	converted, err := codec.Convert(literal.MustParse("{'a': (1,)}"))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got := object.Repr(converted); got != "{'a': [1]}" {
		t.Errorf("got %s", got)
	}
}
