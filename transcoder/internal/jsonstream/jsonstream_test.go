package jsonstream

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/hostbridge/serde"
)

var api = jsoniter.Config{UseNumber: true}.Froze()

type variant struct {
	serde.Enum
	Off  *serde.Unit
	Move *struct {
		X int `serde:"x"`
	}
	Say *string
}

func TestMarshal(t *testing.T) {
	huge, _ := new(big.Int).SetString("-99999999999999999999999", 10)
	say := "hi"

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, `null`},
		{"ordered", serde.Map{{Key: "b", Value: 1}, {Key: "a", Value: true}}, `{"b":1,"a":true}`},
		{"empty seq", []int{}, `[]`},
		{"empty map", serde.Map{}, `{}`},
		{"bytes", []byte{0xff}, `"/w=="`},
		{"big", huge, `-99999999999999999999999`},
		{"int key", map[int]string{3: "x"}, `{"3":"x"}`},
		{"unit variant", variant{Off: &serde.Unit{}}, `"Off"`},
		{"struct variant", variant{Move: &struct {
			X int `serde:"x"`
		}{X: 2}}, `{"Move":{"x":2}}`},
		{"newtype variant", variant{Say: &say}, `{"Say":"hi"}`},
		{"quoted key", map[string]int{`a"b`: 1}, `{"a\"b":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(api, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestMarshalRejectsCompositeKeys(t *testing.T) {
	_, err := Marshal(api, map[[2]int]int{{1, 2}: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON object keys must be strings or scalars")
}

func TestRead(t *testing.T) {
	v, err := Read(api, []byte(`{"z": [1, 2.5, "s"], "a": {"n": null, "t": true}}`))
	require.NoError(t, err)

	want := serde.Map{
		{Key: "z", Value: []any{json.Number("1"), json.Number("2.5"), "s"}},
		{Key: "a", Value: serde.Map{{Key: "n", Value: nil}, {Key: "t", Value: true}}},
	}
	assert.Equal(t, want, v)
}

func TestReadErrors(t *testing.T) {
	for _, input := range []string{`{"a" 1}`, `[1,`, `{} {}`, `@`} {
		_, err := Read(api, []byte(input))
		assert.Error(t, err, input)
	}

	deep := strings.Repeat("[", maxDepth+2) + strings.Repeat("]", maxDepth+2)
	_, err := Read(api, []byte(deep))
	assert.Error(t, err)
}
