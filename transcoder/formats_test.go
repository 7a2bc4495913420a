package transcoder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/hostbridge/errors"
	"github.com/wippyai/hostbridge/object"
	"github.com/wippyai/hostbridge/object/literal"
)

func TestToJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"order kept", "{'b': [1, 2.5, None, True], 'a': 'x'}", `{"b":[1,2.5,null,true],"a":"x"}`},
		{"empty", "{'l': [], 'd': {}}", `{"l":[],"d":{}}`},
		{"tuple and set", "((1, 2), {3})", `[[1,2],[3]]`},
		{"bytes", "b'hi'", `"aGk="`},
		{"big int", "123456789012345678901234567890", `123456789012345678901234567890`},
		{"scalar keys", "{1: 'a', None: 'b', 2.5: 'c'}", `{"1":"a","null":"b","2.5":"c"}`},
		{"escaping", `'<a href="x">'`, `"<a href=\"x\">"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ToJSON(literal.MustParse(tt.input), false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestToJSONIndent(t *testing.T) {
	out, err := ToJSON(literal.MustParse("{'a': 1, 'b': [2]}"), true)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  \"a\": 1")
	assert.True(t, strings.HasSuffix(string(out), "}"))
}

func TestToJSONErrors(t *testing.T) {
	_, err := ToJSON(literal.MustParse("{(1, 2): 'a'}"), false)
	require.Error(t, err)
	assert.Equal(t, errors.KindMessage, mustError(t, err).Kind)

	_, err = ToJSON(opaque{}, false)
	require.Error(t, err)
	assert.Equal(t, errors.KindUnsupportedType, mustError(t, err).Kind)
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{"z": 1, "a": [true, null, 1.5], "big": 340282366920938463463374607431768211456}`,
			"{'z': 1, 'a': [True, None, 1.5], 'big': 340282366920938463463374607431768211456}"},
		{`[]`, "[]"},
		{`"cat"`, "'cat'"},
		{`-7`, "-7"},
		{`1e3`, "1000.0"},
	}
	for _, tt := range tests {
		obj, err := FromJSON([]byte(tt.input), DefaultStrategy())
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, object.Repr(obj), tt.input)
	}

	for _, bad := range []string{`{"a": }`, `[1, 2`, `1 2`} {
		_, err := FromJSON([]byte(bad), DefaultStrategy())
		assert.Error(t, err, bad)
	}
}

func TestFromJSONStrategy(t *testing.T) {
	obj, err := FromJSON([]byte(`{"a": [1, 2]}`), Strategy{List: dequeKind{}})
	require.NoError(t, err)
	inner, err := obj.(*object.Dict).GetItem(object.Str("a"))
	require.NoError(t, err)
	assert.IsType(t, &deque{}, inner)
}

func TestYAMLRoundTrip(t *testing.T) {
	obj := literal.MustParse("{'name': 'api', 'ports': [80, 443], 'ratio': 2.0, 'blob': b'\\x00\\x01', 'empty': {}, 'none': None, 'huge': 340282366920938463463374607431768211456}")

	node, err := ToYAML(obj)
	require.NoError(t, err)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	require.NoError(t, enc.Encode(node))
	require.NoError(t, enc.Close())

	text := buf.String()
	assert.True(t, strings.HasPrefix(text, "name: api\n"), text)
	assert.Contains(t, text, "ratio: 2.0")
	assert.Contains(t, text, "empty: {}")
	assert.Contains(t, text, "none: null")
	assert.Contains(t, text, "!!binary")

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	back, err := FromYAML(&doc, DefaultStrategy())
	require.NoError(t, err)
	assert.Equal(t, object.Repr(obj), object.Repr(back))
}

func TestFromYAML(t *testing.T) {
	src := `
b: 1_000
a: [0x10, .inf, ~]
anchor: &x {k: v}
alias: *x
`
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	obj, err := FromYAML(&doc, DefaultStrategy())
	require.NoError(t, err)
	assert.Equal(t, "{'b': 1000, 'a': [16, inf, None], 'anchor': {'k': 'v'}, 'alias': {'k': 'v'}}", object.Repr(obj))
}

func TestCBORRoundTrip(t *testing.T) {
	obj := literal.MustParse("{'b': [1, -2, 2.5], 'a': b'raw', 'c': None, 'd': 340282366920938463463374607431768211456}")

	data, err := ToCBOR(obj)
	require.NoError(t, err)

	again, err := ToCBOR(obj)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding is deterministic")

	back, err := FromCBOR(data, DefaultStrategy())
	require.NoError(t, err)
	assert.Equal(t, "{'a': b'raw', 'b': [1, -2, 2.5], 'c': None, 'd': 340282366920938463463374607431768211456}", object.Repr(back))

	diag, err := DiagnoseCBOR(data)
	require.NoError(t, err)
	assert.Contains(t, diag, `"a": h'726177'`)

	_, err = FromCBOR([]byte{0xff}, DefaultStrategy())
	require.Error(t, err)
	assert.Equal(t, errors.PhaseTranscode, mustError(t, err).Phase)
}

func TestValueFormats(t *testing.T) {
	type envelope struct {
		ID      int   `json:"id" yaml:"id" cbor:"id"`
		Payload Value `json:"payload" yaml:"payload" cbor:"payload"`
	}
	in := envelope{ID: 7, Payload: Value{Object: literal.MustParse("{'z': [1, 'two'], 'a': None}")}}

	t.Run("json", func(t *testing.T) {
		data, err := jsonCompact.Marshal(in)
		require.NoError(t, err)
		assert.Equal(t, `{"id":7,"payload":{"z":[1,"two"],"a":null}}`, string(data))

		var out envelope
		require.NoError(t, jsonCompact.Unmarshal(data, &out))
		assert.Equal(t, 7, out.ID)
		assert.Equal(t, "{'z': [1, 'two'], 'a': None}", out.Payload.String())
	})

	t.Run("yaml", func(t *testing.T) {
		data, err := yaml.Marshal(in)
		require.NoError(t, err)

		var out envelope
		require.NoError(t, yaml.Unmarshal(data, &out))
		assert.Equal(t, "{'z': [1, 'two'], 'a': None}", out.Payload.String())
	})

	t.Run("cbor", func(t *testing.T) {
		data, err := cborEnc.Marshal(in)
		require.NoError(t, err)

		var out envelope
		require.NoError(t, cborDec.Unmarshal(data, &out))
		assert.Equal(t, "{'a': None, 'z': [1, 'two']}", out.Payload.String())
	})

	t.Run("nil object", func(t *testing.T) {
		data, err := jsonCompact.Marshal(envelope{})
		require.NoError(t, err)
		assert.Equal(t, `{"id":0,"payload":null}`, string(data))
	})
}
