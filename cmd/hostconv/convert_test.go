package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		opts  options
		input string
		want  string
	}{
		{
			name:  "py to json",
			opts:  options{from: formatPy, to: formatJSON, compact: true},
			input: "{'b': (1, 2), 'a': None}\n",
			want:  "{\"b\":[1,2],\"a\":null}\n",
		},
		{
			name:  "jsonc to py",
			opts:  options{from: formatJSON, to: formatPy},
			input: "{\n  // comment\n  \"a\": [1, 2.5,],\n}",
			want:  "{'a': [1, 2.5]}\n",
		},
		{
			name:  "yaml to py",
			opts:  options{from: formatYAML, to: formatPy},
			input: "z: 1\na: [x, ~]\n",
			want:  "{'z': 1, 'a': ['x', None]}\n",
		},
		{
			name:  "py to yaml",
			opts:  options{from: formatPy, to: formatYAML},
			input: "{'name': 'api', 'ports': []}",
			want:  "name: api\nports: []\n",
		},
		{
			name:  "tuples as lists",
			opts:  options{from: formatPy, to: formatPy, tuplesAsLists: true},
			input: "{'a': (1, (2,))}",
			want:  "{'a': [1, [2]]}\n",
		},
		{
			name:  "classify",
			opts:  options{from: formatPy, to: formatPy, classify: true},
			input: "{'a': [1, 'x']}",
			want:  "dict [1]\n  'a': list [2]\n    [0]: int = 1\n    [1]: str = 'x'\n{'a': [1, 'x']}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := convert(tt.opts, []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestConvertCBOR(t *testing.T) {
	raw, err := convert(options{from: formatPy, to: formatCBOR}, []byte("{'b': 1, 'a': b'x'}"))
	require.NoError(t, err)

	back, err := convert(options{from: formatCBOR, to: formatPy}, raw)
	require.NoError(t, err)
	assert.Equal(t, "{'a': b'x', 'b': 1}\n", string(back))

	diag, err := convert(options{from: formatPy, to: formatCBOR, terminal: true}, []byte("[1]"))
	require.NoError(t, err)
	assert.Equal(t, "[1]\n", string(diag))
}

func TestConvertErrors(t *testing.T) {
	_, err := convert(options{from: formatPy, to: formatJSON}, []byte("[1, "))
	require.Error(t, err)

	_, err = convert(options{from: formatPy, to: formatJSON}, []byte("{(1, 2): 3}"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(errorText(err), "TypeError: "), errorText(err))
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, options{from: formatPy, to: formatCBOR}.validate())
	assert.Error(t, options{from: "toml", to: formatJSON}.validate())
	assert.Error(t, options{from: formatJSON, to: ""}.validate())
}

func TestDescribeSet(t *testing.T) {
	out, err := convert(options{from: formatPy, to: formatPy, classify: true}, []byte("frozenset({1})"))
	require.NoError(t, err)
	assert.Equal(t, "frozenset [1]\n  -: int = 1\nfrozenset({1})\n", string(out))
}

func TestInteractiveModel(t *testing.T) {
	m := newInteractiveModel(options{})

	m.input.SetValue("{'a': (1,)}")
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.entries, 1)
	e := m.entries[0]
	require.NoError(t, e.err)
	assert.Equal(t, `{"a":[1]}`, e.json)
	assert.Equal(t, "a:\n  - 1", e.yaml)
	assert.Contains(t, m.View(), "json: {\"a\":[1]}")

	m.input.SetValue("[1,")
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, m.entries, 2)
	assert.Error(t, m.entries[1].err)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "[1,", m.input.Value())
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "{'a': (1,)}", m.input.Value())
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "", m.input.Value())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "yaml: a: 1\n      b: 2", indent("a: 1\nb: 2", "yaml: "))
}
