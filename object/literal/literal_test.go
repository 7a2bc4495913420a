package literal

import (
	"math"
	"testing"

	"github.com/wippyai/hostbridge/object"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{"empty", "", nil},
		{"brackets", "[]", []Token{{"[", LBracket, 1}, {"]", RBracket, 1}}},
		{"dict", "{'a': 1}", []Token{
			{"{", LBrace, 1}, {"a", String, 1}, {":", Colon, 1}, {"1", Number, 1}, {"}", RBrace, 1},
		}},
		{"newlines", "[\n1,\n2]", []Token{
			{"[", LBracket, 1}, {"1", Number, 2}, {",", Comma, 2}, {"2", Number, 3}, {"]", RBracket, 3},
		}},
		{"comment", "1 # one\n2", []Token{{"1", Number, 1}, {"2", Number, 2}}},
		{"exponent", "1.5e-3", []Token{{"1.5e-3", Number, 1}}},
		{"hex is not exponent", "0xe-1", []Token{{"0xe", Number, 1}, {"-", Minus, 1}, {"1", Number, 1}}},
		{"escapes", `'a\n\x41é'`, []Token{{"a\nAé", String, 1}}},
		{"bytes", `b'\xff\x00'`, []Token{{"\xff\x00", Bytes, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	for _, input := range []string{"'abc", "\"abc\n\"", "b'é'", "@", `'\x4'`} {
		if _, err := Tokenize(input); err == nil {
			t.Errorf("Tokenize(%q) should fail", input)
		}
	}
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		input string
		want  object.Object
	}{
		{"None", object.None},
		{"True", object.True},
		{"False", object.False},
		{"42", object.NewInt(42)},
		{"-42", object.NewInt(-42)},
		{"1_000", object.NewInt(1000)},
		{"0xff", object.NewInt(255)},
		{"0b101", object.NewInt(5)},
		{"1.5", object.Float(1.5)},
		{"-2.5e2", object.Float(-250)},
		{"'hi'", object.Str("hi")},
		{`"it's"`, object.Str("it's")},
		{"'a' 'b'", object.Str("ab")},
		{"b'\\x01'", object.Bytes{1}},
		{"bytearray(b'ab')", object.NewByteArray([]byte("ab"))},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got.TypeName() != tt.want.TypeName() || !object.Equal(got, tt.want) {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, object.Repr(got), object.Repr(tt.want))
			}
		})
	}
}

func TestParseBigInt(t *testing.T) {
	got, err := Parse("340282366920938463463374607431768211456")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	i, ok := got.(*object.Int)
	if !ok {
		t.Fatalf("expected *object.Int, got %T", got)
	}
	if i.BitLen() != 129 {
		t.Errorf("BitLen = %d, want 129", i.BitLen())
	}
}

func TestParseSpecialFloats(t *testing.T) {
	got := MustParse("float('-inf')")
	if f, ok := got.(object.Float); !ok || !math.IsInf(float64(f), -1) {
		t.Errorf("expected -inf, got %s", object.Repr(got))
	}
	got = MustParse("float('nan')")
	if f, ok := got.(object.Float); !ok || !math.IsNaN(float64(f)) {
		t.Errorf("expected nan, got %s", object.Repr(got))
	}
}

func TestParseContainers(t *testing.T) {
	tests := []struct {
		input string
		kind  object.Kind
		repr  string
	}{
		{"[]", object.KindList, "[]"},
		{"[1, 'a', None,]", object.KindList, "[1, 'a', None]"},
		{"()", object.KindTuple, "()"},
		{"(1,)", object.KindTuple, "(1,)"},
		{"(1)", object.KindInt, "1"},
		{"('cat', -10.05)", object.KindTuple, "('cat', -10.05)"},
		{"{}", object.KindDict, "{}"},
		{"{'a': {'b': [1]}, 'c': (2, 3)}", object.KindDict, "{'a': {'b': [1]}, 'c': (2, 3)}"},
		{"{1, 2, 2}", object.KindSet, "{1, 2}"},
		{"set()", object.KindSet, "set()"},
		{"frozenset({'a'})", object.KindFrozenSet, "frozenset({'a'})"},
		{"frozenset()", object.KindFrozenSet, "frozenset()"},
		{"tuple([1, 2])", object.KindTuple, "(1, 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if k := object.Classify(got); k != tt.kind {
				t.Errorf("kind = %v, want %v", k, tt.kind)
			}
			if r := object.Repr(got); r != tt.repr {
				t.Errorf("repr = %s, want %s", r, tt.repr)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		"[1, 2",
		"{'a' 1}",
		"{[1]: 2}",
		"{[1]}",
		"foo",
		"1 2",
		"-'a'",
		"set(1)",
		"float('x')",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) should fail", input)
			}
		})
	}
}
