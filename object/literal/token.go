package literal

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Type int

const (
	LParen Type = iota
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Colon
	Minus
	Plus
	Ident
	Number
	String
	Bytes
)

func (t Type) String() string {
	switch t {
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Minus:
		return "'-'"
	case Plus:
		return "'+'"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case Bytes:
		return "bytes"
	}
	return "unknown"
}

// Token is a lexical unit. String and Bytes tokens carry the decoded
// contents, not the source spelling.
type Token struct {
	Value string
	Type  Type
	Line  int
}

var punct = map[rune]Type{
	'(': LParen,
	')': RParen,
	'[': LBracket,
	']': RBracket,
	'{': LBrace,
	'}': RBrace,
	',': Comma,
	':': Colon,
	'-': Minus,
	'+': Plus,
}

func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	line := 1
	runes := []rune(input)

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if r == '\n' {
			line++
			continue
		}
		if unicode.IsSpace(r) {
			continue
		}

		// Line comment
		if r == '#' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			line++
			continue
		}

		if typ, ok := punct[r]; ok {
			tokens = append(tokens, Token{string(r), typ, line})
			continue
		}

		// Bytes literal
		if (r == 'b' || r == 'B') && i+1 < len(runes) && (runes[i+1] == '\'' || runes[i+1] == '"') {
			s, end, err := scanQuoted(runes, i+1, line, true)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{s, Bytes, line})
			i = end
			continue
		}

		if r == '\'' || r == '"' {
			s, end, err := scanQuoted(runes, i, line, false)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, Token{s, String, line})
			i = end
			continue
		}

		if unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])) {
			start := i
			for i < len(runes) && isNumberRune(runes, i) {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Number, line})
			i--
			continue
		}

		if unicode.IsLetter(r) || r == '_' {
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			tokens = append(tokens, Token{string(runes[start:i]), Ident, line})
			i--
			continue
		}

		return nil, fmt.Errorf("line %d: unexpected character %q", line, r)
	}

	return tokens, nil
}

func isNumberRune(runes []rune, i int) bool {
	r := runes[i]
	if unicode.IsDigit(r) || unicode.IsLetter(r) || r == '_' || r == '.' {
		return true
	}
	// exponent sign, but not in hex literals
	if (r == '+' || r == '-') && i > 0 && (runes[i-1] == 'e' || runes[i-1] == 'E') {
		lit := strings.ToLower(string(runes[:i]))
		j := strings.LastIndexFunc(lit, func(c rune) bool {
			return !(unicode.IsDigit(c) || unicode.IsLetter(c) || c == '_' || c == '.')
		})
		return !strings.HasPrefix(lit[j+1:], "0x")
	}
	return false
}

// scanQuoted reads a quoted literal starting at the opening quote and
// returns the decoded contents and the index of the closing quote.
func scanQuoted(runes []rune, start, line int, isBytes bool) (string, int, error) {
	quote := runes[start]
	var b strings.Builder
	for i := start + 1; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == quote:
			return b.String(), i, nil
		case r == '\n':
			return "", 0, fmt.Errorf("line %d: unterminated string literal", line)
		case r == '\\':
			i++
			if i >= len(runes) {
				return "", 0, fmt.Errorf("line %d: unterminated string literal", line)
			}
			n, err := writeEscape(&b, runes, i, isBytes)
			if err != nil {
				return "", 0, fmt.Errorf("line %d: %w", line, err)
			}
			i += n
		case isBytes && r > 0x7f:
			return "", 0, fmt.Errorf("line %d: bytes can only contain ASCII literal characters", line)
		default:
			b.WriteRune(r)
		}
	}
	return "", 0, fmt.Errorf("line %d: unterminated string literal", line)
}

// writeEscape decodes the escape whose selector is runes[i] and returns how
// many extra runes it consumed.
func writeEscape(b *strings.Builder, runes []rune, i int, isBytes bool) (int, error) {
	switch runes[i] {
	case 'n':
		b.WriteByte('\n')
	case 'r':
		b.WriteByte('\r')
	case 't':
		b.WriteByte('\t')
	case '0':
		b.WriteByte(0)
	case '\\', '\'', '"':
		b.WriteRune(runes[i])
	case '\n':
	case 'x':
		v, err := hexEscape(runes, i+1, 2)
		if err != nil {
			return 0, err
		}
		if isBytes {
			b.WriteByte(byte(v))
		} else {
			b.WriteRune(rune(v))
		}
		return 2, nil
	case 'u', 'U':
		if isBytes {
			b.WriteByte('\\')
			b.WriteRune(runes[i])
			return 0, nil
		}
		width := 4
		if runes[i] == 'U' {
			width = 8
		}
		v, err := hexEscape(runes, i+1, width)
		if err != nil {
			return 0, err
		}
		if !utf8.ValidRune(rune(v)) {
			return 0, fmt.Errorf("invalid code point \\%c%0*x", runes[i], width, v)
		}
		b.WriteRune(rune(v))
		return width, nil
	default:
		b.WriteByte('\\')
		b.WriteRune(runes[i])
	}
	return 0, nil
}

func hexEscape(runes []rune, start, width int) (uint64, error) {
	if start+width > len(runes) {
		return 0, fmt.Errorf("truncated \\x escape")
	}
	v, err := strconv.ParseUint(string(runes[start:start+width]), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid escape %q", string(runes[start:start+width]))
	}
	return v, nil
}
