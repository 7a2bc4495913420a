package literal

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/wippyai/hostbridge/object"
)

// Parse evaluates a single host literal expression.
func Parse(source string) (object.Object, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil {
		return nil, fmt.Errorf("line %d: unexpected %q after expression", t.Line, t.Value)
	}
	return v, nil
}

// MustParse is like Parse but panics on error.
func MustParse(source string) object.Object {
	v, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return v
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *Token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) expect(typ Type) (*Token, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input")
	}
	if t.Type != typ {
		return nil, fmt.Errorf("line %d: expected %v, got %q", t.Line, typ, t.Value)
	}
	return t, nil
}

// accept consumes the next token if it has the given type.
func (p *parser) accept(typ Type) bool {
	if t := p.peek(); t != nil && t.Type == typ {
		p.pos++
		return true
	}
	return false
}

func (p *parser) parseValue() (object.Object, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input")
	}

	switch t.Type {
	case Minus, Plus:
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if t.Type == Plus {
			return v, nil
		}
		return negate(v, t.Line)
	case Number:
		return parseNumber(t)
	case String:
		s := t.Value
		// adjacent string literals concatenate
		for p.peek() != nil && p.peek().Type == String {
			s += p.next().Value
		}
		return object.Str(s), nil
	case Bytes:
		b := []byte(t.Value)
		for p.peek() != nil && p.peek().Type == Bytes {
			b = append(b, p.next().Value...)
		}
		return object.Bytes(b), nil
	case Ident:
		return p.parseIdent(t)
	case LBracket:
		items, err := p.parseItems(RBracket)
		if err != nil {
			return nil, err
		}
		return object.NewList(items...), nil
	case LParen:
		return p.parseParen()
	case LBrace:
		return p.parseBrace(t.Line)
	}
	return nil, fmt.Errorf("line %d: unexpected %q", t.Line, t.Value)
}

// parseItems reads comma-separated values up to the closing token,
// allowing a trailing comma.
func (p *parser) parseItems(end Type) ([]object.Object, error) {
	var items []object.Object
	for !p.accept(end) {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if p.accept(end) {
			break
		}
		if _, err := p.expect(Comma); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (p *parser) parseParen() (object.Object, error) {
	if p.accept(RParen) {
		return object.NewTuple(), nil
	}
	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if p.accept(RParen) {
		return first, nil
	}
	if _, err := p.expect(Comma); err != nil {
		return nil, err
	}
	rest, err := p.parseItems(RParen)
	if err != nil {
		return nil, err
	}
	return object.NewTuple(append([]object.Object{first}, rest...)...), nil
}

func (p *parser) parseBrace(line int) (object.Object, error) {
	if p.accept(RBrace) {
		return object.NewDict(), nil
	}
	first, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	if !p.accept(Colon) {
		var rest []object.Object
		if !p.accept(RBrace) {
			if _, err := p.expect(Comma); err != nil {
				return nil, err
			}
			if rest, err = p.parseItems(RBrace); err != nil {
				return nil, err
			}
		}
		s, err := object.NewSet(append([]object.Object{first}, rest...)...)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		return s, nil
	}

	d := object.NewDict()
	key := first
	for {
		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		if err := d.SetItem(key, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if p.accept(RBrace) {
			return d, nil
		}
		if _, err := p.expect(Comma); err != nil {
			return nil, err
		}
		if p.accept(RBrace) {
			return d, nil
		}
		if key, err = p.parseValue(); err != nil {
			return nil, err
		}
		if _, err := p.expect(Colon); err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseIdent(t *Token) (object.Object, error) {
	switch t.Value {
	case "None":
		return object.None, nil
	case "True":
		return object.True, nil
	case "False":
		return object.False, nil
	case "set", "frozenset", "bytearray", "float", "tuple", "list":
		return p.parseCall(t)
	}
	return nil, fmt.Errorf("line %d: unknown name %q", t.Line, t.Value)
}

// parseCall handles the constructor calls needed for values that have no
// literal spelling of their own.
func (p *parser) parseCall(t *Token) (object.Object, error) {
	if _, err := p.expect(LParen); err != nil {
		return nil, err
	}
	args, err := p.parseItems(RParen)
	if err != nil {
		return nil, err
	}
	if len(args) > 1 {
		return nil, fmt.Errorf("line %d: %s() takes at most 1 argument (%d given)", t.Line, t.Value, len(args))
	}

	var items []object.Object
	if len(args) == 1 && t.Value != "bytearray" && t.Value != "float" {
		if items, err = members(args[0]); err != nil {
			return nil, fmt.Errorf("line %d: %w", t.Line, err)
		}
	}

	switch t.Value {
	case "set":
		return object.NewSet(items...)
	case "frozenset":
		return object.NewFrozenSet(items...)
	case "tuple":
		return object.NewTuple(items...), nil
	case "list":
		return object.NewList(items...), nil
	case "bytearray":
		if len(args) == 0 {
			return object.NewByteArray(nil), nil
		}
		b, err := object.AsBytes(args[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", t.Line, err)
		}
		return object.NewByteArray(b), nil
	default:
		if len(args) == 0 {
			return object.Float(0), nil
		}
		return toFloat(args[0], t.Line)
	}
}

func members(o object.Object) ([]object.Object, error) {
	it, ok := o.(object.Iterable)
	if !ok {
		return nil, object.NewTypeError("'" + o.TypeName() + "' object is not iterable")
	}
	iter, err := it.Iter()
	if err != nil {
		return nil, err
	}
	var items []object.Object
	for {
		m, ok, err := iter.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, m)
	}
}

func toFloat(o object.Object, line int) (object.Object, error) {
	if s, ok := o.(object.Str); ok {
		switch strings.ToLower(strings.TrimSpace(string(s))) {
		case "inf", "+inf", "infinity":
			return object.Float(math.Inf(1)), nil
		case "-inf", "-infinity":
			return object.Float(math.Inf(-1)), nil
		case "nan", "+nan", "-nan":
			return object.Float(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(string(s)), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: could not convert string to float: %s", line, object.Repr(s))
		}
		return object.Float(f), nil
	}
	f, err := object.AsFloat64(o)
	if err != nil {
		return nil, fmt.Errorf("line %d: %w", line, err)
	}
	return object.Float(f), nil
}

func parseNumber(t *Token) (object.Object, error) {
	lit := strings.ReplaceAll(t.Value, "_", "")
	lower := strings.ToLower(lit)
	isRadix := strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b")
	if !isRadix && strings.ContainsAny(lower, ".e") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid float literal %q", t.Line, t.Value)
		}
		return object.Float(f), nil
	}
	b, ok := new(big.Int).SetString(lower, 0)
	if !ok {
		return nil, fmt.Errorf("line %d: invalid integer literal %q", t.Line, t.Value)
	}
	return object.NewBigInt(b), nil
}

func negate(v object.Object, line int) (object.Object, error) {
	switch n := v.(type) {
	case *object.Int:
		return object.NewBigInt(new(big.Int).Neg(n.Big())), nil
	case object.Float:
		return -n, nil
	case object.Bool:
		if n {
			return object.NewInt(-1), nil
		}
		return object.NewInt(0), nil
	}
	return nil, fmt.Errorf("line %d: bad operand type for unary -: '%s'", line, v.TypeName())
}
