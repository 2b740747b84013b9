package records

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

// Value variants. Literals are String, Number, Bool, Color and Resource.
const (
	String   ValueKind = iota // quoted text
	Number                    // decimal number, kept as written
	Bool                      // true or false
	Ref                       // @name reference to a variable, view, list, component or parameter
	Color                     // #AARRGGBB
	Resource                  // %name image resource
	Call                      // [opcode, args...] nested function call
)

var kindNames = map[ValueKind]string{
	String: "string", Number: "number", Bool: "bool", Ref: "ref",
	Color: "color", Resource: "resource", Call: "call",
}

// String returns the lower-case name of the kind.
func (k ValueKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is one decoded parameter or attribute cell. Text holds the literal
// text, the referenced name, or the call opcode; Args holds call arguments.
type Value struct {
	Kind ValueKind
	Text string
	Args []Value
}

// IsLiteral reports whether v carries a constant.
func (v Value) IsLiteral() bool {
	switch v.Kind {
	case String, Number, Bool, Color, Resource:
		return true
	}
	return false
}

// Encode renders v back into cell syntax.
func (v Value) Encode() string {
	switch v.Kind {
	case String:
		return strconv.Quote(v.Text)
	case Ref:
		return "@" + v.Text
	case Color:
		return "#" + v.Text
	case Resource:
		return "%" + v.Text
	case Call:
		parts := []string{v.Text}
		for _, a := range v.Args {
			parts = append(parts, a.Encode())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return v.Text
	}
}

// Walk calls fn for v and, depth first, for every nested argument.
func (v Value) Walk(fn func(Value)) {
	fn(v)
	for _, a := range v.Args {
		a.Walk(fn)
	}
}

// Attr is a key=value entry of a view record's attribute list.
type Attr struct {
	Key   string
	Value Value
}

// ParseList decodes a bracketed, comma separated list of cells.
func ParseList(s string) ([]Value, error) {
	p := &cellParser{src: s}
	p.skipSpace()
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var out []Value
	err := p.items(func() error {
		v, err := p.cell()
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, p.end()
}

// ParseAttrs decodes a bracketed list of key=cell attribute pairs.
func ParseAttrs(s string) ([]Attr, error) {
	p := &cellParser{src: s}
	p.skipSpace()
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var out []Attr
	seen := make(map[string]bool)
	err := p.items(func() error {
		key := p.ident()
		if key == "" {
			return p.errorf("expected attribute name")
		}
		if seen[key] {
			return p.errorf("duplicate attribute %q", key)
		}
		seen[key] = true
		p.skipSpace()
		if err := p.expect('='); err != nil {
			return err
		}
		v, err := p.cell()
		if err != nil {
			return err
		}
		out = append(out, Attr{Key: key, Value: v})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, p.end()
}

// ParseValue decodes a single cell.
func ParseValue(s string) (Value, error) {
	p := &cellParser{src: s}
	v, err := p.cell()
	if err != nil {
		return Value{}, err
	}
	return v, p.end()
}

type cellParser struct {
	src string
	pos int
}

func (p *cellParser) errorf(format string, args ...any) error {
	return fmt.Errorf("column %d: %s", p.pos+1, fmt.Sprintf(format, args...))
}

func (p *cellParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *cellParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *cellParser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *cellParser) end() error {
	p.skipSpace()
	if p.pos != len(p.src) {
		return p.errorf("unexpected trailing %q", p.src[p.pos:])
	}
	return nil
}

// items parses "item, item, ... ]" after an opening bracket.
func (p *cellParser) items(item func() error) error {
	p.skipSpace()
	if p.peek() == ']' {
		p.pos++
		return nil
	}
	for {
		p.skipSpace()
		if err := item(); err != nil {
			return err
		}
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return nil
		default:
			return p.errorf("expected ',' or ']'")
		}
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (p *cellParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *cellParser) cell() (Value, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '"':
		return p.quoted()
	case c == '[':
		return p.call()
	case c == '@', c == '%':
		p.pos++
		name := p.ident()
		if name == "" {
			return Value{}, p.errorf("expected name after %q", c)
		}
		if c == '@' {
			return Value{Kind: Ref, Text: name}, nil
		}
		return Value{Kind: Resource, Text: name}, nil
	case c == '#':
		p.pos++
		return p.color()
	case c == '-' || c >= '0' && c <= '9':
		return p.number()
	case c == 0:
		return Value{}, p.errorf("unexpected end of input")
	default:
		word := p.ident()
		if word == "true" || word == "false" {
			return Value{Kind: Bool, Text: word}, nil
		}
		if word == "" {
			return Value{}, p.errorf("unexpected character %q", c)
		}
		return Value{}, p.errorf("bare word %q is not a value", word)
	}
}

func (p *cellParser) quoted() (Value, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case '"':
			p.pos++
			text, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return Value{}, fmt.Errorf("column %d: invalid string literal: %w", start+1, err)
			}
			return Value{Kind: String, Text: text}, nil
		}
		p.pos++
	}
	return Value{}, fmt.Errorf("column %d: unterminated string", start+1)
}

func (p *cellParser) call() (Value, error) {
	p.pos++
	p.skipSpace()
	op := p.ident()
	if !isIdent(op) {
		return Value{}, p.errorf("expected opcode at start of nested call")
	}
	v := Value{Kind: Call, Text: op}
	p.skipSpace()
	switch p.peek() {
	case ']':
		p.pos++
		return v, nil
	case ',':
		p.pos++
	default:
		return Value{}, p.errorf("expected ',' or ']' after opcode %q", op)
	}
	err := p.items(func() error {
		a, err := p.cell()
		if err != nil {
			return err
		}
		v.Args = append(v.Args, a)
		return nil
	})
	return v, err
}

func (p *cellParser) color() (Value, error) {
	start := p.pos
	for p.pos < len(p.src) && strings.IndexByte("0123456789abcdefABCDEF", p.src[p.pos]) >= 0 {
		p.pos++
	}
	hex := strings.ToLower(p.src[start:p.pos])
	switch len(hex) {
	case 6:
		return Value{Kind: Color, Text: "ff" + hex}, nil
	case 8:
		return Value{Kind: Color, Text: hex}, nil
	}
	return Value{}, fmt.Errorf("column %d: color must have 6 or 8 hex digits, got %q", start+1, hex)
}

func (p *cellParser) number() (Value, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	digits := func() int {
		n := 0
		for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
			n++
		}
		return n
	}
	if digits() == 0 {
		return Value{}, p.errorf("malformed number")
	}
	if p.peek() == '.' {
		p.pos++
		if digits() == 0 {
			return Value{}, p.errorf("malformed number")
		}
	}
	return Value{Kind: Number, Text: p.src[start:p.pos]}, nil
}
