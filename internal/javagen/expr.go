package javagen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/naming"
	"github.com/papapumpkin/asperge/internal/records"
)

// scope resolves block references inside one generated method. Names are
// looked up in locals from the innermost block outwards, then handler
// parameters, then activity members.
type scope struct {
	locals map[string]string
	params map[string]string
	parent *scope
}

func newScope() *scope {
	return &scope{locals: map[string]string{}, params: map[string]string{}}
}

// child opens a nested block scope sharing the method's parameters.
func (s *scope) child() *scope {
	return &scope{locals: map[string]string{}, params: s.params, parent: s}
}

// local finds name in this block or any enclosing one.
func (s *scope) local(name string) (string, bool) {
	for c := s; c != nil; c = c.parent {
		if java, ok := c.locals[name]; ok {
			return java, true
		}
	}
	return "", false
}

func (g *generator) resolve(name string) (string, error) {
	if java, ok := g.scope.local(name); ok {
		return java, nil
	}
	if java, ok := g.scope.params[name]; ok {
		return java, nil
	}
	if g.members[name] {
		return name, nil
	}
	if e, ok := g.lookupView(name); ok && e.Referenced {
		return name, nil
	}
	return "", g.fail(decodeerr.KindUnresolvedReference, name, "identifier is not a variable, list, component, view or parameter")
}

// expr renders v as a Java expression.
func (g *generator) expr(v records.Value) (string, error) {
	switch v.Kind {
	case records.String:
		return javaString(v.Text), nil
	case records.Number, records.Bool:
		return v.Text, nil
	case records.Color:
		return "0x" + v.Text, nil
	case records.Resource:
		return "R.drawable." + v.Text, nil
	case records.Ref:
		return g.resolve(v.Text)
	case records.Call:
		tmpl, ok := g.in.Templates.Expressions[v.Text]
		if !ok {
			return "", g.fail(decodeerr.KindUnsupportedBlock, v.Text, "expression has no template entry")
		}
		return g.apply(v.Text, tmpl, v.Args)
	}
	return "", fmt.Errorf("unknown value kind %s", v.Kind)
}

// apply fills tmpl's slots from args.
func (g *generator) apply(op string, tmpl Template, args []records.Value) (string, error) {
	segs, err := parseFormat(tmpl.Format)
	if err != nil {
		return "", g.fail(decodeerr.KindUnsupportedBlock, op, "%v", err)
	}
	if used, variadic := slotsUsed(segs); !variadic && len(args) > used {
		return "", g.fail(decodeerr.KindUnsupportedBlock, op, "block has %d parameters, template uses %d", len(args), used)
	}
	for _, imp := range tmpl.Imports {
		g.imports[imp] = true
	}

	var b strings.Builder
	for _, s := range segs {
		if !s.isSlot {
			b.WriteString(s.lit)
			continue
		}
		if s.variadic {
			var parts []string
			for i := s.slot; i < len(args); i++ {
				e, err := g.expr(args[i])
				if err != nil {
					return "", err
				}
				parts = append(parts, e)
			}
			b.WriteString(strings.Join(parts, ", "))
			continue
		}
		if s.slot >= len(args) {
			return "", g.fail(decodeerr.KindUnsupportedBlock, op, "template needs parameter %d, block has %d", s.slot, len(args))
		}
		text, err := g.slot(op, s.mod, args[s.slot])
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

// slotsUsed returns how many leading arguments segs consume and whether a
// variadic slot takes the rest.
func slotsUsed(segs []segment) (int, bool) {
	n := 0
	for _, s := range segs {
		if !s.isSlot {
			continue
		}
		if s.variadic {
			return 0, true
		}
		n = max(n, s.slot+1)
	}
	return n, false
}

// slot renders one argument through a modifier.
func (g *generator) slot(op, mod string, v records.Value) (string, error) {
	switch mod {
	case "int":
		if v.Kind == records.Color {
			return g.expr(v)
		}
		if v.Kind == records.Number {
			if _, err := strconv.Atoi(v.Text); err == nil {
				return v.Text, nil
			}
		}
		e, err := g.expr(v)
		if err != nil {
			return "", err
		}
		return "(int)(" + e + ")", nil

	case "class":
		if v.Kind != records.String {
			return "", g.fail(decodeerr.KindUnsupportedBlock, op, "screen parameter must be a string, got %s", v.Kind)
		}
		if !g.in.Files.HasActivity(v.Text) {
			return "", g.fail(decodeerr.KindUnresolvedReference, v.Text, "no activity with layout %q", v.Text)
		}
		return naming.ActivityName(v.Text) + ".class", nil

	case "visibility":
		if v.Kind != records.String {
			return "", g.fail(decodeerr.KindUnsupportedBlock, op, "visibility parameter must be a string, got %s", v.Kind)
		}
		switch v.Text {
		case "visible", "invisible", "gone":
			return "View." + strings.ToUpper(v.Text), nil
		}
		return "", g.fail(decodeerr.KindUnsupportedBlock, op, "unknown visibility %q", v.Text)

	case "drawable":
		if v.Kind != records.Resource {
			return "", g.fail(decodeerr.KindUnsupportedBlock, op, "image parameter must be a resource, got %s", v.Kind)
		}
		if !g.in.Resources.HasImage(v.Text) {
			return "", g.fail(decodeerr.KindUnresolvedReference, v.Text, "image resource %q is not bundled", v.Text)
		}
		return "R.drawable." + v.Text, nil

	case "func":
		if v.Kind != records.Ref {
			return "", g.fail(decodeerr.KindUnsupportedBlock, op, "function parameter must be a reference, got %s", v.Kind)
		}
		if _, ok := g.tree.Func(v.Text); !ok {
			return "", g.fail(decodeerr.KindUnresolvedReference, v.Text, "no more-block named %q", v.Text)
		}
		return naming.HandlerMethod(v.Text, ""), nil
	}
	return g.expr(v)
}

// condition renders v without a redundant outer pair of parentheses.
func (g *generator) condition(v records.Value) (string, error) {
	e, err := g.expr(v)
	if err != nil {
		return "", err
	}
	return unwrap(e), nil
}

// unwrap strips one pair of parentheses enclosing all of s.
func unwrap(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth, inString := 0, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return s
			}
		}
	}
	return s[1 : len(s)-1]
}

// javaString quotes s as a Java string literal.
func javaString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
