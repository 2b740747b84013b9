package records

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/papapumpkin/asperge/internal/section"
)

// LogicKind tags the kind of a logic section.
type LogicKind int

// Logic section kinds, chosen by the header suffix.
const (
	LogicVars       LogicKind = iota // @X.java_var
	LogicLists                       // @X.java_list
	LogicComponents                  // @X.java_components
	LogicFuncs                       // @X.java_func
	LogicBlocks                      // @X.java_<target>_<event>
)

// Variable types of @X.java_var records.
const (
	VarBoolean = 0
	VarNumber  = 1
	VarString  = 2
	VarMap     = 3
)

// List types of @X.java_list records.
const (
	ListNumber = 1
	ListString = 2
	ListMap    = 3
)

// LogicSection is one header and its records. Only the slice matching Kind
// is populated.
type LogicSection struct {
	Activity string
	Kind     LogicKind
	Target   string // blocks only: view id, lifecycle name or more-block name
	Event    string // blocks only
	Line     int

	Vars       []VarDecl
	Lists      []ListDecl
	Components []ComponentDecl
	Funcs      []FuncDecl
	Blocks     []BlockRecord
}

// HandlerKey returns the section key naming the event handler.
func (s LogicSection) HandlerKey() string {
	return s.Activity + ".java_" + s.Target + "_" + s.Event
}

// VarDecl declares an activity-level variable.
type VarDecl struct {
	Type int
	Name string
}

// ListDecl declares an activity-level list.
type ListDecl struct {
	Type int
	Name string
}

// ComponentDecl declares a non-visual component such as an intent or timer.
type ComponentDecl struct {
	Kind  string
	Name  string
	Param string
}

// FuncParam is one parameter of a more-block signature.
type FuncParam struct {
	Type byte // 's' string, 'd' number, 'b' boolean, 'm' map
	Name string
}

// FuncDecl declares a more-block (user-defined method).
type FuncDecl struct {
	Name   string
	Spec   string
	Params []FuncParam
}

// BlockRecord is one flat block row in program order.
type BlockRecord struct {
	ID     string
	Depth  int
	Opcode string
	Params []Value
	Line   int
}

// ParseLogic parses the logic section into its headed sections in file order.
func ParseLogic(text string) ([]LogicSection, error) {
	var out []LogicSection
	for _, l := range lines(text) {
		if l.isHeader() {
			s, err := parseLogicHeader(l)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
			continue
		}
		if len(out) == 0 {
			return nil, malformed(section.Logic, l.num, "record before first section header")
		}
		if err := parseLogicRecord(&out[len(out)-1], l); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseLogicHeader(l line) (LogicSection, error) {
	activity, suffix, ok := strings.Cut(l.text[1:], ".java_")
	if !ok || !isIdent(activity) || suffix == "" {
		return LogicSection{}, malformed(section.Logic, l.num, "invalid header %q", l.text)
	}
	s := LogicSection{Activity: activity, Line: l.num}
	switch suffix {
	case "var":
		s.Kind = LogicVars
	case "list":
		s.Kind = LogicLists
	case "components":
		s.Kind = LogicComponents
	case "func":
		s.Kind = LogicFuncs
	default:
		i := strings.LastIndex(suffix, "_")
		if i <= 0 || i == len(suffix)-1 {
			return LogicSection{}, malformed(section.Logic, l.num, "unknown section kind %q", suffix)
		}
		s.Kind = LogicBlocks
		s.Target, s.Event = suffix[:i], suffix[i+1:]
	}
	return s, nil
}

func parseLogicRecord(s *LogicSection, l line) error {
	switch s.Kind {
	case LogicVars, LogicLists:
		f, err := fields(section.Logic, l, ":", 2)
		if err != nil {
			return err
		}
		typ, err := strconv.Atoi(f[0])
		if err != nil || !isIdent(f[1]) {
			return malformed(section.Logic, l.num, "invalid declaration %q", l.text)
		}
		if s.Kind == LogicVars {
			if typ < VarBoolean || typ > VarMap {
				return malformed(section.Logic, l.num, "unknown variable type %d", typ)
			}
			s.Vars = append(s.Vars, VarDecl{Type: typ, Name: f[1]})
			return nil
		}
		if typ < ListNumber || typ > ListMap {
			return malformed(section.Logic, l.num, "unknown list type %d", typ)
		}
		s.Lists = append(s.Lists, ListDecl{Type: typ, Name: f[1]})
	case LogicComponents:
		f, err := fields(section.Logic, l, "\t", 3)
		if err != nil {
			return err
		}
		if f[0] == "" || !isIdent(f[1]) {
			return malformed(section.Logic, l.num, "invalid component %q", l.text)
		}
		s.Components = append(s.Components, ComponentDecl{Kind: f[0], Name: f[1], Param: f[2]})
	case LogicFuncs:
		f, err := fields(section.Logic, l, "\t", 2)
		if err != nil {
			return err
		}
		fn, err := parseFuncSpec(f[0], f[1])
		if err != nil {
			return malformed(section.Logic, l.num, "%v", err)
		}
		s.Funcs = append(s.Funcs, fn)
	case LogicBlocks:
		f, err := fields(section.Logic, l, "\t", 4)
		if err != nil {
			return err
		}
		depth, err := strconv.Atoi(f[1])
		if err != nil || depth < 0 {
			return malformed(section.Logic, l.num, "invalid depth %q", f[1])
		}
		if !isIdent(f[2]) {
			return malformed(section.Logic, l.num, "invalid opcode %q", f[2])
		}
		params, err := ParseList(f[3])
		if err != nil {
			return malformed(section.Logic, l.num, "parameters of %s: %v", f[2], err)
		}
		s.Blocks = append(s.Blocks, BlockRecord{ID: f[0], Depth: depth, Opcode: f[2], Params: params, Line: l.num})
	}
	return nil
}

// parseFuncSpec reads "label %s.name %d.count" style signatures.
func parseFuncSpec(name, spec string) (FuncDecl, error) {
	if !isIdent(name) {
		return FuncDecl{}, fmt.Errorf("invalid more-block name %q", name)
	}
	fn := FuncDecl{Name: name, Spec: spec}
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(spec) {
		if !strings.HasPrefix(tok, "%") {
			continue
		}
		typ, pname, ok := strings.Cut(tok[1:], ".")
		if !ok || len(typ) != 1 || strings.IndexByte("sdbm", typ[0]) < 0 || !isIdent(pname) {
			return FuncDecl{}, fmt.Errorf("invalid parameter %q in %q", tok, spec)
		}
		if seen[pname] {
			return FuncDecl{}, fmt.Errorf("duplicate parameter %q in %q", pname, spec)
		}
		seen[pname] = true
		fn.Params = append(fn.Params, FuncParam{Type: typ[0], Name: pname})
	}
	return fn, nil
}
