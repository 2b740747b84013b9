// Package javagen renders an activity's logic tree as Java source.
//
// Leaf blocks and nested expressions are translated through opcode keyed
// template tables. Control blocks, declarations, listeners and lifecycle
// overrides are emitted structurally. An opcode, event or identifier with
// no mapping is fatal; nothing is ever skipped or emitted as a comment.
package javagen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/logic"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/section"
	"github.com/papapumpkin/asperge/internal/view"
)

// DefaultIndent is the indentation unit used when Input.Indent is empty.
const DefaultIndent = "\t"

// Input is everything needed to render one activity.
type Input struct {
	Tree      *logic.Tree // nil renders an activity without logic
	Index     *view.IDIndex
	Activity  string
	Layout    string
	Meta      records.Metadata
	Files     records.Files
	Resources records.Resources
	Compat    bool
	Templates *Templates // nil uses Default()
	Indent    string
}

type generator struct {
	in      Input
	tree    *logic.Tree
	imports map[string]bool
	members map[string]bool
	kinds   map[string]string // component name to kind
	scope   *scope
	handler string
	line    int
	w       *writer
	repeats int
}

// Generate renders the activity class for in.
func Generate(in Input) (string, error) {
	if in.Templates == nil {
		in.Templates = Default()
	}
	if in.Indent == "" {
		in.Indent = DefaultIndent
	}
	tree := in.Tree
	if tree == nil {
		tree = &logic.Tree{Activity: in.Activity}
	}
	g := &generator{
		in:      in,
		tree:    tree,
		imports: map[string]bool{"android.os.Bundle": true},
		members: map[string]bool{},
		kinds:   map[string]string{},
		scope:   newScope(),
		w:       &writer{indent: in.Indent},
	}
	body, err := g.class()
	if err != nil {
		return "", err
	}
	return g.header() + body, nil
}

func (g *generator) lookupView(id string) (view.IDEntry, bool) {
	if g.in.Index == nil {
		return view.IDEntry{}, false
	}
	return g.in.Index.Lookup(id)
}

func (g *generator) referencedViews() []view.IDEntry {
	if g.in.Index == nil {
		return nil
	}
	return g.in.Index.Referenced()
}

// header renders the package clause and the sorted imports collected while
// rendering the class body.
func (g *generator) header() string {
	imps := make([]string, 0, len(g.imports))
	for imp := range g.imports {
		imps = append(imps, imp)
	}
	sort.Strings(imps)

	var b strings.Builder
	fmt.Fprintf(&b, "package %s;\n\n", g.in.Meta.PackageName)
	for _, imp := range imps {
		fmt.Fprintf(&b, "import %s;\n", imp)
	}
	b.WriteString("\n")
	return b.String()
}

func (g *generator) class() (string, error) {
	base := "Activity"
	if g.in.Compat {
		base = "AppCompatActivity"
		g.imports["androidx.appcompat.app.AppCompatActivity"] = true
	} else {
		g.imports["android.app.Activity"] = true
	}

	w := g.w
	w.open("public class %s extends %s {", g.in.Activity, base)
	if err := g.fields(); err != nil {
		return "", err
	}

	w.blank()
	w.line("@Override")
	w.open("protected void onCreate(Bundle _savedInstanceState) {")
	w.line("super.onCreate(_savedInstanceState);")
	w.line("setContentView(R.layout.%s);", g.in.Layout)
	w.line("initialize(_savedInstanceState);")
	w.line("initializeLogic();")
	w.close("}")

	if err := g.initialize(); err != nil {
		return "", err
	}

	w.blank()
	w.open("private void initializeLogic() {")
	if h := g.tree.Handler(logic.InitTarget, logic.InitEvent); h != nil {
		if err := g.body(h, nil); err != nil {
			return "", err
		}
	}
	w.close("}")

	if err := g.handlers(); err != nil {
		return "", err
	}
	w.close("}")
	return w.String(), nil
}

// handlers emits one method per non-init handler in source order, then
// empty bodies for more-blocks declared without one.
func (g *generator) handlers() error {
	defined := map[string]bool{}
	for _, h := range g.tree.Handlers {
		var err error
		switch h.Kind {
		case logic.HandlerInit:
			continue
		case logic.HandlerView:
			err = g.viewHandler(h)
		case logic.HandlerLifecycle:
			err = g.lifecycle(h)
		case logic.HandlerMoreBlock:
			defined[h.Target] = true
			err = g.moreBlock(h)
		}
		if err != nil {
			return err
		}
	}
	for _, fn := range g.tree.Funcs {
		if defined[fn.Name] {
			continue
		}
		h := &logic.Handler{Key: g.tree.Activity + ".java_" + fn.Name + "_" + logic.MoreBlockEvent, Target: fn.Name, Event: logic.MoreBlockEvent, Kind: logic.HandlerMoreBlock}
		if err := g.moreBlock(h); err != nil {
			return err
		}
	}
	return nil
}

// body emits h's blocks in a fresh scope holding params.
func (g *generator) body(h *logic.Handler, params map[string]string) error {
	g.handler = h.Key
	g.scope = newScope()
	for name, java := range params {
		g.scope.params[name] = java
	}
	g.repeats = 0
	return g.blocks(h.Blocks)
}

func (g *generator) fail(kind decodeerr.Kind, tag, format string, args ...any) error {
	return &decodeerr.Error{
		Kind:    kind,
		Section: section.Logic,
		Screen:  g.in.Activity,
		Handler: g.handler,
		Tag:     tag,
		Line:    g.line,
		Err:     fmt.Errorf(format, args...),
	}
}

// writer accumulates indented Java lines.
type writer struct {
	b      strings.Builder
	indent string
	depth  int
}

func (w *writer) line(format string, args ...any) {
	w.b.WriteString(strings.Repeat(w.indent, w.depth))
	fmt.Fprintf(&w.b, format, args...)
	w.b.WriteString("\n")
}

func (w *writer) open(format string, args ...any) {
	w.line(format, args...)
	w.depth++
}

func (w *writer) close(text string) {
	w.depth--
	w.line("%s", text)
}

func (w *writer) blank() {
	w.b.WriteString("\n")
}

func (w *writer) String() string {
	return w.b.String()
}
