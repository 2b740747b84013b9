// Package layout renders a view tree as an Android XML layout file.
package layout

import (
	"encoding/xml"
	"strings"

	"github.com/papapumpkin/asperge/internal/naming"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/view"
)

// XML namespaces declared on the root element.
const (
	NSAndroid = "http://schemas.android.com/apk/res/android"
	NSTools   = "http://schemas.android.com/tools"
)

// DefaultIndent is the indentation unit used by Generate.
const DefaultIndent = "\t"

// Generator renders layouts with a configurable indentation unit.
type Generator struct {
	Indent string
}

// Generate renders t with the default indentation.
func Generate(t *view.Tree, res records.Resources, files records.Files, meta records.Metadata) (string, error) {
	return Generator{Indent: DefaultIndent}.Generate(t, res, files, meta)
}

// Generate walks t depth first and emits one element per node. Resource
// and custom view references are resolved against res and files.
func (g Generator) Generate(t *view.Tree, res records.Resources, files records.Files, meta records.Metadata) (string, error) {
	r := &renderer{indent: g.Indent, layout: t.Layout, res: res, files: files}
	if r.indent == "" {
		r.indent = DefaultIndent
	}

	rootAttrs := []xmlAttr{
		{"xmlns:android", NSAndroid},
		{"xmlns:tools", NSTools},
	}
	if files.HasActivity(t.Layout) && meta.PackageName != "" {
		rootAttrs = append(rootAttrs, xmlAttr{"tools:context", meta.PackageName + "." + naming.ActivityName(t.Layout)})
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	if err := r.node(&b, t.Root, view.Leaf, 0, rootAttrs); err != nil {
		return "", err
	}
	return b.String(), nil
}

type xmlAttr struct {
	name  string
	value string
}

type renderer struct {
	indent string
	layout string
	res    records.Resources
	files  records.Files
}

// node writes n at depth. parent is the container kind n is laid out in.
func (r *renderer) node(b *strings.Builder, n *view.Node, parent view.ContainerKind, depth int, extra []xmlAttr) error {
	attrs, err := r.attrs(n, parent)
	if err != nil {
		return err
	}
	attrs = append(extra, attrs...)

	widget := n.Component.Widget
	r.open(b, widget, attrs, depth, len(n.Children) == 0)
	if len(n.Children) == 0 {
		return nil
	}

	childDepth, childParent := depth+1, n.Component.Container
	if n.Component.Container == view.Scroll {
		r.open(b, "LinearLayout", implicitLinear(n.Component), depth+1, false)
		childDepth, childParent = depth+2, view.Linear
	}
	for _, c := range n.Children {
		if err := r.node(b, c, childParent, childDepth, nil); err != nil {
			return err
		}
	}
	if n.Component.Container == view.Scroll {
		r.close(b, "LinearLayout", depth+1)
	}
	r.close(b, widget, depth)
	return nil
}

// implicitLinear returns the attributes of the LinearLayout a scroll
// container wraps around its children.
func implicitLinear(c view.Component) []xmlAttr {
	if c.Horizontal {
		return []xmlAttr{
			{"android:layout_width", "wrap_content"},
			{"android:layout_height", "match_parent"},
			{"android:orientation", "horizontal"},
		}
	}
	return []xmlAttr{
		{"android:layout_width", "match_parent"},
		{"android:layout_height", "wrap_content"},
		{"android:orientation", "vertical"},
	}
}

func (r *renderer) open(b *strings.Builder, widget string, attrs []xmlAttr, depth int, selfClose bool) {
	ind := strings.Repeat(r.indent, depth)
	b.WriteString(ind + "<" + widget)
	for _, a := range attrs {
		b.WriteString("\n" + ind + r.indent + a.name + `="`)
		// strings.Builder writes never fail.
		_ = xml.EscapeText(b, []byte(a.value))
		b.WriteString(`"`)
	}
	if selfClose {
		b.WriteString("/>\n")
		return
	}
	b.WriteString(">\n")
}

func (r *renderer) close(b *strings.Builder, widget string, depth int) {
	b.WriteString(strings.Repeat(r.indent, depth) + "</" + widget + ">\n")
}
