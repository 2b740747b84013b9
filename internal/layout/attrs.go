package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/section"
	"github.com/papapumpkin/asperge/internal/view"
)

// attrCtx is what an attribute mapping sees besides the value itself.
type attrCtx struct {
	r      *renderer
	node   *view.Node
	parent view.ContainerKind
	key    string
}

type attrFunc func(c attrCtx, v records.Value) ([]xmlAttr, error)

var attrTable = map[string]attrFunc{
	"width":         skip, // emitted up front
	"height":        skip,
	"text":          textAttr("android:text"),
	"hint":          textAttr("android:hint"),
	"textSize":      unitAttr("android:textSize", "sp"),
	"textColor":     colorAttr("android:textColor"),
	"hintColor":     colorAttr("android:textColorHint"),
	"bgColor":       colorAttr("android:background"),
	"textStyle":     stringAttr("android:textStyle"),
	"gravity":       stringAttr("android:gravity"),
	"layoutGravity": stringAttr("android:layout_gravity"),
	"padding":       unitAttr("android:padding", "dp"),
	"margin":        unitAttr("android:layout_margin", "dp"),
	"weight":        weightAttr,
	"orientation":   orientationAttr,
	"image":         imageAttr,
	"scaleType":     scaleTypeAttr,
	"enabled":       boolAttr("android:enabled"),
	"checked":       boolAttr("android:checked"),
	"clickable":     boolAttr("android:clickable"),
	"singleLine":    boolAttr("android:singleLine"),
	"lines":         intAttr("android:lines"),
	"inputType":     stringAttr("android:inputType"),
	"max":           intAttr("android:max"),
	"progress":      intAttr("android:progress"),
	"alpha":         numberAttr("android:alpha"),
	"visibility":    visibilityAttr,
	"listItem":      listItemAttr,
	"x":             positionAttr("android:layout_marginLeft", "android:layout_alignParentLeft"),
	"y":             positionAttr("android:layout_marginTop", "android:layout_alignParentTop"),
}

// attrs returns the id, size and mapped attributes of n in record order.
func (r *renderer) attrs(n *view.Node, parent view.ContainerKind) ([]xmlAttr, error) {
	out := []xmlAttr{{"android:id", "@+id/" + n.ID}}
	for _, key := range []string{"width", "height"} {
		size := "wrap_content"
		if v, ok := n.Attr(key); ok {
			var err error
			if size, err = dimension(v); err != nil {
				return nil, r.unsupported(n, key, "%v", err)
			}
		}
		out = append(out, xmlAttr{"android:layout_" + key, size})
	}

	for _, a := range n.Attrs {
		fn, ok := attrTable[a.Key]
		if !ok {
			return nil, r.unsupported(n, a.Key, "attribute has no mapping entry")
		}
		mapped, err := fn(attrCtx{r: r, node: n, parent: parent, key: a.Key}, a.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, mapped...)
	}
	return out, nil
}

func (r *renderer) unsupported(n *view.Node, key, format string, args ...any) error {
	return &decodeerr.Error{
		Kind:    decodeerr.KindUnsupportedAttribute,
		Section: section.View,
		Screen:  r.layout,
		Tag:     n.ID + "." + key,
		Line:    n.Line,
		Err:     fmt.Errorf(format, args...),
	}
}

func (c attrCtx) fail(format string, args ...any) error {
	return c.r.unsupported(c.node, c.key, format, args...)
}

func (c attrCtx) unresolved(name, format string, args ...any) error {
	return &decodeerr.Error{
		Kind:    decodeerr.KindUnresolvedReference,
		Section: section.View,
		Screen:  c.r.layout,
		Tag:     name,
		Line:    c.node.Line,
		Err:     fmt.Errorf(format, args...),
	}
}

// dimension maps -1 and -2 to the Android size constants and any other
// integer to density independent pixels.
func dimension(v records.Value) (string, error) {
	n, err := integer(v)
	if err != nil {
		return "", err
	}
	switch n {
	case -1:
		return "match_parent", nil
	case -2:
		return "wrap_content", nil
	}
	if n < 0 {
		return "", fmt.Errorf("negative size %d", n)
	}
	return strconv.Itoa(n) + "dp", nil
}

func integer(v records.Value) (int, error) {
	if v.Kind != records.Number {
		return 0, fmt.Errorf("want number, got %s", v.Kind)
	}
	n, err := strconv.Atoi(v.Text)
	if err != nil {
		return 0, fmt.Errorf("want integer, got %s", v.Text)
	}
	return n, nil
}

func want(c attrCtx, v records.Value, kind records.ValueKind) error {
	if v.Kind != kind {
		return c.fail("want %s, got %s", kind, v.Kind)
	}
	return nil
}

func skip(attrCtx, records.Value) ([]xmlAttr, error) { return nil, nil }

func stringAttr(name string) attrFunc {
	return func(c attrCtx, v records.Value) ([]xmlAttr, error) {
		if err := want(c, v, records.String); err != nil {
			return nil, err
		}
		return []xmlAttr{{name, v.Text}}, nil
	}
}

// textAttr escapes the characters aapt treats specially in literal text.
func textAttr(name string) attrFunc {
	return func(c attrCtx, v records.Value) ([]xmlAttr, error) {
		if err := want(c, v, records.String); err != nil {
			return nil, err
		}
		s := strings.NewReplacer(`\`, `\\`, `'`, `\'`, `"`, `\"`).Replace(v.Text)
		if strings.HasPrefix(s, "@") || strings.HasPrefix(s, "?") {
			s = `\` + s
		}
		return []xmlAttr{{name, s}}, nil
	}
}

func unitAttr(name, unit string) attrFunc {
	return func(c attrCtx, v records.Value) ([]xmlAttr, error) {
		n, err := integer(v)
		if err != nil {
			return nil, c.fail("%v", err)
		}
		return []xmlAttr{{name, strconv.Itoa(n) + unit}}, nil
	}
}

func intAttr(name string) attrFunc {
	return func(c attrCtx, v records.Value) ([]xmlAttr, error) {
		n, err := integer(v)
		if err != nil {
			return nil, c.fail("%v", err)
		}
		return []xmlAttr{{name, strconv.Itoa(n)}}, nil
	}
}

func numberAttr(name string) attrFunc {
	return func(c attrCtx, v records.Value) ([]xmlAttr, error) {
		if err := want(c, v, records.Number); err != nil {
			return nil, err
		}
		return []xmlAttr{{name, v.Text}}, nil
	}
}

func colorAttr(name string) attrFunc {
	return func(c attrCtx, v records.Value) ([]xmlAttr, error) {
		if err := want(c, v, records.Color); err != nil {
			return nil, err
		}
		return []xmlAttr{{name, "#" + v.Text}}, nil
	}
}

func boolAttr(name string) attrFunc {
	return func(c attrCtx, v records.Value) ([]xmlAttr, error) {
		if err := want(c, v, records.Bool); err != nil {
			return nil, err
		}
		return []xmlAttr{{name, v.Text}}, nil
	}
}

func weightAttr(c attrCtx, v records.Value) ([]xmlAttr, error) {
	if c.parent != view.Linear {
		return nil, c.fail("weight only applies inside a LinearLayout")
	}
	return numberAttr("android:layout_weight")(c, v)
}

func orientationAttr(c attrCtx, v records.Value) ([]xmlAttr, error) {
	if c.node.Component.Container != view.Linear {
		return nil, c.fail("orientation only applies to a LinearLayout")
	}
	if v.Kind != records.String || (v.Text != "vertical" && v.Text != "horizontal") {
		return nil, c.fail("orientation must be \"vertical\" or \"horizontal\"")
	}
	return []xmlAttr{{"android:orientation", v.Text}}, nil
}

func imageAttr(c attrCtx, v records.Value) ([]xmlAttr, error) {
	if err := want(c, v, records.Resource); err != nil {
		return nil, err
	}
	if !c.r.res.HasImage(v.Text) {
		return nil, c.unresolved(v.Text, "image resource %q is not bundled", v.Text)
	}
	return []xmlAttr{{"android:src", "@drawable/" + v.Text}}, nil
}

// scaleTypeAttr converts CENTER_CROP style names to centerCrop.
func scaleTypeAttr(c attrCtx, v records.Value) ([]xmlAttr, error) {
	if err := want(c, v, records.String); err != nil {
		return nil, err
	}
	parts := strings.Split(strings.ToLower(v.Text), "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return []xmlAttr{{"android:scaleType", strings.Join(parts, "")}}, nil
}

func visibilityAttr(c attrCtx, v records.Value) ([]xmlAttr, error) {
	switch {
	case v.Kind != records.String:
	case v.Text == "visible", v.Text == "invisible", v.Text == "gone":
		return []xmlAttr{{"android:visibility", v.Text}}, nil
	}
	return nil, c.fail("visibility must be visible, invisible or gone")
}

func listItemAttr(c attrCtx, v records.Value) ([]xmlAttr, error) {
	if err := want(c, v, records.String); err != nil {
		return nil, err
	}
	if !c.r.files.HasCustomView(v.Text) {
		return nil, c.unresolved(v.Text, "list item layout %q is not a custom view", v.Text)
	}
	return []xmlAttr{{"tools:listitem", "@layout/" + v.Text}}, nil
}

// positionAttr places a child absolutely inside a RelativeLayout.
func positionAttr(margin, align string) attrFunc {
	return func(c attrCtx, v records.Value) ([]xmlAttr, error) {
		if c.parent != view.Relative {
			return nil, c.fail("absolute position only applies inside a RelativeLayout")
		}
		n, err := integer(v)
		if err != nil {
			return nil, c.fail("%v", err)
		}
		return []xmlAttr{{margin, strconv.Itoa(n) + "dp"}, {align, "true"}}, nil
	}
}
