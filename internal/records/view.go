package records

import (
	"strconv"
	"strings"

	"github.com/papapumpkin/asperge/internal/section"
)

// View section extensions.
const (
	ExtLayout = "xml"
	ExtFab    = "xml_fab"
)

// ViewSection is one layout header and its view records in file order.
type ViewSection struct {
	Layout  string
	Ext     string
	Line    int
	Records []ViewRecord
}

// ViewRecord is one component row. Parent is empty for the root.
type ViewRecord struct {
	ID     string
	Parent string
	Type   int
	Attrs  []Attr
	Line   int
}

// Attr returns the attribute with the given key.
func (r ViewRecord) Attr(key string) (Value, bool) {
	for _, a := range r.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return Value{}, false
}

// ParseView parses the view section into layout sections in file order.
func ParseView(text string) ([]ViewSection, error) {
	var out []ViewSection
	for _, l := range lines(text) {
		if l.isHeader() {
			name, ext, ok := strings.Cut(l.text[1:], ".")
			if !ok || !isIdent(name) || (ext != ExtLayout && ext != ExtFab) {
				return nil, malformed(section.View, l.num, "invalid header %q", l.text)
			}
			out = append(out, ViewSection{Layout: name, Ext: ext, Line: l.num})
			continue
		}
		if len(out) == 0 {
			return nil, malformed(section.View, l.num, "record before first layout header")
		}
		rec, err := parseViewRecord(l)
		if err != nil {
			return nil, err
		}
		cur := &out[len(out)-1]
		cur.Records = append(cur.Records, rec)
	}
	return out, nil
}

func parseViewRecord(l line) (ViewRecord, error) {
	f, err := fields(section.View, l, "\t", 4)
	if err != nil {
		return ViewRecord{}, err
	}
	if !isIdent(f[0]) {
		return ViewRecord{}, malformed(section.View, l.num, "invalid view id %q", f[0])
	}
	parent := f[1]
	if parent == "-" {
		parent = ""
	} else if !isIdent(parent) {
		return ViewRecord{}, malformed(section.View, l.num, "invalid parent id %q", parent)
	}
	typ, err := strconv.Atoi(f[2])
	if err != nil || typ < 0 {
		return ViewRecord{}, malformed(section.View, l.num, "invalid component type %q", f[2])
	}
	attrs, err := ParseAttrs(f[3])
	if err != nil {
		return ViewRecord{}, malformed(section.View, l.num, "attributes of %s: %v", f[0], err)
	}
	return ViewRecord{ID: f[0], Parent: parent, Type: typ, Attrs: attrs, Line: l.num}, nil
}
