package view

// IDEntry is one view id with the Java type its lookup field needs.
type IDEntry struct {
	ID         string
	Component  Component
	Referenced bool
}

// IDIndex maps the view ids of one layout to their Java types and records
// which ids are referenced by logic and so need a generated field.
type IDIndex struct {
	Layout  string
	entries []IDEntry
	byID    map[string]int
}

// NewIDIndex indexes t. referenced holds every identifier used by any
// logic block in the project.
func NewIDIndex(t *Tree, referenced map[string]bool) *IDIndex {
	x := &IDIndex{Layout: t.Layout, byID: make(map[string]int, len(t.nodes))}
	for _, n := range t.nodes {
		x.byID[n.ID] = len(x.entries)
		x.entries = append(x.entries, IDEntry{
			ID:         n.ID,
			Component:  n.Component,
			Referenced: referenced[n.ID],
		})
	}
	return x
}

// Lookup returns the entry for id.
func (x *IDIndex) Lookup(id string) (IDEntry, bool) {
	i, ok := x.byID[id]
	if !ok {
		return IDEntry{}, false
	}
	return x.entries[i], true
}

// Referenced returns the referenced entries in layout order.
func (x *IDIndex) Referenced() []IDEntry {
	var out []IDEntry
	for _, e := range x.entries {
		if e.Referenced {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of indexed ids.
func (x *IDIndex) Len() int {
	return len(x.entries)
}
