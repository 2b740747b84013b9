package logic

import (
	"fmt"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/section"
)

// Build groups the logic sections by activity and rebuilds each handler's
// block nesting. The result is keyed by activity name.
func Build(sections []records.LogicSection) (map[string]*Tree, error) {
	trees := make(map[string]*Tree)
	for _, s := range sections {
		t, ok := trees[s.Activity]
		if !ok {
			t = &Tree{Activity: s.Activity}
			trees[s.Activity] = t
		}
		if err := t.add(s); err != nil {
			return nil, err
		}
	}
	return trees, nil
}

func (t *Tree) add(s records.LogicSection) error {
	switch s.Kind {
	case records.LogicVars:
		t.Vars = append(t.Vars, s.Vars...)
	case records.LogicLists:
		t.Lists = append(t.Lists, s.Lists...)
	case records.LogicComponents:
		t.Components = append(t.Components, s.Components...)
	case records.LogicFuncs:
		t.Funcs = append(t.Funcs, s.Funcs...)
	case records.LogicBlocks:
		key := s.HandlerKey()
		if t.Handler(s.Target, s.Event) != nil {
			return treeError(t.Activity, key, "", s.Line, "duplicate handler")
		}
		b := &seqBuilder{activity: t.Activity, handler: key, recs: s.Blocks}
		blocks, err := b.sequence(0)
		if err != nil {
			return err
		}
		t.Handlers = append(t.Handlers, &Handler{
			Key:    key,
			Target: s.Target,
			Event:  s.Event,
			Kind:   classify(s.Target, s.Event),
			Line:   s.Line,
			Blocks: blocks,
		})
	}
	return t.checkDeclarations()
}

// checkDeclarations rejects a name declared twice across vars, lists,
// components and more-blocks, since generated fields share one namespace.
func (t *Tree) checkDeclarations() error {
	seen := make(map[string]bool)
	check := func(name string) error {
		if seen[name] {
			return treeError(t.Activity, "", name, 0, "%q declared more than once", name)
		}
		seen[name] = true
		return nil
	}
	for _, v := range t.Vars {
		if err := check(v.Name); err != nil {
			return err
		}
	}
	for _, l := range t.Lists {
		if err := check(l.Name); err != nil {
			return err
		}
	}
	for _, c := range t.Components {
		if err := check(c.Name); err != nil {
			return err
		}
	}
	for _, f := range t.Funcs {
		if err := check(f.Name); err != nil {
			return err
		}
	}
	return nil
}

// seqBuilder consumes the flat records of one handler.
type seqBuilder struct {
	activity string
	handler  string
	recs     []records.BlockRecord
	pos      int
}

// sequence reads sibling records at depth until a shallower record or the
// end of input. Deeper records are only legal as the body of a control
// block or if-chain branch opened by the caller.
func (b *seqBuilder) sequence(depth int) ([]*Block, error) {
	var out []*Block
	for b.pos < len(b.recs) {
		r := b.recs[b.pos]
		if r.Depth < depth {
			return out, nil
		}
		if r.Depth > depth {
			return nil, b.errorf(r, "depth %d has no open block at depth %d", r.Depth, r.Depth-1)
		}
		b.pos++

		switch {
		case r.Opcode == OpElseIf || r.Opcode == OpElse:
			var prev *Block
			if n := len(out); n > 0 {
				prev = out[n-1]
			}
			if prev == nil || prev.Opcode != OpIf || prev.Closed() {
				return nil, b.errorf(r, "%s does not follow an open if", r.Opcode)
			}
			body, err := b.sequence(depth + 1)
			if err != nil {
				return nil, err
			}
			prev.Branches = append(prev.Branches, Branch{Opcode: r.Opcode, Params: r.Params, Line: r.Line, Body: body})

		case IsControl(r.Opcode):
			body, err := b.sequence(depth + 1)
			if err != nil {
				return nil, err
			}
			out = append(out, &Block{
				ID: r.ID, Kind: Control, Opcode: r.Opcode, Params: r.Params, Line: r.Line,
				Branches: []Branch{{Opcode: r.Opcode, Params: r.Params, Line: r.Line, Body: body}},
			})

		default:
			kind := Statement
			if r.Opcode == OpLocalVar {
				kind = Local
			}
			out = append(out, &Block{ID: r.ID, Kind: kind, Opcode: r.Opcode, Params: r.Params, Line: r.Line})
		}
	}
	return out, nil
}

func (b *seqBuilder) errorf(r records.BlockRecord, format string, args ...any) error {
	return treeError(b.activity, b.handler, r.Opcode, r.Line, format, args...)
}

func treeError(activity, handler, tag string, line int, format string, args ...any) error {
	return &decodeerr.Error{
		Kind:    decodeerr.KindMalformedLogicTree,
		Section: section.Logic,
		Screen:  activity,
		Handler: handler,
		Tag:     tag,
		Line:    line,
		Err:     fmt.Errorf(format, args...),
	}
}
