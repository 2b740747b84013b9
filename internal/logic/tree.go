// Package logic rebuilds per-activity block trees from the flat logic
// records. Nesting is recovered from the depth column alone: equal depths
// are siblings and a deeper record must sit directly under an opened
// control block.
package logic

import (
	"sort"

	"github.com/papapumpkin/asperge/internal/records"
)

// BlockKind tags the variant held by a Block.
type BlockKind int

const (
	// Statement is a leaf block emitted as one statement.
	Statement BlockKind = iota
	// Control opens one or more nested branches (if chains, loops, timer tasks).
	Control
	// Local declares a variable scoped to the enclosing handler.
	Local
)

// Block is one node of a handler's block sequence.
type Block struct {
	ID     string
	Kind   BlockKind
	Opcode string
	Params []records.Value
	Line   int

	// Branches holds the nested sequences of a Control block in source
	// order. An if chain has one branch per if, elseIf and else record.
	Branches []Branch
}

// Branch is one nested sequence owned by a Control block.
type Branch struct {
	Opcode string
	Params []records.Value
	Line   int
	Body   []*Block
}

// Closed reports whether an if chain already ends in an else branch.
func (b *Block) Closed() bool {
	n := len(b.Branches)
	return n > 0 && b.Branches[n-1].Opcode == OpElse
}

// HandlerKind classifies an event handler by its target and event names.
type HandlerKind int

const (
	// HandlerInit is the onCreate_initializeLogic body.
	HandlerInit HandlerKind = iota
	// HandlerView is a listener on a view (button1_onClick).
	HandlerView
	// HandlerLifecycle overrides an activity callback (onBackPressed_onBackPressed).
	HandlerLifecycle
	// HandlerMoreBlock is the body of a user-defined method (reset_moreBlock).
	HandlerMoreBlock
)

// Handler is one event handler with its rebuilt block sequence.
type Handler struct {
	Key    string
	Target string
	Event  string
	Kind   HandlerKind
	Line   int
	Blocks []*Block
}

// Tree is the rebuilt logic of one activity.
type Tree struct {
	Activity   string
	Vars       []records.VarDecl
	Lists      []records.ListDecl
	Components []records.ComponentDecl
	Funcs      []records.FuncDecl
	Handlers   []*Handler
}

// Handler returns the handler for target and event, or nil.
func (t *Tree) Handler(target, event string) *Handler {
	for _, h := range t.Handlers {
		if h.Target == target && h.Event == event {
			return h
		}
	}
	return nil
}

// Func returns the more-block declaration with the given name.
func (t *Tree) Func(name string) (records.FuncDecl, bool) {
	for _, f := range t.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return records.FuncDecl{}, false
}

// Refs returns every identifier referenced by a block parameter or named
// as a view handler target.
func (t *Tree) Refs() map[string]bool {
	refs := make(map[string]bool)
	for _, h := range t.Handlers {
		if h.Kind == HandlerView {
			refs[h.Target] = true
		}
		Walk(h.Blocks, func(b *Block) {
			collectRefs(refs, b.Params)
			for _, br := range b.Branches {
				collectRefs(refs, br.Params)
			}
		})
	}
	return refs
}

// Opcodes returns the sorted set of block opcodes used by the tree.
func (t *Tree) Opcodes() []string {
	seen := make(map[string]bool)
	for _, h := range t.Handlers {
		Walk(h.Blocks, func(b *Block) {
			for _, br := range b.Branches {
				seen[br.Opcode] = true
			}
			seen[b.Opcode] = true
		})
	}
	out := make([]string, 0, len(seen))
	for op := range seen {
		out = append(out, op)
	}
	sort.Strings(out)
	return out
}

// Walk visits every block of seq depth first in source order.
func Walk(seq []*Block, fn func(*Block)) {
	for _, b := range seq {
		fn(b)
		for _, br := range b.Branches {
			Walk(br.Body, fn)
		}
	}
}

// Referenced unions the references of every tree in the project.
func Referenced(trees map[string]*Tree) map[string]bool {
	all := make(map[string]bool)
	for _, t := range trees {
		for r := range t.Refs() {
			all[r] = true
		}
	}
	return all
}

func collectRefs(refs map[string]bool, params []records.Value) {
	for _, p := range params {
		p.Walk(func(v records.Value) {
			if v.Kind == records.Ref {
				refs[v.Text] = true
			}
		})
	}
}
