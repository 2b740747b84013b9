package javagen

import (
	"strconv"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/logic"
	"github.com/papapumpkin/asperge/internal/records"
)

var localTypes = map[string]struct{ jtype, zero string }{
	"0": {"boolean", "false"},
	"1": {"double", "0"},
	"2": {"String", "\"\""},
	"3": {"HashMap<String, Object>", "new HashMap<>()"},
}

// blocks emits seq at the writer's current depth.
func (g *generator) blocks(seq []*logic.Block) error {
	for _, b := range seq {
		g.line = b.Line
		var err error
		switch b.Kind {
		case logic.Control:
			err = g.control(b)
		case logic.Local:
			err = g.local(b)
		default:
			err = g.statement(b)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) statement(b *logic.Block) error {
	tmpl, ok := g.in.Templates.Statements[b.Opcode]
	if !ok {
		return g.fail(decodeerr.KindUnsupportedBlock, b.Opcode, "block has no template entry")
	}
	text, err := g.apply(b.Opcode, tmpl, b.Params)
	if err != nil {
		return err
	}
	g.w.line("%s", text)
	return nil
}

// local declares a block scoped variable: [type, @name] or
// [type, @name, initial].
func (g *generator) local(b *logic.Block) error {
	if len(b.Params) < 2 || len(b.Params) > 3 || b.Params[1].Kind != records.Ref {
		return g.fail(decodeerr.KindUnsupportedBlock, b.Opcode, "want [type, @name] or [type, @name, value]")
	}
	lt, ok := localTypes[b.Params[0].Text]
	if !ok || b.Params[0].Kind != records.Number {
		return g.fail(decodeerr.KindUnsupportedBlock, b.Opcode, "unknown local variable type %s", b.Params[0].Encode())
	}
	name := b.Params[1].Text
	if _, dup := g.scope.local(name); dup {
		return g.fail(decodeerr.KindUnsupportedBlock, b.Opcode, "local %q declared twice", name)
	}
	if b.Params[0].Text == "3" {
		g.imports["java.util.HashMap"] = true
	}
	init := lt.zero
	if len(b.Params) == 3 {
		var err error
		if init, err = g.expr(b.Params[2]); err != nil {
			return err
		}
	}
	g.scope.locals[name] = name
	g.w.line("%s %s = %s;", lt.jtype, name, init)
	return nil
}

func (g *generator) arity(b *logic.Block, params []records.Value, n int) error {
	if len(params) != n {
		return g.fail(decodeerr.KindUnsupportedBlock, b.Opcode, "want %d parameters, got %d", n, len(params))
	}
	return nil
}

func (g *generator) control(b *logic.Block) error {
	switch b.Opcode {
	case logic.OpIf:
		return g.ifChain(b)
	case logic.OpRepeat:
		if err := g.arity(b, b.Params, 1); err != nil {
			return err
		}
		count, err := g.slot(b.Opcode, "int", b.Params[0])
		if err != nil {
			return err
		}
		g.repeats++
		v := "_repeat" + strconv.Itoa(g.repeats)
		g.w.open("for (int %[1]s = 0; %[1]s < %[2]s; %[1]s++) {", v, count)
	case logic.OpForever:
		g.w.open("while (true) {")
	case logic.OpTimerAfter, logic.OpTimerEvery:
		return g.timer(b)
	default:
		return g.fail(decodeerr.KindUnsupportedBlock, b.Opcode, "control block has no emitter")
	}
	if err := g.nested(b.Branches[0].Body); err != nil {
		return err
	}
	g.w.close("}")
	return nil
}

// nested emits seq in a child scope, so locals declared there end with it.
func (g *generator) nested(seq []*logic.Block) error {
	outer := g.scope
	g.scope = outer.child()
	defer func() { g.scope = outer }()
	return g.blocks(seq)
}

func (g *generator) ifChain(b *logic.Block) error {
	for i, br := range b.Branches {
		g.line = br.Line
		var head string
		switch br.Opcode {
		case logic.OpElse:
			if err := g.arity(b, br.Params, 0); err != nil {
				return err
			}
			head = "} else {"
		default:
			if err := g.arity(b, br.Params, 1); err != nil {
				return err
			}
			cond, err := g.condition(br.Params[0])
			if err != nil {
				return err
			}
			head = "if (" + cond + ") {"
			if i > 0 {
				head = "} else " + head
			}
		}
		if i > 0 {
			g.w.depth--
		}
		g.w.open("%s", head)
		if err := g.nested(br.Body); err != nil {
			return err
		}
	}
	g.w.close("}")
	return nil
}

// timer schedules the block body on the shared Timer and runs it on the
// UI thread: [@task, delay] or [@task, delay, period].
func (g *generator) timer(b *logic.Block) error {
	want := 2
	if b.Opcode == logic.OpTimerEvery {
		want = 3
	}
	if err := g.arity(b, b.Params, want); err != nil {
		return err
	}
	task := b.Params[0]
	if task.Kind != records.Ref || g.kinds[task.Text] != CompTimer {
		return g.fail(decodeerr.KindUnresolvedReference, task.Encode(), "timer blocks need a timer component")
	}
	delay, err := g.slot(b.Opcode, "int", b.Params[1])
	if err != nil {
		return err
	}

	w := g.w
	w.open("%s = new TimerTask() {", task.Text)
	w.line("@Override")
	w.open("public void run() {")
	w.open("runOnUiThread(new Runnable() {")
	w.line("@Override")
	w.open("public void run() {")
	if err := g.nested(b.Branches[0].Body); err != nil {
		return err
	}
	w.close("}")
	w.close("});")
	w.close("}")
	w.close("};")

	if b.Opcode == logic.OpTimerAfter {
		w.line("_timer.schedule(%s, %s);", task.Text, delay)
		return nil
	}
	period, err := g.slot(b.Opcode, "int", b.Params[2])
	if err != nil {
		return err
	}
	w.line("_timer.scheduleAtFixedRate(%s, %s, %s);", task.Text, delay, period)
	return nil
}
