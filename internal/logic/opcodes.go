package logic

// Structural opcodes understood by the tree builder.
const (
	OpIf         = "if"
	OpElseIf     = "elseIf"
	OpElse       = "else"
	OpRepeat     = "repeat"
	OpForever    = "forever"
	OpTimerAfter = "timerAfter"
	OpTimerEvery = "timerEvery"
	OpLocalVar   = "localVar"
)

// Handler naming conventions.
const (
	InitTarget     = "onCreate"
	InitEvent      = "initializeLogic"
	MoreBlockEvent = "moreBlock"
)

// IsControl reports whether opcode opens a nested sequence.
func IsControl(opcode string) bool {
	switch opcode {
	case OpIf, OpRepeat, OpForever, OpTimerAfter, OpTimerEvery:
		return true
	}
	return false
}

// IsLifecycle reports whether name is an activity callback that a
// <name>_<name> handler overrides.
func IsLifecycle(name string) bool {
	switch name {
	case "onBackPressed", "onStart", "onResume", "onPause", "onStop", "onDestroy", "onPostCreate":
		return true
	}
	return false
}

func classify(target, event string) HandlerKind {
	switch {
	case target == InitTarget && event == InitEvent:
		return HandlerInit
	case event == MoreBlockEvent:
		return HandlerMoreBlock
	case target == event && IsLifecycle(target):
		return HandlerLifecycle
	}
	return HandlerView
}
