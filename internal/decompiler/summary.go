package decompiler

import (
	"github.com/papapumpkin/asperge/internal/logic"
	"github.com/papapumpkin/asperge/internal/naming"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/view"
)

// ScreenSummary describes one layout of a project.
type ScreenSummary struct {
	Layout     string
	Activity   string // empty for custom views and unbound layouts
	Views      int
	Referenced int // views referenced by logic anywhere in the project
	Handlers   int
	Opcodes    []string
}

// Summarize builds the trees of p and describes every xml layout in
// section order. A view counts as referenced when any activity's logic
// names it.
func Summarize(p *records.Project) ([]ScreenSummary, error) {
	logicTrees, err := logic.Build(p.Logic)
	if err != nil {
		return nil, err
	}
	viewTrees, err := view.Build(p.Views)
	if err != nil {
		return nil, err
	}
	anywhere := logic.Referenced(logicTrees)

	var out []ScreenSummary
	for _, name := range layoutOrder(p.Views) {
		vt := viewTrees[name]
		s := ScreenSummary{Layout: name, Views: len(vt.Nodes())}
		if p.Files.HasActivity(name) {
			s.Activity = naming.ActivityName(name)
			if lt := logicTrees[s.Activity]; lt != nil {
				s.Handlers = len(lt.Handlers)
				s.Opcodes = lt.Opcodes()
			}
		}
		s.Referenced = len(view.NewIDIndex(vt, anywhere).Referenced())
		out = append(out, s)
	}
	return out, nil
}
