// Package decompiler runs the per-screen pipeline over a parsed project.
//
// Run builds every logic and view tree and renders all selected layouts and
// activities in memory. Any failure aborts the whole run, so Write is only
// ever handed a complete set of files.
package decompiler

import (
	"errors"
	"fmt"
	"path"
	"slices"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/javagen"
	"github.com/papapumpkin/asperge/internal/layout"
	"github.com/papapumpkin/asperge/internal/logic"
	"github.com/papapumpkin/asperge/internal/naming"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/telemetry"
	"github.com/papapumpkin/asperge/internal/view"
)

// Output directory defaults relative to the output root.
const (
	DefaultLayoutDir = "res/layout"
	DefaultSourceDir = "java"
	DefaultSourceExt = "java"
)

var (
	// ErrConflictingOptions indicates options that select nothing consistent.
	ErrConflictingOptions = errors.New("conflicting options")
	// ErrUnknownScreen indicates a restriction names a layout or activity the project lacks.
	ErrUnknownScreen = errors.New("unknown screen")
)

// Options selects what Run renders and where files land.
type Options struct {
	LayoutOnly bool
	JavaOnly   bool
	Layouts    []string // exact layout names; empty renders all
	Activities []string // exact activity class names; empty renders all
	LayoutDir  string
	SourceDir  string
	SourceExt  string
	Templates  *javagen.Templates // nil uses javagen.Default()
	Indent     string
	Emitter    *telemetry.Emitter
}

// FileKind tells layouts and sources apart.
type FileKind string

// Generated file kinds.
const (
	KindLayout FileKind = "layout"
	KindSource FileKind = "source"
)

// File is one rendered output file. Path is slash separated and relative
// to the output root.
type File struct {
	Path    string
	Screen  string
	Kind    FileKind
	Content string
}

// Result holds every rendered file in generation order.
type Result struct {
	Meta  records.Metadata
	Files []File
}

// Count returns how many files of kind the result holds.
func (r *Result) Count(kind FileKind) int {
	n := 0
	for _, f := range r.Files {
		if f.Kind == kind {
			n++
		}
	}
	return n
}

// Run builds the trees of p and renders the selected screens.
func Run(p *records.Project, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	if err := opts.validate(); err != nil {
		return nil, err
	}

	logicTrees, err := logic.Build(p.Logic)
	if err != nil {
		return nil, fail(opts.Emitter, err)
	}
	viewTrees, err := view.Build(p.Views)
	if err != nil {
		return nil, fail(opts.Emitter, err)
	}
	for name := range viewTrees {
		_ = opts.Emitter.Record(telemetry.KindScreenBuilt, "view", name, map[string]int{"nodes": len(viewTrees[name].Nodes())})
	}
	for name, t := range logicTrees {
		_ = opts.Emitter.Record(telemetry.KindScreenBuilt, "logic", name, map[string]int{"handlers": len(t.Handlers)})
	}

	layouts := layoutOrder(p.Views)
	activities := make([]string, 0, len(p.Files.Activities))
	for _, a := range p.Files.Activities {
		activities = append(activities, naming.ActivityName(a.Name))
	}
	for name := range logicTrees {
		if !slices.Contains(activities, name) {
			return nil, fail(opts.Emitter, undeclared(name))
		}
	}
	if err := checkKnown("layout", opts.Layouts, layouts); err != nil {
		return nil, err
	}
	if err := checkKnown("activity", opts.Activities, activities); err != nil {
		return nil, err
	}

	res := &Result{Meta: p.Meta}
	if !opts.JavaOnly {
		gen := layout.Generator{Indent: opts.Indent}
		for _, name := range layouts {
			if !selected(opts.Layouts, name) {
				continue
			}
			text, err := gen.Generate(viewTrees[name], p.Resources, p.Files, p.Meta)
			if err != nil {
				return nil, fail(opts.Emitter, err)
			}
			res.add(opts.Emitter, File{
				Path:    path.Join(opts.LayoutDir, name+".xml"),
				Screen:  name,
				Kind:    KindLayout,
				Content: text,
			})
		}
	}
	if opts.LayoutOnly {
		return res, nil
	}

	pkgDir := path.Join(opts.SourceDir, naming.PackagePath(p.Meta.PackageName))
	anywhere := logic.Referenced(logicTrees)
	for _, a := range p.Files.Activities {
		activity := naming.ActivityName(a.Name)
		if !selected(opts.Activities, activity) {
			continue
		}
		tree := logicTrees[activity]
		var index *view.IDIndex
		if vt := viewTrees[a.Name]; vt != nil {
			index = view.NewIDIndex(vt, anywhere)
		}
		text, err := javagen.Generate(javagen.Input{
			Tree:      tree,
			Index:     index,
			Activity:  activity,
			Layout:    a.Name,
			Meta:      p.Meta,
			Files:     p.Files,
			Resources: p.Resources,
			Compat:    p.LibraryEnabled("compat"),
			Templates: opts.Templates,
			Indent:    opts.Indent,
		})
		if err != nil {
			return nil, fail(opts.Emitter, err)
		}
		res.add(opts.Emitter, File{
			Path:    path.Join(pkgDir, activity+"."+opts.SourceExt),
			Screen:  activity,
			Kind:    KindSource,
			Content: text,
		})
	}
	return res, nil
}

func (r *Result) add(em *telemetry.Emitter, f File) {
	r.Files = append(r.Files, f)
	_ = em.Record(telemetry.KindFileRendered, "", f.Screen, map[string]any{"path": f.Path, "bytes": len(f.Content)})
}

func (o Options) validate() error {
	switch {
	case o.LayoutOnly && o.JavaOnly:
		return fmt.Errorf("%w: choose one of layout-only and java-only", ErrConflictingOptions)
	case o.JavaOnly && len(o.Layouts) > 0:
		return fmt.Errorf("%w: cannot restrict layouts when only generating sources", ErrConflictingOptions)
	case o.LayoutOnly && len(o.Activities) > 0:
		return fmt.Errorf("%w: cannot restrict activities when only generating layouts", ErrConflictingOptions)
	}
	return nil
}

func withDefaults(opts Options) Options {
	if opts.LayoutDir == "" {
		opts.LayoutDir = DefaultLayoutDir
	}
	if opts.SourceDir == "" {
		opts.SourceDir = DefaultSourceDir
	}
	if opts.SourceExt == "" {
		opts.SourceExt = DefaultSourceExt
	}
	return opts
}

// layoutOrder lists xml layouts in section order.
func layoutOrder(sections []records.ViewSection) []string {
	var out []string
	for _, s := range sections {
		if s.Ext == records.ExtLayout {
			out = append(out, s.Layout)
		}
	}
	return out
}

func selected(restrict []string, name string) bool {
	return len(restrict) == 0 || slices.Contains(restrict, name)
}

func checkKnown(what string, restrict, known []string) error {
	for _, name := range restrict {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%w: no %s named %q", ErrUnknownScreen, what, name)
		}
	}
	return nil
}

func undeclared(activity string) error {
	return &decodeerr.Error{
		Kind:    decodeerr.KindUnresolvedReference,
		Section: "logic",
		Screen:  activity,
		Tag:     activity,
		Err:     errors.New("logic belongs to an activity missing from the file section"),
	}
}

func fail(em *telemetry.Emitter, err error) error {
	_ = em.Record(telemetry.KindRunFailed, "", "", map[string]string{"error": err.Error()})
	return err
}
