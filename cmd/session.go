package cmd

import (
	"fmt"

	"github.com/papapumpkin/asperge/internal/config"
	"github.com/papapumpkin/asperge/internal/decompiler"
	"github.com/papapumpkin/asperge/internal/javagen"
	"github.com/papapumpkin/asperge/internal/loader"
	"github.com/papapumpkin/asperge/internal/records"
	"github.com/papapumpkin/asperge/internal/section"
	"github.com/papapumpkin/asperge/internal/telemetry"
	"github.com/papapumpkin/asperge/internal/ui"
)

// session holds what every project command shares: configuration, the
// printer and the optional trace.
type session struct {
	cfg     config.Config
	printer *ui.Printer
	trace   *telemetry.Emitter
}

// newSession loads configuration. A non-empty tracePath overrides the
// configured trace file.
func newSession(tracePath string) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if tracePath != "" {
		cfg.TracePath = tracePath
	}
	s := &session{cfg: cfg, printer: ui.New(cfg.Verbose)}
	if cfg.TracePath != "" {
		if s.trace, err = telemetry.NewEmitter(cfg.TracePath); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *session) close() {
	if err := s.trace.Close(); err != nil {
		s.printer.Warn(err.Error())
	}
}

// load reads and parses the project at path.
func (s *session) load(path string) (*records.Project, error) {
	d, origin, err := loader.Load(path)
	if err != nil {
		return nil, s.failed(err)
	}
	s.printer.Loaded(path, string(origin))
	for _, name := range section.Names {
		s.printer.Detail("%-8s %6d bytes", name, len(d[name]))
		_ = s.trace.Record(telemetry.KindSectionLoaded, name, "", map[string]any{"bytes": len(d[name]), "origin": origin})
	}

	p, err := records.Parse(d)
	if err != nil {
		return nil, s.failed(err)
	}
	_ = s.trace.Record(telemetry.KindSectionParsed, "", "", map[string]int{
		"logic_sections": len(p.Logic),
		"view_sections":  len(p.Views),
		"activities":     len(p.Files.Activities),
	})
	s.printer.Detail("%d logic sections, %d view sections", len(p.Logic), len(p.Views))
	return p, nil
}

// options fills decompiler options from configuration. A non-empty
// templatesPath overrides the configured template file.
func (s *session) options(templatesPath string) (decompiler.Options, error) {
	opts := decompiler.Options{
		LayoutDir: s.cfg.LayoutDir,
		SourceDir: s.cfg.SourceDir,
		SourceExt: s.cfg.SourceExt,
		Indent:    s.cfg.Indent,
		Emitter:   s.trace,
	}
	if templatesPath == "" {
		templatesPath = s.cfg.TemplatesFile
	}
	if templatesPath != "" {
		t, err := javagen.LoadTemplates(templatesPath)
		if err != nil {
			return opts, err
		}
		opts.Templates = t
		s.printer.Detail("templates from %s", templatesPath)
	}
	return opts, nil
}

func (s *session) failed(err error) error {
	_ = s.trace.Record(telemetry.KindRunFailed, "", "", map[string]string{"error": err.Error()})
	return err
}
