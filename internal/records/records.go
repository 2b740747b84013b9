// Package records parses the decrypted section texts into typed records.
//
// Every section is line oriented with TAB separated fields and a fixed field
// count per record kind. Parameter and attribute cells use a small bracketed
// grammar whose nested lists decode into recursive Value call nodes. Any
// record of the wrong shape is a MalformedSection error naming the section
// and line; there is no best-effort recovery.
package records

import (
	"github.com/papapumpkin/asperge/internal/section"
)

// Project holds the flat records of all six sections.
type Project struct {
	Logic     []LogicSection
	Views     []ViewSection
	Files     Files
	Libraries []Library
	Resources Resources
	Meta      Metadata
}

// LibraryEnabled reports whether the named library is switched on.
func (p *Project) LibraryEnabled(name string) bool {
	for _, l := range p.Libraries {
		if l.Name == name {
			return l.Enabled
		}
	}
	return false
}

// Parse runs the six section parsers.
func Parse(d section.Decrypted) (*Project, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	var (
		p   Project
		err error
	)
	if p.Logic, err = ParseLogic(d[section.Logic]); err != nil {
		return nil, err
	}
	if p.Views, err = ParseView(d[section.View]); err != nil {
		return nil, err
	}
	if p.Files, err = ParseFile(d[section.File]); err != nil {
		return nil, err
	}
	if p.Libraries, err = ParseLibrary(d[section.Library]); err != nil {
		return nil, err
	}
	if p.Resources, err = ParseResource(d[section.Resource]); err != nil {
		return nil, err
	}
	if p.Meta, err = ParseProject(d[section.Project]); err != nil {
		return nil, err
	}
	return &p, nil
}
