// Package tui is an interactive browser over the files a decompile run
// would produce.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/asperge/internal/decompiler"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a browser program on the alternate screen.
func NewProgram(title string, r *decompiler.Result, opts ...tea.ProgramOption) *Program {
	allOpts := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return tea.NewProgram(NewModel(title, r), allOpts...)
}

// Run creates and runs a browser, blocking until the user quits.
func Run(title string, r *decompiler.Result) error {
	if _, err := NewProgram(title, r).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
