// Package ui prints progress and results of asperge commands to stderr.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/asperge/internal/decodeerr"
)

var (
	styleBanner = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00BCD4"))
	styleDim    = lipgloss.NewStyle().Faint(true)
	styleBold   = lipgloss.NewStyle().Bold(true)
	styleOK     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4CAF50"))
	styleWarn   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFC107"))
	styleErr    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F44336"))
	styleKind   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E040FB"))
)

// Printer writes styled status lines. The zero value and New write to
// os.Stderr at call time.
type Printer struct {
	w       io.Writer
	verbose bool
}

// New returns a Printer on stderr.
func New(verbose bool) *Printer {
	return &Printer{verbose: verbose}
}

// NewWriter returns a Printer on w.
func NewWriter(w io.Writer, verbose bool) *Printer {
	return &Printer{w: w, verbose: verbose}
}

func (p *Printer) out() io.Writer {
	if p.w != nil {
		return p.w
	}
	return os.Stderr
}

// Banner prints the tool name.
func (p *Printer) Banner() {
	fmt.Fprintln(p.out(), styleBanner.Render("asperge")+" "+styleDim.Render("visual project decompiler"))
}

// Info prints a dim informational line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out(), styleDim.Render(msg))
}

// Detail prints a line only in verbose mode.
func (p *Printer) Detail(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintln(p.out(), styleDim.Render("  "+fmt.Sprintf(format, args...)))
}

// Warn prints a warning.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.out(), "%s %s\n", styleWarn.Render("⚠"), msg)
}

// Loaded reports how the input was read.
func (p *Printer) Loaded(path, origin string) {
	fmt.Fprintf(p.out(), "%s %s %s\n", styleOK.Render("◆ loaded"), path, styleDim.Render("("+origin+")"))
}

// FileWritten reports one generated file.
func (p *Printer) FileWritten(path string) {
	fmt.Fprintf(p.out(), "  %s %s\n", styleOK.Render("+"), path)
}

// Done reports the generated file counts.
func (p *Printer) Done(layouts, sources int, outDir string) {
	fmt.Fprintf(p.out(), "%s %d layout(s), %d source file(s) in %s\n", styleOK.Render("✓ done"), layouts, sources, outDir)
}

// Error prints err. Decoding errors lead with their kind.
func (p *Printer) Error(err error) {
	if kind := decodeerr.KindOf(err); kind != "" {
		fmt.Fprintf(p.out(), "%s %s %s\n", styleErr.Render("error:"), styleKind.Render(string(kind)), strings.TrimPrefix(err.Error(), string(kind)+" "))
		return
	}
	fmt.Fprintf(p.out(), "%s %v\n", styleErr.Render("error:"), err)
}

// Table prints rows under a bold header with columns padded to width.
func (p *Printer) Table(header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if i < len(widths) && len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}
	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = c
			if i < len(cells)-1 {
				parts[i] = fmt.Sprintf("%-*s", widths[i], c)
			}
		}
		return strings.Join(parts, "  ")
	}
	fmt.Fprintln(p.out(), styleBold.Render(line(header)))
	for _, r := range rows {
		fmt.Fprintln(p.out(), line(r))
	}
}

// Confirm asks a yes/no question on the printer's output and reads the
// answer from in. Anything but y or yes is a no.
func (p *Printer) Confirm(question string, in io.Reader) bool {
	fmt.Fprintf(p.out(), "%s %s [y/N] ", styleWarn.Render("?"), question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
