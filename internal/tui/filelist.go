package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/asperge/internal/decompiler"
)

// FileList is a navigable list of generated files.
type FileList struct {
	Files  []decompiler.File
	Cursor int
	Width  int
	Height int
	offset int
}

// NewFileList creates a FileList over files.
func NewFileList(files []decompiler.File) FileList {
	return FileList{Files: files}
}

// MoveUp moves the cursor up, wrapping at the top.
func (l *FileList) MoveUp() {
	if len(l.Files) == 0 {
		return
	}
	l.Cursor--
	if l.Cursor < 0 {
		l.Cursor = len(l.Files) - 1
	}
	l.follow()
}

// MoveDown moves the cursor down, wrapping at the bottom.
func (l *FileList) MoveDown() {
	if len(l.Files) == 0 {
		return
	}
	l.Cursor++
	if l.Cursor >= len(l.Files) {
		l.Cursor = 0
	}
	l.follow()
}

// Selected returns the file under the cursor, or false when empty.
func (l *FileList) Selected() (decompiler.File, bool) {
	if len(l.Files) == 0 {
		return decompiler.File{}, false
	}
	return l.Files[l.Cursor], true
}

// follow scrolls so the cursor row stays visible.
func (l *FileList) follow() {
	if l.Height <= 0 {
		return
	}
	if l.Cursor < l.offset {
		l.offset = l.Cursor
	}
	if l.Cursor >= l.offset+l.Height {
		l.offset = l.Cursor - l.Height + 1
	}
}

// View renders the visible rows with a cursor indicator.
func (l FileList) View() string {
	if len(l.Files) == 0 {
		return styleDim.Render("(no files)")
	}
	end := len(l.Files)
	if l.Height > 0 && l.offset+l.Height < end {
		end = l.offset + l.Height
	}

	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		f := l.Files[i]
		indicator := "  "
		nameStyle := lipgloss.NewStyle()
		if i == l.Cursor {
			indicator = styleSelectionIndicator.Render("▸") + " "
			nameStyle = nameStyle.Bold(true)
		}
		mark := styleKindSource.Render("J")
		if f.Kind == decompiler.KindLayout {
			mark = styleKindLayout.Render("X")
		}
		name := truncate(f.Path, l.Width-4)
		rows = append(rows, indicator+mark+" "+nameStyle.Render(name))
	}
	return strings.Join(rows, "\n")
}

// truncate shortens s from the left to at most width runes.
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}
