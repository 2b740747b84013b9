package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ContentPanel wraps a viewport showing one generated file.
type ContentPanel struct {
	viewport   viewport.Model
	title      string
	totalLines int
}

// NewContentPanel creates a panel with the given dimensions.
func NewContentPanel(width, height int) ContentPanel {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return ContentPanel{viewport: vp}
}

// SetSize updates the viewport dimensions. Two rows go to the title and
// the scroll indicator.
func (c *ContentPanel) SetSize(width, height int) {
	c.viewport.Width = width
	c.viewport.Height = max(height-2, 1)
}

// SetContent replaces the displayed text and scrolls to the top.
func (c *ContentPanel) SetContent(title, content string) {
	c.title = title
	c.totalLines = strings.Count(content, "\n") + 1
	c.viewport.SetContent(content)
	c.viewport.GotoTop()
}

// GotoTop scrolls to the first line.
func (c *ContentPanel) GotoTop() { c.viewport.GotoTop() }

// GotoBottom scrolls to the last line.
func (c *ContentPanel) GotoBottom() { c.viewport.GotoBottom() }

// Update forwards scroll messages to the viewport.
func (c *ContentPanel) Update(msg tea.Msg) {
	c.viewport, _ = c.viewport.Update(msg)
}

// YOffset is the first visible content line.
func (c ContentPanel) YOffset() int {
	return c.viewport.YOffset
}

// View renders the title, the visible lines and a scroll hint.
func (c ContentPanel) View() string {
	var b strings.Builder
	b.WriteString(styleContentTitle.Render(c.title))
	b.WriteString("\n")
	b.WriteString(c.viewport.View())
	if below := c.totalLines - c.viewport.YOffset - c.viewport.Height; below > 0 {
		b.WriteString("\n")
		b.WriteString(styleScrollIndicator.Render(fmt.Sprintf("↓ %d more", below)))
	}
	return b.String()
}
