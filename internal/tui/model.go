package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/asperge/internal/decompiler"
)

// Focus names the pane receiving navigation keys.
type Focus int

const (
	// FocusList moves the file cursor.
	FocusList Focus = iota
	// FocusContent scrolls the open file.
	FocusContent
)

// maxListWidth caps the file pane on wide terminals.
const maxListWidth = 48

// Model is the browser's bubbletea model.
type Model struct {
	Title   string
	List    FileList
	Content ContentPanel
	Keys    KeyMap
	Focus   Focus
	Width   int
	Height  int
}

// NewModel creates a browser over the files of r.
func NewModel(title string, r *decompiler.Result) Model {
	m := Model{
		Title:   title,
		List:    NewFileList(r.Files),
		Content: NewContentPanel(80, 20),
		Keys:    DefaultKeyMap(),
	}
	m.load()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.Keys.Quit) {
			return m, tea.Quit
		}
		if m.Focus == FocusList {
			m.updateList(msg)
			return m, nil
		}
		m.updateContent(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.Keys.Up):
		m.List.MoveUp()
		m.load()
	case key.Matches(msg, m.Keys.Down):
		m.List.MoveDown()
		m.load()
	case key.Matches(msg, m.Keys.Enter):
		if len(m.List.Files) > 0 {
			m.Focus = FocusContent
		}
	}
}

func (m *Model) updateContent(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.Keys.Back):
		m.Focus = FocusList
	case key.Matches(msg, m.Keys.Top):
		m.Content.GotoTop()
	case key.Matches(msg, m.Keys.Bottom):
		m.Content.GotoBottom()
	default:
		m.Content.Update(msg)
	}
}

// load shows the selected file in the content pane.
func (m *Model) load() {
	f, ok := m.List.Selected()
	if !ok {
		m.Content.SetContent("", "")
		return
	}
	m.Content.SetContent(f.Path, f.Content)
}

// resize splits the terminal between the panes. One row each goes to
// the title bar and the footer.
func (m *Model) resize(width, height int) {
	m.Width, m.Height = width, height
	listWidth := min(width/3, maxListWidth)
	body := max(height-2, 1)
	m.List.Width, m.List.Height = listWidth, body
	m.List.follow()
	m.Content.SetSize(max(width-listWidth-3, 1), body)
}

// View implements tea.Model.
func (m Model) View() string {
	layouts, sources := 0, 0
	for _, f := range m.List.Files {
		if f.Kind == decompiler.KindLayout {
			layouts++
		} else {
			sources++
		}
	}
	title := styleTitleBar.Width(m.Width).Render(
		styleTitleLabel.Render(m.Title) + "  " +
			styleTitleValue.Render(fmt.Sprintf("%d layouts · %d sources", layouts, sources)))

	list := styleListPane.Width(m.List.Width).Height(m.List.Height).Render(m.List.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", m.Content.View())

	bindings := ListFooterBindings(m.Keys)
	if m.Focus == FocusContent {
		bindings = ContentFooterBindings(m.Keys)
	}
	footer := Footer{Width: m.Width, Bindings: bindings}.View()
	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
}
