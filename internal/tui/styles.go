package tui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary    = lipgloss.Color("#00BFFF") // Cyan: primary accent
	colorAccent     = lipgloss.Color("#FFD700") // Gold: layouts
	colorSuccess    = lipgloss.Color("#00E676") // Green: sources
	colorMuted      = lipgloss.Color("#636363") // Gray: de-emphasized
	colorMutedLight = lipgloss.Color("#8C8C8C") // Lighter gray: normal text
	colorWhite      = lipgloss.Color("#EEEEEE") // Off-white: primary text
	colorSurface    = lipgloss.Color("#1E1E2E") // Dark surface: title bar bg
	colorSurfaceDim = lipgloss.Color("#181825") // Darkest surface: footer bg
)

// Title bar styles.
var (
	styleTitleBar = lipgloss.NewStyle().
			Background(colorSurface).
			Foreground(colorWhite).
			Bold(true).
			Padding(0, 1)

	styleTitleLabel = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleTitleValue = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)

// File list styles.
var (
	styleSelectionIndicator = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleKindLayout = lipgloss.NewStyle().Foreground(colorAccent)
	styleKindSource = lipgloss.NewStyle().Foreground(colorSuccess)

	styleListPane = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(colorMuted).
			PaddingRight(1)
)

// Content pane styles.
var (
	styleContentTitle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	styleScrollIndicator = lipgloss.NewStyle().
				Foreground(colorMuted)

	styleDim = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Footer styles.
var (
	styleFooter = lipgloss.NewStyle().
			Background(colorSurfaceDim).
			Foreground(colorMutedLight).
			Padding(0, 1)

	styleFooterKey = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFooterSep = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleFooterDesc = lipgloss.NewStyle().
			Foreground(colorMutedLight)
)
