// Package tui implements a terminal user interface for walking a survey
// interactively, rendered as a Bubble Tea app driven by the same session
// the REPL preview and the flow-test runner use.
package tui

import "github.com/charmbracelet/lipgloss"

// Glyphs convey meaning without relying on color alone.
const (
	GlyphCursor   = "▸"
	GlyphSelected = "●"
	GlyphOption   = "○"
	GlyphMessage  = "⚠"
	GlyphDone     = "◆"
)

// Palette adapts to terminal capabilities via lipgloss.
var (
	colorGreen  = lipgloss.Color("42")
	colorRed    = lipgloss.Color("196")
	colorYellow = lipgloss.Color("214")
	colorCyan   = lipgloss.Color("51")
	colorDim    = lipgloss.Color("240")
	colorWhite  = lipgloss.Color("255")
)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorCyan).
	Padding(0, 1)

var blockBadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("0")).
	Background(colorYellow).
	Padding(0, 1)

var (
	questionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	optionStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	optionCursorStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorYellow)

	messageStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	pathStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

var panelBorder = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(colorCyan).
			Bold(true)

	keyDescStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	keyBarStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

var endBannerStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorGreen).
	Foreground(colorGreen).
	Bold(true).
	Padding(0, 2).
	Align(lipgloss.Center)
