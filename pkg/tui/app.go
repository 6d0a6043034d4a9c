package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillform/quill/pkg/engine"
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

// Model is the top-level Bubble Tea model. It wraps one engine session;
// every answer submitted through the UI advances the same walk a real
// respondent would take.
type Model struct {
	survey  *schema.Survey
	session *engine.Session

	// Option questions: cursor position and toggled values for
	// multi-select types.
	cursor   int
	selected map[string]bool

	// Free-form questions.
	input textinput.Model

	lastMessages []string
	fatalErr     string

	width  int
	height int
}

// Run loads the survey into a session and runs the Bubble Tea program.
func Run(survey *schema.Survey) error {
	reg := registry.Build(survey)

	ti := textinput.New()
	ti.Placeholder = "type your answer"
	ti.CharLimit = 512
	ti.Focus()

	m := Model{
		survey:   survey,
		session:  engine.NewSession(reg, survey.Rules()),
		selected: make(map[string]bool),
		input:    ti,
	}
	m.syncInput()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if msg.String() == "q" && m.freeForm() {
				break // let "q" reach the text input
			}
			return m, tea.Quit
		case "esc":
			m.goBack()
			return m, nil
		}

		if m.session.Terminal() {
			if msg.String() == "enter" {
				return m, tea.Quit
			}
			return m, nil
		}

		if m.freeForm() {
			if msg.String() == "enter" {
				m.submit(strings.TrimSpace(m.input.Value()))
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		opts := m.session.VisibleOptions()
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(opts)-1 {
				m.cursor++
			}
		case " ":
			if m.multiSelect() && m.cursor < len(opts) {
				val := opts[m.cursor].Value
				m.selected[val] = !m.selected[val]
			}
		case "enter":
			if m.cursor >= len(opts) {
				break
			}
			if m.multiSelect() {
				var values []string
				for _, o := range opts {
					if m.selected[o.Value] {
						values = append(values, o.Value)
					}
				}
				m.submit(values)
			} else {
				m.submit(opts[m.cursor].Value)
			}
		}
		return m, nil
	}

	if m.freeForm() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// freeForm reports whether the current question takes typed input rather
// than an option pick.
func (m Model) freeForm() bool {
	q := m.session.CurrentQuestion()
	return q != nil && !schema.OptionBearing(q.Type)
}

// multiSelect reports whether the current question accepts several
// option values at once.
func (m Model) multiSelect() bool {
	q := m.session.CurrentQuestion()
	if q == nil {
		return false
	}
	return q.Type == schema.TypeCheckbox || q.Type == schema.TypeRanking
}

// submit records the answer, advances the session and resets per-question
// UI state.
func (m *Model) submit(value any) {
	res := m.session.Answer(value)
	m.lastMessages = res.Messages
	if len(res.Errs) > 0 {
		m.fatalErr = res.Errs[len(res.Errs)-1].Error()
	} else {
		m.fatalErr = ""
	}
	m.cursor = 0
	m.selected = make(map[string]bool)
	m.syncInput()
}

func (m *Model) goBack() {
	if !m.session.Back() {
		return
	}
	m.lastMessages = nil
	m.cursor = 0
	m.selected = make(map[string]bool)
	m.syncInput()
}

// syncInput prepares the text input for the next question.
func (m *Model) syncInput() {
	m.input.SetValue("")
	if q := m.session.CurrentQuestion(); q != nil && q.Config != nil && q.Config.Placeholder != "" {
		m.input.Placeholder = q.Config.Placeholder
	} else {
		m.input.Placeholder = "type your answer"
	}
}

// View renders the full screen.
func (m Model) View() string {
	var b strings.Builder

	title := m.survey.Meta.Title
	if title == "" {
		title = m.survey.Meta.Name
	}
	b.WriteString(headerStyle.Render("quill · "+title) + "\n\n")

	if m.session.Terminal() {
		end := m.survey.Meta.EndMessage
		if end == "" {
			end = "Survey complete."
		}
		b.WriteString(endBannerStyle.Render(GlyphDone+" "+renderMarkdown(end)) + "\n\n")
		b.WriteString(pathStyle.Render("path: "+strings.Join(m.session.Path(), " → ")) + "\n\n")
		b.WriteString(m.keyBar([][2]string{{"enter/q", "exit"}, {"esc", "back"}}))
		return b.String()
	}

	q := m.session.CurrentQuestion()
	if q == nil {
		return errorStyle.Render("no current question")
	}

	var panel strings.Builder
	panel.WriteString(blockBadgeStyle.Render(q.Serial) + " " + questionStyle.Render(q.Label) + "\n")
	if q.Description != "" {
		panel.WriteString(descriptionStyle.Render(renderMarkdown(q.Description)) + "\n")
	}
	panel.WriteString("\n")

	if m.freeForm() {
		panel.WriteString(m.input.View() + "\n")
	} else {
		for i, opt := range m.session.VisibleOptions() {
			glyph := GlyphOption
			if m.multiSelect() && m.selected[opt.Value] {
				glyph = GlyphSelected
			}
			line := fmt.Sprintf("%s %s", glyph, opt.Label)
			if i == m.cursor {
				panel.WriteString(optionCursorStyle.Render(GlyphCursor+" "+line) + "\n")
			} else {
				panel.WriteString(optionStyle.Render("  "+line) + "\n")
			}
		}
	}
	b.WriteString(panelBorder.Render(panel.String()) + "\n")

	for _, msg := range m.lastMessages {
		b.WriteString(messageStyle.Render(GlyphMessage+" "+msg) + "\n")
	}
	if m.fatalErr != "" {
		b.WriteString(errorStyle.Render("✗ "+m.fatalErr) + "\n")
	}

	b.WriteString("\n" + pathStyle.Render("path: "+strings.Join(m.session.Path(), " → ")) + "\n\n")

	keys := [][2]string{{"enter", "submit"}, {"esc", "back"}, {"ctrl+c", "quit"}}
	if !m.freeForm() {
		keys = append([][2]string{{"↑/↓", "move"}}, keys...)
		if m.multiSelect() {
			keys = append([][2]string{{"space", "toggle"}}, keys...)
		}
	}
	b.WriteString(m.keyBar(keys))
	return b.String()
}

// keyBar renders the bottom help row.
func (m Model) keyBar(keys [][2]string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = keyStyle.Render(k[0]) + " " + keyDescStyle.Render(k[1])
	}
	return keyBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "  ")))
}
