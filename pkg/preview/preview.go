// Package preview implements the interactive REPL walkthrough for surveys.
package preview

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/quillform/quill/pkg/engine"
	"github.com/quillform/quill/pkg/flowgraph"
	"github.com/quillform/quill/pkg/registry"
	"github.com/quillform/quill/pkg/schema"
)

// Preview provides an interactive REPL for walking a survey the way a
// respondent would, one question at a time.
type Preview struct {
	survey  *schema.Survey
	session *engine.Session
	output  io.Writer
	rl      *readline.Instance
}

// New creates a preview session starting at the survey's first question.
func New(survey *schema.Survey) (*Preview, error) {
	reg := registry.Build(survey)
	return &Preview{
		survey:  survey,
		session: engine.NewSession(reg, survey.Rules()),
		output:  os.Stdout,
	}, nil
}

// Run starts the interactive REPL loop.
func (p *Preview) Run() error {
	commands := []string{"answer", "back", "options", "answers", "path",
		"messages", "graph", "help", "quit"}

	var completer = readline.NewPrefixCompleter()
	for _, cmd := range commands {
		completer.Children = append(completer.Children,
			readline.PcItem(cmd))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          p.buildPrompt(),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	p.rl = rl
	defer rl.Close()

	fmt.Fprintf(p.output, "quill preview — %s\n", p.survey.Meta.Title)
	fmt.Fprintf(p.output, "Type 'help' for available commands, 'answer <value>' to answer.\n\n")
	p.showCurrent()

	for {
		rl.SetPrompt(p.buildPrompt())
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]

		switch cmd {
		case "answer", "a":
			p.handleAnswer(line)
		case "back", "b":
			p.handleBack()
		case "options", "o":
			p.handleOptions()
		case "answers":
			p.handleAnswers()
		case "path":
			p.handlePath()
		case "messages", "m":
			p.handleMessages()
		case "graph", "g":
			p.handleGraph()
		case "help", "?":
			p.handleHelp()
		case "quit", "q":
			fmt.Fprintf(p.output, "Exiting preview.\n")
			return nil
		default:
			fmt.Fprintf(p.output, "Unknown command: %q. Type 'help' for available commands.\n", cmd)
		}
	}
}

// buildPrompt creates the prompt string: quill[serial | block]>
func (p *Preview) buildPrompt() string {
	if p.session.Terminal() {
		return "quill[done]> "
	}
	return fmt.Sprintf("quill[%s]> ", p.session.Current())
}

// showCurrent prints the current question, its piped label and visible
// options.
func (p *Preview) showCurrent() {
	if p.session.Terminal() {
		end := p.survey.Meta.EndMessage
		if end == "" {
			end = "Survey complete."
		}
		fmt.Fprintf(p.output, "\n✓ %s\n", end)
		return
	}

	q := p.session.CurrentQuestion()
	if q == nil {
		return
	}
	fmt.Fprintf(p.output, "\n[%s] %s\n", q.Serial, q.Label)
	if q.Description != "" {
		fmt.Fprintf(p.output, "    %s\n", q.Description)
	}
	for _, opt := range p.session.VisibleOptions() {
		fmt.Fprintf(p.output, "    %s\n", opt.Label)
	}
}

func (p *Preview) handleAnswer(line string) {
	if p.session.Terminal() {
		fmt.Fprintf(p.output, "Survey already finished. Use 'back' to rewind.\n")
		return
	}
	_, value, _ := strings.Cut(line, " ")
	value = strings.TrimSpace(value)
	if value == "" {
		fmt.Fprintf(p.output, "Usage: answer <value> (comma-separate multi-select values)\n")
		return
	}

	var answer any = value
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		multi := make([]string, 0, len(parts))
		for _, part := range parts {
			multi = append(multi, strings.TrimSpace(part))
		}
		answer = multi
	}

	res := p.session.Answer(answer)
	for _, msg := range res.Messages {
		fmt.Fprintf(p.output, "⚠ %s\n", msg)
	}
	for _, err := range res.Errs {
		fmt.Fprintf(p.output, "✗ %v\n", err)
	}
	p.showCurrent()
}

func (p *Preview) handleBack() {
	if !p.session.Back() {
		fmt.Fprintf(p.output, "Already at the first question.\n")
		return
	}
	p.showCurrent()
}

func (p *Preview) handleOptions() {
	opts := p.session.VisibleOptions()
	if opts == nil {
		fmt.Fprintf(p.output, "Current question has no options.\n")
		return
	}
	for _, opt := range opts {
		fmt.Fprintf(p.output, "  %s (value: %s)\n", opt.Label, opt.Value)
	}
}

func (p *Preview) handleAnswers() {
	answers := p.session.Answers()
	if len(answers) == 0 {
		fmt.Fprintf(p.output, "No answers recorded yet.\n")
		return
	}
	for _, serial := range p.session.Path() {
		if v, ok := answers[serial]; ok {
			fmt.Fprintf(p.output, "  %s = %s\n", serial, engine.DisplayString(v))
		}
	}
}

func (p *Preview) handlePath() {
	fmt.Fprintf(p.output, "  %s\n", strings.Join(p.session.Path(), " → "))
}

func (p *Preview) handleMessages() {
	msgs := p.session.Messages()
	if len(msgs) == 0 {
		fmt.Fprintf(p.output, "No messages shown yet.\n")
		return
	}
	for _, msg := range msgs {
		fmt.Fprintf(p.output, "  ⚠ %s\n", msg)
	}
}

func (p *Preview) handleGraph() {
	g := flowgraph.Build(registry.Build(p.survey), p.survey.Rules())
	fmt.Fprint(p.output, flowgraph.ASCII(g))
}

func (p *Preview) handleHelp() {
	fmt.Fprintf(p.output, `Commands:
  answer <value>   Answer the current question (comma-separate multi-select)
  back             Rewind to the previous question
  options          Show visible options of the current question
  answers          Show recorded answers along the path
  path             Show the visited question serials
  messages         Show collected messages
  graph            Render the survey flow graph
  help             Show this help
  quit             Exit the preview
`)
}
