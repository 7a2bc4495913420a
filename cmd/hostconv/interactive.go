package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/wippyai/hostbridge/object/literal"
	"github.com/wippyai/hostbridge/transcoder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const maxHistory = 5

type interactiveModel struct {
	opts    options
	input   textinput.Model
	entries []entry
	history []string
	recall  int
}

// entry is one evaluated line.
type entry struct {
	source string
	kinds  string
	json   string
	yaml   string
	err    error
}

func newInteractiveModel(opts options) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "{'a': (1, 2), 'b': None}"
	ti.Prompt = promptStyle.Render(">>> ")
	ti.Width = 60
	ti.Focus()
	return &interactiveModel{opts: opts, input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			source := strings.TrimSpace(m.input.Value())
			if source == "" {
				return m, nil
			}
			m.entries = append(m.entries, evaluate(m.opts, source))
			if len(m.entries) > maxHistory {
				m.entries = m.entries[len(m.entries)-maxHistory:]
			}
			m.history = append(lo.Without(m.history, source), source)
			m.recall = len(m.history)
			m.input.SetValue("")
			return m, nil

		case "up":
			if m.recall > 0 {
				m.recall--
				m.input.SetValue(m.history[m.recall])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.recall < len(m.history)-1 {
				m.recall++
				m.input.SetValue(m.history[m.recall])
				m.input.CursorEnd()
			} else {
				m.recall = len(m.history)
				m.input.SetValue("")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate parses a host literal and renders it the ways the view shows.
func evaluate(opts options, source string) entry {
	e := entry{source: source}
	obj, err := literal.Parse(source)
	if err != nil {
		e.err = err
		return e
	}
	if opts.tuplesAsLists {
		if obj, err = transcoder.Convert(obj, opts.strategy()); err != nil {
			e.err = err
			return e
		}
	}
	e.kinds = describe(obj)

	jsonOut, err := render(options{to: formatJSON, compact: true}, obj)
	if err != nil {
		e.err = err
		return e
	}
	e.json = strings.TrimSpace(string(jsonOut))

	yamlOut, err := render(options{to: formatYAML}, obj)
	if err != nil {
		e.err = err
		return e
	}
	e.yaml = strings.TrimRight(string(yamlOut), "\n")
	return e
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("hostconv"))
	b.WriteString(" enter a host literal\n\n")

	for _, e := range m.entries {
		b.WriteString(promptStyle.Render(">>> "))
		b.WriteString(e.source)
		b.WriteString("\n")
		if e.err != nil {
			b.WriteString(errorStyle.Render(errorText(e.err)))
			b.WriteString("\n\n")
			continue
		}
		b.WriteString(kindStyle.Render(e.kinds))
		b.WriteString("\n")
		b.WriteString(resultStyle.Render("json: " + e.json))
		b.WriteString("\n")
		b.WriteString(resultStyle.Render(indent(e.yaml, "yaml: ")))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("enter evaluate • ↑/↓ history • esc quit • last %d shown", maxHistory)))
	return b.String()
}

// indent prefixes the first line with head and aligns the rest under it.
func indent(text, head string) string {
	pad := strings.Repeat(" ", len(head))
	lines := strings.Split(text, "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = head + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func runInteractive(opts options) error {
	p := tea.NewProgram(newInteractiveModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
