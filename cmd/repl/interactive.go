package main

import (
	stderrors "errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/js-runtime/dispatch"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const historyLimit = 200

type entry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	ch         *dispatch.Channel
	input      textinput.Model
	history    []entry
	evaluating bool
}

type evalDoneMsg struct {
	input  string
	output string
	err    error
}

func newReplModel(ch *dispatch.Channel) *replModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render("js> ")
	ti.Placeholder = "1 + 1"
	ti.Focus()
	return &replModel{ch: ch, input: ti}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

// evalCmd dispatches src and blocks (off the UI goroutine) on the join.
func (m *replModel) evalCmd(src string) tea.Cmd {
	ch := m.ch
	return func() tea.Msg {
		out, err := evaluate(ch, src)
		return evalDoneMsg{input: src, output: out, err: err}
	}
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit

		case "enter":
			if m.evaluating {
				return m, nil
			}
			src := strings.TrimSpace(m.input.Value())
			if src == "" {
				return m, nil
			}
			m.input.Reset()
			m.evaluating = true
			return m, m.evalCmd(src)
		}

	case evalDoneMsg:
		m.evaluating = false
		e := entry{input: msg.input, output: msg.output}
		if msg.err != nil {
			e.isErr = true
			e.output = formatEvalErr(msg.err)
		}
		m.history = append(m.history, e)
		if len(m.history) > historyLimit {
			m.history = m.history[len(m.history)-historyLimit:]
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func formatEvalErr(err error) string {
	var je *dispatch.JoinError
	if stderrors.As(err, &je) && je.Thrown() {
		return "uncaught " + je.Unwrap().Error()
	}
	return err.Error()
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("js-runtime repl"))
	b.WriteString("\n\n")

	for _, e := range m.history {
		b.WriteString(promptStyle.Render("js> "))
		b.WriteString(e.input)
		b.WriteString("\n")
		if e.isErr {
			b.WriteString(errorStyle.Render(e.output))
		} else {
			b.WriteString(resultStyle.Render(e.output))
		}
		b.WriteString("\n")
	}

	if m.evaluating {
		b.WriteString(helpStyle.Render("evaluating..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter evaluate • ctrl+c quit"))
	b.WriteString("\n")

	return b.String()
}

func runInteractive(ch *dispatch.Channel) error {
	p := tea.NewProgram(newReplModel(ch))
	_, err := p.Run()
	return err
}
