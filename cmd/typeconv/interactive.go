package main

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/wippyai/typeconv/convert"
	"golang.org/x/term"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Explore converter selection in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				return fmt.Errorf("interactive mode requires a terminal")
			}

			ctx := cmd.Context()
			s, err := a.open(ctx, false)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			p := tea.NewProgram(newInteractiveModel(s.engine, a.types),
				tea.WithAltScreen(),
				tea.WithOutput(out),
				tea.WithContext(ctx),
			)
			_, err = p.Run()
			return err
		},
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

const (
	inputField = iota
	outputField
)

type interactiveModel struct {
	err      error
	engine   *convert.Engine
	types    *typeNames
	in       reflect.Type
	out      reflect.Type
	found    []convert.Descriptor
	inputs   []textinput.Model
	focusIdx int
}

func newInteractiveModel(engine *convert.Engine, types *typeNames) *interactiveModel {
	m := &interactiveModel{
		engine: engine,
		types:  types,
		inputs: make([]textinput.Model, 2),
	}
	for i, prompt := range []string{"from: ", "to:   "} {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Placeholder = "int[]"
		ti.Width = 40
		ti.ShowSuggestions = true
		ti.SetSuggestions(types.names())
		m.inputs[i] = ti
	}
	m.inputs[outputField].Placeholder = "IntArray"
	m.inputs[inputField].Focus()
	return m
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "up", "down":
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
			return m, m.inputs[m.focusIdx].Focus()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	m.refresh()
	return m, cmd
}

// refresh resolves both type names and reloads the ranked candidates.
func (m *interactiveModel) refresh() {
	m.found, m.err = nil, nil
	m.in, m.out = nil, nil

	inName := m.inputs[inputField].Value()
	outName := m.inputs[outputField].Value()
	if strings.TrimSpace(inName) == "" || strings.TrimSpace(outName) == "" {
		return
	}

	in, err := m.types.resolve(inName)
	if err != nil {
		m.err = err
		return
	}
	out, err := m.types.resolve(outName)
	if err != nil {
		m.err = err
		return
	}

	m.in, m.out = in, out
	m.found = m.engine.Find(in, out)
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("typeconv"))
	b.WriteString(" converter selection\n\n")

	for i, input := range m.inputs {
		b.WriteString(input.View())
		if t := m.resolved(i); t != nil {
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(t.String()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")

	case m.in != nil && len(m.found) == 0:
		b.WriteString(errorStyle.Render("no converter"))
		b.WriteString("\n")

	default:
		for i, d := range m.found {
			line := fmt.Sprintf("%d. %s  %s", i+1, d.Name, priorityString(d.Priority))
			if i == 0 {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + nameStyle.Render(line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch field • esc quit"))
	return b.String()
}

func (m *interactiveModel) resolved(field int) reflect.Type {
	if field == inputField {
		return m.in
	}
	return m.out
}
