// Package repl implements the interactive calculator.
package repl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/complexpr"
)

// Ans is the variable holding the most recent result.
const Ans = "ans"

// maxHistory is the number of entries kept in the history.
const maxHistory = 200

// Styles are the lipgloss styles of the calculator.
type Styles struct {
	Prompt lipgloss.Style
	Input  lipgloss.Style
	Result lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Prompt: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		Input: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")),
		Result: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			PaddingLeft(2),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			PaddingLeft(2),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true),
	}
}

// Entry is one evaluated line.
type Entry struct {
	Src    string
	Result string
	Err    error
}

// Model is the bubbletea model of the calculator.
type Model struct {
	input   textinput.Model
	reg     *complexpr.Registry
	vars    complexpr.Vars
	history []Entry
	// recall is the history index shown by the up and down keys, or
	// len(history) when editing a new line.
	recall int
	styles Styles
}

// New creates a calculator. A nil registry means complexpr.Builtins. vars
// holds initial variable bindings and is copied.
func New(reg *complexpr.Registry, vars complexpr.Vars) Model {
	if reg == nil {
		reg = complexpr.Builtins()
	}
	ti := textinput.New()
	ti.Placeholder = "expression, or name = expression"
	ti.Prompt = "» "
	ti.CharLimit = 4096
	ti.Width = 72
	ti.Focus()
	v := make(complexpr.Vars, len(vars)+1)
	for k, x := range vars {
		v[k] = x
	}
	return Model{
		input:  ti,
		reg:    reg,
		vars:   v,
		styles: DefaultStyles(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			src := strings.TrimSpace(m.input.Value())
			if src != "" {
				m = m.Submit(src)
			}
			m.input.Reset()
			return m, nil
		case tea.KeyUp:
			if m.recall > 0 {
				m.recall--
				m.input.SetValue(m.history[m.recall].Src)
				m.input.CursorEnd()
			}
			return m, nil
		case tea.KeyDown:
			if m.recall < len(m.history) {
				m.recall++
				if m.recall == len(m.history) {
					m.input.Reset()
				} else {
					m.input.SetValue(m.history[m.recall].Src)
					m.input.CursorEnd()
				}
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-4, 8)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Submit evaluates a line and appends it to the history. A line of the form
// "name = expression" also binds the result to name. Every successful result
// is bound to Ans.
func (m Model) Submit(src string) Model {
	name, text := splitAssign(src)
	e := Entry{Src: src}
	var v complexpr.Value
	var err error
	if name != "" && m.isConst(name) {
		err = fmt.Errorf("cannot assign to %s: %w", name, ErrReserved)
	} else {
		v, err = complexpr.EvalString(text, m.vars, complexpr.WithRegistry(m.reg))
	}
	switch {
	case err != nil:
		e.Err = err
	default:
		e.Result = v.String()
		m.vars[Ans] = v
		if name != "" {
			m.vars[name] = v
		}
	}
	m.history = append(m.history, e)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
	m.recall = len(m.history)
	return m
}

// ErrReserved indicates an assignment to a registered name.
var ErrReserved = errors.New("name is registered")

// isConst reports whether name is registered, so that binding it would have
// no effect.
func (m Model) isConst(name string) bool {
	_, ok := m.reg.Lookup(name)
	return ok
}

// History returns the evaluated lines, oldest first.
func (m Model) History() []Entry {
	return m.history
}

// Vars returns the current variable bindings.
func (m Model) Vars() complexpr.Vars {
	return m.vars
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder
	for _, e := range m.history {
		b.WriteString(m.styles.Input.Render(e.Src))
		b.WriteByte('\n')
		if e.Err != nil {
			b.WriteString(m.styles.Error.Render(e.Err.Error()))
		} else {
			b.WriteString(m.styles.Result.Render(e.Result))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(m.styles.Help.Render("enter evaluates · ↑/↓ recall · esc quits"))
	b.WriteByte('\n')
	return b.String()
}

// splitAssign separates "name = expression" into its parts. Lines without an
// assignment give an empty name.
func splitAssign(src string) (name, text string) {
	k := strings.IndexByte(src, '=')
	if k < 0 {
		return "", src
	}
	name = strings.TrimSpace(src[:k])
	if !isName(name) {
		return "", src
	}
	return name, src[k+1:]
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// Run runs the calculator on the terminal until the user quits or ctx ends.
func Run(ctx context.Context, reg *complexpr.Registry, vars complexpr.Vars) error {
	_, err := tea.NewProgram(New(reg, vars), tea.WithContext(ctx)).Run()
	return err
}
