// Package mapedit is the interactive editor for player name mappings. It
// steps through unmapped table identifiers, collects display names, and only
// persists the mapping once the user confirms the full set.
package mapedit

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokernow/internal/alias"
)

type phase int

const (
	phaseEdit phase = iota
	phaseConfirm
	phaseDone
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	rawNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	mappedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// Model is the Bubble Tea model for the mapping editor.
type Model struct {
	store *alias.Store
	names []string
	idx   int

	input   textinput.Model
	pending map[string]string

	phase phase
	saved bool
	err   error
}

// New creates an editor over the given store, stepping through names in
// order. Names that already have a mapping are skipped.
func New(store *alias.Store, names []string) *Model {
	ti := textinput.New()
	ti.Placeholder = "display name (blank to skip)"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	m := &Model{
		store:   store,
		names:   store.Unmapped(names),
		input:   ti,
		pending: make(map[string]string),
	}
	if len(m.names) == 0 {
		m.phase = phaseConfirm
	}
	return m
}

// Saved reports whether the user confirmed and the mapping was written.
func (m *Model) Saved() bool {
	return m.saved
}

// Err returns the save error, if any.
func (m *Model) Err() error {
	return m.err
}

// Pending returns the staged, unconfirmed mappings.
func (m *Model) Pending() map[string]string {
	out := make(map[string]string, len(m.pending))
	for k, v := range m.pending {
		out[k] = v
	}
	return out
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		// Cancel discards everything staged.
		m.pending = make(map[string]string)
		m.phase = phaseDone
		return m, tea.Quit
	}

	switch m.phase {
	case phaseEdit:
		if keyMsg.String() == "enter" {
			name := strings.TrimSpace(m.input.Value())
			if name != "" {
				m.pending[m.names[m.idx]] = name
			}
			m.input.SetValue("")
			m.idx++
			if m.idx >= len(m.names) {
				m.phase = phaseConfirm
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case phaseConfirm:
		switch keyMsg.String() {
		case "y", "Y", "enter":
			for raw, display := range m.pending {
				m.store.Set(raw, display)
			}
			if err := m.store.Save(); err != nil {
				m.err = err
			} else {
				m.saved = true
			}
			m.phase = phaseDone
			return m, tea.Quit
		case "n", "N":
			m.pending = make(map[string]string)
			m.phase = phaseDone
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Player name mappings"))
	b.WriteString("\n\n")

	switch m.phase {
	case phaseEdit:
		fmt.Fprintf(&b, "%d of %d unmapped\n\n", m.idx+1, len(m.names))
		b.WriteString(rawNameStyle.Render(m.names[m.idx]))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("enter: accept  esc: cancel"))

	case phaseConfirm:
		if len(m.pending) == 0 {
			b.WriteString("No new mappings.\n\n")
			b.WriteString(hintStyle.Render("enter: close"))
			break
		}
		fmt.Fprintf(&b, "Save %d mapping(s) to %s?\n\n", len(m.pending), m.store.Path())
		for _, raw := range m.names {
			display, ok := m.pending[raw]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %s %s %s\n", rawNameStyle.Render(raw), hintStyle.Render("->"), mappedStyle.Render(display))
		}
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("y: save  n: discard"))

	case phaseDone:
		if m.err != nil {
			fmt.Fprintf(&b, "save failed: %v\n", m.err)
		} else if m.saved {
			b.WriteString(mappedStyle.Render("Mappings saved."))
			b.WriteString("\n")
		} else {
			b.WriteString(hintStyle.Render("No changes saved."))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Run launches the editor and blocks until it exits. It reports whether the
// mapping was saved.
func Run(store *alias.Store, names []string) (bool, error) {
	model := New(store, names)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return false, fmt.Errorf("mapedit: %w", err)
	}
	if model.Err() != nil {
		return false, model.Err()
	}
	return model.Saved(), nil
}
