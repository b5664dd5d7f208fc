// Package tui provides the interactive menu shown when omnidim runs without a
// subcommand.
//
// The menu never calls the API itself. It walks the user from a section to an
// action, prompts for that action's inputs and returns the command line to
// run, so every action goes through the same cobra command as the
// non-interactive CLI.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Field is one value an action prompts for.
type Field struct {
	Label       string
	Flag        string // empty for a positional argument
	Placeholder string
	Default     string
	Required    bool
	Secret      bool
}

// Action is one entry of a section menu.
type Action struct {
	Title       string
	Description string
	Command     []string
	Fields      []Field
	Confirm     string // asked as a yes/no question after the fields
}

// Section groups the actions of one resource.
type Section struct {
	Title       string
	Description string
	Actions     []Action
}

// ViewMode is the screen the menu is on.
type ViewMode int

const (
	MainView ViewMode = iota
	SectionView
	FormView
)

// KeyMap defines keybindings
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Back, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Enter}, {k.Back, k.Quit}}
}

// Model is the menu state.
type Model struct {
	sections []Section
	view     ViewMode
	width    int

	menu    list.Model
	actions list.Model
	input   textinput.Model

	section int
	action  Action
	field   int
	values  []string
	invalid string

	help   help.Model
	keyMap KeyMap

	selection []string
	quitting  bool
}

const (
	exitTitle = "Exit"
	backTitle = "← Back to main menu"
)

var (
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 2)
	subtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("240")).Padding(0, 2)
	labelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)
)

// New returns a menu over sections, starting on the main screen.
func New(sections []Section) Model {
	items := make([]list.Item, 0, len(sections)+1)
	for _, s := range sections {
		items = append(items, menuItem{title: s.Title, desc: s.Description})
	}
	items = append(items, menuItem{title: exitTitle, desc: "Leave interactive mode"})

	return Model{
		sections: sections,
		view:     MainView,
		menu:     newList("What would you like to do?", items),
		help:     help.New(),
		keyMap:   DefaultKeyMap(),
	}
}

// Selection is the command line the user built, or nil when they quit.
func (m Model) Selection() []string {
	return m.selection
}

// View returns the screen the menu is on.
func (m Model) View() string {
	if m.quitting || m.selection != nil {
		return ""
	}

	var content strings.Builder
	switch m.view {
	case MainView:
		content.WriteString(bannerStyle.Render("OmniDimension CLI"))
		content.WriteString("\n")
		content.WriteString(subtitleStyle.Render("Interactive voice agent management"))
		content.WriteString("\n\n")
		content.WriteString(m.menu.View())
	case SectionView:
		content.WriteString(m.actions.View())
	case FormView:
		content.WriteString(m.renderForm())
	}
	content.WriteString("\n")
	content.WriteString(footerStyle.Render(m.help.View(m.keyMap)))
	content.WriteString("\n")
	return content.String()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.menu.SetWidth(msg.Width)
		m.actions.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.view == FormView {
			return m.handleFormInput(msg)
		}

		switch {
		case key.Matches(msg, m.keyMap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Back):
			if m.view == SectionView {
				m.view = MainView
			}
			return m, nil
		case key.Matches(msg, m.keyMap.Enter):
			return m.handleEnter()
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case MainView:
		m.menu, cmd = m.menu.Update(msg)
	case SectionView:
		m.actions, cmd = m.actions.Update(msg)
	}
	return m, cmd
}

// handleEnter handles the Enter key press
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.view {
	case MainView:
		idx := m.menu.Index()
		if idx >= len(m.sections) {
			m.quitting = true
			return m, tea.Quit
		}
		m.section = idx
		s := m.sections[idx]
		items := make([]list.Item, 0, len(s.Actions)+1)
		for _, a := range s.Actions {
			items = append(items, menuItem{title: a.Title, desc: a.Description})
		}
		items = append(items, menuItem{title: backTitle})
		m.actions = newList(s.Title, items)
		if m.width > 0 {
			m.actions.SetWidth(m.width)
		}
		m.view = SectionView

	case SectionView:
		actions := m.sections[m.section].Actions
		idx := m.actions.Index()
		if idx >= len(actions) {
			m.view = MainView
			return m, nil
		}
		m.action = actions[idx]
		if len(m.action.Fields) == 0 && m.action.Confirm == "" {
			return m.finish()
		}
		m.field = 0
		m.values = make([]string, len(m.action.Fields))
		m.invalid = ""
		m.input = newInput(m.currentField())
		m.view = FormView
		return m, textinput.Blink
	}
	return m, nil
}

// handleFormInput handles typing while an action prompts for its fields.
func (m Model) handleFormInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = SectionView
		m.invalid = ""
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if m.confirming() {
			if strings.HasPrefix(strings.ToLower(value), "y") {
				return m.finish()
			}
			m.view = SectionView
			return m, nil
		}

		f := m.action.Fields[m.field]
		if value == "" {
			value = f.Default
		}
		if f.Required && value == "" {
			m.invalid = f.Label + " is required"
			return m, nil
		}
		m.values[m.field] = value
		m.invalid = ""
		m.field++
		if m.field == len(m.action.Fields) && m.action.Confirm == "" {
			return m.finish()
		}
		m.input = newInput(m.currentField())
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// confirming reports whether every field is answered and only the yes/no
// question is left.
func (m Model) confirming() bool {
	return m.field == len(m.action.Fields)
}

func (m Model) currentField() Field {
	if m.confirming() {
		return Field{Label: m.action.Confirm + " [y/N]", Placeholder: "n", Required: true}
	}
	return m.action.Fields[m.field]
}

// finish turns the chosen action and its answers into a command line.
func (m Model) finish() (tea.Model, tea.Cmd) {
	args := append([]string{}, m.action.Command...)
	var flags []string
	for i, f := range m.action.Fields {
		v := m.values[i]
		if v == "" {
			continue
		}
		if f.Flag == "" {
			args = append(args, v)
		} else {
			flags = append(flags, "--"+f.Flag+"="+v)
		}
	}
	m.selection = append(args, flags...)
	return m, tea.Quit
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.action.Title))
	b.WriteString("\n\n")
	for i := 0; i < m.field; i++ {
		f := m.action.Fields[i]
		shown := m.values[i]
		if f.Secret && shown != "" {
			shown = strings.Repeat("•", 8)
		}
		fmt.Fprintf(&b, "  %s: %s\n", f.Label, answerStyle.Render(shown))
	}

	f := m.currentField()
	label := f.Label
	if !f.Required {
		label += " (optional)"
	}
	fmt.Fprintf(&b, "  %s\n  %s\n", labelStyle.Render(label), m.input.View())
	if m.invalid != "" {
		b.WriteString("\n  ")
		b.WriteString(errorStyle.Render(m.invalid))
		b.WriteString("\n")
	}
	return b.String()
}

// Run shows the menu on in/out until the user picks an action or quits. The
// returned command line is nil when they quit.
func Run(in io.Reader, out io.Writer, sections []Section) ([]string, error) {
	p := tea.NewProgram(New(sections), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("interactive menu: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return nil, nil
	}
	return m.Selection(), nil
}

func newList(title string, items []list.Item) list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 72, len(items)*3+4)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.NoItems = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 2)
	return l
}

func newInput(f Field) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = f.Placeholder
	if ti.Placeholder == "" && f.Default != "" {
		ti.Placeholder = f.Default
	}
	if f.Secret {
		ti.EchoMode = textinput.EchoPassword
	}
	ti.Width = 60
	ti.Focus()
	return ti
}

type menuItem struct {
	title string
	desc  string
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
