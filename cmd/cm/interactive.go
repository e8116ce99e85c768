package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/component-manager/model"
	"github.com/wippyai/component-manager/moniker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	resolvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserState int

const (
	stateBrowse browserState = iota
	stateEnterMoniker
)

type treeEntry struct {
	realm *model.Realm
	depth int
}

type browserModel struct {
	cm       *model.Model
	cleanup  func(context.Context)
	entries  []treeEntry
	input    textinput.Model
	status   string
	selected int
	state    browserState
}

type boundMsg struct {
	err error
}

func newBrowserModel(cm *model.Model, cleanup func(context.Context)) *browserModel {
	ti := textinput.New()
	ti.Placeholder = "/shell/console"
	ti.CharLimit = 128

	return &browserModel{
		cm:      cm,
		cleanup: cleanup,
		input:   ti,
	}
}

func runInteractive(storeDir, rootName, runnerName string) error {
	ctx := context.Background()
	cm, cleanup, err := buildModel(ctx, storeDir, rootName, runnerName)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	// Resolve the root up front so the browser has something to show.
	if _, err := cm.LookUpRealm(ctx, moniker.Root); err != nil {
		return err
	}

	m := newBrowserModel(cm, cleanup)
	m.refresh()

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m *browserModel) Init() tea.Cmd {
	return nil
}

// refresh rebuilds the flattened tree view from the live realm tree.
func (m *browserModel) refresh() {
	m.entries = m.entries[:0]
	m.appendSubtree(m.cm.Root(), 0)
	if m.selected >= len(m.entries) {
		m.selected = len(m.entries) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *browserModel) appendSubtree(r *model.Realm, depth int) {
	m.entries = append(m.entries, treeEntry{realm: r, depth: depth})
	kids := r.Children()
	names := make([]string, 0, len(kids))
	for n := range kids {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		m.appendSubtree(kids[n], depth+1)
	}
}

func (m *browserModel) bindSelected() tea.Cmd {
	realm := m.entries[m.selected].realm
	return func() tea.Msg {
		return boundMsg{err: m.cm.BindInstance(context.Background(), realm)}
	}
}

func (m *browserModel) bindMoniker(path string) tea.Cmd {
	return func() tea.Msg {
		target, err := moniker.Parse(path)
		if err != nil {
			return boundMsg{err: err}
		}
		return boundMsg{err: m.cm.LookUpAndBindInstance(context.Background(), target)}
	}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boundMsg:
		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		} else {
			m.status = "ok"
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateEnterMoniker {
			switch msg.String() {
			case "esc":
				m.state = stateBrowse
				m.input.Blur()
				return m, nil
			case "enter":
				path := m.input.Value()
				m.state = stateBrowse
				m.input.Blur()
				m.input.SetValue("")
				return m, m.bindMoniker(path)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
		case "b", "enter":
			return m, m.bindSelected()
		case "g":
			m.state = stateEnterMoniker
			m.input.Focus()
			return m, textinput.Blink
		case "r":
			m.refresh()
		}
	}
	return m, nil
}

func (m *browserModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("component-manager"))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		line := m.renderEntry(e)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	if m.state == stateEnterMoniker {
		b.WriteString("\nbind moniker: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: bind · esc: cancel"))
		return b.String()
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: select · b: bind · g: bind moniker · r: refresh · q: quit"))
	return b.String()
}

func (m *browserModel) renderEntry(e treeEntry) string {
	name := e.realm.Moniker().Leaf()
	if name == "" {
		name = "<root>"
	}

	var status string
	switch {
	case e.realm.Execution() != nil:
		status = runningStyle.Render("running")
	case e.realm.IsResolved():
		status = resolvedStyle.Render("resolved")
	default:
		status = helpStyle.Render("unresolved")
	}

	return fmt.Sprintf("%s%-24s %s", strings.Repeat("  ", e.depth), name, status)
}
