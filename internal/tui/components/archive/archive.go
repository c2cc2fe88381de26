package archive

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/repository"
)

// OpenMsg asks to show the happinesses of an archived hangdam.
type OpenMsg struct {
	Hangdam models.Hangdam
}

type RenameMsg struct {
	Hangdam models.Hangdam
}

type Item struct {
	Hangdam models.Hangdam
}

func (i Item) Title() string {
	return fmt.Sprintf("Lv.%d %s", i.Hangdam.Level, i.Hangdam.DisplayName())
}
func (i Item) Description() string { return repository.Period(i.Hangdam) }
func (i Item) FilterValue() string { return i.Hangdam.DisplayName() }

type KeyMap struct {
	Open   key.Binding
	Rename key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Rename: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "rename"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(hangdams []models.Hangdam, width, height int) Model {
	l := list.New(items(hangdams), list.NewDefaultDelegate(), width, height)
	l.Title = "Archive"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Rename}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Open, keys.Rename}
	}

	return Model{list: l, keys: keys}
}

func items(hangdams []models.Hangdam) []list.Item {
	out := make([]list.Item, len(hangdams))
	for i, h := range hangdams {
		out[i] = Item{Hangdam: h}
	}
	return out
}

func (m *Model) SetHangdams(hangdams []models.Hangdam) {
	m.list.SetItems(items(hangdams))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Filtering reports whether the user is typing a filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return OpenMsg(i) }
			}
		case key.Matches(msg, m.keys.Rename):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return RenameMsg(i) }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No grown-up hangdams yet.\n  Feed the current one to fill the archive."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
