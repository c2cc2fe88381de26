package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sodam-app/sodam/internal/models"
	"github.com/sodam-app/sodam/internal/repository"
	"github.com/sodam-app/sodam/internal/tui/components/archive"
	"github.com/sodam-app/sodam/internal/tui/components/entries"
)

type SessionState int

const (
	StateStatus SessionState = iota
	StateEntries
	StateArchive
	StateWriting
	StateRenaming
)

const tabCount = 3

type WriteFormModel struct {
	Content string
	Images  string
}

type RenameFormModel struct {
	Name string
}

type Model struct {
	repo          *repository.Repository
	now           func() time.Time
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	entriesModel  entries.Model
	archiveModel  archive.Model
	form          *huh.Form
	writeForm     *WriteFormModel
	renameForm    *RenameFormModel
	renaming      models.Hangdam
	current       models.Hangdam
	status        repository.Status
	writtenToday  bool
	message       string
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(repo *repository.Repository) (Model, error) {
	m := Model{
		repo:         repo,
		now:          time.Now,
		state:        StateStatus,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		entriesModel: entries.New(0, 0),
		archiveModel: archive.New(nil, 0, 0),
	}
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// refresh reloads the current hangdam, its entries and the archive.
func (m *Model) refresh() error {
	current, err := m.repo.GetCurrentHangdam()
	if err != nil {
		return err
	}
	status, err := m.repo.Status(current)
	if err != nil {
		return err
	}
	happinesses, err := m.repo.GetHappinesses(current.ID)
	if err != nil {
		return err
	}
	saved, err := m.repo.GetSavedHangdams()
	if err != nil {
		return err
	}
	written, err := m.repo.Settings().HasAlreadyWrittenToday(m.now())
	if err != nil {
		return err
	}

	m.current = current
	m.status = status
	m.writtenToday = written
	m.entriesModel.SetEntries(current, happinesses)
	m.archiveModel.SetHangdams(saved)
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help, m.keys.Write}
	switch m.state {
	case StateStatus:
		keys = append(keys, m.keys.Name)
	case StateArchive:
		keys = append(keys, m.keys.Enter, m.keys.Name)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Back}
	actions := []key.Binding{m.keys.Write, m.keys.Name}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) startWrite() tea.Cmd {
	sm := m.repo.Settings()
	m.writeForm = &WriteFormModel{}
	// resume the saved draft
	if content, err := sm.GetContent(); err == nil {
		m.writeForm.Content = content
	}
	if images, err := sm.GetImagePaths(); err == nil {
		m.writeForm.Images = strings.Join(images, ", ")
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("What made you happy today?").
				Value(&m.writeForm.Content),
			huh.NewInput().
				Title("Image paths").
				Description("Comma separated, optional").
				Value(&m.writeForm.Images),
		),
	).WithTheme(huh.ThemeDracula())

	m.previousState = m.state
	m.state = StateWriting
	return m.form.Init()
}

func (m *Model) startRename(h models.Hangdam) tea.Cmd {
	m.renaming = h
	m.renameForm = &RenameFormModel{Name: h.Name}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name your hangdam").
				Placeholder(h.DisplayName()).
				Value(&m.renameForm.Name),
		),
	).WithTheme(huh.ThemeDracula())

	m.previousState = m.state
	m.state = StateRenaming
	return m.form.Init()
}

func splitPaths(value string) []string {
	var paths []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
