package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/tui/components/archive"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.entriesModel.SetSize(msg.Width-4, msg.Height-6)
		m.archiveModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case archive.OpenMsg:
		happinesses, err := m.repo.GetHappinesses(msg.Hangdam.ID)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.entriesModel.SetEntries(msg.Hangdam, happinesses)
		m.previousState = StateArchive
		m.state = StateEntries
		return m, nil

	case archive.RenameMsg:
		return m, m.startRename(msg.Hangdam)
	}

	if m.state == StateWriting || m.state == StateRenaming {
		return m.updateForm(msg)
	}

	// keys typed into the archive filter belong to the list
	if m.state == StateArchive && m.archiveModel.Filtering() {
		var cmd tea.Cmd
		m.archiveModel, cmd = m.archiveModel.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		m.message = ""
		m.err = nil
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.switchTab((m.state + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab((m.state - 1 + tabCount) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Write):
			return m, m.startWrite()
		case key.Matches(msg, m.keys.Back):
			if m.state == StateEntries && m.previousState == StateArchive {
				m.switchTab(StateArchive)
			}
			return m, nil
		case key.Matches(msg, m.keys.Name) && m.state == StateStatus:
			return m, m.startRename(m.current)
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateEntries:
		m.entriesModel, cmd = m.entriesModel.Update(msg)
	case StateArchive:
		m.archiveModel, cmd = m.archiveModel.Update(msg)
	}
	return m, cmd
}

// switchTab moves to a tab, putting the current hangdam back on the entries tab.
func (m *Model) switchTab(state SessionState) {
	if m.state == StateEntries && m.previousState == StateArchive {
		if err := m.refresh(); err != nil {
			m.err = err
		}
	}
	m.previousState = m.state
	m.state = state
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) {
		return m.abortForm()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateWriting {
			m.submitWrite()
		} else {
			m.submitRename()
		}
		m.form = nil
		m.state = m.previousState
		return m, nil
	case huh.StateAborted:
		return m.abortForm()
	}
	return m, cmd
}

func (m Model) abortForm() (tea.Model, tea.Cmd) {
	if m.state == StateWriting {
		m.saveDraft()
	}
	m.form = nil
	m.state = m.previousState
	return m, nil
}

func (m *Model) saveDraft() {
	content := strings.TrimSpace(m.writeForm.Content)
	images := splitPaths(m.writeForm.Images)
	if content == "" && len(images) == 0 {
		return
	}
	sm := m.repo.Settings()
	if err := sm.SaveContent(content); err != nil {
		m.err = err
		return
	}
	if err := sm.SaveImagePaths(images); err != nil {
		m.err = err
		return
	}
	m.message = "Draft saved."
}

func (m *Model) submitWrite() {
	content := strings.TrimSpace(m.writeForm.Content)
	images := splitPaths(m.writeForm.Images)
	if content == "" && len(images) == 0 {
		m.err = errors.New("nothing to write")
		return
	}

	rec, err := m.repo.AddHappiness(content, images)
	if err != nil {
		logger.Error("Failed to record happiness", "error", err)
		m.err = err
		return
	}

	name := rec.Hangdam.DisplayName()
	switch {
	case rec.Archived:
		m.message = fmt.Sprintf("%s is all grown up and moved to the archive. A new %s will hatch.", name, constants.DefaultHangdamName)
	case rec.LeveledUp:
		m.message = fmt.Sprintf("%s grew to Lv.%d!", name, rec.Hangdam.Level)
	default:
		m.message = fmt.Sprintf("%s ate your happiness.", name)
	}
	if err := m.refresh(); err != nil {
		m.err = err
	}
}

func (m *Model) submitRename() {
	if _, err := m.repo.NameHangdam(m.renaming.ID, m.renameForm.Name); err != nil {
		m.err = err
		return
	}
	m.message = "Name saved."
	if err := m.refresh(); err != nil {
		m.err = err
	}
}
