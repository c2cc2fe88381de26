package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sodam-app/sodam/internal/tui/components/card"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateStatus:
		content = m.viewStatus()
	case StateEntries:
		content = docStyle.Render(m.entriesModel.View())
	case StateArchive:
		content = docStyle.Render(m.archiveModel.View())
	case StateWriting, StateRenaming:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewMessage(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active > StateArchive {
		active = m.previousState
	}
	var tabs []string
	for i, title := range []string{"Hangdam", "Happinesses", "Archive"} {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	return lipgloss.Place(m.width, max(m.height-6, 0),
		lipgloss.Center, lipgloss.Center,
		card.Render(m.status, m.writtenToday),
	)
}

func (m Model) viewMessage() string {
	if m.err != nil {
		return dangerStyle.Render(m.err.Error())
	}
	if m.message != "" {
		return messageStyle.Render(m.message)
	}
	return ""
}
