package entries

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sodam-app/sodam/internal/models"
)

var (
	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	contentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)
)

const timestampFormat = "2006.01.02 15:04"

type Model struct {
	viewport viewport.Model
	Hangdam  *models.Hangdam
	Entries  []models.Happiness
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Hangdam == nil {
		return "No hangdam selected."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetEntries shows the happinesses eaten by h.
func (m *Model) SetEntries(h models.Hangdam, entries []models.Happiness) {
	m.Hangdam = &h
	m.Entries = entries
	m.viewport.GotoTop()
	m.Render()
}

func (m *Model) Render() {
	if m.Hangdam == nil {
		m.viewport.SetContent("No hangdam loaded.")
		return
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s · Lv.%d", m.Hangdam.DisplayName(), m.Hangdam.Level)))
	b.WriteString("\n")

	if len(m.Entries) == 0 {
		b.WriteString("Nothing eaten yet. Press 'w' to write a happiness.\n")
		m.viewport.SetContent(b.String())
		return
	}

	for _, e := range m.Entries {
		b.WriteString(fmt.Sprintf("%s %s\n",
			timeStyle.Render(e.CreatedAt.Local().Format(timestampFormat)),
			contentStyle.Render(e.Content),
		))
		for _, img := range e.ImagePaths {
			b.WriteString(fmt.Sprintf("%s %s\n", timeStyle.Render(""), imageStyle.Render("🖼 "+img)))
		}
	}
	m.viewport.SetContent(b.String())
}
