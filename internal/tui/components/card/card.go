package card

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/sodam-app/sodam/internal/repository"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const barWidth = 30

// Render draws the status card of a Hangdam.
func Render(status repository.Status, writtenToday bool) string {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth))
	ratio := 0.0
	if status.Max > 0 {
		ratio = float64(status.Entries) / float64(status.Max)
	}

	today := "not yet written today"
	if writtenToday {
		today = "written today ✓"
	}

	lines := []string{
		titleStyle.Render(status.Title()),
		mutedStyle.Render(status.Period),
		"",
		bar.ViewAs(ratio),
		fmt.Sprintf("%d / %d happinesses", status.Entries, status.Max),
		mutedStyle.Render(today),
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
