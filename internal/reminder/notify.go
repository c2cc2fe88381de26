package reminder

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, title, text string) error
}

// PrintNotifier writes reminders to W instead of showing them on the desktop.
type PrintNotifier struct {
	W   io.Writer
	Now func() time.Time
}

var printTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))

func (p PrintNotifier) Notify(_ context.Context, title, text string) error {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	_, err := fmt.Fprintf(p.W, "[%s] %s %s\n", now().Format("15:04"), printTitleStyle.Render(title), text)
	return err
}
