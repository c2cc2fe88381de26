package reminder

import (
	"context"

	"github.com/charmbracelet/huh"
)

// ConfirmPrompt asks in the terminal whether daily reminders may be shown.
func ConfirmPrompt(ctx context.Context) (bool, error) {
	allow := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Allow daily reminders?").
				Description("Sodam can remind you to write down today's happiness.").
				Affirmative("Allow").
				Negative("Don't allow").
				Value(&allow),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return allow, nil
}
