package cli

import (
	"github.com/sodam-app/sodam/internal/tui/components/card"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *Context) error {
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	current, err := repo.GetCurrentHangdam()
	if err != nil {
		return err
	}
	status, err := repo.Status(current)
	if err != nil {
		return err
	}
	written, err := ctx.Settings().HasAlreadyWrittenToday(ctx.now())
	if err != nil {
		return err
	}

	ctx.println(card.Render(status, written))
	return nil
}
