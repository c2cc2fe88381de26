package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/repository"
)

type NameCmd struct {
	Name string `arg:"" help:"New name for the hangdam."`
	ID   string `help:"Hangdam to rename (defaults to the current one)."`
}

func (c *NameCmd) Run(ctx *Context) error {
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}

	id := c.ID
	if id == "" {
		current, err := repo.GetCurrentHangdam()
		if err != nil {
			return err
		}
		id = current.ID
	}

	h, err := repo.NameHangdam(id, c.Name)
	if err != nil {
		return err
	}
	ctx.printf("Your hangdam is now called %s.\n", h.DisplayName())
	return nil
}

var (
	dateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(18)
	imageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Italic(true)
)

type EntriesCmd struct {
	ID string `help:"Hangdam whose happinesses to list (defaults to the current one)."`
}

func (c *EntriesCmd) Run(ctx *Context) error {
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}

	h, err := repo.GetCurrentHangdam()
	if err != nil {
		return err
	}
	if c.ID != "" {
		if h, err = repo.GetHangdam(c.ID); err != nil {
			return err
		}
	}

	entries, err := repo.GetHappinesses(h.ID)
	if err != nil {
		return err
	}
	ctx.println(titleStyle.Render(fmt.Sprintf("Lv.%d %s", h.Level, h.DisplayName())) + "  " + mutedStyle.Render(repository.Period(h)))
	if len(entries) == 0 {
		ctx.println("No happinesses yet. Use 'sodam write' to add one.")
		return nil
	}
	for i, e := range entries {
		line := dateStyle.Render(fmt.Sprintf("%2d. %s", i+1, e.CreatedAt.Local().Format(constants.DisplayDateFormat+" "+constants.TimeFormat)))
		ctx.println(line + e.Content)
		for _, img := range e.ImagePaths {
			ctx.println(strings.Repeat(" ", 18) + imageStyle.Render("🖼 "+img))
		}
	}
	return nil
}

type ArchiveCmd struct{}

func (c *ArchiveCmd) Run(ctx *Context) error {
	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	saved, err := repo.GetSavedHangdams()
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		ctx.println("No grown-up hangdams yet.")
		return nil
	}

	ctx.printf("Grown-up hangdams (%d):\n\n", len(saved))
	for _, h := range saved {
		ctx.printf("  %-6s %-12s %s  %s\n", fmt.Sprintf("Lv.%d", h.Level), h.DisplayName(), repository.Period(h), mutedStyle.Render(h.ID))
	}
	return nil
}
