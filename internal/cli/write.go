package cli

import (
	"errors"
	"strings"

	"github.com/sodam-app/sodam/internal/constants"
)

type WriteCmd struct {
	Content string   `arg:"" optional:"" help:"What made you happy today."`
	Image   []string `short:"i" help:"Image path to attach (repeatable)."`
	Draft   bool     `help:"Save as a draft instead of feeding the hangdam."`
}

func (c *WriteCmd) Run(ctx *Context) error {
	sm := ctx.Settings()
	content := strings.TrimSpace(c.Content)
	images := splitPaths(c.Image)

	if c.Draft {
		if err := sm.SaveContent(content); err != nil {
			return err
		}
		if err := sm.SaveImagePaths(images); err != nil {
			return err
		}
		ctx.println("Draft saved.")
		return nil
	}

	// fall back to the saved draft
	if content == "" && len(images) == 0 {
		var err error
		if content, err = sm.GetContent(); err != nil {
			return err
		}
		if images, err = sm.GetImagePaths(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(content) == "" && len(images) == 0 {
		return errors.New("nothing to write: pass some text or --image")
	}

	repo, err := ctx.Repository()
	if err != nil {
		return err
	}
	rec, err := repo.AddHappiness(content, images)
	if err != nil {
		return err
	}

	name := rec.Hangdam.DisplayName()
	ctx.printf("%s ate your happiness (%d/%d).\n", name, rec.EntryCount, repo.Table().Capacity)
	if rec.LeveledUp {
		ctx.printf("%s grew to Lv.%d!\n", name, rec.Hangdam.Level)
	}
	if rec.Archived {
		ctx.printf("%s is all grown up and moved to the archive. A new %s will hatch next time.\n", name, constants.DefaultHangdamName)
	}
	return nil
}

type DraftCmd struct {
	Show  DraftShowCmd  `cmd:"" help:"Show the saved draft." default:"1"`
	Clear DraftClearCmd `cmd:"" help:"Discard the saved draft."`
}

type DraftShowCmd struct{}

func (c *DraftShowCmd) Run(ctx *Context) error {
	sm := ctx.Settings()
	content, err := sm.GetContent()
	if err != nil {
		return err
	}
	images, err := sm.GetImagePaths()
	if err != nil {
		return err
	}
	if content == "" && len(images) == 0 {
		ctx.println("No draft saved.")
		return nil
	}
	ctx.printf("Content: %s\n", content)
	for _, img := range images {
		ctx.printf("Image:   %s\n", img)
	}
	return nil
}

type DraftClearCmd struct{}

func (c *DraftClearCmd) Run(ctx *Context) error {
	if err := ctx.Settings().DeleteTemporaryPost(); err != nil {
		return err
	}
	ctx.println("Draft discarded.")
	return nil
}
