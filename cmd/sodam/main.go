package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/sodam-app/sodam/internal/cli"
	"github.com/sodam-app/sodam/internal/config"
	"github.com/sodam-app/sodam/internal/constants"
	"github.com/sodam-app/sodam/internal/errors"
	"github.com/sodam-app/sodam/internal/logger"
	"github.com/sodam-app/sodam/internal/storage"
	"github.com/sodam-app/sodam/internal/storage/jsonstore"
	"github.com/sodam-app/sodam/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database path (.db for SQLite, .json for a JSON file)." type:"path" env:"SODAM_DB" default:"${db}"`
	Config  string `help:"Config file path." type:"path" env:"SODAM_CONFIG" default:"${config}"`
	Verbose bool   `name:"debug" help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize sodam storage and config."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status   cli.StatusCmd   `cmd:"" help:"Show the current hangdam."`
	Write    cli.WriteCmd    `cmd:"" help:"Feed a happiness to the current hangdam."`
	Draft    cli.DraftCmd    `cmd:"" help:"Show or discard the saved draft."`
	Name     cli.NameCmd     `cmd:"" help:"Name a hangdam."`
	Entries  cli.EntriesCmd  `cmd:"" help:"List the happinesses of a hangdam."`
	Archive  cli.ArchiveCmd  `cmd:"" help:"List grown-up hangdams."`
	Settings cli.SettingsCmd `cmd:"" help:"Manage application settings."`
	Setup    cli.SetupCmd    `cmd:"" help:"Set up the daily reminder."`
	Remind   cli.RemindCmd   `cmd:"" help:"Run the daily reminder daemon."`
	Notify   cli.NotifyCmd   `cmd:"" hidden:"" help:"Send a reminder now (used by system schedulers)."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`
	Debug  cli.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A diary of small happinesses that grows a hangdam"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"db":      constants.DefaultConfigPath,
			"config":  constants.DefaultConfigFile,
			"fonts":   strings.Join(constants.Fonts, ", "),
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Verbose || cfg.Log.Debug,
		ConfigDir: filepath.Dir(CLI.DB),
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	var store storage.Provider
	if strings.EqualFold(filepath.Ext(CLI.DB), ".json") {
		store = jsonstore.NewStore(CLI.DB)
	} else {
		store = sqlite.NewStore(CLI.DB)
	}

	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ConfigFile: CLI.Config,
	}

	// Load the store before running the command (Init command will handle its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "db", CLI.DB)
	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	errors.Fatal(err)
}
