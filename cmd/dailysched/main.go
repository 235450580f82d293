package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/northpower/dailysched/internal/backup"
	"github.com/northpower/dailysched/internal/cli"
	"github.com/northpower/dailysched/internal/config"
	"github.com/northpower/dailysched/internal/constants"
	"github.com/northpower/dailysched/internal/errors"
	"github.com/northpower/dailysched/internal/logger"
	"github.com/northpower/dailysched/internal/storage"
	"github.com/northpower/dailysched/internal/validation"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path. Defaults to dailysched.yaml in ~/.config/dailysched or the working directory." type:"path"`
	Data    string `help:"Schedules data file. Overrides data_file from the config." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Add      cli.AddCmd      `cmd:"" help:"Validate and save a schedule."`
	Get      cli.GetCmd      `cmd:"" help:"Show one schedule."`
	List     cli.ListCmd     `cmd:"" help:"List schedules."`
	Table    cli.TableCmd    `cmd:"" help:"Show one row per booked resource for a day."`
	Calendar cli.CalendarCmd `cmd:"" help:"Show a month with schedule counts per day."`
	Day      cli.DayCmd      `cmd:"" help:"Show every schedule on a day."`
	Export   cli.ExportCmd   `cmd:"" help:"Write all schedules to a JSON file."`
	Import   cli.ImportCmd   `cmd:"" help:"Merge schedules from a JSON file."`
	Report   cli.ReportCmd   `cmd:"" help:"Write XLSX or iCalendar reports."`
	Options  cli.OptionsCmd  `cmd:"" help:"Print the option catalog."`
	Snapshot cli.SnapshotCmd `cmd:"" help:"List or restore snapshots of the data file."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description(constants.AppTitle+": daily work-order scheduling"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"export_file": constants.DefaultExportFile,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Data != "" {
		cfg.DataFile = CLI.Data
	}
	if CLI.Debug {
		cfg.Log.Debug = true
	}

	if err := logger.Init(logger.Config{
		Debug: cfg.Log.Debug,
		Dir:   config.ExpandPath(cfg.Log.Dir),
		Quiet: ctx.Command() == "tui",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	cat, err := cfg.Catalog()
	if err != nil {
		errors.Fatal(err)
	}

	dataPath := config.ExpandPath(cfg.DataFile)
	store := storage.NewJSONStore(dataPath)
	// Snapshot commands work on files only and must run against a data file
	// that no longer parses.
	if !strings.HasPrefix(ctx.Command(), "snapshot") {
		if err := store.Load(); err != nil {
			errors.Fatalf("failed to load %s: %v\nRun '%s snapshot list' and '%s snapshot restore <file>' to roll back.",
				dataPath, err, constants.AppName, constants.AppName)
		}
		logger.Debug("Data file loaded", "path", dataPath, "records", store.Len())
	}

	appCtx := &cli.Context{
		Store:     store,
		Catalog:   cat,
		Validator: validation.New(cfg.Policy(), cat),
		Snapshots: backup.NewManager(dataPath, cfg.Snapshots.Keep),
	}

	errors.Fatal(ctx.Run(appCtx))
}
