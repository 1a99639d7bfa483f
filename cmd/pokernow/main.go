package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/lox/pokernow/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Debug   bool             `short:"d" help:"Enable debug logging"`
	Config  string           `short:"c" default:"pokernow.hcl" help:"Path to HCL config file"`

	Analyze  AnalyzeCmd  `cmd:"" help:"Analyze a single PokerNow session log"`
	Batch    BatchCmd    `cmd:"" help:"Analyze every session log in a directory"`
	Report   ReportCmd   `cmd:"" help:"Render frequency tables for session logs"`
	Mappings MappingsCmd `cmd:"" help:"Manage player name mappings"`
}

// runContext carries the logger and loaded configuration into subcommands.
type runContext struct {
	logger zerolog.Logger
	cfg    *config.Config
}

func setupLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokernow"),
		kong.Description("Analyze PokerNow session logs: hand extraction, action tagging and reports"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	logger := setupLogger(cli.Debug)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		ctx.FatalIfErrorf(err)
	}
	if err := cfg.Validate(); err != nil {
		ctx.FatalIfErrorf(err)
	}

	err = ctx.Run(&runContext{logger: logger, cfg: cfg})
	ctx.FatalIfErrorf(err)
}
