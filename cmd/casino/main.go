package main

import (
	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/casino/internal/config"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	NoColor  bool             `help:"Disable colored output"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play hold'em against AI opponents"`
	Simulate SimulateCmd      `cmd:"" help:"Run autopilot sessions and report statistics"`
	Odds     OddsCmd          `cmd:"" help:"Estimate hand equity against random opponents"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("casino"),
		kong.Description("Texas hold'em against scripted AI opponents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
