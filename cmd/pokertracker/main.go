package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Run the web dashboard"`
	Init    InitCmd          `cmd:"" help:"Create an empty hand log"`
	Log     LogCmd           `cmd:"" help:"Log a hand (interactive without flags)"`
	History HistoryCmd       `cmd:"" help:"Show logged hands"`
	Stats   StatsCmd         `cmd:"" help:"Show aggregate statistics"`
	Export  ExportCmd        `cmd:"" help:"Export hands as CSV or TOML"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokertracker"),
		kong.Description("Personal poker hand tracker backed by a CSV file"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
