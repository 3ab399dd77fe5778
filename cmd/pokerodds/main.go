package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Calc    CalcCmd          `cmd:"" default:"withargs" help:"Estimate equity for fixed hands and board"`
	Prompt  PromptCmd        `cmd:"" help:"Enter players, hands and board interactively"`
	Serve   ServeCmd         `cmd:"" help:"Serve equity requests over websocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerodds"),
		kong.Description("Texas Hold'em hand evaluator and Monte Carlo equity calculator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
