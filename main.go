package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/locatork/clicmds"
)

func main() {
	app := cli.NewApp()
	app.Name = "locatork"
	app.Version = "0.1"
	app.Usage = "Locate page elements with css selectors and check what they hold"
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log every resolution",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if ctx.Bool("debug") {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		return nil
	}
	app.Commands = []*cli.Command{
		{
			Name:    "query",
			Aliases: []string{"q"},
			Usage:   "print what a selector locates",
			Action:  clicmds.Query,
			Flags:   clicmds.QueryFlags(),
		},
		{
			Name:    "check",
			Aliases: []string{"c"},
			Usage:   "check a page against expectations, the tutorial answer key by default",
			Action:  clicmds.Check,
			Flags:   clicmds.CheckFlags(),
		},
		{
			Name:   "runs",
			Usage:  "list recorded check runs",
			Action: clicmds.Runs,
			Flags:  clicmds.RunsFlags(),
		},
		{
			Name:    "serve",
			Aliases: []string{"s"},
			Usage:   "serve the tutorial site",
			Action:  clicmds.Serve,
			Flags:   clicmds.ServeFlags(),
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("locatork failed")
	}
}
