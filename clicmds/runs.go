package clicmds

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/locatork/report"
	"gitlab.com/locatork/store"
)

// RunsFlags for the runs command
func RunsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "datadir",
			Usage:    "data directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "page",
			Usage: "only runs of this page",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "max runs to print",
			Value: 20,
		},
		&cli.BoolFlag{
			Name:  "results",
			Usage: "print every result of each run",
		},
	}
}

// Runs prints the recorded check runs
func Runs(ctx *cli.Context) error {
	runs := store.NewRunStore(ctx.String("datadir"))
	if err := runs.Init(); err != nil {
		log.Error().Err(err).Msg("failed to init database for viewing")
		return err
	}
	defer runs.Close()

	results, err := runs.Runs(ctx.String("page"), ctx.Int("limit"))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("No runs found")
	}

	reporter := report.New()
	reporter.Details = ctx.Bool("results")
	for _, run := range results {
		reporter.Add(run)
	}
	reporter.Print(ctx.App.Writer)
	return nil
}
