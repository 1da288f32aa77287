package clicmds

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/locatork/locatork"
)

// Absent is printed for attributes the element does not have
const Absent = "<absent>"

// QueryFlags for the query command
func QueryFlags() []cli.Flag {
	return append(engineFlags(),
		&cli.StringFlag{
			Name:     "selector",
			Aliases:  []string{"s"},
			Usage:    "css selector to locate",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "print the text of every match",
		},
		&cli.IntFlag{
			Name:  "nth",
			Usage: "1-based match to print, using :nth-child",
		},
		&cli.StringFlag{
			Name:  "attr",
			Usage: "print this attribute instead of the text",
		},
	)
}

// Query a page with a single selector and print what it locates
func Query(ctx *cli.Context) error {
	if ctx.Bool("all") && ctx.IsSet("nth") {
		return errors.New("--all and --nth can not be combined")
	}

	src := sourceFromFlags(ctx)
	qctx := log.Logger.WithContext(ctx.Context)
	doc, release, err := src.open(qctx)
	if err != nil {
		return err
	}
	defer release()

	e := locatork.Expectation{
		Selector:  ctx.String("selector"),
		All:       ctx.Bool("all"),
		Attribute: ctx.String("attr"),
	}
	if ctx.IsSet("nth") {
		e.Nth = locatork.NthOf(ctx.Int("nth"))
	}
	values, err := e.Values(qctx, locatork.New(doc, nil))
	if err != nil {
		return err
	}

	if values == nil {
		fmt.Fprintln(ctx.App.Writer, Absent)
		return nil
	}
	for _, v := range values {
		fmt.Fprintln(ctx.App.Writer, v)
	}
	return nil
}
