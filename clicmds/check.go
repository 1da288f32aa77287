package clicmds

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/locatork/locatork"
	"gitlab.com/locatork/report"
	"gitlab.com/locatork/store"
	"gitlab.com/locatork/tutorial"
)

// CheckFlags for the check command
func CheckFlags() []cli.Flag {
	return append(engineFlags(),
		&cli.StringFlag{
			Name:  "config",
			Usage: "toml config with fields and expectations, the tutorial answer key if empty",
		},
		&cli.StringFlag{
			Name:  "datadir",
			Usage: "record the run in this data directory",
		},
	)
}

// tutorialConfig checks the answer key against the bundled tutorial page
func tutorialConfig(ctx *cli.Context) *locatork.Config {
	return &locatork.Config{
		Name:     "tutorial",
		URL:      ctx.String("url"),
		File:     ctx.String("file"),
		Engine:   locatork.Engine(ctx.String("engine")),
		Headless: ctx.Bool("headless"),
		Timeout:  ctx.Int("timeout"),
		Fields:   tutorial.Fields(),
		Expect:   tutorial.Expectations(),
	}
}

func loadCheckConfig(ctx *cli.Context) (*locatork.Config, error) {
	if ctx.String("config") == "" {
		return tutorialConfig(ctx), nil
	}

	cfg, err := locatork.LoadConfig(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	// flags win over the config when given
	if ctx.IsSet("url") {
		cfg.URL = ctx.String("url")
	}
	if ctx.IsSet("file") {
		cfg.File = ctx.String("file")
	}
	if ctx.IsSet("engine") {
		cfg.Engine = locatork.Engine(ctx.String("engine"))
	}
	if ctx.IsSet("headless") {
		cfg.Headless = ctx.Bool("headless")
	}
	if ctx.IsSet("timeout") {
		cfg.Timeout = ctx.Int("timeout")
	}
	if ctx.IsSet("datadir") {
		cfg.DataPath = ctx.String("datadir")
	}
	return cfg, nil
}

// Check runs the expectations of a config against its page
func Check(ctx *cli.Context) error {
	cfg, err := loadCheckConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.DataPath == "" {
		cfg.DataPath = ctx.String("datadir")
	}

	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}

	cctx := log.Logger.WithContext(ctx.Context)
	var doc locatork.Document
	release := func() {}
	if cfg.Name == "tutorial" && cfg.URL == "" && cfg.File == "" {
		doc, err = tutorial.Document()
	} else {
		src := &source{URL: cfg.URL, File: cfg.File, Engine: cfg.Engine, Headless: cfg.Headless, Timeout: cfg.NavigationTimeout()}
		doc, release, err = src.open(cctx)
	}
	if err != nil {
		return err
	}
	defer release()

	run := locatork.NewRun(cfg.Name, cfg.URL, cfg.Engine)
	if run.URL == "" {
		run.URL = cfg.File
	}
	run.Execute(cctx, locatork.New(doc, bindings), cfg.Expect)

	report.PrintResults(ctx.App.Writer, run, "")

	if cfg.DataPath != "" {
		if err := recordRun(cfg.DataPath, run); err != nil {
			return err
		}
	}

	log.Info().Str("run", run.IDString()).Int("checks", len(run.Results)).Int("failed", run.Failed()).Msg("check complete")
	if !run.Passed() {
		return cli.Exit(fmt.Sprintf("%d of %d checks failed", run.Failed(), len(run.Results)), 1)
	}
	return nil
}

func recordRun(dataPath string, run *locatork.Run) error {
	runs := store.NewRunStore(dataPath)
	if err := runs.Init(); err != nil {
		log.Error().Err(err).Msg("failed to init run store")
		return err
	}
	defer runs.Close()
	return runs.AddRun(run)
}
