package clicmds

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/locatork/browser"
	"gitlab.com/locatork/browser/rodpage"
	"gitlab.com/locatork/document/static"
	"gitlab.com/locatork/locatork"
)

// source of the page to query
type source struct {
	URL      string
	File     string
	Engine   locatork.Engine
	Headless bool
	Timeout  time.Duration
}

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "url of the page",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "html file of the page, re-read on every query",
		},
		&cli.StringFlag{
			Name:  "engine",
			Usage: "document engine: static, gcd or rod",
			Value: string(locatork.EngineStatic),
		},
		&cli.BoolFlag{
			Name:  "headless",
			Usage: "run browser engines headless",
			Value: true,
		},
		&cli.IntFlag{
			Name:  "timeout",
			Usage: "seconds to wait for the page to load",
			Value: 30,
		},
	}
}

func sourceFromFlags(ctx *cli.Context) *source {
	return &source{
		URL:      ctx.String("url"),
		File:     ctx.String("file"),
		Engine:   locatork.Engine(ctx.String("engine")),
		Headless: ctx.Bool("headless"),
		Timeout:  time.Duration(ctx.Int("timeout")) * time.Second,
	}
}

func (s *source) location() (string, error) {
	if s.URL != "" {
		return s.URL, nil
	}
	if s.File == "" {
		return "", errors.New("one of --url or --file is required")
	}
	abs, err := filepath.Abs(s.File)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// open the document, the returned func releases it
func (s *source) open(ctx context.Context) (locatork.Document, func(), error) {
	switch s.Engine {
	case locatork.EngineStatic, "":
		if s.URL != "" {
			return static.Fetch(s.URL, nil), func() {}, nil
		}
		if s.File == "" {
			return nil, nil, errors.New("one of --url or --file is required")
		}
		doc, err := static.Open(s.File)
		return doc, func() {}, err
	case locatork.EngineGCD:
		return s.openGCD(ctx)
	case locatork.EngineRod:
		return s.openRod(ctx)
	}
	return nil, nil, errors.Errorf("unknown engine %q", s.Engine)
}

func (s *source) openGCD(ctx context.Context) (locatork.Document, func(), error) {
	url, err := s.location()
	if err != nil {
		return nil, nil, err
	}

	leaser := browser.NewLocalLeaser()
	leaser.SetHeadless(s.Headless)
	pool := browser.NewGCDBrowserPool(1, leaser)
	if err := pool.Init(); err != nil {
		return nil, nil, err
	}

	session, err := browser.OpenSession(ctx, pool, url, s.Timeout)
	if err != nil {
		pool.Close(ctx)
		return nil, nil, err
	}
	return session, func() {
		session.Close(ctx)
		pool.Close(ctx)
	}, nil
}

func (s *source) openRod(ctx context.Context) (locatork.Document, func(), error) {
	url, err := s.location()
	if err != nil {
		return nil, nil, err
	}

	b, err := rodpage.Launch(ctx, rodpage.Options{Headless: s.Headless, Stealth: true, NavTimeout: s.Timeout})
	if err != nil {
		return nil, nil, err
	}
	page, err := b.Open(ctx, url)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	return page, func() {
		page.Close()
		b.Close()
	}, nil
}
