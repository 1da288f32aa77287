// Package rodpage is a locatork document provider driving Chrome through go-rod.
package rodpage

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/locatork/browser"
	"gitlab.com/locatork/locatork"
)

// Options for Launch
type Options struct {
	RemoteURL  string // connect to a running Chrome instead of launching one
	Headless   bool
	Stealth    bool          // hide automation fingerprints from the page
	NavTimeout time.Duration // default 30 seconds
}

// Browser is a connected rod browser
type Browser struct {
	b    *rod.Browser
	lnch *launcher.Launcher
	opts Options
}

// Launch or connect to a browser
func Launch(ctx context.Context, opts Options) (*Browser, error) {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 30 * time.Second
	}

	wsURL := opts.RemoteURL
	var l *launcher.Launcher
	if wsURL == "" {
		l = launcher.New().Context(ctx).Headless(opts.Headless)
		if chrome, _, err := browser.FindChrome(); err == nil {
			l = l.Bin(chrome)
		}
		if opts.Stealth {
			l = l.Set("disable-blink-features", "AutomationControlled")
		}

		u, err := l.Launch()
		if err != nil {
			return nil, errors.Wrap(err, "launch browser")
		}
		wsURL = u
		log.Ctx(ctx).Debug().Str("url", wsURL).Msg("launched local chrome")
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		if l != nil {
			l.Kill()
		}
		return nil, errors.Wrap(err, "connect browser")
	}
	return &Browser{b: b, lnch: l, opts: opts}, nil
}

// Open a page and navigate it to url, waiting for the load event
func (b *Browser) Open(ctx context.Context, url string) (*Page, error) {
	var page *rod.Page
	var err error
	if b.opts.Stealth {
		page, err = stealth.Page(b.b)
	} else {
		page, err = b.b.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, errors.Wrap(err, "create page")
	}

	navCtx, cancel := context.WithTimeout(ctx, b.opts.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(url); err != nil {
		page.Close()
		return nil, errors.Wrap(err, "navigate "+url)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		page.Close()
		return nil, errors.Wrap(err, "wait load "+url)
	}
	log.Ctx(ctx).Debug().Str("url", url).Msg("page loaded")
	return &Page{p: page}, nil
}

// Close the browser, killing it if it was launched by us
func (b *Browser) Close() error {
	err := b.b.Close()
	if b.lnch != nil {
		b.lnch.Kill()
		b.lnch.Cleanup()
	}
	return err
}

// Page implements locatork.Document over a rod page
type Page struct {
	p *rod.Page
}

// Close the page
func (p *Page) Close() error {
	return p.p.Close()
}

// HTML of the current document
func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.p.Context(ctx).HTML()
}

func (p *Page) elements(ctx context.Context, selector string) (rod.Elements, error) {
	if err := locatork.ValidateSelector(selector); err != nil {
		return nil, err
	}
	// Elements does not wait for matches to appear, unlike Element
	els, err := p.p.Context(ctx).Elements(selector)
	if err != nil {
		return nil, errors.Wrap(err, "query "+selector)
	}
	return els, nil
}

// Query the first element matching selector
func (p *Page) Query(ctx context.Context, selector string) (locatork.Node, bool, error) {
	els, err := p.elements(ctx, selector)
	if err != nil {
		return nil, false, err
	}
	if len(els) == 0 {
		return nil, false, nil
	}
	return &Node{el: els[0]}, true, nil
}

// QueryAll elements matching selector in document order
func (p *Page) QueryAll(ctx context.Context, selector string) ([]locatork.Node, error) {
	els, err := p.elements(ctx, selector)
	if err != nil {
		return nil, err
	}
	nodes := make([]locatork.Node, len(els))
	for i, el := range els {
		nodes[i] = &Node{el: el}
	}
	return nodes, nil
}

// Node is a rod element
type Node struct {
	el *rod.Element
}

// Text the element displays
func (n *Node) Text() (string, error) {
	return n.el.Text()
}

// Attribute value, a nil result from the page means the attribute is absent
func (n *Node) Attribute(name string) (string, bool, error) {
	val, err := n.el.Attribute(name)
	if err != nil {
		return "", false, err
	}
	if val == nil {
		return "", false, nil
	}
	return *val, true, nil
}
