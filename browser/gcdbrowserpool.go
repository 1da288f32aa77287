package browser

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
)

var startupFlags = []string{
	"--enable-automation",
	"--test-type",
	"--disable-client-side-phishing-detection",
	"--disable-component-update",
	"--disable-infobars",
	"--disable-ntp-popular-sites",
	"--disable-domain-reliability",
	"--disable-background-networking",
	"--disable-sync",
	"--disable-new-browser-first-run",
	"--disable-default-apps",
	"--disable-popup-blocking",
	"--disable-extensions",
	"--disable-features=TranslateUI",
	"--disable-gpu",
	"--disable-dev-shm-usage",
	"--no-sandbox",
	"--no-first-run",
	"--window-size=1024,768",
	"--safebrowsing-disable-auto-update",
	"--password-store=basic",
}

func flags(headless bool) []string {
	f := make([]string, 0, len(startupFlags)+2)
	f = append(f, startupFlags...)
	if headless {
		f = append(f, "--headless")
	}
	return append(f, "about:blank")
}

// GCDBrowserPool keeps maxBrowsers connected debuggers ready to be taken
type GCDBrowserPool struct {
	maxBrowsers      int
	acquiredBrowsers int32
	acquireErrors    int32
	browsers         chan *gcd.Gcd
	browserTimeout   time.Duration
	closing          int32
	leaser           LeaserService
}

// NewGCDBrowserPool backed by leaser
func NewGCDBrowserPool(maxBrowsers int, leaser LeaserService) *GCDBrowserPool {
	if maxBrowsers < 1 {
		maxBrowsers = 1
	}
	return &GCDBrowserPool{
		maxBrowsers:    maxBrowsers,
		browserTimeout: time.Second * 45,
		leaser:         leaser,
		browsers:       make(chan *gcd.Gcd, maxBrowsers),
	}
}

// SetAPITimeout tells gcd how long to wait for a response from the browser for all API calls
func (b *GCDBrowserPool) SetAPITimeout(duration time.Duration) {
	b.browserTimeout = duration
}

// Init starts the browsers
func (b *GCDBrowserPool) Init() error {
	if _, err := b.leaser.Cleanup(); err != nil {
		return err
	}

	log.Info().Int("browsers", b.maxBrowsers).Msg("creating browsers")
	started := 0
	for i := 0; i < b.maxBrowsers; i++ {
		browser, err := b.createBrowser()
		if err != nil {
			log.Warn().Err(err).Int("i", i).Msg("unable to create browser")
			continue
		}
		b.browsers <- browser
		started++
	}
	if started == 0 {
		return errors.New("no browsers could be started")
	}
	return nil
}

func (b *GCDBrowserPool) createBrowser() (*gcd.Gcd, error) {
	port, err := b.leaser.Acquire()
	if err != nil {
		return nil, err
	}

	browser := gcd.NewChromeDebugger()
	browser.SetTimeout(b.browserTimeout)
	if err := browser.ConnectToInstance("localhost", port); err != nil {
		b.leaser.Return(port)
		return nil, errors.Wrap(err, "connect to browser on "+port)
	}
	return browser, nil
}

// Acquire a browser, unless ctx expires first
func (b *GCDBrowserPool) Acquire(ctx context.Context) *gcd.Gcd {
	select {
	case browser := <-b.browsers:
		if browser != nil {
			atomic.AddInt32(&b.acquiredBrowsers, 1)
		}
		return browser
	case <-ctx.Done():
		log.Ctx(ctx).Warn().Err(ctx.Err()).Msg("failed to acquire browser from pool")
		atomic.AddInt32(&b.acquireErrors, 1)
		return nil
	}
}

// Take a browser, user is responsible for closing tabs they opened.
func (b *GCDBrowserPool) Take(ctx context.Context) (*gcd.Gcd, error) {
	if atomic.LoadInt32(&b.closing) == 1 {
		return nil, ErrBrowserClosing
	}

	browser := b.Acquire(ctx)
	if browser == nil {
		return nil, errors.New("browser acquisition failed during Take")
	}
	log.Ctx(ctx).Debug().Int32("acquired", atomic.LoadInt32(&b.acquiredBrowsers)).Int32("errors", atomic.LoadInt32(&b.acquireErrors)).Msg("acquired browser")
	return browser, nil
}

// Return a browser to the pool. It is kept alive for the next Take.
func (b *GCDBrowserPool) Return(ctx context.Context, browser *gcd.Gcd) {
	if browser == nil {
		return
	}
	atomic.AddInt32(&b.acquiredBrowsers, -1)

	if atomic.LoadInt32(&b.closing) == 1 {
		if err := b.leaser.Return(browser.Port()); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to return browser")
		}
		return
	}
	b.browsers <- browser
}

// Close the pool, exiting every browser the leaser started
func (b *GCDBrowserPool) Close(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&b.closing, 0, 1) {
		return nil
	}

	for {
		select {
		case browser := <-b.browsers:
			if browser == nil {
				continue
			}
			if err := b.leaser.Return(browser.Port()); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("failed to return browser")
			}
		case <-ctx.Done():
			return ctx.Err()
		default:
			_, err := b.leaser.Cleanup()
			return err
		}
	}
}
