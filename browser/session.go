package browser

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
)

// Session is a tab taken from a pool and navigated to a page. Close returns
// the browser to the pool.
type Session struct {
	*Tab
	pool    *GCDBrowserPool
	browser *gcd.Gcd
}

// OpenSession takes a browser from pool, opens a tab and navigates it to url
func OpenSession(ctx context.Context, pool *GCDBrowserPool, url string, timeout time.Duration) (*Session, error) {
	browser, err := pool.Take(ctx)
	if err != nil {
		return nil, err
	}

	tab, err := NewTab(ctx, browser)
	if err != nil {
		pool.Return(ctx, browser)
		return nil, err
	}
	if timeout > 0 {
		tab.SetNavigationTimeout(timeout)
	}

	s := &Session{Tab: tab, pool: pool, browser: browser}
	if err := tab.Navigate(ctx, url); err != nil {
		s.Close(ctx)
		return nil, err
	}
	return s, nil
}

// Close the tab and return the browser
func (s *Session) Close(ctx context.Context) {
	if err := s.Tab.Close(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64("tab", s.ID()).Msg("failed to close tab")
	}
	s.pool.Return(ctx, s.browser)
}
