package browser

import (
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wirepair/gcd"
)

// LocalLeaser starts chrome processes on this host
type LocalLeaser struct {
	browserLock sync.RWMutex
	browsers    map[string]*gcd.Gcd
	headless    bool
	tmp         string
}

// NewLocalLeaser of headless browsers
func NewLocalLeaser() *LocalLeaser {
	return &LocalLeaser{
		browsers: make(map[string]*gcd.Gcd),
		headless: true,
	}
}

// SetHeadless must be called before the first Acquire
func (s *LocalLeaser) SetHeadless(headless bool) {
	s.headless = headless
}

// Acquire starts a new browser, returning its debugger port
func (s *LocalLeaser) Acquire() (string, error) {
	chrome, tmp, err := FindChrome()
	if err != nil {
		return "", err
	}
	profileDir, err := randProfile(tmp)
	if err != nil {
		return "", err
	}
	port := randPort()

	b := gcd.NewChromeDebugger()
	b.DeleteProfileOnExit()
	b.AddFlags(flags(s.headless))
	if err := b.StartProcess(chrome, profileDir, port); err != nil {
		return "", errors.Wrap(err, "start "+chrome)
	}

	s.browserLock.Lock()
	s.tmp = tmp
	s.browsers[port] = b
	s.browserLock.Unlock()
	log.Debug().Str("port", port).Str("profile", profileDir).Msg("browser started")
	return port, nil
}

// Count of running browsers
func (s *LocalLeaser) Count() (string, error) {
	s.browserLock.RLock()
	count := len(s.browsers)
	s.browserLock.RUnlock()
	return strconv.Itoa(count), nil
}

// Return (exit) the browser on port
func (s *LocalLeaser) Return(port string) error {
	s.browserLock.Lock()
	defer s.browserLock.Unlock()

	if b, ok := s.browsers[port]; ok {
		delete(s.browsers, port)
		return b.ExitProcess()
	}
	return errors.New("browser on port " + port + " not found")
}

// Cleanup exits every browser this leaser started and removes their profiles
func (s *LocalLeaser) Cleanup() (string, error) {
	s.browserLock.Lock()
	for port, b := range s.browsers {
		if err := b.ExitProcess(); err != nil {
			log.Warn().Err(err).Str("port", port).Msg("failed to exit browser")
		}
		delete(s.browsers, port)
	}
	tmp := s.tmp
	s.browserLock.Unlock()

	if err := RemoveTmpContents(tmp); err != nil {
		return "", err
	}
	return "ok", nil
}
