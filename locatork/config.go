package locatork

import (
	"io"
	"os"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// Engine selects the document provider
type Engine string

// revive:exported
const (
	EngineStatic Engine = "static"
	EngineGCD    Engine = "gcd"
	EngineRod    Engine = "rod"
)

// Config for a page check
type Config struct {
	Name     string            `toml:"name"`
	URL      string            `toml:"url"`
	File     string            `toml:"file"`
	Engine   Engine            `toml:"engine"`
	DataPath string            `toml:"datadir"`
	Timeout  int               `toml:"timeout"` // seconds to wait for navigation
	Headless bool              `toml:"headless"`
	Fields   map[string]string `toml:"fields"`
	Expect   []Expectation     `toml:"expect"`
}

// DecodeConfig reads a TOML config
func DecodeConfig(r io.Reader) (*Config, error) {
	cfg := &Config{Headless: true}
	if err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	cfg.defaults()
	return cfg, nil
}

// LoadConfig from a TOML file
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeConfig(f)
}

func (c *Config) defaults() {
	if c.Engine == "" {
		c.Engine = EngineStatic
	}
	if c.Timeout <= 0 {
		c.Timeout = 30
	}
	if c.Name == "" {
		c.Name = c.URL
		if c.Name == "" {
			c.Name = c.File
		}
	}
}

// NavigationTimeout as a duration
func (c *Config) NavigationTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// Bindings built from the configured fields
func (c *Config) Bindings() (*Bindings, error) {
	return NewBindings(c.Fields)
}
