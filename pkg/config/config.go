// Package config loads webdoc settings from YAML files.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"webdoc/pkg/layout"
	"webdoc/pkg/resource"
	stdnet "webdoc/std/net"
)

// Config is the top-level configuration.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Network  NetworkConfig  `yaml:"network"`
	Log      LogConfig      `yaml:"log"`
}

// ViewportConfig controls page geometry and scrolling.
type ViewportConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	HStep      float64 `yaml:"hstep"`
	VStep      float64 `yaml:"vstep"`
	ScrollStep float64 `yaml:"scroll_step"`
	InputWidth float64 `yaml:"input_width"`
}

// NetworkConfig controls fetching.
type NetworkConfig struct {
	MaxRedirects int           `yaml:"max_redirects"`
	UserAgent    string        `yaml:"user_agent"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	CacheControl string        `yaml:"cache_control"` // first_directive_only | all_directives
	FilePaths    string        `yaml:"file_paths"`    // posix | windows
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// LoadFile reads a YAML configuration file. Missing fields take their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Viewport.Width <= 0 {
		c.Viewport.Width = 800
	}
	if c.Viewport.Height <= 0 {
		c.Viewport.Height = 600
	}
	if c.Viewport.HStep <= 0 {
		c.Viewport.HStep = 13
	}
	if c.Viewport.VStep <= 0 {
		c.Viewport.VStep = 18
	}
	if c.Viewport.ScrollStep <= 0 {
		c.Viewport.ScrollStep = 100
	}
	if c.Viewport.InputWidth <= 0 {
		c.Viewport.InputWidth = 200
	}
	// zero redirects is indistinguishable from unset
	if c.Network.MaxRedirects <= 0 {
		c.Network.MaxRedirects = 10
	}
	if c.Network.UserAgent == "" {
		c.Network.UserAgent = stdnet.DefaultConfig().UserAgent
	}
	if c.Network.DialTimeout <= 0 {
		c.Network.DialTimeout = 30 * time.Second
	}
	if c.Network.CacheControl == "" {
		c.Network.CacheControl = "first_directive_only"
	}
	if c.Network.FilePaths == "" {
		c.Network.FilePaths = "posix"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Layout returns the layout engine settings.
func (c *Config) Layout() layout.Config {
	return layout.Config{
		Width:      c.Viewport.Width,
		HStep:      c.Viewport.HStep,
		VStep:      c.Viewport.VStep,
		InputWidth: c.Viewport.InputWidth,
	}
}

// Tab returns the settings of a tab filling the whole viewport.
func (c *Config) Tab() resource.TabConfig {
	return resource.TabConfig{
		Layout:     c.Layout(),
		Height:     c.Viewport.Height,
		ScrollStep: c.Viewport.ScrollStep,
	}
}

// Session returns the fetch settings.
func (c *Config) Session() stdnet.Config {
	return stdnet.Config{
		MaxRedirects: c.Network.MaxRedirects,
		UserAgent:    c.Network.UserAgent,
		CacheControl: stdnet.ParseCacheControlPolicy(c.Network.CacheControl),
		DialTimeout:  c.Network.DialTimeout,
	}
}

func (c *Config) FilePathPolicy() stdnet.FilePathPolicy {
	return stdnet.ParseFilePathPolicy(c.Network.FilePaths)
}

// Logger builds a logger at the configured level. Unknown levels fall back to info.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
		log.WithField("level", c.Log.Level).Warn("unknown log level, using info")
	}
	log.SetLevel(level)
	return log
}
