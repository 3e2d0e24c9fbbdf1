package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/smart-lamp/internal/layout"
	"github.com/coreman2200/smart-lamp/internal/sequence"
)

type SPI struct {
	Port string `yaml:"port"` // spireg name, "" picks the first port
}

type Preview struct {
	Addr string `yaml:"addr"` // e.g. ":8080"; empty disables the server
}

type Config struct {
	Driver     string `yaml:"driver"` // "spi" | "console" | "sim"
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Brightness int    `yaml:"brightness"` // 0..255
	TickMS     int    `yaml:"tick_ms"`
	// SwitchEvery is the number of ticks per effect; negative holds.
	SwitchEvery int `yaml:"switch_every"`
	// QuirkColumn is the odd column wired like the even ones; -1 for none.
	QuirkColumn *int  `yaml:"quirk_column,omitempty"`
	Seed        int64 `yaml:"seed,omitempty"`

	SPI     SPI     `yaml:"spi,omitempty"`
	Preview Preview `yaml:"preview,omitempty"`
}

// Default mirrors the lamp firmware: 8x10 panel, brightness 64, 75ms ticks,
// a new effect every 100 ticks.
func Default() *Config {
	q := layout.DefaultQuirkColumn
	return &Config{
		Driver:      "sim",
		Width:       8,
		Height:      10,
		Brightness:  64,
		TickMS:      75,
		SwitchEvery: sequence.DefaultEvery,
		QuirkColumn: &q,
	}
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid panel size %dx%d", c.Width, c.Height)
	}
	if c.Brightness < 0 || c.Brightness > 255 {
		return fmt.Errorf("brightness %d out of range 0..255", c.Brightness)
	}
	if c.TickMS <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMS)
	}
	switch c.Driver {
	case "spi", "console", "sim":
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	return nil
}

// Layout returns the panel wiring described by the config.
func (c *Config) Layout() layout.Serpentine {
	l := layout.New(c.Width, c.Height)
	if c.QuirkColumn != nil {
		l.QuirkColumn = *c.QuirkColumn
	}
	return l
}

// Load reads a yaml file over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
