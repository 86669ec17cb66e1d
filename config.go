package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ttycat/thermaltyper/escpos"
)

const defaultConfigFile = "config.toml"

type printerConfig struct {
	// Device is a character device path (/dev/usb/lp0) or a
	// host:port address for a network printer.
	Device            string `toml:"device"`
	CharsPerLine      int    `toml:"chars_per_line"`
	MaxDots           int    `toml:"max_dots"`
	CellWidth         int    `toml:"cell_width"`
	CellHeight        int    `toml:"cell_height"`
	CodePage          int    `toml:"codepage"`
	MarginUnits       int    `toml:"margin_units"`
	BottomMarginLines int    `toml:"bottom_margin_lines"`
	ReconnectSeconds  int    `toml:"reconnect_interval"`
	Substitute        string `toml:"substitute"`
	// ArtFence is the marker line that opens and closes an ASCII
	// art block in raw input.
	ArtFence string `toml:"art_fence"`
}

type webConfig struct {
	Enabled bool   `toml:"enabled"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
}

type cliConfig struct {
	LiveMode bool `toml:"live_mode"`
}

type shortcutsConfig struct {
	// Files lists extra YAML shortcut registries merged over the
	// built-ins.
	Files []string `toml:"files"`
}

type config struct {
	Printer   printerConfig   `toml:"printer"`
	Web       webConfig       `toml:"web"`
	CLI       cliConfig       `toml:"cli"`
	Shortcuts shortcutsConfig `toml:"shortcuts"`
}

func defaultsConfig() *config {
	return &config{
		Printer: printerConfig{
			Device:            "/dev/usb/lp0",
			CharsPerLine:      37,
			MaxDots:           512,
			CellWidth:         escpos.DefaultCellWidth,
			CellHeight:        escpos.DefaultCellHeight,
			MarginUnits:       60,
			BottomMarginLines: 4,
			ReconnectSeconds:  3,
			Substitute:        "?",
			ArtFence:          "%%",
		},
		Web: webConfig{
			Enabled: true,
			Host:    "0.0.0.0",
			Port:    5000,
		},
		CLI: cliConfig{
			LiveMode: true,
		},
	}
}

func loadConfig(path string) (*config, error) {
	cfg := defaultsConfig()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && path == defaultConfigFile {
			// Running without a config file is fine, defaults
			// target a TM-T88 on USB.
			return cfg, nil
		}
		return nil, fmt.Errorf("config file %s is not readable: %v", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %v", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) validate() error {
	if c.Printer.CharsPerLine <= 0 {
		return fmt.Errorf("chars_per_line must be > 0, got %d", c.Printer.CharsPerLine)
	}
	if c.Printer.MaxDots <= 0 {
		return fmt.Errorf("max_dots must be > 0, got %d", c.Printer.MaxDots)
	}
	if c.Printer.CodePage < 0 || c.Printer.CodePage > 255 {
		return fmt.Errorf("codepage must be a byte value, got %d", c.Printer.CodePage)
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web port %d out of range", c.Web.Port)
	}
	return nil
}

func (c *config) escposConfig() escpos.Config {
	return escpos.Config{
		Columns:    c.Printer.CharsPerLine,
		MaxDots:    c.Printer.MaxDots,
		CellWidth:  c.Printer.CellWidth,
		CellHeight: c.Printer.CellHeight,
		CodePage:   byte(c.Printer.CodePage),
	}
}

func (c *config) reconnectInterval() time.Duration {
	return time.Duration(c.Printer.ReconnectSeconds) * time.Second
}

func (c *config) substituteRune() rune {
	for _, r := range c.Printer.Substitute {
		return r
	}
	return '?'
}
