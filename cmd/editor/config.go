package main

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional editor configuration loaded from editor.yaml.
// Missing file or missing fields fall back to defaults; the grid unit and
// world size are fixed by the level format and not configurable.
type Config struct {
	MaxUndo   int       `yaml:"max_undo"`
	LevelsDir string    `yaml:"levels_dir"`
	Colors    ColorsCfg `yaml:"colors"`
}

type ColorsCfg struct {
	Background string `yaml:"background"`
	GridLine   string `yaml:"grid_line"`
	Border     string `yaml:"border"`
	Platform   string `yaml:"platform"`
	Preview    string `yaml:"preview"`
	Selection  string `yaml:"selection"`
	Hover      string `yaml:"hover"`
}

func DefaultConfig() Config {
	return Config{
		MaxUndo:   100,
		LevelsDir: "levels",
		Colors: ColorsCfg{
			Background: "#000000",
			GridLine:   "#1e1e1e",
			Border:     "#ffff00",
			Platform:   "#00ff00",
			Preview:    "#3c78ff",
			Selection:  "#ffd700",
			Hover:      "#808080",
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.MaxUndo <= 0 {
		cfg.MaxUndo = DefaultConfig().MaxUndo
	}
	if cfg.LevelsDir == "" {
		cfg.LevelsDir = DefaultConfig().LevelsDir
	}
	return cfg, nil
}

// parseHexColor parses a color in the form #rrggbb. Returns opaque white if parse fails.
func parseHexColor(s string) color.RGBA {
	var r, g, b uint8 = 0xff, 0xff, 0xff
	if len(s) == 7 && s[0] == '#' {
		var ri, gi, bi uint32
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &ri, &gi, &bi); err == nil {
			r = uint8(ri)
			g = uint8(gi)
			b = uint8(bi)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// withAlpha returns the color with its alpha (and premultiplied channels)
// scaled for translucent overlays.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(uint16(v) * uint16(a) / 0xff)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}
