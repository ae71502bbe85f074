package canopy

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Defaults holds the library-wide values typed getters fall back to when a
// node does not set the attribute itself.
type Defaults struct {
	FontSize    float64 `toml:"font_size"`
	FontFamily  string  `toml:"font_family"`
	FontStyle   string  `toml:"font_style"`
	StrokeColor string  `toml:"stroke_color"`
	StrokeWidth float64 `toml:"stroke_width"`
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		FontSize:    48,
		FontFamily:  "Helvetica",
		FontStyle:   "normal",
		StrokeColor: "black",
		StrokeWidth: 1,
	}
}

// current is read by typed getters. Set it once at startup; it is not
// synchronized.
var current = DefaultDefaults()

// CurrentDefaults returns the defaults in effect.
func CurrentDefaults() Defaults {
	return current
}

// SetDefaults replaces the defaults in effect. Zero fields keep their
// built-in value.
func SetDefaults(d Defaults) {
	current = d.withFallback(DefaultDefaults())
}

func (d Defaults) withFallback(fb Defaults) Defaults {
	if d.FontSize <= 0 {
		d.FontSize = fb.FontSize
	}
	if d.FontFamily == "" {
		d.FontFamily = fb.FontFamily
	}
	if d.FontStyle == "" {
		d.FontStyle = fb.FontStyle
	}
	if d.StrokeColor == "" {
		d.StrokeColor = fb.StrokeColor
	}
	if d.StrokeWidth <= 0 {
		d.StrokeWidth = fb.StrokeWidth
	}
	return d
}

// LoadDefaults reads defaults from a TOML file. Keys that are absent keep
// their built-in value.
//
//	font_size = 24
//	font_family = "Inter"
//	stroke_width = 2
func LoadDefaults(path string) (Defaults, error) {
	var d Defaults
	md, err := toml.DecodeFile(path, &d)
	if err != nil {
		return Defaults{}, fmt.Errorf("canopy: load defaults %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warn("ignoring unknown defaults keys", "file", path, "keys", undecoded)
	}
	d = d.withFallback(DefaultDefaults())
	if _, err := ParseColor(d.StrokeColor); err != nil {
		return Defaults{}, fmt.Errorf("canopy: load defaults %s: stroke_color: %w", path, err)
	}
	return d, nil
}
