// Package config loads render settings from TOML files.
package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("config")

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds render settings. Keys missing from a file keep their defaults.
type Config struct {
	OutputPath          string   `toml:"output_path"`
	ScreenWidth         int      `toml:"screen_width"`
	ScreenHeight        int      `toml:"screen_height"`
	AntialiasIterations int      `toml:"antialias_iterations"`
	DynamicWorld        bool     `toml:"dynamic_world"`
	MaxDepth            int      `toml:"max_depth"`
	Seed                int64    `toml:"seed"`
	Workers             int      `toml:"workers"`
	TileSize            int      `toml:"tile_size"`
	Scene               string   `toml:"scene"`
	Format              string   `toml:"format"`
	Aperture            *float64 `toml:"aperture"`
	Texture             string   `toml:"texture"`
	LogLevel            string   `toml:"log_level"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		OutputPath:          "output.ppm",
		ScreenWidth:         200,
		ScreenHeight:        100,
		AntialiasIterations: 100,
		MaxDepth:            50,
		Seed:                42,
		TileSize:            32,
	}
}

// Load reads path on top of the defaults and validates the result
func Load(path string) (Config, error) {
	cfg, err := Decode(path)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Decode reads path on top of the defaults without validating, so callers
// can apply overrides first.
func Decode(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	warnUndecoded(md)
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults and validates the result
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	warnUndecoded(md)
	return cfg, cfg.Validate()
}

func warnUndecoded(md toml.MetaData) {
	for _, key := range md.Undecoded() {
		logger.Warningf("ignoring unknown config key %q", key.String())
	}
}

// Validate rejects settings that cannot produce an image
func (c Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalid, c.ScreenWidth, c.ScreenHeight)
	case c.AntialiasIterations <= 0:
		return fmt.Errorf("%w: antialias_iterations %d", ErrInvalid, c.AntialiasIterations)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max_depth %d", ErrInvalid, c.MaxDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	case c.Aperture != nil && *c.Aperture < 0:
		return fmt.Errorf("%w: aperture %f", ErrInvalid, *c.Aperture)
	}

	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// SceneName returns the configured world. Without an explicit scene,
// dynamic_world picks the random world over the static one.
func (c Config) SceneName() string {
	if c.Scene != "" {
		return c.Scene
	}
	if c.DynamicWorld {
		return "random"
	}
	return "static"
}

// OutputFormat returns the explicit format, or the one implied by OutputPath
func (c Config) OutputFormat() (output.Format, error) {
	if c.Format != "" {
		return output.ParseFormat(c.Format)
	}
	return output.FormatFromPath(c.OutputPath)
}

// RenderConfig converts the settings for the renderer
func (c Config) RenderConfig() renderer.Config {
	return renderer.Config{
		Width:           c.ScreenWidth,
		Height:          c.ScreenHeight,
		SamplesPerPixel: c.AntialiasIterations,
		MaxDepth:        c.MaxDepth,
		TileSize:        c.TileSize,
		NumWorkers:      c.Workers,
		Seed:            c.Seed,
	}
}

// SceneOptions converts the settings for scene construction
func (c Config) SceneOptions() scene.Options {
	return scene.Options{
		AspectRatio: float64(c.ScreenWidth) / float64(c.ScreenHeight),
		Aperture:    c.Aperture,
		Seed:        c.Seed,
		TexturePath: c.Texture,
	}
}
