package cmd

import (
	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/urfave/cli"
)

// RenderFlags are shared by every command that builds a scene.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "TOML file with render settings",
	},
	cli.StringFlag{
		Name:  "scene, s",
		Usage: "world to render (see the scenes command)",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "image width",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "image height",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "depth",
		Usage: "maximum bounces per path",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "seed for world generation and sampling",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "render goroutines, 0 uses every logical core",
	},
	cli.Float64Flag{
		Name:  "aperture",
		Usage: "override the scene's lens aperture",
	},
	cli.StringFlag{
		Name:  "texture",
		Usage: "image file for the textured scene",
	},
}

// loadConfig reads the optional config file, applies any flags set on top
// and validates the result once.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Decode(path); err != nil {
			return config.Config{}, err
		}
		logger.Infof("loaded settings from %s", path)
	}

	if ctx.IsSet("scene") {
		cfg.Scene = ctx.String("scene")
	}
	if ctx.IsSet("width") {
		cfg.ScreenWidth = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.ScreenHeight = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		cfg.AntialiasIterations = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		cfg.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("workers") {
		cfg.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("aperture") {
		aperture := ctx.Float64("aperture")
		cfg.Aperture = &aperture
	}
	if ctx.IsSet("texture") {
		cfg.Texture = ctx.String("texture")
	}
	if ctx.IsSet("out") {
		cfg.OutputPath = ctx.String("out")
	}
	if ctx.IsSet("format") {
		cfg.Format = ctx.String("format")
	}

	applyLogLevel(ctx, cfg.LogLevel)
	return cfg, cfg.Validate()
}
