package cmd

import (
	"bytes"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

// RenderImage renders a still frame and writes it to disk.
func RenderImage(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if host, err := renderer.GetHostInfo(); err == nil {
		logger.Infof("host: %s", host)
	} else {
		logger.Debugf("host info unavailable: %v", err)
	}

	sc, err := scene.Create(cfg.SceneName(), cfg.SceneOptions())
	if err != nil {
		return err
	}

	logger.Noticef("rendering %q at %dx%d, %d spp", cfg.SceneName(), cfg.ScreenWidth, cfg.ScreenHeight, cfg.AntialiasIterations)
	fb, stats, err := renderer.NewRaytracer(sc, cfg.RenderConfig()).Render()
	if err != nil {
		return err
	}

	// Validate already checked the format
	format, _ := cfg.OutputFormat()
	if err := output.WriteFile(cfg.OutputPath, fb, format); err != nil {
		return err
	}
	logger.Noticef("wrote %s (%s)", cfg.OutputPath, format)

	displayRenderStats(stats)
	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("render statistics\n%s", buf.String())
}
