package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// handleRender renders a frame synchronously and returns the encoded image
func (s *Server) handleRender(c echo.Context) error {
	cfg, err := s.sceneRequest(c)
	if err != nil {
		return badRequest(c, err)
	}
	if cfg.AntialiasIterations, err = parseIntParam(c, "spp", cfg.AntialiasIterations, 1, maxSamples); err != nil {
		return badRequest(c, err)
	}
	if cfg.MaxDepth, err = parseIntParam(c, "depth", cfg.MaxDepth, 1, maxDepth); err != nil {
		return badRequest(c, err)
	}

	format := output.PNG
	if name := c.QueryParam("format"); name != "" {
		if format, err = output.ParseFormat(name); err != nil {
			return badRequest(c, err)
		}
	}

	if cfg.ScreenWidth*cfg.ScreenHeight > 800*600 && cfg.AntialiasIterations > 100 {
		logger.Warningf("large render requested: %dx%d at %d spp", cfg.ScreenWidth, cfg.ScreenHeight, cfg.AntialiasIterations)
	}

	sc, err := scene.Create(cfg.SceneName(), cfg.SceneOptions())
	if errors.Is(err, scene.ErrUnknownScene) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return badRequest(c, err)
	}

	fb, stats, err := renderer.NewRaytracer(sc, cfg.RenderConfig()).Render()
	if err != nil {
		return badRequest(c, err)
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, fb, format); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	header := c.Response().Header()
	header.Set("X-Render-Time-Ms", fmt.Sprintf("%d", stats.Duration.Milliseconds()))
	header.Set("X-Render-Samples", fmt.Sprintf("%d", stats.TotalSamples))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
