// Package server exposes rendering and scene inspection over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("server")

// Request size limits
const (
	maxDimension = 2000
	maxSamples   = 10000
	maxDepth     = 1000
)

// Server handles web requests for the path tracer
type Server struct {
	echo     *echo.Echo
	defaults config.Config
}

// New creates a server whose renders start from defaults
func New(defaults config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, defaults: defaults}
	e.Use(requestLogger)
	e.Use(corsMiddleware)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)
	return s
}

// ServeHTTP lets the server be mounted or tested as a plain http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	logger.Noticef("listening on %s", addr)
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		logger.Infof("%s %s -> %d (%s)", c.Request().Method, c.Request().URL, c.Response().Status, time.Since(start).Round(time.Microsecond))
		return err
	}
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.List())
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// parseIntParam parses an integer query parameter with validation
func parseIntParam(c echo.Context, key string, defaultValue, min, max int) (int, error) {
	value := c.QueryParam(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed < min || parsed > max {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
	}
	return parsed, nil
}

// sceneRequest reads the query parameters shared by render and inspect
// into a copy of the defaults.
func (s *Server) sceneRequest(c echo.Context) (config.Config, error) {
	cfg := s.defaults
	if name := c.QueryParam("scene"); name != "" {
		cfg.Scene = name
	}

	var err error
	if cfg.ScreenWidth, err = parseIntParam(c, "width", cfg.ScreenWidth, 1, maxDimension); err != nil {
		return cfg, err
	}
	if cfg.ScreenHeight, err = parseIntParam(c, "height", cfg.ScreenHeight, 1, maxDimension); err != nil {
		return cfg, err
	}
	if value := c.QueryParam("seed"); value != "" {
		if cfg.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return cfg, fmt.Errorf("invalid seed: %s", value)
		}
	}
	return cfg, nil
}
