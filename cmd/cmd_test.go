package cmd

import (
	"bytes"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

func newTestApp(buf *bytes.Buffer, action func(*cli.Context) error) *cli.App {
	app := cli.NewApp()
	app.Writer = buf
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "v"},
		cli.BoolFlag{Name: "vv"},
	}
	app.Commands = []cli.Command{
		{Name: "scenes", Action: ListScenes},
		{Name: "configure", Flags: RenderFlags, Action: action},
	}
	return app
}

func TestListScenes(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf, nil)
	if err := app.Run([]string{"tracer", "scenes"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, info := range scene.List() {
		if !strings.Contains(buf.String(), info.Name) {
			t.Errorf("Expected listing to contain %q, got:\n%s", info.Name, buf.String())
		}
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracer.toml")
	content := "screen_width = 64\nscreen_height = 32\nantialias_iterations = 4\nscene = \"cornell\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var got config.Config
	var buf bytes.Buffer
	app := newTestApp(&buf, func(ctx *cli.Context) error {
		var err error
		got, err = loadConfig(ctx)
		return err
	})

	args := []string{"tracer", "configure", "--config", path, "--width", "80", "--scene", "single", "--aperture", "0"}
	if err := app.Run(args); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got.ScreenWidth != 80 {
		t.Errorf("Expected flag width 80, got %d", got.ScreenWidth)
	}
	if got.ScreenHeight != 32 || got.AntialiasIterations != 4 {
		t.Errorf("Expected file values to survive, got %dx%d spp %d", got.ScreenWidth, got.ScreenHeight, got.AntialiasIterations)
	}
	if got.SceneName() != "single" {
		t.Errorf("Expected scene single, got %q", got.SceneName())
	}
	if got.Aperture == nil || *got.Aperture != 0 {
		t.Errorf("Expected aperture override 0, got %v", got.Aperture)
	}
}

func TestLoadConfig_FlagFixesInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracer.toml")
	if err := os.WriteFile(path, []byte("screen_width = 0\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	run := func(args ...string) (config.Config, error) {
		var got config.Config
		var buf bytes.Buffer
		app := newTestApp(&buf, func(ctx *cli.Context) error {
			var err error
			got, err = loadConfig(ctx)
			return err
		})
		err := app.Run(append([]string{"tracer", "configure", "--config", path}, args...))
		return got, err
	}

	got, err := run("--width", "80")
	if err != nil {
		t.Fatalf("Expected --width to override the file before validation, got %v", err)
	}
	if got.ScreenWidth != 80 {
		t.Errorf("Expected width 80, got %d", got.ScreenWidth)
	}

	if _, err := run(); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid without the override, got %v", err)
	}
}

func TestLoadConfig_RejectsInvalidFlags(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf, func(ctx *cli.Context) error {
		_, err := loadConfig(ctx)
		return err
	})

	if err := app.Run([]string{"tracer", "configure", "--spp", "0"}); err == nil {
		t.Error("Expected error for zero samples per pixel")
	}
}

func TestCompareTraversal(t *testing.T) {
	for _, name := range []string{"static", "random", "cornell"} {
		t.Run(name, func(t *testing.T) {
			sc, err := scene.Create(name, scene.Options{Seed: 7})
			if err != nil {
				t.Fatalf("Failed to create scene: %v", err)
			}

			report := compareTraversal(sc, 200, rand.New(rand.NewSource(42)))
			if report.Rays != 200 {
				t.Errorf("Expected 200 rays, got %d", report.Rays)
			}
			if report.Mismatches != 0 {
				t.Errorf("Expected BVH to agree with the linear scan, got %d mismatches", report.Mismatches)
			}
			if report.Hits == 0 {
				t.Error("Expected some camera rays to hit the scene")
			}
		})
	}
}
