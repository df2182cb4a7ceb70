package scene

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestList(t *testing.T) {
	infos := List()
	expected := []string{"cornell", "perlin", "random", "simple-light", "single", "static", "textured"}

	if len(infos) != len(expected) {
		t.Fatalf("Expected %d scenes, got %d", len(expected), len(infos))
	}
	for i, name := range expected {
		if infos[i].Name != name {
			t.Errorf("Expected scene %d to be %q, got %q", i, name, infos[i].Name)
		}
		if infos[i].Description == "" {
			t.Errorf("Expected a description for %q", name)
		}
	}
}

func TestCreate_AllScenes(t *testing.T) {
	for _, info := range List() {
		t.Run(info.Name, func(t *testing.T) {
			s, err := Create(info.Name, Options{Seed: 42})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Name != info.Name {
				t.Errorf("Expected name %q, got %q", info.Name, s.Name)
			}
			if s.BVH == nil {
				t.Fatal("Expected BVH to be built")
			}
			if leaves := s.BVH.Stats().Leaves; leaves != len(s.Shapes) {
				t.Errorf("Expected %d leaves, got %d", len(s.Shapes), leaves)
			}
			if s.GetCamera() == nil {
				t.Error("Expected a camera")
			}
		})
	}
}

func TestCreate_UnknownScene(t *testing.T) {
	if _, err := Create("nope", Options{}); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestCreate_TexturedMissingFile(t *testing.T) {
	_, err := Create("textured", Options{TexturePath: filepath.Join(t.TempDir(), "missing.png")})
	if err == nil {
		t.Error("Expected error for a missing texture file")
	}
}

func TestCreate_Overrides(t *testing.T) {
	aperture := 0.25
	s, err := Create("static", Options{AspectRatio: 1.5, Aperture: &aperture})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	config := s.GetCamera().Config()
	if config.AspectRatio != 1.5 || config.Aperture != 0.25 {
		t.Errorf("Expected aspect 1.5 and aperture 0.25, got %f and %f", config.AspectRatio, config.Aperture)
	}
}

func TestStaticScene(t *testing.T) {
	s, _ := Create("static", Options{})
	if len(s.Shapes) != 5 {
		t.Fatalf("Expected 5 spheres, got %d", len(s.Shapes))
	}
	shell, ok := s.Shapes[4].(*geometry.Sphere)
	if !ok || shell.Radius >= 0 {
		t.Errorf("Expected a hollow glass shell with negative radius, got %+v", s.Shapes[4])
	}
	if _, ok := shell.Material.(*material.Dielectric); !ok {
		t.Errorf("Expected the shell to be glass, got %T", shell.Material)
	}
}

func TestRandomScene_Deterministic(t *testing.T) {
	a, _ := Create("random", Options{Seed: 7})
	b, _ := Create("random", Options{Seed: 7})

	if len(a.Shapes) != len(b.Shapes) {
		t.Fatalf("Expected equal shape counts, got %d and %d", len(a.Shapes), len(b.Shapes))
	}
	if a.TimeEnd != 1 {
		t.Errorf("Expected a shutter interval ending at 1, got %f", a.TimeEnd)
	}

	moving := 0
	for i := range a.Shapes {
		if sa, ok := a.Shapes[i].(*geometry.MovingSphere); ok {
			moving++
			sb := b.Shapes[i].(*geometry.MovingSphere)
			if sa.Center0 != sb.Center0 || sa.Center1 != sb.Center1 {
				t.Fatalf("Expected identical moving sphere %d", i)
			}
		}
	}
	if moving == 0 {
		t.Error("Expected some moving spheres")
	}
}

func TestBackgrounds(t *testing.T) {
	sky := NewSkyGradient()
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"up", core.NewVec3(0, 5, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"down", core.NewVec3(0, -2, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}
	for _, tt := range tests {
		got := sky.Color(core.NewRay(core.Vec3{}, tt.direction))
		if got.Subtract(tt.expected).Length() > 1e-12 {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.expected, got)
		}
	}

	solid := &SolidBackground{Value: core.NewVec3(0.1, 0.2, 0.3)}
	if got := solid.Color(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); got != solid.Value {
		t.Errorf("Expected %v, got %v", solid.Value, got)
	}
}

func TestScene_Defaults(t *testing.T) {
	s := &Scene{}
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
	if _, ok := s.Hit(ray, 0.001, math.Inf(1)); ok {
		t.Error("Expected no hit before preprocessing")
	}
	if got := s.Background(ray); got != (core.Vec3{}) {
		t.Errorf("Expected black without a sky, got %v", got)
	}
}

func TestScene_Preprocess(t *testing.T) {
	s := &Scene{Shapes: []geometry.Shape{geometry.NewSphere(core.Vec3{}, 1, nil)}}
	if err := s.Preprocess(rand.New(rand.NewSource(1))); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.GetPrimitiveCount() != 1 {
		t.Errorf("Expected 1 primitive, got %d", s.GetPrimitiveCount())
	}
}

func TestLitScenesHaveBlackBackground(t *testing.T) {
	for _, name := range []string{"cornell", "simple-light"} {
		s, _ := Create(name, Options{})
		if got := s.Background(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0))); got != (core.Vec3{}) {
			t.Errorf("%s: expected black background, got %v", name, got)
		}
	}
}

func TestCornell_CenterRayHitsBackWall(t *testing.T) {
	s, _ := Create("cornell", Options{})
	ray := s.GetCamera().GetRay(rand.New(rand.NewSource(1)), 0.5, 0.5)

	hit, ok := s.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected the center ray to hit the box")
	}
	if hit.T <= 0 {
		t.Errorf("Expected positive t, got %f", hit.T)
	}
}

func TestSingleScene_EndToEnd(t *testing.T) {
	width, height := 32, 16
	s, err := Create("single", Options{Seed: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	config := renderer.Config{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 1,
		MaxDepth:        50,
		TileSize:        8,
		NumWorkers:      3,
		Seed:            99,
	}

	first, _, err := renderer.NewRaytracer(s, config).Render()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, _, err := renderer.NewRaytracer(s, config).Render()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("Expected identical output across runs")
	}

	center := first.At(width/2, height/2)
	if center[0] <= center[2] {
		t.Errorf("Expected the center pixel to show the red sphere, got %v", center)
	}

	// Replay the first sample of tile 0, which is pixel (0,0)
	random := rand.New(rand.NewSource(config.Seed))
	u := random.Float64() / float64(width)
	v := (float64(height-1) + random.Float64()) / float64(height)
	ray := s.GetCamera().GetRay(random, u, v)
	if got, want := first.At(0, 0), renderer.ToRGB8(s.Background(ray)); got != want {
		t.Errorf("Expected corner pixel %v to equal the background %v", got, want)
	}
}
