package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func newTestServer() *Server {
	defaults := config.Default()
	defaults.Scene = "single"
	defaults.ScreenWidth = 20
	defaults.ScreenHeight = 10
	defaults.AntialiasIterations = 2
	defaults.MaxDepth = 3
	return New(defaults)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %q", body["status"])
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS header on responses")
	}
}

func TestScenes(t *testing.T) {
	rec := get(t, newTestServer(), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var infos []scene.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("Expected JSON body, got %v", err)
	}
	if len(infos) != len(scene.List()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.List()), len(infos))
	}
}

func TestRender_PNG(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render?width=12&height=6&spp=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Expected a PNG body, got %v", err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Errorf("Expected 12x6 image, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRender_PPM(t *testing.T) {
	rec := get(t, newTestServer(), "/api/render?format=ppm&width=4&height=2&spp=1&depth=2&seed=9")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Body.String(), "P3\n4 2\n255\n") {
		t.Errorf("Expected PPM header, got %q", rec.Body.String())
	}
	if lines := strings.Count(rec.Body.String(), "\n"); lines != 3+8 {
		t.Errorf("Expected 11 lines, got %d", lines)
	}
}

func TestRender_Deterministic(t *testing.T) {
	s := newTestServer()
	first := get(t, s, "/api/render?format=ppm&seed=5")
	second := get(t, s, "/api/render?format=ppm&seed=5")
	if first.Body.String() != second.Body.String() {
		t.Error("Expected identical renders for identical requests")
	}
}

func TestRender_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"zero width", "/api/render?width=0", http.StatusBadRequest},
		{"huge height", "/api/render?height=5000", http.StatusBadRequest},
		{"non-numeric spp", "/api/render?spp=many", http.StatusBadRequest},
		{"zero depth", "/api/render?depth=0", http.StatusBadRequest},
		{"bad seed", "/api/render?seed=abc", http.StatusBadRequest},
		{"unknown format", "/api/render?format=gif", http.StatusBadRequest},
		{"unknown scene", "/api/render?scene=nonexistent", http.StatusNotFound},
	}

	s := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	s := newTestServer()

	t.Run("centre hits the sphere", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?x=10&y=5")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Expected JSON body, got %v", err)
		}
		if !resp.Hit {
			t.Fatal("Expected the centre pixel to hit the sphere")
		}
		if resp.MaterialType != "lambertian" {
			t.Errorf("Expected lambertian, got %q", resp.MaterialType)
		}
		if resp.GeometryType != "sphere" {
			t.Errorf("Expected sphere, got %q", resp.GeometryType)
		}
		if !resp.FrontFace {
			t.Error("Expected the camera to see the outside of the sphere")
		}
		if resp.Distance < 0.4 || resp.Distance > 0.6 {
			t.Errorf("Expected distance near 0.5, got %f", resp.Distance)
		}
	})

	t.Run("corner sees the sky", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?x=0&y=0")
		var resp InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Expected JSON body, got %v", err)
		}
		if resp.Hit {
			t.Errorf("Expected a miss at the corner, got %+v", resp)
		}
	})

	t.Run("cornell centre hits the tall block", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?scene=cornell&width=40&height=40&x=20&y=20")
		var resp InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Expected JSON body, got %v", err)
		}
		if !resp.Hit {
			t.Fatal("Expected the centre ray to hit the box")
		}
		if resp.GeometryType != "box" {
			t.Errorf("Expected box, got %q", resp.GeometryType)
		}
	})

	t.Run("glass ball is reported rather than its inner shell", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?scene=static&x=5&y=5")
		var resp InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Expected JSON body, got %v", err)
		}
		if resp.MaterialType != "dielectric" || resp.GeometryType != "sphere" {
			t.Fatalf("Expected dielectric sphere, got %q %q", resp.MaterialType, resp.GeometryType)
		}
		geometry, _ := resp.Properties["geometry"].(map[string]interface{})
		if radius, _ := geometry["radius"].(float64); radius != 0.5 {
			t.Errorf("Expected the outer ball with radius 0.5, got %v", geometry["radius"])
		}
	})

	for _, target := range []string{"/api/inspect", "/api/inspect?x=20&y=0", "/api/inspect?x=1&y=-1"} {
		if rec := get(t, s, target); rec.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400 for %s, got %d", target, rec.Code)
		}
	}
}
