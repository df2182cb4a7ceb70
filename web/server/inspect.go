package server

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// InspectResponse describes the first surface seen through a pixel
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func describeTexture(tex texture.Texture) map[string]interface{} {
	switch t := tex.(type) {
	case *texture.Solid:
		return map[string]interface{}{"type": "solid", "color": vec(t.Color)}
	case *texture.Checker:
		return map[string]interface{}{
			"type":  "checker",
			"scale": t.Scale,
			"even":  describeTexture(t.Even),
			"odd":   describeTexture(t.Odd),
		}
	case *texture.Noise:
		return map[string]interface{}{"type": "noise", "scale": t.Scale}
	case *texture.Image:
		return map[string]interface{}{"type": "image", "width": t.Width, "height": t.Height}
	}
	return map[string]interface{}{"type": "unknown"}
}

func describeMaterial(mat material.Material) (string, map[string]interface{}) {
	switch m := mat.(type) {
	case *material.Lambertian:
		return "lambertian", map[string]interface{}{"albedo": describeTexture(m.Albedo)}
	case *material.Metal:
		return "metal", map[string]interface{}{"albedo": vec(m.Albedo), "fuzzness": m.Fuzzness}
	case *material.Dielectric:
		return "dielectric", map[string]interface{}{"refractiveIndex": m.RefractiveIndex}
	case *material.DiffuseLight:
		return "diffuse_light", map[string]interface{}{"emission": describeTexture(m.Emission)}
	}
	return "unknown", map[string]interface{}{}
}

func describeShape(shape geometry.Shape) (string, map[string]interface{}) {
	switch g := shape.(type) {
	case *geometry.Sphere:
		return "sphere", map[string]interface{}{"center": vec(g.Center), "radius": g.Radius}
	case *geometry.MovingSphere:
		return "moving_sphere", map[string]interface{}{
			"center0": vec(g.Center0),
			"center1": vec(g.Center1),
			"time0":   g.Time0,
			"time1":   g.Time1,
			"radius":  g.Radius,
		}
	case *geometry.Rect:
		return "rect", map[string]interface{}{
			"orientation": g.Orientation.String(),
			"a":           [2]float64{g.A0, g.A1},
			"b":           [2]float64{g.B0, g.B1},
			"k":           g.K,
			"flipped":     g.Flip,
		}
	case *geometry.Box:
		return "box", map[string]interface{}{"min": vec(g.Min), "max": vec(g.Max)}
	}
	return "unknown", map[string]interface{}{}
}

// inspectPixel casts the ray through the centre of pixel (x, y), counted from
// the top left, and returns the nearest hit and the top-level shape it belongs to.
func inspectPixel(sc *scene.Scene, width, height, x, y int) (material.HitRecord, geometry.Shape, bool) {
	s := (float64(x) + 0.5) / float64(width)
	t := (float64(height-1-y) + 0.5) / float64(height)
	ray := sc.GetCamera().GetRay(rand.New(rand.NewSource(0)), s, t)

	if sc.BVH == nil {
		return material.HitRecord{}, nil, false
	}
	hit, index, ok := sc.BVH.HitShape(ray, integrator.ShadowEpsilon, math.Inf(1))
	if !ok {
		return hit, nil, false
	}
	return hit, sc.BVH.Shapes[index], true
}

// handleInspect reports what lies under a pixel of the requested view
func (s *Server) handleInspect(c echo.Context) error {
	cfg, err := s.sceneRequest(c)
	if err != nil {
		return badRequest(c, err)
	}

	x, err := parseIntParam(c, "x", -1, 0, cfg.ScreenWidth-1)
	if err != nil {
		return badRequest(c, err)
	}
	y, err := parseIntParam(c, "y", -1, 0, cfg.ScreenHeight-1)
	if err != nil {
		return badRequest(c, err)
	}
	if x < 0 || y < 0 {
		return badRequest(c, fmt.Errorf("x and y are required"))
	}

	sc, err := scene.Create(cfg.SceneName(), cfg.SceneOptions())
	if errors.Is(err, scene.ErrUnknownScene) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return badRequest(c, err)
	}

	hit, shape, ok := inspectPixel(sc, cfg.ScreenWidth, cfg.ScreenHeight, x, y)
	if !ok {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := describeMaterial(hit.Material)
	geometryType, geometryProps := describeShape(shape)

	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec(hit.Point),
		Normal:       vec(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
