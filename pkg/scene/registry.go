package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// Options adjust a world at construction time
type Options struct {
	AspectRatio float64  // 0 keeps the world's default
	Aperture    *float64 // nil keeps the world's default
	Seed        int64    // Drives world generation and BVH axis choice
	TexturePath string   // Image for the textured world; empty uses a generated grid
}

// Info describes a registered world
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builder func(random *rand.Rand, opts Options) (*Scene, error)

type entry struct {
	info  Info
	build builder
}

var registry = map[string]entry{}

func register(name, description string, build builder) {
	registry[name] = entry{info: Info{Name: name, Description: description}, build: build}
}

func init() {
	register("static", "five spheres: diffuse, metal, glass and a hollow glass shell", newStaticScene)
	register("single", "one red diffuse sphere under the sky", newSingleScene)
	register("random", "random small spheres around three large ones, with motion blur", newRandomScene)
	register("perlin", "two spheres with Perlin marble texture", newPerlinScene)
	register("simple-light", "noise-textured spheres lit by a rectangle and a sphere light", newSimpleLightScene)
	register("cornell", "Cornell box with two blocks and a ceiling light", newCornellScene)
	register("textured", "a sphere wrapped in an image texture on a checker floor", newTexturedScene)
}

// List returns the registered worlds sorted by name
func List() []Info {
	infos := make([]Info, 0, len(registry))
	for _, e := range registry {
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Create builds the named world and its BVH. Generation and BVH construction
// draw from one generator seeded with opts.Seed.
func Create(name string, opts Options) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	random := rand.New(rand.NewSource(opts.Seed))
	s, err := e.build(random, opts)
	if err != nil {
		return nil, fmt.Errorf("creating scene %q: %w", name, err)
	}
	s.Name = name

	if err := s.Preprocess(random); err != nil {
		return nil, err
	}
	return s, nil
}

// newCamera applies opts on top of a world's default camera
func newCamera(defaults renderer.CameraConfig, opts Options) *renderer.Camera {
	config := defaults
	if opts.AspectRatio > 0 {
		config.AspectRatio = opts.AspectRatio
	}
	if opts.Aperture != nil {
		config.Aperture = *opts.Aperture
	}
	return renderer.NewCamera(config)
}
