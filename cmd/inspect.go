package cmd

import (
	"bytes"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// traversalReport compares BVH queries against a linear scan over the same rays
type traversalReport struct {
	Rays       int
	Hits       int
	Mismatches int
	BVHTime    time.Duration
	LinearTime time.Duration
}

func (r traversalReport) speedup() float64 {
	if r.BVHTime <= 0 {
		return 0
	}
	return float64(r.LinearTime) / float64(r.BVHTime)
}

// InspectScene prints BVH statistics and times BVH traversal against a linear scan.
func InspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	sc, err := scene.Create(cfg.SceneName(), cfg.SceneOptions())
	if err != nil {
		return err
	}

	displayBVHStats(sc)

	random := rand.New(rand.NewSource(cfg.Seed))
	report := compareTraversal(sc, ctx.Int("rays"), random)
	displayTraversalReport(report)

	if report.Mismatches > 0 {
		return fmt.Errorf("BVH disagreed with the linear scan on %d of %d rays", report.Mismatches, report.Rays)
	}
	return nil
}

// compareTraversal shoots camera rays through random screen positions
func compareTraversal(sc *scene.Scene, rays int, random *rand.Rand) traversalReport {
	camera := sc.GetCamera()
	batch := make([]core.Ray, rays)
	for i := range batch {
		batch[i] = camera.GetRay(random, random.Float64(), random.Float64())
	}

	report := traversalReport{Rays: rays}
	bvhHits := make([]material.HitRecord, rays)
	bvhFound := make([]bool, rays)

	start := time.Now()
	for i, ray := range batch {
		bvhHits[i], bvhFound[i] = sc.BVH.Hit(ray, integrator.ShadowEpsilon, math.Inf(1))
	}
	report.BVHTime = time.Since(start)

	start = time.Now()
	for i, ray := range batch {
		hit, found := sc.BVH.HitLinear(ray, integrator.ShadowEpsilon, math.Inf(1))
		if found {
			report.Hits++
		}
		if found != bvhFound[i] || (found && hit.T != bvhHits[i].T) {
			report.Mismatches++
		}
	}
	report.LinearTime = time.Since(start)

	return report
}

func displayBVHStats(sc *scene.Scene) {
	stats := sc.BVH.Stats()

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"BVH", "Value"})
	table.AppendBulk([][]string{
		{"Shapes", fmt.Sprintf("%d", stats.Shapes)},
		{"Nodes", fmt.Sprintf("%d", stats.Nodes)},
		{"Leaves", fmt.Sprintf("%d", stats.Leaves)},
		{"Internal", fmt.Sprintf("%d", stats.Internal)},
		{"Max depth", fmt.Sprintf("%d", stats.MaxDepth)},
		{"Avg leaf depth", fmt.Sprintf("%.2f", stats.AvgLeafDepth)},
	})
	if box, ok := sc.BVH.BoundingBox(); ok {
		table.SetFooter([]string{"Bounds", fmt.Sprintf("%v - %v", box.Min, box.Max)})
	}
	table.Render()
	logger.Noticef("scene %q\n%s", sc.Name, buf.String())
}

func displayTraversalReport(report traversalReport) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Method", "Rays", "Hits", "Time"})
	table.Append([]string{"BVH", fmt.Sprintf("%d", report.Rays), fmt.Sprintf("%d", report.Hits), report.BVHTime.String()})
	table.Append([]string{"Linear", fmt.Sprintf("%d", report.Rays), fmt.Sprintf("%d", report.Hits), report.LinearTime.String()})
	table.SetFooter([]string{"", "", "SPEEDUP", fmt.Sprintf("%.1fx", report.speedup())})
	table.Render()
	logger.Noticef("traversal\n%s", buf.String())
}
