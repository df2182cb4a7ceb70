package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
)

// TileStats counts the work done for one tile
type TileStats struct {
	Pixels  int
	Samples int
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	TotalPixels     int
	TotalSamples    int
	Tiles           int
	Workers         int
	Duration        time.Duration
}

// SamplesPerSecond returns the camera-ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// WriteTable writes the statistics as a two-column table
func (s RenderStats) WriteTable(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk([][]string{
		{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)},
		{"Samples per pixel", fmt.Sprintf("%d", s.SamplesPerPixel)},
		{"Max depth", fmt.Sprintf("%d", s.MaxDepth)},
		{"Pixels", fmt.Sprintf("%d", s.TotalPixels)},
		{"Samples", fmt.Sprintf("%d", s.TotalSamples)},
		{"Tiles", fmt.Sprintf("%d", s.Tiles)},
		{"Workers", fmt.Sprintf("%d", s.Workers)},
		{"Samples/s", fmt.Sprintf("%.0f", s.SamplesPerSecond())},
	})
	table.SetFooter([]string{"Render time", s.Duration.Round(time.Millisecond).String()})
	table.Render()
}
