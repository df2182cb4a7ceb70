// Package output serializes framebuffers to image files.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownFormat is returned for unsupported format names or file extensions
var ErrUnknownFormat = errors.New("unknown image format")

// Format names an output encoding
type Format string

// Supported formats.
const (
	PPM  Format = "ppm"
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// Formats lists every supported format
var Formats = []Format{PPM, PNG, BMP, TIFF}

// ParseFormat maps a case-insensitive name to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "ppm":
		return PPM, nil
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ContentType returns the MIME type for the format
func (f Format) ContentType() string {
	switch f {
	case PNG:
		return "image/png"
	case BMP:
		return "image/bmp"
	case TIFF:
		return "image/tiff"
	}
	return "image/x-portable-pixmap"
}

// Encode writes fb to w in the given format
func Encode(w io.Writer, fb *renderer.Framebuffer, format Format) error {
	switch format {
	case PPM:
		return WritePPM(w, fb)
	case PNG:
		return png.Encode(w, fb.RGBA())
	case BMP:
		return bmp.Encode(w, fb.RGBA())
	case TIFF:
		return tiff.Encode(w, fb.RGBA(), &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
}

// WritePPM writes a plain-text P3 pixmap with one "r g b" triple per line
func WritePPM(w io.Writer, fb *renderer.Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}
	for i := 0; i+2 < len(fb.Pix); i += 3 {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile encodes fb to path. An empty format is inferred from the extension.
func WriteFile(path string, fb *renderer.Framebuffer, format Format) (err error) {
	if format == "" {
		if format, err = FormatFromPath(path); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	if err := Encode(f, fb, format); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
