// Package screenshot writes framebuffer captures to PNG files.
package screenshot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/midgard-gallery/internal/engine/texture"
)

// Capture names and writes screenshots into one directory.
type Capture struct {
	dir    string
	prefix string

	// now is replaced in tests.
	now func() time.Time
}

// New creates a capture writing <prefix>_<timestamp>.png files into dir.
// An empty dir means the working directory.
func New(dir, prefix string) *Capture {
	return &Capture{dir: dir, prefix: prefix, now: time.Now}
}

// SaveBottomUp writes RGBA pixels read back from GL, whose first row is
// the bottom of the image, and returns the file path.
func (c *Capture) SaveBottomUp(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	texture.FlipVertical(img)

	return c.save(img)
}

func (c *Capture) save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path := c.filename()
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

// filename is unique per millisecond, so quick repeated captures do not
// overwrite each other.
func (c *Capture) filename() string {
	name := fmt.Sprintf("%s_%s.png", c.prefix, c.now().Format("2006-01-02_15-04-05.000"))
	return filepath.Join(c.dir, name)
}
