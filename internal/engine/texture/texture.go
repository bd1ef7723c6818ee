// Package texture decodes image files into RGBA pixel data ready for GPU
// upload and tracks the resulting texture handles.
package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// Texture is a decoded image and, once uploaded, its GPU handle.
type Texture struct {
	// ID is the GPU texture name; zero until uploaded.
	ID uint32

	// Natural size of the decoded image in pixels.
	Width  int
	Height int

	// Pixels holds the decoded image until upload; the uploader may drop it.
	Pixels *image.RGBA
}

// Ratio returns width / height of the image.
func (t *Texture) Ratio() float32 {
	return float32(t.Width) / float32(t.Height)
}

// Uploaded reports whether the texture has a GPU handle.
func (t *Texture) Uploaded() bool {
	return t.ID != 0
}

// Extensions lists the file extensions Decode understands.
var Extensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".webp", ".tga"}

// Supported reports whether path has a decodable image extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Decode decodes image bytes. TGA has no magic number, so the path's
// extension selects it; everything else goes through the registered formats.
func Decode(data []byte, path string) (image.Image, error) {
	if strings.HasSuffix(strings.ToLower(path), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// Load reads and decodes the file at path. Images larger than maxSize on
// either side are scaled down to fit; maxSize <= 0 disables scaling.
func Load(path string, maxSize int) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, err := Decode(data, path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	rgba := ImageToRGBA(FitWithin(img, maxSize))
	return &Texture{
		Width:  rgba.Bounds().Dx(),
		Height: rgba.Bounds().Dy(),
		Pixels: rgba,
	}, nil
}

// FitWithin scales img down, preserving its ratio, so neither side exceeds
// maxSize. Smaller images are returned unchanged.
func FitWithin(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}

	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// ImageToRGBA converts any image.Image to a zero-origin *image.RGBA.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), img, b.Min, xdraw.Src)
	return rgba
}

// FlipVertical flips rows in place. GL samples textures bottom row first.
func FlipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}
