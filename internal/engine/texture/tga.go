package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

// DecodeTGA decodes a TGA image file.
// Supports uncompressed (type 2) and RLE compressed (type 10) true-color
// files at 24 or 32 bits per pixel.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d", bpp)
	}

	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		stride:      bpp / 8,
		topToBottom: descriptor&0x20 != 0,
	}

	if imageType == TGATypeUncompressed {
		if len(d.src) < width*height*d.stride {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for i := 0; i < width*height; i++ {
			d.put(i, d.next())
		}
		return d.img, nil
	}

	d.decodeRLE()
	return d.img, nil
}

// tgaDecoder walks BGR(A) pixel data and writes it into an RGBA image.
type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	width       int
	height      int
	stride      int
	topToBottom bool
}

// next reads one pixel; callers check remaining length first.
func (d *tgaDecoder) next() color.RGBA {
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c
}

func (d *tgaDecoder) remaining() int {
	return len(d.src) - d.pos
}

// put stores pixel i (file order) honouring the vertical origin bit.
func (d *tgaDecoder) put(i int, c color.RGBA) {
	x, y := i%d.width, i/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

// decodeRLE expands run-length packets. Truncated input leaves the rest of
// the image transparent.
func (d *tgaDecoder) decodeRLE() {
	total := d.width * d.height
	for i := 0; i < total && d.remaining() > 0; {
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			if d.remaining() < d.stride {
				return
			}
			c := d.next()
			for ; count > 0 && i < total; count-- {
				d.put(i, c)
				i++
			}
			continue
		}

		for ; count > 0 && i < total; count-- {
			if d.remaining() < d.stride {
				return
			}
			d.put(i, d.next())
			i++
		}
	}
}
