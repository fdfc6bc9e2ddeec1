package fbui

import (
	"image"
	"image/color"
)

// Canvas is the off-screen surface every item composites into. Pixels are
// kept in the hardware encoding so presenting is a copy (plus rotation), not
// a conversion. Pix is used by the 4-byte formats and Pix16 by RGB565; the
// other slice is nil.
type Canvas struct {
	Format PixelFormat
	Width  int
	Height int
	Stride int // pixels per row, >= Width

	Pix   []uint32
	Pix16 []uint16
}

// NewCanvas allocates a canvas. A stride smaller than w is raised to w.
func NewCanvas(f PixelFormat, w, h, stride int) *Canvas {
	stride = max(stride, w)
	c := &Canvas{Format: f, Width: w, Height: h, Stride: stride}
	if f.BytesPerPixel() == 2 {
		c.Pix16 = make([]uint16, stride*h)
	} else {
		c.Pix = make([]uint32, stride*h)
	}
	return c
}

// Bounds returns the visible area of the canvas.
func (c *Canvas) Bounds() Rect {
	return Rect{0, 0, c.Width, c.Height}
}

// Pixel returns the raw encoded pixel at (x, y), or 0 outside the canvas.
func (c *Canvas) Pixel(x, y int) uint32 {
	if !c.Bounds().Contains(x, y) {
		return 0
	}
	i := y*c.Stride + x
	if c.Pix16 != nil {
		return uint32(c.Pix16[i])
	}
	return c.Pix[i]
}

// SetPixel stores a raw encoded pixel.
func (c *Canvas) SetPixel(x, y int, px uint32) {
	if !c.Bounds().Contains(x, y) {
		return
	}
	i := y*c.Stride + x
	if c.Pix16 != nil {
		c.Pix16[i] = uint16(px)
		return
	}
	c.Pix[i] = px
}

// At returns the decoded color at (x, y).
func (c *Canvas) At(x, y int) Color {
	return DecodeColor(c.Format, c.Pixel(x, y))
}

// Fill sets every pixel, padding included, to the encoded value px.
func (c *Canvas) Fill(px uint32) {
	if c.Pix16 != nil {
		fill(c.Pix16, uint16(px))
		return
	}
	fill(c.Pix, px)
}

// CopyTo copies c into dst and returns it. When dst is nil or its geometry
// differs, a new canvas is allocated.
func (c *Canvas) CopyTo(dst *Canvas) *Canvas {
	if dst == nil || dst.Format != c.Format || dst.Width != c.Width ||
		dst.Height != c.Height || dst.Stride != c.Stride {
		dst = NewCanvas(c.Format, c.Width, c.Height, c.Stride)
	}
	copy(dst.Pix, c.Pix)
	copy(dst.Pix16, c.Pix16)
	return dst
}

// ToNRGBA decodes the visible area into a standard library image.
func (c *Canvas) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			col := c.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: col.R(), G: col.G(), B: col.B(), A: 0xFF})
		}
	}
	return img
}

// fill sets every element of s to v, doubling the copied span each round.
func fill[T pixel](s []T, v T) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for n := 1; n < len(s); n *= 2 {
		copy(s[n:], s[:n])
	}
}
