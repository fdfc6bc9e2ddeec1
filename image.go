package fbui

import (
	"image"
	"image/color"
)

// Image is a pixel buffer in the stored-image encoding of a format: one word
// per pixel, alpha always present (see EncodeImageColor).
type Image struct {
	Width  int
	Height int
	Format PixelFormat
	Pix    []uint32
}

// NewImage allocates a fully transparent image.
func NewImage(f PixelFormat, w, h int) *Image {
	return &Image{Width: w, Height: h, Format: f, Pix: make([]uint32, w*h)}
}

// NewImageFrom converts any standard library image. Decoding files is left to
// the caller; this only re-encodes pixels.
func NewImageFrom(f PixelFormat, src image.Image) *Image {
	b := src.Bounds()
	img := NewImage(f, b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			img.Pix[y*img.Width+x] = EncodeImageColor(f, RGBA(c.R, c.G, c.B, c.A))
		}
	}
	return img
}

// Set stores c at (x, y).
func (img *Image) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return
	}
	img.Pix[y*img.Width+x] = EncodeImageColor(img.Format, c)
}

// At returns the decoded color at (x, y), or Transparent outside the image.
func (img *Image) At(x, y int) Color {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return Transparent
	}
	return DecodeImageColor(img.Format, img.Pix[y*img.Width+x])
}

// Fill sets every pixel to c.
func (img *Image) Fill(c Color) {
	fill(img.Pix, EncodeImageColor(img.Format, c))
}
