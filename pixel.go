package fbui

import "strconv"

// PixelFormat is the hardware pixel encoding of the display. It is chosen
// once, when the display is opened, from what the backend reports.
type PixelFormat uint8

const (
	// FormatBGRA8888 stores bytes B, G, R, A; as a little-endian word it is
	// identical to the canonical Color.
	FormatBGRA8888 PixelFormat = iota
	// FormatRGBX8888 stores bytes R, G, B, X. The X byte is ignored by the
	// hardware and the canvas is kept opaque.
	FormatRGBX8888
	// FormatABGR8888 stores bytes R, G, B, A.
	FormatABGR8888
	// FormatRGB565 packs 5/6/5 bits into 16. Images in this format carry
	// their alpha in an adjacent 16-bit word.
	FormatRGB565
)

// BytesPerPixel returns the size of one canvas pixel.
func (f PixelFormat) BytesPerPixel() int {
	if f == FormatRGB565 {
		return 2
	}
	return 4
}

// Valid reports whether f is a known format.
func (f PixelFormat) Valid() bool {
	return f <= FormatRGB565
}

func (f PixelFormat) String() string {
	switch f {
	case FormatBGRA8888:
		return "BGRA8888"
	case FormatRGBX8888:
		return "RGBX8888"
	case FormatABGR8888:
		return "ABGR8888"
	case FormatRGB565:
		return "RGB565"
	}
	return "format(" + strconv.Itoa(int(f)) + ")"
}

// swapRB exchanges the red and blue bytes, leaving green and alpha alone.
func swapRB(v uint32) uint32 {
	return v&0xFF00FF00 | (v&0xFF)<<16 | (v>>16)&0xFF
}

// pack565 reduces a color to RGB565.
func pack565(c Color) uint16 {
	return uint16(c.R()>>3)<<11 | uint16(c.G()>>2)<<5 | uint16(c.B()>>3)
}

// unpack565 expands an RGB565 value to an opaque Color, replicating the high
// bits into the low ones so full intensity maps back to 0xFF.
func unpack565(p uint16) Color {
	r5 := uint8(p >> 11 & 0x1F)
	g6 := uint8(p >> 5 & 0x3F)
	b5 := uint8(p & 0x1F)
	return RGBA(r5<<3|r5>>2, g6<<2|g6>>4, b5<<3|b5>>2, 0xFF)
}

// alphaWord565 spreads an 8-bit alpha over the 565 layout: 5 bits in the red
// and blue slots and 6 bits in the green slot.
func alphaWord565(a uint8) uint16 {
	a5 := uint16(a >> 3)
	a6 := uint16(a >> 2)
	return a5<<11 | a6<<5 | a5
}

// alpha565 extracts the 5-bit and 6-bit alpha values from an alpha word.
func alpha565(w uint16) (a5, a6 uint32) {
	return uint32(w>>11) & 0x1F, uint32(w>>5) & 0x3F
}

// EncodeColor converts a canonical color to the canvas encoding of f. For
// RGB565 the result fits in the low 16 bits.
func EncodeColor(f PixelFormat, c Color) uint32 {
	switch f {
	case FormatBGRA8888:
		return uint32(c)
	case FormatRGBX8888:
		return swapRB(uint32(c)) | 0xFF000000
	case FormatABGR8888:
		return swapRB(uint32(c))
	case FormatRGB565:
		return uint32(pack565(c))
	}
	logf("warning: encode for unsupported pixel format %v", f)
	return 0
}

// DecodeColor converts a canvas pixel back to a canonical color. RGB565
// pixels decode as opaque.
func DecodeColor(f PixelFormat, px uint32) Color {
	switch f {
	case FormatBGRA8888:
		return Color(px)
	case FormatRGBX8888:
		return Color(swapRB(px) | 0xFF000000)
	case FormatABGR8888:
		return Color(swapRB(px))
	case FormatRGB565:
		return unpack565(uint16(px))
	}
	logf("warning: decode for unsupported pixel format %v", f)
	return Transparent
}

// EncodeImageColor converts a color to the stored-image encoding of f. Unlike
// EncodeColor it always keeps alpha: for 4-byte formats in the top byte, for
// RGB565 as an alpha word in the high 16 bits.
func EncodeImageColor(f PixelFormat, c Color) uint32 {
	switch f {
	case FormatBGRA8888:
		return uint32(c)
	case FormatRGBX8888, FormatABGR8888:
		return swapRB(uint32(c))
	case FormatRGB565:
		return uint32(alphaWord565(c.A()))<<16 | uint32(pack565(c))
	}
	logf("warning: image encode for unsupported pixel format %v", f)
	return 0
}

// DecodeImageColor is the inverse of EncodeImageColor. RGB565 alpha is
// rebuilt from its 6-bit copy.
func DecodeImageColor(f PixelFormat, px uint32) Color {
	switch f {
	case FormatBGRA8888:
		return Color(px)
	case FormatRGBX8888, FormatABGR8888:
		return Color(swapRB(px))
	case FormatRGB565:
		_, a6 := alpha565(uint16(px >> 16))
		return unpack565(uint16(px)).WithAlpha(uint8(a6<<2 | a6>>4))
	}
	logf("warning: image decode for unsupported pixel format %v", f)
	return Transparent
}

// div255 divides by 255 with rounding, without a division.
func div255(x uint32) uint32 {
	return (x + 1 + (x >> 8)) >> 8
}

// premultiply32 scales the RB pair and the G channel of px by a/256.
// R and B share one word, so both are scaled with a single multiply.
func premultiply32(px, a uint32) (rb, g uint32) {
	rb = ((px & 0x00FF00FF) * a >> 8) & 0x00FF00FF
	g = ((px & 0x0000FF00) * a >> 8) & 0x0000FF00
	return rb, g
}

// blendRect32 composites a premultiplied source over dst. inv is 255-alpha.
// The destination alpha byte is kept.
func blendRect32(dst, rb, g, inv uint32) uint32 {
	orb := (rb + ((dst & 0x00FF00FF) * inv >> 8)) & 0x00FF00FF
	og := (g + ((dst & 0x0000FF00) * inv >> 8)) & 0x0000FF00
	return dst&0xFF000000 | orb | og
}

// blendPixel32 composites one image pixel with 0 < a < 255 over dst using
// per-channel rounding.
func blendPixel32(dst, src, a uint32) uint32 {
	inv := 255 - a
	r := div255(inv*(dst>>16&0xFF) + a*(src>>16&0xFF))
	g := div255(inv*(dst>>8&0xFF) + a*(src>>8&0xFF))
	b := div255(inv*(dst&0xFF) + a*(src&0xFF))
	return dst&0xFF000000 | r<<16 | g<<8 | b
}

// blendPixel565 composites src over dst with 5-bit alpha for red and blue and
// 6-bit alpha for green.
func blendPixel565(dst, src uint16, a5, a6 uint32) uint16 {
	d, s := uint32(dst), uint32(src)
	r := ((s>>11)*a5 + (d>>11)*(31-a5) + 15) / 31
	g := ((s>>5&0x3F)*a6 + (d>>5&0x3F)*(63-a6) + 31) / 63
	b := ((s&0x1F)*a5 + (d&0x1F)*(31-a5) + 15) / 31
	return uint16(r<<11 | g<<5 | b)
}
