package fbui

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is the canonical 32-bit color, laid out as 0xAARRGGBB. Conversion to
// the hardware encoding happens once per draw through EncodeColor.
type Color uint32

// Common colors.
const (
	Transparent Color = 0x00000000
	Black       Color = 0xFF000000
	White       Color = 0xFFFFFFFF
	Red         Color = 0xFFFF0000
	Green       Color = 0xFF00FF00
	Blue        Color = 0xFF0000FF
)

// RGBA builds a Color from its components.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// A returns the alpha component.
func (c Color) A() uint8 { return uint8(c >> 24) }

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c) }

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	return c&0x00FFFFFF | Color(a)<<24
}

// String formats the color as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// MarshalText encodes the color as #AARRGGBB so it reads naturally in config
// files.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts #AARRGGBB, #RRGGBB (opaque) or 0x-prefixed hex.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("parse color %q: %w", text, err)
	}
	switch len(s) {
	case 6:
		v |= 0xFF000000
	case 8:
	default:
		return fmt.Errorf("parse color %q: want 6 or 8 hex digits", text)
	}
	*c = Color(v)
	return nil
}

// Rect is an axis-aligned rectangle in device pixels, pre-rotation. The origin
// is the top-left corner with Y increasing downward.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o. The result is Empty when they do
// not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Rotation is the clockwise rotation applied when the canvas is copied to the
// hardware target.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Valid reports whether r is one of the four supported angles.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// SwapsAxes reports whether the canvas width maps to the device height.
func (r Rotation) SwapsAxes() bool {
	return r == Rotate90 || r == Rotate270
}

// ItemKind distinguishes the drawing behavior of an Item.
type ItemKind uint8

const (
	KindRect      ItemKind = iota // solid or translucent rectangle
	KindImage                     // pixel buffer in the hardware image encoding
	KindLine                      // thick line between two endpoints
	KindComposite                 // widget that draws privately owned sub-items
)

func (k ItemKind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindImage:
		return "image"
	case KindLine:
		return "line"
	case KindComposite:
		return "composite"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// ImageOrigin records where an image buffer came from, which decides how it
// is released when its item is destroyed.
type ImageOrigin uint8

const (
	OriginGeneric ImageOrigin = iota // owned by the item; dropped on destroy
	OriginDecoded                    // produced by an image decoder
	OriginText                       // rendered text from a string cache
)
