package fbui

import "math"

// drawLine rasterizes a thick line with integer Bresenham steps. Thickness
// widens each step into a span across the minor axis. The segment is clipped
// to the parent box (grown by half the thickness) before walking, and every
// plotted pixel is checked against the box itself.
func (c *compositor) drawLine(it *Item, bounds Rect) {
	if it.Color.A() == 0 {
		return
	}
	clip := c.clip(it, bounds)
	if clip.Empty() {
		return
	}
	t := max(it.Thickness, 1)
	grown := Rect{clip.X - t/2, clip.Y - t/2, clip.W + t, clip.H + t}
	x0, y0, x1, y1, ok := clipSegment(it.X, it.Y, it.X2, it.Y2, grown)
	if !ok {
		return
	}
	c.drawOps++

	plot := c.plotter(it.Color, clip)
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	xMajor := dx >= -dy
	half := t / 2
	err := dx + dy
	for {
		for k := -half; k < t-half; k++ {
			if xMajor {
				plot(x0, y0+k)
			} else {
				plot(x0+k, y0)
			}
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// plotter returns a single-pixel writer for col limited to clip.
func (c *compositor) plotter(col Color, clip Rect) func(x, y int) {
	cv := c.canvas
	a := uint32(col.A())
	if cv.Pix16 != nil {
		p := pack565(col)
		a5, a6 := a>>3, a>>2
		return func(x, y int) {
			if !clip.Contains(x, y) {
				return
			}
			i := y*cv.Stride + x
			if a == 0xFF {
				cv.Pix16[i] = p
				return
			}
			cv.Pix16[i] = blendPixel565(cv.Pix16[i], p, a5, a6)
		}
	}
	px := EncodeColor(cv.Format, col)
	rb, g := premultiply32(px, a)
	return func(x, y int) {
		if !clip.Contains(x, y) {
			return
		}
		i := y*cv.Stride + x
		if a == 0xFF {
			cv.Pix[i] = px
			return
		}
		cv.Pix[i] = blendRect32(cv.Pix[i], rb, g, 255-a)
	}
}

// clipSegment clips (x0,y0)-(x1,y1) to r with the Liang–Barsky parametric
// test. ok is false when no part of the segment lies inside r.
func clipSegment(x0, y0, x1, y1 int, r Rect) (cx0, cy0, cx1, cy1 int, ok bool) {
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	fx, fy := float64(x0), float64(y0)
	dx, dy := float64(x1-x0), float64(y1-y0)
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{
		fx - float64(r.X),
		float64(r.X+r.W-1) - fx,
		fy - float64(r.Y),
		float64(r.Y+r.H-1) - fy,
	}
	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		v := q[i] / p[i]
		if p[i] < 0 {
			if v > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, v)
		} else {
			if v < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, v)
		}
	}
	cx0 = x0 + int(math.Round(t0*dx))
	cy0 = y0 + int(math.Round(t0*dy))
	cx1 = x0 + int(math.Round(t1*dx))
	cy1 = y0 + int(math.Round(t1*dy))
	return cx0, cy0, cx1, cy1, true
}
