package fbui

// compositor draws items into the canvas. It is only ever driven by the
// render goroutine, with the registry lock held.
type compositor struct {
	canvas  *Canvas
	drawOps int
}

// begin clears the canvas to bg and resets the per-pass counters.
func (c *compositor) begin(bg Color) {
	c.drawOps = 0
	c.canvas.Fill(EncodeColor(c.canvas.Format, bg))
}

// clip returns the area an item may touch: its parent box clipped to bounds,
// or bounds itself when the item has no parent.
func (c *compositor) clip(it *Item, bounds Rect) Rect {
	if it.Parent == nil {
		return bounds
	}
	return it.Parent.Intersect(bounds)
}

// drawItem dispatches on the item kind. bounds is the screen for registry
// items and the composite's visible box for sub-items.
func (c *compositor) drawItem(it *Item, bounds Rect) {
	switch it.Kind {
	case KindRect:
		c.drawRect(it, bounds)
	case KindImage:
		c.drawImage(it, bounds)
	case KindLine:
		c.drawLine(it, bounds)
	case KindComposite:
		c.drawComposite(it, bounds)
	default:
		logf("warning: item %d has unknown kind %v", it.ID, it.Kind)
	}
}

func (c *compositor) drawRect(it *Item, bounds Rect) {
	a := uint32(it.Color.A())
	if a == 0 {
		return
	}
	box := it.Rect.Intersect(c.clip(it, bounds))
	if box.Empty() {
		return
	}
	cv := c.canvas
	if cv.Pix16 != nil {
		c.rect565(box, it.Color)
		return
	}
	c.drawOps++

	px := EncodeColor(cv.Format, it.Color)
	if a == 0xFF {
		for y := box.Y; y < box.Y+box.H; y++ {
			i := y*cv.Stride + box.X
			fill(cv.Pix[i:i+box.W], px)
		}
		return
	}

	rb, g := premultiply32(px, a)
	inv := 255 - a
	for y := box.Y; y < box.Y+box.H; y++ {
		i := y*cv.Stride + box.X
		row := cv.Pix[i : i+box.W]
		for x, d := range row {
			row[x] = blendRect32(d, rb, g, inv)
		}
	}
}

// rect565 uses the same alpha rule as blendImageRow565: a 5-bit alpha of 31
// copies, 0 skips.
func (c *compositor) rect565(box Rect, col Color) {
	a5, a6 := alpha565(alphaWord565(col.A()))
	if a5 == 0 {
		return
	}
	c.drawOps++

	cv := c.canvas
	p := pack565(col)
	for y := box.Y; y < box.Y+box.H; y++ {
		i := y*cv.Stride + box.X
		row := cv.Pix16[i : i+box.W]
		if a5 == 31 {
			fill(row, p)
			continue
		}
		for x, d := range row {
			row[x] = blendPixel565(d, p, a5, a6)
		}
	}
}

func (c *compositor) drawImage(it *Item, bounds Rect) {
	img := it.Image
	if img == nil || len(img.Pix) == 0 {
		return
	}
	cv := c.canvas
	if img.Format != cv.Format {
		logf("warning: item %d image is %v, canvas is %v", it.ID, img.Format, cv.Format)
		return
	}
	area := Rect{it.X, it.Y, min(it.W, img.Width), min(it.H, img.Height)}
	box := area.Intersect(c.clip(it, bounds))
	if box.Empty() {
		return
	}
	c.drawOps++

	for y := box.Y; y < box.Y+box.H; y++ {
		s := (y-it.Y)*img.Width + (box.X - it.X)
		src := img.Pix[s : s+box.W]
		d := y*cv.Stride + box.X
		if cv.Pix16 != nil {
			blendImageRow565(cv.Pix16[d:d+box.W], src)
		} else {
			blendImageRow32(cv.Pix[d:d+box.W], src)
		}
	}
}

// blendImageRow32 composites one row of a 4-byte image. Fully transparent
// pixels leave the destination untouched.
func blendImageRow32(dst, src []uint32) {
	for x, s := range src {
		switch a := s >> 24; a {
		case 0xFF:
			dst[x] = s
		case 0:
		default:
			dst[x] = blendPixel32(dst[x], s, a)
		}
	}
}

// blendImageRow565 composites one row of an RGB565 image whose words carry
// the alpha word in their high half.
func blendImageRow565(dst []uint16, src []uint32) {
	for x, s := range src {
		a5, a6 := alpha565(uint16(s >> 16))
		switch a5 {
		case 31:
			dst[x] = uint16(s)
		case 0:
		default:
			dst[x] = blendPixel565(dst[x], uint16(s), a5, a6)
		}
	}
}

func (c *compositor) drawComposite(it *Item, bounds Rect) {
	if it.Composite == nil {
		return
	}
	box := it.Rect.Intersect(c.clip(it, bounds))
	if box.Empty() {
		return
	}
	for _, sub := range it.Composite.Items() {
		if sub == nil || sub.disposed {
			continue
		}
		c.drawItem(sub, box)
	}
}
