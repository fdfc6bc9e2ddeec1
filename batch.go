package fbui

// Batch holds the registry lock across many mutations. Obtain one from
// BatchStart and release it with End. Only the Batch methods may be used
// while it is open; calling the Display's own Add/Remove methods from the
// same goroutine would deadlock.
//
// Moving or recoloring existing items inside a batch is also safe: the render
// goroutine cannot compose until End.
type Batch struct {
	d    *Display
	open bool
}

// BatchStart locks the registry and returns the handle that owns the lock.
func (d *Display) BatchStart() *Batch {
	d.reg.mu.Lock()
	return &Batch{d: d, open: true}
}

// End releases the registry lock and requests a draw. Ending twice is
// reported and ignored.
func (b *Batch) End() {
	if !b.open {
		logf("warning: Batch.End called twice")
		return
	}
	b.open = false
	b.d.reg.mu.Unlock()
	b.d.RequestDraw()
}

// Batch runs fn with the registry locked and requests a single draw when it
// returns.
func (d *Display) Batch(fn func(b *Batch)) {
	b := d.BatchStart()
	defer b.End()
	fn(b)
}

func (b *Batch) check() bool {
	if !b.open {
		logf("warning: use of ended batch")
		return false
	}
	return true
}

// AddRect adds a rectangle. See Display.AddRect.
func (b *Batch) AddRect(level, x, y, w, h int, c Color) *Item {
	if !b.check() {
		return nil
	}
	return b.d.addRectLocked(level, x, y, w, h, c)
}

// AddImage adds an image. See Display.AddImage.
func (b *Batch) AddImage(level, x, y int, img *Image, origin ImageOrigin) *Item {
	if !b.check() {
		return nil
	}
	return b.d.addImageLocked(level, x, y, img, origin)
}

// AddLine adds a line. See Display.AddLine.
func (b *Batch) AddLine(level, x1, y1, x2, y2, thickness int, c Color) *Item {
	if !b.check() {
		return nil
	}
	return b.d.addLineLocked(level, x1, y1, x2, y2, thickness, c)
}

// AddComposite registers a composite. See Display.AddComposite.
func (b *Batch) AddComposite(level, x, y, w, h int, c Composite) *Item {
	if !b.check() {
		return nil
	}
	return b.d.addCompositeLocked(level, x, y, w, h, c)
}

// Remove unlinks and destroys an item.
func (b *Batch) Remove(it *Item) {
	if it == nil || !b.check() {
		return
	}
	b.d.removeLocked(it)
}

// Clear destroys every item of the active context.
func (b *Batch) Clear() {
	if !b.check() {
		return
	}
	for _, it := range b.d.reg.active.drain() {
		b.d.items.Remove(int(it.ID), nil)
		b.d.destroyItemLocked(it)
	}
}
