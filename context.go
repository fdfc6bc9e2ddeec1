package fbui

// sceneContext is a detached item tree saved by PushContext.
type sceneContext struct {
	list *itemList
	bg   Color
}

// PushContext detaches the current item tree and starts an empty one, so a
// modal sub-screen can draw without touching the parent's items. The
// background color is saved with the tree.
func (d *Display) PushContext() {
	d.reg.mu.Lock()
	d.contexts.Append(&sceneContext{list: d.reg.active, bg: d.bg})
	d.reg.active = &itemList{}
	d.reg.mu.Unlock()
	d.RequestDraw()
}

// PopContext destroys every item of the current tree and restores the one
// saved by the matching PushContext.
func (d *Display) PopContext() {
	d.reg.mu.Lock()
	n := d.contexts.Len()
	if n == 0 {
		d.reg.mu.Unlock()
		logf("warning: PopContext without a pushed context")
		return
	}
	ctx := d.contexts.At(n - 1)
	d.contexts.RemoveAtStable(n-1, nil)

	for _, it := range d.reg.active.drain() {
		d.items.Remove(int(it.ID), nil)
		d.destroyItemLocked(it)
	}
	d.reg.active = ctx.list
	d.bg = ctx.bg
	d.reg.mu.Unlock()
	d.RequestDraw()
}

// ContextDepth returns the number of pushed contexts.
func (d *Display) ContextDepth() int {
	d.reg.mu.Lock()
	defer d.reg.mu.Unlock()
	return d.contexts.Len()
}
