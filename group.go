package fbui

import "github.com/phanxgames/fbui/container"

// Group is a Composite that owns a flat list of sub-items, drawn in the
// order they were added and clipped to the box of the registered item.
// Sub-item coordinates are screen coordinates.
//
// Mutate a registered group inside Display.Batch.
type Group struct {
	items container.List[*Item]

	// Releaser, when set, takes back the images of image sub-items.
	Releaser ImageReleaser
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{}
}

// AddRect appends a rectangle sub-item.
func (g *Group) AddRect(x, y, w, h int, c Color) *Item {
	it := NewRectItem(x, y, w, h, c)
	g.items.Append(it)
	return it
}

// AddLine appends a line sub-item.
func (g *Group) AddLine(x1, y1, x2, y2, thickness int, c Color) *Item {
	it := NewLineItem(x1, y1, x2, y2, thickness, c)
	g.items.Append(it)
	return it
}

// AddImage appends an image sub-item.
func (g *Group) AddImage(x, y int, img *Image, origin ImageOrigin) *Item {
	it := NewImageItem(x, y, img, origin)
	g.items.Append(it)
	return it
}

// Remove drops one sub-item, keeping the order of the rest.
func (g *Group) Remove(it *Item) bool {
	return g.items.RemoveStable(it, g.release)
}

// Items returns the sub-items in draw order.
func (g *Group) Items() []*Item {
	return g.items.Items()
}

// Len returns the number of sub-items.
func (g *Group) Len() int {
	return g.items.Len()
}

// Release frees every sub-item.
func (g *Group) Release() {
	g.items.Clear(g.release)
}

func (g *Group) release(it *Item) {
	if it.disposed {
		return
	}
	it.disposed = true
	if it.Kind == KindImage && it.Image != nil && g.Releaser != nil {
		g.Releaser.ReleaseImage(it.Image)
	}
	it.Image = nil
}
