package fbui

import "sync/atomic"

// itemIDCounter is process-wide; ids are never reused.
var itemIDCounter atomic.Uint32

func nextItemID() uint32 {
	return itemIDCounter.Add(1)
}

// Composite is implemented by widgets that take one slot in the registry but
// draw several sub-items they own privately (a list view, for example). The
// sub-items are not registered; they are drawn in the order returned, clipped
// to the composite's own box.
type Composite interface {
	Items() []*Item
	// Release frees the sub-items. Called once, when the owning item is
	// destroyed.
	Release()
}

// Item is one drawable unit in the scene registry. A single flat struct is
// used for every kind; Kind selects which payload fields are meaningful.
//
// Callers may change position, size and color between frames. Level is fixed
// at creation. To mutate without racing the render goroutine, do it inside
// Display.Batch.
type Item struct {
	ID    uint32
	Kind  ItemKind
	Level int

	// Box in device pixels, pre-rotation. For lines only X, Y are used, as
	// the first endpoint.
	Rect

	// Parent is the clip box. It is not owned; nil means the full screen.
	Parent *Rect

	// Rect and line color.
	Color Color

	// Line fields (KindLine). The first endpoint is (X, Y).
	X2, Y2    int
	Thickness int

	// Image fields (KindImage).
	Image  *Image
	Origin ImageOrigin

	// Composite fields (KindComposite).
	Composite Composite

	// Registry linkage.
	prev, next *Item
	list       *itemList

	disposed bool
}

func newItem(kind ItemKind, level int, box Rect) *Item {
	return &Item{ID: nextItemID(), Kind: kind, Level: level, Rect: box}
}

// NewRectItem creates an unregistered rectangle item, for use as a composite
// sub-item.
func NewRectItem(x, y, w, h int, c Color) *Item {
	it := newItem(KindRect, 0, Rect{x, y, w, h})
	it.Color = c
	return it
}

// NewLineItem creates an unregistered line item.
func NewLineItem(x1, y1, x2, y2, thickness int, c Color) *Item {
	it := newItem(KindLine, 0, Rect{X: x1, Y: y1})
	it.X2, it.Y2 = x2, y2
	it.Thickness = max(thickness, 1)
	it.Color = c
	return it
}

// NewImageItem creates an unregistered image item sized to img.
func NewImageItem(x, y int, img *Image, origin ImageOrigin) *Item {
	w, h := 0, 0
	if img != nil {
		w, h = img.Width, img.Height
	}
	it := newItem(KindImage, 0, Rect{x, y, w, h})
	it.Image = img
	it.Origin = origin
	return it
}

// Registered reports whether the item is currently linked into a registry
// list (the active one or a pushed context).
func (it *Item) Registered() bool {
	return it.list != nil
}

// IsDisposed reports whether the item has been destroyed.
func (it *Item) IsDisposed() bool {
	return it.disposed
}

// Box returns a copy of the item's rectangle.
func (it *Item) Box() Rect {
	return it.Rect
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
