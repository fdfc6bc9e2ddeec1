package fbui

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/phanxgames/fbui/container"
)

// ImageReleaser takes back image buffers whose items are destroyed. It is
// registered per ImageOrigin; an ImageCache is the usual implementation.
type ImageReleaser interface {
	ReleaseImage(img *Image)
}

// Display owns one hardware surface: the backend, the canvas, the item
// registry, the animation timeline and the render goroutine. It is created by
// Open and torn down by Close. Several displays may coexist (in tests, say);
// nothing is shared between them.
type Display struct {
	cfg     Config
	backend Backend
	target  Target

	// Guarded by reg.mu.
	reg       *registry
	bg        Color
	contexts  container.List[*sceneContext]
	items     container.IntMap[*Item]
	releasers container.IntMap[ImageReleaser]

	// canvasMu guards canvas replacement and the clone/screenshot path. The
	// render goroutine holds it for each pass.
	canvasMu sync.Mutex
	canvas   *Canvas
	comp     compositor
	rot      rotator
	rotation Rotation
	stats    FrameStats

	// infoMu is a leaf lock for values read from producer goroutines, which
	// may hold the registry lock and so must never wait on canvasMu.
	infoMu  sync.Mutex
	info    FrameStats
	infoW   int
	infoH   int
	infoRot Rotation

	anim *Animator

	// Render scheduling, all changed under drawMu. drawRequested is atomic
	// so a pass can claim it with one CAS.
	drawRequested atomic.Int32
	drawMu        sync.Mutex
	drawDone      *sync.Cond
	drawing       bool
	stepping      bool
	frozen        int
	running       bool
	stop          chan struct{}
	done          chan struct{}
}

// Open tries each backend in order and starts the render goroutine on the
// first one that opens. When none does, the error wraps ErrNoDisplay and the
// DeviceError of every backend.
func Open(cfg Config, backends ...Backend) (*Display, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fbui: %w", err)
	}
	errs := []error{ErrNoDisplay}
	for _, b := range backends {
		if b == nil {
			continue
		}
		t, err := b.Open()
		if err == nil {
			if err = t.validate(); err != nil {
				_ = b.Close()
			}
		}
		if err != nil {
			de := &DeviceError{Backend: b.Name(), Op: "open", Err: err}
			logf("backend %s failed: %v", b.Name(), err)
			errs = append(errs, de)
			continue
		}
		d := newDisplay(cfg, b, t)
		d.start()
		logf("display opened on %s: %dx%d %v, rotation %d", b.Name(), t.Width, t.Height, t.Format, cfg.Rotation)
		return d, nil
	}
	return nil, errors.Join(errs...)
}

// OpenConfigured builds the backends named in cfg.Backends from the registered
// factories and opens the first that works.
func OpenConfigured(cfg Config) (*Display, error) {
	var backends []Backend
	var errs []error
	for _, name := range cfg.Backends {
		f, ok := lookupBackend(name)
		if !ok {
			logf("warning: unknown backend %q", name)
			continue
		}
		b, err := f(cfg)
		if err != nil {
			errs = append(errs, &DeviceError{Backend: name, Op: "create", Err: err})
			continue
		}
		backends = append(backends, b)
	}
	d, err := Open(cfg, backends...)
	if err != nil {
		return nil, errors.Join(append([]error{err}, errs...)...)
	}
	return d, nil
}

func newDisplay(cfg Config, b Backend, t Target) *Display {
	d := &Display{
		cfg:      cfg,
		backend:  b,
		target:   t,
		reg:      newRegistry(),
		bg:       cfg.Background,
		rotation: cfg.Rotation,
	}
	d.drawDone = sync.NewCond(&d.drawMu)
	d.anim = NewAnimator()
	d.anim.itemLock = &d.reg.mu
	d.anim.onChange = d.RequestDraw
	d.anim.destroy = d.destroyFinished
	d.resizeCanvas()

	if cfg.Brightness != nil {
		if bs, ok := b.(BrightnessSetter); ok {
			if err := bs.SetBrightness(*cfg.Brightness); err != nil {
				logf("warning: %s: set brightness %d: %v", b.Name(), *cfg.Brightness, err)
			}
		}
	}
	return d
}

// resizeCanvas allocates the canvas for the current rotation and resets the
// rotator. Callers hold canvasMu, or own the display exclusively.
func (d *Display) resizeCanvas() {
	t := d.target
	w, h, stride := t.Width, t.Height, t.Stride
	if d.rotation.SwapsAxes() {
		w, h, stride = t.Height, t.Width, t.Height
	}
	d.canvas = NewCanvas(t.Format, w, h, stride)
	d.comp.canvas = d.canvas
	d.rot.reset(d.rotation, h)

	d.infoMu.Lock()
	d.infoW, d.infoH, d.infoRot = w, h, d.rotation
	d.infoMu.Unlock()
}

// Close stops the render goroutine, wakes any ForceDraw waiter, destroys
// every item and closes the backend. It may be called from an animation
// callback.
func (d *Display) Close() error {
	d.drawMu.Lock()
	if !d.running {
		d.drawMu.Unlock()
		return nil
	}
	d.running = false
	d.drawDone.Broadcast()
	for d.drawing {
		d.drawDone.Wait()
	}
	// From an animation callback the render goroutine cannot be joined; it
	// exits on its own once the step returns.
	join := !d.stepping
	d.drawMu.Unlock()

	close(d.stop)
	if join {
		<-d.done
	}

	d.Clear()
	d.reg.mu.Lock()
	var saved []*Item
	for _, ctx := range d.contexts.Items() {
		saved = append(saved, ctx.list.drain()...)
	}
	d.contexts.Clear(nil)
	d.reg.mu.Unlock()
	for _, it := range saved {
		d.destroyItem(it)
	}

	if err := d.backend.Close(); err != nil {
		return &DeviceError{Backend: d.backend.Name(), Op: "close", Err: err}
	}
	return nil
}

// Size returns the canvas size: the device size with the axes swapped for
// 90 and 270 degree rotations.
func (d *Display) Size() (w, h int) {
	d.infoMu.Lock()
	defer d.infoMu.Unlock()
	return d.infoW, d.infoH
}

// Screen returns the canvas bounds.
func (d *Display) Screen() Rect {
	w, h := d.Size()
	return Rect{0, 0, w, h}
}

// Format returns the hardware pixel format.
func (d *Display) Format() PixelFormat {
	return d.target.Format
}

// Rotation returns the current rotation.
func (d *Display) Rotation() Rotation {
	d.infoMu.Lock()
	defer d.infoMu.Unlock()
	return d.infoRot
}

// SetRotation changes the rotation at runtime. The canvas is reallocated and
// the rotation cursors resized; items keep their coordinates.
func (d *Display) SetRotation(r Rotation) error {
	if !r.Valid() {
		return fmt.Errorf("fbui: invalid rotation %d", r)
	}
	d.canvasMu.Lock()
	d.rotation = r
	d.resizeCanvas()
	d.canvasMu.Unlock()
	d.RequestDraw()
	return nil
}

// Animator returns the display's animation engine. It is stepped by the
// render goroutine once per tick.
func (d *Display) Animator() *Animator {
	return d.anim
}

// Stats returns a copy of the render counters.
func (d *Display) Stats() FrameStats {
	d.infoMu.Lock()
	defer d.infoMu.Unlock()
	return d.info
}

// SetBackground sets the color the canvas is cleared to before each pass.
func (d *Display) SetBackground(c Color) {
	d.reg.mu.Lock()
	d.bg = c
	d.reg.mu.Unlock()
	d.RequestDraw()
}

// SetImageReleaser registers who takes back images of the given origin when
// their items are destroyed. A nil releaser removes the registration.
func (d *Display) SetImageReleaser(origin ImageOrigin, r ImageReleaser) {
	d.reg.mu.Lock()
	defer d.reg.mu.Unlock()
	if r == nil {
		d.releasers.Remove(int(origin), nil)
		return
	}
	d.releasers.Add(int(origin), r, nil)
}

// AddRect adds a rectangle at the given level.
func (d *Display) AddRect(level, x, y, w, h int, c Color) *Item {
	d.reg.mu.Lock()
	it := d.addRectLocked(level, x, y, w, h, c)
	d.reg.mu.Unlock()
	d.RequestDraw()
	return it
}

// AddImage adds an image with its top-left corner at (x, y).
func (d *Display) AddImage(level, x, y int, img *Image, origin ImageOrigin) *Item {
	d.reg.mu.Lock()
	it := d.addImageLocked(level, x, y, img, origin)
	d.reg.mu.Unlock()
	d.RequestDraw()
	return it
}

// AddLine adds a line from (x1, y1) to (x2, y2).
func (d *Display) AddLine(level, x1, y1, x2, y2, thickness int, c Color) *Item {
	d.reg.mu.Lock()
	it := d.addLineLocked(level, x1, y1, x2, y2, thickness, c)
	d.reg.mu.Unlock()
	d.RequestDraw()
	return it
}

// AddComposite registers a composite widget occupying the given box.
func (d *Display) AddComposite(level, x, y, w, h int, c Composite) *Item {
	d.reg.mu.Lock()
	it := d.addCompositeLocked(level, x, y, w, h, c)
	d.reg.mu.Unlock()
	d.RequestDraw()
	return it
}

func (d *Display) addRectLocked(level, x, y, w, h int, c Color) *Item {
	it := NewRectItem(x, y, w, h, c)
	return d.registerLocked(it, level)
}

func (d *Display) addImageLocked(level, x, y int, img *Image, origin ImageOrigin) *Item {
	if img != nil && img.Format != d.target.Format {
		logf("warning: image is %v, display is %v; it will not be drawn", img.Format, d.target.Format)
	}
	it := NewImageItem(x, y, img, origin)
	return d.registerLocked(it, level)
}

func (d *Display) addLineLocked(level, x1, y1, x2, y2, thickness int, c Color) *Item {
	it := NewLineItem(x1, y1, x2, y2, thickness, c)
	return d.registerLocked(it, level)
}

func (d *Display) addCompositeLocked(level, x, y, w, h int, c Composite) *Item {
	it := newItem(KindComposite, level, Rect{x, y, w, h})
	it.Composite = c
	return d.registerLocked(it, level)
}

func (d *Display) registerLocked(it *Item, level int) *Item {
	it.Level = level
	d.reg.active.insert(it)
	d.items.Add(int(it.ID), it, nil)
	return it
}

// ItemByID returns a registered item of the active context, or nil.
func (d *Display) ItemByID(id uint32) *Item {
	d.reg.mu.Lock()
	defer d.reg.mu.Unlock()
	it, _ := d.items.Get(int(id))
	if it == nil || it.list != d.reg.active {
		return nil
	}
	return it
}

// Len returns the number of items in the active context.
func (d *Display) Len() int {
	d.reg.mu.Lock()
	defer d.reg.mu.Unlock()
	return d.reg.active.count
}

// Items returns the active items in draw order.
func (d *Display) Items() []*Item {
	d.reg.mu.Lock()
	defer d.reg.mu.Unlock()
	out := make([]*Item, 0, d.reg.active.count)
	d.reg.active.each(func(it *Item) { out = append(out, it) })
	return out
}

// RemoveItem unlinks the item from its registry list and destroys it. Items
// that were never registered (composite sub-items, say) are only destroyed.
// Removing an item twice is reported and ignored.
func (d *Display) RemoveItem(it *Item) {
	if it == nil {
		return
	}
	d.reg.mu.Lock()
	d.removeLocked(it)
	d.reg.mu.Unlock()
	d.RequestDraw()
}

func (d *Display) removeLocked(it *Item) {
	if it.disposed {
		logf("warning: item %d (%v) removed twice", it.ID, it.Kind)
		return
	}
	if it.list != nil {
		it.list.unlink(it)
	}
	d.items.Remove(int(it.ID), nil)
	d.destroyItemLocked(it)
}

// destroyFinished removes the target of a finished DestroyItem animation.
// The item may already be gone; that is not reported.
func (d *Display) destroyFinished(it *Item) {
	d.reg.mu.Lock()
	if !it.disposed {
		d.removeLocked(it)
	}
	d.reg.mu.Unlock()
}

// Clear destroys every item of the active context.
func (d *Display) Clear() {
	d.reg.mu.Lock()
	for _, it := range d.reg.active.drain() {
		d.items.Remove(int(it.ID), nil)
		d.destroyItemLocked(it)
	}
	d.reg.mu.Unlock()
	d.RequestDraw()
}

// destroyItem takes the registry lock and releases an already unlinked item.
func (d *Display) destroyItem(it *Item) {
	d.reg.mu.Lock()
	d.items.Remove(int(it.ID), nil)
	d.destroyItemLocked(it)
	d.reg.mu.Unlock()
}

// destroyItemLocked cancels animations still targeting it, then releases its
// payload by kind.
func (d *Display) destroyItemLocked(it *Item) {
	if it.disposed {
		return
	}
	it.disposed = true
	d.anim.CancelFor(it, false)

	switch it.Kind {
	case KindImage:
		if it.Image != nil {
			if r, ok := d.releasers.Get(int(it.Origin)); ok {
				r.ReleaseImage(it.Image)
			}
		}
		it.Image = nil
	case KindComposite:
		if it.Composite != nil {
			it.Composite.Release()
		}
		it.Composite = nil
	}
	it.Parent = nil
}
