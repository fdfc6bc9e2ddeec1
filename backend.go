package fbui

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"unsafe"

	"github.com/phanxgames/fbui/container"
)

// ErrNoDisplay is returned by Open when no backend could be opened.
var ErrNoDisplay = errors.New("fbui: no display backend could be opened")

// Target describes the device-facing buffer a backend exposes. Pix holds
// Height rows of Stride pixels in Format; only the first Width pixels of each
// row are visible.
type Target struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
	Format PixelFormat
}

func (t Target) validate() error {
	switch {
	case !t.Format.Valid():
		return fmt.Errorf("unsupported pixel format %v", t.Format)
	case t.Width <= 0 || t.Height <= 0:
		return fmt.Errorf("invalid size %dx%d", t.Width, t.Height)
	case t.Stride < t.Width:
		return fmt.Errorf("stride %d smaller than width %d", t.Stride, t.Width)
	case len(t.Pix) < t.Stride*t.Height*t.Format.BytesPerPixel():
		return fmt.Errorf("buffer of %d bytes too small for %dx%d", len(t.Pix), t.Stride, t.Height)
	}
	return nil
}

// Backend is the hardware boundary. Open is called once; Present pushes the
// target buffer (already filled by the compositor) to the screen.
type Backend interface {
	Name() string
	Open() (Target, error)
	Present() error
	Close() error
}

// BrightnessSetter is implemented by backends that can drive a backlight.
type BrightnessSetter interface {
	SetBrightness(level int) error
}

// DeviceError reports a backend failure.
type DeviceError struct {
	Backend string
	Op      string
	Err     error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("fbui: %s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// BackendFactory builds a backend from configuration.
type BackendFactory func(cfg Config) (Backend, error)

var (
	factoriesMu sync.Mutex
	factories   container.StrMap[BackendFactory]
)

// RegisterBackend makes a backend available to OpenConfigured under name.
// Registering the same name twice replaces the earlier factory.
func RegisterBackend(name string, f BackendFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	factories.Add(name, f, nil)
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	names := append([]string(nil), factories.Keys()...)
	sort.Strings(names)
	return names
}

func lookupBackend(name string) (BackendFactory, bool) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	return factories.Get(name)
}

// targetView reinterprets the byte buffer of a target as pixels.
func targetView[T pixel](b []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if len(b) < size {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), len(b)/size)
}
