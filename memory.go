package fbui

import (
	"encoding/binary"
	"sync"
)

func init() {
	RegisterBackend("memory", func(cfg Config) (Backend, error) {
		return NewMemoryBackend(FormatBGRA8888, cfg.VirtualWidth, cfg.VirtualHeight), nil
	})
}

// MemoryBackend is a virtual surface. It is the backend of choice for tests
// and headless runs, and the last resort when no hardware opens.
type MemoryBackend struct {
	Format PixelFormat
	Width  int
	Height int
	Stride int

	// OpenErr, when set, makes Open fail with it.
	OpenErr error
	// PresentErr, when set, makes Present fail with it.
	PresentErr error

	mu         sync.Mutex
	pix        []byte
	presents   int
	brightness int
	closed     bool
}

// NewMemoryBackend returns a w×h virtual surface without row padding.
func NewMemoryBackend(f PixelFormat, w, h int) *MemoryBackend {
	return &MemoryBackend{Format: f, Width: w, Height: h, Stride: w, brightness: -1}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Open() (Target, error) {
	if m.OpenErr != nil {
		return Target{}, m.OpenErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stride := max(m.Stride, m.Width)
	m.pix = make([]byte, stride*m.Height*m.Format.BytesPerPixel())
	m.closed = false
	return Target{Pix: m.pix, Width: m.Width, Height: m.Height, Stride: stride, Format: m.Format}, nil
}

func (m *MemoryBackend) Present() error {
	if m.PresentErr != nil {
		return m.PresentErr
	}
	m.mu.Lock()
	m.presents++
	m.mu.Unlock()
	return nil
}

func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

// SetBrightness records the requested level.
func (m *MemoryBackend) SetBrightness(level int) error {
	m.mu.Lock()
	m.brightness = level
	m.mu.Unlock()
	return nil
}

// Brightness returns the last level set, or -1.
func (m *MemoryBackend) Brightness() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.brightness
}

// Presents returns how many times Present succeeded.
func (m *MemoryBackend) Presents() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.presents
}

// Closed reports whether Close was called after the last Open.
func (m *MemoryBackend) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Pixel returns the raw hardware pixel at device coordinates (x, y) as last
// copied by the compositor.
func (m *MemoryBackend) Pixel(x, y int) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height || m.pix == nil {
		return 0
	}
	bpp := m.Format.BytesPerPixel()
	off := (y*max(m.Stride, m.Width) + x) * bpp
	if bpp == 2 {
		return uint32(binary.NativeEndian.Uint16(m.pix[off:]))
	}
	return binary.NativeEndian.Uint32(m.pix[off:])
}

// At returns the decoded color at device coordinates (x, y).
func (m *MemoryBackend) At(x, y int) Color {
	return DecodeColor(m.Format, m.Pixel(x, y))
}
