// Package ebitenview shows an fbui display in a desktop window. It is meant
// for developing screens away from the device: the canvas is presented into
// an Ebitengine window at the device resolution, optionally scaled.
//
// Ebitengine must own the main goroutine, so the view is driven by Run:
//
//	v := ebitenview.New(480, 800)
//	d, err := fbui.Open(cfg, v)
//	...
//	go buildScreens(d)
//	if err := v.Run(); err != nil {
//		log.Fatal(err)
//	}
package ebitenview

import (
	"errors"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/fbui"
)

func init() {
	fbui.RegisterBackend("ebiten", func(cfg fbui.Config) (fbui.Backend, error) {
		return New(cfg.VirtualWidth, cfg.VirtualHeight), nil
	})
}

// View is an fbui backend backed by an Ebitengine window. It also
// implements ebiten.Game.
type View struct {
	Width  int
	Height int
	Title  string
	Scale  float64

	mu      sync.Mutex
	back    []byte // target buffer, written by the render goroutine
	front   []byte // last presented frame, read by Draw
	dirty   bool
	closing bool
	opened  bool
	screen  *ebiten.Image

	brightness int
}

// New returns a view of the given device size.
func New(w, h int) *View {
	return &View{Width: w, Height: h, Title: "fbui", Scale: 1, brightness: 255}
}

func (v *View) Name() string { return "ebiten" }

// Open allocates the device buffer. The window itself appears once Run is
// called.
func (v *View) Open() (fbui.Target, error) {
	if v.Width <= 0 || v.Height <= 0 {
		return fbui.Target{}, errors.New("ebitenview: window size not set")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.back = make([]byte, v.Width*v.Height*4)
	v.front = make([]byte, len(v.back))
	v.opened = true
	v.closing = false
	return fbui.Target{
		Pix:    v.back,
		Width:  v.Width,
		Height: v.Height,
		Stride: v.Width,
		Format: fbui.FormatABGR8888,
	}, nil
}

// Present copies the composed frame for the next Draw. Alpha is forced
// opaque and the backlight level is applied as a dim.
func (v *View) Present() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.opened {
		return errors.New("ebitenview: not open")
	}
	b := uint32(v.brightness)
	for i := 0; i < len(v.back); i += 4 {
		v.front[i] = byte(uint32(v.back[i]) * b / 255)
		v.front[i+1] = byte(uint32(v.back[i+1]) * b / 255)
		v.front[i+2] = byte(uint32(v.back[i+2]) * b / 255)
		v.front[i+3] = 0xFF
	}
	v.dirty = true
	return nil
}

// Close makes Run return after the current frame.
func (v *View) Close() error {
	v.mu.Lock()
	v.closing = true
	v.opened = false
	v.mu.Unlock()
	return nil
}

// SetBrightness dims the preview like a backlight would.
func (v *View) SetBrightness(level int) error {
	v.mu.Lock()
	v.brightness = min(max(level, 0), 255)
	v.mu.Unlock()
	return nil
}

// Run opens the window and blocks until it is closed or the backend is
// closed. It must be called from the main goroutine.
func (v *View) Run() error {
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	ebiten.SetWindowTitle(v.Title)
	ebiten.SetWindowSize(int(float64(v.Width)*scale), int(float64(v.Height)*scale))
	err := ebiten.RunGame(v)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update implements ebiten.Game.
func (v *View) Update() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closing {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (v *View) Draw(screen *ebiten.Image) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.screen == nil {
		v.screen = ebiten.NewImage(v.Width, v.Height)
	}
	if v.dirty {
		v.screen.WritePixels(v.front)
		v.dirty = false
	}
	screen.DrawImage(v.screen, nil)
}

// Layout implements ebiten.Game. The logical screen is always the device
// size; Ebitengine scales it into the window.
func (v *View) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.Width, v.Height
}
