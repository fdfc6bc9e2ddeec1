// Package termview presents an fbui display in a terminal. Each cell shows
// two device pixels with an upper half block, so a terminal of 80×25 cells
// previews an 80×50 device.
package termview

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/fbui"
)

func init() {
	fbui.RegisterBackend("terminal", func(cfg fbui.Config) (fbui.Backend, error) {
		return New(nil, cfg.VirtualWidth, cfg.VirtualHeight), nil
	})
}

const upperHalf = '▀'

// View is an fbui backend drawing into a tcell screen. The device buffer is
// sampled down to the screen size on every present.
type View struct {
	Width  int
	Height int

	mu     sync.Mutex
	screen tcell.Screen
	owned  bool
	pix    []byte
	opened bool
}

// New returns a view of a w×h device. When screen is nil, Open creates and
// initializes the terminal screen and Close finalizes it. A zero size takes
// the terminal size at Open.
func New(screen tcell.Screen, w, h int) *View {
	return &View{screen: screen, Width: w, Height: h}
}

func (v *View) Name() string { return "terminal" }

// Screen returns the tcell screen, for reading input events.
func (v *View) Screen() tcell.Screen {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.screen
}

func (v *View) Open() (fbui.Target, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.opened {
		return fbui.Target{}, errors.New("termview: already open")
	}
	if v.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fbui.Target{}, fmt.Errorf("termview: new screen: %w", err)
		}
		if err := s.Init(); err != nil {
			return fbui.Target{}, fmt.Errorf("termview: init screen: %w", err)
		}
		v.screen, v.owned = s, true
	}
	if v.Width <= 0 || v.Height <= 0 {
		cols, rows := v.screen.Size()
		v.Width, v.Height = cols, rows*2
	}
	if v.Width <= 0 || v.Height <= 0 {
		return fbui.Target{}, errors.New("termview: terminal has no size")
	}
	v.pix = make([]byte, v.Width*v.Height*4)
	v.opened = true
	return fbui.Target{
		Pix:    v.pix,
		Width:  v.Width,
		Height: v.Height,
		Stride: v.Width,
		Format: fbui.FormatBGRA8888,
	}, nil
}

// at reads device pixel (x, y) from the BGRA buffer.
func (v *View) at(x, y int) tcell.Color {
	i := (y*v.Width + x) * 4
	return tcell.NewRGBColor(int32(v.pix[i+2]), int32(v.pix[i+1]), int32(v.pix[i]))
}

// Present draws the device buffer into the terminal, nearest-neighbour
// scaled to the screen.
func (v *View) Present() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.opened {
		return errors.New("termview: not open")
	}
	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	for cy := 0; cy < rows; cy++ {
		top := (2 * cy) * v.Height / (2 * rows)
		bottom := (2*cy + 1) * v.Height / (2 * rows)
		for cx := 0; cx < cols; cx++ {
			x := cx * v.Width / cols
			style := tcell.StyleDefault.Foreground(v.at(x, top)).Background(v.at(x, bottom))
			v.screen.SetContent(cx, cy, upperHalf, nil, style)
		}
	}
	v.screen.Show()
	return nil
}

func (v *View) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.opened {
		return nil
	}
	v.opened = false
	if v.owned {
		v.screen.Fini()
		v.screen, v.owned = nil, false
	}
	return nil
}
