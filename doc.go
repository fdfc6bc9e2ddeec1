// Package fbui is a retained-mode compositor for raw framebuffers.
//
// fbui owns one hardware surface, keeps a z-ordered registry of drawable
// items (rectangles, images, lines and composite widgets), blends them into
// an off-screen canvas in the surface's native pixel format and rotates the
// result onto the screen from a dedicated render goroutine. It needs no
// window system, GPU or compositor, which makes it suitable for boot-time
// and recovery environments.
//
// # Quick start
//
// Open a display on the first backend that works, add items, and let the
// render goroutine pick them up:
//
//	cfg := fbui.DefaultConfig()
//	fb := fbdev.New(cfg.FbdevPath, cfg.BrightnessPath)
//	d, err := fbui.Open(cfg, fb, fbui.NewMemoryBackend(fbui.FormatBGRA8888, 480, 800))
//	if err != nil {
//		// errors.Is(err, fbui.ErrNoDisplay): fall back to text output
//	}
//	defer d.Close()
//
//	d.AddRect(0, 0, 0, 480, 800, fbui.RGBA(0x20, 0x20, 0x20, 0xFF))
//	d.AddRect(1, 40, 40, 400, 60, fbui.Red)
//
// Every Add and Remove requests a draw. Requests coalesce, so many changes
// between two ticks produce one composite pass.
//
// # Items and levels
//
// Items are drawn in level order; items of the same level are drawn in the
// order they were added. An item's Rect may be changed between frames; to do
// it without racing the render goroutine, mutate inside [Display.Batch]:
//
//	d.Batch(func(b *fbui.Batch) {
//		bar.W = progress
//		b.Remove(spinner)
//	})
//
// A [Composite] takes one slot in the registry and draws sub-items it owns.
// [Group] is the stock implementation.
//
// # Draw control
//
// [Display.RequestDraw] is asynchronous. [Display.ForceDraw] blocks until a
// pass that started after the call has been presented. [Display.Freeze]
// suspends requests while a screen is being rebuilt; calls nest.
//
// # Contexts
//
// [Display.PushContext] parks the current item tree and starts an empty one
// for a modal sub-screen; [Display.PopContext] destroys the sub-screen and
// restores the parent. [Animator.Push] and [Animator.Pop] do the same for the
// animation timeline.
//
// # Animation
//
//	a := fbui.NewItemAnimation(card, 300*time.Millisecond, fbui.Decelerate)
//	a.To.X = 0
//	a.OnFinished = func() { log.Println("card in place") }
//	d.Animator().Add(a)
//
// The animator is stepped by the render goroutine before each composite
// pass, so an animation's effect is always visible in the frame of the same
// tick.
//
// # Backends
//
// A [Backend] exposes a device buffer and presents it. Package fbdev drives
// Linux framebuffer devices, package ebitenview opens a desktop preview
// window, package termview draws into a terminal, and [MemoryBackend] is a
// virtual surface for tests. [OpenConfigured] builds backends by name from
// [Config.Backends].
//
// # Screen scripts
//
// [LoadScreenScript] parses a JSON list of steps (screenshot, wait, draw,
// freeze, thaw, rotate, background) that [ScreenScript.Run] replays against
// a display, for visual regression checks of boot screens.
package fbui
