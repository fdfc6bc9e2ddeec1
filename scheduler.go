package fbui

import (
	"time"
)

// start launches the render goroutine.
func (d *Display) start() {
	d.drawMu.Lock()
	d.running = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	d.drawMu.Unlock()
	d.drawRequested.Store(1)
	go d.loop()
}

// loop ticks once per frame period. Sleep overshoot is carried into the next
// wait so the cadence does not drift.
func (d *Display) loop() {
	defer close(d.done)

	period := d.cfg.FramePeriod()
	timer := time.NewTimer(period)
	defer timer.Stop()

	last := time.Now()
	wait := period
	for {
		select {
		case <-d.stop:
			return
		case <-timer.C:
		}
		now := time.Now()
		dt := now.Sub(last)
		last = now

		d.tick(dt)

		overshoot := dt - wait
		wait = period - max(overshoot, 0)
		wait = max(wait, 0)
		timer.Reset(wait)
	}
}

// tick advances animations, then composes and presents when a draw has been
// requested. With ContinuousUpdate on, an idle tick re-presents the last
// frame. Animation callbacks run during the step with no lock held.
func (d *Display) tick(dt time.Duration) {
	d.drawMu.Lock()
	if !d.running {
		d.drawMu.Unlock()
		return
	}
	d.stepping = true
	d.drawMu.Unlock()

	d.anim.Step(dt)

	d.drawMu.Lock()
	d.stepping = false
	if !d.running || d.drawing {
		d.drawMu.Unlock()
		return
	}
	compose := d.drawRequested.CompareAndSwap(1, 0)
	if !compose && !d.cfg.ContinuousUpdate {
		d.drawMu.Unlock()
		return
	}
	d.drawing = true
	d.drawMu.Unlock()

	d.pass(compose)
}

// pass presents one frame, composing it first when compose is set. The
// caller has set drawing; pass clears it and wakes ForceDraw and Close.
func (d *Display) pass(compose bool) {
	d.canvasMu.Lock()
	if compose {
		d.compose()
	}
	d.present(compose)
	stats := d.publish()
	d.canvasMu.Unlock()
	if compose {
		d.debugLog(stats)
	}

	d.drawMu.Lock()
	d.drawing = false
	d.drawDone.Broadcast()
	d.drawMu.Unlock()
}

// compose runs one composite pass. The registry lock is held for the whole
// pass. canvasMu is held by the caller.
func (d *Display) compose() {
	start := time.Now()
	d.reg.mu.Lock()
	bounds := d.canvas.Bounds()
	d.comp.begin(d.bg)
	d.reg.active.each(func(it *Item) {
		d.comp.drawItem(it, bounds)
	})
	d.reg.mu.Unlock()
	d.stats.Frames++
	d.stats.DrawOps = d.comp.drawOps
	d.stats.ComposeTime = time.Since(start)
}

// publish copies the render counters to where Stats reads them. canvasMu is
// held by the caller.
func (d *Display) publish() FrameStats {
	d.infoMu.Lock()
	d.info = d.stats
	d.infoMu.Unlock()
	return d.stats
}

// present copies the canvas into the hardware target through the rotator
// and hands it to the backend. canvasMu is held by the caller.
func (d *Display) present(copyCanvas bool) {
	start := time.Now()
	if copyCanvas {
		cv, t := d.canvas, d.target
		if cv.Pix16 != nil {
			copyRotated(&d.rot, targetView[uint16](t.Pix), t.Stride, cv.Pix16, cv.Width, cv.Height, cv.Stride)
		} else {
			copyRotated(&d.rot, targetView[uint32](t.Pix), t.Stride, cv.Pix, cv.Width, cv.Height, cv.Stride)
		}
	}
	if err := d.backend.Present(); err != nil {
		logf("%v", &DeviceError{Backend: d.backend.Name(), Op: "present", Err: err})
		return
	}
	d.stats.Presents++
	d.stats.PresentTime = time.Since(start)
}

// RequestDraw asks for a composite pass on the next tick. Requests coalesce:
// any number made between two ticks produce one pass. While the display is
// frozen it does nothing.
func (d *Display) RequestDraw() {
	d.drawMu.Lock()
	if d.frozen == 0 {
		d.drawRequested.CompareAndSwap(0, 1)
	}
	d.drawMu.Unlock()
}

// ForceDraw composes and presents a frame that includes every change made
// before the call, and returns once it is on screen. It ignores Freeze. When
// a pass is already running, ForceDraw waits for it and then runs its own on
// the calling goroutine, so it is safe from animation callbacks. It returns
// immediately when the display is closed.
func (d *Display) ForceDraw() {
	d.drawMu.Lock()
	for d.running && d.drawing {
		d.drawDone.Wait()
	}
	if !d.running {
		d.drawMu.Unlock()
		return
	}
	d.drawing = true
	d.drawRequested.Store(0)
	d.drawMu.Unlock()

	d.pass(true)
}

// Freeze suspends (true) or resumes (false) RequestDraw. Calls nest: the
// display thaws when every Freeze(true) has been matched. A request made
// just before the outermost freeze is swallowed when it thaws, so the batch
// of changes made while frozen is drawn by the caller's ForceDraw or next
// RequestDraw only.
func (d *Display) Freeze(on bool) {
	d.drawMu.Lock()
	defer d.drawMu.Unlock()
	if on {
		d.frozen++
		return
	}
	if d.frozen == 0 {
		logf("warning: Freeze(false) without a matching Freeze(true)")
		return
	}
	d.frozen--
	if d.frozen == 0 {
		d.drawRequested.CompareAndSwap(1, 0)
	}
}

// Frozen reports whether RequestDraw is currently suspended.
func (d *Display) Frozen() bool {
	d.drawMu.Lock()
	defer d.drawMu.Unlock()
	return d.frozen > 0
}
