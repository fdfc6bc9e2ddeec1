package fbui

import (
	"os"
	"sync"
	"testing"
	"time"
)

// waitChan fails the test when ch does not become ready within two seconds.
func waitChan[T any](t *testing.T, what string, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
	var zero T
	return zero
}

func TestForceDrawFromOnFinished(t *testing.T) {
	captureLog(t)
	d, mem := openMemory(t, FormatBGRA8888, 2, 1, testConfig())
	d.ForceDraw()

	returned := make(chan struct{})
	a := NewCallAnimation(5*time.Millisecond, Linear, nil)
	a.OnFinished = func() {
		d.AddRect(0, 0, 0, 1, 1, Green)
		d.ForceDraw()
		close(returned)
	}
	d.Animator().Add(a)

	waitChan(t, "ForceDraw inside OnFinished", returned)
	if got := mem.At(0, 0); got != Green {
		t.Errorf("pixel = %v, want %v", got, Green)
	}

	base := mem.Presents()
	d.AddRect(0, 1, 0, 1, 1, Red)
	waitFor(t, "render goroutine to keep presenting", func() bool { return mem.Presents() > base })
	if got := mem.At(1, 0); got != Red {
		t.Errorf("pixel = %v, want %v", got, Red)
	}
}

func TestScreenshotFromOnFinished(t *testing.T) {
	captureLog(t)
	cfg := testConfig()
	cfg.ScreenshotDir = t.TempDir()
	d, _ := openMemory(t, FormatBGRA8888, 2, 2, cfg)
	it := d.AddRect(0, 0, 0, 2, 2, Red)

	paths := make(chan string, 1)
	a := NewItemAnimation(it, 5*time.Millisecond, Decelerate)
	a.To.W = 1
	a.OnFinished = func() {
		path, err := d.Screenshot("slid")
		if err != nil {
			t.Errorf("Screenshot: %v", err)
		}
		paths <- path
	}
	d.Animator().Add(a)

	path := waitChan(t, "Screenshot inside OnFinished", paths)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot missing: %v", err)
	}
}

func TestCloseFromOnFinished(t *testing.T) {
	captureLog(t)
	mem := NewMemoryBackend(FormatBGRA8888, 1, 1)
	d, err := Open(testConfig(), mem)
	if err != nil {
		t.Fatal(err)
	}
	it := d.AddRect(0, 0, 0, 1, 1, Red)

	closed := make(chan error, 1)
	a := NewCallAnimation(5*time.Millisecond, Linear, nil)
	a.OnFinished = func() { closed <- d.Close() }
	d.Animator().Add(a)

	if err := waitChan(t, "Close inside OnFinished", closed); err != nil {
		t.Fatalf("Close: %v", err)
	}
	waitChan(t, "render goroutine exit", d.done)
	if !mem.Closed() || !it.IsDisposed() {
		t.Error("display not torn down")
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestCallbacksMutateDisplay(t *testing.T) {
	captureLog(t)
	d, mem := openMemory(t, FormatBGRA8888, 1, 1, testConfig())
	parent := d.AddRect(0, 0, 0, 1, 1, Red)

	d.PushContext()
	child := d.AddRect(0, 0, 0, 1, 1, Green)
	popped := make(chan struct{})
	a := NewCallAnimation(10*time.Millisecond, Linear, func(float64) {
		d.RemoveItem(child)
	})
	a.OnFinished = func() {
		d.PopContext()
		close(popped)
	}
	d.Animator().Add(a)

	waitChan(t, "PopContext inside OnFinished", popped)
	if !child.IsDisposed() || d.ContextDepth() != 0 {
		t.Errorf("child disposed=%v depth=%d", child.IsDisposed(), d.ContextDepth())
	}
	d.ForceDraw()
	if mem.At(0, 0) != Red || d.ItemByID(parent.ID) != parent {
		t.Error("parent context not restored")
	}
}

func TestCancelIfReadsDisplay(t *testing.T) {
	captureLog(t)
	d, _ := openMemory(t, FormatBGRA8888, 4, 4, testConfig())
	it := d.AddRect(0, 0, 0, 1, 1, Red)

	a := NewCallAnimation(time.Hour, Linear, nil)
	a.CancelIf = func() bool { return d.Len() == 0 }
	d.Animator().Add(a)

	d.RemoveItem(it)
	waitFor(t, "CancelIf to cancel", func() bool { return a.State() == AnimCancelled })
}

func TestCancelIfAgainstProducers(t *testing.T) {
	captureLog(t)
	d, _ := openMemory(t, FormatBGRA8888, 4, 4, testConfig())

	done := make(chan struct{})
	go func() {
		defer close(done)
		deadline := time.Now().Add(200 * time.Millisecond)
		for time.Now().Before(deadline) {
			it := d.AddRect(0, 0, 0, 2, 2, Red)
			a := NewItemAnimation(it, time.Second, Linear)
			a.To.X = 2
			a.CancelIf = func() bool { return d.Len() > 1000 || d.ItemByID(it.ID) == nil }
			d.Animator().Add(a)
			d.RemoveItem(it)
			d.Clear()
		}
	}()
	waitChan(t, "producer to finish without deadlock", done)
}

func TestCancelIfMayUseAnimator(t *testing.T) {
	m := NewAnimator()
	a := NewCallAnimation(time.Second, Linear, nil)
	a.CancelIf = func() bool { return m.Len() > 0 && m.Contains(a) }
	m.Add(a)

	stepped := make(chan struct{})
	go func() {
		m.Step(time.Millisecond)
		close(stepped)
	}()
	waitChan(t, "Step with a re-entrant CancelIf", stepped)
	if a.State() != AnimCancelled || m.Len() != 0 {
		t.Errorf("state=%v len=%d", a.State(), m.Len())
	}
}

func TestRequestDrawIgnoredOnceFrozen(t *testing.T) {
	captureLog(t)
	d, _ := openMemory(t, FormatBGRA8888, 1, 1, testConfig())
	d.ForceDraw()
	d.Freeze(true)
	defer d.Freeze(false)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.RequestDraw()
		}()
	}
	wg.Wait()
	if d.drawRequested.Load() != 0 {
		t.Error("request recorded while frozen")
	}
}
