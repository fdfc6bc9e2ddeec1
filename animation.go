package fbui

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tanema/gween"

	"github.com/phanxgames/fbui/container"
)

var animIDCounter atomic.Uint32

// AnimState is the lifecycle position of an animation.
type AnimState uint8

const (
	AnimScheduled AnimState = iota // waiting for its start offset
	AnimRunning
	AnimFinished  // OnFinished has fired
	AnimCancelled // removed early; OnFinished never fires
)

// Animation mutates an item's box over time, or calls a function with the
// eased progress. Create one with NewItemAnimation or NewCallAnimation, set
// the optional hooks, then hand it to Animator.Add.
//
// Fields must not be changed after Add.
type Animation struct {
	ID           uint32
	Start        time.Duration // delay before the first visible step
	Duration     time.Duration
	Interpolator Interpolator

	// CancelIf is polled on every step; returning true cancels the
	// animation. It runs with no lock held.
	CancelIf func() bool
	// OnStep receives linear progress in [0, 1].
	OnStep func(progress float64)
	// OnFinished fires exactly once, after the last step.
	//
	// The callbacks run on the render goroutine with no lock held. They may
	// call any Display method, including ForceDraw, Screenshot and Close;
	// they must not block on another goroutine that is waiting for a frame.
	OnFinished func()

	// Item animations.
	Item        *Item
	To          Rect
	DestroyItem bool

	// Call animations receive the eased progress.
	Call func(value float64)

	elapsed time.Duration
	state   AnimState
	from    Rect
	tweens  [4]*gween.Tween
}

// NewItemAnimation animates it from its box at the moment the animation
// starts running to To, which defaults to the current box. Set To (or any of
// its fields) before adding.
func NewItemAnimation(it *Item, d time.Duration, interp Interpolator) *Animation {
	a := &Animation{ID: animIDCounter.Add(1), Duration: d, Interpolator: interp, Item: it}
	if it != nil {
		a.To = it.Rect
	}
	return a
}

// NewCallAnimation calls fn with the eased progress on every step.
func NewCallAnimation(d time.Duration, interp Interpolator, fn func(value float64)) *Animation {
	return &Animation{ID: animIDCounter.Add(1), Duration: d, Interpolator: interp, Call: fn}
}

// State returns where the animation is in its lifecycle. It is only
// meaningful from the goroutine stepping the Animator.
func (a *Animation) State() AnimState {
	return a.state
}

// Elapsed returns the time accumulated since Add, including the start delay.
func (a *Animation) Elapsed() time.Duration {
	return a.elapsed
}

// remaining is how long until the animation finishes.
func (a *Animation) remaining() time.Duration {
	return max(a.Start+a.Duration-a.elapsed, 0)
}

func (a *Animation) progress() float64 {
	if a.Duration <= 0 {
		return 1
	}
	t := float64(a.elapsed-a.Start) / float64(a.Duration)
	return min(max(t, 0), 1)
}

// begin records the starting box and builds one tween per field that moves.
func (a *Animation) begin() {
	a.from = a.Item.Rect
	fn := a.Interpolator.Func()
	from := [4]int{a.from.X, a.from.Y, a.from.W, a.from.H}
	to := [4]int{a.To.X, a.To.Y, a.To.W, a.To.H}
	secs := float32(a.Duration.Seconds())
	for i := range from {
		if from[i] != to[i] {
			a.tweens[i] = gween.New(float32(from[i]), float32(to[i]), secs, fn)
		}
	}
}

// apply writes the box for progress t.
func (a *Animation) apply(t float64) {
	it := a.Item
	if t >= 1 {
		for i, f := range [4]*int{&it.X, &it.Y, &it.W, &it.H} {
			if a.tweens[i] != nil {
				*f = [4]int{a.To.X, a.To.Y, a.To.W, a.To.H}[i]
			}
		}
		return
	}
	at := float32((a.elapsed - a.Start).Seconds())
	for i, f := range [4]*int{&it.X, &it.Y, &it.W, &it.H} {
		if tw := a.tweens[i]; tw != nil {
			v, _ := tw.Set(at)
			*f = int(math.Round(float64(v)))
		}
	}
}

// stepped is one animation's share of a Step, carried out of the lock.
type stepped struct {
	a        *Animation
	t        float64
	starting bool
	finished bool
}

// Animator owns the active timeline and a stack of saved ones. It is stepped
// once per frame by the render goroutine; any goroutine may add or cancel.
type Animator struct {
	mu       sync.Mutex
	timeline container.List[*Animation]
	saved    container.List[*container.List[*Animation]]

	// Set by the owning Display.
	itemLock sync.Locker
	onChange func()
	destroy  func(*Item)

	scratch []stepped
}

// NewAnimator returns a standalone animator. Displays create their own; see
// Display.Animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// Add schedules a on the active timeline.
func (m *Animator) Add(a *Animation) {
	if a == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timeline.Append(a)
}

// AddAfterAll schedules a to start once every animation currently on the
// timeline has finished.
func (m *Animator) AddAfterAll(a *Animation) {
	if a == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var wait time.Duration
	for _, o := range m.timeline.Items() {
		wait = max(wait, o.remaining())
	}
	a.Start += wait
	m.timeline.Append(a)
}

// Len returns the number of animations on the active timeline.
func (m *Animator) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeline.Len()
}

// Contains reports whether a is on the active timeline.
func (m *Animator) Contains(a *Animation) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeline.Contains(a)
}

// Cancel removes the animation with the given id. With onlyNotStarted it
// only does so while the animation is still waiting for its start offset.
func (m *Animator) Cancel(id uint32, onlyNotStarted bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancelLocked(func(a *Animation) bool { return a.ID == id }, onlyNotStarted) > 0
}

// CancelFor removes every animation targeting it and returns how many were
// removed.
func (m *Animator) CancelFor(it *Item, onlyNotStarted bool) int {
	if it == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cancelLocked(func(a *Animation) bool { return a.Item == it }, onlyNotStarted)
}

func (m *Animator) cancelLocked(match func(*Animation) bool, onlyNotStarted bool) int {
	return m.timeline.RemoveFunc(func(a *Animation) bool {
		if !match(a) || (onlyNotStarted && a.state != AnimScheduled) {
			return false
		}
		a.state = AnimCancelled
		return true
	}, nil)
}

// Push saves the active timeline and starts an empty one.
func (m *Animator) Push() {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := &container.List[*Animation]{}
	saved.MoveFrom(&m.timeline, nil)
	m.saved.Append(saved)
}

// Pop cancels everything on the active timeline and restores the one saved
// by the matching Push.
func (m *Animator) Pop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.saved.Len()
	if n == 0 {
		logf("warning: animation Pop without a matching Push")
		return
	}
	m.timeline.Clear(func(a *Animation) { a.state = AnimCancelled })
	saved := m.saved.At(n - 1)
	m.saved.RemoveAtStable(n-1, nil)
	m.timeline.MoveFrom(saved, nil)
}

// Depth returns the number of saved timelines.
func (m *Animator) Depth() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved.Len()
}

// pollCancelIf evaluates the CancelIf predicates of the active timeline with
// no lock held, so a predicate may read Display state.
func (m *Animator) pollCancelIf() map[*Animation]struct{} {
	m.mu.Lock()
	var preds []*Animation
	for _, a := range m.timeline.Items() {
		if a.CancelIf != nil {
			preds = append(preds, a)
		}
	}
	m.mu.Unlock()

	var cancelled map[*Animation]struct{}
	for _, a := range preds {
		if !a.CancelIf() {
			continue
		}
		if cancelled == nil {
			cancelled = make(map[*Animation]struct{})
		}
		cancelled[a] = struct{}{}
	}
	return cancelled
}

// Step advances every animation on the active timeline by dt. Item fields
// are written under the item lock; CancelIf and the callbacks run with no
// lock held, in timeline order, OnStep before Call before OnFinished.
func (m *Animator) Step(dt time.Duration) {
	cancelled := m.pollCancelIf()

	m.mu.Lock()
	steps := m.scratch[:0]
	m.timeline.RemoveFunc(func(a *Animation) bool {
		if _, ok := cancelled[a]; ok {
			a.state = AnimCancelled
			return true
		}
		a.elapsed += dt
		if a.elapsed < a.Start {
			return false
		}
		s := stepped{a: a, t: a.progress(), starting: a.state == AnimScheduled}
		a.state = AnimRunning
		if s.t >= 1 {
			a.state = AnimFinished
			s.finished = true
		}
		steps = append(steps, s)
		return s.finished
	}, nil)
	m.scratch = steps[:0]
	lock := m.itemLock
	m.mu.Unlock()

	if len(steps) == 0 {
		return
	}

	if lock != nil {
		lock.Lock()
	}
	for _, s := range steps {
		a := s.a
		if a.Item == nil || a.Item.disposed {
			continue
		}
		if s.starting {
			a.begin()
		}
		a.apply(s.t)
	}
	if lock != nil {
		lock.Unlock()
	}

	for _, s := range steps {
		a := s.a
		if a.OnStep != nil {
			a.OnStep(s.t)
		}
		if a.Call != nil {
			a.Call(a.Interpolator.Apply(s.t))
		}
		if !s.finished {
			continue
		}
		if a.OnFinished != nil {
			a.OnFinished()
		}
		if a.DestroyItem && a.Item != nil && m.destroy != nil {
			m.destroy(a.Item)
		}
	}
	clear(steps)

	if m.onChange != nil {
		m.onChange()
	}
}
