package fbui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	logMu  sync.Mutex
	logOut io.Writer = os.Stderr
)

// SetLogOutput redirects diagnostic output. Pass io.Discard to silence it.
func SetLogOutput(w io.Writer) {
	logMu.Lock()
	logOut = w
	logMu.Unlock()
}

// logf writes one "[fbui]"-prefixed line. Contract violations are reported
// here and then ignored by the caller.
func logf(format string, args ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	_, _ = fmt.Fprintf(logOut, "[fbui] "+format+"\n", args...)
}

// FrameStats holds counters and timings of the render goroutine.
type FrameStats struct {
	Frames      uint64        // composite passes
	Presents    uint64        // successful presents, including re-presents
	DrawOps     int           // items that produced output in the last pass
	ComposeTime time.Duration // last composite pass
	PresentTime time.Duration // last present
}

// debugLog prints the stats of the pass that just finished.
func (d *Display) debugLog(stats FrameStats) {
	if !d.cfg.Debug {
		return
	}
	logf("frame %d: compose: %v | present: %v | draw ops: %d",
		stats.Frames, stats.ComposeTime, stats.PresentTime, stats.DrawOps)
}
