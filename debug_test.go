package fbui

import (
	"strings"
	"testing"
)

func TestLogfPrefix(t *testing.T) {
	log := captureLog(t)
	logf("value %d", 7)
	if got := log.String(); got != "[fbui] value 7\n" {
		t.Errorf("log = %q", got)
	}
}

func TestDebugLogsFrames(t *testing.T) {
	log := captureLog(t)
	cfg := testConfig()
	cfg.Debug = true
	d, _ := openMemory(t, FormatBGRA8888, 1, 1, cfg)
	d.AddRect(0, 0, 0, 1, 1, Red)
	d.ForceDraw()
	if !strings.Contains(log.String(), "draw ops: 1") {
		t.Errorf("frame stats not logged: %q", log.String())
	}
}

func TestDebugOffIsQuiet(t *testing.T) {
	log := captureLog(t)
	d, _ := openMemory(t, FormatBGRA8888, 1, 1, testConfig())
	d.ForceDraw()
	if strings.Contains(log.String(), "frame ") {
		t.Errorf("frame stats logged with debug off: %q", log.String())
	}
}

func TestStatsCountDrawOps(t *testing.T) {
	captureLog(t)
	d, _ := openMemory(t, FormatBGRA8888, 4, 4, testConfig())
	d.AddRect(0, 0, 0, 2, 2, Red)
	d.AddRect(0, 10, 10, 2, 2, Red)
	d.AddLine(0, -5, -5, -1, -1, 1, Red)
	d.ForceDraw()
	if got := d.Stats().DrawOps; got != 1 {
		t.Errorf("draw ops = %d, want 1", got)
	}
	if d.Stats().Frames == 0 || d.Stats().Presents == 0 {
		t.Error("counters not published")
	}
}
