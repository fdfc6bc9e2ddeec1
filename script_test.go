package fbui

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadScreenScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "rotate", "rotation": 90},
			{"action": "wait", "ms": 3},
			{"action": "background", "color": "#00FF00"}
		]
	}`)

	script, err := LoadScreenScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(script.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(script.steps))
	}
	if script.steps[0].Action != "screenshot" || script.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if script.steps[1].Rotation != Rotate90 {
		t.Error("step 1 mismatch")
	}
	if script.steps[2].Ms != 3 {
		t.Error("step 2 mismatch")
	}
	if script.steps[3].Color != Green {
		t.Error("step 3 mismatch")
	}
}

func TestLoadScreenScriptInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
		{"bad rotation", `{"steps": [{"action": "rotate", "rotation": 45}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScreenScript([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScreenScriptRun(t *testing.T) {
	captureLog(t)
	cfg := testConfig()
	cfg.ScreenshotDir = t.TempDir()
	d, mem := openMemory(t, FormatBGRA8888, 2, 1, cfg)
	d.AddRect(0, 0, 0, 1, 1, Red)

	script, err := LoadScreenScript([]byte(`{"steps": [
		{"action": "screenshot", "label": "first"},
		{"action": "background", "color": "#0000FF"},
		{"action": "rotate", "rotation": 180},
		{"action": "draw"},
		{"action": "screenshot", "label": "second"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	shots, err := script.Run(d)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !script.Done() {
		t.Error("script not done")
	}
	if len(shots) != 2 || !strings.HasSuffix(shots[0], "_first.png") || !strings.HasSuffix(shots[1], "_second.png") {
		t.Errorf("shots = %v", shots)
	}
	if filepath.Dir(shots[0]) != cfg.ScreenshotDir {
		t.Errorf("screenshot written to %s", filepath.Dir(shots[0]))
	}
	if mem.At(1, 0) != Red || mem.At(0, 0) != Blue {
		t.Errorf("device = %v %v, want the rotated frame", mem.At(0, 0), mem.At(1, 0))
	}
}

func TestScreenScriptFreeze(t *testing.T) {
	captureLog(t)
	d, _ := openMemory(t, FormatBGRA8888, 1, 1, testConfig())
	script, err := LoadScreenScript([]byte(`{"steps": [{"action": "freeze"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := script.Run(d); err != nil {
		t.Fatal(err)
	}
	if !d.Frozen() {
		t.Error("display not frozen")
	}
}
