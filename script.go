package fbui

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single action in a screen script.
type scriptStep struct {
	Action   string   `json:"action"`
	Label    string   `json:"label,omitempty"`
	Ms       int      `json:"ms,omitempty"`
	Rotation Rotation `json:"rotation,omitempty"`
	Color    Color    `json:"color,omitempty"`
}

// screenScript is the top-level JSON structure of a script file.
type screenScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScreenScript sequences draws, waits and screenshots against a display for
// automated visual checks of boot screens. Actions:
//
//	screenshot  label       force a draw and save the canvas
//	wait        ms          sleep; animations keep running
//	draw                    ForceDraw
//	freeze, thaw            Freeze(true), Freeze(false)
//	rotate      rotation    SetRotation
//	background  color       SetBackground
type ScreenScript struct {
	steps  []scriptStep
	cursor int
}

// LoadScreenScript parses a JSON screen script.
func LoadScreenScript(jsonData []byte) (*ScreenScript, error) {
	var script screenScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse screen script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse screen script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "screenshot", "wait", "draw", "freeze", "thaw", "background":
		case "rotate":
			if !st.Rotation.Valid() {
				return nil, fmt.Errorf("parse screen script: step %d: invalid rotation %d", i, st.Rotation)
			}
		default:
			return nil, fmt.Errorf("parse screen script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScreenScript{steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (s *ScreenScript) Done() bool {
	return s.cursor >= len(s.steps)
}

// Run executes the remaining steps in order and returns the paths of the
// screenshots taken. It stops at the first failing step.
func (s *ScreenScript) Run(d *Display) ([]string, error) {
	var shots []string
	for !s.Done() {
		path, err := s.step(d)
		if err != nil {
			return shots, err
		}
		if path != "" {
			shots = append(shots, path)
		}
	}
	return shots, nil
}

// step executes one action and returns the screenshot path, if any.
func (s *ScreenScript) step(d *Display) (string, error) {
	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "screenshot":
		path, err := d.Screenshot(st.Label)
		if err != nil {
			return "", fmt.Errorf("step %d: %w", s.cursor-1, err)
		}
		return path, nil
	case "wait":
		time.Sleep(time.Duration(st.Ms) * time.Millisecond)
	case "draw":
		d.ForceDraw()
	case "freeze":
		d.Freeze(true)
	case "thaw":
		d.Freeze(false)
	case "rotate":
		if err := d.SetRotation(st.Rotation); err != nil {
			return "", fmt.Errorf("step %d: %w", s.cursor-1, err)
		}
	case "background":
		d.SetBackground(st.Color)
	}
	return "", nil
}
