package fbui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Defaults applied by DefaultConfig and LoadConfig.
const (
	DefaultFramePeriod    = 16 * time.Millisecond
	DefaultFbdevPath      = "/dev/graphics/fb0"
	DefaultBrightnessPath = "/sys/class/leds/lcd-backlight/brightness"
	DefaultScreenshotDir  = "screenshots"
)

// Config holds display settings. It is usually read from a JSON file next to
// the boot binary.
type Config struct {
	Rotation         Rotation `json:"rotation"`
	Brightness       *int     `json:"brightness"` // nil leaves the backlight alone
	FramePeriodMS    int      `json:"frame_period_ms"`
	ContinuousUpdate bool     `json:"continuous_update"`
	Background       Color    `json:"background"`
	Debug            bool     `json:"debug"`
	ScreenshotDir    string   `json:"screenshot_dir"`

	// Backends lists backend names in priority order for OpenConfigured.
	Backends       []string `json:"backends"`
	FbdevPath      string   `json:"fbdev_path"`
	BrightnessPath string   `json:"brightness_path"`

	// Device size of the virtual backends: memory, ebiten and terminal.
	VirtualWidth  int `json:"virtual_width"`
	VirtualHeight int `json:"virtual_height"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() Config {
	return Config{
		Rotation:       Rotate0,
		FramePeriodMS:  int(DefaultFramePeriod / time.Millisecond),
		Background:     Black,
		ScreenshotDir:  DefaultScreenshotDir,
		Backends:       []string{"fbdev", "memory"},
		FbdevPath:      DefaultFbdevPath,
		BrightnessPath: DefaultBrightnessPath,
		VirtualWidth:   480,
		VirtualHeight:  800,
	}
}

// LoadConfig reads a JSON config file over the defaults. A missing file is not
// an error: the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values a display cannot run with.
func (c Config) Validate() error {
	if !c.Rotation.Valid() {
		return fmt.Errorf("rotation %d: must be 0, 90, 180 or 270", c.Rotation)
	}
	if c.FramePeriodMS < 0 {
		return fmt.Errorf("frame_period_ms %d: must not be negative", c.FramePeriodMS)
	}
	if c.Brightness != nil && (*c.Brightness < 0 || *c.Brightness > 255) {
		return fmt.Errorf("brightness %d: must be between 0 and 255", *c.Brightness)
	}
	return nil
}

// FramePeriod returns the render cadence, falling back to the default for a
// zero value.
func (c Config) FramePeriod() time.Duration {
	if c.FramePeriodMS <= 0 {
		return DefaultFramePeriod
	}
	return time.Duration(c.FramePeriodMS) * time.Millisecond
}
