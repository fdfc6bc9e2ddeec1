// Package fbdev is the fbui backend for Linux framebuffer devices
// (/dev/fb0, /dev/graphics/fb0). Importing it registers the "fbdev" backend
// for fbui.OpenConfigured.
package fbdev

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/phanxgames/fbui"
)

// ErrUnsupported is returned by Open on platforms without framebuffer
// devices.
var ErrUnsupported = errors.New("fbdev: not supported on this platform")

func init() {
	fbui.RegisterBackend("fbdev", func(cfg fbui.Config) (fbui.Backend, error) {
		return New(cfg.FbdevPath, cfg.BrightnessPath), nil
	})
}

// Device is a memory-mapped framebuffer device.
type Device struct {
	Path           string
	BrightnessPath string

	dev device
}

// New returns an unopened device. An empty brightnessPath disables backlight
// control.
func New(path, brightnessPath string) *Device {
	if path == "" {
		path = fbui.DefaultFbdevPath
	}
	return &Device{Path: path, BrightnessPath: brightnessPath}
}

func (d *Device) Name() string { return "fbdev" }

// Open maps the device and reports its visible geometry and pixel format.
func (d *Device) Open() (fbui.Target, error) {
	return d.dev.open(d.Path)
}

// Present makes the mapped buffer visible.
func (d *Device) Present() error {
	return d.dev.present()
}

// Close unmaps and closes the device.
func (d *Device) Close() error {
	return d.dev.close()
}

// SetBrightness writes level to the backlight control file.
func (d *Device) SetBrightness(level int) error {
	if d.BrightnessPath == "" {
		return errors.New("fbdev: no brightness control configured")
	}
	if err := os.WriteFile(d.BrightnessPath, []byte(strconv.Itoa(level)+"\n"), 0o644); err != nil {
		return fmt.Errorf("fbdev: set brightness: %w", err)
	}
	return nil
}

// Brightness reads the current backlight level.
func (d *Device) Brightness() (int, error) {
	if d.BrightnessPath == "" {
		return 0, errors.New("fbdev: no brightness control configured")
	}
	data, err := os.ReadFile(d.BrightnessPath)
	if err != nil {
		return 0, fmt.Errorf("fbdev: read brightness: %w", err)
	}
	level, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("fbdev: parse brightness: %w", err)
	}
	return level, nil
}

// bitfield mirrors struct fb_bitfield.
type bitfield struct {
	Offset   uint32
	Length   uint32
	MSBRight uint32
}

// varScreenInfo mirrors struct fb_var_screeninfo.
type varScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp bitfield
	Nonstd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	Pixclock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HsyncLen, VsyncLen       uint32
	Sync                     uint32
	Vmode                    uint32
	Rotate                   uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

// fixScreenInfo mirrors struct fb_fix_screeninfo.
type fixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// pixelFormat maps the channel layout the driver reports to a canvas format.
func pixelFormat(v *varScreenInfo) (fbui.PixelFormat, error) {
	switch v.BitsPerPixel {
	case 16:
		if v.Red.Offset == 11 && v.Green.Length == 6 && v.Blue.Offset == 0 {
			return fbui.FormatRGB565, nil
		}
	case 32:
		switch {
		case v.Red.Offset == 16 && v.Blue.Offset == 0:
			return fbui.FormatBGRA8888, nil
		case v.Red.Offset == 0 && v.Blue.Offset == 16 && v.Transp.Length == 0:
			return fbui.FormatRGBX8888, nil
		case v.Red.Offset == 0 && v.Blue.Offset == 16:
			return fbui.FormatABGR8888, nil
		}
	}
	return 0, fmt.Errorf("fbdev: unsupported layout: %d bpp, red@%d green@%d/%d blue@%d alpha/%d",
		v.BitsPerPixel, v.Red.Offset, v.Green.Offset, v.Green.Length, v.Blue.Offset, v.Transp.Length)
}

// target builds the fbui target for a mapped buffer.
func target(mem []byte, v *varScreenInfo, f *fixScreenInfo) (fbui.Target, error) {
	format, err := pixelFormat(v)
	if err != nil {
		return fbui.Target{}, err
	}
	bpp := format.BytesPerPixel()
	stride := int(f.LineLength) / bpp
	if stride == 0 {
		stride = int(v.XResVirtual)
	}
	size := stride * int(v.YRes) * bpp
	if len(mem) < size {
		return fbui.Target{}, fmt.Errorf("fbdev: mapping of %d bytes smaller than one %dx%d page", len(mem), stride, v.YRes)
	}
	return fbui.Target{
		Pix:    mem[:size],
		Width:  int(v.XRes),
		Height: int(v.YRes),
		Stride: stride,
		Format: format,
	}, nil
}
