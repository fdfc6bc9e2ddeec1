package fbui

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Clone copies the canvas as composed by the last pass into dst and returns
// it. A nil dst, or one whose geometry no longer matches, is replaced by a
// new canvas. Safe to call from any goroutine.
func (d *Display) Clone(dst *Canvas) *Canvas {
	d.canvasMu.Lock()
	defer d.canvasMu.Unlock()
	return d.canvas.CopyTo(dst)
}

// Screenshot forces a draw and writes the canvas to the configured
// screenshot directory as a timestamped PNG. It returns the file path.
func (d *Display) Screenshot(label string) (string, error) {
	d.ForceDraw()

	dir := d.cfg.ScreenshotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: mkdir %s: %w", dir, err)
	}
	stamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
	if err := d.SaveCanvas(path); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// SaveCanvas writes the current canvas to path. Files ending in ".bmp" are
// written as BMP, everything else as PNG.
func (d *Display) SaveCanvas(path string) error {
	img := d.Clone(nil).ToNRGBA()
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return writeImage(path, img, bmp.Encode)
	}
	return writeImage(path, img, png.Encode)
}

// writeImage encodes img into a temporary file next to path and renames it
// into place, so an interrupted write never leaves a truncated image behind.
func writeImage(path string, img image.Image, encode func(w io.Writer, m image.Image) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".fbui-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()
	err = f.Chmod(0o644)
	if err == nil {
		err = encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// maxLabelLen keeps screenshot names short enough for FAT boot partitions.
const maxLabelLen = 48

// sanitizeLabel turns a label into a file name fragment: unsafe characters
// become underscores, runs of them collapse to one, and the result is
// trimmed and capped at maxLabelLen. Labels with nothing usable left become
// "unlabeled".
func sanitizeLabel(label string) string {
	var b strings.Builder
	under := false
	for _, r := range label {
		if b.Len() >= maxLabelLen {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
			under = false
		case !under:
			b.WriteByte('_')
			under = true
		}
	}
	out := strings.Trim(b.String(), "_.")
	if out == "" {
		return "unlabeled"
	}
	return out
}
