package fbui

import "testing"

func countColor(cv *Canvas, c Color) int {
	n := 0
	for y := 0; y < cv.Height; y++ {
		for x := 0; x < cv.Width; x++ {
			if cv.At(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestDrawLineHorizontal(t *testing.T) {
	c := newTestCompositor(FormatBGRA8888, 8, 3)
	c.begin(Black)
	c.drawItem(NewLineItem(1, 1, 6, 1, 1, Red), c.canvas.Bounds())

	for x := 0; x < 8; x++ {
		want := Black
		if x >= 1 && x <= 6 {
			want = Red
		}
		if got := c.canvas.At(x, 1); got != want {
			t.Errorf("x=%d: %v, want %v", x, got, want)
		}
	}
	if n := countColor(c.canvas, Red); n != 6 {
		t.Errorf("red pixels = %d, want 6", n)
	}
}

func TestDrawLineDiagonal(t *testing.T) {
	c := newTestCompositor(FormatBGRA8888, 4, 4)
	c.begin(Black)
	c.drawItem(NewLineItem(3, 3, 0, 0, 1, Red), c.canvas.Bounds())
	for i := 0; i < 4; i++ {
		if c.canvas.At(i, i) != Red {
			t.Errorf("(%d,%d) not on the diagonal", i, i)
		}
	}
	if n := countColor(c.canvas, Red); n != 4 {
		t.Errorf("red pixels = %d, want 4", n)
	}
}

func TestDrawLineThickness(t *testing.T) {
	c := newTestCompositor(FormatBGRA8888, 5, 5)
	c.begin(Black)
	c.drawItem(NewLineItem(2, 0, 2, 4, 3, Red), c.canvas.Bounds())

	// A vertical line of thickness 3 spans columns 1..3.
	if n := countColor(c.canvas, Red); n != 15 {
		t.Errorf("red pixels = %d, want 15", n)
	}
	for y := 0; y < 5; y++ {
		if c.canvas.At(0, y) != Black || c.canvas.At(4, y) != Black {
			t.Errorf("row %d: line spilled past its thickness", y)
		}
	}
}

func TestDrawLinePartiallyClipped(t *testing.T) {
	c := newTestCompositor(FormatBGRA8888, 4, 1)
	c.begin(Black)
	c.drawItem(NewLineItem(-10, 0, 2, 0, 1, Red), c.canvas.Bounds())
	want := []Color{Red, Red, Red, Black}
	for x, w := range want {
		if got := c.canvas.At(x, 0); got != w {
			t.Errorf("x=%d: %v, want %v", x, got, w)
		}
	}
}

func TestClipSegment(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		ok             bool
		want           [4]int
	}{
		{"inside", 1, 1, 8, 8, true, [4]int{1, 1, 8, 8}},
		{"crosses left", -5, 5, 5, 5, true, [4]int{0, 5, 5, 5}},
		{"crosses both", -5, 2, 20, 2, true, [4]int{0, 2, 9, 2}},
		{"above", 0, -3, 9, -3, false, [4]int{}},
		{"outside corner", 12, 12, 20, 20, false, [4]int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipSegment(tt.x0, tt.y0, tt.x1, tt.y1, r)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && [4]int{x0, y0, x1, y1} != tt.want {
				t.Errorf("clipped = %v, want %v", [4]int{x0, y0, x1, y1}, tt.want)
			}
		})
	}
}
