package fbui

import (
	"encoding/json"
	"testing"
)

func TestColorText(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"#FF0000FF", Blue, true},
		{"#00FF00", Green, true},
		{"0x80112233", 0x80112233, true},
		{" #ffffff ", White, true},
		{"#12345", 0, false},
		{"red", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c Color
			err := c.UnmarshalText([]byte(tt.in))
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
			if tt.ok && c != tt.want {
				t.Errorf("got %v, want %v", c, tt.want)
			}
		})
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(struct{ C Color }{0x80102030})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"C":"#80102030"}` {
		t.Errorf("json = %s", data)
	}
}

func TestColorChannels(t *testing.T) {
	c := RGBA(0x11, 0x22, 0x33, 0x44)
	if c.R() != 0x11 || c.G() != 0x22 || c.B() != 0x33 || c.A() != 0x44 {
		t.Errorf("channels of %v", c)
	}
	if c.WithAlpha(0xFF) != 0xFF112233 {
		t.Errorf("WithAlpha = %v", c.WithAlpha(0xFF))
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", Rect{0, 0, 4, 4}, Rect{2, 2, 4, 4}, Rect{2, 2, 2, 2}},
		{"contained", Rect{0, 0, 10, 10}, Rect{3, 3, 2, 2}, Rect{3, 3, 2, 2}},
		{"touching", Rect{0, 0, 2, 2}, Rect{2, 0, 2, 2}, Rect{}},
		{"apart", Rect{0, 0, 1, 1}, Rect{5, 5, 1, 1}, Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersect(tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersect(tt.a); got != tt.want {
				t.Errorf("not symmetric: %v", got)
			}
		})
	}
	if !(Rect{1, 1, 0, 3}).Empty() || (Rect{0, 0, 1, 1}).Empty() {
		t.Error("Empty")
	}
	if !(Rect{1, 1, 2, 2}).Contains(2, 2) || (Rect{1, 1, 2, 2}).Contains(3, 1) {
		t.Error("Contains")
	}
}

func TestRotationValid(t *testing.T) {
	for _, r := range []Rotation{Rotate0, Rotate90, Rotate180, Rotate270} {
		if !r.Valid() {
			t.Errorf("%d invalid", r)
		}
	}
	if Rotation(45).Valid() || Rotation(-90).Valid() {
		t.Error("accepted a bad rotation")
	}
	if !Rotate90.SwapsAxes() || Rotate180.SwapsAxes() {
		t.Error("SwapsAxes")
	}
}
