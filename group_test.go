package fbui

import "testing"

func TestGroupDrawsClipped(t *testing.T) {
	captureLog(t)
	d, mem := openMemory(t, FormatBGRA8888, 4, 2, testConfig())
	g := NewGroup()
	g.AddRect(0, 0, 4, 2, Green)
	g.AddLine(0, 1, 3, 1, 1, Red)
	d.AddComposite(0, 1, 0, 2, 2, g)
	d.ForceDraw()

	want := [2][4]Color{
		{Black, Green, Green, Black},
		{Black, Red, Red, Black},
	}
	for y, row := range want {
		for x, w := range row {
			if got := mem.At(x, y); got != w {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, w)
			}
		}
	}
}

func TestGroupRemoveKeepsOrder(t *testing.T) {
	g := NewGroup()
	a := g.AddRect(0, 0, 1, 1, Red)
	b := g.AddRect(0, 0, 1, 1, Green)
	c := g.AddRect(0, 0, 1, 1, Blue)

	if !g.Remove(b) {
		t.Fatal("Remove returned false")
	}
	if g.Remove(b) {
		t.Error("second Remove returned true")
	}
	items := g.Items()
	if len(items) != 2 || items[0] != a || items[1] != c {
		t.Errorf("items = %v, want [a c]", items)
	}
	if !b.IsDisposed() {
		t.Error("removed sub-item not disposed")
	}
}

func TestGroupReleaseGivesImagesBack(t *testing.T) {
	captureLog(t)
	d, _ := openMemory(t, FormatBGRA8888, 2, 2, testConfig())
	r := &countingReleaser{}
	g := NewGroup()
	g.Releaser = r
	img := NewImage(FormatBGRA8888, 1, 1)
	g.AddImage(0, 0, img, OriginDecoded)
	g.AddRect(0, 0, 1, 1, Red)

	it := d.AddComposite(0, 0, 0, 2, 2, g)
	d.RemoveItem(it)

	if len(r.released) != 1 || r.released[0] != img {
		t.Errorf("released %d images, want the group's one image", len(r.released))
	}
	if g.Len() != 0 {
		t.Errorf("len = %d after release", g.Len())
	}
}
