package fbui

import "testing"

func listOrder(l *itemList) []*Item {
	var out []*Item
	l.each(func(it *Item) { out = append(out, it) })
	return out
}

func TestInsertLevelStable(t *testing.T) {
	l := &itemList{}
	a := &Item{Level: 2}
	b := &Item{Level: 1}
	c := &Item{Level: 1}
	d := &Item{Level: 3}
	for _, it := range []*Item{a, b, c, d} {
		l.insert(it)
	}

	want := []*Item{b, c, a, d}
	got := listOrder(l)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: level %d, want level %d", i, got[i].Level, want[i].Level)
		}
	}
	if l.count != 4 || l.head != b || l.tail != d {
		t.Errorf("count/head/tail = %d/%p/%p", l.count, l.head, l.tail)
	}
}

func TestInsertAtHead(t *testing.T) {
	l := &itemList{}
	hi := &Item{Level: 5}
	lo := &Item{Level: -1}
	l.insert(hi)
	l.insert(lo)
	if l.head != lo || lo.next != hi || hi.prev != lo || l.tail != hi {
		t.Error("lower level not linked at head")
	}
}

func TestUnlink(t *testing.T) {
	tests := []struct {
		name   string
		remove int
	}{
		{"head", 0},
		{"middle", 1},
		{"tail", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &itemList{}
			items := []*Item{{Level: 0}, {Level: 0}, {Level: 0}}
			for _, it := range items {
				l.insert(it)
			}
			l.unlink(items[tt.remove])

			got := listOrder(l)
			if len(got) != 2 || l.count != 2 {
				t.Fatalf("len = %d count = %d, want 2", len(got), l.count)
			}
			for _, it := range got {
				if it == items[tt.remove] {
					t.Fatal("removed item still linked")
				}
			}
			if items[tt.remove].Registered() {
				t.Error("removed item still reports Registered")
			}
			if l.head.prev != nil || l.tail.next != nil {
				t.Error("dangling end links")
			}
		})
	}
}

func TestUnlinkLast(t *testing.T) {
	l := &itemList{}
	it := &Item{}
	l.insert(it)
	l.unlink(it)
	if l.head != nil || l.tail != nil || l.count != 0 {
		t.Error("list not empty after removing its only item")
	}
}

func TestDrain(t *testing.T) {
	l := &itemList{}
	a, b := &Item{Level: 1}, &Item{Level: 0}
	l.insert(a)
	l.insert(b)
	out := l.drain()
	if len(out) != 2 || out[0] != b || out[1] != a {
		t.Fatalf("drain order wrong")
	}
	if l.count != 0 || l.head != nil || a.Registered() || b.Registered() {
		t.Error("items still linked after drain")
	}
}
