package fbui

import "sync"

// itemList is one z-ordered doubly linked list of items. The active scene
// owns one; every pushed context keeps its own.
type itemList struct {
	head, tail *Item
	count      int
}

// registry guards the active item list. The render goroutine holds mu for a
// whole composite pass, so an item cannot be destroyed while it is drawn.
type registry struct {
	mu     sync.Mutex
	active *itemList
}

func newRegistry() *registry {
	return &registry{active: &itemList{}}
}

// insert links it into l keeping level order: before the first item with a
// strictly greater level, i.e. after every item of the same level.
func (l *itemList) insert(it *Item) {
	it.list = l
	l.count++

	if l.head == nil {
		it.prev, it.next = nil, nil
		l.head, l.tail = it, it
		return
	}

	// Walking back from the tail lands on the same slot as a head-first scan
	// for the first item with a greater level.
	at := l.tail
	for at != nil && at.Level > it.Level {
		at = at.prev
	}
	if at == nil {
		it.prev, it.next = nil, l.head
		l.head.prev = it
		l.head = it
		return
	}
	it.prev, it.next = at, at.next
	if at.next != nil {
		at.next.prev = it
	} else {
		l.tail = it
	}
	at.next = it
}

// unlink removes it from l in O(1).
func (l *itemList) unlink(it *Item) {
	if it.prev != nil {
		it.prev.next = it.next
	} else {
		l.head = it.next
	}
	if it.next != nil {
		it.next.prev = it.prev
	} else {
		l.tail = it.prev
	}
	it.prev, it.next, it.list = nil, nil, nil
	l.count--
}

// each calls fn for every item head to tail. fn must not unlink items.
func (l *itemList) each(fn func(*Item)) {
	for it := l.head; it != nil; it = it.next {
		fn(it)
	}
}

// drain unlinks every item and returns them in draw order.
func (l *itemList) drain() []*Item {
	out := make([]*Item, 0, l.count)
	for it := l.head; it != nil; {
		next := it.next
		it.prev, it.next, it.list = nil, nil, nil
		out = append(out, it)
		it = next
	}
	l.head, l.tail, l.count = nil, nil, 0
	return out
}
