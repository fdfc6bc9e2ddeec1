package fbui

// pixel is the element type of a canvas or hardware target row.
type pixel interface {
	~uint16 | ~uint32
}

// rotator copies the canvas into the hardware target. For the quarter turns
// it keeps one read cursor per output column; the cursor array is sized on
// every reset so a rotation or geometry change never reuses a stale one.
type rotator struct {
	rotation Rotation
	cursors  []int
}

// reset prepares the rotator for a canvas of srcH rows.
func (r *rotator) reset(rot Rotation, srcH int) {
	r.rotation = rot
	if !rot.SwapsAxes() {
		r.cursors = nil
		return
	}
	if cap(r.cursors) < srcH {
		r.cursors = make([]int, srcH)
	}
	r.cursors = r.cursors[:srcH]
}

// copyRotated writes the w×h canvas src (row stride srcStride) into dst (row
// stride dstStride). For the quarter turns dst receives h columns and w rows.
func copyRotated[T pixel](r *rotator, dst []T, dstStride int, src []T, w, h, srcStride int) {
	switch r.rotation {
	case Rotate0:
		rotate0(dst, dstStride, src, w, h, srcStride)
	case Rotate90:
		if len(r.cursors) != h {
			r.reset(Rotate90, h)
		}
		rotate90(dst, dstStride, src, w, h, srcStride, r.cursors)
	case Rotate180:
		rotate180(dst, dstStride, src, w, h, srcStride)
	case Rotate270:
		if len(r.cursors) != h {
			r.reset(Rotate270, h)
		}
		rotate270(dst, dstStride, src, w, h, srcStride, r.cursors)
	default:
		logf("warning: unsupported rotation %d", r.rotation)
	}
}

// rotate0 is a straight copy; one block copy when both strides agree.
func rotate0[T pixel](dst []T, dstStride int, src []T, w, h, srcStride int) {
	if dstStride == srcStride {
		copy(dst, src[:srcStride*h])
		return
	}
	for y := 0; y < h; y++ {
		copy(dst[y*dstStride:y*dstStride+w], src[y*srcStride:y*srcStride+w])
	}
}

// rotate180 walks the source backwards while the destination walks forwards.
func rotate180[T pixel](dst []T, dstStride int, src []T, w, h, srcStride int) {
	for y := 0; y < h; y++ {
		row := dst[y*dstStride : y*dstStride+w]
		s := (h-1-y)*srcStride + w - 1
		for x := range row {
			row[x] = src[s]
			s--
		}
	}
}

// rotate90 turns the canvas clockwise: output row y is source column y read
// from the bottom row up.
func rotate90[T pixel](dst []T, dstStride int, src []T, w, h, srcStride int, cursors []int) {
	for x := 0; x < h; x++ {
		cursors[x] = (h - 1 - x) * srcStride
	}
	for y := 0; y < w; y++ {
		row := dst[y*dstStride : y*dstStride+h]
		for x := range row {
			row[x] = src[cursors[x]]
			cursors[x]++
		}
	}
}

// rotate270 turns the canvas counter-clockwise: output row y is source column
// w-1-y read from the top row down.
func rotate270[T pixel](dst []T, dstStride int, src []T, w, h, srcStride int, cursors []int) {
	for x := 0; x < h; x++ {
		cursors[x] = x*srcStride + w - 1
	}
	for y := 0; y < w; y++ {
		row := dst[y*dstStride : y*dstStride+h]
		for x := range row {
			row[x] = src[cursors[x]]
			cursors[x]--
		}
	}
}
