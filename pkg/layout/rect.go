package layout

// Rect is an axis-aligned pixel rectangle spanning [X0, X1) × [Y0, Y1).
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

// Width returns the horizontal span.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns the vertical span.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// Pad returns r expanded by m on all four sides.
func (r Rect) Pad(m int) Rect {
	return Rect{X0: r.X0 - m, Y0: r.Y0 - m, X1: r.X1 + m, Y1: r.Y1 + m}
}

// Overlaps reports whether r and o share interior area. The comparison is
// strict, so rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Within reports whether r lies inside [0, w] × [0, h].
func (r Rect) Within(w, h int) bool {
	return r.X0 >= 0 && r.Y0 >= 0 && r.X1 <= w && r.Y1 <= h
}
