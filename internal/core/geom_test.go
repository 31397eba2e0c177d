package core

import "testing"

func TestWrap(t *testing.T) {
	tests := []struct {
		v, n, expected int
	}{
		{0, 24, 0},
		{23, 24, 23},
		{24, 24, 0},   // right edge wraps to 0
		{-1, 24, 23},  // left edge wraps to far side
		{-25, 24, 23}, // more than one lap
		{49, 24, 1},   // more than one lap forward
		{5, 0, 0},     // degenerate grid
	}

	for _, tc := range tests {
		if got := Wrap(tc.v, tc.n); got != tc.expected {
			t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.v, tc.n, got, tc.expected)
		}
	}
}

func TestPointWrap(t *testing.T) {
	p := Point{X: 23, Y: 0}.Add(Point{X: 1, Y: -1}).Wrap(24, 24)
	if p != (Point{X: 0, Y: 23}) {
		t.Errorf("Wrap() = %+v, expected (0, 23)", p)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}

	if r.Right() != 30 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), expected (30, 25)", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}
