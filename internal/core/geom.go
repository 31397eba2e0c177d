// Package core provides the grid, input and screen primitives shared by the
// simulation engine and the terminal front end. It has no external
// dependencies so the game logic stays pure and testable.
package core

// Point is an integer cell coordinate on the board.
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Wrap maps the point onto a width x height torus.
func (p Point) Wrap(width, height int) Point {
	return Point{X: Wrap(p.X, width), Y: Wrap(p.Y, height)}
}

// Wrap reduces v into [0, n). Negative values wrap from the far edge.
func Wrap(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Rect represents an axis-aligned box on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
