package snake

import "github.com/vovakirdan/ulo-snake/internal/core"

// Snapshot captures the engine state for rendering, determinism testing and replay.
// It owns its slices; mutating a Snapshot never touches the engine.
type Snapshot struct {
	Tick    uint64
	Level   int
	Score   int
	Body    []core.Point // Head first
	Heading Direction
	Food    core.Point
	HasFood bool
	Width   int
	Height  int
	State   State
}

// Head returns the head cell of the snapshot.
func (s Snapshot) Head() core.Point {
	if len(s.Body) == 0 {
		return core.Point{}
	}
	return s.Body[0]
}

// Len returns the snake length.
func (s Snapshot) Len() int {
	return len(s.Body)
}

// Snapshot returns the current engine snapshot.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Tick:    e.ticks,
		Level:   e.level,
		Score:   e.score,
		Body:    e.Body(),
		Heading: e.heading,
		Food:    e.food,
		HasFood: e.hasFood,
		Width:   e.opts.Width,
		Height:  e.opts.Height,
		State:   e.state,
	}
}
