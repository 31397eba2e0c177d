// Package snake implements the deterministic Snake simulation: a snake on a
// wraparound grid that eats food, grows and dies only on itself.
//
// The Engine is single-threaded. Callers that drive it from several
// goroutines must serialize access (see session.Runner).
package snake

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/ulo-snake/internal/core"
)

// Direction represents the snake's heading.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the one-cell offset for the heading. Y grows downward.
func (d Direction) Delta() core.Point {
	switch d {
	case DirUp:
		return core.Point{X: 0, Y: -1}
	case DirDown:
		return core.Point{X: 0, Y: 1}
	case DirLeft:
		return core.Point{X: -1, Y: 0}
	default:
		return core.Point{X: 1, Y: 0}
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Outcome is what happened during one Step.
type Outcome int

const (
	// OutcomeIdle means the engine is not running and nothing moved.
	OutcomeIdle Outcome = iota
	OutcomeMoved
	OutcomeAte
	OutcomeCollided
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeCollided:
		return "collided"
	default:
		return "idle"
	}
}

// StepResult is returned by Step.
type StepResult struct {
	Outcome    Outcome
	ScoreDelta int // Non-zero only for OutcomeAte
}

// State is the engine lifecycle state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateCollided State = "collided"
)

// Options configures the board.
type Options struct {
	Width         int
	Height        int
	PointsPerFood int
}

// DefaultOptions returns a 24x24 board worth 10 points per food.
func DefaultOptions() Options {
	return Options{
		Width:         24,
		Height:        24,
		PointsPerFood: 10,
	}
}

// Engine owns the grid state of one session.
type Engine struct {
	opts Options
	rng  *rand.Rand

	body    []core.Point // Head at index 0
	heading Direction
	food    core.Point
	hasFood bool

	level int
	score int
	ticks uint64
	state State
}

// NewEngine creates an idle engine. A nil rng is replaced by a fixed-seed source.
func NewEngine(opts Options, rng *rand.Rand) *Engine {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.PointsPerFood <= 0 {
		opts.PointsPerFood = def.PointsPerFood
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Engine{
		opts:  opts,
		rng:   rng,
		level: MinLevel,
		state: StateIdle,
	}
}

// Reset starts a fresh grid for level: one segment at the spawn cell,
// heading right, food placed. Out-of-range levels are clamped.
func (e *Engine) Reset(level int) {
	e.level = core.Clamp(level, MinLevel, MaxLevel)
	e.score = 0
	e.ticks = 0
	e.body = []core.Point{e.SpawnPoint()}
	e.heading = DirRight
	e.placeFood()
	e.state = StateRunning
}

// SpawnPoint returns the fixed cell a new snake starts on (board centre).
func (e *Engine) SpawnPoint() core.Point {
	return core.Point{X: e.opts.Width / 2, Y: e.opts.Height / 2}
}

// Acknowledge returns a collided engine to idle once the game over was handled.
func (e *Engine) Acknowledge() {
	if e.state == StateCollided {
		e.state = StateIdle
	}
}

// SetHeading changes the heading unless it would reverse the snake.
// Reversal and unknown directions are silently ignored.
func (e *Engine) SetHeading(d Direction) {
	if !d.Valid() || d == e.heading.Opposite() {
		return
	}
	e.heading = d
}

// Step advances the snake one cell.
func (e *Engine) Step() StepResult {
	if e.state != StateRunning || len(e.body) == 0 {
		return StepResult{Outcome: OutcomeIdle}
	}

	newHead := e.body[0].Add(e.heading.Delta()).Wrap(e.opts.Width, e.opts.Height)
	growing := e.hasFood && newHead == e.food

	// The tail cell is vacated this step unless the snake grows.
	checkLen := len(e.body)
	if !growing {
		checkLen--
	}
	for i := range checkLen {
		if e.body[i] == newHead {
			e.state = StateCollided
			return StepResult{Outcome: OutcomeCollided}
		}
	}

	e.ticks++
	next := make([]core.Point, 0, len(e.body)+1)
	next = append(next, newHead)
	if growing {
		next = append(next, e.body...)
	} else {
		next = append(next, e.body[:len(e.body)-1]...)
	}
	e.body = next

	if !growing {
		return StepResult{Outcome: OutcomeMoved}
	}

	delta := e.level * e.opts.PointsPerFood
	e.score += delta
	e.placeFood()
	return StepResult{Outcome: OutcomeAte, ScoreDelta: delta}
}

// placeFood draws the food cell uniformly from the cells the body does not
// cover. A full board leaves the engine without food.
func (e *Engine) placeFood() {
	occupied := make(map[core.Point]bool, len(e.body))
	for _, seg := range e.body {
		occupied[seg] = true
	}

	free := make([]core.Point, 0, e.opts.Width*e.opts.Height-len(occupied))
	for y := range e.opts.Height {
		for x := range e.opts.Width {
			p := core.Point{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		e.hasFood = false
		e.food = core.Point{X: -1, Y: -1}
		return
	}
	e.food = free[e.rng.Intn(len(free))]
	e.hasFood = true
}

// Occupies reports whether any body segment covers p.
func (e *Engine) Occupies(p core.Point) bool {
	for _, seg := range e.body {
		if seg == p {
			return true
		}
	}
	return false
}

// Body returns a copy of the body, head first.
func (e *Engine) Body() []core.Point {
	out := make([]core.Point, len(e.body))
	copy(out, e.body)
	return out
}

// Head returns the head cell.
func (e *Engine) Head() core.Point {
	if len(e.body) == 0 {
		return core.Point{}
	}
	return e.body[0]
}

// Food returns the food cell and whether food is on the board.
func (e *Engine) Food() (core.Point, bool) {
	return e.food, e.hasFood
}

// Heading returns the current heading.
func (e *Engine) Heading() Direction {
	return e.heading
}

// Level returns the level the engine was reset for.
func (e *Engine) Level() int {
	return e.level
}

// Score returns the points accumulated since the last Reset.
func (e *Engine) Score() int {
	return e.score
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Width returns the board width in cells.
func (e *Engine) Width() int {
	return e.opts.Width
}

// Height returns the board height in cells.
func (e *Engine) Height() int {
	return e.opts.Height
}

// DebugState returns a string representation of the engine state.
func (e *Engine) DebugState() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tick: %d, Score: %d, Level: %d, State: %s\n", e.ticks, e.score, e.level, e.state))
	b.WriteString(fmt.Sprintf("Snake len: %d, Direction: %s\n", len(e.body), e.heading))
	if len(e.body) > 0 {
		b.WriteString(fmt.Sprintf("Head: (%d, %d), Food: (%d, %d)\n", e.body[0].X, e.body[0].Y, e.food.X, e.food.Y))
	}
	return b.String()
}
