package session

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/ulo-snake/internal/games/snake"
)

// Simulation is the part of the engine a Runner drives.
type Simulation interface {
	SetHeading(d snake.Direction)
	Step() snake.StepResult
	Snapshot() snake.Snapshot
}

// Frame is published after every tick that changed the board.
type Frame struct {
	Snapshot snake.Snapshot
	Result   snake.StepResult
	Final    bool // Set on the collision frame; no frames follow it
}

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	Period      time.Duration // Zero disables the internal ticker; use Tick
	MailboxSize int
	FrameBuffer int
}

type eventKind int

const (
	eventHeading eventKind = iota
	eventTick
	eventPause
	eventSnapshot
)

type event struct {
	kind    eventKind
	heading snake.Direction
	reply   chan snake.Snapshot
}

// Runner is the actor that owns one engine. Headings and ticks go through a
// single mailbox, so they are applied in the order they were sent.
type Runner struct {
	sim     Simulation
	period  time.Duration
	mailbox chan event
	frames  chan Frame
	paused  bool

	done     chan struct{}
	doneOnce sync.Once
}

// NewRunner creates a runner for sim. Call Run to start it.
func NewRunner(sim Simulation, cfg RunnerConfig) *Runner {
	if cfg.MailboxSize < 1 {
		cfg.MailboxSize = 16
	}
	if cfg.FrameBuffer < 1 {
		cfg.FrameBuffer = 4
	}
	return &Runner{
		sim:     sim,
		period:  cfg.Period,
		mailbox: make(chan event, cfg.MailboxSize),
		frames:  make(chan Frame, cfg.FrameBuffer),
		done:    make(chan struct{}),
	}
}

// Frames returns the frame stream. It is closed when Run returns.
func (r *Runner) Frames() <-chan Frame {
	return r.frames
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Turn queues a heading change. It returns false once the runner stopped.
func (r *Runner) Turn(d snake.Direction) bool {
	return r.send(event{kind: eventHeading, heading: d})
}

// TryTurn queues a heading change without waiting. It returns false when the
// mailbox is full or the runner stopped; the turn is dropped.
func (r *Runner) TryTurn(d snake.Direction) bool {
	return r.trySend(event{kind: eventHeading, heading: d})
}

// Tick queues one simulation step.
func (r *Runner) Tick() bool {
	return r.send(event{kind: eventTick})
}

// TogglePause pauses or resumes the simulation. Input is ignored while paused.
func (r *Runner) TogglePause() bool {
	return r.send(event{kind: eventPause})
}

// TryTogglePause is TogglePause without waiting for mailbox space.
func (r *Runner) TryTogglePause() bool {
	return r.trySend(event{kind: eventPause})
}

// Snapshot asks the runner for the current board.
func (r *Runner) Snapshot() (snake.Snapshot, bool) {
	reply := make(chan snake.Snapshot, 1)
	if !r.send(event{kind: eventSnapshot, reply: reply}) {
		return snake.Snapshot{}, false
	}
	select {
	case snap := <-reply:
		return snap, true
	case <-r.done:
		return snake.Snapshot{}, false
	}
}

func (r *Runner) send(ev event) bool {
	select {
	case <-r.done:
		return false
	default:
	}

	select {
	case r.mailbox <- ev:
		return true
	case <-r.done:
		return false
	}
}

func (r *Runner) trySend(ev event) bool {
	select {
	case <-r.done:
		return false
	default:
	}

	select {
	case r.mailbox <- ev:
		return true
	default:
		return false
	}
}

// Run processes the mailbox until the snake collides (returns nil) or ctx is
// cancelled (returns ctx.Err()).
func (r *Runner) Run(ctx context.Context) error {
	defer func() {
		r.doneOnce.Do(func() {
			close(r.done)
		})
		close(r.frames)
	}()

	r.publish(Frame{Snapshot: r.sim.Snapshot()})

	if r.period > 0 {
		go r.tickLoop(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-r.mailbox:
			if r.handle(ev) {
				return nil
			}
		}
	}
}

// handle applies one event and reports whether the game ended.
func (r *Runner) handle(ev event) bool {
	switch ev.kind {
	case eventHeading:
		if !r.paused {
			r.sim.SetHeading(ev.heading)
		}

	case eventPause:
		r.paused = !r.paused

	case eventSnapshot:
		ev.reply <- r.sim.Snapshot()

	case eventTick:
		if r.paused {
			return false
		}
		res := r.sim.Step()
		if res.Outcome == snake.OutcomeIdle {
			return false
		}
		final := res.Outcome == snake.OutcomeCollided
		r.publish(Frame{Snapshot: r.sim.Snapshot(), Result: res, Final: final})
		return final
	}
	return false
}

// tickLoop forwards ticker ticks into the mailbox.
func (r *Runner) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(r.period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			select {
			case r.mailbox <- event{kind: eventTick}:
			case <-r.done:
				return
			case <-ctx.Done():
				return
			}
		case <-r.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// publish sends a frame, dropping the oldest buffered frame when the reader lags.
func (r *Runner) publish(f Frame) {
	select {
	case r.frames <- f:
		return
	default:
	}

	select {
	case <-r.frames:
	default:
	}
	select {
	case r.frames <- f:
	default:
	}
}
