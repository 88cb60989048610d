package state

import (
	"context"
	"time"
)

// Phase is the visual state of the copy control.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCopied
	PhaseFading
)

func (p Phase) String() string {
	switch p {
	case PhaseCopied:
		return "copied"
	case PhaseFading:
		return "fading"
	default:
		return "idle"
	}
}

// Default copy feedback timings, both measured from the successful write.
const (
	DefaultFadeDelay  = 50 * time.Millisecond
	DefaultResetDelay = 5050 * time.Millisecond
)

// CopyTimer describes a deferred phase change. The waiter must stop as
// soon as Done is closed.
type CopyTimer struct {
	Gen   uint64
	Delay time.Duration
	Next  Phase
	Done  <-chan struct{}
}

// Copy is the copy-feedback state machine. It owns at most one pair of
// live timers; Reset cancels them.
type Copy struct {
	phase      Phase
	gen        uint64
	cancel     context.CancelFunc
	done       <-chan struct{}
	copiedAt   time.Time
	fadeDelay  time.Duration
	resetDelay time.Duration
	now        func() time.Time
}

// NewCopy returns an idle machine. Non-positive delays, or a reset delay
// that does not exceed the fade delay, fall back to the defaults.
func NewCopy(fadeDelay, resetDelay time.Duration) *Copy {
	if fadeDelay <= 0 {
		fadeDelay = DefaultFadeDelay
	}
	if resetDelay <= fadeDelay {
		resetDelay = DefaultResetDelay
		if resetDelay <= fadeDelay {
			resetDelay = fadeDelay + DefaultResetDelay
		}
	}
	return &Copy{fadeDelay: fadeDelay, resetDelay: resetDelay, now: time.Now}
}

// Phase returns the current phase.
func (c *Copy) Phase() Phase { return c.phase }

// ButtonDisabled is true for every phase but Idle.
func (c *Copy) ButtonDisabled() bool { return c.phase != PhaseIdle }

// Gen identifies the current feedback cycle.
func (c *Copy) Gen() uint64 { return c.gen }

// Done is closed when the current cycle's timers are cancelled or finish.
// It is nil while idle.
func (c *Copy) Done() <-chan struct{} { return c.done }

// Activate runs write and, on success, enters Copied and returns the fade
// and reset timers. While the control is disabled it does nothing. A
// failed write leaves the machine idle with no timers.
func (c *Copy) Activate(write func() error) ([]CopyTimer, error) {
	if c.ButtonDisabled() {
		return nil, nil
	}
	if err := write(); err != nil {
		return nil, err
	}
	c.stop()
	ctx, cancel := context.WithCancel(context.Background())
	c.gen++
	c.cancel = cancel
	c.done = ctx.Done()
	c.phase = PhaseCopied
	c.copiedAt = c.now()
	return []CopyTimer{
		{Gen: c.gen, Delay: c.fadeDelay, Next: PhaseFading, Done: c.done},
		{Gen: c.gen, Delay: c.resetDelay, Next: PhaseIdle, Done: c.done},
	}, nil
}

// Advance applies a fired timer. Timers from an earlier cycle, or ones
// that would move the phase backwards, are refused.
func (c *Copy) Advance(gen uint64, next Phase) bool {
	if gen != c.gen || c.phase == PhaseIdle {
		return false
	}
	switch next {
	case PhaseFading:
		if c.phase != PhaseCopied {
			return false
		}
		c.phase = PhaseFading
		return true
	case PhaseIdle:
		c.phase = PhaseIdle
		c.stop()
		return true
	default:
		return false
	}
}

// Reset cancels any pending timers and forces Idle immediately.
func (c *Copy) Reset() {
	c.stop()
	c.gen++
	c.phase = PhaseIdle
}

// FadeProgress reports how far the Fading phase has run, from 0 to 1.
func (c *Copy) FadeProgress() float64 {
	if c.phase != PhaseFading {
		return 0
	}
	window := c.resetDelay - c.fadeDelay
	elapsed := c.now().Sub(c.copiedAt) - c.fadeDelay
	if elapsed <= 0 || window <= 0 {
		return 0
	}
	if elapsed >= window {
		return 1
	}
	return float64(elapsed) / float64(window)
}

func (c *Copy) stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.done = nil
}
