package motion

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const DefaultDuration = 30 * time.Second

var ErrRunning = errors.New("animation already running")

type State int

const (
	Idle State = iota
	Running
	Interactive
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Interactive:
		return "interactive"
	default:
		return "unknown"
	}
}

// Easing maps the progress of an animation, between 0 and 1, to the progress
// of its time. It has to be monotonically increasing.
type Easing func(float64) float64

func EaseLinear(p float64) float64 {
	return p
}

func EaseQuadInOut(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - math.Pow(-2*p+2, 2)/2
}

func EaseCubicInOut(p float64) float64 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	return 1 - math.Pow(-2*p+2, 3)/2
}

func ParseEasing(str string) (Easing, error) {
	switch strings.ToLower(str) {
	case "", "linear":
		return EaseLinear, nil
	case "quad", "quad-in-out":
		return EaseQuadInOut, nil
	case "cubic", "cubic-in-out":
		return EaseCubicInOut, nil
	default:
		return nil, fmt.Errorf("%s: unknown easing", str)
	}
}

// Driver moves the query time of a chart. While running, each Tick advances
// the time between two bounds over a fixed duration. Once done or cancelled,
// the driver turns interactive and only moves to the times given by Point.
//
// A Driver is not safe for concurrent use. It is meant to be called by a
// single render loop.
type Driver struct {
	state    State
	from     float64
	to       float64
	duration time.Duration
	elapsed  time.Duration
	ease     Easing

	current float64
	pending float64
}

func NewDriver(ease Easing) *Driver {
	if ease == nil {
		ease = EaseLinear
	}
	return &Driver{
		ease:    ease,
		current: math.NaN(),
		pending: math.NaN(),
	}
}

// Start runs the animation from the time from to the time to. Starting a
// driver that is already running is an error.
func (d *Driver) Start(from, to float64, duration time.Duration) error {
	if d.state == Running {
		return ErrRunning
	}
	d.state = Running
	d.from = from
	d.to = to
	d.duration = duration
	d.elapsed = 0
	d.current = from
	d.pending = math.NaN()
	return nil
}

// Tick advances the driver by delta of wall clock time. It returns the
// current time and whether it changed since the previous call.
func (d *Driver) Tick(delta time.Duration) (float64, bool) {
	switch d.state {
	case Running:
		if delta > 0 {
			d.elapsed += delta
		}
		p := d.Progress()
		next := d.from + d.ease(p)*(d.to-d.from)
		if p >= 1 {
			next = d.to
			d.state = Interactive
		}
		changed := next != d.current
		d.current = next
		return d.current, changed
	case Interactive:
		if math.IsNaN(d.pending) {
			return d.current, false
		}
		changed := d.pending != d.current
		d.current, d.pending = d.pending, math.NaN()
		return d.current, changed
	default:
		return d.current, false
	}
}

// Cancel stops a running animation where it is. There is no resume: the
// driver becomes interactive and keeps its current time.
func (d *Driver) Cancel() bool {
	if d.state != Running {
		return false
	}
	d.state = Interactive
	d.pending = math.NaN()
	return true
}

// Point records t as the next time to show. Only the last time given before
// the next Tick is kept. It is ignored unless the driver is interactive.
func (d *Driver) Point(t float64) bool {
	if d.state != Interactive || math.IsNaN(t) {
		return false
	}
	d.pending = t
	return true
}

// Seek moves the current time without animation. A running animation is
// cancelled.
func (d *Driver) Seek(t float64) {
	if d.state == Running {
		d.Cancel()
	}
	if d.state == Idle {
		d.state = Interactive
	}
	d.current = t
	d.pending = math.NaN()
}

func (d *Driver) Current() float64 {
	return d.current
}

func (d *Driver) State() State {
	return d.state
}

func (d *Driver) Duration() time.Duration {
	return d.duration
}

// Progress returns the share of the animation already played.
func (d *Driver) Progress() float64 {
	if d.state == Idle {
		return 0
	}
	if d.duration <= 0 {
		return 1
	}
	p := float64(d.elapsed) / float64(d.duration)
	return math.Min(p, 1)
}
