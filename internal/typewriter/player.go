package typewriter

import (
	"context"
	"time"
)

// Player drives an Animation in real time.
type Player struct {
	// After waits for a duration. Defaults to time.After.
	After func(time.Duration) <-chan time.Time
	// Now reads the clock for throttling. Defaults to time.Now.
	Now func() time.Time
	// Throttle drops intermediate frames emitted closer together than this.
	// The first and the final frame are always emitted.
	Throttle time.Duration
	// Pace scales every delay. Zero and one both mean real time.
	Pace float64
}

func NewPlayer(throttle time.Duration) *Player {
	return &Player{After: time.After, Now: time.Now, Throttle: throttle}
}

// Play emits the initial frame, then steps the animation until it is done,
// emitting after each step. It returns ctx.Err() when cancelled and the first
// error returned by emit.
func (p *Player) Play(ctx context.Context, a Animation, emit func(Frame) error) error {
	after := p.After
	if after == nil {
		after = time.After
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	if err := emit(a.Frame()); err != nil {
		return err
	}
	last := now()

	for !a.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-after(p.delay(a.Delay())):
		}
		a.Step()

		if !a.Done() && p.Throttle > 0 && now().Sub(last) < p.Throttle {
			continue
		}
		if err := emit(a.Frame()); err != nil {
			return err
		}
		last = now()
	}
	return nil
}

func (p *Player) delay(d time.Duration) time.Duration {
	if p.Pace <= 0 || p.Pace == 1 {
		return d
	}
	return time.Duration(float64(d) * p.Pace)
}

// PaceFor returns the Pace that makes the default tick last speed.
func PaceFor(speed time.Duration) float64 {
	if speed <= 0 {
		return 1
	}
	return float64(speed) / float64(DefaultSpeed)
}
