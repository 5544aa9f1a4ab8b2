package scroll

import (
	"context"
	"math"
	"time"
)

const (
	defaultAnimSteps = 20
	defaultAnimFrame = 16 * time.Millisecond
)

// StepAnimator eases a region to its target in fixed frames.
type StepAnimator struct {
	Steps int
	Frame time.Duration // zero runs every step back to back
}

// NewStepAnimator returns an animator of roughly a third of a second.
func NewStepAnimator() *StepAnimator {
	return &StepAnimator{Steps: defaultAnimSteps, Frame: defaultAnimFrame}
}

// AnimateScrollTo moves r from its current offset to target along an
// ease-in-out curve. It stops early when ctx is done or r fails.
func (a *StepAnimator) AnimateScrollTo(ctx context.Context, r Region, target float64) error {
	from, err := r.ScrollTop(ctx)
	if err != nil {
		return err
	}
	steps := a.Steps
	if steps <= 0 {
		steps = 1
	}

	var ticker *time.Ticker
	if a.Frame > 0 {
		ticker = time.NewTicker(a.Frame)
		defer ticker.Stop()
	}

	for i := 1; i <= steps; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		pos := from + (target-from)*easeInOut(float64(i)/float64(steps))
		if i == steps {
			pos = target
		}
		if err := r.SetScrollTop(ctx, math.Round(pos*100)/100); err != nil {
			return err
		}
	}
	return nil
}

func easeInOut(t float64) float64 {
	return 0.5 - math.Cos(math.Pi*t)/2
}
