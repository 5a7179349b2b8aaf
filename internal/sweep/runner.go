// Package sweep drives an arm along scripted pointer paths, tick by tick,
// and records what it did.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/twolink/internal/arm"
	"github.com/san-kum/twolink/internal/kinematics"
	"github.com/san-kum/twolink/internal/metrics"
)

type Result struct {
	Path   string
	Ticks  int
	Theta1 []float64
	Theta2 []float64
	// Targets and EndEffector are in math space.
	Targets     []r2.Vec
	EndEffector []r2.Vec
	Clamps      []kinematics.Clamp
	Metrics     map[string]float64
	Errors      []error
}

type Runner struct {
	arm     *arm.Arm
	metrics []metrics.Metric
}

// NewRunner wraps a. The arm is switched to inverse mode when a run starts.
func NewRunner(a *arm.Arm) *Runner {
	return &Runner{arm: a}
}

func (r *Runner) AddMetric(m metrics.Metric) {
	r.metrics = append(r.metrics, m)
	r.arm.AddObserver(m)
}

func (r *Runner) Arm() *arm.Arm { return r.arm }

// Run feeds ticks pointer positions sampled evenly along path, endpoints
// included. On cancellation the partial result is returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, path Path, ticks int) (*Result, error) {
	if ticks < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidTicks, ticks)
	}

	result := &Result{
		Path:        path.Name(),
		Theta1:      make([]float64, 0, ticks),
		Theta2:      make([]float64, 0, ticks),
		Targets:     make([]r2.Vec, 0, ticks),
		EndEffector: make([]r2.Vec, 0, ticks),
		Clamps:      make([]kinematics.Clamp, 0, ticks),
		Metrics:     make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}
	if r.arm.Mode() != arm.ModeInverse {
		r.arm.SetMode(arm.ModeInverse)
	}

	frame := r.arm.Frame()
	den := float64(ticks - 1)
	if den == 0 {
		den = 1
	}

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		target := path.At(float64(i) / den)
		rejected := r.arm.Rejected()
		s := r.arm.Update(frame.MathToScreen(target), false)
		if r.arm.Rejected() > rejected {
			result.Errors = append(result.Errors, &StepError{Tick: i, Target: target, Wrapped: ErrRejected})
		}

		result.Ticks++
		result.Theta1 = append(result.Theta1, s.Theta1)
		result.Theta2 = append(result.Theta2, s.Theta2)
		result.Targets = append(result.Targets, s.Target)
		result.EndEffector = append(result.EndEffector, s.Pose.EndEffector)
		result.Clamps = append(result.Clamps, s.Clamp)
	}

	r.collect(result)
	return result, nil
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// RunAll sweeps every named path on its own arm built from cfg, in parallel.
// Results are in the order of names. When some runs fail or are cancelled the
// joined errors are returned along with whatever each run recorded; a run
// that never started leaves a nil entry.
func RunAll(ctx context.Context, cfg arm.Config, names []string, ticks int) ([]*Result, error) {
	ws := kinematics.Reach(cfg.L1, cfg.L2)
	paths := make([]Path, len(names))
	for i, n := range names {
		p, err := NewPath(n, ws)
		if err != nil {
			return nil, err
		}
		paths[i] = p
	}

	results := make([]*Result, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(idx int, p Path) {
			defer wg.Done()

			a, err := arm.New(cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			r := NewRunner(a)
			for _, m := range metrics.Default() {
				r.AddMetric(m)
			}
			results[idx], errs[idx] = r.Run(ctx, p, ticks)
		}(i, p)
	}

	wg.Wait()

	return results, errors.Join(errs...)
}
