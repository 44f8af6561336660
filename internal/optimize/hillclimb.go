package optimize

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
)

const defaultStepSize = 1.0

// HillClimb is a stochastic descent minimizer: each proposal perturbs every
// coordinate of the current point by a uniform delta, and the spread of that
// delta anneals geometrically while proposals keep getting rejected, widening
// again the moment one is accepted.
//
// MaxIterations caps objective evaluations per start. A proposal is accepted
// only when it improves the current value by more than MinImprovement, and
// MaxStale consecutive rejections end the start as converged; MaxStale <= 0
// lets the walk spend its whole budget. Restarts below 1 is treated as a
// single start; additional starts draw fresh initial points from Bounds and
// the best result wins, with trace iteration numbering continuing across
// starts. Reference is the known minimum used only for Gap reporting.
type HillClimb struct {
	Rand              *rand.Rand
	MaxIterations     int
	Restarts          int
	StepSize          float64
	PerturbationRange float64
	AnnealingFactor   float64
	MinImprovement    float64
	MaxStale          int
	Bounds            [][2]float64
	Reference         float64
	Recorder          Recorder

	mu sync.Mutex
}

func (hc *HillClimb) Name() string {
	return DriverHillClimb
}

// Minimize searches for the parameters minimizing the objective, starting
// from initial or, when initial is empty, from a uniform draw over Bounds.
func (hc *HillClimb) Minimize(ctx context.Context, initial []float64, objective Objective) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if hc == nil || hc.Rand == nil {
		return Result{}, errors.New("random source is required")
	}
	if objective == nil {
		return Result{}, errors.New("objective function is required")
	}
	if hc.MaxIterations <= 0 {
		return Result{}, errors.New("max iterations must be > 0")
	}
	if hc.StepSize < 0 {
		return Result{}, errors.New("step size must be >= 0")
	}
	if hc.PerturbationRange < 0 {
		return Result{}, errors.New("perturbation range must be >= 0")
	}
	if hc.AnnealingFactor < 0 {
		return Result{}, errors.New("annealing factor must be >= 0")
	}
	if hc.MinImprovement < 0 {
		return Result{}, errors.New("min improvement must be >= 0")
	}
	for _, bound := range hc.Bounds {
		if bound[1] < bound[0] {
			return Result{}, errors.New("bounds must be ordered low, high")
		}
	}

	dims := len(initial)
	if dims == 0 {
		dims = len(hc.Bounds)
	}
	if dims == 0 {
		return Result{}, errors.New("either an initial point or bounds are required")
	}
	if len(initial) != 0 && len(hc.Bounds) != 0 && len(hc.Bounds) != len(initial) {
		return Result{}, errors.New("bounds must match the parameter dimension")
	}

	restarts := hc.Restarts
	if restarts < 1 {
		restarts = 1
	}
	if (len(initial) == 0 || restarts > 1) && len(hc.Bounds) == 0 {
		return Result{}, errors.New("bounds are required to draw start points")
	}

	recorder := hc.Recorder
	if recorder == nil {
		recorder = NopRecorder{}
	}
	stepSize := hc.StepSize
	if stepSize == 0 {
		stepSize = defaultStepSize
	}
	perturbationRange := hc.PerturbationRange
	if perturbationRange == 0 {
		perturbationRange = 1.0
	}
	annealingFactor := hc.AnnealingFactor
	if annealingFactor == 0 {
		annealingFactor = 1.0
	}

	var (
		best          vertex
		bestConverged bool
		haveBest      bool
	)
	iteration := 0
	for start := 0; start < restarts; start++ {
		origin := initial
		if len(origin) == 0 || start > 0 {
			origin = hc.drawStart()
		}
		candidate, converged, err := hc.descend(ctx, origin, objective, recorder, &iteration, stepSize*perturbationRange, annealingFactor)
		if err != nil {
			return Result{}, err
		}
		if !haveBest || candidate.value < best.value {
			best = candidate
			bestConverged = converged
			haveBest = true
		}
	}

	return Result{
		Params:      best.params,
		Value:       best.value,
		Evaluations: iteration,
		Converged:   bestConverged,
	}, nil
}

// descend runs one annealed perturbation walk from origin. The shared
// iteration counter keeps trace numbering and per-start budget accounting
// consistent across restarts.
func (hc *HillClimb) descend(ctx context.Context, origin []float64, objective Objective, recorder Recorder, iteration *int, spread, annealingFactor float64) (vertex, bool, error) {
	budget := *iteration + hc.MaxIterations

	evaluate := func(params []float64) (float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		value, err := objective(ctx, params)
		if err != nil {
			return 0, err
		}
		*iteration++
		recorder.Record(Step{
			Iteration: *iteration,
			Params:    append([]float64(nil), params...),
			Value:     value,
			Gap:       value - hc.Reference,
		})
		return value, nil
	}

	current := vertex{params: append([]float64(nil), origin...)}
	value, err := evaluate(current.params)
	if err != nil {
		return vertex{}, false, err
	}
	current.value = value

	stale := 0
	for *iteration < budget {
		scale := spread * math.Pow(annealingFactor, float64(stale))
		params := make([]float64, len(current.params))
		for d := range params {
			params[d] = current.params[d] + (hc.randFloat64()*2-1)*scale
		}
		value, err := evaluate(params)
		if err != nil {
			return vertex{}, false, err
		}
		if value < current.value-hc.MinImprovement {
			current = vertex{params: params, value: value}
			stale = 0
			continue
		}
		stale++
		if hc.MaxStale > 0 && stale >= hc.MaxStale {
			return current, true, nil
		}
	}
	return current, false, nil
}

// drawStart samples a start point uniformly from Bounds.
func (hc *HillClimb) drawStart() []float64 {
	params := make([]float64, len(hc.Bounds))
	for d, bound := range hc.Bounds {
		params[d] = bound[0] + hc.randFloat64()*(bound[1]-bound[0])
	}
	return params
}

func (hc *HillClimb) randFloat64() float64 {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	return hc.Rand.Float64()
}
