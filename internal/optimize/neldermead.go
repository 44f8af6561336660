package optimize

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"
)

const (
	reflectionCoefficient  = 1.0
	expansionCoefficient   = 2.0
	contractionCoefficient = 0.5
	shrinkCoefficient      = 0.5

	defaultInitialStep = 0.5
)

// errBudgetExhausted stops a simplex run once its evaluation budget is spent.
// It never escapes Minimize.
var errBudgetExhausted = errors.New("evaluation budget exhausted")

// Objective is a scalar function of a small real parameter vector. Values may
// be stochastic; the search never differentiates them.
type Objective func(ctx context.Context, params []float64) (float64, error)

// Result is the outcome of one Minimize call. Converged=false means the
// budget ran out before the simplex collapsed, which is normal for a noisy
// objective; Params still holds the best point found.
type Result struct {
	Params      []float64
	Value       float64
	Evaluations int
	Converged   bool
}

// NelderMead is a derivative-free downhill-simplex minimizer for noisy
// objectives of a few real parameters.
//
// MaxIterations caps objective evaluations per start. Restarts below 1 is
// treated as a single start; additional starts draw fresh initial points from
// Bounds and the best result wins, with trace iteration numbering continuing
// across starts. Reference is the known minimum used only for Gap reporting.
type NelderMead struct {
	Rand          *rand.Rand
	MaxIterations int
	Restarts      int
	Tolerance     float64
	InitialStep   float64
	Bounds        [][2]float64
	Reference     float64
	Recorder      Recorder

	mu sync.Mutex
}

type vertex struct {
	params []float64
	value  float64
}

// Minimize searches for the parameters minimizing the objective, starting
// from initial or, when initial is empty, from a uniform draw over Bounds.
func (nm *NelderMead) Minimize(ctx context.Context, initial []float64, objective Objective) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if nm == nil {
		return Result{}, errors.New("optimizer is required")
	}
	if objective == nil {
		return Result{}, errors.New("objective function is required")
	}
	if nm.MaxIterations <= 0 {
		return Result{}, errors.New("max iterations must be > 0")
	}
	if nm.Tolerance < 0 {
		return Result{}, errors.New("tolerance must be >= 0")
	}
	if nm.InitialStep < 0 {
		return Result{}, errors.New("initial step must be >= 0")
	}
	for _, bound := range nm.Bounds {
		if bound[1] < bound[0] {
			return Result{}, errors.New("bounds must be ordered low, high")
		}
	}

	dims := len(initial)
	if dims == 0 {
		dims = len(nm.Bounds)
	}
	if dims == 0 {
		return Result{}, errors.New("either an initial point or bounds are required")
	}
	if len(initial) != 0 && len(nm.Bounds) != 0 && len(nm.Bounds) != len(initial) {
		return Result{}, errors.New("bounds must match the parameter dimension")
	}

	restarts := nm.Restarts
	if restarts < 1 {
		restarts = 1
	}
	if len(initial) == 0 || restarts > 1 {
		if len(nm.Bounds) == 0 {
			return Result{}, errors.New("bounds are required to draw start points")
		}
		if nm.Rand == nil {
			return Result{}, errors.New("random source is required to draw start points")
		}
	}

	recorder := nm.Recorder
	if recorder == nil {
		recorder = NopRecorder{}
	}
	step := nm.InitialStep
	if step == 0 {
		step = defaultInitialStep
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
			origin = nm.drawStart()
		}
		candidate, converged, err := nm.search(ctx, origin, objective, recorder, &iteration, step)
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

// search runs one simplex descent from origin. The shared iteration counter
// keeps trace numbering and per-start budget accounting consistent across
// restarts.
func (nm *NelderMead) search(ctx context.Context, origin []float64, objective Objective, recorder Recorder, iteration *int, step float64) (vertex, bool, error) {
	dims := len(origin)
	budget := *iteration + nm.MaxIterations

	evaluate := func(params []float64) (float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if *iteration >= budget {
			return 0, errBudgetExhausted
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
			Gap:       value - nm.Reference,
		})
		return value, nil
	}

	vertices := make([]vertex, 0, dims+1)
	appendVertex := func(params []float64) error {
		value, err := evaluate(params)
		if err != nil {
			return err
		}
		vertices = append(vertices, vertex{params: params, value: value})
		return nil
	}

	byValue := func() {
		sort.Slice(vertices, func(i, j int) bool { return vertices[i].value < vertices[j].value })
	}

	if err := appendVertex(append([]float64(nil), origin...)); err != nil {
		return vertex{}, false, err
	}
	for d := 0; d < dims; d++ {
		params := append([]float64(nil), origin...)
		params[d] += step
		if err := appendVertex(params); err != nil {
			if errors.Is(err, errBudgetExhausted) {
				byValue()
				return vertices[0], false, nil
			}
			return vertex{}, false, err
		}
	}

	converged := false
	var loopErr error
loop:
	for {
		byValue()
		if vertices[len(vertices)-1].value-vertices[0].value <= nm.Tolerance {
			converged = true
			break
		}
		if *iteration >= budget {
			break
		}

		worst := vertices[len(vertices)-1]
		centroid := make([]float64, dims)
		for _, v := range vertices[:len(vertices)-1] {
			for d := range centroid {
				centroid[d] += v.params[d]
			}
		}
		for d := range centroid {
			centroid[d] /= float64(len(vertices) - 1)
		}

		// move builds centroid + coefficient*(centroid − worst); negative
		// coefficients step back toward the worst vertex.
		move := func(coefficient float64) []float64 {
			params := make([]float64, dims)
			for d := range params {
				params[d] = centroid[d] + coefficient*(centroid[d]-worst.params[d])
			}
			return params
		}

		reflected := move(reflectionCoefficient)
		reflectedValue, err := evaluate(reflected)
		if err != nil {
			loopErr = err
			break
		}

		switch {
		case reflectedValue < vertices[0].value:
			expanded := move(expansionCoefficient)
			expandedValue, err := evaluate(expanded)
			if err != nil {
				vertices[len(vertices)-1] = vertex{params: reflected, value: reflectedValue}
				loopErr = err
				break loop
			}
			if expandedValue < reflectedValue {
				vertices[len(vertices)-1] = vertex{params: expanded, value: expandedValue}
			} else {
				vertices[len(vertices)-1] = vertex{params: reflected, value: reflectedValue}
			}
		case reflectedValue < vertices[len(vertices)-2].value:
			vertices[len(vertices)-1] = vertex{params: reflected, value: reflectedValue}
		default:
			contracted := move(-contractionCoefficient)
			contractedValue, err := evaluate(contracted)
			if err != nil {
				loopErr = err
				break loop
			}
			if contractedValue < worst.value {
				vertices[len(vertices)-1] = vertex{params: contracted, value: contractedValue}
				continue
			}
			// Shrink every vertex toward the current best.
			for i := 1; i < len(vertices); i++ {
				params := make([]float64, dims)
				for d := range params {
					params[d] = vertices[0].params[d] + shrinkCoefficient*(vertices[i].params[d]-vertices[0].params[d])
				}
				value, err := evaluate(params)
				if err != nil {
					loopErr = err
					break loop
				}
				vertices[i] = vertex{params: params, value: value}
			}
		}
	}

	if loopErr != nil && !errors.Is(loopErr, errBudgetExhausted) {
		return vertex{}, false, loopErr
	}
	byValue()
	return vertices[0], converged, nil
}

// drawStart samples a start point uniformly from Bounds.
func (nm *NelderMead) drawStart() []float64 {
	params := make([]float64, len(nm.Bounds))
	for d, bound := range nm.Bounds {
		params[d] = bound[0] + nm.randFloat64()*(bound[1]-bound[0])
	}
	return params
}

func (nm *NelderMead) randFloat64() float64 {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	return nm.Rand.Float64()
}
