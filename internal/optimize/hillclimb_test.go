package optimize

import (
	"context"
	"math"
	"math/rand"
	"testing"
)

func constant(value float64) Objective {
	return func(context.Context, []float64) (float64, error) {
		return value, nil
	}
}

func TestHillClimbMinimizesQuadratic(t *testing.T) {
	hc := &HillClimb{
		Rand:            rand.New(rand.NewSource(21)),
		MaxIterations:   300,
		StepSize:        1.0,
		AnnealingFactor: 0.95,
	}
	result, err := hc.Minimize(context.Background(), []float64{5}, quadratic(2))
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if result.Converged {
		t.Fatalf("zero max stale should spend the full budget, got %+v", result)
	}
	if result.Evaluations != 300 {
		t.Fatalf("evaluations %d want full budget 300", result.Evaluations)
	}
	if math.Abs(result.Params[0]-2) > 0.5 {
		t.Fatalf("minimum at %v want near 2", result.Params[0])
	}
	if result.Value > 0.25 {
		t.Fatalf("minimum value %v want near 0", result.Value)
	}
}

func TestHillClimbStaleStopConverges(t *testing.T) {
	hc := &HillClimb{
		Rand:          rand.New(rand.NewSource(22)),
		MaxIterations: 100,
		MaxStale:      7,
	}
	result, err := hc.Minimize(context.Background(), []float64{0}, constant(1))
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if !result.Converged {
		t.Fatalf("expected stale stop to converge, got %+v", result)
	}
	if result.Evaluations != 8 {
		t.Fatalf("evaluations %d want origin plus 7 stale proposals", result.Evaluations)
	}
	if result.Value != 1 {
		t.Fatalf("value %v want 1", result.Value)
	}
}

func TestHillClimbBudgetStopDoesNotConverge(t *testing.T) {
	hc := &HillClimb{
		Rand:          rand.New(rand.NewSource(23)),
		MaxIterations: 5,
	}
	result, err := hc.Minimize(context.Background(), []float64{0}, constant(2))
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if result.Converged {
		t.Fatalf("budget stop should not converge, got %+v", result)
	}
	if result.Evaluations != 5 {
		t.Fatalf("evaluations %d want 5", result.Evaluations)
	}
}

func TestHillClimbRecordsEveryEvaluation(t *testing.T) {
	trace := &TraceRecorder{}
	hc := &HillClimb{
		Rand:            rand.New(rand.NewSource(24)),
		MaxIterations:   60,
		StepSize:        1.0,
		AnnealingFactor: 0.9,
		Reference:       -3,
		Recorder:        trace,
	}
	result, err := hc.Minimize(context.Background(), []float64{1}, quadratic(0))
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}

	if len(trace.Steps) != result.Evaluations {
		t.Fatalf("trace length %d want %d evaluations", len(trace.Steps), result.Evaluations)
	}
	for i, step := range trace.Steps {
		if step.Iteration != i+1 {
			t.Fatalf("step %d has iteration %d", i, step.Iteration)
		}
		if math.Abs(step.Gap-(step.Value-hc.Reference)) > 1e-15 {
			t.Fatalf("step %d gap %v want value-reference %v", i, step.Gap, step.Value-hc.Reference)
		}
	}
}

func TestHillClimbRestartsShareIterationNumbering(t *testing.T) {
	trace := &TraceRecorder{}
	hc := &HillClimb{
		Rand:          rand.New(rand.NewSource(25)),
		MaxIterations: 50,
		Restarts:      3,
		MaxStale:      2,
		Bounds:        [][2]float64{{-1, 1}},
		Recorder:      trace,
	}
	result, err := hc.Minimize(context.Background(), nil, constant(4))
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}

	// Each start evaluates its origin and then stalls out after two proposals.
	if result.Evaluations != 9 {
		t.Fatalf("evaluations %d want 9 across three starts", result.Evaluations)
	}
	if !result.Converged {
		t.Fatalf("expected stale stops to converge, got %+v", result)
	}
	for i, step := range trace.Steps {
		if step.Iteration != i+1 {
			t.Fatalf("iteration numbering reset at step %d: %d", i, step.Iteration)
		}
	}
}

func TestHillClimbAnnealsRejectedProposals(t *testing.T) {
	var thetas []float64
	objective := func(_ context.Context, params []float64) (float64, error) {
		thetas = append(thetas, params[0])
		return 1, nil
	}

	hc := &HillClimb{
		Rand:            rand.New(rand.NewSource(26)),
		MaxIterations:   6,
		StepSize:        4.0,
		AnnealingFactor: 0.5,
	}
	if _, err := hc.Minimize(context.Background(), []float64{0}, objective); err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if len(thetas) != 6 {
		t.Fatalf("objective calls %d want 6", len(thetas))
	}

	// The origin never improves, so every proposal perturbs theta 0 with a
	// spread halved per rejection: |delta_k| <= 4 * 0.5^(k-1).
	for k, theta := range thetas[1:] {
		bound := 4.0 * math.Pow(0.5, float64(k))
		if math.Abs(theta) > bound+1e-12 {
			t.Fatalf("proposal %d moved %v beyond annealed spread %v", k+1, theta, bound)
		}
	}
}

func TestHillClimbSeedReproducible(t *testing.T) {
	run := func(seed int64) Result {
		hc := &HillClimb{
			Rand:            rand.New(rand.NewSource(seed)),
			MaxIterations:   80,
			StepSize:        1.0,
			AnnealingFactor: 0.9,
			Bounds:          [][2]float64{{-5, 5}},
		}
		result, err := hc.Minimize(context.Background(), nil, quadratic(-1))
		if err != nil {
			t.Fatalf("minimize: %v", err)
		}
		return result
	}

	first := run(27)
	second := run(27)
	if first.Params[0] != second.Params[0] || first.Value != second.Value || first.Evaluations != second.Evaluations {
		t.Fatalf("same seed diverged: %+v vs %+v", first, second)
	}
}

func TestHillClimbValidation(t *testing.T) {
	ctx := context.Background()
	objective := quadratic(0)
	seeded := func() *rand.Rand { return rand.New(rand.NewSource(1)) }

	cases := []struct {
		name    string
		hc      *HillClimb
		initial []float64
		obj     Objective
	}{
		{name: "nil rand", hc: &HillClimb{MaxIterations: 10}, initial: []float64{0}, obj: objective},
		{name: "nil objective", hc: &HillClimb{Rand: seeded(), MaxIterations: 10}, initial: []float64{0}, obj: nil},
		{name: "zero budget", hc: &HillClimb{Rand: seeded()}, initial: []float64{0}, obj: objective},
		{name: "negative step size", hc: &HillClimb{Rand: seeded(), MaxIterations: 10, StepSize: -1}, initial: []float64{0}, obj: objective},
		{name: "negative perturbation range", hc: &HillClimb{Rand: seeded(), MaxIterations: 10, PerturbationRange: -1}, initial: []float64{0}, obj: objective},
		{name: "negative annealing", hc: &HillClimb{Rand: seeded(), MaxIterations: 10, AnnealingFactor: -0.5}, initial: []float64{0}, obj: objective},
		{name: "negative min improvement", hc: &HillClimb{Rand: seeded(), MaxIterations: 10, MinImprovement: -0.1}, initial: []float64{0}, obj: objective},
		{name: "no start possible", hc: &HillClimb{Rand: seeded(), MaxIterations: 10}, initial: nil, obj: objective},
		{name: "restarts without bounds", hc: &HillClimb{Rand: seeded(), MaxIterations: 10, Restarts: 2}, initial: []float64{0}, obj: objective},
		{name: "unordered bounds", hc: &HillClimb{Rand: seeded(), MaxIterations: 10, Bounds: [][2]float64{{1, 0}}}, initial: nil, obj: objective},
		{name: "dimension mismatch", hc: &HillClimb{Rand: seeded(), MaxIterations: 10, Bounds: [][2]float64{{0, 1}, {0, 1}}}, initial: []float64{0}, obj: objective},
	}

	for _, tc := range cases {
		if _, err := tc.hc.Minimize(ctx, tc.initial, tc.obj); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestHillClimbHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hc := &HillClimb{Rand: rand.New(rand.NewSource(28)), MaxIterations: 10}
	if _, err := hc.Minimize(ctx, []float64{0}, quadratic(0)); err == nil {
		t.Fatalf("expected cancelled context to fail")
	}
}

func TestHillClimbPropagatesObjectiveError(t *testing.T) {
	calls := 0
	objective := func(context.Context, []float64) (float64, error) {
		calls++
		if calls >= 3 {
			return 0, context.DeadlineExceeded
		}
		return float64(calls), nil
	}

	hc := &HillClimb{Rand: rand.New(rand.NewSource(29)), MaxIterations: 10}
	if _, err := hc.Minimize(context.Background(), []float64{0}, objective); err == nil {
		t.Fatalf("expected objective error to propagate")
	}
}
