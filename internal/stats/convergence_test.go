package stats

import (
	"math"
	"testing"

	"singlet/internal/model"
)

func traceOf(energies, gaps []float64) []model.TraceStep {
	steps := make([]model.TraceStep, len(energies))
	for i := range energies {
		steps[i] = model.TraceStep{Iteration: i + 1, Theta: 0.1 * float64(i), Energy: energies[i], EnergyError: gaps[i]}
	}
	return steps
}

func TestBuildConvergenceSeriesAggregatesTrials(t *testing.T) {
	traces := [][]model.TraceStep{
		traceOf([]float64{1, 2, 3}, []float64{4, 5, 6}),
		traceOf([]float64{3, 0}, []float64{6, 3}),
	}

	points := BuildConvergenceSeries(traces)
	if len(points) != 3 {
		t.Fatalf("points %d want 3", len(points))
	}

	first := points[0]
	if first.Iteration != 1 || first.Trials != 2 {
		t.Fatalf("first point %+v", first)
	}
	if first.MeanEnergy != 2 || first.MinEnergy != 1 || first.MaxEnergy != 3 {
		t.Fatalf("first point energies %+v", first)
	}
	if math.Abs(first.StdEnergy-1) > 1e-12 {
		t.Fatalf("first point std %v want 1", first.StdEnergy)
	}
	if first.MeanGap != 5 {
		t.Fatalf("first point gap %v want 5", first.MeanGap)
	}

	second := points[1]
	if second.Trials != 2 || second.MeanEnergy != 1 || second.MinEnergy != 0 || second.MaxEnergy != 2 {
		t.Fatalf("second point %+v", second)
	}

	// The shorter trial drops out of the final iteration.
	last := points[2]
	if last.Iteration != 3 || last.Trials != 1 {
		t.Fatalf("last point %+v", last)
	}
	if last.MeanEnergy != 3 || last.StdEnergy != 0 || last.MinEnergy != 3 || last.MaxEnergy != 3 || last.MeanGap != 6 {
		t.Fatalf("last point %+v", last)
	}
}

func TestBuildConvergenceSeriesEmpty(t *testing.T) {
	if points := BuildConvergenceSeries(nil); len(points) != 0 {
		t.Fatalf("points %v want none", points)
	}
	if points := BuildConvergenceSeries([][]model.TraceStep{{}, {}}); len(points) != 0 {
		t.Fatalf("points %v want none for empty traces", points)
	}
}

func TestConvergenceSeriesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	points := BuildConvergenceSeries([][]model.TraceStep{
		traceOf([]float64{-1.5, -2.25}, []float64{1.5, 0.75}),
		traceOf([]float64{-0.5, -2.75, -2.875}, []float64{2.5, 0.25, 0.125}),
	})

	if err := WriteConvergenceSeries(dir, points); err != nil {
		t.Fatalf("write convergence series: %v", err)
	}

	got, ok, err := ReadConvergenceSeries(dir)
	if err != nil {
		t.Fatalf("read convergence series: %v", err)
	}
	if !ok {
		t.Fatalf("expected convergence series to exist")
	}
	if len(got) != len(points) {
		t.Fatalf("points %d want %d", len(got), len(points))
	}
	for i := range points {
		if got[i] != points[i] {
			t.Fatalf("point %d = %+v want %+v", i, got[i], points[i])
		}
	}
}

func TestReadConvergenceSeriesMissing(t *testing.T) {
	_, ok, err := ReadConvergenceSeries(t.TempDir())
	if err != nil {
		t.Fatalf("read convergence series: %v", err)
	}
	if ok {
		t.Fatalf("expected missing series to report ok=false")
	}
}
