package optimize

import (
	"fmt"
	"io"
)

// Step is one objective evaluation as seen by a Recorder. Gap is Value minus
// the optimizer's reference minimum; Params is the recorder's copy to keep.
type Step struct {
	Iteration int
	Params    []float64
	Value     float64
	Gap       float64
}

// Recorder observes a minimization: the optimizer reports a Step after every
// objective evaluation. The trace is diagnostic only and is never read back
// by the search.
type Recorder interface {
	Record(step Step)
}

// NopRecorder discards every step.
type NopRecorder struct{}

func (NopRecorder) Record(Step) {}

// TraceRecorder accumulates the full iteration trace in memory.
type TraceRecorder struct {
	Steps []Step
}

func (r *TraceRecorder) Record(step Step) {
	r.Steps = append(r.Steps, step)
}

// PrintRecorder writes one diagnostic line per evaluation to W.
type PrintRecorder struct {
	W io.Writer
}

func (r PrintRecorder) Record(step Step) {
	if len(step.Params) == 1 {
		fmt.Fprintf(r.W, "iteration=%d theta=%.6f energy=%.6f gap=%.6f\n", step.Iteration, step.Params[0], step.Value, step.Gap)
		return
	}
	fmt.Fprintf(r.W, "iteration=%d params=%v energy=%.6f gap=%.6f\n", step.Iteration, step.Params, step.Value, step.Gap)
}

// MultiRecorder fans every step out to each member in order.
type MultiRecorder []Recorder

func (m MultiRecorder) Record(step Step) {
	for _, r := range m {
		if r != nil {
			r.Record(step)
		}
	}
}
