package sampler

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"singlet/internal/circuit"
	"singlet/internal/pauli"
)

// Counts maps two-bit outcome strings to occurrence counts for one batch of
// shots. Outcome classes that never occurred are simply absent.
type Counts map[string]int

// Total sums the occurrence counts over every outcome class.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Sampler produces measurement counts for the ansatz state at theta, measured
// in the basis an observable requires.
type Sampler interface {
	Name() string
	Sample(ctx context.Context, theta float64, observable pauli.Observable, shots int) (Counts, error)
}

// Statevector samples outcomes from the exact circuit distribution. Every
// call prepares a fresh state; the only carried state is the random source,
// which is guarded so a single value may be shared.
type Statevector struct {
	Rand *rand.Rand
	mu   sync.Mutex
}

func (s *Statevector) Name() string {
	return "statevector"
}

func (s *Statevector) Sample(ctx context.Context, theta float64, observable pauli.Observable, shots int) (Counts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.Rand == nil {
		return nil, errors.New("random source is required")
	}
	if shots <= 0 {
		return nil, errors.New("shots must be > 0")
	}

	state := circuit.Ansatz(theta)
	if err := state.RotateBasis(observable); err != nil {
		return nil, err
	}
	probs := state.Probabilities()

	counts := make(Counts, len(probs))
	for shot := 0; shot < shots; shot++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counts[circuit.Bitstring(s.drawOutcome(probs))]++
	}
	return counts, nil
}

// drawOutcome picks one basis-state index by walking the cumulative
// distribution. The final index absorbs any floating-point shortfall in the
// cumulative total.
func (s *Statevector) drawOutcome(probs [4]float64) int {
	u := s.randFloat64()
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if u < cumulative {
			return i
		}
	}
	return len(probs) - 1
}

func (s *Statevector) randFloat64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Rand.Float64()
}
