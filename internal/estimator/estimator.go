package estimator

import (
	"context"
	"errors"
	"fmt"

	"singlet/internal/circuit"
	"singlet/internal/pauli"
	"singlet/internal/sampler"
)

var (
	// ErrInvalidObservable reports a label outside the supported Pauli
	// strings. Unknown observables are rejected before any sampling rather
	// than measured in a default basis.
	ErrInvalidObservable = errors.New("invalid observable")
	// ErrInvalidShotCount reports a non-positive shot count.
	ErrInvalidShotCount = errors.New("invalid shot count")
)

// Estimator turns measurement counts from a sampler into Pauli expectation
// values and Hamiltonian energies. Shots is fixed once for the whole run.
type Estimator struct {
	Sampler sampler.Sampler
	Shots   int
}

// Expectation estimates the expectation value of an observable at theta: the
// sampler measures Shots outcomes in the observable's basis and the signed
// parity sum is normalized by the shot count. The estimate is unbiased with
// standard error shrinking as 1/sqrt(Shots) and always lies in [-1, 1].
func (e *Estimator) Expectation(ctx context.Context, theta float64, observable pauli.Observable) (float64, error) {
	if e == nil || e.Sampler == nil {
		return 0, errors.New("sampler is required")
	}
	if !observable.Known() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidObservable, observable)
	}
	if e.Shots <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidShotCount, e.Shots)
	}

	counts, err := e.Sampler.Sample(ctx, theta, observable, e.Shots)
	if err != nil {
		return 0, err
	}
	if total := counts.Total(); total != e.Shots {
		return 0, fmt.Errorf("sampler %s returned %d outcomes for %d shots", e.Sampler.Name(), total, e.Shots)
	}

	var signed float64
	for outcome, n := range counts {
		sign, ok := pauli.ParitySign(outcome)
		if !ok {
			return 0, fmt.Errorf("sampler %s returned invalid outcome %q", e.Sampler.Name(), outcome)
		}
		signed += sign * float64(n)
	}
	return signed / float64(e.Shots), nil
}

// Energy sums coefficient-weighted expectation estimates over the
// Hamiltonian's terms. There is no caching: every call re-samples every term
// independently, so repeated calls at the same theta return fresh stochastic
// estimates.
func (e *Estimator) Energy(ctx context.Context, h pauli.Hamiltonian, theta float64) (float64, error) {
	var energy float64
	for _, term := range h.Terms {
		value, err := e.Expectation(ctx, theta, term.Observable)
		if err != nil {
			return 0, err
		}
		energy += term.Coefficient * value
	}
	return energy, nil
}

// ExactExpectation evaluates an observable at theta from the full outcome
// distribution instead of sampling, for sweep overlays and test oracles.
func ExactExpectation(theta float64, observable pauli.Observable) (float64, error) {
	if !observable.Known() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidObservable, observable)
	}

	state := circuit.Ansatz(theta)
	if err := state.RotateBasis(observable); err != nil {
		return 0, err
	}

	var value float64
	for i, p := range state.Probabilities() {
		sign, _ := pauli.ParitySign(circuit.Bitstring(i))
		value += sign * p
	}
	return value, nil
}

// ExactEnergy is Energy evaluated on exact expectations.
func ExactEnergy(h pauli.Hamiltonian, theta float64) (float64, error) {
	var energy float64
	for _, term := range h.Terms {
		value, err := ExactExpectation(theta, term.Observable)
		if err != nil {
			return 0, err
		}
		energy += term.Coefficient * value
	}
	return energy, nil
}
