// Package circuit is the quantum collaborator for the estimator: it prepares
// the fixed two-qubit ansatz state for a parameter theta, applies the
// measurement-basis rotation an observable needs, and exposes the outcome
// distribution. It is not a general simulator; only the gates the ansatz and
// the rotations use are implemented, and only for two qubits.
package circuit

import (
	"fmt"
	"math"
	"math/cmplx"

	"singlet/internal/pauli"
)

// State is a two-qubit computational-basis statevector. Bit q of a basis
// index is qubit q, so outcome strings render qubit 1 first.
type State [4]complex128

// NewState returns |00⟩.
func NewState() *State {
	return &State{1, 0, 0, 0}
}

// ApplyH applies a Hadamard gate to qubit q.
func (s *State) ApplyH(q int) {
	factor := complex(1/math.Sqrt2, 0)
	bit := 1 << q
	for i := 0; i < len(s); i++ {
		if i&bit == 0 {
			j := i | bit
			s[i], s[j] = factor*(s[i]+s[j]), factor*(s[i]-s[j])
		}
	}
}

// ApplyX applies a Pauli-X gate to qubit q.
func (s *State) ApplyX(q int) {
	bit := 1 << q
	for i := 0; i < len(s); i++ {
		if i&bit == 0 {
			j := i | bit
			s[i], s[j] = s[j], s[i]
		}
	}
}

// ApplySdg applies the inverse phase gate S† to qubit q.
func (s *State) ApplySdg(q int) {
	bit := 1 << q
	for i := 0; i < len(s); i++ {
		if i&bit != 0 {
			s[i] *= -1i
		}
	}
}

// ApplyRZ applies a Z rotation by theta to qubit q.
func (s *State) ApplyRZ(q int, theta float64) {
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < len(s); i++ {
		if i&bit != 0 {
			s[i] *= phase
		} else {
			s[i] *= cmplx.Conj(phase)
		}
	}
}

// ApplyCNOT applies a controlled-X gate.
func (s *State) ApplyCNOT(control, target int) {
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < len(s); i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s[i], s[j] = s[j], s[i]
		}
	}
}

// RotateBasis applies the measurement-basis rotation for an observable so a
// computational-basis parity measurement reads it out: nothing for ZZ, H per
// qubit for XX, S† then H per qubit for YY. Unknown observables are rejected
// rather than measured in a default basis.
func (s *State) RotateBasis(observable pauli.Observable) error {
	switch observable {
	case pauli.ZZ:
		return nil
	case pauli.XX:
		s.ApplyH(0)
		s.ApplyH(1)
		return nil
	case pauli.YY:
		s.ApplySdg(0)
		s.ApplyH(0)
		s.ApplySdg(1)
		s.ApplyH(1)
		return nil
	default:
		return fmt.Errorf("no basis rotation for observable: %s", observable)
	}
}

// Probabilities returns the outcome distribution over the four basis states
// in index order.
func (s *State) Probabilities() [4]float64 {
	var probs [4]float64
	for i, amp := range s {
		probs[i] = real(amp * cmplx.Conj(amp))
	}
	return probs
}

// Ansatz prepares the trial state for theta: H on qubit 0, CNOT from qubit 0
// to qubit 1, X on qubit 0, then RZ(theta) on qubit 0. The result is
// (|01⟩ + e^{−iθ}|10⟩)/√2 up to a global phase.
func Ansatz(theta float64) *State {
	s := NewState()
	s.ApplyH(0)
	s.ApplyCNOT(0, 1)
	s.ApplyX(0)
	s.ApplyRZ(0, theta)
	return s
}

// Bitstring renders a basis-state index as a two-bit outcome string.
func Bitstring(index int) string {
	return fmt.Sprintf("%02b", index)
}
