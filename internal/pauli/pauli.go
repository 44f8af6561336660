package pauli

import (
	"fmt"
	"strings"
)

// Observable labels a two-qubit Pauli-string measurement.
type Observable string

const (
	XX Observable = "XX"
	YY Observable = "YY"
	ZZ Observable = "ZZ"
)

// Observables lists the supported labels in canonical order.
func Observables() []Observable {
	return []Observable{XX, YY, ZZ}
}

// Known reports whether the label is a supported Pauli string.
func (o Observable) Known() bool {
	switch o {
	case XX, YY, ZZ:
		return true
	default:
		return false
	}
}

// ParseObservable canonicalizes a label such as "xx" or " Zz " to an
// Observable.
func ParseObservable(label string) (Observable, bool) {
	o := Observable(strings.ToUpper(strings.TrimSpace(label)))
	if !o.Known() {
		return "", false
	}
	return o, true
}

// ParitySign maps a two-bit computational-basis outcome to the ±1 eigenvalue
// of the measured observable after its basis rotation. Even-parity outcomes
// ("00", "11") contribute +1 and odd-parity outcomes ("01", "10") contribute
// −1; the assignment is the same for all three labels because each rotation
// conjugates the measured observable into Z⊗Z.
func ParitySign(outcome string) (float64, bool) {
	switch outcome {
	case "00", "11":
		return 1, true
	case "01", "10":
		return -1, true
	default:
		return 0, false
	}
}

// Term is one weighted Pauli string of a Hamiltonian decomposition.
type Term struct {
	Coefficient float64    `json:"coefficient"`
	Observable  Observable `json:"observable"`
}

// Hamiltonian is a two-qubit operator expressed as a weighted sum of
// Pauli-string terms. Presets are immutable; Terms is never mutated after
// construction.
type Hamiltonian struct {
	Name  string `json:"name"`
	Terms []Term `json:"terms"`
}

// Matrix builds the real 4×4 computational-basis matrix of the weighted term
// sum, rows and columns ordered |00⟩, |01⟩, |10⟩, |11⟩.
func (h Hamiltonian) Matrix() ([][]float64, error) {
	m := make([][]float64, 4)
	for i := range m {
		m[i] = make([]float64, 4)
	}
	for _, term := range h.Terms {
		base, ok := observableMatrix(term.Observable)
		if !ok {
			return nil, fmt.Errorf("unknown observable in term: %s", term.Observable)
		}
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				m[i][j] += term.Coefficient * base[i][j]
			}
		}
	}
	return m, nil
}

// observableMatrix returns the tensor-product matrix of a Pauli pair. All
// three supported pairs are real: X⊗X and Y⊗Y are antidiagonal, Z⊗Z is
// diagonal.
func observableMatrix(o Observable) ([4][4]float64, bool) {
	switch o {
	case XX:
		return [4][4]float64{
			{0, 0, 0, 1},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{1, 0, 0, 0},
		}, true
	case YY:
		return [4][4]float64{
			{0, 0, 0, -1},
			{0, 0, 1, 0},
			{0, 1, 0, 0},
			{-1, 0, 0, 0},
		}, true
	case ZZ:
		return [4][4]float64{
			{1, 0, 0, 0},
			{0, -1, 0, 0},
			{0, 0, -1, 0},
			{0, 0, 0, 1},
		}, true
	default:
		return [4][4]float64{}, false
	}
}
