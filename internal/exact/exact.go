// Package exact computes reference spectra of the preset Hamiltonians by
// dense diagonalization, giving the optimizer its true-minimum reference and
// the console its "true vs. estimated" comparison.
package exact

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"singlet/internal/pauli"
)

const (
	maxSweeps            = 50
	convergenceTolerance = 1e-12
	symmetryTolerance    = 1e-9
)

// Eigenvalues diagonalizes a real symmetric matrix with the cyclic Jacobi
// method and returns its eigenvalues in ascending order. The input is not
// modified.
func Eigenvalues(matrix [][]float64) ([]float64, error) {
	n := len(matrix)
	if n == 0 {
		return nil, errors.New("matrix is empty")
	}
	for i, row := range matrix {
		if len(row) != n {
			return nil, fmt.Errorf("matrix row %d has %d columns, want %d", i, len(row), n)
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(matrix[i][j]-matrix[j][i]) > symmetryTolerance {
				return nil, fmt.Errorf("matrix is not symmetric at (%d,%d)", i, j)
			}
		}
	}

	a := make([][]float64, n)
	for i := range a {
		a[i] = append([]float64(nil), matrix[i]...)
	}

	for sweep := 0; sweep < maxSweeps; sweep++ {
		if offDiagonalNorm(a) < convergenceTolerance {
			break
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				rotate(a, p, q)
			}
		}
	}

	values := make([]float64, n)
	for i := range values {
		values[i] = a[i][i]
	}
	sort.Float64s(values)
	return values, nil
}

// rotate applies one Jacobi rotation in the (p, q) plane, zeroing a[p][q].
func rotate(a [][]float64, p, q int) {
	if math.Abs(a[p][q]) < convergenceTolerance {
		return
	}
	tau := (a[q][q] - a[p][p]) / (2 * a[p][q])
	t := 1 / (math.Abs(tau) + math.Sqrt(1+tau*tau))
	if tau < 0 {
		t = -t
	}
	c := 1 / math.Sqrt(1+t*t)
	s := t * c

	for k := range a {
		akp, akq := a[k][p], a[k][q]
		a[k][p] = c*akp - s*akq
		a[k][q] = s*akp + c*akq
	}
	for k := range a {
		apk, aqk := a[p][k], a[q][k]
		a[p][k] = c*apk - s*aqk
		a[q][k] = s*apk + c*aqk
	}
}

func offDiagonalNorm(a [][]float64) float64 {
	var sum float64
	for i := range a {
		for j := range a[i] {
			if i != j {
				sum += a[i][j] * a[i][j]
			}
		}
	}
	return math.Sqrt(sum)
}

// Spectrum returns the eigenvalues of a Hamiltonian in ascending order.
func Spectrum(h pauli.Hamiltonian) ([]float64, error) {
	m, err := h.Matrix()
	if err != nil {
		return nil, err
	}
	return Eigenvalues(m)
}

// GroundEnergy returns the minimum eigenvalue of a Hamiltonian.
func GroundEnergy(h pauli.Hamiltonian) (float64, error) {
	values, err := Spectrum(h)
	if err != nil {
		return 0, err
	}
	return values[0], nil
}
