package sampler

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"singlet/internal/pauli"
)

func TestSampleCountsTotalShots(t *testing.T) {
	s := &Statevector{Rand: rand.New(rand.NewSource(1))}
	for _, observable := range pauli.Observables() {
		counts, err := s.Sample(context.Background(), 0.7, observable, 500)
		if err != nil {
			t.Fatalf("sample %s: %v", observable, err)
		}
		if got := counts.Total(); got != 500 {
			t.Fatalf("%s counts total %d want 500", observable, got)
		}
		for outcome := range counts {
			if _, ok := pauli.ParitySign(outcome); !ok {
				t.Fatalf("%s produced invalid outcome %q", observable, outcome)
			}
		}
	}
}

func TestSampleZZIsOddParityOnly(t *testing.T) {
	s := &Statevector{Rand: rand.New(rand.NewSource(2))}
	counts, err := s.Sample(context.Background(), 1.3, pauli.ZZ, 1000)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if counts["00"] != 0 || counts["11"] != 0 {
		t.Fatalf("zz basis produced even-parity outcomes: %v", counts)
	}
	if counts["01"]+counts["10"] != 1000 {
		t.Fatalf("zz counts total mismatch: %v", counts)
	}
}

func TestSampleXXAtZeroThetaIsEvenParityOnly(t *testing.T) {
	s := &Statevector{Rand: rand.New(rand.NewSource(3))}
	counts, err := s.Sample(context.Background(), 0, pauli.XX, 1000)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if counts["01"] != 0 || counts["10"] != 0 {
		t.Fatalf("xx basis at theta=0 produced odd-parity outcomes: %v", counts)
	}
}

func TestSampleFrequenciesTrackDistribution(t *testing.T) {
	s := &Statevector{Rand: rand.New(rand.NewSource(4))}
	counts, err := s.Sample(context.Background(), math.Pi/3, pauli.XX, 20000)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}

	evenFraction := float64(counts["00"]+counts["11"]) / float64(counts.Total())
	// Even-parity probability in the XX basis is (1+cos theta)/2 = 0.75.
	if math.Abs(evenFraction-0.75) > 0.02 {
		t.Fatalf("even-parity fraction %v want 0.75±0.02", evenFraction)
	}
}

func TestSampleValidation(t *testing.T) {
	ctx := context.Background()
	seeded := &Statevector{Rand: rand.New(rand.NewSource(5))}

	if _, err := (&Statevector{}).Sample(ctx, 0, pauli.XX, 10); err == nil {
		t.Fatalf("expected missing random source to fail")
	}
	if _, err := seeded.Sample(ctx, 0, pauli.XX, 0); err == nil {
		t.Fatalf("expected zero shots to fail")
	}
	if _, err := seeded.Sample(ctx, 0, pauli.XX, -3); err == nil {
		t.Fatalf("expected negative shots to fail")
	}
	if _, err := seeded.Sample(ctx, 0, "XZ", 10); err == nil {
		t.Fatalf("expected unknown observable to fail")
	}
}

func TestSampleHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Statevector{Rand: rand.New(rand.NewSource(6))}
	if _, err := s.Sample(ctx, 0, pauli.XX, 10); err == nil {
		t.Fatalf("expected cancelled context to fail")
	}
}
