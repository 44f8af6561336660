package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"singlet/internal/model"
)

func TestDecodeRunFixture(t *testing.T) {
	run := decodeRunFixture(t, "minimal_run_v1.json")
	if run.RunID != "run-minimal-1" {
		t.Fatalf("unexpected run id: %s", run.RunID)
	}
	if run.Hamiltonian != "heisenberg" {
		t.Fatalf("unexpected hamiltonian: %s", run.Hamiltonian)
	}
	if len(run.Trace) != 2 || run.Trace[0].Iteration != 1 {
		t.Fatalf("unexpected trace: %+v", run.Trace)
	}
}

func TestDecodeSweepFixture(t *testing.T) {
	path := fixturePath("minimal_sweep_v1.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	sweep, err := DecodeSweep(data)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	if sweep.SweepID != "sweep-minimal-1" {
		t.Fatalf("unexpected sweep id: %s", sweep.SweepID)
	}
	if len(sweep.Points) != 3 || sweep.Points[2].ExactEnergy != -2 {
		t.Fatalf("unexpected points: %+v", sweep.Points)
	}
}

func TestRunCodecRoundTrip(t *testing.T) {
	input := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           "r1",
		Hamiltonian:     "xxz",
		Shots:           2048,
		MaxIterations:   80,
		Restarts:        3,
		Tolerance:       1e-4,
		Seed:            42,
		BestTheta:       3.1405,
		BestEnergy:      -3.96,
		GroundEnergy:    -4,
		EnergyError:     0.04,
		Evaluations:     231,
		Converged:       true,
		Trace: []model.TraceStep{
			{Iteration: 1, Theta: 0, Energy: 0.02, EnergyError: 4.02},
		},
		CreatedAtUTC: "2025-11-03T10:15:42Z",
	}

	encoded, err := EncodeRun(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeRun(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(decoded, input) {
		t.Fatalf("decoded run mismatch: got=%+v want=%+v", decoded, input)
	}
}

func TestRunCodecRoundTripFixtureEquality(t *testing.T) {
	expected := decodeRunFixture(t, "minimal_run_v1.json")

	encoded, err := EncodeRun(expected)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	actual, err := DecodeRun(encoded)
	if err != nil {
		t.Fatalf("decode roundtrip: %v", err)
	}

	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("roundtrip mismatch\nactual=%+v\nexpected=%+v", actual, expected)
	}
}

func TestSweepCodecRoundTrip(t *testing.T) {
	input := model.SweepRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		SweepID:         "s1",
		Hamiltonian:     "ising-zz",
		Shots:           512,
		Seed:            11,
		GroundEnergy:    -1,
		Points: []model.SweepPoint{
			{Theta: 0, Energy: -1, ExactEnergy: -1},
			{Theta: 1.5707963267948966, Energy: -1, ExactEnergy: -1},
		},
		CreatedAtUTC: "2025-11-03T10:20:05Z",
	}

	encoded, err := EncodeSweep(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeSweep(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(decoded, input) {
		t.Fatalf("decoded sweep mismatch: got=%+v want=%+v", decoded, input)
	}
}

func TestDecodeRunVersionMismatch(t *testing.T) {
	run := decodeRunFixture(t, "minimal_run_v1.json")
	run.CodecVersion++

	encoded, err := EncodeRun(run)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	_, err = DecodeRun(encoded)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got: %v", err)
	}
}

func TestDecodeSweepVersionMismatch(t *testing.T) {
	path := fixturePath("minimal_sweep_v1.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	sweep, err := DecodeSweep(data)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	sweep.SchemaVersion++

	encoded, err := EncodeSweep(sweep)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	_, err = DecodeSweep(encoded)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got: %v", err)
	}
}

func fixturePath(name string) string {
	return filepath.Join("..", "..", "testdata", "fixtures", name)
}

func decodeRunFixture(t *testing.T, name string) model.RunRecord {
	t.Helper()

	path := fixturePath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	run, err := DecodeRun(data)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	return run
}
