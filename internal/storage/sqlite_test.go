//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"singlet/internal/model"
)

func TestSQLiteStoreRunAndSweepRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "singlet.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           "heisenberg-1a2b3c4d",
		Hamiltonian:     "heisenberg",
		Shots:           1024,
		MaxIterations:   60,
		Restarts:        1,
		Seed:            7,
		BestTheta:       3.1399,
		BestEnergy:      -2.97,
		GroundEnergy:    -3,
		EnergyError:     0.03,
		Evaluations:     58,
		Converged:       true,
		Trace: []model.TraceStep{
			{Iteration: 1, Theta: 0, Energy: 1.01, EnergyError: 4.01},
		},
	}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}

	loadedRun, ok, err := store.GetRun(ctx, run.RunID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatalf("expected run %s", run.RunID)
	}
	if loadedRun.RunID != run.RunID || len(loadedRun.Trace) != len(run.Trace) {
		t.Fatalf("unexpected run loaded: %+v", loadedRun)
	}

	sweep := model.SweepRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		SweepID:         "xy-5e6f7a8b",
		Hamiltonian:     "xy",
		Shots:           512,
		Seed:            11,
		GroundEnergy:    -2,
		Points: []model.SweepPoint{
			{Theta: 0, Energy: 2.01, ExactEnergy: 2},
			{Theta: 3.14159, Energy: -1.99, ExactEnergy: -2},
		},
	}
	if err := store.SaveSweep(ctx, sweep); err != nil {
		t.Fatalf("save sweep: %v", err)
	}

	loadedSweep, ok, err := store.GetSweep(ctx, sweep.SweepID)
	if err != nil {
		t.Fatalf("get sweep: %v", err)
	}
	if !ok {
		t.Fatalf("expected sweep %s", sweep.SweepID)
	}
	if loadedSweep.SweepID != sweep.SweepID || loadedSweep.Points[1].ExactEnergy != -2 {
		t.Fatalf("unexpected sweep loaded: %+v", loadedSweep)
	}
}

func TestSQLiteStoreMissingRun(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "singlet.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	_, ok, err := store.GetRun(ctx, "absent")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if ok {
		t.Fatal("expected no run for unknown id")
	}
}

func TestSQLiteStoreUpsertsRun(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "singlet.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           "run-upsert",
		BestEnergy:      -1.5,
	}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("first save: %v", err)
	}

	run.BestEnergy = -2.5
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, ok, err := store.GetRun(ctx, run.RunID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("expected upserted run")
	}
	if loaded.BestEnergy != -2.5 {
		t.Fatalf("expected updated energy, got %f", loaded.BestEnergy)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "singlet.db")

	first := NewSQLiteStore(dbPath)
	if err := first.Init(ctx); err != nil {
		t.Fatalf("first init: %v", err)
	}
	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           "persisted-run",
	}
	if err := first.SaveRun(ctx, run); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	second := NewSQLiteStore(dbPath)
	if err := second.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	t.Cleanup(func() {
		_ = second.Close()
	})

	loaded, ok, err := second.GetRun(ctx, run.RunID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if !ok || loaded.RunID != run.RunID {
		t.Fatalf("expected persisted run, got ok=%t value=%+v", ok, loaded)
	}
}
