package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	singletapi "singlet/pkg/singlet"
)

func singletRunRequestFixture() singletapi.RunRequest {
	return singletapi.RunRequest{
		Hamiltonian:   "xy",
		Optimizer:     "hill-climb",
		Shots:         256,
		MaxIterations: 30,
		Restarts:      2,
		Tolerance:     0.01,
		Seed:          7,
	}
}

func TestLoadRunRequestFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_config.json")
	payload := map[string]any{
		"run_id":         "configured-run",
		"hamiltonian":    "xxz",
		"optimizer":      "hill-climb",
		"shots":          512,
		"max_iterations": 60,
		"restarts":       3,
		"tolerance":      0.005,
		"initial_theta":  2.5,
		"seed":           42,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	req, err := loadRunRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load run request: %v", err)
	}
	if req.RunID != "configured-run" || req.Hamiltonian != "xxz" || req.Optimizer != "hill-climb" {
		t.Fatalf("unexpected identity fields: %+v", req)
	}
	if req.Shots != 512 || req.MaxIterations != 60 || req.Restarts != 3 {
		t.Fatalf("unexpected budget fields: %+v", req)
	}
	if req.Tolerance != 0.005 {
		t.Fatalf("tolerance = %v, want 0.005", req.Tolerance)
	}
	if req.InitialTheta == nil || *req.InitialTheta != 2.5 {
		t.Fatalf("initial theta = %v, want pointer to 2.5", req.InitialTheta)
	}
	if req.Seed != 42 {
		t.Fatalf("seed = %d, want 42", req.Seed)
	}
}

func TestLoadRunRequestFromConfigLeavesOmittedFieldsZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_config.json")
	if err := os.WriteFile(path, []byte(`{"hamiltonian":"xy"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	req, err := loadRunRequestFromConfig(path)
	if err != nil {
		t.Fatalf("load run request: %v", err)
	}
	if req.Hamiltonian != "xy" {
		t.Fatalf("hamiltonian = %q, want xy", req.Hamiltonian)
	}
	if req.Shots != 0 || req.MaxIterations != 0 || req.Seed != 0 {
		t.Fatalf("expected zero defaults for omitted fields: %+v", req)
	}
	if req.InitialTheta != nil {
		t.Fatalf("initial theta = %v, want nil when omitted", req.InitialTheta)
	}
}

func TestLoadOrDefaultRunRequest(t *testing.T) {
	req, err := loadOrDefaultRunRequest("")
	if err != nil {
		t.Fatalf("empty path: %v", err)
	}
	if req.Hamiltonian != "" || req.Shots != 0 {
		t.Fatalf("expected zero request for empty path, got %+v", req)
	}

	if _, err := loadOrDefaultRunRequest(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestOverrideFromFlags(t *testing.T) {
	theta := 1.0
	req := singletRunRequestFixture()
	req.InitialTheta = &theta

	overrideFromFlags(&req, map[string]bool{
		"shots":         true,
		"seed":          true,
		"initial-theta": true,
		"optimizer":     true,
	}, map[string]any{
		"shots":         2048,
		"seed":          int64(99),
		"initial-theta": 3.0,
		"hamiltonian":   "ising-zz",
		"optimizer":     "nelder-mead",
	})

	if req.Shots != 2048 {
		t.Fatalf("shots override = %d, want 2048", req.Shots)
	}
	if req.Seed != 99 {
		t.Fatalf("seed override = %d, want 99", req.Seed)
	}
	if req.InitialTheta == nil || *req.InitialTheta != 3.0 {
		t.Fatalf("initial theta override = %v, want pointer to 3.0", req.InitialTheta)
	}
	if req.Optimizer != "nelder-mead" {
		t.Fatalf("optimizer override = %q, want nelder-mead", req.Optimizer)
	}
	if req.Hamiltonian != "xy" {
		t.Fatalf("hamiltonian = %q, want unset flag to keep config value", req.Hamiltonian)
	}
	if req.MaxIterations != 30 {
		t.Fatalf("max iterations = %d, want untouched 30", req.MaxIterations)
	}
}

func TestOverrideFromFlagsDefaultsHamiltonian(t *testing.T) {
	var req = singletRunRequestFixture()
	req.Hamiltonian = ""

	overrideFromFlags(&req, map[string]bool{}, map[string]any{})

	if req.Hamiltonian != "heisenberg" {
		t.Fatalf("hamiltonian = %q, want heisenberg fallback", req.Hamiltonian)
	}
}
