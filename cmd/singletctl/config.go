package main

import (
	"encoding/json"
	"fmt"
	"os"

	singletapi "singlet/pkg/singlet"
)

func loadRunRequestFromConfig(path string) (singletapi.RunRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return singletapi.RunRequest{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return singletapi.RunRequest{}, err
	}

	var req singletapi.RunRequest
	if v, ok := asString(raw["run_id"]); ok {
		req.RunID = v
	}
	if v, ok := asString(raw["hamiltonian"]); ok {
		req.Hamiltonian = v
	}
	if v, ok := asString(raw["optimizer"]); ok {
		req.Optimizer = v
	}
	if v, ok := asInt(raw["shots"]); ok {
		req.Shots = v
	}
	if v, ok := asInt(raw["max_iterations"]); ok {
		req.MaxIterations = v
	}
	if v, ok := asInt(raw["restarts"]); ok {
		req.Restarts = v
	}
	if v, ok := asFloat64(raw["tolerance"]); ok {
		req.Tolerance = v
	}
	if v, ok := asFloat64(raw["initial_theta"]); ok {
		theta := v
		req.InitialTheta = &theta
	}
	if v, ok := asInt64(raw["seed"]); ok {
		req.Seed = v
	}

	return req, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func overrideFromFlags(req *singletapi.RunRequest, set map[string]bool, flagValue map[string]any) {
	for name := range set {
		v, ok := flagValue[name]
		if !ok {
			continue
		}
		switch name {
		case "run-id":
			req.RunID = v.(string)
		case "hamiltonian":
			req.Hamiltonian = v.(string)
		case "optimizer":
			req.Optimizer = v.(string)
		case "shots":
			req.Shots = v.(int)
		case "max-iterations":
			req.MaxIterations = v.(int)
		case "restarts":
			req.Restarts = v.(int)
		case "tolerance":
			req.Tolerance = v.(float64)
		case "initial-theta":
			theta := v.(float64)
			req.InitialTheta = &theta
		case "seed":
			req.Seed = v.(int64)
		}
	}
	if req.Hamiltonian == "" {
		req.Hamiltonian = "heisenberg"
	}
}

func loadOrDefaultRunRequest(configPath string) (singletapi.RunRequest, error) {
	if configPath == "" {
		return singletapi.RunRequest{}, nil
	}
	req, err := loadRunRequestFromConfig(configPath)
	if err != nil {
		return singletapi.RunRequest{}, fmt.Errorf("load config: %w", err)
	}
	return req, nil
}
