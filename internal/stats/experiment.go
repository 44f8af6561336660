package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
)

const experimentsDir = "experiments"

// TrialSummary is one minimize trial inside a convergence experiment.
// Success means the trial's best energy landed within the experiment's
// threshold of the true ground energy.
type TrialSummary struct {
	RunID       string  `json:"run_id"`
	Seed        int64   `json:"seed"`
	BestTheta   float64 `json:"best_theta"`
	BestEnergy  float64 `json:"best_energy"`
	EnergyError float64 `json:"energy_error"`
	Evaluations int     `json:"evaluations"`
	Converged   bool    `json:"converged"`
	Success     bool    `json:"success"`
}

// Experiment groups repeated minimize trials of one Hamiltonian under a
// shared configuration, for convergence-rate studies.
type Experiment struct {
	ID               string         `json:"id"`
	Hamiltonian      string         `json:"hamiltonian"`
	Optimizer        string         `json:"optimizer,omitempty"`
	Shots            int            `json:"shots"`
	MaxIterations    int            `json:"max_iterations"`
	Trials           int            `json:"trials"`
	SuccessThreshold float64        `json:"success_threshold"`
	Seed             int64          `json:"seed"`
	GroundEnergy     float64        `json:"ground_energy"`
	StartedAtUTC     string         `json:"started_at_utc,omitempty"`
	CompletedAtUTC   string         `json:"completed_at_utc,omitempty"`
	Summaries        []TrialSummary `json:"summaries,omitempty"`
}

// ExperimentStats condenses an experiment's trials into convergence-quality
// numbers.
type ExperimentStats struct {
	TotalTrials     int     `json:"total_trials"`
	SuccessTrials   int     `json:"success_trials"`
	SuccessRate     float64 `json:"success_rate"`
	MeanEnergy      float64 `json:"mean_energy"`
	StdEnergy       float64 `json:"std_energy"`
	MinEnergy       float64 `json:"min_energy"`
	MaxEnergy       float64 `json:"max_energy"`
	MeanEvaluations float64 `json:"mean_evaluations"`
}

func BuildExperimentStats(exp Experiment) ExperimentStats {
	stats := ExperimentStats{TotalTrials: len(exp.Summaries)}
	if stats.TotalTrials == 0 {
		return stats
	}

	energies := make([]float64, 0, len(exp.Summaries))
	var evaluations float64
	for _, trial := range exp.Summaries {
		if trial.Success {
			stats.SuccessTrials++
		}
		energies = append(energies, trial.BestEnergy)
		evaluations += float64(trial.Evaluations)
	}

	stats.SuccessRate = float64(stats.SuccessTrials) / float64(stats.TotalTrials)
	stats.MeanEnergy, stats.StdEnergy = meanStd(energies)
	stats.MinEnergy = energies[0]
	stats.MaxEnergy = energies[0]
	for _, value := range energies[1:] {
		if value < stats.MinEnergy {
			stats.MinEnergy = value
		}
		if value > stats.MaxEnergy {
			stats.MaxEnergy = value
		}
	}
	stats.MeanEvaluations = evaluations / float64(stats.TotalTrials)
	return stats
}

func WriteExperiment(baseDir string, exp Experiment) error {
	if exp.ID == "" {
		return fmt.Errorf("experiment id is required")
	}
	path := experimentPath(baseDir, exp.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func ReadExperiment(baseDir, id string) (Experiment, bool, error) {
	if id == "" {
		return Experiment{}, false, fmt.Errorf("experiment id is required")
	}
	path := experimentPath(baseDir, id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Experiment{}, false, nil
		}
		return Experiment{}, false, err
	}
	var exp Experiment
	if err := json.Unmarshal(data, &exp); err != nil {
		return Experiment{}, false, err
	}
	return exp, true, nil
}

func ListExperiments(baseDir string) ([]Experiment, error) {
	root := filepath.Join(baseDir, experimentsDir)
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return []Experiment{}, nil
		}
		return nil, err
	}

	exps := make([]Experiment, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		exp, ok, err := ReadExperiment(baseDir, entry.Name())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		exps = append(exps, exp)
	}
	sort.Slice(exps, func(i, j int) bool {
		switch {
		case exps[i].StartedAtUTC == exps[j].StartedAtUTC:
			return exps[i].ID < exps[j].ID
		case exps[i].StartedAtUTC == "":
			return false
		case exps[j].StartedAtUTC == "":
			return true
		default:
			return exps[i].StartedAtUTC > exps[j].StartedAtUTC
		}
	})
	return exps, nil
}

// ExperimentDir is the directory holding one experiment's artifacts.
func ExperimentDir(baseDir, id string) string {
	return filepath.Join(baseDir, experimentsDir, id)
}

func experimentPath(baseDir, id string) string {
	return filepath.Join(ExperimentDir(baseDir, id), "experiment.json")
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}
