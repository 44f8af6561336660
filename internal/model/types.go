package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// TraceStep is one diagnostic record of the minimization loop, appended after
// every objective evaluation. EnergyError is Energy minus the reference
// ground-state energy supplied to the optimizer.
type TraceStep struct {
	Iteration   int     `json:"iteration"`
	Theta       float64 `json:"theta"`
	Energy      float64 `json:"energy"`
	EnergyError float64 `json:"energy_error"`
}

// RunRecord is the persistent result of one minimization run.
type RunRecord struct {
	VersionedRecord
	RunID         string      `json:"run_id"`
	Hamiltonian   string      `json:"hamiltonian"`
	Optimizer     string      `json:"optimizer,omitempty"`
	Shots         int         `json:"shots"`
	MaxIterations int         `json:"max_iterations"`
	Restarts      int         `json:"restarts"`
	Tolerance     float64     `json:"tolerance"`
	Seed          int64       `json:"seed"`
	BestTheta     float64     `json:"best_theta"`
	BestEnergy    float64     `json:"best_energy"`
	GroundEnergy  float64     `json:"ground_energy"`
	EnergyError   float64     `json:"energy_error"`
	Evaluations   int         `json:"evaluations"`
	Converged     bool        `json:"converged"`
	Trace         []TraceStep `json:"trace"`
	CreatedAtUTC  string      `json:"created_at_utc"`
}

// SweepPoint is one grid point of an energy landscape sweep. Energy is the
// sampled estimate at the sweep's shot count; ExactEnergy is the infinite-shot
// statevector value at the same theta.
type SweepPoint struct {
	Theta       float64 `json:"theta"`
	Energy      float64 `json:"energy"`
	ExactEnergy float64 `json:"exact_energy"`
}

// SweepRecord is the persistent result of one energy landscape sweep.
type SweepRecord struct {
	VersionedRecord
	SweepID      string       `json:"sweep_id"`
	Hamiltonian  string       `json:"hamiltonian"`
	Shots        int          `json:"shots"`
	Seed         int64        `json:"seed"`
	GroundEnergy float64      `json:"ground_energy"`
	Points       []SweepPoint `json:"points"`
	CreatedAtUTC string       `json:"created_at_utc"`
}
