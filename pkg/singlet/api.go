// Package singlet is the public client facade: it wires the sampler,
// estimator, optimizer, exact solver, artifacts, and store into complete
// operations the CLI (or an embedding program) calls.
package singlet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"singlet/internal/estimator"
	"singlet/internal/exact"
	"singlet/internal/model"
	"singlet/internal/optimize"
	"singlet/internal/pauli"
	"singlet/internal/sampler"
	"singlet/internal/stats"
	"singlet/internal/storage"
)

const (
	defaultResultsDir = "results"
	defaultExportsDir = "exports"
	defaultDBPath     = "singlet.db"

	defaultHamiltonian      = "heisenberg"
	defaultShots            = 1024
	defaultMaxIterations    = 100
	defaultRestarts         = 1
	defaultTolerance        = 1e-3
	defaultSweepPoints      = 50
	defaultTrials           = 20
	defaultSuccessThreshold = 0.2
	defaultListLimit        = 20

	// Hill-climb knobs; tolerance applies only to the simplex driver.
	hillClimbStepSize  = 0.5
	hillClimbAnnealing = 0.9
	hillClimbMaxStale  = 25
)

type Options struct {
	StoreKind  string
	DBPath     string
	ResultsDir string
	ExportsDir string
}

type Client struct {
	store       storage.Store
	initialized bool

	resultsDir string
	exportsDir string
}

type RunRequest struct {
	RunID         string
	Hamiltonian   string
	Optimizer     string
	Shots         int
	MaxIterations int
	Restarts      int
	Tolerance     float64
	InitialTheta  *float64
	Seed          int64
	TraceWriter   io.Writer
}

type RunSummary struct {
	RunID        string
	Hamiltonian  string
	Optimizer    string
	ArtifactsDir string
	Shots        int
	BestTheta    float64
	BestEnergy   float64
	GroundEnergy float64
	EnergyError  float64
	Evaluations  int
	Converged    bool
}

type EstimateRequest struct {
	Observable string
	Theta      float64
	Shots      int
	Seed       int64
}

type EstimateSummary struct {
	Observable string
	Theta      float64
	Shots      int
	Estimate   float64
	Exact      float64
}

type EnergyRequest struct {
	Hamiltonian string
	Theta       float64
	Shots       int
	Seed        int64
}

type EnergySummary struct {
	Hamiltonian string
	Theta       float64
	Shots       int
	Energy      float64
	ExactEnergy float64
}

type SweepRequest struct {
	SweepID     string
	Hamiltonian string
	Shots       int
	Points      int
	Seed        int64
}

type SweepSummary struct {
	SweepID      string
	Hamiltonian  string
	ArtifactsDir string
	Points       int
	GroundEnergy float64
	MinTheta     float64
	MinEnergy    float64
}

type ExactRequest struct {
	Hamiltonian string
}

type ExactSummary struct {
	Hamiltonian  string
	Eigenvalues  []float64
	GroundEnergy float64
}

type HamiltonianItem struct {
	Name         string
	Terms        string
	GroundEnergy float64
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Hamiltonian  string
	Optimizer    string
	Shots        int
	Seed         int64
	BestEnergy   float64
	GroundEnergy float64
	EnergyError  float64
	Converged    bool
}

type TraceRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

type ExperimentRequest struct {
	Hamiltonian      string
	Optimizer        string
	Shots            int
	MaxIterations    int
	Restarts         int
	Tolerance        float64
	Trials           int
	SuccessThreshold float64
	Seed             int64
}

type ExperimentSummary struct {
	ExperimentID    string
	Hamiltonian     string
	Optimizer       string
	ArtifactsDir    string
	Trials          int
	SuccessRate     float64
	MeanEnergy      float64
	StdEnergy       float64
	MeanEvaluations float64
	GroundEnergy    float64
}

type ExperimentsRequest struct {
	Limit int
}

type ExperimentItem struct {
	ExperimentID string
	Hamiltonian  string
	Trials       int
	SuccessRate  float64
	StartedAtUTC string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	resultsDir := opts.ResultsDir
	if resultsDir == "" {
		resultsDir = defaultResultsDir
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		resultsDir: resultsDir,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.ensureStore(ctx)
}

// Run executes one complete variational minimization: resolve the preset,
// compute the exact reference energy, minimize the sampled energy, then write
// artifacts and persist the run record.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Hamiltonian == "" {
		req.Hamiltonian = defaultHamiltonian
	}
	if req.Shots <= 0 {
		req.Shots = defaultShots
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = defaultMaxIterations
	}
	if req.Restarts <= 0 {
		req.Restarts = defaultRestarts
	}
	if req.Tolerance <= 0 {
		req.Tolerance = defaultTolerance
	}
	req.Optimizer = optimize.NormalizeDriverName(req.Optimizer)

	h, err := pauli.Preset(req.Hamiltonian)
	if err != nil {
		return RunSummary{}, err
	}
	ground, err := exact.GroundEnergy(h)
	if err != nil {
		return RunSummary{}, err
	}

	runID := req.RunID
	if runID == "" {
		runID = newID(h.Name)
	}

	trace := &optimize.TraceRecorder{}
	var recorder optimize.Recorder = trace
	if req.TraceWriter != nil {
		recorder = optimize.MultiRecorder{trace, optimize.PrintRecorder{W: req.TraceWriter}}
	}

	var initial []float64
	if req.InitialTheta != nil {
		initial = []float64{*req.InitialTheta}
	}

	result, err := minimizeEnergy(ctx, minimizeConfig{
		hamiltonian:   h,
		ground:        ground,
		optimizer:     req.Optimizer,
		shots:         req.Shots,
		maxIterations: req.MaxIterations,
		restarts:      req.Restarts,
		tolerance:     req.Tolerance,
		initial:       initial,
		seed:          req.Seed,
		recorder:      recorder,
	})
	if err != nil {
		return RunSummary{}, err
	}

	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	steps := traceSteps(trace.Steps)
	energyError := result.Value - ground

	runDir, err := stats.WriteRunArtifacts(c.resultsDir, stats.RunArtifacts{
		Config: stats.RunConfig{
			RunID:         runID,
			Hamiltonian:   h.Name,
			Optimizer:     req.Optimizer,
			Shots:         req.Shots,
			MaxIterations: req.MaxIterations,
			Restarts:      req.Restarts,
			Tolerance:     req.Tolerance,
			InitialTheta:  req.InitialTheta,
			Seed:          req.Seed,
		},
		Trace: steps,
		Result: stats.RunResult{
			RunID:        runID,
			Hamiltonian:  h.Name,
			BestTheta:    result.Params[0],
			BestEnergy:   result.Value,
			GroundEnergy: ground,
			EnergyError:  energyError,
			Evaluations:  result.Evaluations,
			Converged:    result.Converged,
			CreatedAtUTC: createdAt,
		},
	})
	if err != nil {
		return RunSummary{}, err
	}

	if err := stats.AppendRunIndex(c.resultsDir, stats.RunIndexEntry{
		RunID:         runID,
		Hamiltonian:   h.Name,
		Optimizer:     req.Optimizer,
		Shots:         req.Shots,
		MaxIterations: req.MaxIterations,
		Restarts:      req.Restarts,
		Seed:          req.Seed,
		BestEnergy:    result.Value,
		GroundEnergy:  ground,
		EnergyError:   energyError,
		Converged:     result.Converged,
		CreatedAtUTC:  createdAt,
	}); err != nil {
		return RunSummary{}, err
	}

	if err := c.ensureStore(ctx); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveRun(ctx, model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		RunID:         runID,
		Hamiltonian:   h.Name,
		Optimizer:     req.Optimizer,
		Shots:         req.Shots,
		MaxIterations: req.MaxIterations,
		Restarts:      req.Restarts,
		Tolerance:     req.Tolerance,
		Seed:          req.Seed,
		BestTheta:     result.Params[0],
		BestEnergy:    result.Value,
		GroundEnergy:  ground,
		EnergyError:   energyError,
		Evaluations:   result.Evaluations,
		Converged:     result.Converged,
		Trace:         steps,
		CreatedAtUTC:  createdAt,
	}); err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:        runID,
		Hamiltonian:  h.Name,
		Optimizer:    req.Optimizer,
		ArtifactsDir: filepath.Clean(runDir),
		Shots:        req.Shots,
		BestTheta:    result.Params[0],
		BestEnergy:   result.Value,
		GroundEnergy: ground,
		EnergyError:  energyError,
		Evaluations:  result.Evaluations,
		Converged:    result.Converged,
	}, nil
}

// Estimate measures a single Pauli observable at theta and reports the
// sampled estimate next to the exact statevector value.
func (c *Client) Estimate(ctx context.Context, req EstimateRequest) (EstimateSummary, error) {
	if req.Shots <= 0 {
		req.Shots = defaultShots
	}
	observable, ok := pauli.ParseObservable(req.Observable)
	if !ok {
		observable = pauli.Observable(req.Observable)
	}

	est := newEstimator(req.Seed, req.Shots)
	estimate, err := est.Expectation(ctx, req.Theta, observable)
	if err != nil {
		return EstimateSummary{}, err
	}
	exactValue, err := estimator.ExactExpectation(req.Theta, observable)
	if err != nil {
		return EstimateSummary{}, err
	}

	return EstimateSummary{
		Observable: string(observable),
		Theta:      req.Theta,
		Shots:      req.Shots,
		Estimate:   estimate,
		Exact:      exactValue,
	}, nil
}

// Energy evaluates a preset Hamiltonian's sampled energy at theta.
func (c *Client) Energy(ctx context.Context, req EnergyRequest) (EnergySummary, error) {
	if req.Hamiltonian == "" {
		req.Hamiltonian = defaultHamiltonian
	}
	if req.Shots <= 0 {
		req.Shots = defaultShots
	}

	h, err := pauli.Preset(req.Hamiltonian)
	if err != nil {
		return EnergySummary{}, err
	}

	est := newEstimator(req.Seed, req.Shots)
	energy, err := est.Energy(ctx, h, req.Theta)
	if err != nil {
		return EnergySummary{}, err
	}
	exactEnergy, err := estimator.ExactEnergy(h, req.Theta)
	if err != nil {
		return EnergySummary{}, err
	}

	return EnergySummary{
		Hamiltonian: h.Name,
		Theta:       req.Theta,
		Shots:       req.Shots,
		Energy:      energy,
		ExactEnergy: exactEnergy,
	}, nil
}

// Sweep evaluates the sampled and exact energy on a theta grid over [0, 2π)
// and persists the series as a sweep record plus CSV artifact.
func (c *Client) Sweep(ctx context.Context, req SweepRequest) (SweepSummary, error) {
	if req.Hamiltonian == "" {
		req.Hamiltonian = defaultHamiltonian
	}
	if req.Shots <= 0 {
		req.Shots = defaultShots
	}
	if req.Points <= 0 {
		req.Points = defaultSweepPoints
	}

	h, err := pauli.Preset(req.Hamiltonian)
	if err != nil {
		return SweepSummary{}, err
	}
	ground, err := exact.GroundEnergy(h)
	if err != nil {
		return SweepSummary{}, err
	}

	est := newEstimator(req.Seed, req.Shots)
	points := make([]model.SweepPoint, 0, req.Points)
	for i := 0; i < req.Points; i++ {
		if err := ctx.Err(); err != nil {
			return SweepSummary{}, err
		}
		theta := 2 * math.Pi * float64(i) / float64(req.Points)
		energy, err := est.Energy(ctx, h, theta)
		if err != nil {
			return SweepSummary{}, err
		}
		exactEnergy, err := estimator.ExactEnergy(h, theta)
		if err != nil {
			return SweepSummary{}, err
		}
		points = append(points, model.SweepPoint{Theta: theta, Energy: energy, ExactEnergy: exactEnergy})
	}

	sweepID := req.SweepID
	if sweepID == "" {
		sweepID = newID(h.Name)
	}

	record := model.SweepRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		SweepID:      sweepID,
		Hamiltonian:  h.Name,
		Shots:        req.Shots,
		Seed:         req.Seed,
		GroundEnergy: ground,
		Points:       points,
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339Nano),
	}

	sweepDir, err := stats.WriteSweepArtifacts(c.resultsDir, record)
	if err != nil {
		return SweepSummary{}, err
	}
	if err := c.ensureStore(ctx); err != nil {
		return SweepSummary{}, err
	}
	if err := c.store.SaveSweep(ctx, record); err != nil {
		return SweepSummary{}, err
	}

	minTheta, minEnergy := points[0].Theta, points[0].Energy
	for _, point := range points[1:] {
		if point.Energy < minEnergy {
			minTheta, minEnergy = point.Theta, point.Energy
		}
	}

	return SweepSummary{
		SweepID:      sweepID,
		Hamiltonian:  h.Name,
		ArtifactsDir: filepath.Clean(sweepDir),
		Points:       len(points),
		GroundEnergy: ground,
		MinTheta:     minTheta,
		MinEnergy:    minEnergy,
	}, nil
}

// Exact reports the full spectrum of a preset Hamiltonian from the dense
// eigensolver.
func (c *Client) Exact(_ context.Context, req ExactRequest) (ExactSummary, error) {
	if req.Hamiltonian == "" {
		req.Hamiltonian = defaultHamiltonian
	}
	h, err := pauli.Preset(req.Hamiltonian)
	if err != nil {
		return ExactSummary{}, err
	}
	spectrum, err := exact.Spectrum(h)
	if err != nil {
		return ExactSummary{}, err
	}
	return ExactSummary{
		Hamiltonian:  h.Name,
		Eigenvalues:  spectrum,
		GroundEnergy: spectrum[0],
	}, nil
}

// Hamiltonians lists every preset with its terms and exact ground energy.
func (c *Client) Hamiltonians(_ context.Context) ([]HamiltonianItem, error) {
	names := pauli.PresetNames()
	out := make([]HamiltonianItem, 0, len(names))
	for _, name := range names {
		h, err := pauli.Preset(name)
		if err != nil {
			return nil, err
		}
		ground, err := exact.GroundEnergy(h)
		if err != nil {
			return nil, err
		}
		out = append(out, HamiltonianItem{
			Name:         h.Name,
			Terms:        formatTerms(h),
			GroundEnergy: ground,
		})
	}
	return out, nil
}

func (c *Client) Runs(_ context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = defaultListLimit
	}

	entries, err := stats.ListRunIndex(c.resultsDir)
	if err != nil {
		return nil, err
	}
	if len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}

	out := make([]RunItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, RunItem{
			RunID:        e.RunID,
			CreatedAtUTC: e.CreatedAtUTC,
			Hamiltonian:  e.Hamiltonian,
			Optimizer:    e.Optimizer,
			Shots:        e.Shots,
			Seed:         e.Seed,
			BestEnergy:   e.BestEnergy,
			GroundEnergy: e.GroundEnergy,
			EnergyError:  e.EnergyError,
			Converged:    e.Converged,
		})
	}
	return out, nil
}

func (c *Client) Trace(_ context.Context, req TraceRequest) ([]model.TraceStep, error) {
	if req.RunID != "" && req.Latest {
		return nil, errors.New("use either run id or latest")
	}
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}

	runID := req.RunID
	if req.Latest {
		entries, err := stats.ListRunIndex(c.resultsDir)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return nil, errors.New("no runs available")
		}
		runID = entries[0].RunID
	}
	if runID == "" {
		return nil, errors.New("trace requires run id or latest")
	}

	steps, ok, err := stats.ReadTrace(c.resultsDir, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("trace not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(steps) > req.Limit {
		steps = steps[:req.Limit]
	}
	return steps, nil
}

func (c *Client) Export(_ context.Context, req ExportRequest) (ExportSummary, error) {
	if req.RunID != "" && req.Latest {
		return ExportSummary{}, errors.New("use either run id or latest")
	}
	if req.RunID == "" && !req.Latest {
		return ExportSummary{}, errors.New("export requires run id or latest")
	}
	if req.OutDir == "" {
		req.OutDir = c.exportsDir
	}

	runID := req.RunID
	if req.Latest {
		entries, err := stats.ListRunIndex(c.resultsDir)
		if err != nil {
			return ExportSummary{}, err
		}
		if len(entries) == 0 {
			return ExportSummary{}, errors.New("no runs available to export")
		}
		runID = entries[0].RunID
	}

	exportedDir, err := stats.ExportRunArtifacts(c.resultsDir, runID, req.OutDir)
	if err != nil {
		return ExportSummary{}, err
	}
	return ExportSummary{RunID: runID, Directory: filepath.Clean(exportedDir)}, nil
}

// Show loads a persisted run record from the store rather than from the
// artifacts directory, so it also works against a shared database.
func (c *Client) Show(ctx context.Context, runID string) (model.RunRecord, error) {
	if runID == "" {
		return model.RunRecord{}, errors.New("show requires run id")
	}
	if err := c.ensureStore(ctx); err != nil {
		return model.RunRecord{}, err
	}
	record, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return model.RunRecord{}, err
	}
	if !ok {
		return model.RunRecord{}, fmt.Errorf("run not found in store: %s", runID)
	}
	return record, nil
}

// ShowSweep loads a persisted sweep record from the store.
func (c *Client) ShowSweep(ctx context.Context, sweepID string) (model.SweepRecord, error) {
	if sweepID == "" {
		return model.SweepRecord{}, errors.New("show requires sweep id")
	}
	if err := c.ensureStore(ctx); err != nil {
		return model.SweepRecord{}, err
	}
	record, ok, err := c.store.GetSweep(ctx, sweepID)
	if err != nil {
		return model.SweepRecord{}, err
	}
	if !ok {
		return model.SweepRecord{}, fmt.Errorf("sweep not found in store: %s", sweepID)
	}
	return record, nil
}

// Experiment repeats the minimize pipeline over consecutive seeds and writes
// the per-trial summaries plus aggregate convergence statistics.
func (c *Client) Experiment(ctx context.Context, req ExperimentRequest) (ExperimentSummary, error) {
	if req.Hamiltonian == "" {
		req.Hamiltonian = defaultHamiltonian
	}
	if req.Shots <= 0 {
		req.Shots = defaultShots
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = defaultMaxIterations
	}
	if req.Restarts <= 0 {
		req.Restarts = defaultRestarts
	}
	if req.Tolerance <= 0 {
		req.Tolerance = defaultTolerance
	}
	if req.Trials <= 0 {
		req.Trials = defaultTrials
	}
	if req.SuccessThreshold <= 0 {
		req.SuccessThreshold = defaultSuccessThreshold
	}
	req.Optimizer = optimize.NormalizeDriverName(req.Optimizer)

	h, err := pauli.Preset(req.Hamiltonian)
	if err != nil {
		return ExperimentSummary{}, err
	}
	ground, err := exact.GroundEnergy(h)
	if err != nil {
		return ExperimentSummary{}, err
	}

	experimentID := newID(h.Name)
	started := time.Now().UTC()

	summaries := make([]stats.TrialSummary, 0, req.Trials)
	traces := make([][]model.TraceStep, 0, req.Trials)
	for trial := 0; trial < req.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return ExperimentSummary{}, err
		}
		seed := req.Seed + int64(trial)
		trace := &optimize.TraceRecorder{}
		result, err := minimizeEnergy(ctx, minimizeConfig{
			hamiltonian:   h,
			ground:        ground,
			optimizer:     req.Optimizer,
			shots:         req.Shots,
			maxIterations: req.MaxIterations,
			restarts:      req.Restarts,
			tolerance:     req.Tolerance,
			seed:          seed,
			recorder:      trace,
		})
		if err != nil {
			return ExperimentSummary{}, err
		}
		energyError := result.Value - ground
		summaries = append(summaries, stats.TrialSummary{
			RunID:       fmt.Sprintf("%s-trial-%03d", experimentID, trial),
			Seed:        seed,
			BestTheta:   result.Params[0],
			BestEnergy:  result.Value,
			EnergyError: energyError,
			Evaluations: result.Evaluations,
			Converged:   result.Converged,
			Success:     math.Abs(energyError) <= req.SuccessThreshold,
		})
		traces = append(traces, traceSteps(trace.Steps))
	}

	exp := stats.Experiment{
		ID:               experimentID,
		Hamiltonian:      h.Name,
		Optimizer:        req.Optimizer,
		Shots:            req.Shots,
		MaxIterations:    req.MaxIterations,
		Trials:           req.Trials,
		SuccessThreshold: req.SuccessThreshold,
		Seed:             req.Seed,
		GroundEnergy:     ground,
		StartedAtUTC:     started.Format(time.RFC3339Nano),
		CompletedAtUTC:   time.Now().UTC().Format(time.RFC3339Nano),
		Summaries:        summaries,
	}
	if err := stats.WriteExperiment(c.resultsDir, exp); err != nil {
		return ExperimentSummary{}, err
	}
	if err := stats.WriteConvergenceSeries(stats.ExperimentDir(c.resultsDir, experimentID), stats.BuildConvergenceSeries(traces)); err != nil {
		return ExperimentSummary{}, err
	}

	aggregate := stats.BuildExperimentStats(exp)
	return ExperimentSummary{
		ExperimentID:    experimentID,
		Hamiltonian:     h.Name,
		Optimizer:       req.Optimizer,
		ArtifactsDir:    filepath.Clean(stats.ExperimentDir(c.resultsDir, experimentID)),
		Trials:          aggregate.TotalTrials,
		SuccessRate:     aggregate.SuccessRate,
		MeanEnergy:      aggregate.MeanEnergy,
		StdEnergy:       aggregate.StdEnergy,
		MeanEvaluations: aggregate.MeanEvaluations,
		GroundEnergy:    ground,
	}, nil
}

func (c *Client) Experiments(_ context.Context, req ExperimentsRequest) ([]ExperimentItem, error) {
	if req.Limit <= 0 {
		req.Limit = defaultListLimit
	}

	experiments, err := stats.ListExperiments(c.resultsDir)
	if err != nil {
		return nil, err
	}
	if len(experiments) > req.Limit {
		experiments = experiments[:req.Limit]
	}

	out := make([]ExperimentItem, 0, len(experiments))
	for _, exp := range experiments {
		aggregate := stats.BuildExperimentStats(exp)
		out = append(out, ExperimentItem{
			ExperimentID: exp.ID,
			Hamiltonian:  exp.Hamiltonian,
			Trials:       aggregate.TotalTrials,
			SuccessRate:  aggregate.SuccessRate,
			StartedAtUTC: exp.StartedAtUTC,
		})
	}
	return out, nil
}

func (c *Client) ensureStore(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

type minimizeConfig struct {
	hamiltonian   pauli.Hamiltonian
	ground        float64
	optimizer     string
	shots         int
	maxIterations int
	restarts      int
	tolerance     float64
	initial       []float64
	seed          int64
	recorder      optimize.Recorder
}

// minimizeEnergy builds the seeded sampler/estimator/optimizer chain for one
// minimization. The sampler draws from seed and the optimizer's random stream
// from seed+1000 so the two stay independent.
func minimizeEnergy(ctx context.Context, cfg minimizeConfig) (optimize.Result, error) {
	est := newEstimator(cfg.seed, cfg.shots)
	driver, err := newDriver(cfg)
	if err != nil {
		return optimize.Result{}, err
	}
	return driver.Minimize(ctx, cfg.initial, func(ctx context.Context, params []float64) (float64, error) {
		return est.Energy(ctx, cfg.hamiltonian, params[0])
	})
}

func newDriver(cfg minimizeConfig) (optimize.Driver, error) {
	source := rand.New(rand.NewSource(cfg.seed + 1000))
	switch optimize.NormalizeDriverName(cfg.optimizer) {
	case optimize.DriverNelderMead:
		return &optimize.NelderMead{
			Rand:          source,
			MaxIterations: cfg.maxIterations,
			Restarts:      cfg.restarts,
			Tolerance:     cfg.tolerance,
			Bounds:        thetaBounds(),
			Reference:     cfg.ground,
			Recorder:      cfg.recorder,
		}, nil
	case optimize.DriverHillClimb:
		return &optimize.HillClimb{
			Rand:            source,
			MaxIterations:   cfg.maxIterations,
			Restarts:        cfg.restarts,
			StepSize:        hillClimbStepSize,
			AnnealingFactor: hillClimbAnnealing,
			MaxStale:        hillClimbMaxStale,
			Bounds:          thetaBounds(),
			Reference:       cfg.ground,
			Recorder:        cfg.recorder,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported optimizer: %s", cfg.optimizer)
	}
}

func newEstimator(seed int64, shots int) *estimator.Estimator {
	return &estimator.Estimator{
		Sampler: &sampler.Statevector{Rand: rand.New(rand.NewSource(seed))},
		Shots:   shots,
	}
}

func thetaBounds() [][2]float64 {
	return [][2]float64{{0, 2 * math.Pi}}
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

func formatTerms(h pauli.Hamiltonian) string {
	parts := make([]string, 0, len(h.Terms))
	for _, term := range h.Terms {
		if term.Coefficient == 1 {
			parts = append(parts, string(term.Observable))
			continue
		}
		parts = append(parts, strconv.FormatFloat(term.Coefficient, 'g', -1, 64)+"*"+string(term.Observable))
	}
	return strings.Join(parts, "+")
}

func traceSteps(steps []optimize.Step) []model.TraceStep {
	out := make([]model.TraceStep, 0, len(steps))
	for _, step := range steps {
		out = append(out, model.TraceStep{
			Iteration:   step.Iteration,
			Theta:       step.Params[0],
			Energy:      step.Value,
			EnergyError: step.Gap,
		})
	}
	return out
}
