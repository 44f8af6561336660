package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"singlet/internal/stats"
	"singlet/internal/storage"
	singletapi "singlet/pkg/singlet"
)

const (
	resultsDir = "results"
	exportsDir = "exports"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "estimate":
		return runEstimate(ctx, args[1:])
	case "energy":
		return runEnergy(ctx, args[1:])
	case "sweep":
		return runSweep(ctx, args[1:])
	case "exact":
		return runExact(ctx, args[1:])
	case "hamiltonians":
		return runHamiltonians(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "trace":
		return runTrace(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	case "experiment":
		return runExperiment(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "singlet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	if err := store.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	hamiltonian := fs.String("hamiltonian", "heisenberg", "hamiltonian preset: heisenberg|xy|xxz|ising-zz")
	optimizer := fs.String("optimizer", "nelder-mead", "optimizer driver: nelder-mead|hill-climb")
	shots := fs.Int("shots", 1024, "measurement shots per energy evaluation")
	maxIterations := fs.Int("max-iterations", 100, "objective evaluation budget per optimizer start")
	restarts := fs.Int("restarts", 1, "optimizer restart count")
	tolerance := fs.Float64("tolerance", 1e-3, "simplex spread convergence tolerance")
	initialTheta := fs.Float64("initial-theta", 0, "explicit starting theta (default: random within bounds)")
	seed := fs.Int64("seed", 1, "rng seed")
	printTrace := fs.Bool("print-trace", false, "print optimizer trace lines while running")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "singlet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultRunRequest(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		req = singletapi.RunRequest{
			RunID:         *runID,
			Hamiltonian:   *hamiltonian,
			Optimizer:     *optimizer,
			Shots:         *shots,
			MaxIterations: *maxIterations,
			Restarts:      *restarts,
			Tolerance:     *tolerance,
			Seed:          *seed,
		}
		if setFlags["initial-theta"] {
			theta := *initialTheta
			req.InitialTheta = &theta
		}
	} else {
		overrideFromFlags(&req, setFlags, map[string]any{
			"run-id":         *runID,
			"hamiltonian":    *hamiltonian,
			"optimizer":      *optimizer,
			"shots":          *shots,
			"max-iterations": *maxIterations,
			"restarts":       *restarts,
			"tolerance":      *tolerance,
			"initial-theta":  *initialTheta,
			"seed":           *seed,
		})
	}

	client, err := singletapi.New(singletapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ResultsDir: resultsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if *printTrace {
		req.TraceWriter = os.Stdout
	}

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("run completed run_id=%s hamiltonian=%s optimizer=%s shots=%d seed=%d\n", summary.RunID, summary.Hamiltonian, summary.Optimizer, summary.Shots, req.Seed)
	fmt.Printf("best_theta=%.6f best_energy=%.6f ground_energy=%.6f energy_error=%.6f\n",
		summary.BestTheta,
		summary.BestEnergy,
		summary.GroundEnergy,
		summary.EnergyError,
	)
	fmt.Printf("evaluations=%d converged=%t total_shots=%s\n",
		summary.Evaluations,
		summary.Converged,
		humanize.Comma(int64(summary.Evaluations)*int64(summary.Shots)),
	)
	fmt.Printf("artifacts_dir=%s\n", summary.ArtifactsDir)
	return nil
}

func runEstimate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("estimate", flag.ContinueOnError)
	observable := fs.String("observable", "ZZ", "pauli observable: XX|YY|ZZ")
	theta := fs.Float64("theta", 0, "ansatz rotation angle")
	shots := fs.Int("shots", 1024, "measurement shots")
	seed := fs.Int64("seed", 1, "rng seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := singletapi.New(singletapi.Options{ResultsDir: resultsDir, ExportsDir: exportsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Estimate(ctx, singletapi.EstimateRequest{
		Observable: *observable,
		Theta:      *theta,
		Shots:      *shots,
		Seed:       *seed,
	})
	if err != nil {
		return err
	}
	fmt.Printf("observable=%s theta=%.6f shots=%d estimate=%.6f exact=%.6f sampling_error=%.6f\n",
		summary.Observable,
		summary.Theta,
		summary.Shots,
		summary.Estimate,
		summary.Exact,
		summary.Estimate-summary.Exact,
	)
	return nil
}

func runEnergy(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("energy", flag.ContinueOnError)
	hamiltonian := fs.String("hamiltonian", "heisenberg", "hamiltonian preset: heisenberg|xy|xxz|ising-zz")
	theta := fs.Float64("theta", 0, "ansatz rotation angle")
	shots := fs.Int("shots", 1024, "measurement shots per observable")
	seed := fs.Int64("seed", 1, "rng seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := singletapi.New(singletapi.Options{ResultsDir: resultsDir, ExportsDir: exportsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Energy(ctx, singletapi.EnergyRequest{
		Hamiltonian: *hamiltonian,
		Theta:       *theta,
		Shots:       *shots,
		Seed:        *seed,
	})
	if err != nil {
		return err
	}
	fmt.Printf("hamiltonian=%s theta=%.6f shots=%d energy=%.6f exact_energy=%.6f\n",
		summary.Hamiltonian,
		summary.Theta,
		summary.Shots,
		summary.Energy,
		summary.ExactEnergy,
	)
	return nil
}

func runSweep(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	sweepID := fs.String("sweep-id", "", "explicit sweep id (optional)")
	hamiltonian := fs.String("hamiltonian", "heisenberg", "hamiltonian preset: heisenberg|xy|xxz|ising-zz")
	shots := fs.Int("shots", 1024, "measurement shots per grid point")
	points := fs.Int("points", 50, "theta grid points over [0, 2pi)")
	seed := fs.Int64("seed", 1, "rng seed")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "singlet.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := singletapi.New(singletapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ResultsDir: resultsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Sweep(ctx, singletapi.SweepRequest{
		SweepID:     *sweepID,
		Hamiltonian: *hamiltonian,
		Shots:       *shots,
		Points:      *points,
		Seed:        *seed,
	})
	if err != nil {
		return err
	}
	fmt.Printf("sweep completed sweep_id=%s hamiltonian=%s points=%d\n", summary.SweepID, summary.Hamiltonian, summary.Points)
	fmt.Printf("ground_energy=%.6f min_theta=%.6f min_energy=%.6f\n", summary.GroundEnergy, summary.MinTheta, summary.MinEnergy)
	fmt.Printf("artifacts_dir=%s\n", summary.ArtifactsDir)
	return nil
}

func runExact(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("exact", flag.ContinueOnError)
	hamiltonian := fs.String("hamiltonian", "heisenberg", "hamiltonian preset: heisenberg|xy|xxz|ising-zz")
	jsonOut := fs.Bool("json", false, "emit spectrum as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := singletapi.New(singletapi.Options{ResultsDir: resultsDir, ExportsDir: exportsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Exact(ctx, singletapi.ExactRequest{Hamiltonian: *hamiltonian})
	if err != nil {
		return err
	}
	if *jsonOut {
		type spectrumOut struct {
			Hamiltonian  string    `json:"hamiltonian"`
			Eigenvalues  []float64 `json:"eigenvalues"`
			GroundEnergy float64   `json:"ground_energy"`
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(spectrumOut{
			Hamiltonian:  summary.Hamiltonian,
			Eigenvalues:  summary.Eigenvalues,
			GroundEnergy: summary.GroundEnergy,
		})
	}

	fmt.Printf("hamiltonian=%s ground_energy=%.6f\n", summary.Hamiltonian, summary.GroundEnergy)
	for i, eigenvalue := range summary.Eigenvalues {
		fmt.Printf("index=%d eigenvalue=%.6f\n", i, eigenvalue)
	}
	return nil
}

func runHamiltonians(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hamiltonians", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit presets as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := singletapi.New(singletapi.Options{ResultsDir: resultsDir, ExportsDir: exportsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	items, err := client.Hamiltonians(ctx)
	if err != nil {
		return err
	}
	if *jsonOut {
		type presetItem struct {
			Name         string  `json:"name"`
			Terms        string  `json:"terms"`
			GroundEnergy float64 `json:"ground_energy"`
		}
		out := make([]presetItem, 0, len(items))
		for _, item := range items {
			out = append(out, presetItem{Name: item.Name, Terms: item.Terms, GroundEnergy: item.GroundEnergy})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, item := range items {
		fmt.Printf("name=%s terms=%s ground_energy=%.6f\n", item.Name, item.Terms, item.GroundEnergy)
	}
	return nil
}

func runRuns(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	entries, err := stats.ListRunIndex(resultsDir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	if len(entries) > *limit {
		entries = entries[:*limit]
	}
	if *jsonOut {
		type runsItem struct {
			RunID        string  `json:"run_id"`
			CreatedAtUTC string  `json:"created_at_utc"`
			Hamiltonian  string  `json:"hamiltonian"`
			Optimizer    string  `json:"optimizer"`
			Shots        int     `json:"shots"`
			Seed         int64   `json:"seed"`
			BestEnergy   float64 `json:"best_energy"`
			GroundEnergy float64 `json:"ground_energy"`
			EnergyError  float64 `json:"energy_error"`
			Converged    bool    `json:"converged"`
		}
		items := make([]runsItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, runsItem{
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
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	for _, e := range entries {
		fmt.Printf("run_id=%s created=%s hamiltonian=%s optimizer=%s shots=%d seed=%d best_energy=%.6f ground_energy=%.6f energy_error=%.6f converged=%t\n",
			e.RunID,
			humanTime(e.CreatedAtUTC),
			e.Hamiltonian,
			e.Optimizer,
			e.Shots,
			e.Seed,
			e.BestEnergy,
			e.GroundEnergy,
			e.EnergyError,
			e.Converged,
		)
	}
	return nil
}

func runTrace(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show trace for the most recent run from run index")
	limit := fs.Int("limit", 50, "max trace steps to print (<=0 for all)")
	jsonOut := fs.Bool("json", false, "emit trace steps as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("trace requires --run-id or --latest")
	}

	client, err := singletapi.New(singletapi.Options{ResultsDir: resultsDir, ExportsDir: exportsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	steps, err := client.Trace(ctx, singletapi.TraceRequest{
		RunID:  *runID,
		Latest: *latest,
		Limit:  *limit,
	})
	if err != nil {
		return err
	}
	if len(steps) == 0 {
		fmt.Println("no trace steps")
		return nil
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	}

	for _, step := range steps {
		fmt.Printf("iteration=%d theta=%.6f energy=%.6f energy_error=%.6f\n",
			step.Iteration,
			step.Theta,
			step.Energy,
			step.EnergyError,
		)
	}
	return nil
}

// runShow reads a persisted record back from the store instead of the
// artifacts directory. With the memory backend that only covers records saved
// by the same process, so it is mostly useful against sqlite.
func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	sweepID := fs.String("sweep-id", "", "sweep id")
	showTrace := fs.Bool("trace", false, "print stored trace steps or sweep points")
	limit := fs.Int("limit", 10, "max trace steps or sweep points to print (<=0 for all)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "singlet.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit the stored record as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*runID == "") == (*sweepID == "") {
		return errors.New("show requires exactly one of --run-id or --sweep-id")
	}

	client, err := singletapi.New(singletapi.Options{
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		ResultsDir: resultsDir,
		ExportsDir: exportsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if *sweepID != "" {
		record, err := client.ShowSweep(ctx, *sweepID)
		if err != nil {
			return err
		}
		if *jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(record)
		}
		fmt.Printf("sweep_id=%s created=%s hamiltonian=%s shots=%d seed=%d points=%d ground_energy=%.6f\n",
			record.SweepID,
			humanTime(record.CreatedAtUTC),
			record.Hamiltonian,
			record.Shots,
			record.Seed,
			len(record.Points),
			record.GroundEnergy,
		)
		if *showTrace {
			points := record.Points
			if *limit > 0 && len(points) > *limit {
				points = points[:*limit]
			}
			for _, point := range points {
				fmt.Printf("theta=%.6f energy=%.6f exact_energy=%.6f\n", point.Theta, point.Energy, point.ExactEnergy)
			}
		}
		return nil
	}

	record, err := client.Show(ctx, *runID)
	if err != nil {
		return err
	}
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}
	fmt.Printf("run_id=%s created=%s hamiltonian=%s optimizer=%s shots=%d seed=%d\n",
		record.RunID,
		humanTime(record.CreatedAtUTC),
		record.Hamiltonian,
		record.Optimizer,
		record.Shots,
		record.Seed,
	)
	fmt.Printf("best_theta=%.6f best_energy=%.6f ground_energy=%.6f energy_error=%.6f\n",
		record.BestTheta,
		record.BestEnergy,
		record.GroundEnergy,
		record.EnergyError,
	)
	fmt.Printf("evaluations=%d converged=%t trace_steps=%d\n", record.Evaluations, record.Converged, len(record.Trace))
	if *showTrace {
		steps := record.Trace
		if *limit > 0 && len(steps) > *limit {
			steps = steps[:*limit]
		}
		for _, step := range steps {
			fmt.Printf("iteration=%d theta=%.6f energy=%.6f energy_error=%.6f\n",
				step.Iteration,
				step.Theta,
				step.Energy,
				step.EnergyError,
			)
		}
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "export the most recent run from run index")
	outDir := fs.String("out", exportsDir, "export output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("export requires --run-id or --latest")
	}

	client, err := singletapi.New(singletapi.Options{ResultsDir: resultsDir, ExportsDir: exportsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Export(ctx, singletapi.ExportRequest{
		RunID:  *runID,
		Latest: *latest,
		OutDir: *outDir,
	})
	if err != nil {
		return err
	}

	fmt.Printf("exported run_id=%s to=%s\n", summary.RunID, summary.Directory)
	return nil
}

func runExperiment(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "list" {
		return runExperimentList(ctx, args[1:])
	}

	fs := flag.NewFlagSet("experiment", flag.ContinueOnError)
	hamiltonian := fs.String("hamiltonian", "heisenberg", "hamiltonian preset: heisenberg|xy|xxz|ising-zz")
	optimizer := fs.String("optimizer", "nelder-mead", "optimizer driver: nelder-mead|hill-climb")
	shots := fs.Int("shots", 1024, "measurement shots per energy evaluation")
	maxIterations := fs.Int("max-iterations", 100, "objective evaluation budget per optimizer start")
	restarts := fs.Int("restarts", 1, "optimizer restart count")
	tolerance := fs.Float64("tolerance", 1e-3, "simplex spread convergence tolerance")
	trials := fs.Int("trials", 20, "trial count over consecutive seeds")
	successThreshold := fs.Float64("success-threshold", 0.2, "max absolute energy error counted as success")
	seed := fs.Int64("seed", 1, "base rng seed; trial i uses seed+i")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := singletapi.New(singletapi.Options{ResultsDir: resultsDir, ExportsDir: exportsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Experiment(ctx, singletapi.ExperimentRequest{
		Hamiltonian:      *hamiltonian,
		Optimizer:        *optimizer,
		Shots:            *shots,
		MaxIterations:    *maxIterations,
		Restarts:         *restarts,
		Tolerance:        *tolerance,
		Trials:           *trials,
		SuccessThreshold: *successThreshold,
		Seed:             *seed,
	})
	if err != nil {
		return err
	}
	fmt.Printf("experiment completed experiment_id=%s hamiltonian=%s optimizer=%s trials=%d\n", summary.ExperimentID, summary.Hamiltonian, summary.Optimizer, summary.Trials)
	fmt.Printf("success_rate=%.2f mean_energy=%.6f std_energy=%.6f ground_energy=%.6f\n",
		summary.SuccessRate,
		summary.MeanEnergy,
		summary.StdEnergy,
		summary.GroundEnergy,
	)
	fmt.Printf("mean_evaluations=%.1f total_evaluations=%s\n",
		summary.MeanEvaluations,
		humanize.Comma(int64(math.Round(summary.MeanEvaluations*float64(summary.Trials)))),
	)
	fmt.Printf("artifacts_dir=%s\n", summary.ArtifactsDir)
	return nil
}

func runExperimentList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("experiment list", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max experiments to list")
	jsonOut := fs.Bool("json", false, "emit experiments list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := singletapi.New(singletapi.Options{ResultsDir: resultsDir, ExportsDir: exportsDir})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	items, err := client.Experiments(ctx, singletapi.ExperimentsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no experiments found")
		return nil
	}
	if *jsonOut {
		type experimentItem struct {
			ExperimentID string  `json:"experiment_id"`
			Hamiltonian  string  `json:"hamiltonian"`
			Trials       int     `json:"trials"`
			SuccessRate  float64 `json:"success_rate"`
			StartedAtUTC string  `json:"started_at_utc"`
		}
		out := make([]experimentItem, 0, len(items))
		for _, item := range items {
			out = append(out, experimentItem{
				ExperimentID: item.ExperimentID,
				Hamiltonian:  item.Hamiltonian,
				Trials:       item.Trials,
				SuccessRate:  item.SuccessRate,
				StartedAtUTC: item.StartedAtUTC,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, item := range items {
		fmt.Printf("experiment_id=%s hamiltonian=%s trials=%d success_rate=%.2f started=%s\n",
			item.ExperimentID,
			item.Hamiltonian,
			item.Trials,
			item.SuccessRate,
			humanTime(item.StartedAtUTC),
		)
	}
	return nil
}

func humanTime(rfc string) string {
	t, err := time.Parse(time.RFC3339Nano, rfc)
	if err != nil {
		return rfc
	}
	return humanize.Time(t)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: singletctl <init|run|estimate|energy|sweep|exact|hamiltonians|runs|trace|show|export|experiment> [flags]", msg)
}
