package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"singlet/internal/model"
)

const (
	runIndexFile     = "run_index.json"
	energySeriesFile = "energy_series.csv"
)

// RunConfig is the configuration snapshot written alongside a run's results.
type RunConfig struct {
	RunID         string   `json:"run_id"`
	Hamiltonian   string   `json:"hamiltonian"`
	Optimizer     string   `json:"optimizer"`
	Shots         int      `json:"shots"`
	MaxIterations int      `json:"max_iterations"`
	Restarts      int      `json:"restarts"`
	Tolerance     float64  `json:"tolerance"`
	InitialTheta  *float64 `json:"initial_theta,omitempty"`
	Seed          int64    `json:"seed"`
}

// RunResult is the summary written to result.json; the full iteration trace
// lives in trace.json.
type RunResult struct {
	RunID        string  `json:"run_id"`
	Hamiltonian  string  `json:"hamiltonian"`
	BestTheta    float64 `json:"best_theta"`
	BestEnergy   float64 `json:"best_energy"`
	GroundEnergy float64 `json:"ground_energy"`
	EnergyError  float64 `json:"energy_error"`
	Evaluations  int     `json:"evaluations"`
	Converged    bool    `json:"converged"`
	CreatedAtUTC string  `json:"created_at_utc"`
}

// RunArtifacts bundles everything a completed run writes to its directory.
// EnergySeries is optional; when present it lands in energy_series.csv.
type RunArtifacts struct {
	Config       RunConfig          `json:"config"`
	Trace        []model.TraceStep  `json:"trace"`
	Result       RunResult          `json:"result"`
	EnergySeries []model.SweepPoint `json:"energy_series,omitempty"`
}

// RunIndexEntry is one row of the cross-run index.
type RunIndexEntry struct {
	RunID         string  `json:"run_id"`
	Hamiltonian   string  `json:"hamiltonian"`
	Optimizer     string  `json:"optimizer"`
	Shots         int     `json:"shots"`
	MaxIterations int     `json:"max_iterations"`
	Restarts      int     `json:"restarts"`
	Seed          int64   `json:"seed"`
	BestEnergy    float64 `json:"best_energy"`
	GroundEnergy  float64 `json:"ground_energy"`
	EnergyError   float64 `json:"energy_error"`
	Converged     bool    `json:"converged"`
	CreatedAtUTC  string  `json:"created_at_utc"`
}

func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Config.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "config.json"), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "trace.json"), artifacts.Trace); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "result.json"), artifacts.Result); err != nil {
		return "", err
	}
	if len(artifacts.EnergySeries) > 0 {
		if err := WriteEnergySeries(runDir, artifacts.EnergySeries); err != nil {
			return "", err
		}
	}

	return runDir, nil
}

func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	type indexedEntry struct {
		entry RunIndexEntry
		idx   int
	}
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		indexed[i] = indexedEntry{entry: entries[i], idx: i}
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].entry.CreatedAtUTC == indexed[j].entry.CreatedAtUTC {
			// Prefer later appended entries for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].entry.CreatedAtUTC > indexed[j].entry.CreatedAtUTC
	})

	sorted := make([]RunIndexEntry, 0, len(indexed))
	for _, item := range indexed {
		sorted = append(sorted, item.entry)
	}
	return sorted, nil
}

func ExportRunArtifacts(baseDir, runID, outDir string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}

	src := filepath.Join(baseDir, runID)
	if _, err := os.Stat(src); err != nil {
		return "", err
	}

	dst := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return "", err
	}

	files := []string{"config.json", "trace.json", "result.json"}
	for _, file := range files {
		if err := copyFile(filepath.Join(src, file), filepath.Join(dst, file)); err != nil {
			return "", err
		}
	}
	seriesPath := filepath.Join(src, energySeriesFile)
	if _, err := os.Stat(seriesPath); err == nil {
		if err := copyFile(seriesPath, filepath.Join(dst, energySeriesFile)); err != nil {
			return "", err
		}
	} else if err != nil && !os.IsNotExist(err) {
		return "", err
	}

	return dst, nil
}

func ReadRunConfig(baseDir, runID string) (RunConfig, bool, error) {
	path := filepath.Join(baseDir, runID, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunConfig{}, false, nil
		}
		return RunConfig{}, false, err
	}

	var cfg RunConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, false, err
	}
	return cfg, true, nil
}

func ReadRunResult(baseDir, runID string) (RunResult, bool, error) {
	path := filepath.Join(baseDir, runID, "result.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return RunResult{}, false, nil
		}
		return RunResult{}, false, err
	}

	var result RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return RunResult{}, false, err
	}
	return result, true, nil
}

func ReadTrace(baseDir, runID string) ([]model.TraceStep, bool, error) {
	path := filepath.Join(baseDir, runID, "trace.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var trace []model.TraceStep
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, false, err
	}
	return trace, true, nil
}

// WriteSweepArtifacts writes a sweep's JSON record and CSV series into its
// own directory under baseDir.
func WriteSweepArtifacts(baseDir string, record model.SweepRecord) (string, error) {
	if record.SweepID == "" {
		return "", fmt.Errorf("sweep id is required")
	}

	sweepDir := filepath.Join(baseDir, record.SweepID)
	if err := os.MkdirAll(sweepDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(sweepDir, "sweep.json"), record); err != nil {
		return "", err
	}
	if err := WriteEnergySeries(sweepDir, record.Points); err != nil {
		return "", err
	}
	return sweepDir, nil
}

func ReadSweepRecord(baseDir, sweepID string) (model.SweepRecord, bool, error) {
	path := filepath.Join(baseDir, sweepID, "sweep.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.SweepRecord{}, false, nil
		}
		return model.SweepRecord{}, false, err
	}

	var record model.SweepRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.SweepRecord{}, false, err
	}
	return record, true, nil
}

func WriteEnergySeries(dir string, points []model.SweepPoint) error {
	path := filepath.Join(dir, energySeriesFile)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"theta", "energy", "exact_energy"}); err != nil {
		return err
	}
	for _, point := range points {
		if err := writer.Write([]string{
			strconv.FormatFloat(point.Theta, 'f', -1, 64),
			strconv.FormatFloat(point.Energy, 'f', -1, 64),
			strconv.FormatFloat(point.ExactEnergy, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadEnergySeries(baseDir, id string) ([]model.SweepPoint, bool, error) {
	path := filepath.Join(baseDir, id, energySeriesFile)
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []model.SweepPoint{}, true, nil
		}
		return nil, false, err
	}
	if len(header) < 3 {
		return nil, false, fmt.Errorf("energy series header must have at least 3 columns")
	}

	points := make([]model.SweepPoint, 0, 64)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, err
		}
		if len(record) < 3 {
			return nil, false, fmt.Errorf("energy series row must have at least 3 columns")
		}
		theta, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, false, err
		}
		energy, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, false, err
		}
		exact, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, false, err
		}
		points = append(points, model.SweepPoint{Theta: theta, Energy: energy, ExactEnergy: exact})
	}
	return points, true, nil
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
