package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"singlet/internal/model"
)

const convergenceSeriesFile = "convergence.csv"

// ConvergencePoint aggregates the energies a set of trials reported at one
// trace iteration. Trials whose trace ended before the iteration drop out of
// the aggregate, so late points may cover fewer trials.
type ConvergencePoint struct {
	Iteration  int     `json:"iteration"`
	Trials     int     `json:"trials"`
	MeanEnergy float64 `json:"mean_energy"`
	StdEnergy  float64 `json:"std_energy"`
	MinEnergy  float64 `json:"min_energy"`
	MaxEnergy  float64 `json:"max_energy"`
	MeanGap    float64 `json:"mean_gap"`
}

// BuildConvergenceSeries folds the trial traces of an experiment column-wise
// into one aggregate series per iteration.
func BuildConvergenceSeries(traces [][]model.TraceStep) []ConvergencePoint {
	maxLen := 0
	for _, trace := range traces {
		if len(trace) > maxLen {
			maxLen = len(trace)
		}
	}

	points := make([]ConvergencePoint, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		energies := make([]float64, 0, len(traces))
		gaps := make([]float64, 0, len(traces))
		for _, trace := range traces {
			if i >= len(trace) {
				continue
			}
			energies = append(energies, trace[i].Energy)
			gaps = append(gaps, trace[i].EnergyError)
		}
		if len(energies) == 0 {
			continue
		}

		mean, std := meanStd(energies)
		gapMean, _ := meanStd(gaps)
		point := ConvergencePoint{
			Iteration:  i + 1,
			Trials:     len(energies),
			MeanEnergy: mean,
			StdEnergy:  std,
			MinEnergy:  energies[0],
			MaxEnergy:  energies[0],
			MeanGap:    gapMean,
		}
		for _, energy := range energies[1:] {
			if energy < point.MinEnergy {
				point.MinEnergy = energy
			}
			if energy > point.MaxEnergy {
				point.MaxEnergy = energy
			}
		}
		points = append(points, point)
	}
	return points
}

// WriteConvergenceSeries writes the aggregate series as CSV into dir,
// typically an experiment's directory.
func WriteConvergenceSeries(dir string, points []ConvergencePoint) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	file, err := os.Create(filepath.Join(dir, convergenceSeriesFile))
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"iteration", "trials", "mean_energy", "std_energy", "min_energy", "max_energy", "mean_gap"}); err != nil {
		return err
	}
	for _, point := range points {
		if err := writer.Write([]string{
			strconv.Itoa(point.Iteration),
			strconv.Itoa(point.Trials),
			strconv.FormatFloat(point.MeanEnergy, 'f', -1, 64),
			strconv.FormatFloat(point.StdEnergy, 'f', -1, 64),
			strconv.FormatFloat(point.MinEnergy, 'f', -1, 64),
			strconv.FormatFloat(point.MaxEnergy, 'f', -1, 64),
			strconv.FormatFloat(point.MeanGap, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadConvergenceSeries(dir string) ([]ConvergencePoint, bool, error) {
	file, err := os.Open(filepath.Join(dir, convergenceSeriesFile))
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
			return []ConvergencePoint{}, true, nil
		}
		return nil, false, err
	}
	if len(header) < 7 {
		return nil, false, fmt.Errorf("convergence series header must have at least 7 columns")
	}

	points := make([]ConvergencePoint, 0, 64)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, false, err
		}
		if len(record) < 7 {
			return nil, false, fmt.Errorf("convergence series row must have at least 7 columns")
		}
		point, err := parseConvergenceRow(record)
		if err != nil {
			return nil, false, err
		}
		points = append(points, point)
	}
	return points, true, nil
}

func parseConvergenceRow(record []string) (ConvergencePoint, error) {
	iteration, err := strconv.Atoi(record[0])
	if err != nil {
		return ConvergencePoint{}, err
	}
	trials, err := strconv.Atoi(record[1])
	if err != nil {
		return ConvergencePoint{}, err
	}
	values := make([]float64, 5)
	for i := range values {
		values[i], err = strconv.ParseFloat(record[2+i], 64)
		if err != nil {
			return ConvergencePoint{}, err
		}
	}
	return ConvergencePoint{
		Iteration:  iteration,
		Trials:     trials,
		MeanEnergy: values[0],
		StdEnergy:  values[1],
		MinEnergy:  values[2],
		MaxEnergy:  values[3],
		MeanGap:    values[4],
	}, nil
}
