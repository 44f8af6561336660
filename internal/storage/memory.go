package storage

import (
	"context"
	"sync"

	"singlet/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
	sweeps      map[string]model.SweepRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.sweeps = make(map[string]model.SweepRecord)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := run
	stored.Trace = append([]model.TraceStep(nil), run.Trace...)
	s.runs[run.RunID] = stored
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return model.RunRecord{}, false, nil
	}
	run.Trace = append([]model.TraceStep(nil), run.Trace...)
	return run, true, nil
}

func (s *MemoryStore) SaveSweep(_ context.Context, sweep model.SweepRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := sweep
	stored.Points = append([]model.SweepPoint(nil), sweep.Points...)
	s.sweeps[sweep.SweepID] = stored
	return nil
}

func (s *MemoryStore) GetSweep(_ context.Context, id string) (model.SweepRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sweep, ok := s.sweeps[id]
	if !ok {
		return model.SweepRecord{}, false, nil
	}
	sweep.Points = append([]model.SweepPoint(nil), sweep.Points...)
	return sweep, true, nil
}
