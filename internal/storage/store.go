package storage

import (
	"context"

	"singlet/internal/model"
)

// Store defines persistence operations for finished optimization runs and
// landscape sweeps.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	SaveSweep(ctx context.Context, sweep model.SweepRecord) error
	GetSweep(ctx context.Context, id string) (model.SweepRecord, bool, error)
}
