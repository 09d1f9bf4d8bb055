// Package repository provides database abstraction for archived benchmark runs.
package repository

import (
	"context"

	"github.com/relaxmesh/stencil/pkg/model"
)

// ResultRepository defines the interface for benchmark-run persistence.
type ResultRepository interface {
	// Save persists a single benchmark result together with its archive
	// URL (empty if none was recorded).
	Save(ctx context.Context, result model.Result, archiveURL string) error

	// List retrieves the most recent runs, newest first, bounded by limit.
	List(ctx context.Context, limit int) ([]model.Result, error)

	// GetByID retrieves a single run by its database ID.
	GetByID(ctx context.Context, id int64) (*model.Result, error)
}
