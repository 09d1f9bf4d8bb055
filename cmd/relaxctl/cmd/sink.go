package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/relaxmesh/stencil/internal/repository"
	"github.com/relaxmesh/stencil/internal/storage"
	"github.com/relaxmesh/stencil/pkg/compression"
	"github.com/relaxmesh/stencil/pkg/config"
	"github.com/relaxmesh/stencil/pkg/model"
)

// resultSink persists and/or archives completed benchmark results
// according to the --persist and --archive flags. Either or both may
// be disabled, in which case the corresponding store is left nil.
type resultSink struct {
	repos   *repository.Repositories
	store   storage.Storage
	archive string
}

// newResultSink opens the repository and storage backends implied by
// the global --persist and --archive flags. Callers must call Close
// when done to release the database connection.
func newResultSink(cfg *config.Config, doPersist bool, archivePrefix string) (*resultSink, error) {
	sink := &resultSink{archive: archivePrefix}

	if doPersist {
		dbCfg := &repository.DBConfig{
			Type:     cfg.Database.Type,
			Path:     cfg.Database.Path,
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			Database: cfg.Database.Database,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			MaxConns: cfg.Database.MaxConns,
		}
		gormDB, err := repository.NewGormDB(dbCfg)
		if err != nil {
			return nil, fmt.Errorf("opening result database: %w", err)
		}
		sink.repos = repository.NewRepositories(gormDB, dbCfg.Type)
	}

	if archivePrefix != "" {
		store, err := storage.NewStorage(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("opening archive storage: %w", err)
		}
		sink.store = store
	}

	return sink, nil
}

// Close releases the sink's database connection, if one was opened.
func (s *resultSink) Close() error {
	if s.repos != nil {
		return s.repos.Close()
	}
	return nil
}

// Record archives and persists a single result, in that order, so the
// database row can carry the archived record's URL when both are
// enabled.
func (s *resultSink) Record(ctx context.Context, result model.Result) error {
	archiveURL := ""
	if s.store != nil {
		url, err := s.archiveOne(ctx, result)
		if err != nil {
			return fmt.Errorf("archiving result: %w", err)
		}
		archiveURL = url
	}

	if s.repos != nil {
		if err := s.repos.Result.Save(ctx, result, archiveURL); err != nil {
			return fmt.Errorf("persisting result: %w", err)
		}
	}

	return nil
}

// archiveOne compresses the result's CSV record and uploads it under a
// key derived from the run's shape, returning the object's URL.
func (s *resultSink) archiveOne(ctx context.Context, result model.Result) (string, error) {
	comp := compression.Default()
	defer compression.Close(comp)

	compressed, err := comp.Compress([]byte(result.CSVRow() + "\n"))
	if err != nil {
		return "", fmt.Errorf("compressing record: %w", err)
	}

	key := fmt.Sprintf("%s/%s-%d-%dt.csv.%s", s.archive, result.Type.String(), result.Size, result.Threads, comp.Name())
	if err := s.store.Upload(ctx, key, bytes.NewReader(compressed)); err != nil {
		return "", err
	}

	return s.store.GetURL(key), nil
}
