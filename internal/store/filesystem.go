package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Topsis/internal/tabular"
	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

// FileStore keeps each run as <dir>/<id>.csv with a <dir>/<id>.json sidecar.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) ResultPath(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".csv")
}

func (s *FileStore) metaPath(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

// SaveResult writes the CSV and metadata. A zero run ID is replaced by a
// fresh one and a zero CreatedAt by the current time.
func (s *FileStore) SaveResult(ctx context.Context, run *Run, res *topsis.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tmp, err := os.CreateTemp(s.dir, ".result-*")
	if err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	if err := tabular.WriteCSV(tmp, res); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close result: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.ResultPath(run.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store result: %w", err)
	}

	meta, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}
	if err := os.WriteFile(s.metaPath(run.ID), meta, 0o644); err != nil {
		return fmt.Errorf("store run metadata: %w", err)
	}
	return nil
}

func (s *FileStore) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.metaPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	run := &Run{}
	if err := json.Unmarshal(data, run); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return run, nil
}

func (s *FileStore) OpenResult(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.ResultPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListRuns returns all runs, newest first.
func (s *FileStore) ListRuns(ctx context.Context) ([]*Run, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	var runs []*Run
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := uuid.Parse(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		run, err := s.GetRun(ctx, id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs, nil
}

func (s *FileStore) DeleteRun(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	metaErr := os.Remove(s.metaPath(id))
	csvErr := os.Remove(s.ResultPath(id))
	if errors.Is(metaErr, fs.ErrNotExist) && errors.Is(csvErr, fs.ErrNotExist) {
		return ErrNotFound
	}
	if metaErr != nil && !errors.Is(metaErr, fs.ErrNotExist) {
		return metaErr
	}
	if csvErr != nil && !errors.Is(csvErr, fs.ErrNotExist) {
		return csvErr
	}
	return nil
}
