package store

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Topsis/internal/topsis"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("store: run not found")

// Run describes one stored TOPSIS result.
type Run struct {
	ID           uuid.UUID `json:"run_id"`
	SourceName   string    `json:"source_name"`
	Weights      string    `json:"weights"`
	Impacts      string    `json:"impacts"`
	Alternatives int       `json:"alternatives"`
	Criteria     int       `json:"criteria"`
	BestLabel    string    `json:"best_label,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store keeps result tables produced by the engine. It is an artifact
// store, not a database: one CSV per run plus its metadata.
type Store interface {
	SaveResult(ctx context.Context, run *Run, res *topsis.Result) error
	GetRun(ctx context.Context, id uuid.UUID) (*Run, error)
	OpenResult(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
	ResultPath(id uuid.UUID) string
	ListRuns(ctx context.Context) ([]*Run, error)
	DeleteRun(ctx context.Context, id uuid.UUID) error
	Close() error
}
