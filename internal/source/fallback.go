package source

import (
	"context"
	"errors"
	"path/filepath"

	"job-charts/internal/dataset"
	logging "job-charts/internal/infra/log"

	"go.uber.org/zap"
)

type State int

const (
	FileAvailable State = iota
	FileMissing
)

func (s State) String() string {
	if s == FileMissing {
		return "file_missing"
	}
	return "file_available"
}

// Fallback reads the input file when it exists and the built-in sample otherwise.
// The filesystem is checked on every call.
type Fallback struct {
	File   File
	Sample Sample
}

// State reports which branch Load would take for name right now
func (f Fallback) State(name string) (State, error) {
	_, err := f.File.Path(name)
	if errors.Is(err, ErrFileMissing) {
		return FileMissing, nil
	}
	if err != nil {
		return FileAvailable, err
	}
	return FileAvailable, nil
}

func (f Fallback) Load(ctx context.Context, name string) (*dataset.Dataset, error) {
	state, err := f.State(name)
	if err != nil {
		return nil, err
	}
	if state == FileMissing {
		logging.LogNotice(name+".csv not found, using sample data",
			zap.String("dataset", name),
			zap.String("dir", filepath.Clean(f.File.Dir)))
		return f.Sample.Load(ctx, name)
	}
	return f.File.Load(ctx, name)
}
