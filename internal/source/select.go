package source

import (
	"context"
	"fmt"

	"job-charts/internal/infra/config"
)

// FromConfig builds the source selected by app.source.
// The returned close func releases the database connection, if any.
func FromConfig(ctx context.Context, cfg *config.Config) (Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.App.Source {
	case config.SourceDB:
		q, err := Open(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		return q, q.Close, nil
	case config.SourceSample:
		return Sample{}, noop, nil
	case config.SourceFile, "":
		return Fallback{File: File{Dir: cfg.App.DataDir}}, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown source %q", cfg.App.Source)
	}
}
