package source

// Package source produces datasets for the charts.
// Three interchangeable strategies: Query (relational store), File (CSV/XLSX on disk)
// and Sample (built-in tables). Fallback picks File or Sample per call.

import (
	"context"
	"errors"

	"job-charts/internal/dataset"
)

// Dataset names, one per chart
const (
	TopPayingJobs     = "top_paying_jobs"
	TopDemandedSkills = "top_demanded_skills"
	TopPayingSkills   = "top_paying_skills"
	OptimalSkills     = "optimal_skills"
)

// Names lists every dataset in chart order
var Names = []string{TopPayingJobs, TopDemandedSkills, TopPayingSkills, OptimalSkills}

var (
	// ErrSourceUnavailable - the relational store cannot be reached. Not recoverable.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrFileMissing - the input file is absent. Triggers the sample fallback.
	ErrFileMissing = errors.New("input file missing")
	// ErrUnknownDataset - no query, file name or sample is registered for the name
	ErrUnknownDataset = errors.New("unknown dataset")
)

// Source loads a named dataset
type Source interface {
	Load(ctx context.Context, name string) (*dataset.Dataset, error)
}
