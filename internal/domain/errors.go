package domain

import "errors"

var (
	// ErrInvalidWeights rejects a training configuration before any
	// computation starts.
	ErrInvalidWeights = errors.New("similarity weights must be non-negative")

	// ErrNoData means the catalog was empty at build time.
	ErrNoData = errors.New("no data to train on")

	// ErrNoCollaborativeData means neither purchases nor ratings exist.
	// Callers treat this as a degenerate case, not a failure.
	ErrNoCollaborativeData = errors.New("no collaborative data")

	// ErrModelUnavailable means no trained snapshot exists yet.
	ErrModelUnavailable = errors.New("model not found")
)
