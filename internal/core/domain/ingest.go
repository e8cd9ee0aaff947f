package domain

import "time"

// IngestStats summarises a completed ingestion run.
type IngestStats struct {
	// Documents is the number of transcripts loaded.
	Documents int

	// Chunks is the number of chunks embedded and stored.
	Chunks int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// IngestRun records one full-rebuild ingestion in the history store.
type IngestRun struct {
	// ID is the unique identifier for the run.
	ID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended, success or not.
	FinishedAt time.Time

	// Documents is the number of transcripts loaded.
	Documents int

	// Chunks is the number of chunks stored.
	Chunks int

	// Success indicates whether the run completed without error.
	Success bool

	// Error contains the failure message if Success is false.
	Error string
}
