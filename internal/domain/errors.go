package domain

import "errors"

var (
	// ErrValidation signals malformed request parameters.
	ErrValidation = errors.New("validation failed")
	// ErrEmbeddingNotFound signals that a job has no stored embedding.
	ErrEmbeddingNotFound = errors.New("embedding not found")
	// ErrVectorization signals an embedding provider failure.
	ErrVectorization = errors.New("vectorization failed")
	// ErrDataAccess signals a relational or document store read failure.
	ErrDataAccess = errors.New("data access failure")
	// ErrSearchTimeout signals that a search pass exceeded its deadline.
	ErrSearchTimeout = errors.New("search timed out")
)
