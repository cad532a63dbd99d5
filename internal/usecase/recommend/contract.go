package recommend

import (
	"context"

	"github.com/hirelink/talentsearch/internal/domain"
	"github.com/hirelink/talentsearch/internal/domain/candidate"
	"github.com/hirelink/talentsearch/internal/domain/prefs"
)

// Corpus defines the embedding corpus contract for the search pipeline.
type Corpus interface {
	// Search runs one KNN pass and returns raw hits sorted by similarity descending.
	Search(ctx context.Context, vector []float32, k, probe int) ([]candidate.Hit, error)

	// Count runs the filter-only counting pass of the same query.
	Count(ctx context.Context, vector []float32, k, probe int) (int, error)

	// JobVector loads a stored job embedding. Returns domain.ErrEmbeddingNotFound
	// when the job has no embedding.
	JobVector(ctx context.Context, jobID string) ([]float32, error)

	// ListResumes returns up to limit resume refs plus the total corpus size.
	ListResumes(ctx context.Context, limit int) ([]candidate.Ref, int, error)
}

// Directory reads eligible user profiles in batches.
type Directory interface {
	FindMany(ctx context.Context, ids []string, filters prefs.Set) (map[string]candidate.Profile, error)
}

// Summaries reads resume summaries in batches.
type Summaries interface {
	FindSummaries(ctx context.Context, resumeIDs []string) (map[string]candidate.Summary, error)
}

// Embedder vectorizes free-text search queries.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
