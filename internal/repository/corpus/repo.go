// Package corpus reads the resume-embedding corpus. The corpus is written by
// the resume-save and job-post flows elsewhere in the platform; this service
// only queries it.
package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hirelink/talentsearch/internal/db"
	"github.com/hirelink/talentsearch/internal/domain"
	"github.com/hirelink/talentsearch/internal/domain/candidate"
)

const (
	resumePrefix = domain.KeyPrefix + "emb:resume:"
	jobPrefix    = domain.KeyPrefix + "emb:job:"
	indexName    = domain.KeyPrefix + "emb:resume:idx"

	fieldOwner  = "owner_id"
	fieldResume = "resume_id"
)

// store is the consumer interface for corpus operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, q *db.KNNQuery) (int, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// HNSWConfig holds index build parameters for EnsureIndex.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the embedding corpus contract of the recommend usecase.
type Repo struct {
	store store
	dim   int
	hnsw  HNSWConfig
}

// New creates a corpus repository. dim is the embedding dimensionality.
func New(s store, dim int) *Repo {
	if dim <= 0 {
		dim = domain.DefaultVectorDim
	}
	return &Repo{store: s, dim: dim}
}

// WithHNSW overrides HNSW build parameters for EnsureIndex.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the resume-embedding FT index if it does not exist yet.
// The corpus documents themselves are owned by external writers.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := db.NewIndex(indexName).
		Prefix(resumePrefix).
		Tag("$.owner_id", fieldOwner).
		Tag("$.resume_id", fieldResume).
		VectorHNSW("$.vector", "vector", r.dim, db.DistanceCosine, r.hnsw.M, r.hnsw.EFConstruct)

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create embeddings index: %w: %w", domain.ErrDataAccess, err)
	}
	return nil
}

// knnQuery builds the shared query for the fetch and count passes. Both
// passes consuming one built query guarantees identical filter parameters.
func (r *Repo) knnQuery(vector []float32, k, probe int) (*db.KNNQuery, error) {
	q, err := db.NewKNN(indexName).
		Vector(vector).
		K(k).
		Probe(probe).
		Return(fieldOwner, fieldResume).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build knn query: %w", err)
	}
	return q, nil
}

// Search runs the KNN fetch pass: the k nearest resume embeddings, probing
// probe graph nodes, sorted by similarity descending.
func (r *Repo) Search(ctx context.Context, vector []float32, k, probe int) ([]candidate.Hit, error) {
	q, err := r.knnQuery(vector, k, probe)
	if err != nil {
		return nil, err
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w: %w", domain.ErrDataAccess, err)
	}

	return parseHits(sr), nil
}

// Count runs the count pass: total matches post-filter, pre-dedup,
// pre-pagination. Built from the same query as the fetch pass.
func (r *Repo) Count(ctx context.Context, vector []float32, k, probe int) (int, error) {
	q, err := r.knnQuery(vector, k, probe)
	if err != nil {
		return 0, err
	}

	total, err := r.store.SearchCount(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count embeddings: %w: %w", domain.ErrDataAccess, err)
	}
	return total, nil
}

// JobVector loads the stored embedding for a job posting. Returns
// domain.ErrEmbeddingNotFound when the job has no precomputed embedding.
func (r *Repo) JobVector(ctx context.Context, jobID string) ([]float32, error) {
	data, err := r.store.JSONGet(ctx, jobPrefix+jobID, "$.vector")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrEmbeddingNotFound)
		}
		return nil, fmt.Errorf("load job embedding: %w: %w", domain.ErrDataAccess, err)
	}

	vec, err := parseVector(data)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", jobID, err)
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrEmbeddingNotFound)
	}
	return vec, nil
}

// ListResumes returns up to limit resume references in index order, with the
// total number of embedding records. Backs the unranked listing fallback.
func (r *Repo) ListResumes(ctx context.Context, limit int) ([]candidate.Ref, int, error) {
	sr, err := r.store.SearchList(ctx, indexName, "*", 0, limit, []string{fieldOwner, fieldResume})
	if err != nil {
		return nil, 0, fmt.Errorf("list resumes: %w: %w", domain.ErrDataAccess, err)
	}

	refs := make([]candidate.Ref, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		refs = append(refs, candidate.Ref{
			OwnerID:  e.Fields[fieldOwner],
			ResumeID: resumeID(e),
		})
	}
	return refs, sr.Total, nil
}

func parseHits(sr *db.SearchResult) []candidate.Hit {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	hits := make([]candidate.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		hits = append(hits, candidate.NewHit(resumeID(e), e.Fields[fieldOwner], e.Score))
	}
	return hits
}

// resumeID prefers the indexed field and falls back to the key suffix.
func resumeID(e db.SearchEntry) string {
	if id := e.Fields[fieldResume]; id != "" {
		return id
	}
	return strings.TrimPrefix(e.Key, resumePrefix)
}
