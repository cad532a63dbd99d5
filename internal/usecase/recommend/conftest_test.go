package recommend

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/hirelink/talentsearch/internal/domain"
	"github.com/hirelink/talentsearch/internal/domain/candidate"
	"github.com/hirelink/talentsearch/internal/domain/prefs"
)

// --- Mocks ---

type mockCorpus struct {
	searchFn func(ctx context.Context, vector []float32, k, probe int) ([]candidate.Hit, error)
	countFn  func(ctx context.Context, vector []float32, k, probe int) (int, error)
	vectorFn func(ctx context.Context, jobID string) ([]float32, error)
	listFn   func(ctx context.Context, limit int) ([]candidate.Ref, int, error)

	searchCalls int
	countCalls  int
	lastK       int
	lastProbe   int
}

func (m *mockCorpus) Search(ctx context.Context, vector []float32, k, probe int) ([]candidate.Hit, error) {
	m.searchCalls++
	m.lastK = k
	m.lastProbe = probe
	if m.searchFn != nil {
		return m.searchFn(ctx, vector, k, probe)
	}
	return nil, nil
}

func (m *mockCorpus) Count(ctx context.Context, vector []float32, k, probe int) (int, error) {
	m.countCalls++
	if m.countFn != nil {
		return m.countFn(ctx, vector, k, probe)
	}
	return 0, nil
}

func (m *mockCorpus) JobVector(ctx context.Context, jobID string) ([]float32, error) {
	if m.vectorFn != nil {
		return m.vectorFn(ctx, jobID)
	}
	return []float32{0.1, 0.2}, nil
}

func (m *mockCorpus) ListResumes(ctx context.Context, limit int) ([]candidate.Ref, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, 0, nil
}

type mockDirectory struct {
	findFn func(ctx context.Context, ids []string, filters prefs.Set) (map[string]candidate.Profile, error)

	lastIDs []string
}

func (m *mockDirectory) FindMany(
	ctx context.Context, ids []string, filters prefs.Set,
) (map[string]candidate.Profile, error) {
	m.lastIDs = ids
	if m.findFn != nil {
		return m.findFn(ctx, ids, filters)
	}
	out := make(map[string]candidate.Profile, len(ids))
	for _, id := range ids {
		out[id] = candidate.Profile{ID: id, Name: "User " + id}
	}
	return out, nil
}

type mockSummaries struct {
	findFn func(ctx context.Context, resumeIDs []string) (map[string]candidate.Summary, error)
}

func (m *mockSummaries) FindSummaries(
	ctx context.Context, resumeIDs []string,
) (map[string]candidate.Summary, error) {
	if m.findFn != nil {
		return m.findFn(ctx, resumeIDs)
	}
	out := make(map[string]candidate.Summary, len(resumeIDs))
	for _, id := range resumeIDs {
		out[id] = candidate.Summary{ResumeID: id}
	}
	return out, nil
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func testLimits() Limits {
	return Limits{
		MinFetch:    1000,
		MaxFetch:    5000,
		MinProbe:    2000,
		MaxProbe:    10000,
		MaxPageSize: 100,
	}
}

func newTestService(t *testing.T) (*Service, *mockCorpus, *mockDirectory, *mockSummaries, *mockEmbedder) {
	t.Helper()
	corpus := &mockCorpus{}
	users := &mockDirectory{}
	resumes := &mockSummaries{}
	embed := &mockEmbedder{vec: []float32{0.5, 0.5}}
	svc := New(corpus, users, resumes, embed, testLimits(), zap.NewNop())
	return svc, corpus, users, resumes, embed
}
