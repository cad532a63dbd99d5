package chi

import (
	"context"
	"net/http/httptest"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hirelink/talentsearch/internal/domain"
	"github.com/hirelink/talentsearch/internal/domain/candidate"
	"github.com/hirelink/talentsearch/internal/domain/prefs"
	healthuc "github.com/hirelink/talentsearch/internal/usecase/health"
	"github.com/hirelink/talentsearch/internal/usecase/recommend"
)

// --- Pipeline mocks ---

type stubCorpus struct {
	hits      []candidate.Hit
	searchErr error
	total     int
	countErr  error
	vector    []float32
	vectorErr error
	refs      []candidate.Ref
	listErr   error

	searchCalls int
}

func (m *stubCorpus) Search(context.Context, []float32, int, int) ([]candidate.Hit, error) {
	m.searchCalls++
	return m.hits, m.searchErr
}

func (m *stubCorpus) Count(context.Context, []float32, int, int) (int, error) {
	return m.total, m.countErr
}

func (m *stubCorpus) JobVector(context.Context, string) ([]float32, error) {
	if m.vectorErr != nil {
		return nil, m.vectorErr
	}
	if m.vector == nil {
		return []float32{0.1, 0.2}, nil
	}
	return m.vector, nil
}

func (m *stubCorpus) ListResumes(context.Context, int) ([]candidate.Ref, int, error) {
	return m.refs, len(m.refs), m.listErr
}

type stubDirectory struct {
	profiles map[string]candidate.Profile
	err      error
}

func (m *stubDirectory) FindMany(
	_ context.Context, ids []string, _ prefs.Set,
) (map[string]candidate.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.profiles != nil {
		return m.profiles, nil
	}
	out := make(map[string]candidate.Profile, len(ids))
	for _, id := range ids {
		out[id] = candidate.Profile{ID: id, Name: "User " + id}
	}
	return out, nil
}

type stubSummaries struct{}

func (m *stubSummaries) FindSummaries(
	_ context.Context, resumeIDs []string,
) (map[string]candidate.Summary, error) {
	out := make(map[string]candidate.Summary, len(resumeIDs))
	for _, id := range resumeIDs {
		out[id] = candidate.Summary{ResumeID: id, Summary: "summary " + id}
	}
	return out, nil
}

type stubEmbedder struct {
	err error
}

func (m *stubEmbedder) Embed(context.Context, string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.5, 0.5}}, nil
}

type stubPinger struct{ err error }

func (m *stubPinger) Ping(context.Context) error { return m.err }

// --- Harness ---

func newTestServer(t *testing.T, corpus *stubCorpus, embed *stubEmbedder) *httptest.Server {
	t.Helper()
	return newTestServerWith(t, corpus, &stubDirectory{}, embed)
}

func newTestServerWith(
	t *testing.T, corpus *stubCorpus, users *stubDirectory, embed *stubEmbedder,
) *httptest.Server {
	t.Helper()

	limits := recommend.Limits{
		MinFetch:    1000,
		MaxFetch:    5000,
		MinProbe:    2000,
		MaxProbe:    10000,
		MaxPageSize: 100,
	}
	svc := recommend.New(corpus, users, &stubSummaries{}, embed, limits, zap.NewNop())
	healthSvc := healthuc.New(&stubPinger{}, nil, nil)

	server := NewServer(svc, healthSvc, zap.NewNop())
	r := chirouter.NewRouter()
	server.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}
