package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/hirelink/talentsearch/internal/domain"
	"github.com/hirelink/talentsearch/internal/domain/candidate"
)

const testJobID = "4f6b2f0a-7a81-4cf6-9b0e-2a1f0e5d9c3b"

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestRecommendedCandidates_OK(t *testing.T) {
	corpus := &stubCorpus{
		hits: []candidate.Hit{
			candidate.NewHit("r1", "U1", 0.95),
			candidate.NewHit("r2", "U2", 0.80),
		},
		total: 2,
	}
	ts := newTestServer(t, corpus, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/api/v1/candidates/recommended/" + testJobID + "?page=1&pageSize=20")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body := decodeBody[pageResponse](t, resp)
	if len(body.Data) != 2 {
		t.Fatalf("data = %d items, want 2", len(body.Data))
	}
	first := body.Data[0]
	if first.OwnerID != "U1" || first.Score != 95 {
		t.Errorf("data[0] = %+v", first)
	}
	if first.User == nil || first.User.ID != "U1" {
		t.Errorf("data[0].user = %+v", first.User)
	}
	if first.Resume == nil || first.Resume.ResumeID != "r1" {
		t.Errorf("data[0].resume = %+v", first.Resume)
	}
	if body.Pagination.TotalCount != 2 || body.Pagination.CurrentPage != 1 {
		t.Errorf("pagination = %+v", body.Pagination)
	}
}

func TestRecommendedCandidates_InvalidJobID(t *testing.T) {
	corpus := &stubCorpus{}
	ts := newTestServer(t, corpus, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/api/v1/candidates/recommended/not-a-uuid")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Code != codeValidationFailed {
		t.Errorf("code = %q", body.Code)
	}
	if corpus.searchCalls != 0 {
		t.Error("no search should run for an invalid job id")
	}
}

func TestRecommendedCandidates_MissingEmbedding(t *testing.T) {
	corpus := &stubCorpus{
		vectorErr: fmt.Errorf("job: %w", domain.ErrEmbeddingNotFound),
	}
	ts := newTestServer(t, corpus, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/api/v1/candidates/recommended/" + testJobID + "?page=1&pageSize=20")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Code != codeEmbeddingNotFound {
		t.Errorf("code = %q", body.Code)
	}
}

func TestRecommendedCandidates_InvalidPaging(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing page", "?pageSize=20"},
		{"missing pageSize", "?page=1"},
		{"non-numeric page", "?page=abc&pageSize=20"},
		{"non-numeric pageSize", "?page=1&pageSize=x"},
		{"zero page", "?page=0&pageSize=20"},
		{"negative pageSize", "?page=1&pageSize=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corpus := &stubCorpus{}
			ts := newTestServer(t, corpus, &stubEmbedder{})

			resp, err := http.Get(ts.URL + "/api/v1/candidates/recommended/" + testJobID + tt.query)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			if corpus.searchCalls != 0 {
				t.Error("no search should run on invalid paging")
			}
		})
	}
}

func TestRecommendedCandidates_SearchTimeout(t *testing.T) {
	corpus := &stubCorpus{
		searchErr: fmt.Errorf("knn pass: %w", domain.ErrSearchTimeout),
	}
	ts := newTestServer(t, corpus, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/api/v1/candidates/recommended/" + testJobID + "?page=1&pageSize=20")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Code != codeSearchTimeout {
		t.Errorf("code = %q", body.Code)
	}
}

func TestRecommendedCandidates_DataAccessHidden(t *testing.T) {
	corpus := &stubCorpus{
		searchErr: fmt.Errorf("redis down: %w", domain.ErrDataAccess),
	}
	ts := newTestServer(t, corpus, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/api/v1/candidates/recommended/" + testJobID + "?page=1&pageSize=20")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Message != "internal error" {
		t.Errorf("message = %q, internals must not leak", body.Message)
	}
}

func TestSearchCandidates_OK(t *testing.T) {
	corpus := &stubCorpus{
		hits:  []candidate.Hit{candidate.NewHit("r1", "U1", 0.9)},
		total: 1,
	}
	ts := newTestServer(t, corpus, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/api/v1/candidates/search?q=golang+engineer&page=1&pageSize=20")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody[pageResponse](t, resp)
	if len(body.Data) != 1 {
		t.Fatalf("data = %d items, want 1", len(body.Data))
	}
}

func TestSearchCandidates_KeepsNullUsers(t *testing.T) {
	corpus := &stubCorpus{
		hits: []candidate.Hit{
			candidate.NewHit("r1", "U1", 0.9),
			candidate.NewHit("r2", "U2", 0.8),
		},
		total: 2,
	}
	users := &stubDirectory{profiles: map[string]candidate.Profile{"U1": {ID: "U1"}}}
	ts := newTestServerWith(t, corpus, users, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/api/v1/candidates/search?q=golang&page=1&pageSize=20")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body := decodeBody[pageResponse](t, resp)
	if len(body.Data) != 2 {
		t.Fatalf("data = %d items, want 2", len(body.Data))
	}
	if body.Data[1].User != nil {
		t.Error("unresolved owner should serialize with null user")
	}
}

func TestSearchCandidates_EmptyQueryListing(t *testing.T) {
	corpus := &stubCorpus{
		refs: []candidate.Ref{
			{OwnerID: "U1", ResumeID: "r1"},
			{OwnerID: "U2", ResumeID: "r2"},
			{OwnerID: "U1", ResumeID: "r3"},
		},
	}
	ts := newTestServer(t, corpus, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/api/v1/candidates/search?page=1&pageSize=20")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody[pageResponse](t, resp)
	if len(body.Data) != 2 {
		t.Fatalf("data = %d items, want 2 distinct owners", len(body.Data))
	}
	if corpus.searchCalls != 0 {
		t.Error("listing must not run a KNN pass")
	}
}

func TestSearchCandidates_VectorizationFailure(t *testing.T) {
	ts := newTestServer(t, &stubCorpus{}, &stubEmbedder{
		err: fmt.Errorf("provider: %w", domain.ErrVectorization),
	})

	resp, err := http.Get(ts.URL + "/api/v1/candidates/search?q=golang&page=1&pageSize=20")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	body := decodeBody[errorResponse](t, resp)
	if body.Code != codeVectorizationError {
		t.Errorf("code = %q", body.Code)
	}
}

func TestSearchCandidates_InvalidFilters(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad remote", "?q=go&page=1&pageSize=20&remote=maybe"},
		{"bad maxSalary", "?q=go&page=1&pageSize=20&maxSalary=lots"},
		{"negative maxSalary", "?q=go&page=1&pageSize=20&maxSalary=-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &stubCorpus{}, &stubEmbedder{})

			resp, err := http.Get(ts.URL + "/api/v1/candidates/search" + tt.query)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, &stubCorpus{}, &stubEmbedder{})

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
