// Package recommend implements the candidate search pipeline: query
// vectorization, two-pass similarity search, owner deduplication, score
// normalization, and page enrichment from the user directory and resume
// store.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hirelink/talentsearch/internal/domain"
	"github.com/hirelink/talentsearch/internal/domain/candidate"
	"github.com/hirelink/talentsearch/internal/domain/prefs"
	"github.com/hirelink/talentsearch/internal/metrics"
)

// Limits bounds the adaptive fetch breadth and probe depth of one search.
type Limits struct {
	MinFetch    int
	MaxFetch    int
	MinProbe    int
	MaxProbe    int
	MaxPageSize int
	PassTimeout time.Duration // per search pass; 0 disables
}

// Service orchestrates the candidate search pipeline.
type Service struct {
	corpus  Corpus
	users   Directory
	resumes Summaries
	embed   Embedder
	limits  Limits
	logger  *zap.Logger
}

// New creates the search pipeline service.
func New(
	corpus Corpus,
	users Directory,
	resumes Summaries,
	embed Embedder,
	limits Limits,
	logger *zap.Logger,
) *Service {
	return &Service{
		corpus:  corpus,
		users:   users,
		resumes: resumes,
		embed:   embed,
		limits:  limits,
		logger:  logger,
	}
}

// Recommend returns candidates ranked against a stored job embedding.
// Candidates whose owner does not resolve to an eligible profile are dropped.
func (s *Service) Recommend(
	ctx context.Context, jobID string, page, pageSize int, filters prefs.Set,
) (candidate.Page, error) {
	if err := s.validatePaging(page, pageSize); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("recommend", "error").Inc()
		return candidate.Page{}, err
	}

	vector, err := s.corpus.JobVector(ctx, jobID)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("recommend", "error").Inc()
		return candidate.Page{}, fmt.Errorf("load job vector: %w", err)
	}

	result, err := s.run(ctx, vector, page, pageSize, filters, true)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("recommend", "error").Inc()
		return candidate.Page{}, err
	}

	metrics.SearchRequestsTotal.WithLabelValues("recommend", "success").Inc()
	return result, nil
}

// Search returns candidates ranked against a free-text query. Candidates
// with unresolved owners are kept with a nil user. An empty query falls
// back to an unranked listing of distinct-owner resumes.
func (s *Service) Search(
	ctx context.Context, query string, page, pageSize int, filters prefs.Set,
) (candidate.Page, error) {
	if err := s.validatePaging(page, pageSize); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("search", "error").Inc()
		return candidate.Page{}, err
	}

	if strings.TrimSpace(query) == "" {
		result, err := s.listing(ctx, page, pageSize, filters)
		if err != nil {
			metrics.SearchRequestsTotal.WithLabelValues("listing", "error").Inc()
			return candidate.Page{}, err
		}
		metrics.SearchRequestsTotal.WithLabelValues("listing", "success").Inc()
		return result, nil
	}

	start := time.Now()
	embResult, err := s.embed.Embed(ctx, query)
	metrics.SearchStageDuration.WithLabelValues("vectorize").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("search", "error").Inc()
		return candidate.Page{}, fmt.Errorf("vectorize query: %w", err)
	}

	result, err := s.run(ctx, embResult.Embedding, page, pageSize, filters, false)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("search", "error").Inc()
		return candidate.Page{}, err
	}

	metrics.SearchRequestsTotal.WithLabelValues("search", "success").Inc()
	return result, nil
}

func (s *Service) validatePaging(page, pageSize int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrValidation, page)
	}
	if pageSize < 1 {
		return fmt.Errorf("%w: pageSize must be >= 1, got %d", domain.ErrValidation, pageSize)
	}
	if s.limits.MaxPageSize > 0 && pageSize > s.limits.MaxPageSize {
		return fmt.Errorf("%w: pageSize must be <= %d, got %d",
			domain.ErrValidation, s.limits.MaxPageSize, pageSize)
	}
	return nil
}

// run executes the ranked pipeline for an already-obtained query vector.
//
// The fetch breadth grows with page depth so that owner deduplication cannot
// under-fill deep pages: k = clamp(page*pageSize, MinFetch, MaxFetch), and
// the index probe depth is clamp(2k, MinProbe, MaxProbe). The count pass
// runs concurrently with the fetch pass and reports the raw (pre-dedup)
// match total.
func (s *Service) run(
	ctx context.Context,
	vector []float32,
	page, pageSize int,
	filters prefs.Set,
	dropMissing bool,
) (candidate.Page, error) {
	k := clamp(page*pageSize, s.limits.MinFetch, s.limits.MaxFetch)
	probe := clamp(2*k, s.limits.MinProbe, s.limits.MaxProbe)

	passCtx := ctx
	if s.limits.PassTimeout > 0 {
		var cancel context.CancelFunc
		passCtx, cancel = context.WithTimeout(ctx, s.limits.PassTimeout)
		defer cancel()
	}

	type fetchOut struct {
		hits []candidate.Hit
		err  error
	}
	type countOut struct {
		total int
		err   error
	}

	fetchCh := make(chan fetchOut, 1)
	countCh := make(chan countOut, 1)

	go func() {
		start := time.Now()
		hits, err := s.corpus.Search(passCtx, vector, k, probe)
		metrics.SearchStageDuration.WithLabelValues("knn").Observe(time.Since(start).Seconds())
		fetchCh <- fetchOut{hits: hits, err: err}
	}()
	go func() {
		total, err := s.corpus.Count(passCtx, vector, k, probe)
		countCh <- countOut{total: total, err: err}
	}()

	fetch := <-fetchCh
	count := <-countCh

	if err := firstError(fetch.err, count.err); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return candidate.Page{}, fmt.Errorf("%w: %w", domain.ErrSearchTimeout, err)
		}
		return candidate.Page{}, fmt.Errorf("similarity search: %w", err)
	}

	metrics.SearchHitsFetched.Observe(float64(len(fetch.hits)))

	start := time.Now()
	ranked := reduceByOwner(fetch.hits)
	metrics.SearchStageDuration.WithLabelValues("reduce").Observe(time.Since(start).Seconds())

	window := pageWindow(ranked, page, pageSize)

	items, err := s.enrich(ctx, window, filters, dropMissing)
	if err != nil {
		return candidate.Page{}, err
	}

	// totalCount is the raw pre-dedup match total from the count pass, while
	// items are post-dedup. Observed production behavior, kept as-is.
	return candidate.Page{
		Items:      items,
		Pagination: candidate.NewPagination(page, pageSize, count.total),
	}, nil
}

// listing serves the empty-query fallback: distinct-owner resumes in corpus
// order, no scores, manually paginated. totalCount is the number of distinct
// owners seen within the listing breadth.
func (s *Service) listing(
	ctx context.Context, page, pageSize int, filters prefs.Set,
) (candidate.Page, error) {
	refs, _, err := s.corpus.ListResumes(ctx, s.limits.MaxFetch)
	if err != nil {
		return candidate.Page{}, fmt.Errorf("list resumes: %w", err)
	}

	seen := make(map[string]bool, len(refs))
	distinct := make([]candidate.Candidate, 0, len(refs))
	for _, ref := range refs {
		if seen[ref.OwnerID] {
			continue
		}
		seen[ref.OwnerID] = true
		distinct = append(distinct, candidate.New(ref.OwnerID, ref.ResumeID, 0))
	}

	window := pageWindow(distinct, page, pageSize)

	items, err := s.enrich(ctx, window, filters, false)
	if err != nil {
		return candidate.Page{}, err
	}

	return candidate.Page{
		Items:      items,
		Pagination: candidate.NewPagination(page, pageSize, len(distinct)),
	}, nil
}

// enrich joins a page window against user profiles and resume summaries.
// Guest-owned candidates are never looked up in the directory. When
// dropMissing is set, candidates without a resolved user are removed.
func (s *Service) enrich(
	ctx context.Context,
	window []candidate.Candidate,
	filters prefs.Set,
	dropMissing bool,
) ([]candidate.Item, error) {
	if len(window) == 0 {
		return []candidate.Item{}, nil
	}

	start := time.Now()
	defer func() {
		metrics.SearchStageDuration.WithLabelValues("enrich").Observe(time.Since(start).Seconds())
	}()

	ownerIDs := make([]string, 0, len(window))
	resumeIDs := make([]string, 0, len(window))
	for _, c := range window {
		if c.OwnerID() != domain.GuestOwnerID {
			ownerIDs = append(ownerIDs, c.OwnerID())
		}
		resumeIDs = append(resumeIDs, c.ResumeID())
	}

	type usersOut struct {
		profiles map[string]candidate.Profile
		err      error
	}
	type summariesOut struct {
		summaries map[string]candidate.Summary
		err       error
	}

	usersCh := make(chan usersOut, 1)
	summariesCh := make(chan summariesOut, 1)

	go func() {
		profiles, err := s.users.FindMany(ctx, ownerIDs, filters)
		usersCh <- usersOut{profiles: profiles, err: err}
	}()
	go func() {
		summaries, err := s.resumes.FindSummaries(ctx, resumeIDs)
		summariesCh <- summariesOut{summaries: summaries, err: err}
	}()

	users := <-usersCh
	summaries := <-summariesCh

	if err := firstError(users.err, summaries.err); err != nil {
		return nil, fmt.Errorf("enrich page: %w", err)
	}

	items := make([]candidate.Item, 0, len(window))
	for _, c := range window {
		var user *candidate.Profile
		if c.OwnerID() != domain.GuestOwnerID {
			if p, ok := users.profiles[c.OwnerID()]; ok {
				user = &p
			}
		}
		if dropMissing && user == nil {
			continue
		}

		var resume *candidate.Summary
		if r, ok := summaries.summaries[c.ResumeID()]; ok {
			resume = &r
		}

		items = append(items, candidate.Item{Candidate: c, User: user, Resume: resume})
	}

	return items, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
