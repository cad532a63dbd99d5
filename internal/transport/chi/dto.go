package chi

import "github.com/hirelink/talentsearch/internal/domain/candidate"

// Error response codes.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeUnauthorized       = "unauthorized"
	codeEmbeddingNotFound  = "embedding_not_found"
	codeVectorizationError = "vectorization_failed"
	codeSearchTimeout      = "search_timeout"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type userProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Location string `json:"location,omitempty"`
	JobType  string `json:"jobType,omitempty"`
	Remote   bool   `json:"remote"`
	Salary   int    `json:"expectedSalary,omitempty"`
}

type resumeSummary struct {
	ResumeID string   `json:"resumeId"`
	Summary  string   `json:"summary"`
	Skills   []string `json:"skills,omitempty"`
}

type candidateItem struct {
	OwnerID  string         `json:"ownerId"`
	ResumeID string         `json:"resumeId"`
	Score    int            `json:"score"`
	User     *userProfile   `json:"user"`
	Resume   *resumeSummary `json:"resume"`
}

type paginationMeta struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
}

type pageResponse struct {
	Data       []candidateItem `json:"data"`
	Pagination paginationMeta  `json:"pagination"`
}

func pageToResponse(p candidate.Page) pageResponse {
	items := make([]candidateItem, len(p.Items))
	for i, it := range p.Items {
		items[i] = candidateItem{
			OwnerID:  it.Candidate.OwnerID(),
			ResumeID: it.Candidate.ResumeID(),
			Score:    it.Candidate.Score(),
			User:     profileToResponse(it.User),
			Resume:   summaryToResponse(it.Resume),
		}
	}
	return pageResponse{
		Data: items,
		Pagination: paginationMeta{
			CurrentPage: p.Pagination.CurrentPage,
			PageSize:    p.Pagination.PageSize,
			TotalCount:  p.Pagination.TotalCount,
			TotalPages:  p.Pagination.TotalPages,
		},
	}
}

func profileToResponse(p *candidate.Profile) *userProfile {
	if p == nil {
		return nil
	}
	return &userProfile{
		ID:       p.ID,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Location: p.Location,
		JobType:  p.JobType,
		Remote:   p.Remote,
		Salary:   p.Salary,
	}
}

func summaryToResponse(s *candidate.Summary) *resumeSummary {
	if s == nil {
		return nil
	}
	return &resumeSummary{
		ResumeID: s.ResumeID,
		Summary:  s.Summary,
		Skills:   s.Skills,
	}
}
