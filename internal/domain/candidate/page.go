package candidate

// Profile is the user directory projection joined onto a candidate.
type Profile struct {
	ID       string
	Name     string
	Avatar   string
	Location string
	JobType  string
	Remote   bool
	Salary   int
}

// Summary is the resume summary projection from the document store.
type Summary struct {
	ResumeID string
	Summary  string
	Skills   []string
}

// Item is one enriched entry of a result page. User is nil when the owner
// is the guest sentinel, failed eligibility, or no longer resolves.
type Item struct {
	Candidate Candidate
	User      *Profile
	Resume    *Summary
}

// Pagination describes result paging metadata.
type Pagination struct {
	CurrentPage int
	PageSize    int
	TotalCount  int
	TotalPages  int
}

// NewPagination computes paging metadata; TotalPages = ceil(totalCount/pageSize).
func NewPagination(page, pageSize, totalCount int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return Pagination{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
	}
}

// Page is one page of enriched candidates with paging metadata.
type Page struct {
	Items      []Item
	Pagination Pagination
}
