// Package prefs models caller-supplied candidate preference filters as a
// closed tagged-variant type, so the enrichment stage can apply them
// exhaustively instead of passing stringly-typed maps around.
package prefs

import "fmt"

// Kind enumerates the supported preference filter variants.
type Kind int

const (
	// JobType restricts candidates to a desired job type (e.g. "full-time").
	JobType Kind = iota
	// RemoteWork restricts candidates by their remote-work preference.
	RemoteWork
	// Location restricts candidates to a desired location.
	Location
	// SalaryCeiling restricts candidates to an expected salary at or below a limit.
	SalaryCeiling
)

// String returns the variant name for diagnostics.
func (k Kind) String() string {
	switch k {
	case JobType:
		return "job_type"
	case RemoteWork:
		return "remote_work"
	case Location:
		return "location"
	case SalaryCeiling:
		return "salary_ceiling"
	default:
		return "unknown"
	}
}

// Filter is a single preference predicate. Exactly one variant payload is set.
type Filter struct {
	kind    Kind
	text    string
	flag    bool
	ceiling int
}

// NewJobType creates a job type filter.
func NewJobType(jobType string) (Filter, error) {
	if jobType == "" {
		return Filter{}, fmt.Errorf("job type is required")
	}
	return Filter{kind: JobType, text: jobType}, nil
}

// NewRemoteWork creates a remote-work preference filter.
func NewRemoteWork(remote bool) Filter {
	return Filter{kind: RemoteWork, flag: remote}
}

// NewLocation creates a location filter.
func NewLocation(location string) (Filter, error) {
	if location == "" {
		return Filter{}, fmt.Errorf("location is required")
	}
	return Filter{kind: Location, text: location}, nil
}

// NewSalaryCeiling creates a salary ceiling filter.
func NewSalaryCeiling(ceiling int) (Filter, error) {
	if ceiling <= 0 {
		return Filter{}, fmt.Errorf("salary ceiling must be positive, got %d", ceiling)
	}
	return Filter{kind: SalaryCeiling, ceiling: ceiling}, nil
}

// Kind returns the filter variant.
func (f Filter) Kind() Kind { return f.kind }

// Text returns the string payload (JobType, Location).
func (f Filter) Text() string { return f.text }

// Flag returns the boolean payload (RemoteWork).
func (f Filter) Flag() bool { return f.flag }

// Ceiling returns the numeric payload (SalaryCeiling).
func (f Filter) Ceiling() int { return f.ceiling }

// Set is an ordered collection of preference filters, at most one per kind.
type Set struct {
	filters []Filter
}

// NewSet validates and creates a filter set.
func NewSet(filters ...Filter) (Set, error) {
	seen := make(map[Kind]bool, len(filters))
	for _, f := range filters {
		if seen[f.kind] {
			return Set{}, fmt.Errorf("duplicate %s filter", f.kind)
		}
		seen[f.kind] = true
	}
	return Set{filters: filters}, nil
}

// Filters returns the filters in insertion order.
func (s Set) Filters() []Filter { return s.filters }

// IsEmpty reports whether the set has no filters.
func (s Set) IsEmpty() bool { return len(s.filters) == 0 }
