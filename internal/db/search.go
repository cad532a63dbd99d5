package db

// TagFilter is an exact-match predicate on a TAG field. Negate excludes
// matching documents instead of restricting to them.
type TagFilter struct {
	Key    string
	Value  string
	Negate bool
}

// KNNQuery is the input for vector similarity search. The same query value
// drives both the KNN fetch pass and the count pass, so the two passes are
// guaranteed to see identical filter and breadth parameters.
type KNNQuery struct {
	IndexName    string
	Filters      []TagFilter
	Vector       []float32
	K            int // candidate fetch breadth
	Probe        int // HNSW EF_RUNTIME: nodes probed during graph traversal
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
