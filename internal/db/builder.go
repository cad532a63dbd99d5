package db

import "fmt"

// KNNBuilder is a fluent builder for KNN search queries. Building the fetch
// pass and the count pass from one builder keeps their filters identical.
type KNNBuilder struct {
	q KNNQuery
}

// NewKNN starts building a KNN query against an FT index.
func NewKNN(index string) *KNNBuilder {
	return &KNNBuilder{q: KNNQuery{IndexName: index}}
}

// Vector sets the query embedding.
func (b *KNNBuilder) Vector(v []float32) *KNNBuilder {
	b.q.Vector = v
	return b
}

// K sets the candidate fetch breadth.
func (b *KNNBuilder) K(k int) *KNNBuilder {
	b.q.K = k
	return b
}

// Probe sets the HNSW runtime probe depth (EF_RUNTIME).
func (b *KNNBuilder) Probe(ef int) *KNNBuilder {
	b.q.Probe = ef
	return b
}

// Return sets the fields projected back from each hit.
func (b *KNNBuilder) Return(fields ...string) *KNNBuilder {
	b.q.ReturnFields = append(b.q.ReturnFields, fields...)
	return b
}

// MatchTag restricts results to documents whose TAG field equals value.
func (b *KNNBuilder) MatchTag(key, value string) *KNNBuilder {
	b.q.Filters = append(b.q.Filters, TagFilter{Key: key, Value: value})
	return b
}

// ExcludeTag excludes documents whose TAG field equals value.
func (b *KNNBuilder) ExcludeTag(key, value string) *KNNBuilder {
	b.q.Filters = append(b.q.Filters, TagFilter{Key: key, Value: value, Negate: true})
	return b
}

// Build validates and returns the query.
func (b *KNNBuilder) Build() (*KNNQuery, error) {
	if b.q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if len(b.q.Vector) == 0 {
		return nil, fmt.Errorf("vector is required")
	}
	if b.q.K <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", b.q.K)
	}
	if b.q.Probe < 0 {
		return nil, fmt.Errorf("probe depth must not be negative, got %d", b.q.Probe)
	}
	for _, f := range b.q.Filters {
		if f.Key == "" || f.Value == "" {
			return nil, fmt.Errorf("tag filter requires key and value")
		}
	}
	q := b.q
	return &q, nil
}
