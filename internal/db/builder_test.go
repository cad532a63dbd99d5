package db

import (
	"strings"
	"testing"
)

func TestKNNBuilder_Simple(t *testing.T) {
	q, err := NewKNN("talent:idx").
		Vector([]float32{0.1, 0.2}).
		K(100).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.IndexName != "talent:idx" {
		t.Errorf("index = %q, want talent:idx", q.IndexName)
	}
	if q.K != 100 {
		t.Errorf("k = %d, want 100", q.K)
	}
	if q.Probe != 0 {
		t.Errorf("probe = %d, want 0", q.Probe)
	}
	if len(q.Filters) != 0 {
		t.Errorf("filters = %+v, want none", q.Filters)
	}
}

func TestKNNBuilder_Full(t *testing.T) {
	q, err := NewKNN("talent:idx").
		Vector([]float32{0.1}).
		K(1000).
		Probe(2000).
		Return("owner_id", "resume_id").
		MatchTag("tenant", "acme").
		ExcludeTag("owner_id", "guest").
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Probe != 2000 {
		t.Errorf("probe = %d, want 2000", q.Probe)
	}
	if len(q.ReturnFields) != 2 || q.ReturnFields[0] != "owner_id" {
		t.Errorf("return fields = %v", q.ReturnFields)
	}
	if len(q.Filters) != 2 {
		t.Fatalf("filters count = %d, want 2", len(q.Filters))
	}
	if q.Filters[0].Negate {
		t.Error("MatchTag filter should not negate")
	}
	if !q.Filters[1].Negate {
		t.Error("ExcludeTag filter should negate")
	}
}

func TestKNNBuilder_Validation(t *testing.T) {
	tests := []struct {
		name    string
		builder *KNNBuilder
		wantErr string
	}{
		{
			"missing index",
			NewKNN("").Vector([]float32{0.1}).K(1),
			"index name",
		},
		{
			"missing vector",
			NewKNN("idx").K(1),
			"vector",
		},
		{
			"zero k",
			NewKNN("idx").Vector([]float32{0.1}).K(0),
			"k must be positive",
		},
		{
			"negative probe",
			NewKNN("idx").Vector([]float32{0.1}).K(1).Probe(-1),
			"probe depth",
		},
		{
			"empty filter value",
			NewKNN("idx").Vector([]float32{0.1}).K(1).MatchTag("tenant", ""),
			"tag filter",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.builder.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestKNNBuilder_BuildCopies(t *testing.T) {
	b := NewKNN("idx").Vector([]float32{0.1}).K(10)

	first, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := b.MatchTag("tenant", "acme").Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Filters) != 0 {
		t.Error("earlier build should not see later filters")
	}
	if len(second.Filters) != 1 {
		t.Errorf("filters count = %d, want 1", len(second.Filters))
	}
}

func TestIndexDefinition_Validate(t *testing.T) {
	valid := NewIndex("talent:resume_idx").
		Prefix("talent:resume:").
		Tag("$.owner_id", "owner_id").
		VectorHNSW("$.vector", "vector", 1536, DistanceCosine, 32, 400)
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		idx  *IndexDefinition
	}{
		{"empty name", NewIndex("").Tag("$.a", "a")},
		{"invalid name", NewIndex("bad name!").Tag("$.a", "a")},
		{"no fields", NewIndex("idx")},
		{"duplicate alias", NewIndex("idx").Tag("$.a", "x").Tag("$.b", "x")},
		{"vector without dim", NewIndex("idx").VectorHNSW("$.v", "v", 0, DistanceCosine, 16, 200)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.idx.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"talent:resume_idx", true},
		{"abc-123", true},
		{"", false},
		{"has space", false},
		{"semi;colon", false},
	}
	for _, tc := range tests {
		if got := IsValidIdentifier(tc.s); got != tc.want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", tc.s, got, tc.want)
		}
	}
}
