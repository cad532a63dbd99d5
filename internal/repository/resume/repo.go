// Package resume reads resume summary documents from the document store.
package resume

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hirelink/talentsearch/internal/db"
	"github.com/hirelink/talentsearch/internal/domain"
	"github.com/hirelink/talentsearch/internal/domain/candidate"
)

const keyPrefix = domain.KeyPrefix + "resume:"

// store is the narrow slice of db.Store this repository needs.
type store interface {
	db.JSONStore
}

// Repo fetches resume summaries in batches.
type Repo struct {
	store store
}

// New creates a resume summary repository.
func New(store store) *Repo {
	return &Repo{store: store}
}

// doc mirrors the stored resume document. JSON.GET with a "$" path wraps the
// document in a one-element array.
type doc struct {
	ResumeID string   `json:"resume_id"`
	Summary  string   `json:"summary"`
	Skills   []string `json:"skills"`
}

// FindSummaries fetches summaries for the given resume ids, keyed by id.
// Missing documents are absent from the result, not errors.
func (r *Repo) FindSummaries(
	ctx context.Context, resumeIDs []string,
) (map[string]candidate.Summary, error) {
	if len(resumeIDs) == 0 {
		return map[string]candidate.Summary{}, nil
	}

	keys := make([]string, len(resumeIDs))
	for i, id := range resumeIDs {
		keys[i] = keyPrefix + id
	}

	raw, err := r.store.JSONGetMulti(ctx, keys, "$")
	if err != nil {
		return nil, fmt.Errorf("fetch resume summaries: %w: %w", domain.ErrDataAccess, err)
	}

	out := make(map[string]candidate.Summary, len(resumeIDs))
	for i, data := range raw {
		if data == nil {
			continue
		}

		var docs []doc
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, fmt.Errorf("decode resume %s: %w: %w", resumeIDs[i], domain.ErrDataAccess, err)
		}
		if len(docs) == 0 {
			continue
		}

		d := docs[0]
		id := d.ResumeID
		if id == "" {
			id = resumeIDs[i]
		}
		out[id] = candidate.Summary{
			ResumeID: id,
			Summary:  d.Summary,
			Skills:   d.Skills,
		}
	}

	return out, nil
}
