// Package profile reads the relational user directory. Eligibility rules
// (banned/locked) and caller preference filters are applied as predicates in
// a single batch query.
package profile

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/hirelink/talentsearch/internal/domain"
	"github.com/hirelink/talentsearch/internal/domain/candidate"
	"github.com/hirelink/talentsearch/internal/domain/prefs"
)

// Repo implements the user directory contract of the recommend usecase.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a user directory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Ping checks directory connectivity.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping users: %w", err)
	}
	return nil
}

// FindMany fetches eligible profiles for the given user ids, keyed by id.
// Users that are banned, locked, fail a preference filter, or do not exist
// are simply absent from the result; that absence is a business rule, not an
// error.
func (r *Repo) FindMany(
	ctx context.Context, ids []string, filters prefs.Set,
) (map[string]candidate.Profile, error) {
	if len(ids) == 0 {
		return map[string]candidate.Profile{}, nil
	}

	sql, args, err := buildQuery(ids, filters)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w: %w", domain.ErrDataAccess, err)
	}
	defer rows.Close()

	out := make(map[string]candidate.Profile, len(ids))
	for rows.Next() {
		var p candidate.Profile
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Avatar, &p.Location, &p.JobType, &p.Remote, &p.Salary,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w: %w", domain.ErrDataAccess, err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read users: %w: %w", domain.ErrDataAccess, err)
	}

	return out, nil
}
