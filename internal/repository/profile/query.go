package profile

import (
	"fmt"
	"strings"

	"github.com/hirelink/talentsearch/internal/domain/prefs"
)

const baseQuery = `SELECT id, name, avatar, location, job_type, remote, expected_salary
FROM users
WHERE id = ANY($1) AND banned = false AND locked = false`

// buildQuery renders the directory lookup for a batch of ids plus optional
// preference predicates. Pure so it can be unit tested without a pool.
func buildQuery(ids []string, filters prefs.Set) (string, []interface{}, error) {
	var sb strings.Builder
	sb.WriteString(baseQuery)

	args := []interface{}{ids}

	for _, f := range filters.Filters() {
		args = append(args, filterArg(f))
		switch f.Kind() {
		case prefs.JobType:
			fmt.Fprintf(&sb, " AND job_type = $%d", len(args))
		case prefs.RemoteWork:
			fmt.Fprintf(&sb, " AND remote = $%d", len(args))
		case prefs.Location:
			fmt.Fprintf(&sb, " AND location = $%d", len(args))
		case prefs.SalaryCeiling:
			fmt.Fprintf(&sb, " AND expected_salary <= $%d", len(args))
		default:
			return "", nil, fmt.Errorf("unsupported filter kind %q", f.Kind())
		}
	}

	return sb.String(), args, nil
}

func filterArg(f prefs.Filter) interface{} {
	switch f.Kind() {
	case prefs.RemoteWork:
		return f.Flag()
	case prefs.SalaryCeiling:
		return f.Ceiling()
	default:
		return f.Text()
	}
}
