package recommend

import (
	"math"
	"sort"

	"github.com/hirelink/talentsearch/internal/domain/candidate"
)

// reduceByOwner collapses raw hits to one candidate per owner. Input is
// sorted by raw score descending, so the first occurrence per owner is that
// owner's best resume. The result is re-sorted because map-style grouping
// here guarantees stability only per owner, not globally.
func reduceByOwner(hits []candidate.Hit) []candidate.Candidate {
	seen := make(map[string]bool, len(hits))
	best := make([]candidate.Hit, 0, len(hits))

	for _, h := range hits {
		if seen[h.OwnerID()] {
			continue
		}
		seen[h.OwnerID()] = true
		best = append(best, h)
	}

	sort.SliceStable(best, func(i, j int) bool {
		return best[i].RawScore() > best[j].RawScore()
	})

	out := make([]candidate.Candidate, len(best))
	for i, h := range best {
		out[i] = candidate.New(h.OwnerID(), h.ResumeID(), normalizeScore(h.RawScore()))
	}
	return out
}

// normalizeScore maps a raw similarity in [0,1] to an integer in [0,100].
// Out-of-range raw values are clamped rather than rejected: distance metrics
// can produce slight negatives on degenerate vectors.
func normalizeScore(raw float64) int {
	score := int(math.Round(raw * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// pageWindow slices [(page-1)*pageSize, page*pageSize) out of the ranked set.
func pageWindow(ranked []candidate.Candidate, page, pageSize int) []candidate.Candidate {
	start := (page - 1) * pageSize
	if start >= len(ranked) {
		return nil
	}
	end := start + pageSize
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[start:end]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
