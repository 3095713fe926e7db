package catalog

import (
	"slices"

	"autopreco-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

type Match struct {
	Name       string
	Similarity float64
}

// Nearest ranks candidates by Jaro-Winkler similarity to the query,
// most similar first. It backs the "did you mean" layer when substring
// suggestion comes back empty.
func Nearest(query string, candidates []string, limit int) []Match {
	queryKey := textutil.FoldKey(query)

	var matches []Match
	for _, candidate := range candidates {
		similarity := matchr.JaroWinkler(queryKey, textutil.FoldKey(candidate), false)
		if similarity <= 0 {
			continue
		}
		matches = append(matches, Match{Name: candidate, Similarity: similarity})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
