package lunch

import (
	"sort"

	"github.com/sahilm/fuzzy"

	"lunchofficer/internal/types"
)

// unmatchedVisit is a visit history entry that names no catalog cafe.
type unmatchedVisit struct {
	Name       string
	Visits     int
	Suggestion string
}

// unmatchedVisits returns the history names missing from the catalog, in name
// order, each with the closest catalog name when one matches.
func unmatchedVisits(counts map[string]int, catalog types.Catalog) []unmatchedVisit {
	var names []string
	for name := range counts {
		if _, ok := catalog[name]; !ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	cafes := catalog.Names()
	out := make([]unmatchedVisit, 0, len(names))
	for _, name := range names {
		suggestion, _ := SuggestCafe(name, cafes)
		out = append(out, unmatchedVisit{Name: name, Visits: counts[name], Suggestion: suggestion})
	}
	return out
}

// SuggestCafe returns the candidate that best fuzzy-matches name.
func SuggestCafe(name string, candidates []string) (string, bool) {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
