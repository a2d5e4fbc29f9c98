package ingest

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fkunand/faculty-admin/pkg/spreadsheet"
)

const maxSuggestions = 5

// LocateHeader returns the index of the first row within window that has a
// column for rule's anchor field and an exact label of one of its keys.
func LocateHeader(grid spreadsheet.Grid, window int, table AliasTable, rule HeaderRule) (int, error) {
	limit := min(len(grid), window)
	for i := 0; i < limit; i++ {
		if qualifies(grid[i], table, rule) {
			return i, nil
		}
	}
	return -1, &HeaderNotFoundError{
		Window:      window,
		Rule:        rule,
		Suggestions: suggestLabels(grid[:limit], table, rule),
	}
}

func qualifies(row spreadsheet.Row, table AliasTable, rule HeaderRule) bool {
	hasAnchor, hasKey := false, false
	for _, c := range row {
		if c.IsEmpty() {
			continue
		}
		label := c.String()
		if !hasAnchor && table.MatchesField(rule.Anchor, label) {
			hasAnchor = true
		}
		if !hasKey && table.MatchesExact(rule.Keys, label) {
			hasKey = true
		}
		if hasAnchor && hasKey {
			return true
		}
	}
	return false
}

// suggestLabels ranks window labels that fuzzily resemble a required label
// so the error can point at near misses such as "N.I.P" or "Nama_Dosen".
func suggestLabels(rows spreadsheet.Grid, table AliasTable, rule HeaderRule) []string {
	seen := map[string]bool{}
	var labels []string
	for _, row := range rows {
		for _, c := range row {
			if c.Kind != spreadsheet.CellText {
				continue
			}
			label := NormalizeLabel(c.Text)
			if label == "" || len(label) > 40 || seen[label] {
				continue
			}
			seen[label] = true
			labels = append(labels, label)
		}
	}

	required := append([]string{NormalizeLabel(rule.AnchorLabel)}, table.ExactLabels(rule.Keys)...)
	best := map[string]int{}
	for _, want := range required {
		for _, r := range fuzzy.RankFindNormalizedFold(want, labels) {
			if r.Target == want {
				continue
			}
			if d, ok := best[r.Target]; !ok || r.Distance < d {
				best[r.Target] = r.Distance
			}
		}
	}

	out := make([]string, 0, len(best))
	for label := range best {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool {
		if best[out[i]] != best[out[j]] {
			return best[out[i]] < best[out[j]]
		}
		return out[i] < out[j]
	})
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
