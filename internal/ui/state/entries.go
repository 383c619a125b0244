package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/styleselect/internal/style"
)

// FilterEntries returns the selectable rows matching query. Separators are
// dropped while a query is active; an empty query returns every row.
func FilterEntries(entries []style.Entry, query string) []style.Entry {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return style.CloneEntries(entries)
	}
	candidates := make([]style.Entry, 0, len(entries))
	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Kind == style.KindSeparator || entry.Kind == style.KindPlaceholder {
			continue
		}
		candidates = append(candidates, entry)
		labels = append(labels, entry.Label)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]style.Entry, 0, len(matches))
		for idx, entry := range candidates {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, entry)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]style.Entry, 0, len(candidates))
	for _, entry := range candidates {
		if strings.Contains(strings.ToLower(entry.ID), lower) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// BestMatchIndex returns the index of the row that best matches query:
// exact label, then label prefix, then the closest fuzzy match.
func BestMatchIndex(entries []style.Entry, query string) int {
	trimmed := strings.TrimSpace(query)
	if len(entries) == 0 {
		return -1
	}
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, entry := range entries {
		if strings.EqualFold(entry.Label, trimmed) || strings.EqualFold(entry.ID, trimmed) {
			return i
		}
	}
	for i, entry := range entries {
		if strings.HasPrefix(strings.ToLower(entry.Label), lower) {
			return i
		}
	}
	labels := make([]string, len(entries))
	for i, entry := range entries {
		labels[i] = entry.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
