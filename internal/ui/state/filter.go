package state

import (
	"strings"

	"github.com/atomicstack/personalisation-picker/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match scores below fuzzyScore are exact, prefix and substring hits; fuzzy
// hits add their edit distance on top.
const (
	exactScore = iota
	prefixScore
	substringScore
	fuzzyScore
)

// SetFilter narrows the visible list to items matching query and moves the
// cursor to the best match. Clearing the query puts the cursor back where it
// was before filtering started. It reports whether the query changed.
func (l *Level) SetFilter(query string) bool {
	if query == l.Filter {
		return false
	}
	wasFiltered := strings.TrimSpace(l.Filter) != ""
	isFiltered := strings.TrimSpace(query) != ""
	if isFiltered && !wasFiltered {
		l.unfilteredCursor = l.Cursor
	}
	l.Filter = query
	l.Items = Match(l.Full, query)
	switch {
	case isFiltered:
		l.Cursor = BestMatch(l.Items, query)
	case wasFiltered:
		l.Cursor = l.unfilteredCursor
		l.unfilteredCursor = -1
	}
	l.clamp()
	return true
}

// Match returns the items whose label or key fuzzily matches query, in list
// order. A blank query matches everything.
func Match(items []menu.Item, query string) []menu.Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return menu.CloneItems(items)
	}
	matched := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if _, ok := score(item, query); ok {
			matched = append(matched, item)
		}
	}
	return matched
}

// BestMatch returns the index of the item that matches query most closely.
// Ties go to the earlier item.
func BestMatch(items []menu.Item, query string) int {
	query = strings.TrimSpace(query)
	if len(items) == 0 {
		return -1
	}
	best, bestScore := 0, -1
	for i, item := range items {
		s, ok := score(item, query)
		if !ok {
			continue
		}
		if bestScore < 0 || s < bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

// score rates how well query matches an item; lower is better.
func score(item menu.Item, query string) (int, bool) {
	best, found := 0, false
	for _, target := range matchTargets(item) {
		s, ok := scoreText(target, query)
		if ok && (!found || s < best) {
			best, found = s, true
		}
	}
	return best, found
}

func matchTargets(item menu.Item) []string {
	if item.IsCategory() && item.Key != item.Title {
		return []string{item.Title, item.Key}
	}
	return []string{item.Label()}
}

func scoreText(text, query string) (int, bool) {
	lowerText, lowerQuery := strings.ToLower(text), strings.ToLower(query)
	switch {
	case lowerText == lowerQuery:
		return exactScore, true
	case strings.HasPrefix(lowerText, lowerQuery):
		return prefixScore, true
	case strings.Contains(lowerText, lowerQuery):
		return substringScore, true
	}
	distance := fuzzy.RankMatchNormalizedFold(query, text)
	if distance < 0 {
		return 0, false
	}
	return fuzzyScore + distance, true
}
