// Package watchlist implements the case-insensitive intersection between
// signal keywords and user watchlists.
package watchlist

import (
	"sort"
	"strings"
)

// Match returns the intersection of a signal's keywords and a user's
// watchlist. Comparison is case-insensitive; the result is lowercased,
// deduplicated and sorted, so the first element is a stable topic choice.
func Match(signalKeywords, userWatchlist []string) []string {
	if len(signalKeywords) == 0 || len(userWatchlist) == 0 {
		return nil
	}

	watched := make(map[string]struct{}, len(userWatchlist))
	for _, kw := range userWatchlist {
		watched[strings.ToLower(kw)] = struct{}{}
	}

	seen := make(map[string]struct{})
	var matched []string
	for _, kw := range signalKeywords {
		lower := strings.ToLower(kw)
		if _, ok := watched[lower]; !ok {
			continue
		}
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		matched = append(matched, lower)
	}

	sort.Strings(matched)
	return matched
}

// ContainsFold reports whether list already holds keyword, ignoring case.
func ContainsFold(list []string, keyword string) bool {
	for _, item := range list {
		if strings.EqualFold(item, keyword) {
			return true
		}
	}
	return false
}
