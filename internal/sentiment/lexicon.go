package sentiment

import (
	"strings"
)

// bearishKeywords is the quick lexical screen used by the scheduled path.
// Matching is substring based, on the lowercased headline only.
var bearishKeywords = []string{"crash", "fall", "drop", "plunge", "loss", "sell-off", "collapse"}

// BearishHeadline reports whether a headline trips the bearish screen.
func BearishHeadline(headline string) bool {
	lower := strings.ToLower(headline)
	for _, kw := range bearishKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
