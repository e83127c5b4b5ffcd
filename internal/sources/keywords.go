package sources

import (
	"strings"
)

// knownKeywords is the fixed vocabulary scanned during keyword extraction:
// tickers, crypto names and recurring macro terms.
var knownKeywords = []string{
	"Apple", "AAPL", "Tesla", "TSLA", "Microsoft", "MSFT", "Google", "GOOGL",
	"Amazon", "AMZN", "Meta", "META", "Netflix", "NFLX", "Nvidia", "NVDA",
	"Bitcoin", "BTC", "Ethereum", "ETH", "crypto", "SEC", "Fed", "inflation",
	"recession", "earnings", "IPO", "stocks", "market", "crash", "rally",
	"Sensex", "Nifty", "RBI", "rupee", "banks", "oil", "gold",
}

const maxKeywords = 5

// ExtractKeywords scans text for known financial terms, case-insensitively,
// and returns up to five of them in vocabulary order. Text with no hit maps
// to the catch-all "general" topic.
func ExtractKeywords(text string) []string {
	textLower := strings.ToLower(text)

	var found []string
	for _, keyword := range knownKeywords {
		if strings.Contains(textLower, strings.ToLower(keyword)) {
			found = append(found, keyword)
			if len(found) == maxKeywords {
				break
			}
		}
	}

	if len(found) == 0 {
		return []string{"general"}
	}
	return found
}
