package sources

import (
	"bearwatch/internal/models"
)

// MockSignals returns the canned batch served when every live source comes
// back empty.
func MockSignals() []models.Signal {
	return []models.Signal{
		{
			ID:       "mock_1",
			Source:   "Reuters",
			Headline: "Apple reports record quarterly earnings, stock surges 5%",
			Content:  "Apple Inc. announced exceptional quarterly results, beating analyst expectations.",
			Keywords: []string{"Apple", "AAPL", "earnings"},
		},
		{
			ID:       "mock_2",
			Source:   "Bloomberg",
			Headline: "Bitcoin crashes 15% amid regulatory fears",
			Content:  "Cryptocurrency markets tumble as SEC announces new enforcement actions against major exchanges.",
			Keywords: []string{"Bitcoin", "BTC", "crypto", "SEC"},
		},
		{
			ID:       "mock_3",
			Source:   "CNBC",
			Headline: "Tesla faces production delays, shares drop 8%",
			Content:  "Tesla Inc. announced significant production challenges at its Berlin factory, causing investor concern.",
			Keywords: []string{"Tesla", "TSLA", "EV"},
		},
		{
			ID:       "mock_4",
			Source:   "Financial Times",
			Headline: "Microsoft Azure growth exceeds expectations",
			Content:  "Microsoft's cloud computing division continues strong performance, driving overall company growth.",
			Keywords: []string{"Microsoft", "MSFT", "Azure", "cloud"},
		},
		{
			ID:       "mock_5",
			Source:   "Twitter/X",
			Headline: "BREAKING: Major bank announces massive layoffs",
			Content:  "One of the largest investment banks is cutting 10,000 jobs worldwide amid economic uncertainty.",
			Keywords: []string{"banking", "layoffs", "recession"},
		},
		{
			ID:       "mock_6",
			Source:   "Reddit r/wallstreetbets",
			Headline: "GameStop sees unusual trading activity again",
			Content:  "Retail investors are buzzing about potential short squeeze opportunities in GME stock.",
			Keywords: []string{"GameStop", "GME", "meme stocks"},
		},
		{
			ID:       "mock_7",
			Source:   "Associated Press",
			Headline: "Oil prices stable as OPEC maintains production levels",
			Content:  "Crude oil markets remain steady following OPEC's decision to keep current output quotas.",
			Keywords: []string{"oil", "OPEC", "energy"},
		},
		{
			ID:       "mock_8",
			Source:   "CoinDesk",
			Headline: "Ethereum upgrade causes network instability",
			Content:  "The latest Ethereum protocol update has resulted in temporary network congestion and failed transactions.",
			Keywords: []string{"Ethereum", "ETH", "crypto"},
		},
	}
}
