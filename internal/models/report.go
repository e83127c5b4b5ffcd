package models

type MarketReport struct {
	LiveSignals   []ReportSignal `json:"live_signals"`
	TopPicks      []ReportPick   `json:"top_picks"`
	MarketSummary string         `json:"market_summary"`
	Advice        string         `json:"llm_advice"`
}

type ReportSignal struct {
	Title   string `json:"title"`
	Details string `json:"details"`
	Source  string `json:"source"`
}

type ReportPick struct {
	Name   string `json:"name"`
	Action string `json:"action"`
	Price  string `json:"price"`
	Reason string `json:"reason"`
}
