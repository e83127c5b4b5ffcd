package models

type DispatchAction struct {
	Username        string   `json:"username"`
	ChatID          string   `json:"chat_id"`
	SignalID        string   `json:"signal_id"`
	MatchedKeywords []string `json:"matched_keywords"`
	Sentiment       Label    `json:"sentiment,omitempty"`
	Urgency         Urgency  `json:"urgency,omitempty"`
}

type MatchRecord struct {
	Username        string   `json:"user"`
	SignalID        string   `json:"signal_id"`
	Headline        string   `json:"headline"`
	MatchedKeywords []string `json:"matched_keywords"`
	Sentiment       Label    `json:"sentiment"`
	Urgency         Urgency  `json:"urgency"`
	Analysis        string   `json:"ai_analysis"`
}

type TriggerResult struct {
	AlertsSent    int           `json:"alerts_sent"`
	MatchesFound  int           `json:"matches_found"`
	MarketSummary string        `json:"market_summary"`
	Details       []MatchRecord `json:"details"`
}
