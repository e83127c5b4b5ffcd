package models

import (
	"context"
)

type Label string

const (
	LabelPositive Label = "Positive"
	LabelNeutral  Label = "Neutral"
	LabelNegative Label = "Negative"
)

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

type Signal struct {
	ID       string   `json:"id"`
	Source   string   `json:"source"`
	Headline string   `json:"headline"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
}

type ClassifiedSignal struct {
	Signal
	Sentiment      Label   `json:"sentiment"`
	SentimentScore float64 `json:"sentiment_score"`
	Urgency        Urgency `json:"urgency"`
	Analysis       string  `json:"ai_analysis"`
	Recommendation string  `json:"recommendation"`
}

type SignalSource interface {
	FetchSignals(ctx context.Context, limit int) ([]Signal, error)
	GetName() string
}
