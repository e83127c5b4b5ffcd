// Package sentiment classifies market signals with VADER polarity scoring
// and derives urgency tiers from the score and crisis wording.
package sentiment

import (
	"fmt"
	"math"

	"github.com/jonreiter/govader"

	"bearwatch/internal/models"
)

// Thresholds on the VADER compound score. Scores strictly inside
// (-0.05, 0.05) are Neutral; the boundary values land on the polar side.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// Scorer produces a compound polarity score in [-1, 1] for a piece of text.
type Scorer interface {
	Score(text string) float64
}

// VADERScorer scores text with a govader analyzer.
type VADERScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERScorer() *VADERScorer {
	return &VADERScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VADERScorer) Score(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}

// Classifier assigns sentiment labels and urgency tiers to raw signals.
type Classifier struct {
	scorer Scorer
}

func NewClassifier(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify labels a piece of text from its compound score.
func (c *Classifier) Classify(text string) (models.Label, float64) {
	score := c.scorer.Score(text)
	switch {
	case score >= PositiveThreshold:
		return models.LabelPositive, score
	case score <= NegativeThreshold:
		return models.LabelNegative, score
	default:
		return models.LabelNeutral, score
	}
}

// ClassifySignal scores headline and content together and fills in the
// derived fields.
func (c *Classifier) ClassifySignal(sig models.Signal) models.ClassifiedSignal {
	fullText := sig.Headline + " " + sig.Content
	label, score := c.Classify(fullText)
	urgency := UrgencyFor(label, score, fullText)

	recommendation := "Hold"
	if urgency == models.UrgencyHigh || urgency == models.UrgencyCritical {
		recommendation = "Monitor"
	}

	return models.ClassifiedSignal{
		Signal:         sig,
		Sentiment:      label,
		SentimentScore: round3(score),
		Urgency:        urgency,
		Analysis:       fmt.Sprintf("VADER Score: %.2f (%s)", score, label),
		Recommendation: recommendation,
	}
}

func (c *Classifier) ClassifyAll(signals []models.Signal) []models.ClassifiedSignal {
	classified := make([]models.ClassifiedSignal, 0, len(signals))
	for _, sig := range signals {
		classified = append(classified, c.ClassifySignal(sig))
	}
	return classified
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
