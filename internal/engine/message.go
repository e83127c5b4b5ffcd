package engine

import (
	"fmt"
	"strings"

	"bearwatch/internal/models"
)

var urgencyEmoji = map[models.Urgency]string{
	models.UrgencyLow:      "📊",
	models.UrgencyMedium:   "📈",
	models.UrgencyHigh:     "⚠️",
	models.UrgencyCritical: "🚨",
}

// formatScheduledAlert renders the bearish watchlist alert sent from the
// scheduled path.
func formatScheduledAlert(sig models.Signal, topic string, matched []string) string {
	return fmt.Sprintf("🚨 *Bearish Alert: %s*\n\n*%s*\n\n%s\n\nSource: %s\nMatched: %s",
		topic,
		sig.Headline,
		sig.Content,
		sig.Source,
		strings.Join(matched, ", "))
}

// formatTriggerAlert renders the fully classified alert sent from the manual
// path, including sentiment and urgency.
func formatTriggerAlert(sig models.ClassifiedSignal, matched []string) string {
	emoji := urgencyEmoji[sig.Urgency]
	if emoji == "" {
		emoji = urgencyEmoji[models.UrgencyLow]
	}

	return fmt.Sprintf("%s *Market Alert* (%s urgency)\n\n*%s*\n\n%s\n\nSentiment: %s (%.3f)\nSource: %s\nMatched: %s",
		emoji,
		sig.Urgency,
		sig.Headline,
		sig.Content,
		sig.Sentiment,
		sig.SentimentScore,
		sig.Source,
		strings.Join(matched, ", "))
}
