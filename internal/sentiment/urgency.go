package sentiment

import (
	"strings"

	"bearwatch/internal/models"
)

// crisisLexemes escalate a signal to critical urgency no matter which
// sentiment label the score produced.
var crisisLexemes = []string{"crash", "plunge"}

const highUrgencyScore = -0.5

// UrgencyFor derives the urgency tier for a scored text. A crisis lexeme
// anywhere in the text forces critical; otherwise Negative sentiment with a
// score below -0.5 is high, and everything else is low.
func UrgencyFor(label models.Label, score float64, text string) models.Urgency {
	lower := strings.ToLower(text)
	for _, lexeme := range crisisLexemes {
		if strings.Contains(lower, lexeme) {
			return models.UrgencyCritical
		}
	}
	if label == models.LabelNegative && score < highUrgencyScore {
		return models.UrgencyHigh
	}
	return models.UrgencyLow
}
