package sentiment

import (
	"fmt"

	"bearwatch/internal/models"
)

// Lean reports the dominant direction of a classified batch. Ties and empty
// batches report Bullish.
func Lean(signals []models.ClassifiedSignal) string {
	var bearish, bullish int
	for _, sig := range signals {
		switch sig.Sentiment {
		case models.LabelNegative:
			bearish++
		case models.LabelPositive:
			bullish++
		}
	}
	if bearish > bullish {
		return "Bearish"
	}
	return "Bullish"
}

// Summary renders the one-line market summary attached to manual check
// results.
func Summary(signals []models.ClassifiedSignal) string {
	return fmt.Sprintf("Validating %d signals. Market appears lean towards %s sentiment.", len(signals), Lean(signals))
}
