// Package report generates structured market narratives for the bearish and
// bullish views. The dispatch engine never depends on this package; reports
// only enrich the read-side API.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"bearwatch/internal/models"
)

// Generator produces a market report for a lean ("Bearish" or "Bullish")
// from a classified signal batch.
type Generator interface {
	MarketReport(ctx context.Context, lean string, signals []models.ClassifiedSignal) (*models.MarketReport, error)
}

// OpenAIGenerator renders reports with a chat completion model.
type OpenAIGenerator struct {
	client *openai.Client
}

func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIGenerator{client: &client}
}

func (g *OpenAIGenerator) MarketReport(ctx context.Context, lean string, signals []models.ClassifiedSignal) (*models.MarketReport, error) {
	prompt := buildPrompt(lean, signals)

	response, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: "gpt-4o-mini",
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String("You are a market analyst. Respond with strict JSON only, no prose around it."),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(1500),
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no response from openai")
	}

	content := stripFences(response.Choices[0].Message.Content)

	var rep models.MarketReport
	if err := json.Unmarshal([]byte(content), &rep); err != nil {
		return nil, fmt.Errorf("parse openai response: %w", err)
	}
	return &rep, nil
}

func buildPrompt(lean string, signals []models.ClassifiedSignal) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Produce a %s market report from these classified signals.\n", strings.ToLower(lean)))
	sb.WriteString("Respond with JSON in this shape:\n")
	sb.WriteString(`{"live_signals": [{"title": "", "details": "", "source": ""}], "top_picks": [{"name": "", "action": "", "price": "", "reason": ""}], "market_summary": "", "llm_advice": ""}`)
	sb.WriteString("\n\nSignals:\n\n")

	for i, sig := range signals {
		sb.WriteString(fmt.Sprintf("Signal %d:\n", i+1))
		sb.WriteString(fmt.Sprintf("Headline: %s\n", sig.Headline))
		sb.WriteString(fmt.Sprintf("Content: %s\n", sig.Content))
		sb.WriteString(fmt.Sprintf("Source: %s\n", sig.Source))
		sb.WriteString(fmt.Sprintf("Sentiment: %s (%.3f)\n", sig.Sentiment, sig.SentimentScore))
		sb.WriteString(fmt.Sprintf("Urgency: %s\n", sig.Urgency))
		sb.WriteString("\n")
	}

	return sb.String()
}

// stripFences removes a surrounding ```json markdown fence, which the model
// sometimes adds despite the strict-JSON instruction.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// Placeholder serves a fixed report when no API key is configured. Alert
// matching works without any generator; this keeps the report endpoints
// functional too.
type Placeholder struct{}

func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

func (p *Placeholder) MarketReport(_ context.Context, lean string, signals []models.ClassifiedSignal) (*models.MarketReport, error) {
	live := make([]models.ReportSignal, 0, len(signals))
	for _, sig := range signals {
		live = append(live, models.ReportSignal{
			Title:   sig.Headline,
			Details: fmt.Sprintf("%s sentiment, %s urgency", sig.Sentiment, sig.Urgency),
			Source:  sig.Source,
		})
	}

	return &models.MarketReport{
		LiveSignals:   live,
		TopPicks:      []models.ReportPick{},
		MarketSummary: fmt.Sprintf("%s report generated from %d signals. Narrative analysis unavailable.", lean, len(signals)),
		Advice:        "Configure an OpenAI API key for narrative advice.",
	}, nil
}
