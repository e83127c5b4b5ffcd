package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"bearwatch/internal/models"
)

const (
	moneycontrolURL  = "https://www.moneycontrol.com/news/business/markets/"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

type MoneycontrolClient struct {
	client *http.Client
}

func NewMoneycontrolClient(timeout time.Duration) *MoneycontrolClient {
	return &MoneycontrolClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchSignals scrapes headlines from the Moneycontrol markets page. Only the
// first limit list items are examined; entries without a usable headline are
// skipped.
func (c *MoneycontrolClient) FetchSignals(ctx context.Context, limit int) ([]models.Signal, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", moneycontrolURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moneycontrol returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var signals []models.Signal
	doc.Find("li.clearfix").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= limit {
			return false
		}

		headline := strings.TrimSpace(sel.Find("h2").First().Text())
		if headline == "" {
			headline = strings.TrimSpace(sel.Find("a").First().Text())
		}
		if len(headline) <= 10 {
			return true
		}

		signals = append(signals, models.Signal{
			ID:       fmt.Sprintf("moneycontrol_%d", i),
			Source:   "Moneycontrol",
			Headline: headline,
			Content:  headline,
			Keywords: ExtractKeywords(headline),
		})
		return true
	})

	return signals, nil
}

func (c *MoneycontrolClient) GetName() string {
	return "moneycontrol"
}
