package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bearwatch/internal/models"
)

type YahooFinanceClient struct {
	tickers []string
	client  *http.Client
}

type yahooSearchResponse struct {
	News []struct {
		UUID      string `json:"uuid"`
		Title     string `json:"title"`
		Publisher string `json:"publisher"`
		Link      string `json:"link"`
	} `json:"news"`
}

func NewYahooFinanceClient(tickers []string, timeout time.Duration) *YahooFinanceClient {
	return &YahooFinanceClient{
		tickers: tickers,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchSignals queries the public Yahoo Finance search endpoint per ticker.
// A failing ticker is skipped; an error is returned only when nothing at all
// could be fetched.
func (c *YahooFinanceClient) FetchSignals(ctx context.Context, limit int) ([]models.Signal, error) {
	var signals []models.Signal
	var lastErr error

	for _, ticker := range c.tickers {
		items, err := c.fetchTicker(ctx, ticker, limit)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", ticker, err)
			continue
		}
		signals = append(signals, items...)
	}

	if len(signals) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return signals, nil
}

func (c *YahooFinanceClient) fetchTicker(ctx context.Context, ticker string, limit int) ([]models.Signal, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v1/finance/search?q=%s&newsCount=%d&quotesCount=0", ticker, limit)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
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
		return nil, fmt.Errorf("yahoo finance returned status %d", resp.StatusCode)
	}

	var searchResp yahooSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, err
	}

	var signals []models.Signal
	for _, item := range searchResp.News {
		if item.Title == "" {
			continue
		}

		id := item.UUID
		if len(id) > 8 {
			id = id[:8]
		}

		signals = append(signals, models.Signal{
			ID:       fmt.Sprintf("yahoo_%s", id),
			Source:   fmt.Sprintf("Yahoo Finance (%s)", ticker),
			Headline: item.Title,
			Content:  item.Title,
			Keywords: append([]string{ticker}, ExtractKeywords(item.Title)...),
		})
	}

	return signals, nil
}

func (c *YahooFinanceClient) GetName() string {
	return "yahoo_finance"
}
