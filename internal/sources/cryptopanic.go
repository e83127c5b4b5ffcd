package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bearwatch/internal/models"
)

// CryptoPanicClient pulls crypto headlines from the CryptoPanic public API.
// Wired only when an auth token is configured.
type CryptoPanicClient struct {
	token  string
	client *http.Client
}

type cryptoPanicResponse struct {
	Results []struct {
		ID     int    `json:"id"`
		Title  string `json:"title"`
		Source struct {
			Title string `json:"title"`
		} `json:"source"`
	} `json:"results"`
}

func NewCryptoPanicClient(token string, timeout time.Duration) *CryptoPanicClient {
	return &CryptoPanicClient{
		token: token,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *CryptoPanicClient) FetchSignals(ctx context.Context, limit int) ([]models.Signal, error) {
	url := fmt.Sprintf("https://cryptopanic.com/api/v1/posts/?auth_token=%s&public=true&page_size=%d", c.token, limit)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cryptopanic returned status %d", resp.StatusCode)
	}

	var apiResp cryptoPanicResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	signals := make([]models.Signal, 0, len(apiResp.Results))
	for _, result := range apiResp.Results {
		if result.Title == "" {
			continue
		}

		source := "CryptoPanic"
		if result.Source.Title != "" {
			source = fmt.Sprintf("CryptoPanic (%s)", result.Source.Title)
		}

		signals = append(signals, models.Signal{
			ID:       fmt.Sprintf("cryptopanic_%d", result.ID),
			Source:   source,
			Headline: result.Title,
			Content:  result.Title,
			Keywords: append([]string{"crypto"}, ExtractKeywords(result.Title)...),
		})
	}

	return signals, nil
}

func (c *CryptoPanicClient) GetName() string {
	return "cryptopanic"
}
