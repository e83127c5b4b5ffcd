package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bearwatch/internal/models"
)

const redditUserAgent = "bearwatch/1.0"

// Low-quality post patterns skipped during ingest.
var skipPatterns = []string{
	"daily discussion", "weekly discussion", "weekly earnings",
	"what are your moves", "weekend discussion", "daily thread",
	"megathread", "meta thread", "not supported on old reddit",
}

type RedditClient struct {
	subreddits []string
	client     *http.Client
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Selftext string `json:"selftext"`
				Stickied bool   `json:"stickied"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func NewRedditClient(subreddits []string, timeout time.Duration) *RedditClient {
	return &RedditClient{
		subreddits: subreddits,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchSignals pulls the hot listing of each configured subreddit. A failing
// subreddit is skipped; an error is returned only when nothing at all could
// be fetched.
func (c *RedditClient) FetchSignals(ctx context.Context, limit int) ([]models.Signal, error) {
	var signals []models.Signal
	var lastErr error

	for _, subreddit := range c.subreddits {
		posts, err := c.fetchSubreddit(ctx, subreddit, limit)
		if err != nil {
			lastErr = fmt.Errorf("r/%s: %w", subreddit, err)
			continue
		}
		signals = append(signals, posts...)
	}

	if len(signals) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return signals, nil
}

func (c *RedditClient) fetchSubreddit(ctx context.Context, subreddit string, limit int) ([]models.Signal, error) {
	url := fmt.Sprintf("https://www.reddit.com/r/%s/hot.json?limit=%d", subreddit, limit)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", redditUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit returned status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, err
	}

	var signals []models.Signal
	for _, child := range listing.Data.Children {
		post := child.Data
		selftext := truncate(post.Selftext, 200)

		if post.Stickied {
			continue
		}
		if skipPost(post.Title, selftext) {
			continue
		}
		if len(post.Title) < 20 {
			continue
		}

		content := selftext
		if content == "" {
			content = post.Title
		}

		signals = append(signals, models.Signal{
			ID:       fmt.Sprintf("reddit_%s", post.ID),
			Source:   fmt.Sprintf("Reddit r/%s", subreddit),
			Headline: post.Title,
			Content:  content,
			Keywords: ExtractKeywords(post.Title),
		})
	}

	return signals, nil
}

func (c *RedditClient) GetName() string {
	return "reddit"
}

func skipPost(title, content string) bool {
	titleLower := strings.ToLower(title)
	contentLower := strings.ToLower(content)

	for _, pattern := range skipPatterns {
		if strings.Contains(titleLower, pattern) || strings.Contains(contentLower, pattern) {
			return true
		}
	}
	return false
}
