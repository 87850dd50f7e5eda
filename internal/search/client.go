package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ExhibitSync/internal/config"
	"ExhibitSync/internal/model"
	"ExhibitSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// Channel identifiers, also used as candidate provenance.
const (
	ChannelBlog = "blog"
	ChannelNews = "news"
)

// Client talks to the external open-search provider. One outbound call per
// (query, channel) pair; credentials come from configuration.
type Client struct {
	cfg        *config.SearchConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(cfg *config.SearchConfig, logger *logrus.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpclient.New(cfg, logger),
		logger:     logger,
	}
}

// Blog returns the short-post channel.
func (c *Client) Blog() *QueryChannel { return &QueryChannel{client: c, channel: ChannelBlog} }

// News returns the article channel.
func (c *Client) News() *QueryChannel { return &QueryChannel{client: c, channel: ChannelNews} }

// QueryChannel is one provider channel bound to a shared client.
type QueryChannel struct {
	client  *Client
	channel string
}

func (q *QueryChannel) Name() string { return q.channel }

// Search issues one call for the query. Errors are returned to the caller;
// the collector absorbs them per (query, channel) so a failing query never
// aborts the venue.
func (q *QueryChannel) Search(ctx context.Context, query string) ([]model.RawItem, error) {
	return q.client.search(ctx, q.channel, query)
}

// searchResponse matches the provider's result envelope.
type searchResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
		PostDate    string `json:"postdate"` // blog channel, YYYYMMDD
		PubDate     string `json:"pubDate"`  // news channel, RFC1123-ish
	} `json:"items"`
}

func (c *Client) search(ctx context.Context, channel, query string) ([]model.RawItem, error) {
	endpoint := fmt.Sprintf("%s/v1/search/%s.json", c.cfg.BaseURL, channel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", channel, err)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("display", fmt.Sprintf("%d", c.cfg.Display))
	params.Set("sort", c.cfg.Sort)
	req.URL.RawQuery = params.Encode()

	req.Header.Set("X-Naver-Client-Id", c.cfg.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.cfg.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", channel, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s search: unexpected status %d", channel, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", channel, err)
	}

	items := make([]model.RawItem, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, model.RawItem{
			Title:     it.Title,
			Snippet:   it.Description,
			Link:      it.Link,
			Published: parsePublished(it.PostDate, it.PubDate),
		})
	}
	return items, nil
}

// parsePublished handles both channel date formats; zero time if neither
// parses.
func parsePublished(postDate, pubDate string) time.Time {
	if postDate != "" {
		if t, err := time.Parse("20060102", postDate); err == nil {
			return t
		}
	}
	if pubDate != "" {
		if t, err := time.Parse(time.RFC1123Z, pubDate); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC1123, pubDate); err == nil {
			return t
		}
	}
	return time.Time{}
}
